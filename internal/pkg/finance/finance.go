// Package finance computes fixed-rate amortization quotes for the financing
// calculator.
package finance

import "github.com/shopspring/decimal"

// Quote is an amortization result rounded to whole currency units.
type Quote struct {
	MonthlyPayment int64 `json:"monthly_payment"`
	TotalInterest  int64 `json:"total_interest"`
	TotalAmount    int64 `json:"total_amount"`
}

var (
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// Amortize converts price, down payment, annual rate (percent) and term in
// months into a monthly payment quote. A zero rate degrades to straight-line
// principal/term; a non-positive principal or term yields an all-zero quote.
func Amortize(price, downPayment, annualRatePercent float64, termMonths int) Quote {
	principal := decimal.NewFromFloat(price).Sub(decimal.NewFromFloat(downPayment))
	monthlyRate := decimal.NewFromFloat(annualRatePercent).Div(twelve).Div(hundred)
	n := decimal.NewFromInt(int64(termMonths))

	var monthly, totalAmount, totalInterest decimal.Decimal

	switch {
	case principal.IsPositive() && monthlyRate.IsPositive() && termMonths > 0:
		// monthlyPayment = principal * r * (1+r)^n / ((1+r)^n - 1)
		growth := decimal.NewFromInt(1).Add(monthlyRate).Pow(n)
		monthly = principal.Mul(monthlyRate).Mul(growth).Div(growth.Sub(decimal.NewFromInt(1)))
		totalAmount = monthly.Mul(n)
		totalInterest = totalAmount.Sub(principal)
	case principal.IsPositive() && termMonths > 0:
		monthly = principal.Div(n)
		totalAmount = principal
	}

	return Quote{
		MonthlyPayment: monthly.Round(0).IntPart(),
		TotalInterest:  totalInterest.Round(0).IntPart(),
		TotalAmount:    totalAmount.Round(0).IntPart(),
	}
}
