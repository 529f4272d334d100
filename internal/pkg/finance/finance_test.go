package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmortizeStandardLoan(t *testing.T) {
	q := Amortize(1000000, 0, 12, 60)

	// 1M at 12% over 60 months is about 22,244/month.
	assert.InDelta(t, 22244, float64(q.MonthlyPayment), 1)
	assert.Equal(t, q.TotalAmount-1000000, q.TotalInterest)
	assert.Greater(t, q.TotalInterest, int64(0))
}

func TestAmortizeDownPaymentReducesPrincipal(t *testing.T) {
	full := Amortize(1000000, 0, 12, 60)
	half := Amortize(1000000, 500000, 12, 60)

	assert.InDelta(t, float64(full.MonthlyPayment)/2, float64(half.MonthlyPayment), 1)
}

func TestAmortizeZeroRate(t *testing.T) {
	q := Amortize(600000, 0, 0, 60)

	assert.Equal(t, int64(10000), q.MonthlyPayment)
	assert.Equal(t, int64(0), q.TotalInterest)
	assert.Equal(t, int64(600000), q.TotalAmount)
}

func TestAmortizeNonPositivePrincipal(t *testing.T) {
	assert.Equal(t, Quote{}, Amortize(0, 0, 12, 60))
	assert.Equal(t, Quote{}, Amortize(500000, 500000, 12, 60))
	assert.Equal(t, Quote{}, Amortize(500000, 600000, 12, 60))
}

func TestAmortizeZeroTerm(t *testing.T) {
	assert.Equal(t, Quote{}, Amortize(1000000, 0, 12, 0))
}
