package domain

import (
	"fmt"
	"time"
)

type PeriodType string

const (
	PeriodMonthly   PeriodType = "monthly"
	PeriodQuarterly PeriodType = "quarterly"
)

// Target is a revenue goal for one sales rep over one period. Uniqueness of
// (SalesRepID, PeriodType, Period) is by convention: callers find-or-create
// by the key fields before inserting.
type Target struct {
	ID         int64      `json:"id"`
	SalesRepID int64      `json:"sales_rep_id" validate:"required"`
	PeriodType PeriodType `json:"period_type" validate:"required"`
	Period     string     `json:"period"`
	Amount     float64    `json:"amount" validate:"required,gt=0"`
	StartDate  time.Time  `json:"start_date"`
	CreatedAt  time.Time  `json:"created_at"`
}

// PeriodKey derives the period string for a start date, e.g. "2024-03" for
// monthly targets and "2024-Q1" for quarterly ones.
func PeriodKey(start time.Time, pt PeriodType) string {
	if pt == PeriodMonthly {
		return start.Format("2006-01")
	}
	quarter := (int(start.Month())-1)/3 + 1
	return fmt.Sprintf("%d-Q%d", start.Year(), quarter)
}

// PeriodEnd returns the inclusive end of the period starting at start:
// the last day of the month for monthly targets, the last day of the third
// month for quarterly ones. The bound is pushed to end of day so close dates
// anywhere on the final day still count.
func PeriodEnd(start time.Time, pt PeriodType) time.Time {
	months := 1
	if pt == PeriodQuarterly {
		months = 3
	}
	firstOfMonth := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
	lastDay := firstOfMonth.AddDate(0, months, -1)
	return time.Date(lastDay.Year(), lastDay.Month(), lastDay.Day(), 23, 59, 59, 0, start.Location())
}
