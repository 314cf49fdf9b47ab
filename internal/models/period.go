package models

import (
	"fmt"
	"time"
)

// Billing periods are keyed "MM-YYYY"; audit entries are dated "DD-MM-YYYY".
const (
	periodLayout        = "01-2006"
	operationDateLayout = "02-01-2006"
)

// PeriodKey returns the billing period key for the given time
func PeriodKey(t time.Time) string {
	return t.Format(periodLayout)
}

// OperationDate returns the audit entry date for the given time
func OperationDate(t time.Time) string {
	return t.Format(operationDateLayout)
}

// ParsePeriod validates a billing period key and returns the first day
// of that month.
func ParsePeriod(period string) (time.Time, error) {
	t, err := time.Parse(periodLayout, period)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid billing period %q, expected MM-YYYY: %w", period, err)
	}
	return t, nil
}
