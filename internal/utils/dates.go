package utils

import (
	"fmt"
	"time"
)

const (
	DateLayout   = "2006-01-02"
	daysPerYear  = 365.0
	hoursPerYear = daysPerYear * 24
)

// YearFraction returns the ACT/365 fixed year fraction between two instants.
// Expiries in the past yield 0 (the option has expired).
func YearFraction(from, to time.Time) float64 {
	if !to.After(from) {
		return 0
	}
	return to.Sub(from).Hours() / hoursPerYear
}

// TimeToExpiry parses an expiry date (YYYY-MM-DD) and returns the ACT/365
// year fraction from the current UTC calendar day to that date.
func TimeToExpiry(expiry string, now time.Time) (float64, error) {
	exp, err := time.ParseInLocation(DateLayout, expiry, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("expiry_date must be YYYY-MM-DD: %w", err)
	}

	// UTC midnights are whole days apart, so DST in now's zone cannot skew the count
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return YearFraction(today, exp), nil
}
