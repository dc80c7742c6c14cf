package util

import (
	"fmt"
	"strings"
	"time"
)

// TwoDigitYear returns the two-digit year token for the given time, e.g. "26"
// for 2026. This is the default grad-year token for auto-assigned IDs.
func TwoDigitYear(t time.Time) string {
	return t.Format("06")
}

// YearToken normalizes a grad-year value to its two-digit token.
// "2026" and "26" both become "26"; an empty value falls back to the
// current year's token.
func YearToken(gradYear string, now time.Time) string {
	gradYear = strings.TrimSpace(gradYear)
	if gradYear == "" {
		return TwoDigitYear(now)
	}
	if len(gradYear) > 2 {
		return gradYear[len(gradYear)-2:]
	}
	return gradYear
}

// ValidateYearToken checks that a token is exactly two ASCII digits.
func ValidateYearToken(token string) error {
	if len(token) != 2 {
		return fmt.Errorf("year token must be two digits")
	}
	for _, r := range token {
		if r < '0' || r > '9' {
			return fmt.Errorf("year token must be two digits")
		}
	}
	return nil
}
