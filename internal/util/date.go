// Package util provides small date helpers shared by handlers and
// services.
package util

import "time"

// DateLayout is the wire format for transaction dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a UTC time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
