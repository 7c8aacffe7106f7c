package utils

import (
	"fmt"
	"strings"
	"time"
)

const layoutDate = "2006-01-02"

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseInstant accepts RFC3339 (with or without fractional seconds) or a bare
// YYYY-MM-DD date, which is read as midnight UTC.
func ParseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(layoutDate, s, time.UTC); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
