package database

import (
	"fmt"
	"time"
)

// Timestamps are stored as fixed-width RFC 3339 text in UTC so that string
// comparison in SQL matches chronological order on both drivers.
const storedTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// FormatTime renders t in UTC.
func FormatTime(t time.Time) string {
	return t.UTC().Format(storedTimeLayout)
}

// FormatOptionalTime renders a nullable timestamp.
func FormatOptionalTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatTime(*t)
	return &s
}

// ParseTime reads a stored timestamp.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid stored timestamp %q: %w", s, err)
	}
	return t, nil
}

// ParseOptionalTime reads a nullable stored timestamp.
func ParseOptionalTime(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := ParseTime(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// BoolToInt stores booleans as 0/1.
func BoolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
