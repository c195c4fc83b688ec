package models

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// Stay is a half-open interval of calendar dates. The check-out day is free
// for the next guest to check in.
type Stay struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// NewStay truncates both ends to their calendar date, see DateOf.
func NewStay(checkIn, checkOut time.Time) Stay {
	return Stay{CheckIn: DateOf(checkIn), CheckOut: DateOf(checkOut)}
}

func (s Stay) Valid() bool {
	return s.CheckIn.Before(s.CheckOut)
}

func (s Stay) Nights() int {
	return int(s.CheckOut.Sub(s.CheckIn).Hours() / 24)
}

// DateOf keeps the calendar date of t as seen in its own location.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return DateOf(t), nil
}
