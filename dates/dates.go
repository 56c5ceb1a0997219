package dates

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Rental dates are day-first "DD-MM-YYYY" strings everywhere in the app;
// native date pickers exchange ISO "YYYY-MM-DD" instead, so both forms are
// handled here. A parsed date is a UTC midnight with no time component.

var ErrInvalidDate = errors.New("invalid date format, expected DD-MM-YYYY")

// Parse converts a "DD-MM-YYYY" string into a calendar date.
func Parse(text string) (time.Time, error) {
	parts := strings.Split(text, "-")
	if len(parts) != 3 {
		return time.Time{}, ErrInvalidDate
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	if year < 1 || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, ErrInvalidDate
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (e.g. 31-04 becomes 01-05); reject that
	if t.Day() != day || t.Month() != time.Month(month) || t.Year() != year {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// Format renders a calendar date back into the app's "DD-MM-YYYY" form.
func Format(t time.Time) string {
	return t.Format("02-01-2006")
}

// ToISO renders a date year-first for date-picker controls.
func ToISO(t time.Time) string {
	return t.Format("2006-01-02")
}

// FromISO parses a date-picker "YYYY-MM-DD" value.
func FromISO(text string) (time.Time, error) {
	parts := strings.Split(text, "-")
	if len(parts) != 3 {
		return time.Time{}, ErrInvalidDate
	}
	return Parse(fmt.Sprintf("%s-%s-%s", parts[2], parts[1], parts[0]))
}

// Display renders the long human-readable form used on booking pages and
// in exported documents, e.g. "Saturday, June 1, 2024".
func Display(t time.Time) string {
	return fmt.Sprintf("%s, %s %d, %d", t.Weekday(), t.Month(), t.Day(), t.Year())
}

// DisplayString parses a "DD-MM-YYYY" string and renders its long form.
// Malformed input is returned unchanged rather than erased.
func DisplayString(text string) string {
	t, err := Parse(text)
	if err != nil {
		return text
	}
	return Display(t)
}

// DefaultRange returns the default pickup/return pair offered to the user:
// the 1st of the current month and the 1st of the next month, rolling
// December over into January.
func DefaultRange(now time.Time) (pickup, ret string) {
	pickupDate := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	returnDate := pickupDate.AddDate(0, 1, 0)
	return Format(pickupDate), Format(returnDate)
}
