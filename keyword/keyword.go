// Package keyword resolves relative date keywords such as "Today-1" or
// "ThisMonth3" into concrete dates.
package keyword

import (
	"strconv"
	"strings"
	"time"
)

// Name is the leading part of a relative date keyword.
type Name string

const (
	Now       Name = "Now"
	Today     Name = "Today"
	ThisWeek  Name = "ThisWeek"
	ThisMonth Name = "ThisMonth"
	ThisYear  Name = "ThisYear"
)

// Names lists the recognized keyword names in matching order.
var Names = []Name{Now, Today, ThisWeek, ThisMonth, ThisYear}

// Has reports whether s starts with a recognized keyword name.
// The trailing offset is not validated.
func Has(s string) bool {
	_, _, ok := Parse(s)
	return ok
}

// Parse splits s into its keyword name and offset.
// A missing or malformed offset yields 0.
func Parse(s string) (Name, int, bool) {
	if s == "" {
		return "", 0, false
	}
	for _, name := range Names {
		if !strings.HasPrefix(s, string(name)) {
			continue
		}
		offset, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(s, string(name))))
		if err != nil {
			offset = 0
		}
		return name, offset, true
	}
	return "", 0, false
}

// Resolve returns the date designated by kw relative to now.
// Without keyword, a zero date resolves to now and any other date is returned unchanged.
func Resolve(kw string, date, now time.Time) time.Time {
	name, offset, ok := Parse(kw)
	if !ok {
		if date.IsZero() {
			return now
		}
		return date
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch name {
	case Now:
		return now
	case Today:
		return today.AddDate(0, 0, offset)
	case ThisWeek:
		return monday(today).AddDate(0, 0, 7*offset)
	case ThisMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, offset, 0)
	case ThisYear:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()).AddDate(offset, 0, 0)
	}
	return date
}

// monday returns the Monday starting the ISO week of day.
func monday(day time.Time) time.Time {
	shift := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -shift)
}
