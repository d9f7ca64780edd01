package main

import (
	"fmt"
	"time"
)

// All date arithmetic is anchored to the configured operating timezone so
// that schedules behave identically wherever the process runs. Nothing in
// this file consults the host's local zone.

// DateParts is a calendar date (plus clock time) in the operating timezone.
type DateParts struct {
	Year    int
	Month   time.Month
	Day     int
	Weekday time.Weekday
	Hour    int
	Minute  int
	Second  int
}

func DatePartsAt(t time.Time, loc *time.Location) DateParts {
	t = t.In(loc)
	return DateParts{
		Year:    t.Year(),
		Month:   t.Month(),
		Day:     t.Day(),
		Weekday: t.Weekday(),
		Hour:    t.Hour(),
		Minute:  t.Minute(),
		Second:  t.Second(),
	}
}

func CurrentDateParts(loc *time.Location) DateParts {
	return DatePartsAt(time.Now(), loc)
}

// ParseDate parses a strict YYYY-MM-DD calendar date anchored at local
// midnight in loc. Non-dates like 2024-02-30 are rejected.
func ParseDate(s string, loc *time.Location) (DateParts, error) {
	if len(s) != len("2006-01-02") {
		return DateParts{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return DateParts{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DatePartsAt(t, loc), nil
}

func midnight(d DateParts, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// mondayOf returns local midnight of the Monday of the ISO week containing
// the date. Sunday counts as day 7 of the week it ends.
func mondayOf(d DateParts, loc *time.Location) time.Time {
	t := midnight(d, loc)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return t.AddDate(0, 0, -(weekday - 1))
}

// DayWindow is local 00:00:00.000 through 23:59:59.999 of the calendar day.
func DayWindow(d DateParts, loc *time.Location) Window {
	start := midnight(d, loc)
	return Window{Start: start, End: endOfDay(start)}
}

// MonthWindow is the 1st 00:00:00.000 through the last day 23:59:59.999 of
// the month. Day 0 of the following month normalizes to the correct last
// day for every month length, leap years included.
func MonthWindow(d DateParts, loc *time.Location) Window {
	start := time.Date(d.Year, d.Month, 1, 0, 0, 0, 0, loc)
	last := time.Date(d.Year, d.Month+1, 0, 0, 0, 0, 0, loc)
	return Window{Start: start, End: endOfDay(last)}
}

// WeekWindow is Monday 00:00:00.000 through Friday 23:59:59.999 of the week
// containing the date (business-week semantics, for leave matching).
func WeekWindow(d DateParts, loc *time.Location) Window {
	monday := mondayOf(d, loc)
	return Window{Start: monday, End: endOfDay(monday.AddDate(0, 0, 4))}
}

// WeekWindowByOffset is Monday through Sunday of the week weeksAhead weeks
// after the current one (full week, for work-calendar squad lookups).
// weeksAhead=1 is next week; offsets below 1 clamp to 1.
func WeekWindowByOffset(d DateParts, weeksAhead int, loc *time.Location) Window {
	if weeksAhead < 1 {
		weeksAhead = 1
	}
	monday := mondayOf(d, loc).AddDate(0, 0, 7*weeksAhead)
	return Window{Start: monday, End: endOfDay(monday.AddDate(0, 0, 6))}
}

// WeekWindowByWeeksAgo is the Monday-Friday window weeksAgo weeks before the
// current week. weeksAgo=0 is the current week.
func WeekWindowByWeeksAgo(d DateParts, weeksAgo int, loc *time.Location) Window {
	if weeksAgo < 0 {
		weeksAgo = 0
	}
	monday := mondayOf(d, loc).AddDate(0, 0, -7*weeksAgo)
	return Window{Start: monday, End: endOfDay(monday.AddDate(0, 0, 4))}
}
