package main

import (
	"errors"
	"testing"
	"time"
)

func testLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Colombo")
	if err != nil {
		t.Fatalf("loading test timezone: %v", err)
	}
	return loc
}

func TestParseDateValid(t *testing.T) {
	loc := testLocation(t)
	parts, err := ParseDate("2024-03-15", loc)
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if parts.Year != 2024 || parts.Month != time.March || parts.Day != 15 {
		t.Errorf("unexpected parts: %+v", parts)
	}
	if parts.Weekday != time.Friday {
		t.Errorf("2024-03-15 should be a Friday, got %s", parts.Weekday)
	}
}

func TestParseDateInvalid(t *testing.T) {
	loc := testLocation(t)
	for _, input := range []string{
		"",
		"2024-02-30",
		"2024-13-01",
		"15-03-2024",
		"2024-3-05",
		"2024-03-15T00:00:00",
		"not-a-date",
	} {
		if _, err := ParseDate(input, loc); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ParseDate(%q) error = %v, want ErrInvalidDate", input, err)
		}
	}
}

func TestDayWindowSpan(t *testing.T) {
	loc := testLocation(t)
	for _, date := range []string{"2024-01-01", "2024-02-29", "2024-06-15", "2024-12-31"} {
		parts, err := ParseDate(date, loc)
		if err != nil {
			t.Fatalf("ParseDate(%q) failed: %v", date, err)
		}
		w := DayWindow(parts, loc)
		if got := w.End.Sub(w.Start); got != 86399999*time.Millisecond {
			t.Errorf("DayWindow(%s) span = %v, want 23h59m59.999s", date, got)
		}
		if w.Start.Hour() != 0 || w.Start.Minute() != 0 {
			t.Errorf("DayWindow(%s) start not at midnight: %v", date, w.Start)
		}
	}
}

func TestMonthWindowLastDay(t *testing.T) {
	loc := testLocation(t)
	tests := []struct {
		year    int
		month   time.Month
		lastDay int
	}{
		{2024, time.February, 29}, // leap year
		{2023, time.February, 28},
		{2100, time.February, 28}, // century non-leap
		{2000, time.February, 29}, // 400-year leap
		{2024, time.April, 30},
		{2024, time.January, 31},
		{2024, time.December, 31}, // year rollover in the day-0 trick
	}
	for _, tt := range tests {
		w := MonthWindow(DateParts{Year: tt.year, Month: tt.month, Day: 10}, loc)
		if w.Start.Day() != 1 {
			t.Errorf("MonthWindow(%d-%s) start day = %d, want 1", tt.year, tt.month, w.Start.Day())
		}
		if w.End.Day() != tt.lastDay {
			t.Errorf("MonthWindow(%d-%s) end day = %d, want %d", tt.year, tt.month, w.End.Day(), tt.lastDay)
		}
		if w.End.Month() != tt.month {
			t.Errorf("MonthWindow(%d-%s) end month = %s", tt.year, tt.month, w.End.Month())
		}
	}
}

func TestWeekWindowBusinessWeek(t *testing.T) {
	loc := testLocation(t)
	// 2024-03-13 is a Wednesday; its business week is Mon 11th - Fri 15th.
	parts, _ := ParseDate("2024-03-13", loc)
	w := WeekWindow(parts, loc)
	if w.Start.Weekday() != time.Monday || w.Start.Day() != 11 {
		t.Errorf("week start = %v, want Monday the 11th", w.Start)
	}
	if w.End.Weekday() != time.Friday || w.End.Day() != 15 {
		t.Errorf("week end = %v, want Friday the 15th", w.End)
	}
}

func TestWeekWindowSundayBelongsToEndingWeek(t *testing.T) {
	loc := testLocation(t)
	// 2024-03-17 is a Sunday; it is day 7 of the week starting Mon the 11th.
	parts, _ := ParseDate("2024-03-17", loc)
	w := WeekWindow(parts, loc)
	if w.Start.Day() != 11 || w.End.Day() != 15 {
		t.Errorf("Sunday mapped to week %v - %v, want Mar 11 - Mar 15", w.Start, w.End)
	}
}

func TestWeekWindowByOffsetShape(t *testing.T) {
	loc := testLocation(t)
	// One date per weekday; the offset window must always be Mon-Sun.
	for day := 11; day <= 17; day++ {
		parts := DateParts{Year: 2024, Month: time.March, Day: day}
		w := WeekWindowByOffset(parts, 1, loc)
		if w.Start.Weekday() != time.Monday {
			t.Errorf("day %d: offset week starts on %s, want Monday", day, w.Start.Weekday())
		}
		if w.End.Weekday() != time.Sunday {
			t.Errorf("day %d: offset week ends on %s, want Sunday", day, w.End.Weekday())
		}
		if days := w.End.Sub(w.Start).Hours() / 24; days < 6 || days >= 7 {
			t.Errorf("day %d: offset week spans %.2f days", day, days)
		}
	}
}

func TestWeekWindowByOffsetClampsBelowOne(t *testing.T) {
	loc := testLocation(t)
	parts := DateParts{Year: 2024, Month: time.March, Day: 13}
	want := WeekWindowByOffset(parts, 1, loc)
	for _, offset := range []int{0, -1, -10} {
		got := WeekWindowByOffset(parts, offset, loc)
		if !got.Start.Equal(want.Start) || !got.End.Equal(want.End) {
			t.Errorf("offset %d not clamped to 1: got %v - %v", offset, got.Start, got.End)
		}
	}
}

func TestWeekWindowByWeeksAgoSevenDaysApart(t *testing.T) {
	loc := testLocation(t)
	parts := DateParts{Year: 2024, Month: time.March, Day: 13}
	current := WeekWindowByWeeksAgo(parts, 0, loc)
	previous := WeekWindowByWeeksAgo(parts, 1, loc)

	if got := current.Start.Sub(previous.Start); got != 7*24*time.Hour {
		t.Errorf("week starts %v apart, want 168h", got)
	}
	if !previous.End.Before(current.Start) {
		t.Errorf("windows overlap: previous ends %v, current starts %v", previous.End, current.Start)
	}

	thisWeek := WeekWindow(parts, loc)
	if !current.Start.Equal(thisWeek.Start) || !current.End.Equal(thisWeek.End) {
		t.Errorf("weeksAgo=0 differs from current week window")
	}
}

func TestDatePartsAtConvertsZone(t *testing.T) {
	loc := testLocation(t)
	// 2024-03-15 20:00 UTC is already 2024-03-16 01:30 in Colombo (+05:30).
	utc := time.Date(2024, time.March, 15, 20, 0, 0, 0, time.UTC)
	parts := DatePartsAt(utc, loc)
	if parts.Day != 16 || parts.Hour != 1 || parts.Minute != 30 {
		t.Errorf("unexpected converted parts: %+v", parts)
	}
}
