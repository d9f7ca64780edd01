package main

import (
	"testing"
	"time"
)

func TestStartJobDisablesEmptyAndInvalidSchedules(t *testing.T) {
	loc := testLocation(t)
	cfg := Config{Timezone: "Asia/Colombo", Location: loc}
	neverRuns := func() { t.Error("a disabled job must not run") }

	tests := []struct {
		name     string
		schedule string
		enabled  bool
	}{
		{"empty disables", "", false},
		{"blank disables", "   ", false},
		{"garbage disables", "not a cron expression", false},
		{"out-of-range minute disables", "61 * * * *", false},
		{"six fields disables", "0 0 9 * * 1-5", false},
		{"every half hour", "*/30 * * * *", true},
		{"business mornings", "0 9 * * 1-5", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := neverRuns
			if tt.enabled {
				// Enabled jobs sleep until their next tick; they never fire
				// within the test.
				run = func() {}
			}
			if got := startJob(cfg, "test-job", tt.schedule, run); got != tt.enabled {
				t.Errorf("startJob(%q) = %v, want %v", tt.schedule, got, tt.enabled)
			}
		})
	}
}

func TestParseScheduleNextTick(t *testing.T) {
	loc := testLocation(t)
	sched, err := parseSchedule("0 9 * * 1-5")
	if err != nil {
		t.Fatalf("parseSchedule failed: %v", err)
	}
	// From a Friday afternoon the next business-morning tick is Monday 09:00.
	after := time.Date(2024, time.March, 15, 15, 0, 0, 0, loc)
	next := sched.Next(after)
	if next.Weekday() != time.Monday || next.Day() != 18 || next.Hour() != 9 {
		t.Errorf("next tick = %v, want Monday the 18th at 09:00", next)
	}
}
