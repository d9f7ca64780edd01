package main

import (
	"fmt"
	"log"
	"strings"
	"time"
)

const (
	newRequestLookback = 2 * time.Hour
	newRequestLimit    = 100
)

// LeaveService composes the range calculator, classifier, extractor and
// formatter into the scheduled use cases. Every operation is stateless apart
// from the notified-set side effect of CheckNewRequests.
type LeaveService struct {
	cfg      Config
	clickup  *ClickUpClient
	discord  *DiscordWebhook
	mirror   *SlackMirror
	notified NotifiedStore
	now      func() time.Time
}

func NewLeaveService(cfg Config, clickup *ClickUpClient, discord *DiscordWebhook, mirror *SlackMirror, notified NotifiedStore) *LeaveService {
	return &LeaveService{
		cfg:      cfg,
		clickup:  clickup,
		discord:  discord,
		mirror:   mirror,
		notified: notified,
		now:      time.Now,
	}
}

// send posts to the primary webhook and then best-effort mirrors to Slack.
// A mirror failure is logged, never returned.
func (s *LeaveService) send(embeds ...*Embed) error {
	if err := s.discord.Post(embeds...); err != nil {
		return err
	}
	if err := s.mirror.Mirror(embeds...); err != nil {
		log.Printf("Slack mirror error: %v", err)
	}
	return nil
}

func (s *LeaveService) requireConfigured() error {
	if !s.clickup.Configured() {
		return fmt.Errorf("%w: clickup_api_token", ErrNotConfigured)
	}
	if !s.discord.Configured() {
		return fmt.Errorf("%w: discord_webhook_url", ErrNotConfigured)
	}
	return nil
}

type TaskSummary struct {
	Name    string `json:"name"`
	Creator string `json:"creator,omitempty"`
}

type CheckResult struct {
	NewTasks int           `json:"newTasks"`
	Tasks    []TaskSummary `json:"tasks"`
}

// CheckNewRequests fetches the newest tasks, keeps leave-form submissions
// created within the last two hours that were not notified before, and sends
// one individual notification per survivor. An upstream fetch failure
// degrades to an empty result so a transient outage never breaks a
// scheduled run; a delivery failure aborts the call (records already sent
// stay marked, so the next tick does not re-send them).
func (s *LeaveService) CheckNewRequests() (CheckResult, error) {
	result := CheckResult{Tasks: []TaskSummary{}}
	if err := s.requireConfigured(); err != nil {
		return result, err
	}

	tasks, err := s.clickup.RecentLeaveTasks(newRequestLimit)
	if err != nil {
		log.Printf("check-new fetch error: %v", err)
		return result, nil
	}

	cutoff := s.now().Add(-newRequestLookback)
	var fresh []Task
	for _, t := range tasks {
		created := millisToTime(int64(t.DateCreated), s.cfg.Location)
		if created.IsZero() {
			created = s.now()
		}
		if !created.After(cutoff) {
			continue
		}
		if !IsLeaveFormTask(t, s.clickup.LeaveListID) {
			continue
		}
		seen, err := s.notified.Notified(t.ID)
		if err != nil {
			// Prefer a possible duplicate over a missed notification.
			log.Printf("notified-store read error for %s: %v", t.ID, err)
		}
		if seen {
			continue
		}
		fresh = append(fresh, t)
	}

	// Sequential sends keep notified-set ordering and avoid duplicate sends
	// under partial failure.
	for _, t := range fresh {
		if err := s.send(BuildNewLeaveNotification(s.cfg, t, s.now())); err != nil {
			return result, err
		}
		if err := s.notified.MarkNotified(t.ID); err != nil {
			log.Printf("notified-store write error for %s: %v", t.ID, err)
		}
		result.NewTasks++
		result.Tasks = append(result.Tasks, TaskSummary{Name: t.Name, Creator: t.Creator.Username})
	}
	return result, nil
}

type DailyResult struct {
	Count   int  `json:"count"`
	Skipped bool `json:"skipped,omitempty"`
}

// DailySummary reports who is on leave on targetDate (YYYY-MM-DD) or today
// when empty. Nothing is sent when nobody is on leave.
func (s *LeaveService) DailySummary(targetDate string) (DailyResult, error) {
	if err := s.requireConfigured(); err != nil {
		return DailyResult{}, err
	}

	parts := DatePartsAt(s.now(), s.cfg.Location)
	if targetDate != "" {
		var err error
		parts, err = ParseDate(targetDate, s.cfg.Location)
		if err != nil {
			return DailyResult{}, err
		}
	}
	window := DayWindow(parts, s.cfg.Location)

	tasks, err := s.clickup.LeaveTasks()
	if err != nil {
		return DailyResult{}, err
	}
	filtered := FilterTasksByWindow(tasks, window, s.cfg.Location)
	if len(filtered) == 0 {
		return DailyResult{Skipped: true}, nil
	}
	if err := s.send(BuildDailySummary(s.cfg, filtered, targetDate, s.now())); err != nil {
		return DailyResult{}, err
	}
	return DailyResult{Count: len(filtered)}, nil
}

type WeeklyResult struct {
	Count     int       `json:"count"`
	WeekStart time.Time `json:"weekStart"`
	WeekEnd   time.Time `json:"weekEnd"`
	WeekLabel string    `json:"weekLabel"`
}

// WeeklySummary reports the business week containing date (YYYY-MM-DD), or
// weeksAgo weeks back when date is empty and weeksAgo >= 0, or the current
// week. The weekly summary always sends, even when nobody is on leave.
func (s *LeaveService) WeeklySummary(date string, weeksAgo int) (WeeklyResult, error) {
	if err := s.requireConfigured(); err != nil {
		return WeeklyResult{}, err
	}

	loc := s.cfg.Location
	var window Window
	switch {
	case date != "":
		parts, err := ParseDate(date, loc)
		if err != nil {
			return WeeklyResult{}, err
		}
		window = WeekWindow(parts, loc)
	case weeksAgo >= 0:
		window = WeekWindowByWeeksAgo(DatePartsAt(s.now(), loc), weeksAgo, loc)
	default:
		window = WeekWindow(DatePartsAt(s.now(), loc), loc)
	}

	tasks, err := s.clickup.RecentLeaveTasks(newRequestLimit)
	if err != nil {
		return WeeklyResult{}, err
	}
	filtered := FilterTasksByWindow(tasks, window, loc)
	if err := s.send(BuildWeeklySummary(s.cfg, filtered, window, s.now())); err != nil {
		return WeeklyResult{}, err
	}
	return WeeklyResult{
		Count:     len(filtered),
		WeekStart: window.Start,
		WeekEnd:   window.End,
		WeekLabel: WeekLabel(window),
	}, nil
}

type MonthlyResult struct {
	Count   int  `json:"count"`
	Skipped bool `json:"skipped,omitempty"`
}

// MonthlySummary reports the current month grouped per person with day
// totals. Nothing is sent when nobody is on leave.
func (s *LeaveService) MonthlySummary() (MonthlyResult, error) {
	if err := s.requireConfigured(); err != nil {
		return MonthlyResult{}, err
	}

	loc := s.cfg.Location
	month := MonthWindow(DatePartsAt(s.now(), loc), loc)
	monthName := month.Start.Format("January")

	tasks, err := s.clickup.LeaveTasks()
	if err != nil {
		return MonthlyResult{}, err
	}
	filtered := FilterTasksByWindow(tasks, month, loc)
	if len(filtered) == 0 {
		return MonthlyResult{Skipped: true}, nil
	}
	if err := s.send(BuildMonthlySummary(s.cfg, filtered, month, monthName, s.now())); err != nil {
		return MonthlyResult{}, err
	}
	return MonthlyResult{Count: len(filtered)}, nil
}

type SquadResult struct {
	Count      int      `json:"count"`
	Squads     []string `json:"squads"`
	WeekLabel  string   `json:"weekLabel"`
	WeeksAhead int      `json:"weeksAhead"`
	Skipped    bool     `json:"skipped,omitempty"`
}

// SquadOnWeek looks up which squads the work calendar puts on the week
// weeksAhead weeks out. Pure query, nothing is sent.
func (s *LeaveService) SquadOnWeek(weeksAhead int) (SquadResult, error) {
	if weeksAhead < 1 {
		weeksAhead = 1
	}
	if !s.clickup.Configured() {
		return SquadResult{}, fmt.Errorf("%w: clickup_api_token", ErrNotConfigured)
	}

	loc := s.cfg.Location
	window := WeekWindowByOffset(DatePartsAt(s.now(), loc), weeksAhead, loc)
	tasks, err := s.clickup.WorkCalendarTasks()
	if err != nil {
		return SquadResult{}, err
	}

	squads := []string{}
	for _, t := range FilterTasksByWindow(tasks, window, loc) {
		if name := strings.TrimSpace(t.Name); name != "" {
			squads = append(squads, name)
		}
	}
	return SquadResult{
		Count:      len(squads),
		Squads:     squads,
		WeekLabel:  WeekLabel(window),
		WeeksAhead: weeksAhead,
	}, nil
}

// SquadNotification announces the squads on duty weeksAhead weeks out.
// Nothing is sent when the work calendar has no squad for that week.
func (s *LeaveService) SquadNotification(weeksAhead int) (SquadResult, error) {
	if err := s.requireConfigured(); err != nil {
		return SquadResult{}, err
	}
	result, err := s.SquadOnWeek(weeksAhead)
	if err != nil {
		return result, err
	}
	if result.Count == 0 {
		result.Skipped = true
		return result, nil
	}

	loc := s.cfg.Location
	window := WeekWindowByOffset(DatePartsAt(s.now(), loc), result.WeeksAhead, loc)
	if err := s.send(BuildSquadNotice(s.cfg, result.Squads, window, s.now())); err != nil {
		return result, err
	}
	return result, nil
}

type LeaveEntry struct {
	Employee  string `json:"employee"`
	LeaveType string `json:"leaveType"`
	FromDate  string `json:"fromDate"`
	ToDate    string `json:"toDate"`
	Reason    string `json:"reason,omitempty"`
	TaskURL   string `json:"taskUrl,omitempty"`
	TaskName  string `json:"taskName,omitempty"`
}

type OnLeaveResult struct {
	Date             string       `json:"date"`
	Count            int          `json:"count"`
	EmployeesOnLeave []LeaveEntry `json:"employeesOnLeave"`
}

// EmployeesOnLeave answers who is on leave on a given date. Pure query,
// nothing is sent.
func (s *LeaveService) EmployeesOnLeave(date string) (OnLeaveResult, error) {
	if !s.clickup.Configured() {
		return OnLeaveResult{}, fmt.Errorf("%w: clickup_api_token", ErrNotConfigured)
	}
	parts, err := ParseDate(date, s.cfg.Location)
	if err != nil {
		return OnLeaveResult{}, err
	}
	window := DayWindow(parts, s.cfg.Location)

	tasks, err := s.clickup.LeaveTasks()
	if err != nil {
		return OnLeaveResult{}, err
	}

	entries := []LeaveEntry{}
	for _, t := range FilterTasksByWindow(tasks, window, s.cfg.Location) {
		p := LeavePeriodOf(t, s.cfg.Location)
		entry := LeaveEntry{
			Employee:  PersonName(t),
			LeaveType: p.LeaveType,
			Reason:    LeaveReason(t),
			TaskURL:   t.URL,
			TaskName:  t.Name,
		}
		if !p.From.IsZero() {
			entry.FromDate = fmtShortDate(p.From)
		}
		if !p.To.IsZero() {
			entry.ToDate = fmtShortDate(p.To)
		}
		entries = append(entries, entry)
	}
	return OnLeaveResult{Date: date, Count: len(entries), EmployeesOnLeave: entries}, nil
}
