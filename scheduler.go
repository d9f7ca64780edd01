package main

import (
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// StartScheduler starts one goroutine per configured job. Each schedule is a
// standard 5-field cron expression (minute hour day-of-month month
// day-of-week) evaluated in the operating timezone; an empty expression
// disables the job, an invalid one disables it with a warning. Every tick
// runs one orchestration call to completion; failures are logged and the
// loop waits for the next tick.
func StartScheduler(cfg Config, svc *LeaveService) {
	startJob(cfg, "check-new", cfg.CheckSchedule, func() {
		result, err := svc.CheckNewRequests()
		if err != nil {
			log.Printf("check-new error: %v", err)
			return
		}
		log.Printf("check-new complete: %d new request(s)", result.NewTasks)
	})

	startJob(cfg, "daily-summary", cfg.DailySchedule, func() {
		result, err := svc.DailySummary("")
		if err != nil {
			log.Printf("daily-summary error: %v", err)
			return
		}
		if result.Skipped {
			log.Println("daily-summary skipped: nobody on leave today")
			return
		}
		log.Printf("daily-summary sent: %d on leave", result.Count)
	})

	startJob(cfg, "weekly-summary", cfg.WeeklySchedule, func() {
		result, err := svc.WeeklySummary("", -1)
		if err != nil {
			log.Printf("weekly-summary error: %v", err)
			return
		}
		log.Printf("weekly-summary sent for %s: %d on leave", result.WeekLabel, result.Count)
	})

	startJob(cfg, "monthly-summary", cfg.MonthlySchedule, func() {
		result, err := svc.MonthlySummary()
		if err != nil {
			log.Printf("monthly-summary error: %v", err)
			return
		}
		if result.Skipped {
			log.Println("monthly-summary skipped: nobody on leave this month")
			return
		}
		log.Printf("monthly-summary sent: %d task(s)", result.Count)
	})

	startJob(cfg, "squad-notification", cfg.SquadSchedule, func() {
		result, err := svc.SquadNotification(1)
		if err != nil {
			log.Printf("squad-notification error: %v", err)
			return
		}
		if result.Skipped {
			log.Printf("squad-notification skipped: no squad for %s", result.WeekLabel)
			return
		}
		log.Printf("squad-notification sent for %s: %s", result.WeekLabel, strings.Join(result.Squads, ", "))
	})
}

// parseSchedule parses a 5-field cron expression
// (minute hour day-of-month month day-of-week).
func parseSchedule(schedule string) (cron.Schedule, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	return parser.Parse(schedule)
}

// startJob reports whether the job was started. An empty schedule disables
// the job silently, an invalid one disables it with a warning.
func startJob(cfg Config, name, schedule string, run func()) bool {
	schedule = strings.TrimSpace(schedule)
	if schedule == "" {
		log.Printf("%s disabled (no schedule configured)", name)
		return false
	}
	sched, err := parseSchedule(schedule)
	if err != nil {
		log.Printf("Invalid %s schedule '%s': %v, job disabled", name, schedule, err)
		return false
	}
	log.Printf("%s scheduled (cron: %s, timezone: %s)", name, schedule, cfg.Timezone)

	go func() {
		for {
			now := time.Now().In(cfg.Location)
			next := sched.Next(now)
			time.Sleep(next.Sub(now))
			run()
		}
	}()
	return true
}
