package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the thin HTTP front end over the orchestrator. Every
// route is a direct passthrough to one orchestration call; no business
// logic lives here.
func NewRouter(cfg Config, svc *LeaveService, clickup *ClickUpClient) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "timestamp": time.Now().UTC().Format(time.RFC3339)})
	})

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "AWAKE",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"message":   "App is active and ready for scheduled tasks",
		})
	})

	r.GET("/check-now", func(c *gin.Context) {
		result, err := svc.CheckNewRequests()
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"newTasks": result.NewTasks,
			"tasks":    result.Tasks,
			"message":  fmt.Sprintf("Immediate check completed, %d new request(s)", result.NewTasks),
		})
	})

	r.GET("/test-daily-summary", func(c *gin.Context) {
		date := strings.TrimSpace(c.Query("date"))
		result, err := svc.DailySummary(date)
		if err != nil {
			abortWithError(c, err)
			return
		}
		msg := "Daily summary sent for today"
		if date != "" {
			msg = "Daily summary sent for " + date
		}
		if result.Skipped {
			msg = "Daily summary skipped, nobody on leave"
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": msg,
			"date":    date,
			"count":   result.Count,
			"skipped": result.Skipped,
		})
	})

	r.GET("/test-weekly-summary", func(c *gin.Context) {
		date := strings.TrimSpace(c.Query("date"))
		weeksAgo := -1
		if raw := c.Query("weeksAgo"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
				weeksAgo = n
			}
		}
		result, err := svc.WeeklySummary(date, weeksAgo)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   fmt.Sprintf("Weekly summary sent for %s", result.WeekLabel),
			"weekStart": result.WeekStart.Format(time.RFC3339),
			"weekEnd":   result.WeekEnd.Format(time.RFC3339),
			"weekLabel": result.WeekLabel,
			"count":     result.Count,
		})
	})

	r.GET("/test-monthly-summary", func(c *gin.Context) {
		result, err := svc.MonthlySummary()
		if err != nil {
			abortWithError(c, err)
			return
		}
		msg := "Monthly summary sent"
		if result.Skipped {
			msg = "Monthly summary skipped, nobody on leave this month"
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": msg,
			"count":   result.Count,
			"skipped": result.Skipped,
		})
	})

	r.GET("/test-squad-notification", func(c *gin.Context) {
		result, err := svc.SquadNotification(weeksAheadParam(c))
		if err != nil {
			abortWithError(c, err)
			return
		}
		msg := fmt.Sprintf("Squad notification sent for %s", result.WeekLabel)
		if result.Skipped {
			msg = fmt.Sprintf("Squad notification skipped, no squad for %s", result.WeekLabel)
		}
		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"message":    msg,
			"count":      result.Count,
			"squads":     result.Squads,
			"weekLabel":  result.WeekLabel,
			"weeksAhead": result.WeeksAhead,
			"skipped":    result.Skipped,
		})
	})

	// Preview only: same lookup as the squad notification without sending.
	r.GET("/squad-next-week", func(c *gin.Context) {
		weeksAhead := weeksAheadParam(c)
		result, err := svc.SquadOnWeek(weeksAhead)
		if err != nil {
			abortWithError(c, err)
			return
		}
		msg := fmt.Sprintf("No squad assigned for %s in the work calendar", result.WeekLabel)
		if result.Count > 0 {
			msg = fmt.Sprintf("Squad for %s: %s", result.WeekLabel, strings.Join(result.Squads, ", "))
		}
		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"weeksAhead": result.WeeksAhead,
			"weekLabel":  result.WeekLabel,
			"squads":     result.Squads,
			"count":      result.Count,
			"message":    msg,
			"note":       fmt.Sprintf("Preview only. To send, call GET /test-squad-notification?weeksAhead=%d", weeksAhead),
		})
	})

	r.GET("/check-leave-on-date/:date", func(c *gin.Context) {
		result, err := svc.EmployeesOnLeave(c.Param("date"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":          true,
			"date":             result.Date,
			"count":            result.Count,
			"employeesOnLeave": result.EmployeesOnLeave,
			"message":          fmt.Sprintf("Found %d employee(s) on leave on %s", result.Count, result.Date),
		})
	})

	r.GET("/find-lists", func(c *gin.Context) {
		if cfg.ClickUpWorkspaceID == "" {
			abortWithError(c, fmt.Errorf("%w: clickup_workspace_id", ErrNotConfigured))
			return
		}
		h, err := clickup.Hierarchy(cfg.ClickUpWorkspaceID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"lists":   h.Lists,
			"message": fmt.Sprintf("Found %d lists in workspace", len(h.Lists)),
		})
	})

	r.GET("/find-by-name", func(c *gin.Context) {
		if cfg.ClickUpWorkspaceID == "" {
			abortWithError(c, fmt.Errorf("%w: clickup_workspace_id", ErrNotConfigured))
			return
		}
		term := strings.TrimSpace(c.Query("q"))
		if term == "" {
			term = "work calendar"
		}
		found, err := clickup.FindByName(cfg.ClickUpWorkspaceID, term)
		if err != nil {
			abortWithError(c, err)
			return
		}
		total := len(found.Lists) + len(found.Folders) + len(found.Spaces)
		msg := fmt.Sprintf("No list, folder, or space named like %q", term)
		if total > 0 {
			msg = fmt.Sprintf("Found %d match(es) for %q", total, term)
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"search":  term,
			"message": msg,
			"spaces":  found.Spaces,
			"folders": found.Folders,
			"lists":   found.Lists,
		})
	})

	r.GET("/debug-timezone", func(c *gin.Context) {
		now := time.Now()
		parts := DatePartsAt(now, cfg.Location)
		day := DayWindow(parts, cfg.Location)
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"timezone": cfg.Timezone,
			"serverTime": gin.H{
				"utc":   now.UTC().Format(time.RFC3339),
				"local": now.In(cfg.Location).Format("2006-01-02 15:04:05"),
			},
			"dateParts": gin.H{
				"year":    parts.Year,
				"month":   int(parts.Month),
				"day":     parts.Day,
				"weekday": parts.Weekday.String(),
			},
			"todayWindow": gin.H{
				"start": day.Start.Format(time.RFC3339),
				"end":   day.End.Format(time.RFC3339),
			},
		})
	})

	return r
}

// weeksAheadParam reads ?weeksAhead= with a floor of 1.
func weeksAheadParam(c *gin.Context) int {
	weeksAhead := 1
	if raw := c.Query("weeksAhead"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 1 {
			weeksAhead = n
		}
	}
	return weeksAhead
}

// abortWithError maps the error taxonomy to HTTP statuses: bad dates are the
// caller's fault, missing config means the service cannot serve, upstream
// and delivery failures are gateway errors.
func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrInvalidDate):
		status = http.StatusBadRequest
	case errors.Is(err, ErrNotConfigured):
		status = http.StatusServiceUnavailable
	case errors.Is(err, ErrUpstream), errors.Is(err, ErrDelivery):
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}
