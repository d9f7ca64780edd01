package main

import (
	"fmt"
	"strings"
	"time"
)

// Discord caps embed field values at 1024 characters; keep a little headroom
// for the truncation marker.
const (
	embedFieldValueLimit = 1024
	maxChunkLen          = embedFieldValueLimit - 4
)

const (
	colorSummary = 0x4a90e2
	colorMonthly = 0xff6b35
	colorNew     = 0x00d4aa
	colorSquad   = 0x9b59b6
)

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type EmbedFooter struct {
	Text string `json:"text"`
}

type Embed struct {
	Title       string       `json:"title"`
	Color       int          `json:"color"`
	Description string       `json:"description"`
	Fields      []EmbedField `json:"fields"`
	Timestamp   string       `json:"timestamp"`
	Footer      EmbedFooter  `json:"footer"`
}

func fmtShortDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// WeekLabel renders a window as "Jan 6, 2025 - Jan 10, 2025".
func WeekLabel(w Window) string {
	return fmt.Sprintf("%s - %s", fmtShortDate(w.Start), fmtShortDate(w.End))
}

func plural(n int, singular string) string {
	if n == 1 {
		return singular
	}
	return singular + "s"
}

func (cfg Config) footer() EmbedFooter {
	return EmbedFooter{Text: fmt.Sprintf("%s • Leave Management", cfg.TeamName)}
}

// leaveLine renders one "• **Name** - Type (dates)" bullet.
func leaveLine(cfg Config, task Task) string {
	name := PersonName(task)
	p := LeavePeriodOf(task, cfg.Location)
	line := fmt.Sprintf("• **%s** - %s", name, p.LeaveType)
	switch {
	case !p.From.IsZero() && !p.To.IsZero():
		from, to := fmtShortDate(p.From), fmtShortDate(p.To)
		if from == to {
			line += fmt.Sprintf(" (%s)", from)
		} else {
			line += fmt.Sprintf(" (%s to %s)", from, to)
		}
	case !p.From.IsZero():
		line += fmt.Sprintf(" (%s)", fmtShortDate(p.From))
	case !p.To.IsZero():
		line += fmt.Sprintf(" (%s)", fmtShortDate(p.To))
	}
	return line
}

// BuildDailySummary renders the daily report embed. targetDate is empty for
// "today" runs and a YYYY-MM-DD string for point-in-time runs.
func BuildDailySummary(cfg Config, tasks []Task, targetDate string, now time.Time) *Embed {
	dayRef := "today"
	title := "📅 Daily Leave Report - Today"
	desc := fmt.Sprintf("Here's who's taking time off today at %s", cfg.TeamName)
	if targetDate != "" {
		dayRef = "on " + targetDate
		title = "📅 Daily Leave Report - " + targetDate
		desc = fmt.Sprintf("Here's who's taking time off on %s at %s", targetDate, cfg.TeamName)
	}

	embed := &Embed{
		Title:       title,
		Color:       colorSummary,
		Description: desc,
		Fields: []EmbedField{{
			Name:  "📊 Team Status",
			Value: fmt.Sprintf("**%d** %s on leave %s", len(tasks), plural(len(tasks), "member"), dayRef),
		}},
		Timestamp: now.Format(time.RFC3339),
		Footer:    cfg.footer(),
	}
	if targetDate != "" {
		embed.Fields = append(embed.Fields, EmbedField{Name: "📅 Date", Value: fmt.Sprintf("**%s**", targetDate), Inline: true})
	}

	if len(tasks) == 0 {
		embed.Fields = append(embed.Fields, EmbedField{
			Name:  "✅ Status",
			Value: fmt.Sprintf("Everyone is working %s!", dayRef),
		})
		return embed
	}

	lines := make([]string, 0, len(tasks))
	for _, t := range tasks {
		lines = append(lines, leaveLine(cfg, t))
	}
	addChunkedField(embed, "👥 Taking Time Off", strings.Join(lines, "\n"))
	return embed
}

// BuildWeeklySummary renders the business-week embed. Unlike the daily
// summary it always renders, showing an all-clear state when empty.
func BuildWeeklySummary(cfg Config, tasks []Task, week Window, now time.Time) *Embed {
	status := fmt.Sprintf("**%d** %s on leave this week", len(tasks), plural(len(tasks), "member"))
	if len(tasks) == 0 {
		status = "**0** leave requests this week"
	}
	embed := &Embed{
		Title:       "📅 Weekly Leave Summary",
		Color:       colorSummary,
		Description: fmt.Sprintf("Leave requests from %s at %s", WeekLabel(week), cfg.TeamName),
		Fields:      []EmbedField{{Name: "📊 Team Status", Value: status}},
		Timestamp:   now.Format(time.RFC3339),
		Footer:      cfg.footer(),
	}

	if len(tasks) == 0 {
		embed.Fields = append(embed.Fields, EmbedField{Name: "✅ Status", Value: "Everyone is working this week!"})
		return embed
	}
	lines := make([]string, 0, len(tasks))
	for _, t := range tasks {
		lines = append(lines, leaveLine(cfg, t))
	}
	addChunkedField(embed, "👥 Taking Time Off This Week", strings.Join(lines, "\n\n"))
	return embed
}

// BuildMonthlySummary renders the per-person monthly overview with day
// counts clipped to the month window and a per-person total.
func BuildMonthlySummary(cfg Config, tasks []Task, month Window, monthName string, now time.Time) *Embed {
	// Group by person, preserving first-seen order.
	var people []string
	byPerson := make(map[string][]Task)
	for _, t := range tasks {
		name := PersonName(t)
		if _, seen := byPerson[name]; !seen {
			people = append(people, name)
		}
		byPerson[name] = append(byPerson[name], t)
	}

	var blocks []string
	for _, person := range people {
		totalDays := 0
		var periodLines []string
		for _, t := range byPerson[person] {
			p := LeavePeriodOf(t, cfg.Location)
			days := DaysInMonth(p.From, p.To, month)
			totalDays += days
			line := fmt.Sprintf("  • %s: ", p.LeaveType)
			switch {
			case !p.From.IsZero() && !p.To.IsZero():
				from, to := fmtShortDate(p.From), fmtShortDate(p.To)
				if from == to {
					line += from
				} else {
					line += fmt.Sprintf("%s to %s", from, to)
				}
				if days > 0 {
					line += fmt.Sprintf(" (%d %s)", days, plural(days, "day"))
				}
			case !p.From.IsZero():
				line += fmtShortDate(p.From)
			case !p.To.IsZero():
				line += fmtShortDate(p.To)
			default:
				line += "-"
			}
			periodLines = append(periodLines, line)
		}
		blocks = append(blocks, fmt.Sprintf("**%s**\n%s\n  **Total: %d %s this month**",
			person, strings.Join(periodLines, "\n"), totalDays, plural(totalDays, "day")))
	}

	embed := &Embed{
		Title:       "📊 Monthly Leave Overview",
		Color:       colorMonthly,
		Description: fmt.Sprintf("Monthly summary of all leave requests at %s", cfg.TeamName),
		Fields: []EmbedField{{
			Name:  "📊 Team Status",
			Value: fmt.Sprintf("**%d** %s on leave in %s", len(people), plural(len(people), "member"), monthName),
		}},
		Timestamp: now.Format(time.RFC3339),
		Footer:    cfg.footer(),
	}
	if len(blocks) == 0 {
		embed.Fields = append(embed.Fields, EmbedField{Name: "✅ Status", Value: "Nobody on leave this month!"})
		return embed
	}
	addChunkedField(embed, "👥 Taking Time Off This Month", strings.Join(blocks, "\n\n"))
	return embed
}

// BuildNewLeaveNotification renders the individual new-submission embed with
// a dump of the form's custom fields. The free-text reason stays out of the
// channel message.
func BuildNewLeaveNotification(cfg Config, task Task, now time.Time) *Embed {
	submitter := task.Creator.Username
	if submitter == "" {
		submitter = "Unknown User"
	}
	embed := &Embed{
		Title:       "🎯 New Leave Request",
		Color:       colorNew,
		Description: fmt.Sprintf("A new leave request has been submitted at %s.", cfg.TeamName),
		Fields: []EmbedField{
			{Name: "👤 Team Member", Value: fmt.Sprintf("**%s**", submitter), Inline: true},
			{Name: "📅 Submitted", Value: fmt.Sprintf("**%s**", now.In(cfg.Location).Format("Jan 2, 2006 15:04")), Inline: true},
		},
		Timestamp: now.Format(time.RFC3339),
		Footer:    cfg.footer(),
	}
	for _, f := range task.CustomFields {
		if strings.Contains(strings.ToLower(f.Name), "reason") {
			continue
		}
		value := noticeFieldValue(f, cfg.Location)
		if value == "" {
			continue
		}
		embed.Fields = append(embed.Fields, EmbedField{Name: "📋 " + f.Name, Value: value, Inline: true})
	}
	if task.URL != "" {
		embed.Fields = append(embed.Fields, EmbedField{Name: "🔗 Task Link", Value: fmt.Sprintf("[View Full Request](%s)", task.URL)})
	}
	return embed
}

// noticeFieldValue renders any custom field kind for the new-submission dump.
func noticeFieldValue(f CustomField, loc *time.Location) string {
	switch f.Kind {
	case FieldDate:
		if f.Timestamp == 0 {
			return ""
		}
		return fmtShortDate(millisToTime(f.Timestamp, loc))
	case FieldSingleSelect, FieldMultiSelect:
		return fieldDisplayValue(f)
	default:
		return f.Text
	}
}

// BuildSquadNotice renders the squad-on-week announcement.
func BuildSquadNotice(cfg Config, squads []string, week Window, now time.Time) *Embed {
	label := WeekLabel(week)
	list := "_No squad assigned for that week in the work calendar._"
	if len(squads) > 0 {
		lines := make([]string, 0, len(squads))
		for _, s := range squads {
			lines = append(lines, fmt.Sprintf("• **%s**", s))
		}
		list = strings.Join(lines, "\n")
	}
	return &Embed{
		Title:       "📅 Squad On Next Week",
		Color:       colorSquad,
		Description: fmt.Sprintf("Here's who's on for the week of %s.", label),
		Fields: []EmbedField{
			{Name: "📆 Week", Value: label, Inline: true},
			{Name: "👥 Squad on", Value: list},
		},
		Timestamp: now.Format(time.RFC3339),
		Footer:    EmbedFooter{Text: fmt.Sprintf("%s • Work Calendar", cfg.TeamName)},
	}
}

// addChunkedField appends value as one field, or as the fewest ordered
// "(i/n)"-numbered fields when it would blow the per-field limit. Splits
// happen on blank-line block boundaries; a single block that is itself over
// the limit is hard-truncated with an ellipsis marker.
func addChunkedField(embed *Embed, name, value string) {
	if len(value) <= maxChunkLen {
		embed.Fields = append(embed.Fields, EmbedField{Name: name, Value: value})
		return
	}
	var chunks []string
	current := ""
	for _, block := range strings.Split(value, "\n\n") {
		withBlock := block
		if current != "" {
			withBlock = current + "\n\n" + block
		}
		if len(withBlock) <= maxChunkLen {
			current = withBlock
			continue
		}
		if current != "" {
			chunks = append(chunks, current)
		}
		if len(block) <= maxChunkLen {
			current = block
		} else {
			current = block[:maxChunkLen-3] + "..."
		}
	}
	if current != "" {
		chunks = append(chunks, current)
	}
	for i, chunk := range chunks {
		fieldName := name
		if len(chunks) > 1 {
			fieldName = fmt.Sprintf("%s (%d/%d)", name, i+1, len(chunks))
		}
		embed.Fields = append(embed.Fields, EmbedField{Name: fieldName, Value: chunk})
	}
}
