package main

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// PersonName resolves who a leave task belongs to: the task title if present,
// else the creator's username, else any custom field whose name mentions
// "name", else "Unknown".
func PersonName(task Task) string {
	if name := strings.TrimSpace(task.Name); name != "" {
		return name
	}
	if task.Creator.Username != "" {
		return task.Creator.Username
	}
	for _, f := range task.CustomFields {
		if !strings.Contains(strings.ToLower(f.Name), "name") {
			continue
		}
		if v := fieldDisplayValue(f); v != "" {
			return v
		}
	}
	return "Unknown"
}

// LeavePeriodOf derives {type, from, to} for a task. Custom fields win over
// the task's own start/due dates; a period with only one known boundary
// mirrors it to the other, so a single-day leave has identical from/to.
func LeavePeriodOf(task Task, loc *time.Location) LeavePeriod {
	period := LeavePeriod{LeaveType: "Leave"}
	for _, f := range task.CustomFields {
		name := strings.ToLower(f.Name)
		switch {
		case f.Kind == FieldSingleSelect && strings.Contains(name, "type"):
			if len(f.Selected) > 0 {
				period.LeaveType = resolveOption(f, f.Selected[0])
			}
		case strings.Contains(name, "from"):
			if ms := fieldMillis(f); ms != 0 {
				period.From = millisToTime(ms, loc)
			}
		case strings.Contains(name, "to"):
			if ms := fieldMillis(f); ms != 0 {
				period.To = millisToTime(ms, loc)
			}
		}
	}
	if period.From.IsZero() && task.StartDate != 0 {
		period.From = millisToTime(int64(task.StartDate), loc)
	}
	if period.To.IsZero() && task.DueDate != 0 {
		period.To = millisToTime(int64(task.DueDate), loc)
	}
	if period.From.IsZero() {
		period.From = period.To
	}
	if period.To.IsZero() {
		period.To = period.From
	}
	return period
}

// LeaveReason pulls the free-text reason field, if any. The last matching
// field wins.
func LeaveReason(task Task) string {
	reason := ""
	for _, f := range task.CustomFields {
		if strings.Contains(strings.ToLower(f.Name), "reason") {
			reason = f.Text
		}
	}
	return reason
}

// MatchesWindow reports whether any of a task's date sources falls in the
// window: its due date, the [start, due] interval when the due date lies past
// the window, or any date-typed custom field. The union is deliberate - the
// "actual leave date" lands in different places on different records, and a
// task is allowed to match several windows at once.
func MatchesWindow(task Task, w Window, loc *time.Location) bool {
	if task.DueDate != 0 {
		due := millisToTime(int64(task.DueDate), loc)
		if w.Contains(due) {
			return true
		}
		if due.After(w.End) && task.StartDate != 0 {
			from := millisToTime(int64(task.StartDate), loc)
			if !from.After(w.End) && !due.Before(w.Start) {
				return true
			}
		}
	}
	for _, f := range task.CustomFields {
		if f.Kind != FieldDate || f.Timestamp == 0 {
			continue
		}
		if w.Contains(millisToTime(f.Timestamp, loc)) {
			return true
		}
	}
	return false
}

func FilterTasksByWindow(tasks []Task, w Window, loc *time.Location) []Task {
	var matched []Task
	for _, t := range tasks {
		if MatchesWindow(t, w, loc) {
			matched = append(matched, t)
		}
	}
	return matched
}

// DaysInMonth counts the inclusive days of [from, to] clipped to the month
// window. Used only for monthly aggregate totals, never for window matching.
func DaysInMonth(from, to time.Time, month Window) int {
	if from.IsZero() || to.IsZero() {
		return 0
	}
	if from.Before(month.Start) {
		from = month.Start
	}
	if to.After(month.End) {
		to = month.End
	}
	if from.After(to) {
		return 0
	}
	return int(math.Round(to.Sub(from).Hours()/24)) + 1
}

// fieldMillis extracts an epoch-millis timestamp from a field: date fields
// carry one directly, other kinds count if their text parses as an integer.
func fieldMillis(f CustomField) int64 {
	if f.Kind == FieldDate {
		return f.Timestamp
	}
	ms, err := strconv.ParseInt(f.Text, 10, 64)
	if err != nil {
		return 0
	}
	return ms
}

// resolveOption maps a selected raw value (option id or order index) to the
// option's display label, falling back to the raw value.
func resolveOption(f CustomField, selected string) string {
	for _, o := range f.Options {
		if o.ID == selected || strconv.Itoa(o.OrderIndex) == selected {
			return o.Display()
		}
	}
	return selected
}

// fieldDisplayValue renders any field kind as display text.
func fieldDisplayValue(f CustomField) string {
	switch f.Kind {
	case FieldSingleSelect:
		if len(f.Selected) > 0 {
			return resolveOption(f, f.Selected[0])
		}
	case FieldMultiSelect:
		var labels []string
		for _, sel := range f.Selected {
			labels = append(labels, resolveOption(f, sel))
		}
		return strings.Join(labels, ", ")
	case FieldDate:
		if f.Timestamp != 0 {
			return strconv.FormatInt(f.Timestamp, 10)
		}
	default:
		return f.Text
	}
	return ""
}
