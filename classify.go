package main

import "strings"

// The upstream system has no structural "this is a leave form" tag, so
// classification is a best-effort ordered heuristic: list identity first,
// then list-name keywords, then task-name keywords. It prefers false
// positives over missed submissions.
var (
	leaveListKeywords = []string{
		"form", "leave", "vacation", "sick", "time off", "pto",
		"holiday", "hr", "human resources", "request", "submission",
	}
	leaveTaskKeywords = []string{
		"form", "submission", "leave", "vacation", "sick", "time off",
		"pto", "holiday", "request",
	}
)

// IsLeaveFormTask reports whether a task looks like a leave-form submission.
// Rules short-circuit in order; all matching is case-insensitive.
func IsLeaveFormTask(task Task, leaveListID string) bool {
	if leaveListID != "" && task.List.ID == leaveListID {
		return true
	}
	listName := strings.ToLower(task.List.Name)
	for _, k := range leaveListKeywords {
		if strings.Contains(listName, k) {
			return true
		}
	}
	taskName := strings.ToLower(task.Name)
	for _, k := range leaveTaskKeywords {
		if strings.Contains(taskName, k) {
			return true
		}
	}
	return false
}
