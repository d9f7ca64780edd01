package main

import "errors"

// Error taxonomy. Callers match with errors.Is; everything else wraps one of
// these with fmt.Errorf("...: %w", err) for context.
var (
	// ErrNotConfigured means a required credential or endpoint is missing
	// (ClickUp token, list id, webhook URL). Fatal to the call, not the process.
	ErrNotConfigured = errors.New("not configured")

	// ErrInvalidDate means a caller-supplied date string is not a valid
	// YYYY-MM-DD calendar date.
	ErrInvalidDate = errors.New("invalid date format, use YYYY-MM-DD")

	// ErrUpstream means the task API returned a non-success response.
	ErrUpstream = errors.New("task API error")

	// ErrDelivery means the chat webhook rejected a message.
	ErrDelivery = errors.New("webhook delivery error")
)
