package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs within
// a context. Fields flow through context enrichment so request-scoped values
// (request_id, session_id) appear on every log line without being threaded
// through call sites.
type LogFields struct {
	RequestID *string // per-request correlation ID
	SessionID *string // chat session ID
	Tool      *string // tool declared for the current provider call
	Component string  // component name, e.g. "planner.service.chat"
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values taking
// precedence. Context timeouts and cancellation are preserved.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
// Returns empty LogFields if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, updated LogFields) LogFields {
	result := existing

	if updated.RequestID != nil {
		result.RequestID = updated.RequestID
	}
	if updated.SessionID != nil {
		result.SessionID = updated.SessionID
	}
	if updated.Tool != nil {
		result.Tool = updated.Tool
	}
	if updated.Component != "" {
		result.Component = updated.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value.
// Useful for setting LogFields inline: logger.WithLogFields(ctx, logger.LogFields{SessionID: logger.Ptr(id)})
func Ptr[T any](v T) *T {
	return &v
}

// Truncate truncates a string to maxLen characters, appending "..." if truncated.
// Useful for logging potentially long strings like prompts or raw responses.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
