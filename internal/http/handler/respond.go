package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"pageforge.app/planner/common/llm"
	"pageforge.app/planner/internal/plan"
	"pageforge.app/planner/internal/session"
)

// respondError maps service errors to the HTTP contract: a status code plus
// a human-readable detail string. Every error is logged with the request's
// correlation context before being surfaced.
func respondError(c *gin.Context, err error) {
	ctx := c.Request.Context()
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, session.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, llm.ErrNoToolInvocation),
		errors.Is(err, llm.ErrUnexpectedTool),
		errors.Is(err, llm.ErrMalformedArguments),
		errors.Is(err, plan.ErrMalformedOutput),
		errors.Is(err, plan.ErrUnknownActionType),
		errors.Is(err, plan.ErrInvalidAction),
		errors.Is(err, plan.ErrUnsafePath):
		// Model output violated the contract; not the caller's fault, but
		// not retryable by us either.
		status = http.StatusInternalServerError
	case errors.Is(err, llm.ErrTransport):
		status = http.StatusInternalServerError
	}

	if status >= 500 {
		slog.ErrorContext(ctx, "request error", "error", err)
	} else {
		slog.WarnContext(ctx, "request error", "error", err)
	}

	c.JSON(status, gin.H{"detail": err.Error()})
}

func respondBadRequest(c *gin.Context, err error) {
	slog.WarnContext(c.Request.Context(), "invalid request body", "error", err)
	c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
}
