package session

import (
	"context"
	"errors"

	"pageforge.app/planner/common/llm"
)

// ErrNotFound is returned by Get for an unknown session ID.
var ErrNotFound = errors.New("session not found")

// Store holds ordered conversation histories keyed by session ID. Turns are
// append-only for the process (or store) lifetime; nothing is mutated in
// place or deleted. Implementations must be safe for concurrent use — the
// same session may be driven from concurrent requests.
type Store interface {
	// Get returns the session's turns in order. ErrNotFound for unknown IDs.
	Get(ctx context.Context, id string) ([]llm.Turn, error)
	// Append adds turns to the end of the session's history, creating the
	// session if needed.
	Append(ctx context.Context, id string, turns ...llm.Turn) error
	// Len returns the number of stored turns, 0 for unknown IDs.
	Len(ctx context.Context, id string) (int, error)
}
