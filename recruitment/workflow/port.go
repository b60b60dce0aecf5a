package workflow

import (
	"context"
	"time"
)

// StatusStore reads and conditionally writes status fields. It is the
// single concurrency-control point: UpdateStatus must only succeed when
// the row's status still equals the observed value.
type StatusStore interface {
	// GetStatus returns the current status of an entity, or ErrEntityNotFound
	GetStatus(ctx context.Context, kind ResourceKind, entityID string) (State, error)

	// UpdateStatus writes the new status plus transition metadata, guarded
	// by the observed status. Returns ErrStaleState when the guard fails.
	UpdateStatus(ctx context.Context, kind ResourceKind, entityID string, observed, next State, reason *string, at time.Time) error
}

// Notifier delivers transition events. Delivery is best-effort: the
// caller logs and swallows failures, a completed transition is never
// rolled back because a notification could not be sent.
type Notifier interface {
	Notify(ctx context.Context, event TransitionEvent) error
}
