package ownership

import "context"

// Store executes single-statement lookups against durable storage.
// FindOneWhere must return (nil, nil) when no row matches; it must not
// distinguish "no such id" from "id held by someone else".
type Store[E any] interface {
	// FindOneWhere returns the single entity matching the query, or nil
	FindOneWhere(ctx context.Context, q Query) (*E, error)

	// CountWhere returns the number of rows matching the query
	CountWhere(ctx context.Context, q Query) (int64, error)
}

// Guard is the kind-agnostic face of a typed verifier, used where a
// caller only needs the access decision, not the entity
type Guard interface {
	RequireOwner(ctx context.Context, entityID, ownerID string) error
}
