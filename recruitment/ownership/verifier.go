package ownership

import (
	"context"
	"fmt"

	"github.com/jobgate-vn/jobgate/pkg/errx"
)

// BaseAlias is the SQL alias of the entity table in generated queries
const BaseAlias = "t"

// RelationAlias returns the SQL alias of the i-th relation hop
func RelationAlias(i int) string {
	return fmt.Sprintf("r%d", i+1)
}

// Verifier decides whether a claimed owner may access entities of one
// kind. The decision is made by the store in a single predicate query;
// a mismatch and a missing entity produce the same NotFound outcome.
type Verifier[E any] struct {
	store Store[E]
	desc  Descriptor
}

// NewVerifier creates a verifier for a kind from its descriptor
func NewVerifier[E any](store Store[E], desc Descriptor) *Verifier[E] {
	if desc.IDColumn == "" {
		desc.IDColumn = "id"
	}
	return &Verifier[E]{store: store, desc: desc}
}

// NewVerifierFor creates a verifier for a self-describing entity kind
func NewVerifierFor[E Describable](store Store[E]) *Verifier[E] {
	var zero E
	return NewVerifier(store, zero.OwnershipDescriptor())
}

// Descriptor returns the configured ownership descriptor
func (v *Verifier[E]) Descriptor() Descriptor {
	return v.desc
}

// ownerQuery builds the single query that matches one entity id AND the
// claimed owner, plus any extra predicate terms.
func (v *Verifier[E]) ownerQuery(entityID, ownerID string, extra ...Condition) (Query, error) {
	q := Query{
		Table:    v.desc.Table,
		IDColumn: v.desc.IDColumn,
	}

	switch v.desc.Kind {
	case Direct:
		if v.desc.OwnerColumn == "" {
			return q, ErrInvalidDescriptor().WithDetail("table", v.desc.Table).WithDetail("reason", "direct descriptor without owner column")
		}
		q.Conditions = append(q.Conditions, Eq(v.desc.OwnerColumn, ownerID))

	case Indirect:
		if len(v.desc.Path) == 0 || v.desc.TerminalColumn == "" {
			return q, ErrInvalidDescriptor().WithDetail("table", v.desc.Table).WithDetail("reason", "indirect descriptor without relation path")
		}
		q.Joins = v.desc.Path
		terminal := RelationAlias(len(v.desc.Path)-1) + "." + v.desc.TerminalColumn
		q.Conditions = append(q.Conditions, Eq(terminal, ownerID))

	default:
		return q, ErrInvalidDescriptor().WithDetail("table", v.desc.Table).WithDetail("kind", v.desc.Kind)
	}

	if entityID != "" {
		q.Conditions = append(q.Conditions, Eq(v.desc.IDColumn, entityID))
	}
	if v.desc.SoftDeleteColumn != "" {
		q.Conditions = append(q.Conditions, IsNull(v.desc.SoftDeleteColumn))
	}
	q.Conditions = append(q.Conditions, extra...)

	return q, nil
}

// Verify resolves the entity if and only if the claimed owner owns it,
// dispatching on the descriptor kind. Absence and mismatch are both
// NotFound.
func (v *Verifier[E]) Verify(ctx context.Context, entityID, ownerID string) (*E, error) {
	return v.VerifyWithPredicate(ctx, entityID, ownerID)
}

// VerifyDirect resolves an entity through its direct owner column
func (v *Verifier[E]) VerifyDirect(ctx context.Context, entityID, ownerID string) (*E, error) {
	if v.desc.Kind != Direct {
		return nil, ErrInvalidDescriptor().WithDetail("table", v.desc.Table).WithDetail("reason", "descriptor is not direct")
	}
	return v.VerifyWithPredicate(ctx, entityID, ownerID)
}

// VerifyIndirect resolves an entity through its relation path to the owner
func (v *Verifier[E]) VerifyIndirect(ctx context.Context, entityID, ownerID string) (*E, error) {
	if v.desc.Kind != Indirect {
		return nil, ErrInvalidDescriptor().WithDetail("table", v.desc.Table).WithDetail("reason", "descriptor is not indirect")
	}
	return v.VerifyWithPredicate(ctx, entityID, ownerID)
}

// VerifyWithPredicate resolves an entity under ownership plus extra
// caller-supplied conditions (e.g. "status = active"). Any term that
// fails, including ownership, yields the same NotFound.
func (v *Verifier[E]) VerifyWithPredicate(ctx context.Context, entityID, ownerID string, extra ...Condition) (*E, error) {
	q, err := v.ownerQuery(entityID, ownerID, extra...)
	if err != nil {
		return nil, err
	}

	entity, err := v.store.FindOneWhere(ctx, q)
	if err != nil {
		return nil, errx.Wrap(err, "ownership lookup failed", errx.TypeInternal)
	}
	if entity == nil {
		return nil, ErrNotFound()
	}

	return entity, nil
}

// CheckOwnership is the non-throwing boolean variant, for composition
// inside larger authorization expressions (e.g. isOwner OR isAdmin)
func (v *Verifier[E]) CheckOwnership(ctx context.Context, entityID, ownerID string) (bool, error) {
	q, err := v.ownerQuery(entityID, ownerID)
	if err != nil {
		return false, err
	}

	count, err := v.store.CountWhere(ctx, q)
	if err != nil {
		return false, errx.Wrap(err, "ownership count failed", errx.TypeInternal)
	}

	return count > 0, nil
}

// VerifyBulk succeeds only if every id in the set belongs to the owner.
// It runs as one aggregate count, never per-id loops, and reports a
// single NotFound without naming the offending ids. An empty set
// succeeds vacuously.
func (v *Verifier[E]) VerifyBulk(ctx context.Context, entityIDs []string, ownerID string) error {
	if len(entityIDs) == 0 {
		return nil
	}

	q, err := v.ownerQuery("", ownerID, In(v.desc.IDColumn, entityIDs))
	if err != nil {
		return err
	}

	count, err := v.store.CountWhere(ctx, q)
	if err != nil {
		return errx.Wrap(err, "bulk ownership count failed", errx.TypeInternal)
	}
	if count != int64(len(entityIDs)) {
		return ErrNotFound().WithDetail("requested", len(entityIDs))
	}

	return nil
}

// RequireOwner implements Guard
func (v *Verifier[E]) RequireOwner(ctx context.Context, entityID, ownerID string) error {
	_, err := v.VerifyWithPredicate(ctx, entityID, ownerID)
	return err
}
