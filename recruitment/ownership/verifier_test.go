package ownership

import (
	"context"
	"testing"

	"github.com/jobgate-vn/jobgate/pkg/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type document struct {
	ID      string
	OwnerID string
}

func (document) OwnershipDescriptor() Descriptor {
	return Descriptor{
		Table:            "documents",
		Kind:             Direct,
		OwnerColumn:      "owner_id",
		SoftDeleteColumn: "deleted_at",
	}
}

// fakeStore records the queries it receives and answers from canned data
type fakeStore[E any] struct {
	entity  *E
	count   int64
	queries []Query
}

func (s *fakeStore[E]) FindOneWhere(ctx context.Context, q Query) (*E, error) {
	s.queries = append(s.queries, q)
	return s.entity, nil
}

func (s *fakeStore[E]) CountWhere(ctx context.Context, q Query) (int64, error) {
	s.queries = append(s.queries, q)
	return s.count, nil
}

func hasCondition(q Query, column string, op Op) bool {
	for _, c := range q.Conditions {
		if c.Column == column && c.Op == op {
			return true
		}
	}
	return false
}

func TestVerifyReturnsOwnedEntity(t *testing.T) {
	store := &fakeStore[document]{entity: &document{ID: "d-1", OwnerID: "u-1"}}
	v := NewVerifierFor[document](store)

	doc, err := v.Verify(context.Background(), "d-1", "u-1")
	require.NoError(t, err)
	assert.Equal(t, "d-1", doc.ID)

	// one query carrying id, owner and soft-delete terms together
	require.Len(t, store.queries, 1)
	q := store.queries[0]
	assert.Equal(t, "documents", q.Table)
	assert.True(t, hasCondition(q, "id", OpEq))
	assert.True(t, hasCondition(q, "owner_id", OpEq))
	assert.True(t, hasCondition(q, "deleted_at", OpIsNull))
}

func TestVerifyMismatchEqualsAbsence(t *testing.T) {
	// the store returns no row, whether the entity is missing or owned
	// by someone else; the verifier cannot and must not tell them apart
	store := &fakeStore[document]{entity: nil}
	v := NewVerifierFor[document](store)

	_, errMissing := v.Verify(context.Background(), "no-such-id", "u-1")
	_, errForeign := v.Verify(context.Background(), "d-1", "someone-else")

	require.Error(t, errMissing)
	require.Error(t, errForeign)
	assert.True(t, errx.IsCode(errMissing, CodeNotFound))
	assert.True(t, errx.IsCode(errForeign, CodeNotFound))

	var e1, e2 *errx.Error
	require.ErrorAs(t, errMissing, &e1)
	require.ErrorAs(t, errForeign, &e2)
	assert.Equal(t, e1.Message, e2.Message)
}

func TestVerifyDirectRejectsIndirectDescriptor(t *testing.T) {
	store := &fakeStore[document]{}
	v := NewVerifier[document](store, Descriptor{
		Table:          "documents",
		Kind:           Indirect,
		Path:           []RelationHop{{Table: "folders", FromColumn: "folder_id", ToColumn: "id"}},
		TerminalColumn: "owner_id",
	})

	_, err := v.VerifyDirect(context.Background(), "d-1", "u-1")
	assert.True(t, errx.IsCode(err, CodeInvalidDescriptor))
	assert.Empty(t, store.queries, "no query on a descriptor mismatch")
}

func TestVerifyIndirectBuildsJoinChain(t *testing.T) {
	store := &fakeStore[document]{entity: &document{ID: "d-1"}}
	v := NewVerifier[document](store, Descriptor{
		Table: "documents",
		Kind:  Indirect,
		Path: []RelationHop{
			{Table: "folders", FromColumn: "folder_id", ToColumn: "id"},
			{Table: "accounts", FromColumn: "account_id", ToColumn: "id"},
		},
		TerminalColumn:   "user_id",
		SoftDeleteColumn: "deleted_at",
	})

	_, err := v.VerifyIndirect(context.Background(), "d-1", "u-1")
	require.NoError(t, err)

	require.Len(t, store.queries, 1)
	q := store.queries[0]
	require.Len(t, q.Joins, 2)
	assert.Equal(t, "folders", q.Joins[0].Table)
	assert.Equal(t, "accounts", q.Joins[1].Table)
	// the owner condition lands on the last hop's alias
	assert.True(t, hasCondition(q, "r2.user_id", OpEq))
}

func TestVerifyWithPredicateAddsExtraTerms(t *testing.T) {
	store := &fakeStore[document]{entity: &document{ID: "d-1"}}
	v := NewVerifierFor[document](store)

	_, err := v.VerifyWithPredicate(context.Background(), "d-1", "u-1", Eq("status", "approved"))
	require.NoError(t, err)

	require.Len(t, store.queries, 1)
	assert.True(t, hasCondition(store.queries[0], "status", OpEq))
	// ownership terms are still present alongside the extras
	assert.True(t, hasCondition(store.queries[0], "owner_id", OpEq))
}

func TestCheckOwnership(t *testing.T) {
	store := &fakeStore[document]{count: 1}
	v := NewVerifierFor[document](store)

	owned, err := v.CheckOwnership(context.Background(), "d-1", "u-1")
	require.NoError(t, err)
	assert.True(t, owned)

	store.count = 0
	owned, err = v.CheckOwnership(context.Background(), "d-1", "u-2")
	require.NoError(t, err)
	assert.False(t, owned)
}

func TestVerifyBulkAllOwned(t *testing.T) {
	store := &fakeStore[document]{count: 3}
	v := NewVerifierFor[document](store)

	err := v.VerifyBulk(context.Background(), []string{"d-1", "d-2", "d-3"}, "u-1")
	require.NoError(t, err)

	// one aggregate query, never a per-id loop
	require.Len(t, store.queries, 1)
	assert.True(t, hasCondition(store.queries[0], "id", OpIn))
}

func TestVerifyBulkAllOrNothing(t *testing.T) {
	// two of three ids belong to the caller; the whole batch fails
	store := &fakeStore[document]{count: 2}
	v := NewVerifierFor[document](store)

	err := v.VerifyBulk(context.Background(), []string{"d-1", "d-2", "d-x"}, "u-1")
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, CodeNotFound))

	// the error names no offending ids
	var e *errx.Error
	require.ErrorAs(t, err, &e)
	_, leaked := e.Details["ids"]
	assert.False(t, leaked)
}

func TestVerifyBulkEmptySet(t *testing.T) {
	store := &fakeStore[document]{}
	v := NewVerifierFor[document](store)

	err := v.VerifyBulk(context.Background(), nil, "u-1")
	require.NoError(t, err)
	assert.Empty(t, store.queries, "an empty set needs no query")
}

func TestRequireOwner(t *testing.T) {
	store := &fakeStore[document]{entity: &document{ID: "d-1"}}
	v := NewVerifierFor[document](store)

	var guard Guard = v
	require.NoError(t, guard.RequireOwner(context.Background(), "d-1", "u-1"))

	store.entity = nil
	err := guard.RequireOwner(context.Background(), "d-1", "u-2")
	assert.True(t, errx.IsCode(err, CodeNotFound))
}
