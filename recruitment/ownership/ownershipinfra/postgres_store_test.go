package ownershipinfra

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/jobgate-vn/jobgate/recruitment/ownership"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type document struct {
	ID      string `db:"id"`
	OwnerID string `db:"owner_id"`
}

func newMockStore(t *testing.T) (*PostgresStore[document], sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresStore[document](sqlx.NewDb(db, "sqlmock")), mock
}

func TestFindOneWhereDirect(t *testing.T) {
	store, mock := newMockStore(t)

	q := ownership.Query{
		Table:    "documents",
		IDColumn: "id",
		Conditions: []ownership.Condition{
			ownership.Eq("owner_id", "u-1"),
			ownership.Eq("id", "d-1"),
			ownership.IsNull("deleted_at"),
		},
	}

	expected := regexp.QuoteMeta(
		`SELECT t.* FROM documents AS t WHERE t.owner_id = $1 AND t.id = $2 AND t.deleted_at IS NULL`)
	mock.ExpectQuery(expected).
		WithArgs("u-1", "d-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id"}).AddRow("d-1", "u-1"))

	doc, err := store.FindOneWhere(context.Background(), q)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "d-1", doc.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOneWhereNoRows(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT t\.\* FROM documents AS t`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id"}))

	doc, err := store.FindOneWhere(context.Background(), ownership.Query{
		Table:      "documents",
		Conditions: []ownership.Condition{ownership.Eq("id", "missing")},
	})
	require.NoError(t, err, "no match is not an error at the store level")
	assert.Nil(t, doc)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOneWhereJoinChain(t *testing.T) {
	store, mock := newMockStore(t)

	q := ownership.Query{
		Table: "documents",
		Joins: []ownership.RelationHop{
			{Table: "folders", FromColumn: "folder_id", ToColumn: "id"},
			{Table: "accounts", FromColumn: "account_id", ToColumn: "id"},
		},
		Conditions: []ownership.Condition{
			ownership.Eq("r2.user_id", "u-1"),
			ownership.Eq("id", "d-1"),
		},
	}

	expected := regexp.QuoteMeta(
		`SELECT t.* FROM documents AS t` +
			` INNER JOIN folders AS r1 ON r1.id = t.folder_id` +
			` INNER JOIN accounts AS r2 ON r2.id = r1.account_id` +
			` WHERE r2.user_id = $1 AND t.id = $2`)
	mock.ExpectQuery(expected).
		WithArgs("u-1", "d-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id"}).AddRow("d-1", "u-1"))

	doc, err := store.FindOneWhere(context.Background(), q)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountWhereBulk(t *testing.T) {
	store, mock := newMockStore(t)

	ids := []string{"d-1", "d-2", "d-3"}
	q := ownership.Query{
		Table: "documents",
		Conditions: []ownership.Condition{
			ownership.Eq("owner_id", "u-1"),
			ownership.In("id", ids),
		},
	}

	expected := regexp.QuoteMeta(
		`SELECT COUNT(*) FROM documents AS t WHERE t.owner_id = $1 AND t.id = ANY($2)`)
	mock.ExpectQuery(expected).
		WithArgs("u-1", pq.Array(ids)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := store.CountWhere(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
