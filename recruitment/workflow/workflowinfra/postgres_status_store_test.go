package workflowinfra

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/jobgate-vn/jobgate/pkg/errx"
	"github.com/jobgate-vn/jobgate/recruitment/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStatusStore(t *testing.T) (*PostgresStatusStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresStatusStore(sqlx.NewDb(db, "sqlmock")), mock
}

func TestGetStatus(t *testing.T) {
	store, mock := newMockStatusStore(t)

	mock.ExpectQuery(`SELECT status FROM job_posts WHERE id = \$1 AND deleted_at IS NULL`).
		WithArgs("jp-1").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("active"))

	state, err := store.GetStatus(context.Background(), workflow.KindJobPost, "jp-1")
	require.NoError(t, err)
	assert.Equal(t, workflow.State("active"), state)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStatusNotFound(t *testing.T) {
	store, mock := newMockStatusStore(t)

	mock.ExpectQuery(`SELECT status FROM cvs`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"status"}))

	_, err := store.GetStatus(context.Background(), workflow.KindCandidateProfile, "missing")
	assert.True(t, errx.IsCode(err, workflow.CodeEntityNotFound))
}

func TestGetStatusUnknownKind(t *testing.T) {
	store, _ := newMockStatusStore(t)

	_, err := store.GetStatus(context.Background(), "payment", "x")
	assert.True(t, errx.IsCode(err, workflow.CodeUnknownKind))
}

func TestUpdateStatusGuarded(t *testing.T) {
	store, mock := newMockStatusStore(t)

	at := time.Now()
	reason := "Tin tuyển dụng vi phạm quy định đăng tin"

	// the guard rides in the WHERE clause: id AND observed status
	mock.ExpectExec(`UPDATE job_posts SET\s+status = \$1,\s+status_reason = \$2,\s+status_updated_at = \$3,\s+updated_at = \$3\s+WHERE id = \$4 AND status = \$5 AND deleted_at IS NULL`).
		WithArgs("removed_by_admin", &reason, at, "jp-1", "active").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.UpdateStatus(context.Background(), workflow.KindJobPost, "jp-1", "active", "removed_by_admin", &reason, at)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusStale(t *testing.T) {
	store, mock := newMockStatusStore(t)

	at := time.Now()
	// another transition already moved the row off "active"
	mock.ExpectExec(`UPDATE job_posts SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.UpdateStatus(context.Background(), workflow.KindJobPost, "jp-1", "active", "hidden", nil, at)
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, workflow.CodeStaleState))
}

func TestUpdateStatusUnknownKind(t *testing.T) {
	store, _ := newMockStatusStore(t)

	err := store.UpdateStatus(context.Background(), "payment", "x", "a", "b", nil, time.Now())
	assert.True(t, errx.IsCode(err, workflow.CodeUnknownKind))
}
