package workflowinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jobgate-vn/jobgate/recruitment/workflow"
)

// kindTables maps each resource kind to its table. Every table carries
// the shared status columns: status, status_reason, status_updated_at.
var kindTables = map[workflow.ResourceKind]string{
	workflow.KindEmployerProfile:  "employer_profiles",
	workflow.KindJobPost:          "job_posts",
	workflow.KindCandidateProfile: "cvs",
	workflow.KindApplication:      "applications",
}

// PostgresStatusStore implements workflow.StatusStore. The conditional
// UPDATE carries the optimistic-concurrency guard: the write succeeds
// only while the row's status equals the observed value.
type PostgresStatusStore struct {
	db *sqlx.DB
}

// NewPostgresStatusStore creates a PostgreSQL status store
func NewPostgresStatusStore(db *sqlx.DB) *PostgresStatusStore {
	return &PostgresStatusStore{db: db}
}

// GetStatus returns the entity's current status
func (s *PostgresStatusStore) GetStatus(ctx context.Context, kind workflow.ResourceKind, entityID string) (workflow.State, error) {
	table, ok := kindTables[kind]
	if !ok {
		return "", workflow.ErrUnknownKind().WithDetail("kind", kind)
	}

	query := fmt.Sprintf(`SELECT status FROM %s WHERE id = $1 AND deleted_at IS NULL`, table)

	var status string
	if err := s.db.GetContext(ctx, &status, query, entityID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", workflow.ErrEntityNotFound().WithDetail("kind", kind)
		}
		return "", fmt.Errorf("get status from %s: %w", table, err)
	}

	return workflow.State(status), nil
}

// UpdateStatus writes the new status and transition metadata, guarded by
// the observed status
func (s *PostgresStatusStore) UpdateStatus(ctx context.Context, kind workflow.ResourceKind, entityID string, observed, next workflow.State, reason *string, at time.Time) error {
	table, ok := kindTables[kind]
	if !ok {
		return workflow.ErrUnknownKind().WithDetail("kind", kind)
	}

	query := fmt.Sprintf(`
		UPDATE %s SET
			status = $1,
			status_reason = $2,
			status_updated_at = $3,
			updated_at = $3
		WHERE id = $4 AND status = $5 AND deleted_at IS NULL
	`, table)

	result, err := s.db.ExecContext(ctx, query, string(next), reason, at, entityID, string(observed))
	if err != nil {
		return fmt.Errorf("update status on %s: %w", table, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update status on %s: %w", table, err)
	}
	if rows == 0 {
		return workflow.ErrStaleState().
			WithDetail("kind", kind).
			WithDetail("observed_state", observed)
	}

	return nil
}
