package applicationinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/jobgate-vn/jobgate/pkg/kernel"
	"github.com/jobgate-vn/jobgate/recruitment/application"
	"github.com/lib/pq"
)

// PostgresApplicationRepository implements application.Repository using PostgreSQL
type PostgresApplicationRepository struct {
	db *sqlx.DB
}

// NewPostgresApplicationRepository creates a new PostgreSQL application repository
func NewPostgresApplicationRepository(db *sqlx.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const applicationColumns = `
	id, job_id, candidate_id, cv_id, cover_letter,
	status, status_reason, status_updated_at,
	created_at, updated_at, deleted_at
`

// Create creates a new application
func (r *PostgresApplicationRepository) Create(ctx context.Context, app *application.Application) error {
	query := `
		INSERT INTO applications (
			id, job_id, candidate_id, cv_id, cover_letter,
			status, status_reason, status_updated_at, created_at, updated_at
		) VALUES (
			:id, :job_id, :candidate_id, :cv_id, :cover_letter,
			:status, :status_reason, :status_updated_at, :created_at, :updated_at
		)
	`

	_, err := r.db.NamedExecContext(ctx, query, app)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" { // unique_violation
			return application.ErrAlreadyApplied()
		}
		return fmt.Errorf("failed to create application: %w", err)
	}

	return nil
}

// GetByID retrieves an application by ID
func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
	query := fmt.Sprintf(`SELECT %s FROM applications WHERE id = $1 AND deleted_at IS NULL`, applicationColumns)

	var app application.Application
	if err := r.db.GetContext(ctx, &app, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, application.ErrApplicationNotFound()
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	return &app, nil
}

// ExistsByJobAndCandidate checks if a candidate already applied to a job
func (r *PostgresApplicationRepository) ExistsByJobAndCandidate(ctx context.Context, jobID kernel.JobID, candidateID kernel.CandidateID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND candidate_id = $2 AND deleted_at IS NULL)`
	if err := r.db.GetContext(ctx, &exists, query, jobID.String(), candidateID.String()); err != nil {
		return false, fmt.Errorf("failed to check existing application: %w", err)
	}
	return exists, nil
}

// ListByJobID retrieves applications to a job post with pagination
func (r *PostgresApplicationRepository) ListByJobID(ctx context.Context, jobID kernel.JobID, pagination kernel.PaginationOptions) (*kernel.Paginated[application.Application], error) {
	return r.list(ctx, `job_id = $1`, []any{jobID.String()}, pagination)
}

// ListByCandidateID retrieves a candidate's applications with pagination
func (r *PostgresApplicationRepository) ListByCandidateID(ctx context.Context, candidateID kernel.CandidateID, pagination kernel.PaginationOptions) (*kernel.Paginated[application.Application], error) {
	return r.list(ctx, `candidate_id = $1`, []any{candidateID.String()}, pagination)
}

func (r *PostgresApplicationRepository) list(ctx context.Context, filter string, args []any, pagination kernel.PaginationOptions) (*kernel.Paginated[application.Application], error) {
	where := filter + ` AND deleted_at IS NULL`

	var total int
	countQuery := `SELECT COUNT(*) FROM applications WHERE ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}

	offset := (pagination.Page - 1) * pagination.PageSize
	totalPages := (total + pagination.PageSize - 1) / pagination.PageSize

	args = append(args, pagination.PageSize, offset)
	query := fmt.Sprintf(`
		SELECT %s FROM applications
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, applicationColumns, where, len(args)-1, len(args))

	var apps []application.Application
	if err := r.db.SelectContext(ctx, &apps, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	return &kernel.Paginated[application.Application]{
		Items: apps,
		Page: kernel.Page{
			Number: pagination.Page,
			Size:   pagination.PageSize,
			Total:  total,
			Pages:  totalPages,
		},
		Empty: len(apps) == 0,
	}, nil
}
