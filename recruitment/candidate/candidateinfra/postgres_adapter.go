package candidateinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jobgate-vn/jobgate/pkg/kernel"
	"github.com/jobgate-vn/jobgate/recruitment/candidate"
	"github.com/lib/pq"
)

// PostgresCandidateRepository implements candidate.Repository using PostgreSQL
type PostgresCandidateRepository struct {
	db *sqlx.DB
}

// NewPostgresCandidateRepository creates a new PostgreSQL candidate repository
func NewPostgresCandidateRepository(db *sqlx.DB) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{db: db}
}

const candidateColumns = `
	id, email, password_hash, full_name, phone,
	created_at, updated_at, deleted_at
`

// Create creates a new candidate account
func (r *PostgresCandidateRepository) Create(ctx context.Context, cand *candidate.Candidate) error {
	query := `
		INSERT INTO candidates (
			id, email, password_hash, full_name, phone, created_at, updated_at
		) VALUES (
			:id, :email, :password_hash, :full_name, :phone, :created_at, :updated_at
		)
	`

	_, err := r.db.NamedExecContext(ctx, query, cand)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" { // unique_violation
			return candidate.ErrCandidateAlreadyExists()
		}
		return fmt.Errorf("failed to create candidate: %w", err)
	}

	return nil
}

// GetByID retrieves a candidate by ID
func (r *PostgresCandidateRepository) GetByID(ctx context.Context, id kernel.CandidateID) (*candidate.Candidate, error) {
	query := fmt.Sprintf(`SELECT %s FROM candidates WHERE id = $1 AND deleted_at IS NULL`, candidateColumns)

	var cand candidate.Candidate
	if err := r.db.GetContext(ctx, &cand, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, candidate.ErrCandidateNotFound()
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}

	return &cand, nil
}

// GetByEmail retrieves a candidate by account email
func (r *PostgresCandidateRepository) GetByEmail(ctx context.Context, email kernel.Email) (*candidate.Candidate, error) {
	query := fmt.Sprintf(`SELECT %s FROM candidates WHERE email = $1 AND deleted_at IS NULL`, candidateColumns)

	var cand candidate.Candidate
	if err := r.db.GetContext(ctx, &cand, query, email.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, candidate.ErrCandidateNotFound()
		}
		return nil, fmt.Errorf("failed to get candidate by email: %w", err)
	}

	return &cand, nil
}

// ExistsByEmail checks if an account exists for an email
func (r *PostgresCandidateRepository) ExistsByEmail(ctx context.Context, email kernel.Email) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM candidates WHERE email = $1 AND deleted_at IS NULL)`
	if err := r.db.GetContext(ctx, &exists, query, email.String()); err != nil {
		return false, fmt.Errorf("failed to check candidate email: %w", err)
	}
	return exists, nil
}

// PostgresCVRepository implements candidate.CVRepository using PostgreSQL
type PostgresCVRepository struct {
	db *sqlx.DB
}

// NewPostgresCVRepository creates a new PostgreSQL CV repository
func NewPostgresCVRepository(db *sqlx.DB) *PostgresCVRepository {
	return &PostgresCVRepository{db: db}
}

const cvColumns = `
	id, candidate_id, title, summary, skills, experience, education,
	file_url, status, status_reason, status_updated_at,
	created_at, updated_at, deleted_at
`

// Create creates a new CV
func (r *PostgresCVRepository) Create(ctx context.Context, cv *candidate.CV) error {
	query := `
		INSERT INTO cvs (
			id, candidate_id, title, summary, skills, experience, education,
			file_url, status, status_reason, status_updated_at, created_at, updated_at
		) VALUES (
			:id, :candidate_id, :title, :summary, :skills, :experience, :education,
			:file_url, :status, :status_reason, :status_updated_at, :created_at, :updated_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, cv); err != nil {
		return fmt.Errorf("failed to create CV: %w", err)
	}

	return nil
}

// Update updates content fields of an existing CV. Status columns are
// deliberately untouched: only the workflow status store writes them.
func (r *PostgresCVRepository) Update(ctx context.Context, id kernel.CVID, cv *candidate.CV) error {
	query := `
		UPDATE cvs SET
			title = :title,
			summary = :summary,
			skills = :skills,
			experience = :experience,
			education = :education,
			file_url = :file_url,
			updated_at = :updated_at
		WHERE id = :id AND deleted_at IS NULL
	`

	result, err := r.db.NamedExecContext(ctx, query, cv)
	if err != nil {
		return fmt.Errorf("failed to update CV: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update CV: %w", err)
	}
	if rows == 0 {
		return candidate.ErrCVNotFound()
	}

	return nil
}

// GetByID retrieves a CV by ID
func (r *PostgresCVRepository) GetByID(ctx context.Context, id kernel.CVID) (*candidate.CV, error) {
	query := fmt.Sprintf(`SELECT %s FROM cvs WHERE id = $1 AND deleted_at IS NULL`, cvColumns)

	var cv candidate.CV
	if err := r.db.GetContext(ctx, &cv, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, candidate.ErrCVNotFound()
		}
		return nil, fmt.Errorf("failed to get CV: %w", err)
	}

	return &cv, nil
}

// ListByCandidateID retrieves a candidate's CVs with pagination
func (r *PostgresCVRepository) ListByCandidateID(ctx context.Context, candidateID kernel.CandidateID, pagination kernel.PaginationOptions) (*kernel.Paginated[candidate.CV], error) {
	return r.list(ctx, `candidate_id = $1`, []any{candidateID.String()}, pagination)
}

// ListByStatus retrieves CVs in a given status with pagination
func (r *PostgresCVRepository) ListByStatus(ctx context.Context, status candidate.CVStatus, pagination kernel.PaginationOptions) (*kernel.Paginated[candidate.CV], error) {
	return r.list(ctx, `status = $1`, []any{string(status)}, pagination)
}

// SoftDeleteByIDs stamps deleted_at on the given CVs in one statement
func (r *PostgresCVRepository) SoftDeleteByIDs(ctx context.Context, ids []kernel.CVID) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}

	query := `UPDATE cvs SET deleted_at = $1, updated_at = $1 WHERE id = ANY($2) AND deleted_at IS NULL`
	if _, err := r.db.ExecContext(ctx, query, time.Now(), pq.Array(raw)); err != nil {
		return fmt.Errorf("failed to delete CVs: %w", err)
	}

	return nil
}

func (r *PostgresCVRepository) list(ctx context.Context, filter string, args []any, pagination kernel.PaginationOptions) (*kernel.Paginated[candidate.CV], error) {
	where := filter + ` AND deleted_at IS NULL`

	var total int
	countQuery := `SELECT COUNT(*) FROM cvs WHERE ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to count CVs: %w", err)
	}

	offset := (pagination.Page - 1) * pagination.PageSize
	totalPages := (total + pagination.PageSize - 1) / pagination.PageSize

	args = append(args, pagination.PageSize, offset)
	query := fmt.Sprintf(`
		SELECT %s FROM cvs
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, cvColumns, where, len(args)-1, len(args))

	var cvs []candidate.CV
	if err := r.db.SelectContext(ctx, &cvs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list CVs: %w", err)
	}

	return &kernel.Paginated[candidate.CV]{
		Items: cvs,
		Page: kernel.Page{
			Number: pagination.Page,
			Size:   pagination.PageSize,
			Total:  total,
			Pages:  totalPages,
		},
		Empty: len(cvs) == 0,
	}, nil
}
