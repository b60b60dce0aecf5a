package jobinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/jobgate-vn/jobgate/pkg/kernel"
	"github.com/jobgate-vn/jobgate/recruitment/job"
)

// PostgresJobRepository implements job.Repository using PostgreSQL
type PostgresJobRepository struct {
	db *sqlx.DB
}

// NewPostgresJobRepository creates a new PostgreSQL job repository
func NewPostgresJobRepository(db *sqlx.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const postColumns = `
	id, employer_id, title, description, requirements, location,
	salary_min, salary_max, status, status_reason, status_updated_at,
	expires_at, created_at, updated_at, deleted_at
`

// Create creates a new job post
func (r *PostgresJobRepository) Create(ctx context.Context, post *job.Post) error {
	query := `
		INSERT INTO job_posts (
			id, employer_id, title, description, requirements, location,
			salary_min, salary_max, status, status_reason, status_updated_at,
			expires_at, created_at, updated_at
		) VALUES (
			:id, :employer_id, :title, :description, :requirements, :location,
			:salary_min, :salary_max, :status, :status_reason, :status_updated_at,
			:expires_at, :created_at, :updated_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, post); err != nil {
		return fmt.Errorf("failed to create job post: %w", err)
	}

	return nil
}

// Update updates content fields of an existing post. Status columns are
// deliberately untouched: only the workflow status store writes them.
func (r *PostgresJobRepository) Update(ctx context.Context, id kernel.JobID, post *job.Post) error {
	query := `
		UPDATE job_posts SET
			title = :title,
			description = :description,
			requirements = :requirements,
			location = :location,
			salary_min = :salary_min,
			salary_max = :salary_max,
			expires_at = :expires_at,
			updated_at = :updated_at
		WHERE id = :id AND deleted_at IS NULL
	`

	result, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("failed to update job post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update job post: %w", err)
	}
	if rows == 0 {
		return job.ErrPostNotFound()
	}

	return nil
}

// GetByID retrieves a post by ID
func (r *PostgresJobRepository) GetByID(ctx context.Context, id kernel.JobID) (*job.Post, error) {
	query := fmt.Sprintf(`SELECT %s FROM job_posts WHERE id = $1 AND deleted_at IS NULL`, postColumns)

	var post job.Post
	if err := r.db.GetContext(ctx, &post, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, job.ErrPostNotFound()
		}
		return nil, fmt.Errorf("failed to get job post: %w", err)
	}

	return &post, nil
}

// ListByEmployerID retrieves posts owned by an employer with pagination
func (r *PostgresJobRepository) ListByEmployerID(ctx context.Context, employerID kernel.EmployerID, pagination kernel.PaginationOptions) (*kernel.Paginated[job.Post], error) {
	return r.list(ctx, `employer_id = $1`, []any{employerID.String()}, pagination)
}

// ListActive retrieves approved, visible posts with pagination
func (r *PostgresJobRepository) ListActive(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[job.Post], error) {
	return r.list(ctx, `status = $1`, []any{string(job.PostStatusActive)}, pagination)
}

// ListByStatus retrieves posts in a given status with pagination
func (r *PostgresJobRepository) ListByStatus(ctx context.Context, status job.PostStatus, pagination kernel.PaginationOptions) (*kernel.Paginated[job.Post], error) {
	return r.list(ctx, `status = $1`, []any{string(status)}, pagination)
}

func (r *PostgresJobRepository) list(ctx context.Context, filter string, args []any, pagination kernel.PaginationOptions) (*kernel.Paginated[job.Post], error) {
	where := filter + ` AND deleted_at IS NULL`

	var total int
	countQuery := `SELECT COUNT(*) FROM job_posts WHERE ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to count job posts: %w", err)
	}

	offset := (pagination.Page - 1) * pagination.PageSize
	totalPages := (total + pagination.PageSize - 1) / pagination.PageSize

	args = append(args, pagination.PageSize, offset)
	query := fmt.Sprintf(`
		SELECT %s FROM job_posts
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, postColumns, where, len(args)-1, len(args))

	var posts []job.Post
	if err := r.db.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list job posts: %w", err)
	}

	return &kernel.Paginated[job.Post]{
		Items: posts,
		Page: kernel.Page{
			Number: pagination.Page,
			Size:   pagination.PageSize,
			Total:  total,
			Pages:  totalPages,
		},
		Empty: len(posts) == 0,
	}, nil
}
