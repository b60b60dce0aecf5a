package employerinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/jobgate-vn/jobgate/pkg/kernel"
	"github.com/jobgate-vn/jobgate/recruitment/employer"
	"github.com/lib/pq"
)

// PostgresEmployerRepository implements employer.Repository using PostgreSQL
type PostgresEmployerRepository struct {
	db *sqlx.DB
}

// NewPostgresEmployerRepository creates a new PostgreSQL employer repository
func NewPostgresEmployerRepository(db *sqlx.DB) *PostgresEmployerRepository {
	return &PostgresEmployerRepository{db: db}
}

const profileColumns = `
	id, user_id, email, password_hash, company_name, description,
	website, address, logo_url, status, status_reason, status_updated_at,
	created_at, updated_at, deleted_at
`

// Create creates a new employer profile
func (r *PostgresEmployerRepository) Create(ctx context.Context, profile *employer.Profile) error {
	query := `
		INSERT INTO employer_profiles (
			id, user_id, email, password_hash, company_name, description,
			website, address, logo_url, status, status_reason, status_updated_at,
			created_at, updated_at
		) VALUES (
			:id, :user_id, :email, :password_hash, :company_name, :description,
			:website, :address, :logo_url, :status, :status_reason, :status_updated_at,
			:created_at, :updated_at
		)
	`

	_, err := r.db.NamedExecContext(ctx, query, profile)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" { // unique_violation
			return employer.ErrProfileAlreadyExists()
		}
		return fmt.Errorf("failed to create employer profile: %w", err)
	}

	return nil
}

// Update updates content fields of an existing profile. Status columns
// are deliberately untouched: only the workflow status store writes them.
func (r *PostgresEmployerRepository) Update(ctx context.Context, id kernel.EmployerID, profile *employer.Profile) error {
	query := `
		UPDATE employer_profiles SET
			company_name = :company_name,
			description = :description,
			website = :website,
			address = :address,
			logo_url = :logo_url,
			updated_at = :updated_at
		WHERE id = :id AND deleted_at IS NULL
	`

	result, err := r.db.NamedExecContext(ctx, query, profile)
	if err != nil {
		return fmt.Errorf("failed to update employer profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update employer profile: %w", err)
	}
	if rows == 0 {
		return employer.ErrProfileNotFound()
	}

	return nil
}

// GetByID retrieves a profile by ID
func (r *PostgresEmployerRepository) GetByID(ctx context.Context, id kernel.EmployerID) (*employer.Profile, error) {
	query := fmt.Sprintf(`SELECT %s FROM employer_profiles WHERE id = $1 AND deleted_at IS NULL`, profileColumns)

	var profile employer.Profile
	if err := r.db.GetContext(ctx, &profile, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, employer.ErrProfileNotFound()
		}
		return nil, fmt.Errorf("failed to get employer profile: %w", err)
	}

	return &profile, nil
}

// GetByUserID retrieves a profile by its owning user
func (r *PostgresEmployerRepository) GetByUserID(ctx context.Context, userID kernel.UserID) (*employer.Profile, error) {
	query := fmt.Sprintf(`SELECT %s FROM employer_profiles WHERE user_id = $1 AND deleted_at IS NULL`, profileColumns)

	var profile employer.Profile
	if err := r.db.GetContext(ctx, &profile, query, userID.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, employer.ErrProfileNotFound()
		}
		return nil, fmt.Errorf("failed to get employer profile by user: %w", err)
	}

	return &profile, nil
}

// GetByEmail retrieves a profile by account email
func (r *PostgresEmployerRepository) GetByEmail(ctx context.Context, email kernel.Email) (*employer.Profile, error) {
	query := fmt.Sprintf(`SELECT %s FROM employer_profiles WHERE email = $1 AND deleted_at IS NULL`, profileColumns)

	var profile employer.Profile
	if err := r.db.GetContext(ctx, &profile, query, email.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, employer.ErrProfileNotFound()
		}
		return nil, fmt.Errorf("failed to get employer profile by email: %w", err)
	}

	return &profile, nil
}

// List retrieves profiles filtered by status with pagination
func (r *PostgresEmployerRepository) List(ctx context.Context, status *employer.ProfileStatus, pagination kernel.PaginationOptions) (*kernel.Paginated[employer.Profile], error) {
	where := `deleted_at IS NULL`
	args := []any{}
	if status != nil {
		args = append(args, string(*status))
		where += fmt.Sprintf(` AND status = $%d`, len(args))
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM employer_profiles WHERE ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to count employer profiles: %w", err)
	}

	offset := (pagination.Page - 1) * pagination.PageSize
	totalPages := (total + pagination.PageSize - 1) / pagination.PageSize

	args = append(args, pagination.PageSize, offset)
	query := fmt.Sprintf(`
		SELECT %s FROM employer_profiles
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, profileColumns, where, len(args)-1, len(args))

	var profiles []employer.Profile
	if err := r.db.SelectContext(ctx, &profiles, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list employer profiles: %w", err)
	}

	return &kernel.Paginated[employer.Profile]{
		Items: profiles,
		Page: kernel.Page{
			Number: pagination.Page,
			Size:   pagination.PageSize,
			Total:  total,
			Pages:  totalPages,
		},
		Empty: len(profiles) == 0,
	}, nil
}

// ExistsByEmail checks if a profile exists for an email
func (r *PostgresEmployerRepository) ExistsByEmail(ctx context.Context, email kernel.Email) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM employer_profiles WHERE email = $1 AND deleted_at IS NULL)`
	if err := r.db.GetContext(ctx, &exists, query, email.String()); err != nil {
		return false, fmt.Errorf("failed to check employer email: %w", err)
	}
	return exists, nil
}
