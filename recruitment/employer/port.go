package employer

import (
	"context"

	"github.com/jobgate-vn/jobgate/pkg/kernel"
)

type Repository interface {
	// Create creates a new employer profile
	Create(ctx context.Context, profile *Profile) error

	// Update updates content fields of an existing profile.
	// Status fields are owned by the workflow status store.
	Update(ctx context.Context, id kernel.EmployerID, profile *Profile) error

	// GetByID retrieves a profile by ID
	GetByID(ctx context.Context, id kernel.EmployerID) (*Profile, error)

	// GetByUserID retrieves a profile by its owning user
	GetByUserID(ctx context.Context, userID kernel.UserID) (*Profile, error)

	// GetByEmail retrieves a profile by account email
	GetByEmail(ctx context.Context, email kernel.Email) (*Profile, error)

	// List retrieves profiles filtered by status with pagination
	List(ctx context.Context, status *ProfileStatus, pagination kernel.PaginationOptions) (*kernel.Paginated[Profile], error)

	// ExistsByEmail checks if a profile exists for an email
	ExistsByEmail(ctx context.Context, email kernel.Email) (bool, error)
}
