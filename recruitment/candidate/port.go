package candidate

import (
	"context"

	"github.com/jobgate-vn/jobgate/pkg/kernel"
)

type Repository interface {
	// Create creates a new candidate account
	Create(ctx context.Context, cand *Candidate) error

	// GetByID retrieves a candidate by ID
	GetByID(ctx context.Context, id kernel.CandidateID) (*Candidate, error)

	// GetByEmail retrieves a candidate by account email
	GetByEmail(ctx context.Context, email kernel.Email) (*Candidate, error)

	// ExistsByEmail checks if an account exists for an email
	ExistsByEmail(ctx context.Context, email kernel.Email) (bool, error)
}

type CVRepository interface {
	// Create creates a new CV
	Create(ctx context.Context, cv *CV) error

	// Update updates content fields of an existing CV.
	// Status fields are owned by the workflow status store.
	Update(ctx context.Context, id kernel.CVID, cv *CV) error

	// GetByID retrieves a CV by ID
	GetByID(ctx context.Context, id kernel.CVID) (*CV, error)

	// ListByCandidateID retrieves a candidate's CVs
	ListByCandidateID(ctx context.Context, candidateID kernel.CandidateID, pagination kernel.PaginationOptions) (*kernel.Paginated[CV], error)

	// ListByStatus retrieves CVs in a given status (admin review queues)
	ListByStatus(ctx context.Context, status CVStatus, pagination kernel.PaginationOptions) (*kernel.Paginated[CV], error)

	// SoftDeleteByIDs marks the given CVs deleted. Ownership must be
	// verified before calling; this only stamps deleted_at.
	SoftDeleteByIDs(ctx context.Context, ids []kernel.CVID) error
}
