package application

import (
	"context"

	"github.com/jobgate-vn/jobgate/pkg/kernel"
)

type Repository interface {
	// Create creates a new application
	Create(ctx context.Context, app *Application) error

	// GetByID retrieves an application by ID
	GetByID(ctx context.Context, id kernel.ApplicationID) (*Application, error)

	// ExistsByJobAndCandidate checks if a candidate already applied to a job
	ExistsByJobAndCandidate(ctx context.Context, jobID kernel.JobID, candidateID kernel.CandidateID) (bool, error)

	// ListByJobID retrieves applications to a job post
	ListByJobID(ctx context.Context, jobID kernel.JobID, pagination kernel.PaginationOptions) (*kernel.Paginated[Application], error)

	// ListByCandidateID retrieves a candidate's applications
	ListByCandidateID(ctx context.Context, candidateID kernel.CandidateID, pagination kernel.PaginationOptions) (*kernel.Paginated[Application], error)
}
