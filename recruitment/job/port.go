package job

import (
	"context"

	"github.com/jobgate-vn/jobgate/pkg/kernel"
)

type Repository interface {
	// Create creates a new job post
	Create(ctx context.Context, post *Post) error

	// Update updates content fields of an existing post.
	// Status fields are owned by the workflow status store.
	Update(ctx context.Context, id kernel.JobID, post *Post) error

	// GetByID retrieves a post by ID
	GetByID(ctx context.Context, id kernel.JobID) (*Post, error)

	// ListByEmployerID retrieves posts owned by an employer
	ListByEmployerID(ctx context.Context, employerID kernel.EmployerID, pagination kernel.PaginationOptions) (*kernel.Paginated[Post], error)

	// ListActive retrieves approved, visible posts
	ListActive(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[Post], error)

	// ListByStatus retrieves posts in a given status (admin review queues)
	ListByStatus(ctx context.Context, status PostStatus, pagination kernel.PaginationOptions) (*kernel.Paginated[Post], error)
}
