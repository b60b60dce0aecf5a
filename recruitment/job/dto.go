package job

import (
	"time"

	"github.com/jobgate-vn/jobgate/pkg/kernel"
)

// CreatePostRequest creates a job post in pending review
type CreatePostRequest struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Requirements string     `json:"requirements"`
	Location     string     `json:"location"`
	SalaryMin    *int64     `json:"salary_min"`
	SalaryMax    *int64     `json:"salary_max"`
	ExpiresAt    *time.Time `json:"expires_at"`
}

// UpdatePostRequest edits content fields of a post
type UpdatePostRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Requirements *string `json:"requirements"`
	Location     *string `json:"location"`
}

// ReviewRequest is the admin approve/reject/remove input
type ReviewRequest struct {
	Reason *string `json:"reason"`
	Note   *string `json:"note"`
}

// PaginatedPostsResponse is a page of job posts
type PaginatedPostsResponse = kernel.Paginated[Post]
