package candidate

import (
	"github.com/jobgate-vn/jobgate/pkg/kernel"
)

// RegisterRequest creates a candidate account
type RegisterRequest struct {
	Email    kernel.Email `json:"email"`
	Password string       `json:"password"`
	FullName string       `json:"full_name"`
	Phone    kernel.Phone `json:"phone"`
}

// LoginRequest authenticates a candidate account
type LoginRequest struct {
	Email    kernel.Email `json:"email"`
	Password string       `json:"password"`
}

// LoginResponse carries the issued token and account
type LoginResponse struct {
	AccessToken string     `json:"access_token"`
	Candidate   *Candidate `json:"candidate"`
}

// CreateCVRequest creates a CV in pending review
type CreateCVRequest struct {
	Title      string `json:"title"`
	Summary    string `json:"summary"`
	Skills     string `json:"skills"`
	Experience string `json:"experience"`
	Education  string `json:"education"`
}

// UpdateCVRequest edits content fields of a CV
type UpdateCVRequest struct {
	Title      *string `json:"title"`
	Summary    *string `json:"summary"`
	Skills     *string `json:"skills"`
	Experience *string `json:"experience"`
	Education  *string `json:"education"`
}

// DeleteCVsRequest removes a batch of the caller's CVs
type DeleteCVsRequest struct {
	IDs []kernel.CVID `json:"ids"`
}

// ReviewRequest is the admin approve/reject input
type ReviewRequest struct {
	Reason *string `json:"reason"`
	Note   *string `json:"note"`
}

// PaginatedCVsResponse is a page of CVs
type PaginatedCVsResponse = kernel.Paginated[CV]
