package employer

import (
	"github.com/jobgate-vn/jobgate/pkg/kernel"
)

// RegisterRequest creates an employer account with a draft profile
type RegisterRequest struct {
	Email       kernel.Email `json:"email"`
	Password    string       `json:"password"`
	CompanyName string       `json:"company_name"`
	Description string       `json:"description"`
	Website     string       `json:"website"`
	Address     string       `json:"address"`
}

// LoginRequest authenticates an employer account
type LoginRequest struct {
	Email    kernel.Email `json:"email"`
	Password string       `json:"password"`
}

// LoginResponse carries the issued access token
type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	Profile     *Profile `json:"profile"`
}

// UpdateProfileRequest edits content fields of a profile
type UpdateProfileRequest struct {
	CompanyName *string `json:"company_name"`
	Description *string `json:"description"`
	Website     *string `json:"website"`
	Address     *string `json:"address"`
}

// ReviewRequest is the admin approve/reject input
type ReviewRequest struct {
	Reason *string `json:"reason"`
	Note   *string `json:"note"`
}

// PaginatedProfilesResponse is a page of employer profiles
type PaginatedProfilesResponse = kernel.Paginated[Profile]
