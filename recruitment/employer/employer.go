package employer

import (
	"time"

	"github.com/jobgate-vn/jobgate/pkg/kernel"
	"github.com/jobgate-vn/jobgate/recruitment/ownership"
)

// ProfileStatus represents the review status of an employer profile
type ProfileStatus string

const (
	ProfileStatusDraft                 ProfileStatus = "draft"                   // Created, not yet submitted
	ProfileStatusPendingApproval       ProfileStatus = "pending_approval"        // Submitted, awaiting admin review
	ProfileStatusActive                ProfileStatus = "active"                  // Approved, visible to candidates
	ProfileStatusPendingUpdateApproval ProfileStatus = "pending_update_approval" // Edited while active, awaiting re-review
	ProfileStatusRejected              ProfileStatus = "rejected"                // Rejected by admin
)

// Profile is an employer's company profile. The account credentials
// live on the profile row; UserID is the login identity carried in
// access tokens.
type Profile struct {
	ID              kernel.EmployerID `db:"id" json:"id"`
	UserID          kernel.UserID     `db:"user_id" json:"user_id"`
	Email           kernel.Email      `db:"email" json:"email"`
	PasswordHash    string            `db:"password_hash" json:"-"`
	CompanyName     string            `db:"company_name" json:"company_name"`
	Description     string            `db:"description" json:"description"`
	Website         string            `db:"website" json:"website,omitempty"`
	Address         string            `db:"address" json:"address,omitempty"`
	LogoURL         kernel.BucketURL  `db:"logo_url" json:"logo_url,omitempty"`
	Status          ProfileStatus     `db:"status" json:"status"`
	StatusReason    *string           `db:"status_reason" json:"status_reason,omitempty"`
	StatusUpdatedAt *time.Time        `db:"status_updated_at" json:"status_updated_at,omitempty"`
	CreatedAt       time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time         `db:"updated_at" json:"updated_at"`
	DeletedAt       *time.Time        `db:"deleted_at" json:"-"`
}

// OwnershipDescriptor declares how profile ownership is resolved: the
// row carries its owner's user id directly.
func (Profile) OwnershipDescriptor() ownership.Descriptor {
	return ownership.Descriptor{
		Table:            "employer_profiles",
		Kind:             ownership.Direct,
		OwnerColumn:      "user_id",
		SoftDeleteColumn: "deleted_at",
	}
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsActive checks if the profile has been approved
func (p *Profile) IsActive() bool {
	return p.Status == ProfileStatusActive
}

// IsUnderReview checks if the profile awaits admin review
func (p *Profile) IsUnderReview() bool {
	return p.Status == ProfileStatusPendingApproval || p.Status == ProfileStatusPendingUpdateApproval
}

// CanBeEdited checks if content fields may be changed
func (p *Profile) CanBeEdited() bool {
	return !p.IsUnderReview()
}

// CanPostJobs checks if the employer may create job posts
func (p *Profile) CanPostJobs() bool {
	return p.IsActive()
}

// UpdateDetails updates profile content fields
func (p *Profile) UpdateDetails(companyName, description, website, address string) {
	if companyName != "" {
		p.CompanyName = companyName
	}
	if description != "" {
		p.Description = description
	}
	if website != "" {
		p.Website = website
	}
	if address != "" {
		p.Address = address
	}
	p.UpdatedAt = time.Now()
}
