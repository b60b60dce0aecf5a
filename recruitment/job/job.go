package job

import (
	"time"

	"github.com/jobgate-vn/jobgate/pkg/kernel"
	"github.com/jobgate-vn/jobgate/recruitment/ownership"
)

// PostStatus represents the status of a job post
type PostStatus string

const (
	PostStatusPendingApproval PostStatus = "pending_approval" // Submitted, awaiting admin review
	PostStatusActive          PostStatus = "active"           // Approved and visible
	PostStatusExpired         PostStatus = "expired"          // Past its deadline
	PostStatusHidden          PostStatus = "hidden"           // Hidden by the employer
	PostStatusDeleted         PostStatus = "deleted"          // Deleted by the employer
	PostStatusRejected        PostStatus = "rejected"         // Rejected by admin
	PostStatusRemovedByAdmin  PostStatus = "removed_by_admin" // Taken down by admin
)

// Post is a job posting owned by an employer profile
type Post struct {
	ID              kernel.JobID      `db:"id" json:"id"`
	EmployerID      kernel.EmployerID `db:"employer_id" json:"employer_id"`
	Title           string            `db:"title" json:"title"`
	Description     string            `db:"description" json:"description"`
	Requirements    string            `db:"requirements" json:"requirements"`
	Location        string            `db:"location" json:"location"`
	SalaryMin       *int64            `db:"salary_min" json:"salary_min,omitempty"`
	SalaryMax       *int64            `db:"salary_max" json:"salary_max,omitempty"`
	Status          PostStatus        `db:"status" json:"status"`
	StatusReason    *string           `db:"status_reason" json:"status_reason,omitempty"`
	StatusUpdatedAt *time.Time        `db:"status_updated_at" json:"status_updated_at,omitempty"`
	ExpiresAt       *time.Time        `db:"expires_at" json:"expires_at,omitempty"`
	CreatedAt       time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time         `db:"updated_at" json:"updated_at"`
	DeletedAt       *time.Time        `db:"deleted_at" json:"-"`
}

// OwnershipDescriptor declares how post ownership is resolved: through
// the employer profile to its owning user, in one join.
func (Post) OwnershipDescriptor() ownership.Descriptor {
	return ownership.Descriptor{
		Table: "job_posts",
		Kind:  ownership.Indirect,
		Path: []ownership.RelationHop{
			{Table: "employer_profiles", FromColumn: "employer_id", ToColumn: "id"},
		},
		TerminalColumn:   "user_id",
		SoftDeleteColumn: "deleted_at",
	}
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsActive checks if the post is approved and visible
func (p *Post) IsActive() bool {
	return p.Status == PostStatusActive
}

// IsPending checks if the post awaits admin review
func (p *Post) IsPending() bool {
	return p.Status == PostStatusPendingApproval
}

// AcceptsApplications checks if candidates may apply
func (p *Post) AcceptsApplications() bool {
	if !p.IsActive() {
		return false
	}
	if p.ExpiresAt != nil && p.ExpiresAt.Before(time.Now()) {
		return false
	}
	return true
}

// CanBeEdited checks if content fields may be changed
func (p *Post) CanBeEdited() bool {
	switch p.Status {
	case PostStatusDeleted, PostStatusRemovedByAdmin:
		return false
	}
	return true
}

// UpdateDetails updates post content fields
func (p *Post) UpdateDetails(title, description, requirements, location string) {
	if title != "" {
		p.Title = title
	}
	if description != "" {
		p.Description = description
	}
	if requirements != "" {
		p.Requirements = requirements
	}
	if location != "" {
		p.Location = location
	}
	p.UpdatedAt = time.Now()
}
