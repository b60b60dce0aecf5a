package candidate

import (
	"time"

	"github.com/jobgate-vn/jobgate/pkg/kernel"
	"github.com/jobgate-vn/jobgate/recruitment/ownership"
)

// Candidate is a job-seeker account
type Candidate struct {
	ID           kernel.CandidateID `db:"id" json:"id"`
	Email        kernel.Email       `db:"email" json:"email"`
	PasswordHash string             `db:"password_hash" json:"-"`
	FullName     string             `db:"full_name" json:"full_name"`
	Phone        kernel.Phone       `db:"phone" json:"phone,omitempty"`
	CreatedAt    time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `db:"updated_at" json:"updated_at"`
	DeletedAt    *time.Time         `db:"deleted_at" json:"-"`
}

// CVStatus represents the status of a CV profile
type CVStatus string

const (
	CVStatusPendingApproval     CVStatus = "pending_approval"      // Awaiting admin review
	CVStatusApproved            CVStatus = "approved"              // Visible to employers
	CVStatusRejected            CVStatus = "rejected"              // Rejected by admin
	CVStatusPendingEditApproval CVStatus = "pending_edit_approval" // Edited after approval, under re-review
)

// CV is a candidate's curriculum vitae, reviewed before it becomes
// visible to employers
type CV struct {
	ID              kernel.CVID        `db:"id" json:"id"`
	CandidateID     kernel.CandidateID `db:"candidate_id" json:"candidate_id"`
	Title           string             `db:"title" json:"title"`
	Summary         string             `db:"summary" json:"summary"`
	Skills          string             `db:"skills" json:"skills"`
	Experience      string             `db:"experience" json:"experience"`
	Education       string             `db:"education" json:"education"`
	FileURL         kernel.BucketURL   `db:"file_url" json:"file_url,omitempty"`
	Status          CVStatus           `db:"status" json:"status"`
	StatusReason    *string            `db:"status_reason" json:"status_reason,omitempty"`
	StatusUpdatedAt *time.Time         `db:"status_updated_at" json:"status_updated_at,omitempty"`
	CreatedAt       time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `db:"updated_at" json:"updated_at"`
	DeletedAt       *time.Time         `db:"deleted_at" json:"-"`
}

// OwnershipDescriptor declares how CV ownership is resolved. The
// candidate id is the account id, so the check is a direct column match.
func (CV) OwnershipDescriptor() ownership.Descriptor {
	return ownership.Descriptor{
		Table:            "cvs",
		Kind:             ownership.Direct,
		OwnerColumn:      "candidate_id",
		SoftDeleteColumn: "deleted_at",
	}
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsApproved checks if the CV is visible to employers
func (cv *CV) IsApproved() bool {
	return cv.Status == CVStatusApproved
}

// IsUnderReview checks if the CV awaits admin review
func (cv *CV) IsUnderReview() bool {
	return cv.Status == CVStatusPendingApproval || cv.Status == CVStatusPendingEditApproval
}

// UpdateDetails updates CV content fields
func (cv *CV) UpdateDetails(title, summary, skills, experience, education string) {
	if title != "" {
		cv.Title = title
	}
	if summary != "" {
		cv.Summary = summary
	}
	if skills != "" {
		cv.Skills = skills
	}
	if experience != "" {
		cv.Experience = experience
	}
	if education != "" {
		cv.Education = education
	}
	cv.UpdatedAt = time.Now()
}
