package application

import (
	"time"

	"github.com/jobgate-vn/jobgate/pkg/kernel"
	"github.com/jobgate-vn/jobgate/recruitment/ownership"
)

// Status represents the status of a job application
type Status string

const (
	StatusNew         Status = "new"         // Submitted, not yet seen by the employer
	StatusViewed      Status = "viewed"      // Opened by the employer
	StatusShortlisted Status = "shortlisted" // Selected for the next round
	StatusRejected    Status = "rejected"    // Declined by the employer
)

// Application is a candidate's application to a job post
type Application struct {
	ID              kernel.ApplicationID `db:"id" json:"id"`
	JobID           kernel.JobID         `db:"job_id" json:"job_id"`
	CandidateID     kernel.CandidateID   `db:"candidate_id" json:"candidate_id"`
	CVID            kernel.CVID          `db:"cv_id" json:"cv_id"`
	CoverLetter     string               `db:"cover_letter" json:"cover_letter"`
	Status          Status               `db:"status" json:"status"`
	StatusReason    *string              `db:"status_reason" json:"status_reason,omitempty"`
	StatusUpdatedAt *time.Time           `db:"status_updated_at" json:"status_updated_at,omitempty"`
	CreatedAt       time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time            `db:"updated_at" json:"updated_at"`
	DeletedAt       *time.Time           `db:"deleted_at" json:"-"`
}

// OwnershipDescriptor declares candidate-side ownership: the applicant
// owns their application through a direct column match.
func (Application) OwnershipDescriptor() ownership.Descriptor {
	return ownership.Descriptor{
		Table:            "applications",
		Kind:             ownership.Direct,
		OwnerColumn:      "candidate_id",
		SoftDeleteColumn: "deleted_at",
	}
}

// EmployerOwnershipDescriptor declares employer-side ownership: the
// application is reachable from the employer's user through the job
// post and the employer profile, two joins away.
func EmployerOwnershipDescriptor() ownership.Descriptor {
	return ownership.Descriptor{
		Table: "applications",
		Kind:  ownership.Indirect,
		Path: []ownership.RelationHop{
			{Table: "job_posts", FromColumn: "job_id", ToColumn: "id"},
			{Table: "employer_profiles", FromColumn: "employer_id", ToColumn: "id"},
		},
		TerminalColumn:   "user_id",
		SoftDeleteColumn: "deleted_at",
	}
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsNew checks if the application has not yet been seen
func (a *Application) IsNew() bool {
	return a.Status == StatusNew
}

// IsDecided checks if the employer has reached a decision
func (a *Application) IsDecided() bool {
	return a.Status == StatusShortlisted || a.Status == StatusRejected
}
