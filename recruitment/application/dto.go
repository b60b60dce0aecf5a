package application

import (
	"github.com/jobgate-vn/jobgate/pkg/kernel"
)

// ApplyRequest submits an application to a job post
type ApplyRequest struct {
	JobID       kernel.JobID `json:"job_id"`
	CVID        kernel.CVID  `json:"cv_id"`
	CoverLetter string       `json:"cover_letter"`
}

// ReviewRequest is the employer reject input
type ReviewRequest struct {
	Reason *string `json:"reason"`
	Note   *string `json:"note"`
}

// PaginatedApplicationsResponse is a page of applications
type PaginatedApplicationsResponse = kernel.Paginated[Application]
