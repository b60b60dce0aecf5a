package applicationsrv

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jobgate-vn/jobgate/pkg/errx"
	"github.com/jobgate-vn/jobgate/pkg/kernel"
	"github.com/jobgate-vn/jobgate/recruitment/application"
	"github.com/jobgate-vn/jobgate/recruitment/candidate"
	"github.com/jobgate-vn/jobgate/recruitment/job"
	"github.com/jobgate-vn/jobgate/recruitment/ownership"
	"github.com/jobgate-vn/jobgate/recruitment/workflow"
	"github.com/jobgate-vn/jobgate/recruitment/workflow/workflowsrv"
)

// ApplicationService provides business operations for job applications.
// Candidates submit and track applications; employers review them
// through the approval workflow.
type ApplicationService struct {
	repo             application.Repository
	jobRepo          job.Repository
	cvVerifier       *ownership.Verifier[candidate.CV]
	jobGuard         ownership.Guard
	employerVerifier *ownership.Verifier[application.Application]
	coordinator      *workflowsrv.Coordinator
}

// NewApplicationService creates a new instance of the application service
func NewApplicationService(
	repo application.Repository,
	jobRepo job.Repository,
	cvVerifier *ownership.Verifier[candidate.CV],
	jobGuard ownership.Guard,
	employerVerifier *ownership.Verifier[application.Application],
	coordinator *workflowsrv.Coordinator,
) *ApplicationService {
	return &ApplicationService{
		repo:             repo,
		jobRepo:          jobRepo,
		cvVerifier:       cvVerifier,
		jobGuard:         jobGuard,
		employerVerifier: employerVerifier,
		coordinator:      coordinator,
	}
}

// Apply submits an application to a job post. The CV must belong to the
// caller and be approved; the single ownership query carries both
// predicates, so a foreign, missing or unapproved CV all read as not
// found.
func (s *ApplicationService) Apply(ctx context.Context, userID kernel.UserID, req application.ApplyRequest) (*application.Application, error) {
	if req.JobID.IsEmpty() || req.CVID.IsEmpty() {
		return nil, application.ErrInvalidRequest().WithDetail("reason", "job_id and cv_id are required")
	}

	cv, err := s.cvVerifier.VerifyWithPredicate(
		ctx,
		req.CVID.String(),
		userID.String(),
		ownership.Eq("status", string(candidate.CVStatusApproved)),
	)
	if err != nil {
		return nil, err
	}

	post, err := s.jobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, job.ErrPostNotFound()
	}
	if !post.AcceptsApplications() {
		return nil, application.ErrJobNotOpen().WithDetail("status", post.Status)
	}

	exists, err := s.repo.ExistsByJobAndCandidate(ctx, req.JobID, cv.CandidateID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to check existing application", errx.TypeInternal)
	}
	if exists {
		return nil, application.ErrAlreadyApplied().WithDetail("job_id", req.JobID)
	}

	now := time.Now()
	app := &application.Application{
		ID:          kernel.NewApplicationID(uuid.NewString()),
		JobID:       req.JobID,
		CandidateID: cv.CandidateID,
		CVID:        cv.ID,
		CoverLetter: req.CoverLetter,
		Status:      application.StatusNew,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, app); err != nil {
		return nil, errx.Wrap(err, "failed to create application", errx.TypeInternal)
	}

	return app, nil
}

// ViewApplication opens an application on the employer side. A first
// view transitions new to viewed; re-opening an already-viewed or
// decided application is not an error.
func (s *ApplicationService) ViewApplication(ctx context.Context, appID kernel.ApplicationID, userID kernel.UserID) (*application.Application, error) {
	app, err := s.employerVerifier.VerifyIndirect(ctx, appID.String(), userID.String())
	if err != nil {
		return nil, err
	}

	if app.IsNew() {
		result, err := s.coordinator.OwnerTransition(
			ctx,
			workflow.KindApplication,
			appID.String(),
			workflow.ActionView,
			workflow.Actor{ID: userID},
			workflow.TransitionPayload{},
		)
		if err != nil {
			// Lost the race against a concurrent first view; the
			// application is viewed either way.
			if !errx.IsCode(err, workflow.CodeStaleState) && !errx.IsCode(err, workflow.CodeIllegalTransition) {
				return nil, err
			}
			return s.repo.GetByID(ctx, appID)
		}
		app.Status = application.Status(result.NewState)
		app.StatusUpdatedAt = &result.OccurredAt
	}

	return app, nil
}

// Shortlist selects a viewed application for the next round (employer)
func (s *ApplicationService) Shortlist(ctx context.Context, appID kernel.ApplicationID, userID kernel.UserID, note *string) (*workflow.TransitionResult, error) {
	return s.coordinator.OwnerTransition(
		ctx,
		workflow.KindApplication,
		appID.String(),
		workflow.ActionShortlist,
		workflow.Actor{ID: userID},
		workflow.TransitionPayload{Note: note},
	)
}

// Reject declines a viewed application with a mandatory reason (employer)
func (s *ApplicationService) Reject(ctx context.Context, appID kernel.ApplicationID, userID kernel.UserID, reason *string) (*workflow.TransitionResult, error) {
	return s.coordinator.OwnerTransition(
		ctx,
		workflow.KindApplication,
		appID.String(),
		workflow.ActionReject,
		workflow.Actor{ID: userID},
		workflow.TransitionPayload{Reason: reason},
	)
}

// ListForJob retrieves applications to one of the caller's job posts.
// Ownership of the post is checked first; a foreign post reads as not
// found, never as an empty or forbidden listing.
func (s *ApplicationService) ListForJob(ctx context.Context, jobID kernel.JobID, userID kernel.UserID, pagination kernel.PaginationOptions) (*application.PaginatedApplicationsResponse, error) {
	if err := s.jobGuard.RequireOwner(ctx, jobID.String(), userID.String()); err != nil {
		return nil, err
	}

	apps, err := s.repo.ListByJobID(ctx, jobID, pagination.Normalize())
	if err != nil {
		return nil, errx.Wrap(err, "failed to list applications", errx.TypeInternal)
	}
	return apps, nil
}

// ListMine retrieves the caller's own applications (candidate)
func (s *ApplicationService) ListMine(ctx context.Context, userID kernel.UserID, pagination kernel.PaginationOptions) (*application.PaginatedApplicationsResponse, error) {
	apps, err := s.repo.ListByCandidateID(ctx, kernel.NewCandidateID(userID.String()), pagination.Normalize())
	if err != nil {
		return nil, errx.Wrap(err, "failed to list applications", errx.TypeInternal)
	}
	return apps, nil
}
