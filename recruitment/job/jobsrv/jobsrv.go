package jobsrv

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jobgate-vn/jobgate/pkg/errx"
	"github.com/jobgate-vn/jobgate/pkg/kernel"
	"github.com/jobgate-vn/jobgate/recruitment/employer"
	"github.com/jobgate-vn/jobgate/recruitment/job"
	"github.com/jobgate-vn/jobgate/recruitment/ownership"
	"github.com/jobgate-vn/jobgate/recruitment/workflow"
	"github.com/jobgate-vn/jobgate/recruitment/workflow/workflowsrv"
)

// JobService provides business operations for job posts
type JobService struct {
	repo         job.Repository
	employerRepo employer.Repository
	verifier     *ownership.Verifier[job.Post]
	coordinator  *workflowsrv.Coordinator
}

// NewJobService creates a new instance of the job service
func NewJobService(
	repo job.Repository,
	employerRepo employer.Repository,
	verifier *ownership.Verifier[job.Post],
	coordinator *workflowsrv.Coordinator,
) *JobService {
	return &JobService{
		repo:         repo,
		employerRepo: employerRepo,
		verifier:     verifier,
		coordinator:  coordinator,
	}
}

// CreatePost creates a job post in pending review. The caller's employer
// profile must be active.
func (s *JobService) CreatePost(ctx context.Context, userID kernel.UserID, req job.CreatePostRequest) (*job.Post, error) {
	if req.Title == "" || req.Description == "" {
		return nil, job.ErrInvalidRequest().WithDetail("reason", "title and description are required")
	}

	profile, err := s.employerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, job.ErrEmployerNotActive()
	}
	if !profile.CanPostJobs() {
		return nil, job.ErrEmployerNotActive().WithDetail("status", profile.Status)
	}

	now := time.Now()
	post := &job.Post{
		ID:           kernel.NewJobID(uuid.NewString()),
		EmployerID:   profile.ID,
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
		Location:     req.Location,
		SalaryMin:    req.SalaryMin,
		SalaryMax:    req.SalaryMax,
		Status:       job.PostStatusPendingApproval,
		ExpiresAt:    req.ExpiresAt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, errx.Wrap(err, "failed to create job post", errx.TypeInternal)
	}

	return post, nil
}

// GetMyPost retrieves one of the caller's own posts through the ownership
// verifier; a foreign or missing id reads as not found
func (s *JobService) GetMyPost(ctx context.Context, postID kernel.JobID, userID kernel.UserID) (*job.Post, error) {
	return s.verifier.VerifyIndirect(ctx, postID.String(), userID.String())
}

// GetPublishedPost retrieves an active post for public viewing
func (s *JobService) GetPublishedPost(ctx context.Context, postID kernel.JobID) (*job.Post, error) {
	post, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return nil, job.ErrPostNotFound()
	}
	if !post.IsActive() {
		return nil, job.ErrPostNotFound()
	}
	return post, nil
}

// UpdatePost edits content fields of the caller's own post. An active
// post keeps its status; re-review applies only to resubmission.
func (s *JobService) UpdatePost(ctx context.Context, postID kernel.JobID, userID kernel.UserID, req job.UpdatePostRequest) (*job.Post, error) {
	post, err := s.verifier.VerifyIndirect(ctx, postID.String(), userID.String())
	if err != nil {
		return nil, err
	}

	if !post.CanBeEdited() {
		return nil, job.ErrPostNotEditable().WithDetail("status", post.Status)
	}

	post.UpdateDetails(
		derefOr(req.Title),
		derefOr(req.Description),
		derefOr(req.Requirements),
		derefOr(req.Location),
	)

	if err := s.repo.Update(ctx, postID, post); err != nil {
		return nil, errx.Wrap(err, "failed to update job post", errx.TypeInternal)
	}

	return post, nil
}

// HidePost hides an active post from public listings (owner)
func (s *JobService) HidePost(ctx context.Context, postID kernel.JobID, userID kernel.UserID) (*workflow.TransitionResult, error) {
	return s.ownerTransition(ctx, postID, userID, workflow.ActionHide, workflow.TransitionPayload{})
}

// UnhidePost returns a hidden post to public listings (owner)
func (s *JobService) UnhidePost(ctx context.Context, postID kernel.JobID, userID kernel.UserID) (*workflow.TransitionResult, error) {
	return s.ownerTransition(ctx, postID, userID, workflow.ActionResubmit, workflow.TransitionPayload{})
}

// DeletePost marks a post deleted (owner)
func (s *JobService) DeletePost(ctx context.Context, postID kernel.JobID, userID kernel.UserID) (*workflow.TransitionResult, error) {
	return s.ownerTransition(ctx, postID, userID, workflow.ActionDelete, workflow.TransitionPayload{})
}

// ResubmitPost sends an expired post back to review (owner)
func (s *JobService) ResubmitPost(ctx context.Context, postID kernel.JobID, userID kernel.UserID) (*workflow.TransitionResult, error) {
	return s.ownerTransition(ctx, postID, userID, workflow.ActionResubmit, workflow.TransitionPayload{})
}

// ExpirePost marks a post past its deadline. Run by the scheduler, which
// acts with admin authority.
func (s *JobService) ExpirePost(ctx context.Context, postID kernel.JobID, actor workflow.Actor) (*workflow.TransitionResult, error) {
	return s.coordinator.AdminTransition(
		ctx,
		workflow.KindJobPost,
		postID.String(),
		workflow.ActionExpire,
		actor,
		workflow.TransitionPayload{},
	)
}

// ApprovePost approves a pending post (admin)
func (s *JobService) ApprovePost(ctx context.Context, postID kernel.JobID, actor workflow.Actor, note *string) (*workflow.TransitionResult, error) {
	return s.coordinator.AdminTransition(
		ctx,
		workflow.KindJobPost,
		postID.String(),
		workflow.ActionApprove,
		actor,
		workflow.TransitionPayload{Note: note},
	)
}

// RejectPost rejects a pending post with a mandatory reason (admin)
func (s *JobService) RejectPost(ctx context.Context, postID kernel.JobID, actor workflow.Actor, reason *string) (*workflow.TransitionResult, error) {
	return s.coordinator.AdminTransition(
		ctx,
		workflow.KindJobPost,
		postID.String(),
		workflow.ActionReject,
		actor,
		workflow.TransitionPayload{Reason: reason},
	)
}

// RemovePost takes down an active post with a mandatory reason (admin)
func (s *JobService) RemovePost(ctx context.Context, postID kernel.JobID, actor workflow.Actor, reason *string) (*workflow.TransitionResult, error) {
	return s.coordinator.AdminTransition(
		ctx,
		workflow.KindJobPost,
		postID.String(),
		workflow.ActionRemove,
		actor,
		workflow.TransitionPayload{Reason: reason},
	)
}

// ListPublished retrieves active posts for public browsing
func (s *JobService) ListPublished(ctx context.Context, pagination kernel.PaginationOptions) (*job.PaginatedPostsResponse, error) {
	posts, err := s.repo.ListActive(ctx, pagination.Normalize())
	if err != nil {
		return nil, errx.Wrap(err, "failed to list job posts", errx.TypeInternal)
	}
	return posts, nil
}

// ListMine retrieves the caller's own posts
func (s *JobService) ListMine(ctx context.Context, userID kernel.UserID, pagination kernel.PaginationOptions) (*job.PaginatedPostsResponse, error) {
	profile, err := s.employerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, job.ErrEmployerNotActive()
	}

	posts, err := s.repo.ListByEmployerID(ctx, profile.ID, pagination.Normalize())
	if err != nil {
		return nil, errx.Wrap(err, "failed to list job posts", errx.TypeInternal)
	}
	return posts, nil
}

// ListByStatus retrieves posts by status (admin review queues)
func (s *JobService) ListByStatus(ctx context.Context, status job.PostStatus, pagination kernel.PaginationOptions) (*job.PaginatedPostsResponse, error) {
	posts, err := s.repo.ListByStatus(ctx, status, pagination.Normalize())
	if err != nil {
		return nil, errx.Wrap(err, "failed to list job posts", errx.TypeInternal)
	}
	return posts, nil
}

func (s *JobService) ownerTransition(ctx context.Context, postID kernel.JobID, userID kernel.UserID, action workflow.Action, payload workflow.TransitionPayload) (*workflow.TransitionResult, error) {
	return s.coordinator.OwnerTransition(
		ctx,
		workflow.KindJobPost,
		postID.String(),
		action,
		workflow.Actor{ID: userID},
		payload,
	)
}

func derefOr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
