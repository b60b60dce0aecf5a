package candidatesrv

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jobgate-vn/jobgate/pkg/errx"
	"github.com/jobgate-vn/jobgate/pkg/fsx"
	"github.com/jobgate-vn/jobgate/pkg/iam/auth"
	"github.com/jobgate-vn/jobgate/pkg/kernel"
	"github.com/jobgate-vn/jobgate/recruitment/candidate"
	"github.com/jobgate-vn/jobgate/recruitment/ownership"
	"github.com/jobgate-vn/jobgate/recruitment/workflow"
	"github.com/jobgate-vn/jobgate/recruitment/workflow/workflowsrv"
)

// CandidateService provides business operations for candidate accounts
// and their CVs
type CandidateService struct {
	repo        candidate.Repository
	cvRepo      candidate.CVRepository
	verifier    *ownership.Verifier[candidate.CV]
	coordinator *workflowsrv.Coordinator
	passwordSvc auth.PasswordService
	tokenSvc    auth.TokenService
	fileSystem  fsx.FileSystem
}

// NewCandidateService creates a new instance of the candidate service
func NewCandidateService(
	repo candidate.Repository,
	cvRepo candidate.CVRepository,
	verifier *ownership.Verifier[candidate.CV],
	coordinator *workflowsrv.Coordinator,
	passwordSvc auth.PasswordService,
	tokenSvc auth.TokenService,
	fileSystem fsx.FileSystem,
) *CandidateService {
	return &CandidateService{
		repo:        repo,
		cvRepo:      cvRepo,
		verifier:    verifier,
		coordinator: coordinator,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		fileSystem:  fileSystem,
	}
}

// Register creates a candidate account
func (s *CandidateService) Register(ctx context.Context, req candidate.RegisterRequest) (*candidate.Candidate, error) {
	if req.Email.IsEmpty() || req.Password == "" || req.FullName == "" {
		return nil, candidate.ErrInvalidRequest().WithDetail("reason", "email, password and full_name are required")
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, errx.Wrap(err, "failed to check candidate email", errx.TypeInternal)
	}
	if exists {
		return nil, candidate.ErrCandidateAlreadyExists().WithDetail("email", req.Email)
	}

	hash, err := s.passwordSvc.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	cand := &candidate.Candidate{
		ID:           kernel.NewCandidateID(uuid.NewString()),
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Phone:        req.Phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, cand); err != nil {
		return nil, errx.Wrap(err, "failed to create candidate", errx.TypeInternal)
	}

	return cand, nil
}

// Login authenticates a candidate account and issues a token. The
// candidate id doubles as the token's user id.
func (s *CandidateService) Login(ctx context.Context, req candidate.LoginRequest) (*candidate.LoginResponse, error) {
	cand, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, auth.ErrInvalidCredentials()
	}

	if err := s.passwordSvc.Compare(cand.PasswordHash, req.Password); err != nil {
		return nil, err
	}

	token, err := s.tokenSvc.GenerateAccessToken(kernel.NewUserID(cand.ID.String()), auth.RoleCandidate, cand.Email)
	if err != nil {
		return nil, err
	}

	return &candidate.LoginResponse{AccessToken: token, Candidate: cand}, nil
}

// GetMe retrieves the caller's own account
func (s *CandidateService) GetMe(ctx context.Context, userID kernel.UserID) (*candidate.Candidate, error) {
	cand, err := s.repo.GetByID(ctx, kernel.NewCandidateID(userID.String()))
	if err != nil {
		return nil, candidate.ErrCandidateNotFound()
	}
	return cand, nil
}

// CreateCV creates a CV in pending review
func (s *CandidateService) CreateCV(ctx context.Context, userID kernel.UserID, req candidate.CreateCVRequest) (*candidate.CV, error) {
	if req.Title == "" {
		return nil, candidate.ErrInvalidRequest().WithDetail("reason", "title is required")
	}

	now := time.Now()
	cv := &candidate.CV{
		ID:          kernel.NewCVID(uuid.NewString()),
		CandidateID: kernel.NewCandidateID(userID.String()),
		Title:       req.Title,
		Summary:     req.Summary,
		Skills:      req.Skills,
		Experience:  req.Experience,
		Education:   req.Education,
		Status:      candidate.CVStatusPendingApproval,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.cvRepo.Create(ctx, cv); err != nil {
		return nil, errx.Wrap(err, "failed to create CV", errx.TypeInternal)
	}

	return cv, nil
}

// GetMyCV retrieves one of the caller's own CVs through the ownership
// verifier; a foreign or missing id reads as not found
func (s *CandidateService) GetMyCV(ctx context.Context, cvID kernel.CVID, userID kernel.UserID) (*candidate.CV, error) {
	return s.verifier.VerifyDirect(ctx, cvID.String(), userID.String())
}

// ListMyCVs retrieves the caller's own CVs
func (s *CandidateService) ListMyCVs(ctx context.Context, userID kernel.UserID, pagination kernel.PaginationOptions) (*candidate.PaginatedCVsResponse, error) {
	cvs, err := s.cvRepo.ListByCandidateID(ctx, kernel.NewCandidateID(userID.String()), pagination.Normalize())
	if err != nil {
		return nil, errx.Wrap(err, "failed to list CVs", errx.TypeInternal)
	}
	return cvs, nil
}

// UpdateCV edits content fields of the caller's own CV. An approved CV
// re-enters review after the edit.
func (s *CandidateService) UpdateCV(ctx context.Context, cvID kernel.CVID, userID kernel.UserID, req candidate.UpdateCVRequest) (*candidate.CV, error) {
	cv, err := s.verifier.VerifyDirect(ctx, cvID.String(), userID.String())
	if err != nil {
		return nil, err
	}

	if cv.IsUnderReview() {
		return nil, candidate.ErrCVUnderReview().WithDetail("status", cv.Status)
	}

	wasApproved := cv.IsApproved()

	cv.UpdateDetails(
		derefOr(req.Title),
		derefOr(req.Summary),
		derefOr(req.Skills),
		derefOr(req.Experience),
		derefOr(req.Education),
	)

	if err := s.cvRepo.Update(ctx, cvID, cv); err != nil {
		return nil, errx.Wrap(err, "failed to update CV", errx.TypeInternal)
	}

	if wasApproved {
		result, err := s.coordinator.OwnerTransition(
			ctx,
			workflow.KindCandidateProfile,
			cvID.String(),
			workflow.ActionResubmit,
			workflow.Actor{ID: userID},
			workflow.TransitionPayload{},
		)
		if err != nil {
			return nil, err
		}
		cv.Status = candidate.CVStatus(result.NewState)
		cv.StatusUpdatedAt = &result.OccurredAt
	}

	return cv, nil
}

// UploadCVFile stores a CV document and records its URL
func (s *CandidateService) UploadCVFile(ctx context.Context, cvID kernel.CVID, userID kernel.UserID, fileName string, data []byte) (*candidate.CV, error) {
	cv, err := s.verifier.VerifyDirect(ctx, cvID.String(), userID.String())
	if err != nil {
		return nil, err
	}

	path := s.fileSystem.Join("cvs", cv.CandidateID.String(), fileName)
	if err := s.fileSystem.WriteFile(ctx, path, data); err != nil {
		return nil, errx.Wrap(err, "failed to upload CV file", errx.TypeExternal)
	}

	cv.FileURL = kernel.BucketURL(path)
	cv.UpdatedAt = time.Now()

	if err := s.cvRepo.Update(ctx, cvID, cv); err != nil {
		s.fileSystem.DeleteFile(context.Background(), path)
		return nil, errx.Wrap(err, "failed to record CV file URL", errx.TypeInternal)
	}

	return cv, nil
}

// DeleteCVs removes a batch of the caller's CVs. Ownership of every id
// is verified in one query; one foreign id fails the whole batch as
// not found and nothing is deleted.
func (s *CandidateService) DeleteCVs(ctx context.Context, userID kernel.UserID, ids []kernel.CVID) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}

	if err := s.verifier.VerifyBulk(ctx, raw, userID.String()); err != nil {
		return err
	}

	if err := s.cvRepo.SoftDeleteByIDs(ctx, ids); err != nil {
		return errx.Wrap(err, "failed to delete CVs", errx.TypeInternal)
	}

	return nil
}

// ApproveCV approves a pending CV (admin)
func (s *CandidateService) ApproveCV(ctx context.Context, cvID kernel.CVID, actor workflow.Actor, note *string) (*workflow.TransitionResult, error) {
	return s.coordinator.AdminTransition(
		ctx,
		workflow.KindCandidateProfile,
		cvID.String(),
		workflow.ActionApprove,
		actor,
		workflow.TransitionPayload{Note: note},
	)
}

// RejectCV rejects a pending CV with a mandatory reason (admin)
func (s *CandidateService) RejectCV(ctx context.Context, cvID kernel.CVID, actor workflow.Actor, reason *string) (*workflow.TransitionResult, error) {
	return s.coordinator.AdminTransition(
		ctx,
		workflow.KindCandidateProfile,
		cvID.String(),
		workflow.ActionReject,
		actor,
		workflow.TransitionPayload{Reason: reason},
	)
}

// ListCVsByStatus retrieves CVs by status (admin review queues)
func (s *CandidateService) ListCVsByStatus(ctx context.Context, status candidate.CVStatus, pagination kernel.PaginationOptions) (*candidate.PaginatedCVsResponse, error) {
	cvs, err := s.cvRepo.ListByStatus(ctx, status, pagination.Normalize())
	if err != nil {
		return nil, errx.Wrap(err, "failed to list CVs", errx.TypeInternal)
	}
	return cvs, nil
}

func derefOr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
