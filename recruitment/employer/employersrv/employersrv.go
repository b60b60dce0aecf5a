package employersrv

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jobgate-vn/jobgate/pkg/errx"
	"github.com/jobgate-vn/jobgate/pkg/fsx"
	"github.com/jobgate-vn/jobgate/pkg/iam/auth"
	"github.com/jobgate-vn/jobgate/pkg/kernel"
	"github.com/jobgate-vn/jobgate/recruitment/employer"
	"github.com/jobgate-vn/jobgate/recruitment/ownership"
	"github.com/jobgate-vn/jobgate/recruitment/workflow"
	"github.com/jobgate-vn/jobgate/recruitment/workflow/workflowsrv"
)

// EmployerService provides business operations for employer profiles
type EmployerService struct {
	repo        employer.Repository
	verifier    *ownership.Verifier[employer.Profile]
	coordinator *workflowsrv.Coordinator
	passwordSvc auth.PasswordService
	tokenSvc    auth.TokenService
	fileSystem  fsx.FileSystem
}

// NewEmployerService creates a new instance of the employer service
func NewEmployerService(
	repo employer.Repository,
	verifier *ownership.Verifier[employer.Profile],
	coordinator *workflowsrv.Coordinator,
	passwordSvc auth.PasswordService,
	tokenSvc auth.TokenService,
	fileSystem fsx.FileSystem,
) *EmployerService {
	return &EmployerService{
		repo:        repo,
		verifier:    verifier,
		coordinator: coordinator,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		fileSystem:  fileSystem,
	}
}

// Register creates an employer account with a draft profile
func (s *EmployerService) Register(ctx context.Context, req employer.RegisterRequest) (*employer.Profile, error) {
	if req.Email.IsEmpty() || req.Password == "" || req.CompanyName == "" {
		return nil, employer.ErrInvalidRequest().WithDetail("reason", "email, password and company_name are required")
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, errx.Wrap(err, "failed to check employer email", errx.TypeInternal)
	}
	if exists {
		return nil, employer.ErrProfileAlreadyExists().WithDetail("email", req.Email)
	}

	hash, err := s.passwordSvc.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	profile := &employer.Profile{
		ID:           kernel.NewEmployerID(uuid.NewString()),
		UserID:       kernel.NewUserID(uuid.NewString()),
		Email:        req.Email,
		PasswordHash: hash,
		CompanyName:  req.CompanyName,
		Description:  req.Description,
		Website:      req.Website,
		Address:      req.Address,
		Status:       employer.ProfileStatusDraft,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, profile); err != nil {
		return nil, errx.Wrap(err, "failed to create employer profile", errx.TypeInternal)
	}

	return profile, nil
}

// Login authenticates an employer account and issues a token
func (s *EmployerService) Login(ctx context.Context, req employer.LoginRequest) (*employer.LoginResponse, error) {
	profile, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, auth.ErrInvalidCredentials()
	}

	if err := s.passwordSvc.Compare(profile.PasswordHash, req.Password); err != nil {
		return nil, err
	}

	token, err := s.tokenSvc.GenerateAccessToken(profile.UserID, auth.RoleEmployer, profile.Email)
	if err != nil {
		return nil, err
	}

	return &employer.LoginResponse{AccessToken: token, Profile: profile}, nil
}

// GetMyProfile retrieves the caller's own profile through the ownership
// verifier, so a stale or foreign id is indistinguishable from absence
func (s *EmployerService) GetMyProfile(ctx context.Context, profileID kernel.EmployerID, userID kernel.UserID) (*employer.Profile, error) {
	return s.verifier.VerifyDirect(ctx, profileID.String(), userID.String())
}

// GetProfileByUser retrieves a profile by its owning user
func (s *EmployerService) GetProfileByUser(ctx context.Context, userID kernel.UserID) (*employer.Profile, error) {
	profile, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, employer.ErrProfileNotFound()
	}
	return profile, nil
}

// SubmitProfile submits a draft profile for admin review
func (s *EmployerService) SubmitProfile(ctx context.Context, profileID kernel.EmployerID, userID kernel.UserID) (*workflow.TransitionResult, error) {
	return s.coordinator.OwnerTransition(
		ctx,
		workflow.KindEmployerProfile,
		profileID.String(),
		workflow.ActionResubmit,
		workflow.Actor{ID: userID},
		workflow.TransitionPayload{},
	)
}

// UpdateProfile edits content fields of the caller's own profile.
// An active profile re-enters review after the edit.
func (s *EmployerService) UpdateProfile(ctx context.Context, profileID kernel.EmployerID, userID kernel.UserID, req employer.UpdateProfileRequest) (*employer.Profile, error) {
	profile, err := s.verifier.VerifyDirect(ctx, profileID.String(), userID.String())
	if err != nil {
		return nil, err
	}

	if !profile.CanBeEdited() {
		return nil, employer.ErrProfileUnderReview().WithDetail("status", profile.Status)
	}

	wasActive := profile.IsActive()

	profile.UpdateDetails(
		derefOr(req.CompanyName),
		derefOr(req.Description),
		derefOr(req.Website),
		derefOr(req.Address),
	)

	if err := s.repo.Update(ctx, profileID, profile); err != nil {
		return nil, errx.Wrap(err, "failed to update employer profile", errx.TypeInternal)
	}

	if wasActive {
		result, err := s.coordinator.OwnerTransition(
			ctx,
			workflow.KindEmployerProfile,
			profileID.String(),
			workflow.ActionResubmit,
			workflow.Actor{ID: userID},
			workflow.TransitionPayload{},
		)
		if err != nil {
			return nil, err
		}
		profile.Status = employer.ProfileStatus(result.NewState)
		profile.StatusUpdatedAt = &result.OccurredAt
	}

	return profile, nil
}

// UploadLogo stores a company logo and records its URL on the profile
func (s *EmployerService) UploadLogo(ctx context.Context, profileID kernel.EmployerID, userID kernel.UserID, fileName string, data []byte) (*employer.Profile, error) {
	profile, err := s.verifier.VerifyDirect(ctx, profileID.String(), userID.String())
	if err != nil {
		return nil, err
	}

	path := s.fileSystem.Join("logos", profile.ID.String(), fileName)
	if err := s.fileSystem.WriteFile(ctx, path, data); err != nil {
		return nil, errx.Wrap(err, "failed to upload logo", errx.TypeExternal)
	}

	profile.LogoURL = kernel.BucketURL(path)
	profile.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, profileID, profile); err != nil {
		s.fileSystem.DeleteFile(context.Background(), path)
		return nil, errx.Wrap(err, "failed to record logo URL", errx.TypeInternal)
	}

	return profile, nil
}

// ApproveProfile approves a pending profile (admin)
func (s *EmployerService) ApproveProfile(ctx context.Context, profileID kernel.EmployerID, actor workflow.Actor, note *string) (*workflow.TransitionResult, error) {
	return s.coordinator.AdminTransition(
		ctx,
		workflow.KindEmployerProfile,
		profileID.String(),
		workflow.ActionApprove,
		actor,
		workflow.TransitionPayload{Note: note},
	)
}

// RejectProfile rejects a pending profile with a mandatory reason (admin)
func (s *EmployerService) RejectProfile(ctx context.Context, profileID kernel.EmployerID, actor workflow.Actor, reason *string) (*workflow.TransitionResult, error) {
	return s.coordinator.AdminTransition(
		ctx,
		workflow.KindEmployerProfile,
		profileID.String(),
		workflow.ActionReject,
		actor,
		workflow.TransitionPayload{Reason: reason},
	)
}

// ListProfiles retrieves profiles filtered by status (admin)
func (s *EmployerService) ListProfiles(ctx context.Context, status *employer.ProfileStatus, pagination kernel.PaginationOptions) (*employer.PaginatedProfilesResponse, error) {
	profiles, err := s.repo.List(ctx, status, pagination.Normalize())
	if err != nil {
		return nil, errx.Wrap(err, "failed to list employer profiles", errx.TypeInternal)
	}
	return profiles, nil
}

func derefOr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
