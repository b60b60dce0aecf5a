package applicationsrv

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jobgate-vn/jobgate/pkg/errx"
	"github.com/jobgate-vn/jobgate/pkg/kernel"
	"github.com/jobgate-vn/jobgate/recruitment/application"
	"github.com/jobgate-vn/jobgate/recruitment/candidate"
	"github.com/jobgate-vn/jobgate/recruitment/job"
	"github.com/jobgate-vn/jobgate/recruitment/ownership"
	"github.com/jobgate-vn/jobgate/recruitment/workflow"
	"github.com/jobgate-vn/jobgate/recruitment/workflow/workflowsrv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOwnershipStore answers every ownership query from one canned
// entity; the tests steer outcomes by setting or clearing it.
type fakeOwnershipStore[E any] struct {
	entity  *E
	queries []ownership.Query
}

func (s *fakeOwnershipStore[E]) FindOneWhere(ctx context.Context, q ownership.Query) (*E, error) {
	s.queries = append(s.queries, q)
	return s.entity, nil
}

func (s *fakeOwnershipStore[E]) CountWhere(ctx context.Context, q ownership.Query) (int64, error) {
	s.queries = append(s.queries, q)
	if s.entity == nil {
		return 0, nil
	}
	return 1, nil
}

type fakeApplicationRepo struct {
	apps    map[string]*application.Application
	exists  bool
	created []*application.Application
}

func (r *fakeApplicationRepo) Create(ctx context.Context, app *application.Application) error {
	r.created = append(r.created, app)
	return nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
	app, ok := r.apps[id.String()]
	if !ok {
		return nil, application.ErrApplicationNotFound()
	}
	return app, nil
}

func (r *fakeApplicationRepo) ExistsByJobAndCandidate(ctx context.Context, jobID kernel.JobID, candidateID kernel.CandidateID) (bool, error) {
	return r.exists, nil
}

func (r *fakeApplicationRepo) ListByJobID(ctx context.Context, jobID kernel.JobID, pagination kernel.PaginationOptions) (*kernel.Paginated[application.Application], error) {
	return &kernel.Paginated[application.Application]{Empty: true}, nil
}

func (r *fakeApplicationRepo) ListByCandidateID(ctx context.Context, candidateID kernel.CandidateID, pagination kernel.PaginationOptions) (*kernel.Paginated[application.Application], error) {
	return &kernel.Paginated[application.Application]{Empty: true}, nil
}

type fakeJobRepo struct {
	post *job.Post
}

func (r *fakeJobRepo) Create(ctx context.Context, post *job.Post) error { return nil }
func (r *fakeJobRepo) Update(ctx context.Context, id kernel.JobID, post *job.Post) error {
	return nil
}
func (r *fakeJobRepo) GetByID(ctx context.Context, id kernel.JobID) (*job.Post, error) {
	if r.post == nil {
		return nil, job.ErrPostNotFound()
	}
	return r.post, nil
}
func (r *fakeJobRepo) ListByEmployerID(ctx context.Context, employerID kernel.EmployerID, pagination kernel.PaginationOptions) (*kernel.Paginated[job.Post], error) {
	return nil, nil
}
func (r *fakeJobRepo) ListActive(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[job.Post], error) {
	return nil, nil
}
func (r *fakeJobRepo) ListByStatus(ctx context.Context, status job.PostStatus, pagination kernel.PaginationOptions) (*kernel.Paginated[job.Post], error) {
	return nil, nil
}

type allowGuard struct{}

func (allowGuard) RequireOwner(ctx context.Context, entityID, ownerID string) error { return nil }

// memStatusStore backs the coordinator in view/decision tests
type memStatusStore struct {
	mu       sync.Mutex
	statuses map[string]workflow.State
}

func (s *memStatusStore) GetStatus(ctx context.Context, kind workflow.ResourceKind, entityID string) (workflow.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.statuses[entityID]
	if !ok {
		return "", workflow.ErrEntityNotFound()
	}
	return state, nil
}

func (s *memStatusStore) UpdateStatus(ctx context.Context, kind workflow.ResourceKind, entityID string, observed, next workflow.State, reason *string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.statuses[entityID] != observed {
		return workflow.ErrStaleState()
	}
	s.statuses[entityID] = next
	return nil
}

type testDeps struct {
	repo     *fakeApplicationRepo
	jobRepo  *fakeJobRepo
	cvStore  *fakeOwnershipStore[candidate.CV]
	appStore *fakeOwnershipStore[application.Application]
	statuses *memStatusStore
	service  *ApplicationService
}

func newTestService(t *testing.T) *testDeps {
	t.Helper()

	d := &testDeps{
		repo:     &fakeApplicationRepo{apps: map[string]*application.Application{}},
		jobRepo:  &fakeJobRepo{},
		cvStore:  &fakeOwnershipStore[candidate.CV]{},
		appStore: &fakeOwnershipStore[application.Application]{},
		statuses: &memStatusStore{statuses: map[string]workflow.State{}},
	}

	cvVerifier := ownership.NewVerifierFor[candidate.CV](d.cvStore)
	employerVerifier := ownership.NewVerifier[application.Application](d.appStore, application.EmployerOwnershipDescriptor())

	coordinator := workflowsrv.NewCoordinator(
		workflowsrv.NewStateMachine(d.statuses),
		nil,
		map[workflow.ResourceKind]ownership.Guard{
			workflow.KindApplication: employerVerifier,
		},
	)

	d.service = NewApplicationService(d.repo, d.jobRepo, cvVerifier, allowGuard{}, employerVerifier, coordinator)
	return d
}

func TestApply(t *testing.T) {
	d := newTestService(t)
	d.cvStore.entity = &candidate.CV{
		ID:          kernel.NewCVID("cv-1"),
		CandidateID: kernel.NewCandidateID("cand-1"),
		Status:      candidate.CVStatusApproved,
	}
	d.jobRepo.post = &job.Post{ID: kernel.NewJobID("jp-1"), Status: job.PostStatusActive}

	app, err := d.service.Apply(context.Background(), kernel.NewUserID("cand-1"), application.ApplyRequest{
		JobID:       kernel.NewJobID("jp-1"),
		CVID:        kernel.NewCVID("cv-1"),
		CoverLetter: "Em rất mong được làm việc tại quý công ty",
	})
	require.NoError(t, err)

	assert.Equal(t, application.StatusNew, app.Status)
	assert.Equal(t, kernel.NewCandidateID("cand-1"), app.CandidateID)
	require.Len(t, d.repo.created, 1)

	// the CV lookup bundled ownership and the approved-status predicate
	require.Len(t, d.cvStore.queries, 1)
	q := d.cvStore.queries[0]
	var sawOwner, sawStatus bool
	for _, c := range q.Conditions {
		if c.Column == "candidate_id" {
			sawOwner = true
		}
		if c.Column == "status" && c.Value == string(candidate.CVStatusApproved) {
			sawStatus = true
		}
	}
	assert.True(t, sawOwner)
	assert.True(t, sawStatus)
}

func TestApplyUnapprovedCVIsNotFound(t *testing.T) {
	d := newTestService(t)
	// the predicate query returns nothing, whether the CV is foreign,
	// missing or simply not approved
	d.cvStore.entity = nil
	d.jobRepo.post = &job.Post{ID: kernel.NewJobID("jp-1"), Status: job.PostStatusActive}

	_, err := d.service.Apply(context.Background(), kernel.NewUserID("cand-1"), application.ApplyRequest{
		JobID: kernel.NewJobID("jp-1"),
		CVID:  kernel.NewCVID("cv-1"),
	})
	require.Error(t, err)
	assert.True(t, errx.IsType(err, errx.TypeNotFound))
	assert.Empty(t, d.repo.created)
}

func TestApplyClosedJob(t *testing.T) {
	d := newTestService(t)
	d.cvStore.entity = &candidate.CV{ID: kernel.NewCVID("cv-1"), CandidateID: kernel.NewCandidateID("cand-1")}
	d.jobRepo.post = &job.Post{ID: kernel.NewJobID("jp-1"), Status: job.PostStatusExpired}

	_, err := d.service.Apply(context.Background(), kernel.NewUserID("cand-1"), application.ApplyRequest{
		JobID: kernel.NewJobID("jp-1"),
		CVID:  kernel.NewCVID("cv-1"),
	})
	assert.True(t, errx.IsCode(err, application.CodeJobNotOpen))
}

func TestApplyDuplicate(t *testing.T) {
	d := newTestService(t)
	d.cvStore.entity = &candidate.CV{ID: kernel.NewCVID("cv-1"), CandidateID: kernel.NewCandidateID("cand-1")}
	d.jobRepo.post = &job.Post{ID: kernel.NewJobID("jp-1"), Status: job.PostStatusActive}
	d.repo.exists = true

	_, err := d.service.Apply(context.Background(), kernel.NewUserID("cand-1"), application.ApplyRequest{
		JobID: kernel.NewJobID("jp-1"),
		CVID:  kernel.NewCVID("cv-1"),
	})
	assert.True(t, errx.IsCode(err, application.CodeAlreadyApplied))
}

func TestViewApplicationTransitionsOnce(t *testing.T) {
	d := newTestService(t)
	app := &application.Application{ID: kernel.NewApplicationID("app-1"), Status: application.StatusNew}
	d.appStore.entity = app
	d.repo.apps["app-1"] = app
	d.statuses.statuses["app-1"] = "new"

	got, err := d.service.ViewApplication(context.Background(), kernel.NewApplicationID("app-1"), kernel.NewUserID("emp-1"))
	require.NoError(t, err)
	assert.Equal(t, application.StatusViewed, got.Status)
	assert.Equal(t, workflow.State("viewed"), d.statuses.statuses["app-1"])
}

func TestViewApplicationAlreadyViewed(t *testing.T) {
	d := newTestService(t)
	app := &application.Application{ID: kernel.NewApplicationID("app-1"), Status: application.StatusViewed}
	d.appStore.entity = app
	d.repo.apps["app-1"] = app
	d.statuses.statuses["app-1"] = "viewed"

	// re-opening does not attempt another transition
	got, err := d.service.ViewApplication(context.Background(), kernel.NewApplicationID("app-1"), kernel.NewUserID("emp-1"))
	require.NoError(t, err)
	assert.Equal(t, application.StatusViewed, got.Status)
	assert.Equal(t, workflow.State("viewed"), d.statuses.statuses["app-1"])
}

func TestRejectRequiresReason(t *testing.T) {
	d := newTestService(t)
	app := &application.Application{ID: kernel.NewApplicationID("app-1"), Status: application.StatusViewed}
	d.appStore.entity = app
	d.statuses.statuses["app-1"] = "viewed"

	_, err := d.service.Reject(context.Background(), kernel.NewApplicationID("app-1"), kernel.NewUserID("emp-1"), nil)
	assert.True(t, errx.IsCode(err, workflow.CodeInvalidPayload))

	reason := "Hồ sơ chưa phù hợp với yêu cầu vị trí"
	result, err := d.service.Reject(context.Background(), kernel.NewApplicationID("app-1"), kernel.NewUserID("emp-1"), &reason)
	require.NoError(t, err)
	assert.Equal(t, workflow.State("rejected"), result.NewState)
}
