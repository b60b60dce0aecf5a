package workflowsrv

import (
	"context"
	"errors"
	"testing"

	"github.com/jobgate-vn/jobgate/pkg/errx"
	"github.com/jobgate-vn/jobgate/pkg/kernel"
	"github.com/jobgate-vn/jobgate/recruitment/ownership"
	"github.com/jobgate-vn/jobgate/recruitment/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGuard admits owners listed per entity id. Any other pair fails
// with the uniform NotFound.
type fakeGuard struct {
	owners map[string]string
	calls  int
}

func (g *fakeGuard) RequireOwner(ctx context.Context, entityID, ownerID string) error {
	g.calls++
	if g.owners[entityID] == ownerID {
		return nil
	}
	return ownership.ErrNotFound()
}

type recordingNotifier struct {
	events []workflow.TransitionEvent
	err    error
}

func (n *recordingNotifier) Notify(ctx context.Context, event workflow.TransitionEvent) error {
	n.events = append(n.events, event)
	return n.err
}

func newTestCoordinator(store *fakeStatusStore, notifier workflow.Notifier, guard ownership.Guard) *Coordinator {
	return NewCoordinator(
		NewStateMachine(store),
		notifier,
		map[workflow.ResourceKind]ownership.Guard{
			workflow.KindJobPost: guard,
		},
	)
}

func TestAdminTransitionRequiresAdmin(t *testing.T) {
	store := newFakeStatusStore()
	store.statuses["jp-1"] = "pending_approval"
	notifier := &recordingNotifier{}
	coord := newTestCoordinator(store, notifier, &fakeGuard{})

	_, err := coord.AdminTransition(
		context.Background(),
		workflow.KindJobPost,
		"jp-1",
		workflow.ActionApprove,
		workflow.Actor{ID: kernel.NewUserID("u-1"), Admin: false},
		workflow.TransitionPayload{},
	)
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, workflow.CodeAdminRequired))

	// state untouched, nothing dispatched
	assert.Equal(t, workflow.State("pending_approval"), store.statuses["jp-1"])
	assert.Empty(t, notifier.events)
}

func TestAdminTransitionDispatchesEvent(t *testing.T) {
	store := newFakeStatusStore()
	store.statuses["jp-1"] = "pending_approval"
	notifier := &recordingNotifier{}
	coord := newTestCoordinator(store, notifier, &fakeGuard{})

	result, err := coord.AdminTransition(
		context.Background(),
		workflow.KindJobPost,
		"jp-1",
		workflow.ActionApprove,
		workflow.Actor{ID: kernel.NewUserID("admin-1"), Admin: true},
		workflow.TransitionPayload{},
	)
	require.NoError(t, err)
	assert.Equal(t, workflow.State("active"), result.NewState)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, workflow.KindJobPost, notifier.events[0].Kind)
	assert.Equal(t, workflow.State("pending_approval"), notifier.events[0].FromState)
	assert.Equal(t, workflow.State("active"), notifier.events[0].ToState)
}

func TestOwnerTransitionNonOwnerIsNotFound(t *testing.T) {
	store := newFakeStatusStore()
	store.statuses["jp-1"] = "active"
	notifier := &recordingNotifier{}
	guard := &fakeGuard{owners: map[string]string{"jp-1": "owner-1"}}
	coord := newTestCoordinator(store, notifier, guard)

	_, err := coord.OwnerTransition(
		context.Background(),
		workflow.KindJobPost,
		"jp-1",
		workflow.ActionHide,
		workflow.Actor{ID: kernel.NewUserID("intruder")},
		workflow.TransitionPayload{},
	)
	require.Error(t, err)

	// not forbidden: the resource simply does not exist for this caller
	assert.True(t, errx.IsType(err, errx.TypeNotFound))
	assert.Equal(t, workflow.State("active"), store.statuses["jp-1"])
	assert.Empty(t, notifier.events)
}

func TestOwnerTransitionSucceedsForOwner(t *testing.T) {
	store := newFakeStatusStore()
	store.statuses["jp-1"] = "active"
	notifier := &recordingNotifier{}
	guard := &fakeGuard{owners: map[string]string{"jp-1": "owner-1"}}
	coord := newTestCoordinator(store, notifier, guard)

	result, err := coord.OwnerTransition(
		context.Background(),
		workflow.KindJobPost,
		"jp-1",
		workflow.ActionHide,
		workflow.Actor{ID: kernel.NewUserID("owner-1")},
		workflow.TransitionPayload{},
	)
	require.NoError(t, err)
	assert.Equal(t, workflow.State("hidden"), result.NewState)
	assert.Equal(t, 1, guard.calls)
	require.Len(t, notifier.events, 1)
}

func TestOwnerTransitionUnknownKind(t *testing.T) {
	store := newFakeStatusStore()
	coord := newTestCoordinator(store, &recordingNotifier{}, &fakeGuard{})

	_, err := coord.OwnerTransition(
		context.Background(),
		workflow.KindEmployerProfile, // no guard registered in this test
		"ep-1",
		workflow.ActionResubmit,
		workflow.Actor{ID: kernel.NewUserID("u-1")},
		workflow.TransitionPayload{},
	)
	assert.True(t, errx.IsCode(err, workflow.CodeUnknownKind))
}

func TestNotifierFailureIsSwallowed(t *testing.T) {
	store := newFakeStatusStore()
	store.statuses["jp-1"] = "pending_approval"
	notifier := &recordingNotifier{err: errors.New("queue unreachable")}
	coord := newTestCoordinator(store, notifier, &fakeGuard{})

	result, err := coord.AdminTransition(
		context.Background(),
		workflow.KindJobPost,
		"jp-1",
		workflow.ActionApprove,
		workflow.Actor{ID: kernel.NewUserID("admin-1"), Admin: true},
		workflow.TransitionPayload{},
	)

	// the transition committed; the delivery failure stays internal
	require.NoError(t, err)
	assert.Equal(t, workflow.State("active"), result.NewState)
	assert.Equal(t, workflow.State("active"), store.statuses["jp-1"])
}

func TestNilNotifier(t *testing.T) {
	store := newFakeStatusStore()
	store.statuses["jp-1"] = "pending_approval"
	coord := NewCoordinator(NewStateMachine(store), nil, nil)

	_, err := coord.AdminTransition(
		context.Background(),
		workflow.KindJobPost,
		"jp-1",
		workflow.ActionApprove,
		workflow.Actor{ID: kernel.NewUserID("admin-1"), Admin: true},
		workflow.TransitionPayload{},
	)
	assert.NoError(t, err)
}
