package workflowsrv

import (
	"context"

	"github.com/jobgate-vn/jobgate/pkg/logx"
	"github.com/jobgate-vn/jobgate/recruitment/ownership"
	"github.com/jobgate-vn/jobgate/recruitment/workflow"
)

// Coordinator composes authorization with transitions for the approval
// use cases. Admin actions require the admin role and skip ownership;
// owner actions must pass ownership verification first, failing with
// the uniform NotFound so resources outside the caller's ownership stay
// invisible.
type Coordinator struct {
	machine  *StateMachine
	notifier workflow.Notifier
	guards   map[workflow.ResourceKind]ownership.Guard
}

// NewCoordinator creates a coordinator. guards maps each kind to the
// ownership check used for owner-initiated transitions.
func NewCoordinator(
	machine *StateMachine,
	notifier workflow.Notifier,
	guards map[workflow.ResourceKind]ownership.Guard,
) *Coordinator {
	return &Coordinator{
		machine:  machine,
		notifier: notifier,
		guards:   guards,
	}
}

// AdminTransition applies a transition on behalf of an administrator.
// Admins may act on any entity of the kind; no ownership check applies.
func (c *Coordinator) AdminTransition(
	ctx context.Context,
	kind workflow.ResourceKind,
	entityID string,
	action workflow.Action,
	actor workflow.Actor,
	payload workflow.TransitionPayload,
) (*workflow.TransitionResult, error) {
	if !actor.Admin {
		return nil, workflow.ErrAdminRequired().WithDetail("action", action)
	}

	result, err := c.machine.Apply(ctx, kind, entityID, action, actor.ID, payload)
	if err != nil {
		return nil, err
	}

	c.dispatch(ctx, result.Event)
	return result, nil
}

// OwnerTransition applies a transition on behalf of the resource owner.
// Ownership is verified before the state machine runs; a failed check
// returns NotFound, never a forbidden signal.
func (c *Coordinator) OwnerTransition(
	ctx context.Context,
	kind workflow.ResourceKind,
	entityID string,
	action workflow.Action,
	actor workflow.Actor,
	payload workflow.TransitionPayload,
) (*workflow.TransitionResult, error) {
	guard, ok := c.guards[kind]
	if !ok {
		return nil, workflow.ErrUnknownKind().WithDetail("kind", kind)
	}

	if err := guard.RequireOwner(ctx, entityID, actor.ID.String()); err != nil {
		return nil, err
	}

	result, err := c.machine.Apply(ctx, kind, entityID, action, actor.ID, payload)
	if err != nil {
		return nil, err
	}

	c.dispatch(ctx, result.Event)
	return result, nil
}

// dispatch sends the transition event synchronously but best-effort:
// a notification failure is logged and swallowed, never propagated into
// an already-committed transition.
func (c *Coordinator) dispatch(ctx context.Context, event workflow.TransitionEvent) {
	if c.notifier == nil {
		return
	}
	if err := c.notifier.Notify(ctx, event); err != nil {
		logx.Errorf("Failed to dispatch transition notification: kind=%s entity=%s %s->%s: %v",
			event.Kind, event.EntityID, event.FromState, event.ToState, err)
	}
}
