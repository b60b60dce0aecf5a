package workflowsrv

import (
	"context"
	"strings"
	"time"

	"github.com/jobgate-vn/jobgate/pkg/kernel"
	"github.com/jobgate-vn/jobgate/recruitment/workflow"
)

// StateMachine validates and applies status transitions against the
// per-kind transition tables. Authorization is the coordinator's
// responsibility; this component only enforces transition legality,
// payload validity and write atomicity.
type StateMachine struct {
	store workflow.StatusStore
}

// NewStateMachine creates a state machine over a status store
func NewStateMachine(store workflow.StatusStore) *StateMachine {
	return &StateMachine{store: store}
}

// Apply performs one transition: load the current state, look up the
// edge, validate the payload, then write the new state conditioned on
// the state read here. A racing transition surfaces as StaleState.
func (m *StateMachine) Apply(
	ctx context.Context,
	kind workflow.ResourceKind,
	entityID string,
	action workflow.Action,
	actorID kernel.UserID,
	payload workflow.TransitionPayload,
) (*workflow.TransitionResult, error) {
	machine, ok := workflow.MachineFor(kind)
	if !ok {
		return nil, workflow.ErrUnknownKind().WithDetail("kind", kind)
	}

	current, err := m.store.GetStatus(ctx, kind, entityID)
	if err != nil {
		return nil, err
	}

	next, ok := machine.Next(current, action)
	if !ok {
		return nil, workflow.ErrIllegalTransition().
			WithDetail("kind", kind).
			WithDetail("current_state", current).
			WithDetail("action", action)
	}

	reason, err := validateReason(action, payload)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := m.store.UpdateStatus(ctx, kind, entityID, current, next, reason, now); err != nil {
		return nil, err
	}

	return &workflow.TransitionResult{
		NewState:   next,
		OccurredAt: now,
		Event: workflow.TransitionEvent{
			Kind:       kind,
			EntityID:   entityID,
			FromState:  current,
			ToState:    next,
			Reason:     reason,
			ActorID:    actorID,
			OccurredAt: now,
		},
	}, nil
}

// validateReason enforces the mandatory-reason rule for rejecting
// transitions, including its length bounds
func validateReason(action workflow.Action, payload workflow.TransitionPayload) (*string, error) {
	if !action.RequiresReason() {
		return payload.Reason, nil
	}

	if payload.Reason == nil {
		return nil, workflow.ErrInvalidPayload().
			WithDetail("action", action).
			WithDetail("reason", "required but missing")
	}

	trimmed := strings.TrimSpace(*payload.Reason)
	length := len([]rune(trimmed))
	if length < workflow.MinReasonLength || length > workflow.MaxReasonLength {
		return nil, workflow.ErrInvalidPayload().
			WithDetail("action", action).
			WithDetail("reason_length", length).
			WithDetail("min_length", workflow.MinReasonLength).
			WithDetail("max_length", workflow.MaxReasonLength)
	}

	return payload.Reason, nil
}
