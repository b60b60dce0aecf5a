package workflow

import (
	"time"

	"github.com/jobgate-vn/jobgate/pkg/kernel"
)

// ResourceKind names a resource governed by the approval workflow
type ResourceKind string

const (
	KindEmployerProfile  ResourceKind = "employer_profile"
	KindJobPost          ResourceKind = "job_post"
	KindCandidateProfile ResourceKind = "candidate_profile"
	KindApplication      ResourceKind = "application"
)

// State is a status value of some resource kind. Values are plain
// strings for wire and storage stability; each kind's legal values are
// fixed by its transition table below.
type State string

// Action is a requested workflow operation
type Action string

const (
	ActionApprove   Action = "approve"
	ActionReject    Action = "reject"
	ActionBan       Action = "ban"
	ActionRemove    Action = "remove"
	ActionResubmit  Action = "resubmit"
	ActionExpire    Action = "expire"
	ActionHide      Action = "hide"
	ActionDelete    Action = "delete"
	ActionView      Action = "view"
	ActionShortlist Action = "shortlist"
)

// Reason length bounds for rejecting transitions
const (
	MinReasonLength = 10
	MaxReasonLength = 1000
)

// RequiresReason reports whether an action must carry a reason
func (a Action) RequiresReason() bool {
	switch a {
	case ActionReject, ActionBan, ActionRemove:
		return true
	}
	return false
}

// Key indexes a transition table entry
type Key struct {
	From   State
	Action Action
}

// Machine is one resource kind's transition table: static configuration
// data, not scattered conditionals, so it can be audited and tested on
// its own.
type Machine struct {
	Kind        ResourceKind
	Initial     State
	Transitions map[Key]State
}

// Next returns the target state for (from, action), if the edge exists
func (m Machine) Next(from State, action Action) (State, bool) {
	to, ok := m.Transitions[Key{From: from, Action: action}]
	return to, ok
}

// IsTerminal reports whether a state has no outgoing edges
func (m Machine) IsTerminal(s State) bool {
	for key := range m.Transitions {
		if key.From == s {
			return false
		}
	}
	return true
}

// States returns every state reachable in this machine
func (m Machine) States() []State {
	seen := map[State]bool{m.Initial: true}
	for key, to := range m.Transitions {
		seen[key.From] = true
		seen[to] = true
	}
	states := make([]State, 0, len(seen))
	for s := range seen {
		states = append(states, s)
	}
	return states
}

var machines = map[ResourceKind]Machine{
	KindEmployerProfile: {
		Kind:    KindEmployerProfile,
		Initial: "draft",
		Transitions: map[Key]State{
			{"draft", ActionResubmit}: "pending_approval",
			{"pending_approval", ActionApprove}: "active",
			{"pending_approval", ActionReject}: "rejected",
			{"active", ActionResubmit}: "pending_update_approval",
			{"pending_update_approval", ActionApprove}: "active",
			{"pending_update_approval", ActionReject}: "rejected",
		},
	},
	KindJobPost: {
		Kind:    KindJobPost,
		Initial: "pending_approval",
		Transitions: map[Key]State{
			{"pending_approval", ActionApprove}: "active",
			{"pending_approval", ActionReject}: "rejected",
			{"active", ActionExpire}: "expired",
			{"active", ActionHide}: "hidden",
			{"active", ActionDelete}: "deleted",
			{"active", ActionRemove}: "removed_by_admin",
			{"hidden", ActionResubmit}: "active",
			{"hidden", ActionDelete}: "deleted",
			{"expired", ActionResubmit}: "pending_approval",
		},
	},
	KindCandidateProfile: {
		Kind:    KindCandidateProfile,
		Initial: "pending_approval",
		Transitions: map[Key]State{
			{"pending_approval", ActionApprove}: "approved",
			{"pending_approval", ActionReject}: "rejected",
			{"approved", ActionResubmit}: "pending_edit_approval",
			{"pending_edit_approval", ActionApprove}: "approved",
			{"pending_edit_approval", ActionReject}: "rejected",
		},
	},
	KindApplication: {
		Kind:    KindApplication,
		Initial: "new",
		Transitions: map[Key]State{
			{"new", ActionView}: "viewed",
			{"viewed", ActionShortlist}: "shortlisted",
			{"viewed", ActionReject}: "rejected",
		},
	},
}

// MachineFor returns the transition table for a kind
func MachineFor(kind ResourceKind) (Machine, bool) {
	m, ok := machines[kind]
	return m, ok
}

// TransitionPayload carries the inputs a transition may require
type TransitionPayload struct {
	Reason *string `json:"reason,omitempty"`
	Note   *string `json:"note,omitempty"`
}

// TransitionEvent records a completed status transition, for
// notification dispatch and auditing
type TransitionEvent struct {
	Kind       ResourceKind  `json:"kind"`
	EntityID   string        `json:"entity_id"`
	FromState  State         `json:"from_state"`
	ToState    State         `json:"to_state"`
	Reason     *string       `json:"reason,omitempty"`
	ActorID    kernel.UserID `json:"actor_id"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// TransitionResult is the successful outcome of Apply
type TransitionResult struct {
	NewState   State           `json:"new_state"`
	OccurredAt time.Time       `json:"occurred_at"`
	Event      TransitionEvent `json:"-"`
}

// Actor is the requesting principal. The admin role check is a boolean
// input to the workflow; resolving roles is the caller's concern.
type Actor struct {
	ID    kernel.UserID
	Admin bool
}
