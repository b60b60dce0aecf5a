package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachineFor(t *testing.T) {
	for _, kind := range []ResourceKind{KindEmployerProfile, KindJobPost, KindCandidateProfile, KindApplication} {
		m, ok := MachineFor(kind)
		require.True(t, ok, "missing machine for %s", kind)
		assert.Equal(t, kind, m.Kind)
		assert.NotEmpty(t, m.Initial)
		assert.NotEmpty(t, m.Transitions)
	}

	_, ok := MachineFor("payment")
	assert.False(t, ok)
}

func TestEmployerProfileMachine(t *testing.T) {
	m, _ := MachineFor(KindEmployerProfile)

	assert.Equal(t, State("draft"), m.Initial)

	tests := []struct {
		from   State
		action Action
		want   State
	}{
		{"draft", ActionResubmit, "pending_approval"},
		{"pending_approval", ActionApprove, "active"},
		{"pending_approval", ActionReject, "rejected"},
		{"active", ActionResubmit, "pending_update_approval"},
		{"pending_update_approval", ActionApprove, "active"},
		{"pending_update_approval", ActionReject, "rejected"},
	}
	for _, tt := range tests {
		got, ok := m.Next(tt.from, tt.action)
		require.True(t, ok, "%s + %s", tt.from, tt.action)
		assert.Equal(t, tt.want, got)
	}

	// rejected is a dead end
	assert.True(t, m.IsTerminal("rejected"))
	assert.False(t, m.IsTerminal("active"))

	_, ok := m.Next("draft", ActionApprove)
	assert.False(t, ok, "draft cannot be approved before submission")
}

func TestJobPostMachine(t *testing.T) {
	m, _ := MachineFor(KindJobPost)

	assert.Equal(t, State("pending_approval"), m.Initial)

	tests := []struct {
		from   State
		action Action
		want   State
	}{
		{"pending_approval", ActionApprove, "active"},
		{"pending_approval", ActionReject, "rejected"},
		{"active", ActionExpire, "expired"},
		{"active", ActionHide, "hidden"},
		{"active", ActionDelete, "deleted"},
		{"active", ActionRemove, "removed_by_admin"},
		{"hidden", ActionResubmit, "active"},
		{"hidden", ActionDelete, "deleted"},
		{"expired", ActionResubmit, "pending_approval"},
	}
	for _, tt := range tests {
		got, ok := m.Next(tt.from, tt.action)
		require.True(t, ok, "%s + %s", tt.from, tt.action)
		assert.Equal(t, tt.want, got)
	}

	for _, terminal := range []State{"rejected", "deleted", "removed_by_admin"} {
		assert.True(t, m.IsTerminal(terminal), "%s should be terminal", terminal)
	}

	_, ok := m.Next("removed_by_admin", ActionResubmit)
	assert.False(t, ok, "removed posts stay removed")
}

func TestCandidateProfileMachine(t *testing.T) {
	m, _ := MachineFor(KindCandidateProfile)

	assert.Equal(t, State("pending_approval"), m.Initial)

	tests := []struct {
		from   State
		action Action
		want   State
	}{
		{"pending_approval", ActionApprove, "approved"},
		{"pending_approval", ActionReject, "rejected"},
		{"approved", ActionResubmit, "pending_edit_approval"},
		{"pending_edit_approval", ActionApprove, "approved"},
		{"pending_edit_approval", ActionReject, "rejected"},
	}
	for _, tt := range tests {
		got, ok := m.Next(tt.from, tt.action)
		require.True(t, ok, "%s + %s", tt.from, tt.action)
		assert.Equal(t, tt.want, got)
	}

	assert.True(t, m.IsTerminal("rejected"))
}

func TestApplicationMachine(t *testing.T) {
	m, _ := MachineFor(KindApplication)

	assert.Equal(t, State("new"), m.Initial)

	tests := []struct {
		from   State
		action Action
		want   State
	}{
		{"new", ActionView, "viewed"},
		{"viewed", ActionShortlist, "shortlisted"},
		{"viewed", ActionReject, "rejected"},
	}
	for _, tt := range tests {
		got, ok := m.Next(tt.from, tt.action)
		require.True(t, ok, "%s + %s", tt.from, tt.action)
		assert.Equal(t, tt.want, got)
	}

	// decisions are final
	assert.True(t, m.IsTerminal("shortlisted"))
	assert.True(t, m.IsTerminal("rejected"))

	_, ok := m.Next("new", ActionShortlist)
	assert.False(t, ok, "an application must be viewed before shortlisting")
}

func TestRequiresReason(t *testing.T) {
	assert.True(t, ActionReject.RequiresReason())
	assert.True(t, ActionBan.RequiresReason())
	assert.True(t, ActionRemove.RequiresReason())

	assert.False(t, ActionApprove.RequiresReason())
	assert.False(t, ActionResubmit.RequiresReason())
	assert.False(t, ActionExpire.RequiresReason())
	assert.False(t, ActionView.RequiresReason())
	assert.False(t, ActionShortlist.RequiresReason())
}

func TestStates(t *testing.T) {
	m, _ := MachineFor(KindApplication)
	states := m.States()
	assert.ElementsMatch(t, []State{"new", "viewed", "shortlisted", "rejected"}, states)
}
