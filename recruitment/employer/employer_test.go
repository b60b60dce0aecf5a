package employer

import (
	"testing"

	"github.com/jobgate-vn/jobgate/recruitment/ownership"
	"github.com/stretchr/testify/assert"
)

func TestProfileStatusChecks(t *testing.T) {
	assert.True(t, (&Profile{Status: ProfileStatusActive}).IsActive())
	assert.True(t, (&Profile{Status: ProfileStatusActive}).CanPostJobs())

	assert.True(t, (&Profile{Status: ProfileStatusPendingApproval}).IsUnderReview())
	assert.True(t, (&Profile{Status: ProfileStatusPendingUpdateApproval}).IsUnderReview())
	assert.False(t, (&Profile{Status: ProfileStatusDraft}).IsUnderReview())

	// profiles under review are frozen until the admin decides
	assert.False(t, (&Profile{Status: ProfileStatusPendingApproval}).CanBeEdited())
	assert.True(t, (&Profile{Status: ProfileStatusDraft}).CanBeEdited())
	assert.True(t, (&Profile{Status: ProfileStatusRejected}).CanBeEdited())
}

func TestUpdateDetailsKeepsUnsetFields(t *testing.T) {
	p := &Profile{CompanyName: "FPT Software", Description: "Old", Website: "https://fpt.example"}

	p.UpdateDetails("", "New description", "", "Hà Nội")

	assert.Equal(t, "FPT Software", p.CompanyName)
	assert.Equal(t, "New description", p.Description)
	assert.Equal(t, "https://fpt.example", p.Website)
	assert.Equal(t, "Hà Nội", p.Address)
	assert.False(t, p.UpdatedAt.IsZero())
}

func TestOwnershipDescriptor(t *testing.T) {
	desc := Profile{}.OwnershipDescriptor()

	assert.Equal(t, "employer_profiles", desc.Table)
	assert.Equal(t, ownership.Direct, desc.Kind)
	assert.Equal(t, "user_id", desc.OwnerColumn)
	assert.Equal(t, "deleted_at", desc.SoftDeleteColumn)
}
