package job

import (
	"testing"
	"time"

	"github.com/jobgate-vn/jobgate/recruitment/ownership"
	"github.com/stretchr/testify/assert"
)

func TestAcceptsApplications(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(24 * time.Hour)

	tests := []struct {
		name string
		post Post
		want bool
	}{
		{"active without deadline", Post{Status: PostStatusActive}, true},
		{"active before deadline", Post{Status: PostStatusActive, ExpiresAt: &future}, true},
		{"active past deadline", Post{Status: PostStatusActive, ExpiresAt: &past}, false},
		{"pending", Post{Status: PostStatusPendingApproval}, false},
		{"hidden", Post{Status: PostStatusHidden}, false},
		{"removed", Post{Status: PostStatusRemovedByAdmin}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.post.AcceptsApplications())
		})
	}
}

func TestCanBeEdited(t *testing.T) {
	assert.True(t, (&Post{Status: PostStatusActive}).CanBeEdited())
	assert.True(t, (&Post{Status: PostStatusHidden}).CanBeEdited())
	assert.False(t, (&Post{Status: PostStatusDeleted}).CanBeEdited())
	assert.False(t, (&Post{Status: PostStatusRemovedByAdmin}).CanBeEdited())
}

func TestOwnershipDescriptor(t *testing.T) {
	desc := Post{}.OwnershipDescriptor()

	assert.Equal(t, "job_posts", desc.Table)
	assert.Equal(t, ownership.Indirect, desc.Kind)
	assert.Equal(t, "user_id", desc.TerminalColumn)
	assert.Equal(t, "deleted_at", desc.SoftDeleteColumn)

	// one hop through the owning employer profile
	assert.Equal(t, []ownership.RelationHop{
		{Table: "employer_profiles", FromColumn: "employer_id", ToColumn: "id"},
	}, desc.Path)
}
