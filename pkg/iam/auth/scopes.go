package auth

// Role identifies the kind of actor behind a token
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleEmployer  Role = "employer"
	RoleCandidate Role = "candidate"
)

// ============================================================================
// DOMAIN-SPECIFIC SCOPES - Recruitment platform
// ============================================================================

const (
	// Employer profile scopes
	ScopeEmployersAll     = "employers:*"
	ScopeEmployersRead    = "employers:read"
	ScopeEmployersWrite   = "employers:write"
	ScopeEmployersApprove = "employers:approve" // Approve/reject employer profiles

	// Job scopes
	ScopeJobsAll     = "jobs:*"
	ScopeJobsRead    = "jobs:read"
	ScopeJobsWrite   = "jobs:write"
	ScopeJobsApprove = "jobs:approve" // Approve/reject job posts
	ScopeJobsRemove  = "jobs:remove"  // Administrative removal

	// CV scopes
	ScopeCVsAll     = "cvs:*"
	ScopeCVsRead    = "cvs:read"
	ScopeCVsWrite   = "cvs:write"
	ScopeCVsApprove = "cvs:approve" // Approve/reject candidate CVs

	// Application scopes
	ScopeApplicationsAll    = "applications:*"
	ScopeApplicationsRead   = "applications:read"
	ScopeApplicationsWrite  = "applications:write"
	ScopeApplicationsReview = "applications:review" // View/shortlist/reject applications
)

// ScopeCategories organizes scopes for admin tooling
var ScopeCategories = map[string][]string{
	"Employers": {
		ScopeEmployersAll,
		ScopeEmployersRead,
		ScopeEmployersWrite,
		ScopeEmployersApprove,
	},
	"Jobs": {
		ScopeJobsAll,
		ScopeJobsRead,
		ScopeJobsWrite,
		ScopeJobsApprove,
		ScopeJobsRemove,
	},
	"CVs": {
		ScopeCVsAll,
		ScopeCVsRead,
		ScopeCVsWrite,
		ScopeCVsApprove,
	},
	"Applications": {
		ScopeApplicationsAll,
		ScopeApplicationsRead,
		ScopeApplicationsWrite,
		ScopeApplicationsReview,
	},
}
