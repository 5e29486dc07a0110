package auth

import "github.com/reqguard/go-reqguard/pkg/models"

// Permission tags checked by downstream handlers before mutations.
const (
	PermAll          = "all"
	PermSiteCreate   = "site:create"
	PermSiteUpdate   = "site:update"
	PermSiteDelete   = "site:delete"
	PermEventWrite   = "event:write"
	PermReportRead   = "report:read"
	PermSessionIssue = "session:issue"
)

// rolePermissions is the static role → permission-set table. Resolved at
// startup, never mutated.
var rolePermissions = map[string]map[string]bool{
	models.RoleAdmin: {
		PermAll:          true,
		PermSiteCreate:   true,
		PermSiteUpdate:   true,
		PermSiteDelete:   true,
		PermEventWrite:   true,
		PermReportRead:   true,
		PermSessionIssue: true,
	},
	models.RoleUser: {
		PermSiteCreate:   true,
		PermSiteUpdate:   true,
		PermEventWrite:   true,
		PermReportRead:   true,
		PermSessionIssue: true,
	},
	models.RoleViewOnly: {
		PermReportRead: true,
	},
}

// HasPermission reports whether the role holds at least one of the
// requested permissions. An unknown role holds nothing.
func HasPermission(role string, permissions ...string) bool {
	granted, ok := rolePermissions[role]
	if !ok {
		return false
	}
	for _, p := range permissions {
		if granted[p] {
			return true
		}
	}
	return false
}
