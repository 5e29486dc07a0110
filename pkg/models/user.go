package models

// Role constants define the standard roles known to the permission table.
const (
	RoleAdmin    = "admin"
	RoleUser     = "user"
	RoleViewOnly = "view-only"
)

// ValidRoles contains all role names accepted by the user directory.
var ValidRoles = []string{RoleAdmin, RoleUser, RoleViewOnly}

// IsValidRole checks if a role name is valid.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User is the subset of a directory record the pipeline reads.
//
// IsAdmin is derived from Role on every resolution and never persisted;
// a stale flag must not outlive a role change.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	IsAdmin  bool   `json:"isAdmin"`
}
