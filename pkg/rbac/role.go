package rbac

import "strings"

// Role is the authorization class of a portal user.
type Role string

const (
	RoleClient  Role = "client"
	RoleAdvisor Role = "advisor"
	RoleAdmin   Role = "admin"
)

// Roles lists every known role.
var Roles = []Role{RoleClient, RoleAdvisor, RoleAdmin}

// ParseRole returns the Role for s, case-insensitively.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleAdvisor, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// DashboardPath is the landing page for the role.
// Unknown roles land on the client dashboard.
func (r Role) DashboardPath() string {
	switch r {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleAdvisor:
		return "/advisor/dashboard"
	default:
		return "/client/dashboard"
	}
}
