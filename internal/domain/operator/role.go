package operator

import "errors"

var ErrInvalidRole = errors.New("invalid role")

// Role is the permission level of an API caller. Callers are services, not buyers:
// the chat gateway submits purchases, admins manage stock and provider sessions.
type Role string

const (
	RoleViewer  Role = "viewer"
	RoleGateway Role = "gateway"
	RoleAdmin   Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleViewer, RoleGateway, RoleAdmin:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
