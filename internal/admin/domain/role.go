package domain

import (
	"fmt"
	"slices"
)

// Role is a business role tag checked by the role gate. The provider may
// carry many more realm roles (offline_access, uma_authorization, ...);
// only these two are ever surfaced, and "standard" is implied by absence.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleStandard Role = "standard"
)

// elevatedRoles are the realm roles shown in the console. Everything else
// is filtered out when composing a user's displayed roles.
var elevatedRoles = []string{string(RoleAdmin), string(RoleManager)}

// ParseRole validates a role name from a request body. The empty string
// means "standard".
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleStandard:
		return Role(s), nil
	case "":
		return RoleStandard, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Elevated reports whether the role requires a realm-role mapping on the
// provider side. Standard users have no mapping at all.
func (r Role) Elevated() bool {
	return r == RoleAdmin || r == RoleManager
}

func (r Role) String() string { return string(r) }

// FilterElevated keeps only the business roles out of a realm-role name
// list, preserving provider order. Never returns nil.
func FilterElevated(names []string) []string {
	out := []string{}
	for _, n := range names {
		if slices.Contains(elevatedRoles, n) {
			out = append(out, n)
		}
	}
	return out
}
