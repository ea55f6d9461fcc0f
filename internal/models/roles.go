package models

// Role represents the platform role of a user. It is the single source
// of truth for authorization: admin capability is derived from it rather
// than stored alongside it.
type Role string

const (
	RoleOwner  Role = "Owner"
	RoleAdmin  Role = "Admin"
	RoleMember Role = "Member"
	RoleViewer Role = "Viewer"
)

// ValidRole reports whether r is one of the enumerated roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember, RoleViewer:
		return true
	}
	return false
}

// AdminCapable reports whether the role carries administrative rights.
func (r Role) AdminCapable() bool {
	return r == RoleOwner || r == RoleAdmin
}

// Capabilities is the set of permissions derived from a role.
type Capabilities struct {
	CanEditPackages  bool `json:"canEditPackages"`
	CanInviteMembers bool `json:"canInviteMembers"`
	CanViewStats     bool `json:"canViewStats"`
	CanDeleteItems   bool `json:"canDeleteItems"`
}

// Resolve maps a role to its capability set. The mapping is fixed:
//
//	Owner/Admin: edit, invite, view, delete
//	Member:      edit, view
//	Viewer:      view
//
// Callers must resolve from the stored role of the authenticated user on
// every mutating request, never from a client-asserted role.
func Resolve(r Role) Capabilities {
	switch r {
	case RoleOwner, RoleAdmin:
		return Capabilities{
			CanEditPackages:  true,
			CanInviteMembers: true,
			CanViewStats:     true,
			CanDeleteItems:   true,
		}
	case RoleMember:
		return Capabilities{
			CanEditPackages: true,
			CanViewStats:    true,
		}
	default:
		return Capabilities{
			CanViewStats: true,
		}
	}
}
