package auth

// Package auth contains domain-level types for sessions and module permissions.
// It is pure and free of framework/adapter concerns.

import "strings"

// Role represents the tenant-level role written at login.
// Keep string form: it is persisted verbatim in session storage.
type Role string

const (
	RoleSuperAdmin Role = "SUPERADMIN"
	RoleCompany    Role = "COMPANY"
	RoleUser       Role = "USER"
)

// ParseRole normalises a stored role string. Unknown values are returned as-is
// so the permission resolver can fail closed on them.
func ParseRole(s string) Role {
	return Role(strings.ToUpper(strings.TrimSpace(s)))
}

// Privileged reports whether the role bypasses per-module permissions.
func (r Role) Privileged() bool {
	return r == RoleSuperAdmin || r == RoleCompany
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleCompany, RoleUser:
		return true
	default:
		return false
	}
}

// ModulePermission is one entry of the stored userPermissions sequence.
// ModuleName is unique within the sequence.
type ModulePermission struct {
	ModuleName string `json:"module_name" form:"module_name"`
	CanCreate  bool   `json:"can_create"  form:"can_create"`
	CanView    bool   `json:"can_view"    form:"can_view"`
	CanUpdate  bool   `json:"can_update"  form:"can_update"`
	CanDelete  bool   `json:"can_delete"  form:"can_delete"`
}

// Capabilities maps the entry's flags into a CapabilitySet.
func (p ModulePermission) Capabilities() CapabilitySet {
	return CapabilitySet{
		CanView:   p.CanView,
		CanCreate: p.CanCreate,
		CanUpdate: p.CanUpdate,
		CanDelete: p.CanDelete,
	}
}

// CapabilitySet gates the four UI actions of a module. It is derived, never stored.
type CapabilitySet struct {
	CanView   bool `json:"can_view"`
	CanCreate bool `json:"can_create"`
	CanUpdate bool `json:"can_update"`
	CanDelete bool `json:"can_delete"`
}

// AllCapabilities returns a set with every action allowed.
func AllCapabilities() CapabilitySet {
	return CapabilitySet{CanView: true, CanCreate: true, CanUpdate: true, CanDelete: true}
}

// NoCapabilities returns the fail-closed set.
func NoCapabilities() CapabilitySet { return CapabilitySet{} }

// Action names a gated UI action.
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Allows reports whether the set permits the given action.
func (c CapabilitySet) Allows(a Action) bool {
	switch a {
	case ActionView:
		return c.CanView
	case ActionCreate:
		return c.CanCreate
	case ActionUpdate:
		return c.CanUpdate
	case ActionDelete:
		return c.CanDelete
	default:
		return false
	}
}

// Session is the persisted login state shared with the browser shell.
// Field names mirror the storage keys: authToken, CompanyId, role, userPermissions.
// UserPermissions stays in its serialized form; the resolver parses it.
type Session struct {
	ID              string `json:"id"`
	AuthToken       string `json:"authToken"`
	CompanyID       string `json:"CompanyId"`
	Role            Role   `json:"role"`
	UserPermissions string `json:"userPermissions"`
}

// HasToken reports whether an auth token is present.
func (s Session) HasToken() bool { return strings.TrimSpace(s.AuthToken) != "" }

// HasCompany reports whether the session is scoped to a tenant.
func (s Session) HasCompany() bool {
	id := strings.TrimSpace(s.CompanyID)
	return id != "" && id != "null" && id != "undefined"
}

// IsSuperAdmin returns true if the session role is SUPERADMIN.
func (s Session) IsSuperAdmin() bool { return s.Role == RoleSuperAdmin }
