package service

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	domainauth "github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/domain/auth"
)

// PermissionResolverOptions groups dependencies for PermissionResolver.
type PermissionResolverOptions struct {
	Logger *slog.Logger // Optional: receives malformed-permission warnings
}

// PermissionResolver derives module capabilities from a session role and
// its stored permission list. It is pure apart from warning logs and never fails:
// anything it cannot interpret resolves to no capabilities.
type PermissionResolver struct {
	logger *slog.Logger
}

// NewPermissionResolver constructs a PermissionResolver.
func NewPermissionResolver(opts PermissionResolverOptions) *PermissionResolver {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &PermissionResolver{logger: logger.With("component", "permission_resolver")}
}

// Resolve returns the capability set of role for module.
// The first entry wins when perms lists a module more than once.
func (r *PermissionResolver) Resolve(
	role domainauth.Role,
	perms []domainauth.ModulePermission,
	module string,
) domainauth.CapabilitySet {
	if role.Privileged() {
		return domainauth.AllCapabilities()
	}
	if role != domainauth.RoleUser {
		r.logger.Warn("unknown role, denying all actions", "role", string(role), "module", module)
		return domainauth.NoCapabilities()
	}

	module = strings.TrimSpace(module)
	for _, p := range perms {
		if strings.TrimSpace(p.ModuleName) == module {
			return p.Capabilities()
		}
	}
	return domainauth.NoCapabilities()
}

// ResolveSerialized is Resolve over the stored, serialized permission list.
// Malformed input denies everything for non-privileged roles and logs a warning.
func (r *PermissionResolver) ResolveSerialized(role domainauth.Role, raw, module string) domainauth.CapabilitySet {
	if role.Privileged() {
		return domainauth.AllCapabilities()
	}

	perms, err := ParsePermissions(raw)
	if err != nil {
		r.logger.Warn("stored permissions are unreadable, denying all actions",
			"role", string(role),
			"module", module,
			"error", err)
		return domainauth.NoCapabilities()
	}
	return r.Resolve(role, perms, module)
}

// ForSession resolves module capabilities for a session.
func (r *PermissionResolver) ForSession(sess domainauth.Session, module string) domainauth.CapabilitySet {
	return r.ResolveSerialized(sess.Role, sess.UserPermissions, module)
}

// ParsePermissions decodes the serialized userPermissions value.
// Empty input and JSON null decode to an empty list.
func ParsePermissions(raw string) ([]domainauth.ModulePermission, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return nil, nil
	}
	var perms []domainauth.ModulePermission
	if err := json.Unmarshal([]byte(raw), &perms); err != nil {
		return nil, fmt.Errorf("decode user permissions: %w", err)
	}
	return perms, nil
}
