package model

import domainauth "github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/domain/auth"

// UserRole is a tenant-defined role and its module permission matrix.
type UserRole struct {
	ID          ID                            `json:"id"                    form:"-"`
	Name        string                        `json:"role_name"             form:"role_name"   validate:"required,max=128"`
	Description string                        `json:"description,omitempty" form:"description" validate:"omitempty,max=1000"`
	Permissions []domainauth.ModulePermission `json:"permissions"           form:"permissions" validate:"dive"`
}

// EntityID implements Entity.
func (r UserRole) EntityID() ID { return r.ID }
