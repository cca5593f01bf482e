// Package users holds system users, their roles, permissions and
// credential hashes.
package users

import (
	"context"

	"mochini/internal/core/apperror"
	"mochini/internal/core/entity"
	"mochini/internal/core/security"
)

// User is one operator of the system. Password and PIN are stored as bcrypt
// hashes, never in clear.
type User struct {
	entity.Base

	Nombre       string                  `json:"nombre"`
	Rol          security.Role           `json:"rol"`
	Permissions  *security.PermissionSet `json:"permisos,omitempty"`
	PasswordHash string                  `json:"password,omitempty"`
	PINHash      string                  `json:"pin,omitempty"`
	Activo       bool                    `json:"activo"`
}

// Validate checks the user's internal invariants.
func (u *User) Validate(ctx context.Context) error {
	if u.Nombre == "" {
		return apperror.NewValidation("user name is required").WithDetail("field", "nombre")
	}
	if u.Rol == "" {
		return apperror.NewValidation("user role is required").WithDetail("field", "rol")
	}
	return nil
}

// Can reports whether the user may perform the action. Explicit permissions
// win; otherwise the role preset applies. Inactive users can do nothing.
func (u *User) Can(module security.Module, action security.Action) bool {
	if !u.Activo {
		return false
	}
	if u.Permissions != nil {
		return u.Permissions.Allows(module, action)
	}
	return security.ForRole(u.Rol).Allows(module, action)
}
