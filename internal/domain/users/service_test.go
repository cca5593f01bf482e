package users

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mochini/internal/core/apperror"
	"mochini/internal/core/security"
	"mochini/internal/domain"
	"mochini/internal/storage/sqlite"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store, err := sqlite.Open(sqlite.Config{
		Path:        filepath.Join(t.TempDir(), "test.db"),
		Namespace:   "mochinios_",
		Collections: []string{domain.CollectionUsers},
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewService(domain.NewRepository[*User](store, domain.CollectionUsers))
}

func seedUser(t *testing.T, svc *Service, nombre, password, pin string, activo bool) *User {
	t.Helper()
	ctx := context.Background()

	u := &User{Nombre: nombre, Rol: security.RoleVentas, Activo: activo}
	require.NoError(t, svc.SetPassword(ctx, u, password))
	require.NoError(t, svc.SetPIN(ctx, u, pin))
	require.NoError(t, svc.Create(ctx, u))
	return u
}

func TestPasswordsAreStoredHashed(t *testing.T) {
	svc := newTestService(t)
	u := seedUser(t, svc, "Marta", "secreta99", "2468", true)

	assert.NotEqual(t, "secreta99", u.PasswordHash)
	assert.NotEqual(t, "2468", u.PINHash)
	assert.NotEmpty(t, u.PasswordHash)
}

func TestAuthenticate(t *testing.T) {
	svc := newTestService(t)
	seedUser(t, svc, "Marta", "secreta99", "2468", true)
	ctx := context.Background()

	u, err := svc.Authenticate(ctx, "Marta", "secreta99")
	require.NoError(t, err)
	assert.Equal(t, "Marta", u.Nombre)

	_, err = svc.Authenticate(ctx, "Marta", "equivocada")
	require.Error(t, err)
	assert.True(t, apperror.IsUnauthorized(err))

	_, err = svc.Authenticate(ctx, "Nadie", "secreta99")
	require.Error(t, err)
	assert.True(t, apperror.IsUnauthorized(err))
}

func TestAuthenticateRejectsInactive(t *testing.T) {
	svc := newTestService(t)
	seedUser(t, svc, "Baja", "secreta99", "2468", false)

	_, err := svc.Authenticate(context.Background(), "Baja", "secreta99")
	require.Error(t, err)
	assert.True(t, apperror.IsUnauthorized(err))
}

func TestAuthorizePIN(t *testing.T) {
	svc := newTestService(t)
	seedUser(t, svc, "Marta", "secreta99", "2468", true)
	seedUser(t, svc, "Baja", "secreta99", "1357", false)
	ctx := context.Background()

	u, err := svc.AuthorizePIN(ctx, "2468")
	require.NoError(t, err)
	assert.Equal(t, "Marta", u.Nombre)

	_, err = svc.AuthorizePIN(ctx, "1357")
	require.Error(t, err)
	assert.True(t, apperror.IsUnauthorized(err))

	_, err = svc.AuthorizePIN(ctx, "")
	require.Error(t, err)
	assert.True(t, apperror.IsUnauthorized(err))
}

func TestSetCredentialsValidateLength(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	u := &User{Nombre: "Corta", Rol: security.RoleVentas, Activo: true}

	require.Error(t, svc.SetPassword(ctx, u, "abc"))
	require.Error(t, svc.SetPIN(ctx, u, "12"))
}

func TestUserCanFallsBackToRolePreset(t *testing.T) {
	u := &User{Nombre: "Vendedor", Rol: security.RoleVentas, Activo: true}
	assert.True(t, u.Can(security.ModulePOS, security.ActionSell))
	assert.False(t, u.Can(security.ModuleFinanzas, security.ActionView))

	// Explicit permissions override the role preset entirely.
	ps, err := security.NewPermissionSet(map[security.Module]map[security.Action]bool{
		security.ModuleFinanzas: {security.ActionView: true},
	})
	require.NoError(t, err)
	u.Permissions = ps
	assert.True(t, u.Can(security.ModuleFinanzas, security.ActionView))
	assert.False(t, u.Can(security.ModulePOS, security.ActionSell))

	u.Activo = false
	assert.False(t, u.Can(security.ModuleFinanzas, security.ActionView))
}

func TestCreateValidates(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	err := svc.Create(ctx, &User{Rol: security.RoleVentas})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	err = svc.Create(ctx, &User{Nombre: "SinRol"})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}
