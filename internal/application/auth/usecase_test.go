package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/commodities-cms/internal/application/auth"
	"github.com/jhoicas/commodities-cms/internal/application/dto"
	"github.com/jhoicas/commodities-cms/internal/application/session"
	"github.com/jhoicas/commodities-cms/internal/domain"
	"github.com/jhoicas/commodities-cms/internal/domain/entity"
	"github.com/jhoicas/commodities-cms/internal/infrastructure/directory"
	"github.com/jhoicas/commodities-cms/internal/infrastructure/memory"
	"github.com/jhoicas/commodities-cms/pkg/jwt"
	"github.com/jhoicas/commodities-cms/pkg/logger"
)

const secret = "test-secret-key-for-unit-tests"

func newAuth(t *testing.T) (*auth.AuthUseCase, *memory.SessionStore) {
	t.Helper()
	dir, err := directory.NewStaticDirectory(bcrypt.MinCost, directory.DemoUsers...)
	require.NoError(t, err)
	store := memory.NewSessionStore(0)
	uc := auth.NewAuthUseCase(dir, store, auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "test"}, 0, logger.Nop())
	return uc, store
}

func TestLogin_EmiteTokenYGuardaSesion(t *testing.T) {
	uc, store := newAuth(t)
	ctx := context.Background()

	resp, err := uc.Login(ctx, dto.LoginRequest{Email: " manager@demo.com ", Password: "manager123"})
	require.NoError(t, err)
	assert.Equal(t, dto.IdentityResponse{ID: 1, Email: "manager@demo.com", Role: "manager", Name: "John Store Manager"}, resp.User)

	claims, err := jwt.Parse(secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "manager", claims.Role)
	require.NotEmpty(t, claims.SessionID)

	_, found, err := store.Get(ctx, session.KeyFor(claims.SessionID))
	require.NoError(t, err)
	assert.True(t, found)

	id, ok, err := uc.Resolve(ctx, claims.SessionID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, entity.RoleManager, id.Role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _ := newAuth(t)
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "manager@demo.com", Password: "wrong"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Equal(t, "Invalid email or password", err.Error())

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "", Password: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogout_RevocaSesion(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	resp, err := uc.Login(ctx, dto.LoginRequest{Email: "storekeeper@demo.com", Password: "store123"})
	require.NoError(t, err)
	claims, err := jwt.Parse(secret, resp.Token)
	require.NoError(t, err)

	require.NoError(t, uc.Logout(ctx, claims.SessionID))
	_, ok, err := uc.Resolve(ctx, claims.SessionID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLogin_SesionesIndependientes(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	a, err := uc.Login(ctx, dto.LoginRequest{Email: "manager@demo.com", Password: "manager123"})
	require.NoError(t, err)
	b, err := uc.Login(ctx, dto.LoginRequest{Email: "manager@demo.com", Password: "manager123"})
	require.NoError(t, err)

	ca, _ := jwt.Parse(secret, a.Token)
	cb, _ := jwt.Parse(secret, b.Token)
	require.NotEqual(t, ca.SessionID, cb.SessionID)

	require.NoError(t, uc.Logout(ctx, ca.SessionID))
	_, ok, _ := uc.Resolve(ctx, cb.SessionID)
	assert.True(t, ok, "cerrar una sesión no afecta a otra")
}

func TestResolve_SinSessionID(t *testing.T) {
	uc, _ := newAuth(t)
	_, ok, err := uc.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMe_Permisos(t *testing.T) {
	uc, _ := newAuth(t)
	me := uc.Me(entity.Identity{ID: 2, Email: "storekeeper@demo.com", Role: entity.RoleStoreKeeper, Name: "Jane"})
	assert.True(t, me.CanModify)
	assert.False(t, me.CanViewReport)
}
