package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wesley-SdS/modern-ecommerce/internal/apperr"
	"github.com/Wesley-SdS/modern-ecommerce/internal/models"
)

func TestCreateUser(t *testing.T) {
	svc := NewUserService(setupTestDB(t))
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, CreateUserInput{Name: "Admin", Email: "Admin@Shop.com", Password: "supersecret", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, "admin@shop.com", u.Email)
	assert.Equal(t, models.RoleAdmin, u.Role)
	assert.NotEqual(t, "supersecret", u.PasswordHash)

	_, err = svc.CreateUser(ctx, CreateUserInput{Name: "Again", Email: "admin@shop.com", Password: "supersecret"})
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	_, err = svc.CreateUser(ctx, CreateUserInput{Name: "Short", Email: "short@shop.com", Password: "1234567"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = svc.CreateUser(ctx, CreateUserInput{Name: "Role", Email: "role@shop.com", Password: "supersecret", Role: "ROOT"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	c, err := svc.CreateUser(ctx, CreateUserInput{Name: "Customer", Email: "c@shop.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, c.Role)
}

func TestUserRoleAndDelete(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewUserService(gdb)
	ctx := context.Background()
	u := seedUser(t, gdb, "someone@shop.com", models.RoleCustomer)

	updated, err := svc.UpdateUserRole(ctx, u.ID, UpdateRoleInput{Role: models.RoleSuperAdmin})
	require.NoError(t, err)
	assert.Equal(t, models.RoleSuperAdmin, updated.Role)

	_, err = svc.UpdateUserRole(ctx, u.ID, UpdateRoleInput{})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	list, err := svc.ListUsers(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Pagination.Total)

	require.NoError(t, svc.DeleteUser(ctx, u.ID))
	assert.True(t, apperr.Is(svc.DeleteUser(ctx, u.ID), apperr.KindNotFound))
}

func TestRegisterAndLogin(t *testing.T) {
	svc := NewAuthService(setupTestDB(t))
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@shop.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, u.Role)

	_, err = svc.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@shop.com", Password: "secret1"})
	assert.True(t, apperr.Is(err, apperr.KindValidation), "duplicate sign-up is a validation error")

	_, err = svc.Register(ctx, RegisterInput{Name: "A", Email: "a@shop.com", Password: "secret1"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	logged, err := svc.Login(ctx, LoginInput{Email: "ANA@shop.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, logged.ID)

	_, err = svc.Login(ctx, LoginInput{Email: "ana@shop.com", Password: "wrong"})
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))

	_, err = svc.Login(ctx, LoginInput{Email: "nobody@shop.com", Password: "secret1"})
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
}

func TestUpsertOIDCUser(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewAuthService(gdb)
	ctx := context.Background()
	existing := seedUser(t, gdb, "linked@shop.com", models.RoleCustomer)

	linked, err := svc.UpsertOIDCUser(ctx, OIDCClaims{Subject: "sub-1", Email: "linked@shop.com", EmailVerified: true, Name: "Linked"})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, linked.ID)

	again, err := svc.UpsertOIDCUser(ctx, OIDCClaims{Subject: "sub-1"})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, again.ID)

	created, err := svc.UpsertOIDCUser(ctx, OIDCClaims{Subject: "sub-2", Email: "new@shop.com", Name: "New", Phone: "+254700000000"})
	require.NoError(t, err)
	assert.NotEqual(t, existing.ID, created.ID)
	assert.Equal(t, models.RoleCustomer, created.Role)
	assert.Equal(t, "+254700000000", created.Phone)

	_, err = svc.UpsertOIDCUser(ctx, OIDCClaims{})
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
}

func TestUpsertOIDCUserUnverifiedEmail(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewAuthService(gdb)
	ctx := context.Background()
	admin := seedUser(t, gdb, "admin@ecommerce.com", models.RoleSuperAdmin)

	u, err := svc.UpsertOIDCUser(ctx, OIDCClaims{Subject: "other-sub", Email: "Admin@Ecommerce.com"})
	assert.Nil(t, u)
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	var reloaded models.User
	require.NoError(t, gdb.First(&reloaded, "id = ?", admin.ID).Error)
	assert.Nil(t, reloaded.OIDCSubject)

	// an unverified email nobody holds still gets a fresh customer
	created, err := svc.UpsertOIDCUser(ctx, OIDCClaims{Subject: "fresh-sub", Email: "fresh@shop.com"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, created.Role)
	assert.NotEqual(t, admin.ID, created.ID)
}
