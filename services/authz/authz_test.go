package authz_test

import (
	"context"
	"errors"
	"testing"

	"tourhub/models"
	"tourhub/services/authz"
	"tourhub/testutil"
	"tourhub/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatesAllowExactlyTheirRoles(t *testing.T) {
	roles := []models.Role{models.RoleUser, models.RoleTourist, models.RoleGuide, models.RoleAdmin}
	cases := []struct {
		gate    authz.Gate
		allowed []models.Role
	}{
		{authz.RequireAdmin, []models.Role{models.RoleAdmin}},
		{authz.RequireGuide, []models.Role{models.RoleGuide}},
		{authz.RequireTourist, []models.Role{models.RoleTourist}},
		{authz.RequireTouristOrGuide, []models.Role{models.RoleTourist, models.RoleGuide}},
	}
	for _, tc := range cases {
		t.Run(tc.gate.Name, func(t *testing.T) {
			for _, role := range roles {
				assert.Equal(t, contains(tc.allowed, role), tc.gate.Allows(role), string(role))
			}
		})
	}
}

func contains(roles []models.Role, role models.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

func TestResolveRoleReadsCurrentRole(t *testing.T) {
	users := testutil.NewUserRepo(models.User{Email: "u@example.com", Role: models.RoleUser})
	resolver := authz.NewStoreRoleResolver(users)

	role, err := resolver.ResolveRole(context.Background(), "u@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, role)

	// A promotion is visible on the very next call.
	_, err = users.PromoteRole(context.Background(), "u@example.com", models.RoleUser, models.RoleTourist)
	require.NoError(t, err)
	role, err = resolver.ResolveRole(context.Background(), "u@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleTourist, role)
}

func TestResolveRoleUnknownUser(t *testing.T) {
	resolver := authz.NewStoreRoleResolver(testutil.NewUserRepo())

	_, err := resolver.ResolveRole(context.Background(), "ghost@example.com")
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

func TestResolveRoleStoreFailure(t *testing.T) {
	users := testutil.NewUserRepo()
	users.Fail("GetByEmail", errors.New("connection refused"))
	resolver := authz.NewStoreRoleResolver(users)

	_, err := resolver.ResolveRole(context.Background(), "u@example.com")
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindInternal))
}

func TestCallerOwns(t *testing.T) {
	assert.True(t, authz.Caller{Email: "a@example.com", Role: models.RoleTourist}.Owns("a@example.com"))
	assert.False(t, authz.Caller{Email: "a@example.com", Role: models.RoleTourist}.Owns("b@example.com"))
	assert.True(t, authz.Caller{Email: "admin@example.com", Role: models.RoleAdmin}.Owns("b@example.com"))
}

func TestResolveRoleRejectsUnrecognizedRole(t *testing.T) {
	users := testutil.NewUserRepo(models.User{Email: "s@example.com", Role: "superuser"})
	resolver := authz.NewStoreRoleResolver(users)

	_, err := resolver.ResolveRole(context.Background(), "s@example.com")
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindForbidden))
}

func TestCallerIsAdmin(t *testing.T) {
	assert.True(t, authz.Caller{Role: models.RoleAdmin}.IsAdmin())
	assert.False(t, authz.Caller{Role: models.RoleGuide}.IsAdmin())
}
