package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tourhub/middleware"
	"tourhub/models"
	"tourhub/services/authz"
	"tourhub/services/session"
	"tourhub/testutil"
	"tourhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var roleEmails = map[models.Role]string{
	models.RoleUser:    "user@example.com",
	models.RoleTourist: "tourist@example.com",
	models.RoleGuide:   "guide@example.com",
	models.RoleAdmin:   "admin@example.com",
}

type harness struct {
	router   *gin.Engine
	sessions *session.DefaultSessionService
	users    *testutil.UserRepo
	hits     int
}

func newHarness(t *testing.T, gate authz.Gate) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var seed []models.User
	for role, email := range roleEmails {
		seed = append(seed, models.User{Email: email, Role: role})
	}
	h := &harness{
		users:    testutil.NewUserRepo(seed...),
		sessions: session.NewSessionService(utils.NewTokenManager("test-secret", time.Hour), nil, zap.NewNop()),
	}
	h.router = gin.New()
	h.router.GET("/protected",
		middleware.SessionAuth(h.sessions),
		middleware.RequireRole(authz.NewStoreRoleResolver(h.users), gate),
		func(c *gin.Context) {
			h.hits++
			role, _ := middleware.CallerRole(c)
			c.JSON(http.StatusOK, gin.H{"email": middleware.CallerEmail(c), "role": role})
		},
	)
	return h
}

func (h *harness) do(t *testing.T, email string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if email != "" {
		token, _, err := h.sessions.Issue(context.Background(), session.Claims{"email": email})
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

func TestAuthorizationMatrix(t *testing.T) {
	gates := []authz.Gate{authz.RequireAdmin, authz.RequireGuide, authz.RequireTourist, authz.RequireTouristOrGuide}
	for _, gate := range gates {
		t.Run(gate.Name, func(t *testing.T) {
			h := newHarness(t, gate)
			wantHits := 0
			for role, email := range roleEmails {
				rec := h.do(t, email)
				if gate.Allows(role) {
					wantHits++
					assert.Equal(t, http.StatusOK, rec.Code, string(role))
				} else {
					assert.Equal(t, http.StatusForbidden, rec.Code, string(role))
				}
			}
			assert.Equal(t, wantHits, h.hits)
		})
	}
}

func TestMissingCredentialIs401(t *testing.T) {
	h := newHarness(t, authz.RequireAdmin)

	rec := h.do(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, h.hits)
}

func TestInvalidCredentialIs401(t *testing.T) {
	h := newHarness(t, authz.RequireAdmin)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: "forged.token.value"})
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, h.hits)
}

func TestTokenSignedWithOtherSecretIs401(t *testing.T) {
	h := newHarness(t, authz.RequireAdmin)
	other := session.NewSessionService(utils.NewTokenManager("other-secret", time.Hour), nil, zap.NewNop())
	token, _, err := other.Issue(context.Background(), session.Claims{"email": roleEmails[models.RoleAdmin]})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, h.hits)
}

func TestUnknownUserIs403(t *testing.T) {
	h := newHarness(t, authz.RequireTouristOrGuide)

	rec := h.do(t, "ghost@example.com")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Zero(t, h.hits)
}

func TestRoleStoreFailureIs500(t *testing.T) {
	h := newHarness(t, authz.RequireAdmin)
	h.users.Fail("GetByEmail", errors.New("no reachable servers"))

	rec := h.do(t, roleEmails[models.RoleAdmin])
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Zero(t, h.hits)
}

func TestRoleIsResolvedOnEveryRequest(t *testing.T) {
	h := newHarness(t, authz.RequireTourist)
	email := roleEmails[models.RoleUser]

	assert.Equal(t, http.StatusForbidden, h.do(t, email).Code)

	_, err := h.users.PromoteRole(context.Background(), email, models.RoleUser, models.RoleTourist)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, h.do(t, email).Code)
}
