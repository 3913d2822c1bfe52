package middleware

import (
	"net/http"

	"tourhub/models"
	"tourhub/services/authz"
	"tourhub/services/session"
	"tourhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Gin context keys set by the auth middlewares.
const (
	ContextEmail  = "email"
	ContextClaims = "claims"
	ContextRole   = "role"
)

// SessionAuth rejects requests without a valid session cookie and stores the
// caller's email and claims in the context.
func SessionAuth(sessions session.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := utils.SessionCookie(c)
		if token == "" {
			utils.JSONError(c, http.StatusUnauthorized, "unauthorized access", "")
			return
		}
		claims, err := sessions.Validate(c.Request.Context(), token)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.Set(ContextEmail, claims.Email())
		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// RequireRole resolves the caller's current role and aborts with 403 unless
// the gate allows it. It must run after SessionAuth.
func RequireRole(resolver authz.RoleResolver, gate authz.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := CallerEmail(c)
		if email == "" {
			utils.JSONError(c, http.StatusUnauthorized, "unauthorized access", "")
			return
		}

		role, err := resolver.ResolveRole(c.Request.Context(), email)
		if err != nil {
			if utils.IsKind(err, utils.KindNotFound) {
				utils.JSONError(c, http.StatusForbidden, "forbidden access", "")
				return
			}
			utils.RespondError(c, err)
			return
		}
		if !gate.Allows(role) {
			utils.RequestLogger(c).Debug("Role gate rejected caller",
				zap.String("email", email),
				zap.String("role", string(role)),
				zap.String("gate", gate.Name),
			)
			utils.JSONError(c, http.StatusForbidden, "forbidden access", "")
			return
		}
		c.Set(ContextRole, role)
		c.Next()
	}
}

// CallerEmail returns the email stored by SessionAuth, or "".
func CallerEmail(c *gin.Context) string {
	return c.GetString(ContextEmail)
}

// CallerRole returns the role stored by RequireRole.
func CallerRole(c *gin.Context) (models.Role, bool) {
	v, ok := c.Get(ContextRole)
	if !ok {
		return "", false
	}
	role, ok := v.(models.Role)
	return role, ok
}

// Caller builds the caller identity, resolving the role when no gate has
// done so yet. Unknown users get an empty role.
func Caller(c *gin.Context, resolver authz.RoleResolver) (authz.Caller, error) {
	caller := authz.Caller{Email: CallerEmail(c)}
	if role, ok := CallerRole(c); ok {
		caller.Role = role
		return caller, nil
	}
	role, err := resolver.ResolveRole(c.Request.Context(), caller.Email)
	if err != nil {
		if utils.IsKind(err, utils.KindNotFound) {
			return caller, nil
		}
		return caller, err
	}
	caller.Role = role
	c.Set(ContextRole, role)
	return caller, nil
}
