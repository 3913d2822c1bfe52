package utils

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const SessionCookieName = "token"

// SetSessionCookie writes the session token as an HttpOnly, Secure,
// SameSite=None cookie so cross-site frontends can send it back.
func SetSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(SessionCookieName, token, int(ttl.Seconds()), "/", "", true, true)
}

// ClearSessionCookie expires the session cookie with the same attributes it was set with.
func ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", true, true)
}

// SessionCookie returns the raw session token, or "" when absent.
func SessionCookie(c *gin.Context) string {
	token, err := c.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return token
}
