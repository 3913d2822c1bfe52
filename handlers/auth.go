package handlers

import (
	"net/http"

	"tourhub/services/session"
	"tourhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler issues and clears session cookies.
type AuthHandler struct {
	Sessions session.SessionService
}

func NewAuthHandler(sessions session.SessionService) *AuthHandler {
	return &AuthHandler{Sessions: sessions}
}

// IssueTokenHandler signs the request body into a session cookie.
func (h *AuthHandler) IssueTokenHandler(c *gin.Context) {
	var claims session.Claims
	if err := c.ShouldBindJSON(&claims); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	token, _, err := h.Sessions.Issue(c.Request.Context(), claims)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.SetSessionCookie(c, token, h.Sessions.TTL())
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// LogoutHandler clears the cookie and revokes the token when revocation is enabled.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	if token := utils.SessionCookie(c); token != "" {
		if err := h.Sessions.Revoke(c.Request.Context(), token); err != nil {
			utils.RequestLogger(c).Warn("Failed to revoke session on logout", zap.Error(err))
		}
	}
	utils.ClearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
