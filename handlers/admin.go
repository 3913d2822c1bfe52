package handlers

import (
	"net/http"

	"tourhub/services/stats"
	"tourhub/services/user"
	"tourhub/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler encapsulates elevated admin-level operations.
type AdminHandler struct {
	Users user.UserService
	Stats stats.Aggregator
}

func NewAdminHandler(users user.UserService, aggregator stats.Aggregator) *AdminHandler {
	return &AdminHandler{Users: users, Stats: aggregator}
}

type candidateDecisionRequest struct {
	Action string `json:"action"`
}

func (h *AdminHandler) ListCandidatesHandler(c *gin.Context) {
	users, err := h.Users.ListCandidates(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// DecideCandidateHandler approves or rejects a pending guide application.
func (h *AdminHandler) DecideCandidateHandler(c *gin.Context) {
	var req candidateDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	count, err := h.Users.Decide(c.Request.Context(), c.Param("email"), req.Action)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, count)
}

// ListAllUsersHandler returns every user.
func (h *AdminHandler) ListAllUsersHandler(c *gin.Context) {
	users, err := h.Users.ListAll(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) DeleteUserHandler(c *gin.Context) {
	if err := h.Users.DeleteByID(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully", "deletedCount": 1})
}

func (h *AdminHandler) StatsHandler(c *gin.Context) {
	out, err := h.Stats.Compute(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
