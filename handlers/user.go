package handlers

import (
	"net/http"

	"tourhub/middleware"
	"tourhub/models"
	"tourhub/services/authz"
	"tourhub/services/cascade"
	"tourhub/services/user"
	"tourhub/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler serves registration, guide applications and profile edits.
type UserHandler struct {
	Users    user.UserService
	Cascade  cascade.Coordinator
	Resolver authz.RoleResolver
}

func NewUserHandler(users user.UserService, coordinator cascade.Coordinator, resolver authz.RoleResolver) *UserHandler {
	return &UserHandler{Users: users, Cascade: coordinator, Resolver: resolver}
}

// CreateUserHandler registers a user; repeating it for the same email is a no-op.
func (h *UserHandler) CreateUserHandler(c *gin.Context) {
	var req models.User
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	created, err := h.Users.Register(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if !created {
		c.JSON(http.StatusOK, gin.H{"message": "User already exists", "insertedId": nil})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User created", "acknowledged": true})
}

func (h *UserHandler) GetUserRoleHandler(c *gin.Context) {
	role, err := h.Users.GetRole(c.Request.Context(), c.Param("email"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"role": role})
}

// ApplyForGuideHandler submits the caller's own guide application.
func (h *UserHandler) ApplyForGuideHandler(c *gin.Context) {
	email := c.Param("email")
	if middleware.CallerEmail(c) != email {
		utils.JSONError(c, http.StatusForbidden, "forbidden access", "")
		return
	}
	var req user.GuideApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	count, err := h.Users.ApplyForGuide(c.Request.Context(), email, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, count)
}

// UpdateProfileHandler renames a user and every denormalized copy of their profile.
func (h *UserHandler) UpdateProfileHandler(c *gin.Context) {
	email := c.Param("email")
	caller, err := middleware.Caller(c, h.Resolver)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if !caller.Owns(email) {
		utils.JSONError(c, http.StatusForbidden, "forbidden access", "")
		return
	}

	var fields models.ProfileFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	result, err := h.Cascade.UpdateProfile(c.Request.Context(), email, fields)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "updated": result})
}

func (h *UserHandler) RandomGuidesHandler(c *gin.Context) {
	guides, err := h.Users.ListGuides(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, guides)
}
