package handlers

import (
	"net/http"

	"tourhub/middleware"
	"tourhub/services/authz"
	"tourhub/services/story"
	"tourhub/utils"

	"github.com/gin-gonic/gin"
)

// StoryHandler serves travel stories.
type StoryHandler struct {
	Stories  story.StoryService
	Resolver authz.RoleResolver
}

func NewStoryHandler(stories story.StoryService, resolver authz.RoleResolver) *StoryHandler {
	return &StoryHandler{Stories: stories, Resolver: resolver}
}

type storyImagesRequest struct {
	Images []string `json:"images"`
}

type storyImageRequest struct {
	Image string `json:"image"`
}

func (h *StoryHandler) caller(c *gin.Context) (authz.Caller, bool) {
	caller, err := middleware.Caller(c, h.Resolver)
	if err != nil {
		utils.RespondError(c, err)
		return caller, false
	}
	return caller, true
}

func (h *StoryHandler) CreateStoryHandler(c *gin.Context) {
	var req story.CreateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	created, err := h.Stories.Create(c.Request.Context(), caller, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *StoryHandler) ListAllStoriesHandler(c *gin.Context) {
	stories, err := h.Stories.ListAll(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stories)
}

func (h *StoryHandler) ListMyStoriesHandler(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	stories, err := h.Stories.ListMine(c.Request.Context(), caller)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stories)
}

func (h *StoryHandler) GetStoryHandler(c *gin.Context) {
	s, err := h.Stories.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *StoryHandler) UpdateStoryHandler(c *gin.Context) {
	var req story.UpdateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	count, err := h.Stories.UpdateText(c.Request.Context(), caller, c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, count)
}

func (h *StoryHandler) AddStoryImagesHandler(c *gin.Context) {
	var req storyImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	count, err := h.Stories.AddImages(c.Request.Context(), caller, c.Param("id"), req.Images)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, count)
}

func (h *StoryHandler) RemoveStoryImageHandler(c *gin.Context) {
	var req storyImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	count, err := h.Stories.RemoveImage(c.Request.Context(), caller, c.Param("id"), req.Image)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, count)
}

func (h *StoryHandler) DeleteStoryHandler(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	if err := h.Stories.Delete(c.Request.Context(), caller, c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"acknowledged": true, "deletedCount": 1})
}
