package handlers

import (
	"net/http"

	"tourhub/services/media"
	"tourhub/utils"

	"github.com/gin-gonic/gin"
)

// UploadHandler hosts story images.
type UploadHandler struct {
	Media media.MediaService
}

func NewUploadHandler(svc media.MediaService) *UploadHandler {
	return &UploadHandler{Media: svc}
}

// UploadImageHandler accepts a multipart "image" field and returns its hosted URL.
func (h *UploadHandler) UploadImageHandler(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "image not provided", err.Error())
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to read image", err.Error())
		return
	}
	defer file.Close()

	uploaded, err := h.Media.UploadImage(c.Request.Context(), file, fileHeader.Filename)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, uploaded)
}

// DeleteImageHandler removes a hosted image by its public id.
func (h *UploadHandler) DeleteImageHandler(c *gin.Context) {
	publicID := c.Query("publicId")
	if publicID == "" {
		utils.JSONError(c, http.StatusBadRequest, "publicId is required", "")
		return
	}
	if err := h.Media.DeleteImage(c.Request.Context(), publicID); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
