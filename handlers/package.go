package handlers

import (
	"net/http"

	"tourhub/models"
	"tourhub/services/tourpackage"
	"tourhub/utils"

	"github.com/gin-gonic/gin"
)

type PackageHandler struct {
	Packages tourpackage.PackageService
}

func NewPackageHandler(packages tourpackage.PackageService) *PackageHandler {
	return &PackageHandler{Packages: packages}
}

func (h *PackageHandler) CreatePackageHandler(c *gin.Context) {
	var pkg models.Package
	if err := c.ShouldBindJSON(&pkg); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	id, err := h.Packages.Create(c.Request.Context(), pkg)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"acknowledged": true, "insertedId": id})
}

func (h *PackageHandler) ListPackagesHandler(c *gin.Context) {
	packages, err := h.Packages.List(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, packages)
}

func (h *PackageHandler) RandomPackagesHandler(c *gin.Context) {
	packages, err := h.Packages.Random(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, packages)
}

func (h *PackageHandler) GetPackageHandler(c *gin.Context) {
	pkg, err := h.Packages.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pkg)
}
