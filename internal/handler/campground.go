package handler

import (
	"net/http"

	"campbook/internal/model"
	"campbook/internal/service"

	"github.com/gin-gonic/gin"
)

// CampgroundHandler handles campground CRUD requests
type CampgroundHandler struct {
	campgrounds *service.CampgroundService
}

// NewCampgroundHandler creates a new campground handler
func NewCampgroundHandler(campgrounds *service.CampgroundService) *CampgroundHandler {
	return &CampgroundHandler{campgrounds: campgrounds}
}

// List handles GET /campgrounds
func (h *CampgroundHandler) List(c *gin.Context) {
	campgrounds, err := h.campgrounds.List(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewListResponse(len(campgrounds), campgrounds))
}

// Get handles GET /campgrounds/:id
func (h *CampgroundHandler) Get(c *gin.Context) {
	campground, err := h.campgrounds.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse(campground))
}

// Create handles POST /campgrounds
func (h *CampgroundHandler) Create(c *gin.Context) {
	var req model.CreateCampgroundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindingError(c, err)
		return
	}

	campground, err := h.campgrounds.Create(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.NewSuccessResponse(campground))
}

// Update handles PUT /campgrounds/:id
func (h *CampgroundHandler) Update(c *gin.Context) {
	var req model.UpdateCampgroundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindingError(c, err)
		return
	}

	campground, err := h.campgrounds.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse(campground))
}

// Delete handles DELETE /campgrounds/:id
func (h *CampgroundHandler) Delete(c *gin.Context) {
	if err := h.campgrounds.Delete(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse(gin.H{}))
}
