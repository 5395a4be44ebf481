package handler

import (
	"net/http"

	"campbook/internal/middleware"
	"campbook/internal/model"
	"campbook/internal/service"

	"github.com/gin-gonic/gin"
)

// BookingHandler handles booking CRUD and the admin dashboard
type BookingHandler struct {
	bookings *service.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookings *service.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// List handles GET /bookings. Admins may narrow with ?campgroundId=.
func (h *BookingHandler) List(c *gin.Context) {
	details, err := h.bookings.List(c.Request.Context(), middleware.CurrentUser(c), c.Query("campgroundId"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewListResponse(len(details), details))
}

// Get handles GET /bookings/:id
func (h *BookingHandler) Get(c *gin.Context) {
	detail, err := h.bookings.Get(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse(detail))
}

// Create handles POST /bookings
func (h *BookingHandler) Create(c *gin.Context) {
	var req model.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindingError(c, err)
		return
	}

	detail, err := h.bookings.Create(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.NewSuccessResponse(detail))
}

// Update handles PUT /bookings/:id
func (h *BookingHandler) Update(c *gin.Context) {
	var req model.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindingError(c, err)
		return
	}

	detail, err := h.bookings.Update(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse(detail))
}

// Delete handles DELETE /bookings/:id, returning the deleted record's prior
// state.
func (h *BookingHandler) Delete(c *gin.Context) {
	detail, err := h.bookings.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse(detail))
}

// Dashboard handles GET /bookings/dashboard (admin only)
func (h *BookingHandler) Dashboard(c *gin.Context) {
	summary, err := h.bookings.Dashboard(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse(summary))
}
