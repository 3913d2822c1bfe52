package handlers

import (
	"net/http"

	"tourhub/middleware"
	"tourhub/models"
	"tourhub/services/authz"
	"tourhub/services/booking"
	"tourhub/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler serves tourist bookings and the guide's assigned tours.
type BookingHandler struct {
	Bookings booking.BookingService
	Resolver authz.RoleResolver
}

func NewBookingHandler(bookings booking.BookingService, resolver authz.RoleResolver) *BookingHandler {
	return &BookingHandler{Bookings: bookings, Resolver: resolver}
}

type bookingStatusRequest struct {
	Status models.BookingStatus `json:"status"`
}

func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var req models.Booking
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	h.withCaller(c, func(caller authz.Caller) {
		created, err := h.Bookings.Create(c.Request.Context(), caller, req)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"acknowledged": true, "insertedId": created.ID})
	})
}

// withCaller runs fn with the resolved caller, writing any resolution error.
func (h *BookingHandler) withCaller(c *gin.Context, fn func(caller authz.Caller)) {
	caller, err := middleware.Caller(c, h.Resolver)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	fn(caller)
}

func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	h.withCaller(c, func(caller authz.Caller) {
		bookings, err := h.Bookings.ListForTourist(c.Request.Context(), caller, c.Param("email"))
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, bookings)
	})
}

func (h *BookingHandler) DeleteBookingHandler(c *gin.Context) {
	h.withCaller(c, func(caller authz.Caller) {
		if err := h.Bookings.Delete(c.Request.Context(), caller, c.Param("id")); err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"acknowledged": true, "deletedCount": 1})
	})
}

func (h *BookingHandler) MyOrdersHandler(c *gin.Context) {
	h.withCaller(c, func(caller authz.Caller) {
		bookings, err := h.Bookings.MyOrders(c.Request.Context(), caller, c.Param("email"))
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, bookings)
	})
}

func (h *BookingHandler) AssignedToursHandler(c *gin.Context) {
	h.withCaller(c, func(caller authz.Caller) {
		bookings, err := h.Bookings.AssignedTours(c.Request.Context(), caller, c.Param("email"))
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, bookings)
	})
}

func (h *BookingHandler) UpdateBookingStatusHandler(c *gin.Context) {
	var req bookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	h.withCaller(c, func(caller authz.Caller) {
		count, err := h.Bookings.UpdateStatus(c.Request.Context(), caller, c.Param("id"), req.Status)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, count)
	})
}
