package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shareit-go/shareit-server/internal/application"
	bookingDomain "github.com/shareit-go/shareit-server/internal/domain/booking"
	"github.com/shareit-go/shareit-server/internal/middleware"
	"github.com/shareit-go/shareit-server/internal/response"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers all booking routes on the given router group.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings")
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListBookerBookings)
		bookings.GET("/owner", h.ListOwnerBookings)
		bookings.GET("/:bookingId", h.GetBooking)
		bookings.PATCH("/:bookingId", h.DecideBooking)
		bookings.POST("/:bookingId/cancel", h.CancelBooking)
	}
}

// CreateBooking handles POST /bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	bookerID, ok := middleware.UserID(c)
	if !ok {
		response.BadRequest(c, "missing user identity header")
		return
	}

	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateBooking(c.Request.Context(), bookerID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// DecideBooking handles PATCH /bookings/:bookingId?approved=true|false.
func (h *BookingHandler) DecideBooking(c *gin.Context) {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		response.BadRequest(c, "missing user identity header")
		return
	}

	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		response.BadRequest(c, "approved query parameter must be true or false")
		return
	}

	result, err := h.service.DecideBooking(c.Request.Context(), bookingID, ownerID, approved)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CancelBooking handles POST /bookings/:bookingId/cancel.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	bookerID, ok := middleware.UserID(c)
	if !ok {
		response.BadRequest(c, "missing user identity header")
		return
	}

	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	result, err := h.service.CancelBooking(c.Request.Context(), bookingID, bookerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetBooking handles GET /bookings/:bookingId.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.BadRequest(c, "missing user identity header")
		return
	}

	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	result, err := h.service.GetBooking(c.Request.Context(), bookingID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListBookerBookings handles GET /bookings?state=&from=&size=.
func (h *BookingHandler) ListBookerBookings(c *gin.Context) {
	h.list(c, h.service.GetBookerBookings)
}

// ListOwnerBookings handles GET /bookings/owner?state=&from=&size=.
func (h *BookingHandler) ListOwnerBookings(c *gin.Context) {
	h.list(c, h.service.GetOwnerBookings)
}

type listQuery func(ctx context.Context, subjectID uuid.UUID, state bookingDomain.TemporalState, from, size int) ([]application.BookingDTO, error)

func (h *BookingHandler) list(c *gin.Context, query listQuery) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.BadRequest(c, "missing user identity header")
		return
	}

	state, err := bookingDomain.ParseTemporalState(c.Query("state"))
	if err != nil {
		response.Error(c, err)
		return
	}
	from, size := parsePagination(c)

	result, err := query(c.Request.Context(), userID, state, from, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// parsePagination extracts from/size query parameters with defaults.
func parsePagination(c *gin.Context) (int, int) {
	from, _ := strconv.Atoi(c.DefaultQuery("from", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	if from < 0 {
		from = 0
	}
	if size < 1 {
		size = 10
	}
	if size > 100 {
		size = 100
	}
	return from, size
}
