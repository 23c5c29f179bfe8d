package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"lendshare/internal/domain/booking"
	reqdto "lendshare/internal/handler/dto/request"
	resdto "lendshare/internal/handler/dto/response"
	"lendshare/internal/handler/middleware"
	"lendshare/internal/usecase"
	"lendshare/internal/usecase/readmodel"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingUseCase usecase.BookingUseCase
}

func NewBookingHandler(bookingUseCase usecase.BookingUseCase) *BookingHandler {
	return &BookingHandler{
		bookingUseCase: bookingUseCase,
	}
}

// @Summary Create booking
// @Description Request a booking of an item for a future period
// @Tags bookings
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header string true "Acting user ID"
// @Param request body reqdto.AddBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) AddBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.AddBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	params := usecase.AddBookingParams{
		ItemID: req.ItemID,
		Start:  req.Start,
		End:    req.End,
	}

	view, err := h.bookingUseCase.Add(c.Request.Context(), params, userID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
		case errors.Is(err, usecase.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Item not found",
			})
		case errors.Is(err, usecase.ErrOwnItemBooking):
			// Owners booking their own items get 404, not 403.
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Item not found",
			})
		case errors.Is(err, usecase.ErrItemUnavailable):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Item is unavailable for booking",
			})
		case errors.Is(err, booking.ErrInvalidPeriod):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid booking period",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingView(view))
}

// @Summary Approve or reject booking
// @Description Resolve a waiting booking; only the item owner may decide
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header string true "Acting user ID"
// @Param bookingId path string true "Booking ID"
// @Param approved query bool true "true to approve, false to reject"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{bookingId} [patch]
func (h *BookingHandler) ApproveBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing or invalid approved parameter",
		})
		return
	}

	view, err := h.bookingUseCase.Approve(c.Request.Context(), bookingID, approved, userID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		case errors.Is(err, booking.ErrNotWaiting):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Booking is not waiting for approval",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Get booking
// @Description Get booking by ID; visible to the booker and the item owner
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header string true "Acting user ID"
// @Param bookingId path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{bookingId} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	view, err := h.bookingUseCase.Get(c.Request.Context(), bookingID, userID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List own bookings
// @Description List the acting user's bookings filtered by state
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header string true "Acting user ID"
// @Param state query string false "ALL, CURRENT, PAST, FUTURE, WAITING or REJECTED" default(ALL)
// @Param from query int false "Zero-based offset"
// @Param size query int false "Page size"
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) GetBookerBookings(c *gin.Context) {
	h.listBookings(c, h.bookingUseCase.ListByBooker)
}

// @Summary List bookings for owned items
// @Description List bookings of every item the acting user owns, filtered by state
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header string true "Acting user ID"
// @Param state query string false "ALL, CURRENT, PAST, FUTURE, WAITING or REJECTED" default(ALL)
// @Param from query int false "Zero-based offset"
// @Param size query int false "Page size"
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/owner [get]
func (h *BookingHandler) GetOwnerBookings(c *gin.Context) {
	h.listBookings(c, h.bookingUseCase.ListByOwner)
}

type bookingListFunc func(ctx context.Context, actorID uuid.UUID, stateToken string, page *usecase.Page) ([]*readmodel.BookingView, error)

func (h *BookingHandler) listBookings(c *gin.Context, list bookingListFunc) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	stateToken := c.DefaultQuery("state", "ALL")

	page, err := parsePage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid pagination parameters",
		})
		return
	}

	views, err := list(c.Request.Context(), userID, stateToken, page)
	if err != nil {
		var unsupported *booking.UnsupportedStateError
		switch {
		case errors.As(err, &unsupported):
			// The literal message is part of the API contract.
			c.JSON(http.StatusBadRequest, gin.H{
				"error": unsupported.Error(),
			})
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingViews(views))
}

// parsePage reads the optional from/size window. Both absent means the
// full result set; anything present goes through NewPage validation.
func parsePage(c *gin.Context) (*usecase.Page, error) {
	fromStr := c.Query("from")
	sizeStr := c.Query("size")
	if fromStr == "" && sizeStr == "" {
		return nil, nil
	}

	from, err := strconv.Atoi(fromStr)
	if err != nil {
		return nil, usecase.ErrInvalidPage
	}
	size, err := strconv.Atoi(sizeStr)
	if err != nil {
		return nil, usecase.ErrInvalidPage
	}
	return usecase.NewPage(from, size)
}
