package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	reqdto "lendkit/internal/handler/dto/request"
	resdto "lendkit/internal/handler/dto/response"
	"lendkit/internal/handler/httperr"
	"lendkit/internal/handler/middleware"
	"lendkit/internal/pkg/errs"
	"lendkit/internal/usecase/commands"
	"lendkit/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Create booking
// @Description Request to book an item for a time window
// @Tags bookings
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header string true "Booker ID"
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	bookerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.New("missing user id"), "Missing user id", nil)
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	// Boundary rule: bookings cannot start in the past
	if req.Start.Before(time.Now()) {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.New("start is in the past"), "Booking must not start in the past", nil)
		return
	}

	view, err := h.cmds.Create(c.Request.Context(), bookerID, commands.CreateBookingInput{
		ItemID: req.ItemID,
		Start:  req.Start,
		End:    req.End,
	})
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrUserNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "User not found", nil)
		case errors.Is(err, errs.ErrItemNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Item not found", nil)
		case errors.Is(err, errs.ErrSelfBooking):
			// Own items are not bookable; reported as absent
			httperr.AbortWithError(c, http.StatusNotFound, err, "Item not found", nil)
		case errors.Is(err, errs.ErrItemUnavailable):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Item is not available", nil)
		case errors.Is(err, errs.ErrInvalidPeriod):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking period", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.JSON(http.StatusCreated, resdto.FromBookingView(view))
}

// @Summary Resolve booking
// @Description Approve or reject a waiting booking; owner only
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header string true "Owner ID"
// @Param bookingId path string true "Booking ID"
// @Param approved query bool true "Approval decision"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{bookingId} [patch]
func (h *BookingHandler) Resolve(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.New("missing user id"), "Missing user id", nil)
		return
	}

	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking id", nil)
		return
	}

	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid approved parameter", nil)
		return
	}

	view, err := h.cmds.Resolve(c.Request.Context(), ownerID, bookingID, approved)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrUserNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "User not found", nil)
		case errors.Is(err, errs.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		case errors.Is(err, errs.ErrNotAuthorized):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		case errors.Is(err, errs.ErrSameStatusTransition):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Booking already has this status", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Get booking
// @Description Get a booking by ID; visible to the booker and the item owner
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header string true "Actor ID"
// @Param bookingId path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{bookingId} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.New("missing user id"), "Missing user id", nil)
		return
	}

	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking id", nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), actorID, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrUserNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "User not found", nil)
		case errors.Is(err, errs.ErrBookingNotFound), errors.Is(err, errs.ErrNotAuthorized):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List bookings for booker
// @Description List the caller's bookings filtered by state, newest start first
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header string true "Booker ID"
// @Param state query string false "ALL, CURRENT, PAST, FUTURE, WAITING or REJECTED (default ALL)"
// @Param from query int false "Offset (default 0)"
// @Param size query int false "Page size (default 20)"
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) ListForBooker(c *gin.Context) {
	h.list(c, h.q.ListForBooker)
}

// @Summary List bookings for owner
// @Description List bookings of the caller's items filtered by state, newest start first
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header string true "Owner ID"
// @Param state query string false "ALL, CURRENT, PAST, FUTURE, WAITING or REJECTED (default ALL)"
// @Param from query int false "Offset (default 0)"
// @Param size query int false "Page size (default 20)"
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/owner [get]
func (h *BookingHandler) ListForOwner(c *gin.Context) {
	h.list(c, h.q.ListForOwner)
}

func (h *BookingHandler) list(c *gin.Context, fetch func(ctx context.Context, subjectID uuid.UUID, state string, page queries.Page) ([]*queries.BookingView, error)) {
	subjectID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.New("missing user id"), "Missing user id", nil)
		return
	}

	state := c.DefaultQuery("state", "ALL")
	page, err := parsePage(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid pagination", nil)
		return
	}

	views, err := fetch(c.Request.Context(), subjectID, state, page)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrUserNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "User not found", nil)
		case errors.Is(err, errs.ErrUnknownState):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Unknown state: "+state, nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingList(views))
}
