package api

import (
	"errors"
	"net/http"

	domrequest "lendkit/internal/domain/request"
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

type RequestHandler struct {
	cmds commands.RequestCommands
	q    queries.RequestQueries
}

func NewRequestHandler(cmds commands.RequestCommands, q queries.RequestQueries) *RequestHandler {
	return &RequestHandler{cmds: cmds, q: q}
}

// @Summary Create request
// @Description Publish a wish for an item that is not listed yet
// @Tags requests
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header string true "Requester ID"
// @Param request body reqdto.CreateRequestRequest true "Create request"
// @Success 201 {object} resdto.RequestResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /requests [post]
func (h *RequestHandler) Create(c *gin.Context) {
	requesterID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.New("missing user id"), "Missing user id", nil)
		return
	}

	var req reqdto.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.cmds.Create(c.Request.Context(), requesterID, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrUserNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "User not found", nil)
		case errors.Is(err, domrequest.ErrEmptyDescription):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request data", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	resp, err := resdto.FromRequestView(view)
	respond(c, http.StatusCreated, resp, err)
}

// @Summary List own requests
// @Description List the caller's requests with the items answering them, newest first
// @Tags requests
// @Produce json
// @Param X-Sharer-User-Id header string true "Requester ID"
// @Success 200 {array} resdto.RequestResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /requests [get]
func (h *RequestHandler) ListOwn(c *gin.Context) {
	requesterID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.New("missing user id"), "Missing user id", nil)
		return
	}

	views, err := h.q.ListForRequester(c.Request.Context(), requesterID)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "User not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	resp, err := resdto.FromRequestList(views)
	respond(c, http.StatusOK, resp, err)
}

// @Summary List other users' requests
// @Description List requests created by other users, newest first
// @Tags requests
// @Produce json
// @Param X-Sharer-User-Id header string true "Actor ID"
// @Param from query int false "Offset (default 0)"
// @Param size query int false "Page size (default 20)"
// @Success 200 {array} resdto.RequestResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /requests/all [get]
func (h *RequestHandler) ListAll(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.New("missing user id"), "Missing user id", nil)
		return
	}

	page, err := parsePage(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid pagination", nil)
		return
	}

	views, err := h.q.ListAll(c.Request.Context(), actorID, page)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "User not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	resp, err := resdto.FromRequestList(views)
	respond(c, http.StatusOK, resp, err)
}

// @Summary Get request
// @Description Get a request with the items answering it
// @Tags requests
// @Produce json
// @Param X-Sharer-User-Id header string true "Actor ID"
// @Param requestId path string true "Request ID"
// @Success 200 {object} resdto.RequestResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /requests/{requestId} [get]
func (h *RequestHandler) Get(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.New("missing user id"), "Missing user id", nil)
		return
	}

	requestID, err := uuid.Parse(c.Param("requestId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request id", nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), actorID, requestID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrUserNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "User not found", nil)
		case errors.Is(err, errs.ErrRequestNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Request not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	resp, err := resdto.FromRequestView(view)
	respond(c, http.StatusOK, resp, err)
}
