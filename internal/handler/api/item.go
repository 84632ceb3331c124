package api

import (
	"errors"
	"net/http"

	"lendkit/internal/domain/comment"
	"lendkit/internal/domain/item"
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

type ItemHandler struct {
	cmds commands.ItemCommands
	q    queries.ItemQueries
}

func NewItemHandler(cmds commands.ItemCommands, q queries.ItemQueries) *ItemHandler {
	return &ItemHandler{cmds: cmds, q: q}
}

// @Summary Create item
// @Description List a new item for sharing, optionally answering a request
// @Tags items
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header string true "Owner ID"
// @Param request body reqdto.CreateItemRequest true "Create item request"
// @Success 201 {object} resdto.ItemResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /items [post]
func (h *ItemHandler) Create(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.New("missing user id"), "Missing user id", nil)
		return
	}

	var req reqdto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.cmds.Create(c.Request.Context(), ownerID, commands.CreateItemInput{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		RequestID:   req.RequestID,
	})
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrUserNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "User not found", nil)
		case errors.Is(err, errs.ErrRequestNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Request not found", nil)
		case errors.Is(err, item.ErrEmptyName), errors.Is(err, item.ErrEmptyDescription):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid item data", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	resp, err := resdto.FromItemView(view)
	respond(c, http.StatusCreated, resp, err)
}

// @Summary Update item
// @Description Partially update an item; owner only
// @Tags items
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header string true "Owner ID"
// @Param itemId path string true "Item ID"
// @Param request body reqdto.PatchItemRequest true "Patch item request"
// @Success 200 {object} resdto.ItemResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /items/{itemId} [patch]
func (h *ItemHandler) Patch(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.New("missing user id"), "Missing user id", nil)
		return
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid item id", nil)
		return
	}

	var req reqdto.PatchItemRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	view, err := h.cmds.Patch(c.Request.Context(), actorID, itemID, commands.PatchItemInput{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
	})
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrUserNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "User not found", nil)
		case errors.Is(err, errs.ErrItemNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Item not found", nil)
		case errors.Is(err, commands.ErrItemNotOwned):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Only the owner may update the item", nil)
		case errors.Is(err, item.ErrEmptyName), errors.Is(err, item.ErrEmptyDescription):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid item data", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	resp, err := resdto.FromItemView(view)
	respond(c, http.StatusOK, resp, err)
}

// @Summary Get item
// @Description Get an item; the owner additionally sees last/next booking
// @Tags items
// @Produce json
// @Param X-Sharer-User-Id header string true "Actor ID"
// @Param itemId path string true "Item ID"
// @Success 200 {object} resdto.ItemDetailResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /items/{itemId} [get]
func (h *ItemHandler) Get(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.New("missing user id"), "Missing user id", nil)
		return
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid item id", nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), actorID, itemID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrUserNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "User not found", nil)
		case errors.Is(err, errs.ErrItemNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Item not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	resp, err := resdto.FromItemDetailView(view)
	respond(c, http.StatusOK, resp, err)
}

// @Summary List own items
// @Description List the caller's items with booking enrichment
// @Tags items
// @Produce json
// @Param X-Sharer-User-Id header string true "Owner ID"
// @Param from query int false "Offset (default 0)"
// @Param size query int false "Page size (default 20)"
// @Success 200 {array} resdto.ItemDetailResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /items [get]
func (h *ItemHandler) ListOwn(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.New("missing user id"), "Missing user id", nil)
		return
	}

	page, err := parsePage(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid pagination", nil)
		return
	}

	views, err := h.q.ListByOwner(c.Request.Context(), ownerID, page)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "User not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	resp, err := resdto.FromItemDetailList(views)
	respond(c, http.StatusOK, resp, err)
}

// @Summary Search items
// @Description Search available items by text; blank text yields an empty list
// @Tags items
// @Produce json
// @Param text query string true "Search text"
// @Param from query int false "Offset (default 0)"
// @Param size query int false "Page size (default 20)"
// @Success 200 {array} resdto.ItemResponse
// @Failure 400 {object} map[string]string
// @Router /items/search [get]
func (h *ItemHandler) Search(c *gin.Context) {
	page, err := parsePage(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid pagination", nil)
		return
	}

	views, err := h.q.Search(c.Request.Context(), c.Query("text"), page)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	resp, err := resdto.FromItemList(views)
	respond(c, http.StatusOK, resp, err)
}

// @Summary Add comment
// @Description Comment on an item after having rented it
// @Tags items
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header string true "Author ID"
// @Param itemId path string true "Item ID"
// @Param request body reqdto.CreateCommentRequest true "Comment request"
// @Success 201 {object} resdto.CommentResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /items/{itemId}/comment [post]
func (h *ItemHandler) AddComment(c *gin.Context) {
	authorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.New("missing user id"), "Missing user id", nil)
		return
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid item id", nil)
		return
	}

	var req reqdto.CreateCommentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	view, err := h.cmds.AddComment(c.Request.Context(), authorID, itemID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrUserNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "User not found", nil)
		case errors.Is(err, errs.ErrItemNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Item not found", nil)
		case errors.Is(err, errs.ErrCommentNotAllowed):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "No finished booking for this item", nil)
		case errors.Is(err, comment.ErrEmptyText), errors.Is(err, comment.ErrTextTooLong):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid comment text", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	resp, err := resdto.FromCommentView(view)
	respond(c, http.StatusCreated, resp, err)
}
