package api

import (
	"errors"
	"net/http"

	"lendkit/internal/domain/user"
	reqdto "lendkit/internal/handler/dto/request"
	resdto "lendkit/internal/handler/dto/response"
	"lendkit/internal/handler/httperr"
	"lendkit/internal/pkg/errs"
	"lendkit/internal/usecase/commands"
	"lendkit/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserHandler struct {
	cmds commands.UserCommands
	q    queries.UserQueries
}

func NewUserHandler(cmds commands.UserCommands, q queries.UserQueries) *UserHandler {
	return &UserHandler{cmds: cmds, q: q}
}

// @Summary Create user
// @Description Register a new user account
// @Tags users
// @Accept json
// @Produce json
// @Param request body reqdto.CreateUserRequest true "Create user request"
// @Success 201 {object} resdto.UserResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req reqdto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.cmds.Create(c.Request.Context(), commands.CreateUserInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrDuplicateEmail):
			httperr.AbortWithError(c, http.StatusConflict, err, "Email already registered", nil)
		case errors.Is(err, user.ErrInvalidEmail), errors.Is(err, user.ErrEmptyName):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid user data", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	resp, err := resdto.FromUserView(view)
	respond(c, http.StatusCreated, resp, err)
}

// @Summary Update user
// @Description Partially update a user's name or email
// @Tags users
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param request body reqdto.PatchUserRequest true "Patch user request"
// @Success 200 {object} resdto.UserResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /users/{userId} [patch]
func (h *UserHandler) Patch(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid user id", nil)
		return
	}

	var req reqdto.PatchUserRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	view, err := h.cmds.Patch(c.Request.Context(), userID, commands.PatchUserInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrUserNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "User not found", nil)
		case errors.Is(err, errs.ErrDuplicateEmail):
			httperr.AbortWithError(c, http.StatusConflict, err, "Email already registered", nil)
		case errors.Is(err, user.ErrInvalidEmail), errors.Is(err, user.ErrEmptyName):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid user data", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	resp, err := resdto.FromUserView(view)
	respond(c, http.StatusOK, resp, err)
}

// @Summary Get user
// @Description Get a user by ID
// @Tags users
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} resdto.UserResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /users/{userId} [get]
func (h *UserHandler) Get(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid user id", nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "User not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	resp, err := resdto.FromUserView(view)
	respond(c, http.StatusOK, resp, err)
}

// @Summary List users
// @Description List all registered users
// @Tags users
// @Produce json
// @Success 200 {array} resdto.UserResponse
// @Failure 500 {object} map[string]string
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	views, err := h.q.List(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	resp, err := resdto.FromUserList(views)
	respond(c, http.StatusOK, resp, err)
}

// @Summary Delete user
// @Description Delete a user account
// @Tags users
// @Param userId path string true "User ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /users/{userId} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid user id", nil)
		return
	}

	if err := h.cmds.Delete(c.Request.Context(), userID); err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "User not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.Status(http.StatusNoContent)
}
