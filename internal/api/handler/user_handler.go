package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sifrex/auth-api/internal/api/middleware"
	"github.com/sifrex/auth-api/internal/core/domain"
	"github.com/sifrex/auth-api/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type updateProfileRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type changeRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

type statsResponse struct {
	Users int64 `json:"users"`
}

// Me returns the caller's own identity record.
//
// @Summary      Get the current user's profile
// @Tags         users
// @Produce      json
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Router       /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	user, err := h.userService.Profile(c.Request().Context(), middleware.CurrentSession(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateMe updates the caller's display name.
//
// @Summary      Update the current user's profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  domain.User
// @Failure      401   {object}  map[string]string
// @Router       /users/me [put]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), middleware.CurrentSession(c), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// ChangeRole assigns a new role to a user. Admin only.
//
// @Summary      Change a user's role
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Target user id"
// @Param        body  body      changeRoleRequest  true  "New role"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /users/{id}/role [put]
func (h *UserHandler) ChangeRole(c echo.Context) error {
	var req changeRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.ChangeRole(
		c.Request().Context(), middleware.CurrentSession(c), c.Param("id"), role, requestMeta(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// AuditTrail returns the newest audit events for a user. Admin only.
//
// @Summary      A user's recent audit events
// @Tags         users
// @Produce      json
// @Param        id     path      string  true   "Target user id"
// @Param        limit  query     int     false  "Maximum events to return"
// @Success      200    {array}   domain.AuditEvent
// @Failure      403    {object}  map[string]string
// @Router       /users/{id}/audit [get]
func (h *UserHandler) AuditTrail(c echo.Context) error {
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)

	events, err := h.userService.AuditTrail(
		c.Request().Context(), middleware.CurrentSession(c), c.Param("id"), limit)
	if err != nil {
		return err
	}
	if events == nil {
		events = []*domain.AuditEvent{}
	}
	return c.JSON(http.StatusOK, events)
}

// Stats returns aggregate user counts. Admin only.
//
// @Summary      User statistics
// @Tags         users
// @Produce      json
// @Success      200  {object}  statsResponse
// @Router       /users/stats [get]
func (h *UserHandler) Stats(c echo.Context) error {
	count, err := h.userService.Count(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statsResponse{Users: count})
}
