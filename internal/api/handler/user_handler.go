package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskflow/task-system/internal/core/ports"
)

// UserHandler exposes the admin-only user administration endpoints. Role
// enforcement happens in the AdminOnly middleware.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List returns all registered users.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listUsersResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /auth/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]userSummary, 0, len(users))
	for _, u := range users {
		out = append(out, userSummary{
			ID:     u.ID,
			Name:   u.Name,
			Email:  u.Email,
			Role:   u.Role,
			Banned: u.Banned,
		})
	}

	return c.JSON(http.StatusOK, listUsersResponse{Users: out})
}

// Ban flags a user as banned.
//
// @Summary      Ban a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /auth/ban/{id} [put]
func (h *UserHandler) Ban(c echo.Context) error {
	user, err := h.userService.Ban(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: user.Name + " is banned"})
}

// Unban clears a user's ban flag.
//
// @Summary      Unban a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /auth/unban/{id} [put]
func (h *UserHandler) Unban(c echo.Context) error {
	user, err := h.userService.Unban(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: user.Name + " is unbanned"})
}
