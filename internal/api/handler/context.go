package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskflow/task-system/internal/core/domain"
	"github.com/taskflow/task-system/internal/core/ports"
)

// ctxActor extracts the user attached by the Auth middleware and converts it
// to the explicit caller identity passed into service calls. Presence of the
// user proves the middleware ran; its absence means the route was wired
// without the guard, so reject rather than proceed unauthenticated.
func ctxActor(c echo.Context) (ports.Actor, error) {
	user, _ := c.Get("user").(*domain.User)
	if user == nil {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return ports.Actor{ID: user.ID, Email: user.Email, Role: user.Role}, nil
}
