package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskflow/task-system/internal/core/domain"
)

// AdminOnly rejects callers without the admin role. Must run after Auth.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get(userContextKey).(*domain.User)
			if user == nil || !user.IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, "admin access required")
			}
			return next(c)
		}
	}
}
