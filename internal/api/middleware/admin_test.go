package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskflow/task-system/internal/core/domain"
)

func invokeAdminOnly(t *testing.T, user *domain.User) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(userContextKey, user)
	}
	return AdminOnly()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)
}

func TestAdminOnly_AllowsAdmin(t *testing.T) {
	err := invokeAdminOnly(t, &domain.User{ID: "u1", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("expected admin to pass, got %v", err)
	}
}

func TestAdminOnly_RejectsUserRole(t *testing.T) {
	err := invokeAdminOnly(t, &domain.User{ID: "u1", Role: domain.RoleUser})
	if statusOf(t, err) != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}

func TestAdminOnly_RejectsMissingUser(t *testing.T) {
	err := invokeAdminOnly(t, nil)
	if statusOf(t, err) != http.StatusForbidden {
		t.Fatalf("expected 403 without a resolved user, got %v", err)
	}
}
