package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskflow/task-system/internal/core/domain"
	"github.com/taskflow/task-system/internal/core/ports"
)

// newTestContext builds an echo context with the request validator wired,
// matching how the router configures the real server.
func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T: %v", err, err)
	}
	return he.Code
}

type stubAuthService struct {
	registered ports.RegisterInput
	loginEmail string
	user       *domain.User
	token      string
	err        error
}

func (s *stubAuthService) Register(_ context.Context, in ports.RegisterInput) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.registered = in
	return s.user, nil
}

func (s *stubAuthService) Login(_ context.Context, email, _ string) (string, *domain.User, error) {
	if s.err != nil {
		return "", nil, s.err
	}
	s.loginEmail = email
	return s.token, s.user, nil
}

type stubUserService struct {
	users []*domain.User
	err   error
}

func (s *stubUserService) ListUsers(_ context.Context) ([]*domain.User, error) {
	return s.users, s.err
}

func (s *stubUserService) Ban(_ context.Context, id string) (*domain.User, error) {
	return s.find(id)
}

func (s *stubUserService) Unban(_ context.Context, id string) (*domain.User, error) {
	return s.find(id)
}

func (s *stubUserService) find(id string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func TestAuthHandler_Register(t *testing.T) {
	svc := &stubAuthService{user: &domain.User{ID: "u1", Name: "Ana", Email: "ana@x.com", Role: domain.RoleUser}}
	h := NewAuthHandler(svc)

	c, rec := newTestContext(http.MethodPost, "/auth/register",
		`{"name":"Ana","email":"ana@x.com","password":"secret123"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.registered.Email != "ana@x.com" {
		t.Fatalf("unexpected register input: %+v", svc.registered)
	}

	var resp messageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message != "Ana registered successfully" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	cases := map[string]string{
		"missing name":    `{"email":"ana@x.com","password":"x"}`,
		"malformed email": `{"name":"Ana","email":"bad","password":"x"}`,
		"unknown role":    `{"name":"Ana","email":"a@x.com","password":"x","role":"root"}`,
	}
	for name, body := range cases {
		c, _ := newTestContext(http.MethodPost, "/auth/register", body)
		err := h.Register(c)
		if httpStatus(t, err) != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %v", name, err)
		}
	}
}

func TestAuthHandler_Register_ServiceErrorPropagates(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{err: domain.ErrEmailTaken})

	c, _ := newTestContext(http.MethodPost, "/auth/register",
		`{"name":"Ana","email":"ana@x.com","password":"secret123"}`)
	if err := h.Register(c); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken to propagate, got %v", err)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	svc := &stubAuthService{
		user:  &domain.User{ID: "u1", Name: "Ana", Email: "ana@x.com", Role: domain.RoleUser},
		token: "signed.jwt.token",
	}
	h := NewAuthHandler(svc)

	c, rec := newTestContext(http.MethodPost, "/auth/login",
		`{"email":"ana@x.com","password":"secret123"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token != "signed.jwt.token" || resp.User.ID != "u1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_Login_ErrorsPropagate(t *testing.T) {
	for _, serviceErr := range []error{domain.ErrInvalidCredentials, domain.ErrUserBanned} {
		h := NewAuthHandler(&stubAuthService{err: serviceErr})
		c, _ := newTestContext(http.MethodPost, "/auth/login",
			`{"email":"ana@x.com","password":"wrong"}`)
		if err := h.Login(c); !errors.Is(err, serviceErr) {
			t.Fatalf("expected %v to propagate, got %v", serviceErr, err)
		}
	}
}

func TestUserHandler_List(t *testing.T) {
	svc := &stubUserService{users: []*domain.User{
		{ID: "u1", Name: "Ana", Email: "ana@x.com", Role: domain.RoleUser, Banned: true},
	}}
	h := NewUserHandler(svc)

	c, rec := newTestContext(http.MethodGet, "/auth/users", "")
	if err := h.List(c); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	var resp listUsersResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Users) != 1 || !resp.Users[0].Banned {
		t.Fatalf("unexpected listing: %+v", resp.Users)
	}
}

func TestUserHandler_BanMessages(t *testing.T) {
	svc := &stubUserService{users: []*domain.User{{ID: "u1", Name: "Ana"}}}
	h := NewUserHandler(svc)

	c, rec := newTestContext(http.MethodPut, "/auth/ban/u1", "")
	c.SetParamNames("id")
	c.SetParamValues("u1")
	if err := h.Ban(c); err != nil {
		t.Fatalf("ban failed: %v", err)
	}
	var resp messageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message != "Ana is banned" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}

	c, rec = newTestContext(http.MethodPut, "/auth/unban/u1", "")
	c.SetParamNames("id")
	c.SetParamValues("u1")
	if err := h.Unban(c); err != nil {
		t.Fatalf("unban failed: %v", err)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message != "Ana is unbanned" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}

func TestUserHandler_BanUnknown(t *testing.T) {
	h := NewUserHandler(&stubUserService{})
	c, _ := newTestContext(http.MethodPut, "/auth/ban/ghost", "")
	c.SetParamNames("id")
	c.SetParamValues("ghost")
	if err := h.Ban(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound to propagate, got %v", err)
	}
}
