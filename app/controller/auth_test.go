package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vibast-solutions/ms-go-bootcamps/app/controller"
	"github.com/vibast-solutions/ms-go-bootcamps/app/entity"
	"github.com/vibast-solutions/ms-go-bootcamps/app/middleware"
	"github.com/vibast-solutions/ms-go-bootcamps/app/service"
	"github.com/vibast-solutions/ms-go-bootcamps/config"

	"github.com/labstack/echo/v4"
)

type stubUserStore struct {
	users map[string]*entity.User
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{users: make(map[string]*entity.User)}
}

func (s *stubUserStore) Create(_ context.Context, user *entity.User) error {
	s.users[user.ID] = user
	return nil
}

func (s *stubUserStore) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubUserStore) FindByID(_ context.Context, id string) (*entity.User, error) {
	return s.users[id], nil
}

func (s *stubUserStore) FindByResetTokenHash(_ context.Context, hash string, now time.Time) (*entity.User, error) {
	for _, u := range s.users {
		if u.ResetTokenHash == hash && u.ResetTokenExpiresAt != nil && u.ResetTokenExpiresAt.After(now) {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubUserStore) Update(_ context.Context, user *entity.User) error {
	s.users[user.ID] = user
	return nil
}

func (s *stubUserStore) UpdatePassword(_ context.Context, id, passwordHash string) error {
	s.users[id].PasswordHash = passwordHash
	return nil
}

func (s *stubUserStore) SetResetToken(_ context.Context, id, hash string, expiresAt time.Time) error {
	s.users[id].ResetTokenHash = hash
	s.users[id].ResetTokenExpiresAt = &expiresAt
	return nil
}

func (s *stubUserStore) ClearResetToken(_ context.Context, id string) error {
	s.users[id].ResetTokenHash = ""
	s.users[id].ResetTokenExpiresAt = nil
	return nil
}

func (s *stubUserStore) ResetPassword(_ context.Context, id, passwordHash string) error {
	s.users[id].PasswordHash = passwordHash
	s.users[id].ResetTokenHash = ""
	s.users[id].ResetTokenExpiresAt = nil
	return nil
}

type stubMailer struct{}

func (stubMailer) Send(_ context.Context, _, _, _ string) error { return nil }

func newAuthController(t *testing.T) (*controller.AuthController, *service.AuthService) {
	t.Helper()

	cfg := &config.Config{
		JWTSecret:      "test-secret",
		JWTTTL:         time.Hour,
		CookieTTL:      time.Hour,
		ResetTokenTTL:  10 * time.Minute,
		PasswordPolicy: config.PasswordPolicy{MinLength: 6},
	}
	tokens := service.NewTokenService(cfg)
	authService := service.NewAuthService(newStubUserStore(), tokens, stubMailer{}, cfg)
	return controller.NewAuthController(authService, cfg), authService
}

func newJSONRequest(t *testing.T, method, target string, body interface{}) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req, httptest.NewRecorder()
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.TokenCookie {
			return c
		}
	}
	return nil
}

func TestRegister_SetsCookieAndToken(t *testing.T) {
	authController, _ := newAuthController(t)

	req, rec := newJSONRequest(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name":     "John Doe",
		"email":    "john@example.com",
		"password": "password123",
	})
	e := echo.New()
	ctx := e.NewContext(req, rec)

	if err := authController.Register(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Token == "" {
		t.Fatalf("expected success with token, got %s", rec.Body.String())
	}

	cookie := sessionCookie(rec)
	if cookie == nil {
		t.Fatal("token cookie not set")
	}
	if cookie.Value != resp.Token {
		t.Fatal("cookie token differs from body token")
	}
	if !cookie.HttpOnly {
		t.Fatal("token cookie must be http-only")
	}
}

func TestRegister_MissingFields(t *testing.T) {
	authController, _ := newAuthController(t)

	req, rec := newJSONRequest(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email": "john@example.com",
	})
	e := echo.New()
	ctx := e.NewContext(req, rec)

	if err := authController.Register(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestRegister_AdminRoleRejected(t *testing.T) {
	authController, _ := newAuthController(t)

	req, rec := newJSONRequest(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name":     "Mallory",
		"email":    "mallory@example.com",
		"password": "password123",
		"role":     "admin",
	})
	e := echo.New()
	ctx := e.NewContext(req, rec)

	if err := authController.Register(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	authController, authService := newAuthController(t)

	if _, err := authService.Register(context.Background(), "John", "john@example.com", "password123", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	req, rec := newJSONRequest(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "john@example.com",
		"password": "wrong-password",
	})
	e := echo.New()
	ctx := e.NewContext(req, rec)

	if err := authController.Login(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestLogout_ClearsCookie(t *testing.T) {
	authController, _ := newAuthController(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/logout", nil)
	rec := httptest.NewRecorder()
	e := echo.New()
	ctx := e.NewContext(req, rec)

	if err := authController.Logout(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	cookie := sessionCookie(rec)
	if cookie == nil {
		t.Fatal("token cookie not set")
	}
	if cookie.Value != "none" {
		t.Fatalf("expected cleared cookie value none, got %q", cookie.Value)
	}
	if cookie.Expires.After(time.Now().Add(time.Minute)) {
		t.Fatal("cleared cookie should expire promptly")
	}
}

func TestMe_WithoutIdentity(t *testing.T) {
	authController, _ := newAuthController(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()
	e := echo.New()
	ctx := e.NewContext(req, rec)

	if err := authController.Me(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	authController, _ := newAuthController(t)

	req, rec := newJSONRequest(t, http.MethodPost, "/api/v1/auth/forgotpassword", map[string]string{
		"email": "nobody@example.com",
	})
	e := echo.New()
	ctx := e.NewContext(req, rec)

	if err := authController.ForgotPassword(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestResetPassword_InvalidToken(t *testing.T) {
	authController, _ := newAuthController(t)

	req, rec := newJSONRequest(t, http.MethodPut, "/api/v1/auth/resetpassword/bogus", map[string]string{
		"password": "newpassword",
	})
	e := echo.New()
	ctx := e.NewContext(req, rec)
	ctx.SetParamNames("resettoken")
	ctx.SetParamValues("bogus")

	if err := authController.ResetPassword(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}
