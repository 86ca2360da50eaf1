package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/ecom-api/internal/core/domain"
	"github.com/99minutos/ecom-api/internal/core/ports"
)

type stubAuthService struct {
	loginFn    func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	registerFn func(ctx context.Context, name, email, password string) (*domain.User, error)
	logoutFn   func(ctx context.Context, access, refresh string)
	refreshFn  func(ctx context.Context, refresh string) (string, error)
	hashFn     func(password string) (string, error)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	return s.registerFn(ctx, name, email, password)
}

func (s *stubAuthService) Logout(ctx context.Context, access, refresh string) {
	if s.logoutFn != nil {
		s.logoutFn(ctx, access, refresh)
	}
}

func (s *stubAuthService) Refresh(ctx context.Context, refresh string) (string, error) {
	return s.refreshFn(ctx, refresh)
}

func (s *stubAuthService) ResolveSession(context.Context, string) (*domain.User, error) {
	return nil, nil
}

func (s *stubAuthService) HashPassword(password string) (string, error) {
	return s.hashFn(password)
}

var testCookies = CookieConfig{Secure: true, AccessMaxAge: 7 * 24 * time.Hour, RefreshMaxAge: 7 * 24 * time.Hour}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v (%s)", err, rec.Body.String())
	}
	return resp
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
			if email != "alice@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &ports.LoginResult{
				AccessToken:  "access123",
				RefreshToken: "refresh123",
				User: &domain.User{
					ID: "u1", Name: "Alice", Email: email, PasswordHash: "$2a$10$hash",
					Role: &domain.Role{ID: "r1", Name: "Admin", Slug: "admin", Status: true},
				},
			}, nil
		},
	}
	h := NewAuthHandler(stub, testCookies)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"secret"}`), rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	resp := decodeBody(t, rec)
	if resp["token"] != "access123" {
		t.Fatalf("unexpected token: %v", resp["token"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if _, leaked := user["password"]; leaked {
		t.Fatalf("password hash leaked: %+v", user)
	}
	if strings.Contains(rec.Body.String(), "$2a$") {
		t.Fatalf("hash present in body: %s", rec.Body.String())
	}
	role, ok := user["role"].(map[string]any)
	if !ok || role["slug"] != "admin" {
		t.Fatalf("expected populated role, got %+v", user["role"])
	}

	access := findCookie(rec, AccessCookieName)
	if access == nil || access.Value != "access123" {
		t.Fatalf("access cookie not set: %+v", access)
	}
	if !access.HttpOnly || !access.Secure || access.SameSite != http.SameSiteStrictMode || access.MaxAge != 7*24*3600 {
		t.Fatalf("unexpected access cookie attributes: %+v", access)
	}
	refresh := findCookie(rec, RefreshCookieName)
	if refresh == nil || refresh.Value != "refresh123" || refresh.Path != "/auth" {
		t.Fatalf("refresh cookie not set: %+v", refresh)
	}
}

func TestAuthHandler_Login_Errors(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		err     error
		message string
	}{
		{"missing password", `{"email":"alice@example.com"}`, nil, "All fields are required"},
		{"unknown email", `{"email":"x@example.com","password":"p"}`, domain.ErrUnknownEmail, "Invalid Email"},
		{"wrong password", `{"email":"alice@example.com","password":"p"}`, domain.ErrWrongPassword, "Wrong password"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEcho()
			stub := &stubAuthService{
				loginFn: func(context.Context, string, string) (*ports.LoginResult, error) {
					if tc.err == nil {
						t.Fatalf("should not be called")
					}
					return nil, tc.err
				},
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(jsonRequest(http.MethodPost, "/auth/login", tc.body), rec)

			_ = NewAuthHandler(stub, testCookies).Login(c)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if msg := decodeBody(t, rec)["message"]; msg != tc.message {
				t.Fatalf("expected %q, got %v", tc.message, msg)
			}
			if findCookie(rec, AccessCookieName) != nil {
				t.Fatalf("cookie must not be set on failure")
			}
		})
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/login", "not-json"), rec)

	_ = NewAuthHandler(&stubAuthService{}, testCookies).Login(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, name, email, password string) (*domain.User, error) {
			if name != "Alice" || email != "alice@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s %s", name, email, password)
			}
			return &domain.User{ID: "u1", Name: name, Email: email, PasswordHash: "$2a$10$hash"}, nil
		},
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/register", `{"name":"Alice","email":"alice@example.com","password":"secret"}`), rec)

	if err := NewAuthHandler(stub, testCookies).Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	resp := decodeBody(t, rec)
	if resp["message"] != "User created successfully" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["email"] != "alice@example.com" || user["role"] != nil {
		t.Fatalf("unexpected user payload: %+v", resp["user"])
	}
	if findCookie(rec, AccessCookieName) != nil {
		t.Fatalf("register must not log in")
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(context.Context, string, string, string) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/register", `{"name":"Bob","email":"b@example.com","password":"x"}`), rec)

	_ = NewAuthHandler(stub, testCookies).Register(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if msg := decodeBody(t, rec)["message"]; msg != "Email already exists" {
		t.Fatalf("unexpected message: %v", msg)
	}
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(context.Context, string, string, string) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/register", `{"name":"Bob","email":"","password":"x"}`), rec)

	_ = NewAuthHandler(stub, testCookies).Register(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if msg := decodeBody(t, rec)["message"]; msg != "All fields are required" {
		t.Fatalf("unexpected message: %v", msg)
	}
}

func TestAuthHandler_Logout_ClearsCookies(t *testing.T) {
	e := newTestEcho()
	var gotAccess, gotRefresh string
	stub := &stubAuthService{
		logoutFn: func(_ context.Context, access, refresh string) {
			gotAccess, gotRefresh = access, refresh
		},
	}
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookieName, Value: "a"})
	req.AddCookie(&http.Cookie{Name: RefreshCookieName, Value: "r"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := NewAuthHandler(stub, testCookies).Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotAccess != "a" || gotRefresh != "r" {
		t.Fatalf("tokens not forwarded: %q %q", gotAccess, gotRefresh)
	}
	if msg := decodeBody(t, rec)["message"]; msg != "Logout successfully" {
		t.Fatalf("unexpected message: %v", msg)
	}
	for _, name := range []string{AccessCookieName, RefreshCookieName} {
		ck := findCookie(rec, name)
		if ck == nil || ck.Value != "" || ck.MaxAge >= 0 {
			t.Fatalf("%s not cleared: %+v", name, ck)
		}
	}
}

func TestAuthHandler_Logout_WithoutSession(t *testing.T) {
	e := newTestEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/auth/logout", nil), rec)

	if err := NewAuthHandler(&stubAuthService{}, testCookies).Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Hash(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		hashFn: func(password string) (string, error) {
			if password != "secret" {
				t.Fatalf("unexpected password %q", password)
			}
			return "$2a$10$abc", nil
		},
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/hash", `{"password":"secret"}`), rec)

	if err := NewAuthHandler(stub, testCookies).Hash(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if v := decodeBody(t, rec)["hashPass"]; v != "$2a$10$abc" {
		t.Fatalf("unexpected hashPass: %v", v)
	}
}

func TestAuthHandler_Hash_TooLong(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		hashFn: func(string) (string, error) { return "", domain.ErrPasswordTooLong },
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/hash", `{"password":"x"}`), rec)

	_ = NewAuthHandler(stub, testCookies).Hash(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if msg := decodeBody(t, rec)["message"]; msg != "Password is too long" {
		t.Fatalf("unexpected message: %v", msg)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{}, testCookies)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/auth/me", nil), rec)
	SetCurrentUser(c, &domain.User{ID: "u1", Email: "alice@example.com", PasswordHash: "secret-hash"})

	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if strings.Contains(rec.Body.String(), "secret-hash") {
		t.Fatalf("hash leaked: %s", rec.Body.String())
	}
	if email := decodeBody(t, rec)["email"]; email != "alice@example.com" {
		t.Fatalf("unexpected email: %v", email)
	}

	// Valid token, account gone.
	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/auth/me", nil), rec)
	SetCurrentUser(c, nil)
	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if strings.TrimSpace(rec.Body.String()) != "null" {
		t.Fatalf("expected null, got %s", rec.Body.String())
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		refreshFn: func(_ context.Context, refresh string) (string, error) {
			if refresh == "" {
				return "", domain.ErrUnauthorized
			}
			return "new-access", nil
		},
	}
	h := NewAuthHandler(stub, testCookies)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: RefreshCookieName, Value: "r"})
	rec := httptest.NewRecorder()
	if err := h.Refresh(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if tok := decodeBody(t, rec)["token"]; tok != "new-access" {
		t.Fatalf("unexpected token: %v", tok)
	}
	if ck := findCookie(rec, AccessCookieName); ck == nil || ck.Value != "new-access" {
		t.Fatalf("access cookie not refreshed: %+v", ck)
	}

	rec = httptest.NewRecorder()
	_ = h.Refresh(e.NewContext(httptest.NewRequest(http.MethodPost, "/auth/refresh", nil), rec))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if msg := decodeBody(t, rec)["message"]; msg != "Unauthorized" {
		t.Fatalf("unexpected message: %v", msg)
	}
}
