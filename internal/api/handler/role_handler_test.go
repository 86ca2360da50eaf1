package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/99minutos/ecom-api/internal/core/domain"
	"github.com/99minutos/ecom-api/internal/core/ports"
)

type stubRoleService struct {
	listFn   func(ctx context.Context) ([]*domain.Role, error)
	getFn    func(ctx context.Context, id string) (*domain.Role, error)
	createFn func(ctx context.Context, in ports.RoleInput) (*domain.Role, error)
	updateFn func(ctx context.Context, id string, in ports.RoleInput) (*domain.Role, error)
	toggleFn func(ctx context.Context, id string, current bool) (*domain.Role, error)
	deleteFn func(ctx context.Context, id string) (*domain.Role, error)
}

func (s *stubRoleService) List(ctx context.Context) ([]*domain.Role, error) { return s.listFn(ctx) }

func (s *stubRoleService) Get(ctx context.Context, id string) (*domain.Role, error) {
	return s.getFn(ctx, id)
}

func (s *stubRoleService) Create(ctx context.Context, in ports.RoleInput) (*domain.Role, error) {
	return s.createFn(ctx, in)
}

func (s *stubRoleService) Update(ctx context.Context, id string, in ports.RoleInput) (*domain.Role, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubRoleService) ToggleStatus(ctx context.Context, id string, current bool) (*domain.Role, error) {
	return s.toggleFn(ctx, id, current)
}

func (s *stubRoleService) Delete(ctx context.Context, id string) (*domain.Role, error) {
	return s.deleteFn(ctx, id)
}

func TestRoleHandler_List_Empty(t *testing.T) {
	e := newTestEcho()
	stub := &stubRoleService{
		listFn: func(context.Context) ([]*domain.Role, error) { return []*domain.Role{}, nil },
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/role", nil), rec)

	if err := NewRoleHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected [], got %s", rec.Body.String())
	}
}

func TestRoleHandler_List(t *testing.T) {
	e := newTestEcho()
	stub := &stubRoleService{
		listFn: func(context.Context) ([]*domain.Role, error) {
			return []*domain.Role{
				{ID: "1", Name: "Admin", Slug: "admin", Status: true},
				{ID: "2", Name: "Editor", Slug: "editor", Permissions: []string{"post:write"}},
			}, nil
		},
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/role", nil), rec)

	if err := NewRoleHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var roles []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &roles); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(roles) != 2 || roles[0]["slug"] != "admin" || roles[1]["slug"] != "editor" {
		t.Fatalf("unexpected roles: %+v", roles)
	}
	if perms, ok := roles[0]["permissions"].([]any); !ok || len(perms) != 0 {
		t.Fatalf("expected empty permissions array, got %v", roles[0]["permissions"])
	}
}

func TestRoleHandler_Get_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubRoleService{
		getFn: func(_ context.Context, id string) (*domain.Role, error) {
			if id != "missing" {
				t.Fatalf("unexpected id %q", id)
			}
			return nil, domain.ErrRoleNotFound
		},
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/role/missing", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	_ = NewRoleHandler(stub).Get(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if msg := decodeBody(t, rec)["message"]; msg != "Role data not found" {
		t.Fatalf("unexpected message: %v", msg)
	}
}

func TestRoleHandler_Create(t *testing.T) {
	e := newTestEcho()
	stub := &stubRoleService{
		createFn: func(_ context.Context, in ports.RoleInput) (*domain.Role, error) {
			if in.Name != "Admin Manager!!" || len(in.Permissions) != 1 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Role{ID: "1", Name: in.Name, Slug: domain.CreateSlug(in.Name), Permissions: in.Permissions, Status: true}, nil
		},
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/role", `{"name":"Admin Manager!!","permissions":["role:manage"]}`), rec)

	if err := NewRoleHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	resp := decodeBody(t, rec)
	if resp["message"] != "Role created successfully" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
	role := resp["role"].(map[string]any)
	if role["slug"] != "admin-manager" || role["status"] != true {
		t.Fatalf("unexpected role: %+v", role)
	}
}

func TestRoleHandler_Create_KeepsPermissionsAsGiven(t *testing.T) {
	e := newTestEcho()
	stub := &stubRoleService{
		createFn: func(_ context.Context, in ports.RoleInput) (*domain.Role, error) {
			if len(in.Permissions) != 2 || in.Permissions[0] != "" || in.Permissions[1] != "role:read" {
				t.Fatalf("unexpected permissions: %q", in.Permissions)
			}
			return &domain.Role{ID: "1", Name: in.Name, Slug: domain.CreateSlug(in.Name), Permissions: in.Permissions, Status: true}, nil
		},
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/role", `{"name":"Reader","permissions":["","role:read"]}`), rec)

	if err := NewRoleHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestRoleHandler_Create_Errors(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		err     error
		message string
	}{
		{"name required", `{"permissions":[]}`, domain.ErrRoleNameRequired, "Role name is required"},
		{"duplicate", `{"name":"Admin"}`, domain.ErrRoleExists, "Role already exists"},
		{"bad json", `{"name":`, nil, "Invalid payload"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEcho()
			stub := &stubRoleService{
				createFn: func(context.Context, ports.RoleInput) (*domain.Role, error) {
					if tc.err == nil {
						t.Fatalf("should not be called")
					}
					return nil, tc.err
				},
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(jsonRequest(http.MethodPost, "/role", tc.body), rec)

			_ = NewRoleHandler(stub).Create(c)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if msg := decodeBody(t, rec)["message"]; msg != tc.message {
				t.Fatalf("expected %q, got %v", tc.message, msg)
			}
		})
	}
}

func TestRoleHandler_Update_UnknownIDReturnsNull(t *testing.T) {
	e := newTestEcho()
	stub := &stubRoleService{
		updateFn: func(context.Context, string, ports.RoleInput) (*domain.Role, error) { return nil, nil },
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPatch, "/role/x", `{"name":"Editor"}`), rec)
	c.SetParamNames("id")
	c.SetParamValues("x")

	if err := NewRoleHandler(stub).Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["role"] != nil || resp["message"] != "Role updated successfully" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestRoleHandler_UpdateStatus_PassesBodyStatus(t *testing.T) {
	e := newTestEcho()
	stub := &stubRoleService{
		toggleFn: func(_ context.Context, id string, current bool) (*domain.Role, error) {
			if id != "r1" || !current {
				t.Fatalf("unexpected args: %s %v", id, current)
			}
			return &domain.Role{ID: id, Status: !current}, nil
		},
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPut, "/role/r1", `{"status":true}`), rec)
	c.SetParamNames("id")
	c.SetParamValues("r1")

	if err := NewRoleHandler(stub).UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeBody(t, rec)
	if resp["message"] != "Role status updated" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
	if role := resp["role"].(map[string]any); role["status"] != false {
		t.Fatalf("expected status false, got %v", role["status"])
	}
}

func TestRoleHandler_Delete(t *testing.T) {
	e := newTestEcho()
	stub := &stubRoleService{
		deleteFn: func(_ context.Context, id string) (*domain.Role, error) {
			return &domain.Role{ID: id, Name: "Admin", Slug: "admin"}, nil
		},
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/role/r1", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("r1")

	if err := NewRoleHandler(stub).Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeBody(t, rec)
	if resp["message"] != "Role deleted successfully" || resp["role"].(map[string]any)["id"] != "r1" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}
