package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/ecom-api/internal/api/metrics"
	"github.com/99minutos/ecom-api/internal/core/domain"
	"github.com/99minutos/ecom-api/internal/core/ports"
)

// RoleHandler handles HTTP requests for role management.
type RoleHandler struct {
	service ports.RoleService
}

func NewRoleHandler(service ports.RoleService) *RoleHandler {
	return &RoleHandler{service: service}
}

// List returns every role, oldest first. An empty store yields [].
//
// @Summary      List roles
// @Tags         role
// @Produce      json
// @Success      200  {array}   roleResponse
// @Failure      400  {object}  messageResponse
// @Router       /role [get]
func (h *RoleHandler) List(c echo.Context) error {
	roles, err := h.service.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toRoleResponses(roles))
}

// Get returns a single role.
//
// @Summary      Get role
// @Tags         role
// @Produce      json
// @Param        id   path      string  true  "Role id"
// @Success      200  {object}  roleResponse
// @Failure      404  {object}  messageResponse
// @Router       /role/{id} [get]
func (h *RoleHandler) Get(c echo.Context) error {
	role, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toRoleResponse(role))
}

// Create stores a new role with a slug derived from its name.
//
// @Summary      Create role
// @Tags         role
// @Accept       json
// @Produce      json
// @Param        body  body      roleRequest  true  "Role"
// @Success      201   {object}  roleMutationResponse
// @Failure      400   {object}  messageResponse
// @Router       /role [post]
func (h *RoleHandler) Create(c echo.Context) error {
	req, err := bindRole(c)
	if err != nil {
		return respondError(c, err)
	}

	role, err := h.service.Create(c.Request().Context(), toRoleInput(req))
	if err != nil {
		return respondError(c, err)
	}
	metrics.RoleMutationsTotal.WithLabelValues("create").Inc()

	return c.JSON(http.StatusCreated, roleMutationResponse{
		Role:    toRoleResponse(role),
		Message: "Role created successfully",
	})
}

// Update replaces name, slug and permissions. role is null for an unknown id.
//
// @Summary      Update role
// @Tags         role
// @Accept       json
// @Produce      json
// @Param        id    path      string       true  "Role id"
// @Param        body  body      roleRequest  true  "Role"
// @Success      200   {object}  roleMutationResponse
// @Failure      400   {object}  messageResponse
// @Router       /role/{id} [patch]
func (h *RoleHandler) Update(c echo.Context) error {
	req, err := bindRole(c)
	if err != nil {
		return respondError(c, err)
	}

	role, err := h.service.Update(c.Request().Context(), c.Param("id"), toRoleInput(req))
	if err != nil {
		return respondError(c, err)
	}
	if role != nil {
		metrics.RoleMutationsTotal.WithLabelValues("update").Inc()
	}

	return c.JSON(http.StatusOK, roleMutationResponse{
		Role:    toRoleResponse(role),
		Message: "Role updated successfully",
	})
}

// UpdateStatus stores the negation of the status sent in the body.
//
// @Summary      Set role status
// @Description  Stores !status. Send the current status to flip it.
// @Tags         role
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Role id"
// @Param        body  body      roleStatusRequest  true  "Current status"
// @Success      200   {object}  roleMutationResponse
// @Failure      400   {object}  messageResponse
// @Router       /role/{id} [put]
func (h *RoleHandler) UpdateStatus(c echo.Context) error {
	var req roleStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid payload"})
	}

	role, err := h.service.ToggleStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return respondError(c, err)
	}
	if role != nil {
		metrics.RoleMutationsTotal.WithLabelValues("status").Inc()
	}

	return c.JSON(http.StatusOK, roleMutationResponse{
		Role:    toRoleResponse(role),
		Message: "Role status updated",
	})
}

// Delete removes a role and returns it, or null when nothing matched.
//
// @Summary      Delete role
// @Tags         role
// @Produce      json
// @Param        id   path      string  true  "Role id"
// @Success      200  {object}  roleMutationResponse
// @Router       /role/{id} [delete]
func (h *RoleHandler) Delete(c echo.Context) error {
	role, err := h.service.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	if role != nil {
		metrics.RoleMutationsTotal.WithLabelValues("delete").Inc()
	}

	return c.JSON(http.StatusOK, roleMutationResponse{
		Role:    toRoleResponse(role),
		Message: "Role deleted successfully",
	})
}

func bindRole(c echo.Context) (roleRequest, error) {
	var req roleRequest
	if err := c.Bind(&req); err != nil {
		return req, domain.NewValidationError("Invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return req, err
	}
	return req, nil
}
