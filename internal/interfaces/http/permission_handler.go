package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/contable-pro/internal/application/dto"
	"github.com/tu-usuario/contable-pro/internal/application/usecase"
	"github.com/tu-usuario/contable-pro/internal/domain"
)

// PermissionHandler maneja overrides de permisos de usuarios y del account.
type PermissionHandler struct {
	uc *usecase.PermissionUseCase
}

// NewPermissionHandler construye el handler de permisos.
func NewPermissionHandler(uc *usecase.PermissionUseCase) *PermissionHandler {
	return &PermissionHandler{uc: uc}
}

// GetUserOverrides godoc
// @Summary      Overrides almacenados de un usuario
// @Tags         permissions
// @Produce      json
// @Param        userId  path  string  true  "ID del usuario"
// @Success      200  {object}  dto.PermissionMap
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/user-permissions/{userId} [get]
func (h *PermissionHandler) GetUserOverrides(c *fiber.Ctx) error {
	userID := c.Params("userId")
	out, err := h.uc.LoadUserOverrides(c.Context(), TenantScope(c), userID)
	if err != nil {
		if err == domain.ErrNotFound || err == domain.ErrUserNotFound {
			// Sin registro: la app móvil trata el 404 como "todo denegado".
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el usuario no tiene permisos configurados"})
		}
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el usuario pertenece a otro account"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// SaveUserOverrides godoc
// @Summary      Reemplazar overrides de un usuario
// @Tags         permissions
// @Accept       json
// @Produce      json
// @Param        userId  path  string             true  "ID del usuario"
// @Param        body    body  dto.PermissionMap  true  "mapa capability -> bool"
// @Success      200  {object}  dto.PermissionMap
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/user-permissions/{userId} [patch]
func (h *PermissionHandler) SaveUserOverrides(c *fiber.Ctx) error {
	userID := c.Params("userId")
	var in dto.PermissionMap
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SaveUserOverrides(c.Context(), TenantScope(c), userID, in)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: "el usuario no existe"})
		}
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el usuario pertenece a otro account"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetEffective godoc
// @Summary      Permisos efectivos de un usuario (overrides + bypass por rol)
// @Tags         permissions
// @Produce      json
// @Param        userId  path  string  true  "ID del usuario"
// @Success      200  {object}  dto.PermissionMap
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/user-permissions/{userId}/effective [get]
func (h *PermissionHandler) GetEffective(c *fiber.Ctx) error {
	// "me" resuelve al usuario del token (GET /user-permissions/me/effective).
	userID := c.Params("userId")
	if userID == "me" {
		userID = GetUserID(c)
	}
	out, err := h.uc.EffectiveForUser(c.Context(), TenantScope(c), userID)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: "el usuario no existe"})
		}
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el usuario pertenece a otro account"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetClientPermission godoc
// @Summary      Permisos y límites del account
// @Tags         permissions
// @Produce      json
// @Param        clientId  path  string  true  "ID del account"
// @Success      200  {object}  dto.ClientPermissionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/client-permissions/{clientId} [get]
func (h *PermissionHandler) GetClientPermission(c *fiber.Ctx) error {
	clientID := c.Params("clientId")
	out, err := h.uc.GetClientPermission(c.Context(), TenantScope(c), clientID)
	if err != nil {
		if err == domain.ErrNotFound {
			// Sin registro: la app usa los límites del plan que viajan en el Client.
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el account no tiene permisos configurados"})
		}
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo master puede leer permisos de otro account"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetMyClientPermission godoc
// @Summary      Permisos y límites del account del token
// @Tags         permissions
// @Produce      json
// @Success      200  {object}  dto.ClientPermissionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/my/permissions [get]
func (h *PermissionHandler) GetMyClientPermission(c *fiber.Ctx) error {
	out, err := h.uc.GetClientPermission(c.Context(), GetClientID(c), GetClientID(c))
	if err != nil {
		if err == domain.ErrNotFound {
			// Sin registro: la app usa los límites del plan que viajan en el Client.
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el account no tiene permisos configurados"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
