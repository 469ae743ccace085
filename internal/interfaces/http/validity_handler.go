package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/contable-pro/internal/application/dto"
	"github.com/tu-usuario/contable-pro/internal/application/usecase"
	"github.com/tu-usuario/contable-pro/internal/domain"
)

// ValidityHandler maneja la ventana de validez de los accounts.
type ValidityHandler struct {
	uc *usecase.ValidityUseCase
}

// NewValidityHandler construye el handler de validez.
func NewValidityHandler(uc *usecase.ValidityUseCase) *ValidityHandler {
	return &ValidityHandler{uc: uc}
}

// Get godoc
// @Summary      Ventana de validez del account
// @Tags         validity
// @Produce      json
// @Param        clientId  path  string  true  "ID del account"
// @Success      200  {object}  dto.ValidityResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/account/{clientId}/validity [get]
func (h *ValidityHandler) Get(c *fiber.Ctx) error {
	clientID := c.Params("clientId")
	out, err := h.uc.Get(c.Context(), TenantScope(c), clientID)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el account no tiene registro de validez"})
		}
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo master puede consultar la validez de otro account"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Extend godoc
// @Summary      Otorgar una nueva ventana de validez por duración
// @Tags         validity
// @Accept       json
// @Produce      json
// @Param        clientId  path  string                      true  "ID del account"
// @Param        body      body  dto.ExtendValidityRequest  true  "years, months, days, startAt opcional"
// @Success      200  {object}  dto.ValidityResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/account/{clientId}/validity [put]
func (h *ValidityHandler) Extend(c *fiber.Ctx) error {
	clientID := c.Params("clientId")
	var in dto.ExtendValidityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Extend(c.Context(), clientID, in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "la duración debe ser de al menos 1 día"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el account no existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// SetExpiry godoc
// @Summary      Fijar fecha de vencimiento absoluta
// @Tags         validity
// @Accept       json
// @Produce      json
// @Param        clientId  path  string                true  "ID del account"
// @Param        body      body  dto.SetExpiryRequest  true  "expiresAt"
// @Success      200  {object}  dto.ValidityResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/account/{clientId}/validity/expiry [put]
func (h *ValidityHandler) SetExpiry(c *fiber.Ctx) error {
	clientID := c.Params("clientId")
	var in dto.SetExpiryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ExpiresAt.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "expiresAt es requerido"})
	}
	out, err := h.uc.SetExpiry(c.Context(), clientID, in)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el account no existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Disable godoc
// @Summary      Deshabilitar el account (solo cambia el status)
// @Tags         validity
// @Produce      json
// @Param        clientId  path  string  true  "ID del account"
// @Success      200  {object}  dto.ValidityResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/account/{clientId}/validity/disable [patch]
func (h *ValidityHandler) Disable(c *fiber.Ctx) error {
	clientID := c.Params("clientId")
	out, err := h.uc.Disable(c.Context(), clientID)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el account no tiene registro de validez"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
