package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/contable-pro/internal/application/dto"
	"github.com/tu-usuario/contable-pro/internal/application/usecase"
	"github.com/tu-usuario/contable-pro/internal/domain"
)

// BankHandler CRUD de datos bancarios del account del token.
type BankHandler struct {
	uc *usecase.BankUseCase
}

// NewBankHandler construye el handler de datos bancarios.
func NewBankHandler(uc *usecase.BankUseCase) *BankHandler {
	return &BankHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar dato bancario
// @Tags         bank-details
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBankDetailRequest  true  "bank_name, account_number, account_type, holder_name"
// @Success      201  {object}  dto.BankDetailResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/bank-details [post]
func (h *BankHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBankDetailRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.BankName == "" || in.AccountNumber == "" || in.HolderName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "bank_name, account_number y holder_name son requeridos"})
	}
	out, err := h.uc.Create(GetClientID(c), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar un dato bancario (parcial)
// @Tags         bank-details
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID del dato bancario"
// @Param        body  body  dto.UpdateBankDetailRequest  true  "campos opcionales"
// @Success      200  {object}  dto.BankDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bank-details/{id} [put]
func (h *BankHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBankDetailRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(GetClientID(c), c.Params("id"), in)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el dato bancario no existe"})
		}
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el dato bancario pertenece a otro account"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar datos bancarios del account del token
// @Tags         bank-details
// @Produce      json
// @Success      200  {array}  dto.BankDetailResponse
// @Router       /api/bank-details [get]
func (h *BankHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListByClient(GetClientID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar un dato bancario
// @Tags         bank-details
// @Produce      json
// @Param        id  path  string  true  "ID del dato bancario"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bank-details/{id} [delete]
func (h *BankHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetClientID(c), c.Params("id")); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el dato bancario no existe"})
		}
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el dato bancario pertenece a otro account"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
