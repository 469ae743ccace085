package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/contable-pro/internal/application/dto"
	"github.com/tu-usuario/contable-pro/internal/application/usecase"
	"github.com/tu-usuario/contable-pro/internal/domain"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
)

// EntryHandler registro y consulta de asientos contables.
// La capability requerida para crear depende del tipo del asiento (viene en el
// body), por eso el chequeo se hace aquí y no con RequirePermission en la ruta.
type EntryHandler struct {
	uc      *usecase.EntryUseCase
	checker capabilityChecker
}

// NewEntryHandler construye el handler de asientos.
func NewEntryHandler(uc *usecase.EntryUseCase, checker capabilityChecker) *EntryHandler {
	return &EntryHandler{uc: uc, checker: checker}
}

// Create godoc
// @Summary      Registrar un asiento contable
// @Tags         entries
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEntryRequest  true  "type, category, date, amount"
// @Success      201  {object}  dto.EntryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/entries [post]
func (h *EntryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	capability, ok := entity.PrimaryCapabilityFor(entity.EntryType(in.Type))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo de asiento desconocido"})
	}
	allowed, err := h.checker.HasCapability(c.Context(), GetUserID(c), GetRole(c), capability)
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "PERMISSION_CHECK_FAILED", Message: "no se pudo verificar el permiso, intente más tarde"})
	}
	if !allowed {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "PERMISSION_DENIED", Message: "no tiene el permiso '" + string(capability) + "'"})
	}
	out, err := h.uc.Create(GetClientID(c), GetUserID(c), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo, categoría o monto inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener un asiento
// @Tags         entries
// @Produce      json
// @Param        id  path  string  true  "ID del asiento"
// @Success      200  {object}  dto.EntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/entries/{id} [get]
func (h *EntryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetClientID(c), c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el asiento no existe"})
		}
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el asiento pertenece a otro account"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar asientos (filtros por tipo y rango de fechas)
// @Tags         entries
// @Produce      json
// @Param        type    query  string  false  "sale|purchase|receipt|payment|journal"
// @Param        from    query  string  false  "RFC3339"
// @Param        to      query  string  false  "RFC3339"
// @Param        limit   query  int     false  "máx resultados (default 20)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {object}  dto.EntryListResponse
// @Router       /api/entries [get]
func (h *EntryHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de paginación inválidos"})
	}
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from/to deben ser fechas RFC3339"})
	}
	out, err := h.uc.ListByClient(GetClientID(c), c.Query("type"), from, to, page)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo de asiento desconocido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// parseDateRange lee from/to del query string. Defaults: último año hasta hoy.
func parseDateRange(c *fiber.Ctx) (from, to time.Time, err error) {
	now := time.Now()
	from = now.AddDate(-1, 0, 0)
	to = now
	if s := c.Query("from"); s != "" {
		from, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return
		}
	}
	if s := c.Query("to"); s != "" {
		to, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return
		}
	}
	return
}
