package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/contable-pro/internal/application/dto"
	"github.com/tu-usuario/contable-pro/internal/application/usecase"
	"github.com/tu-usuario/contable-pro/internal/domain"
)

// ReportHandler estado de resultados (JSON y PDF).
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// ProfitLoss godoc
// @Summary      Estado de resultados del rango [from, to]
// @Tags         reports
// @Produce      json
// @Param        from  query  string  false  "RFC3339"
// @Param        to    query  string  false  "RFC3339"
// @Success      200  {object}  dto.ProfitLossResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/profit-loss [get]
func (h *ReportHandler) ProfitLoss(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from/to deben ser fechas RFC3339"})
	}
	out, err := h.uc.ProfitLoss(GetClientID(c), from, to)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el rango de fechas es inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ProfitLossPDF godoc
// @Summary      Estado de resultados en PDF descargable
// @Tags         reports
// @Produce      application/pdf
// @Param        from  query  string  false  "RFC3339"
// @Param        to    query  string  false  "RFC3339"
// @Success      200  {file}  file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/profit-loss/pdf [get]
func (h *ReportHandler) ProfitLossPDF(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from/to deben ser fechas RFC3339"})
	}
	pdfBytes, filename, err := h.uc.ProfitLossPDF(c.Context(), GetClientID(c), from, to)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el rango de fechas es inválido"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el account no existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
