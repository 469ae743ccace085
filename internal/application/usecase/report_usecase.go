package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/contable-pro/internal/application/dto"
	"github.com/tu-usuario/contable-pro/internal/domain"
	"github.com/tu-usuario/contable-pro/internal/domain/repository"
)

// ReportPDFGenerator puerto de generación del PDF del estado de resultados.
// La implementación (Maroto) vive en infrastructure/pdf.
type ReportPDFGenerator interface {
	GenerateProfitLossPDF(ctx context.Context, clientName string, report *dto.ProfitLossResponse) ([]byte, error)
}

// ReportUseCase arma el estado de resultados (P&L) de un account.
type ReportUseCase struct {
	entryRepo  repository.EntryRepository
	clientRepo repository.ClientRepository
	generator  ReportPDFGenerator
}

// NewReportUseCase construye el caso de uso de reportes.
func NewReportUseCase(entryRepo repository.EntryRepository, clientRepo repository.ClientRepository, generator ReportPDFGenerator) *ReportUseCase {
	return &ReportUseCase{entryRepo: entryRepo, clientRepo: clientRepo, generator: generator}
}

// ProfitLoss agrega los asientos del rango [from, to] por tipo y categoría y
// calcula ingresos, egresos y utilidad neta.
func (uc *ReportUseCase) ProfitLoss(clientID string, from, to time.Time) (*dto.ProfitLossResponse, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	lines, err := uc.entryRepo.ProfitLoss(clientID, from, to)
	if err != nil {
		return nil, err
	}
	resp := &dto.ProfitLossResponse{
		ClientID:     clientID,
		From:         from,
		To:           to,
		Lines:        make([]dto.ProfitLossLine, 0, len(lines)),
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.ProfitLossLine{
			Type:     string(l.Type),
			Category: l.Category,
			Total:    l.Total,
		})
		switch l.Category {
		case "income":
			resp.TotalIncome = resp.TotalIncome.Add(l.Total)
		case "expense":
			resp.TotalExpense = resp.TotalExpense.Add(l.Total)
		}
	}
	resp.NetProfit = resp.TotalIncome.Sub(resp.TotalExpense)
	return resp, nil
}

// ProfitLossPDF genera el estado de resultados como PDF descargable.
// Retorna (bytes, filename, error).
func (uc *ReportUseCase) ProfitLossPDF(ctx context.Context, clientID string, from, to time.Time) ([]byte, string, error) {
	report, err := uc.ProfitLoss(clientID, from, to)
	if err != nil {
		return nil, "", err
	}
	client, err := uc.clientRepo.GetByID(clientID)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: obtener account: %w", err)
	}
	if client == nil {
		return nil, "", domain.ErrNotFound
	}
	pdfBytes, err := uc.generator.GenerateProfitLossPDF(ctx, client.Name, report)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generación fallida: %w", err)
	}
	filename := fmt.Sprintf("estado_resultados_%s_%s.pdf", from.Format("20060102"), to.Format("20060102"))
	return pdfBytes, filename, nil
}
