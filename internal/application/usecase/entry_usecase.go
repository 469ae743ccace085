package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/contable-pro/internal/application/dto"
	"github.com/tu-usuario/contable-pro/internal/domain"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
	"github.com/tu-usuario/contable-pro/internal/domain/repository"
)

// EntryUseCase registro y consulta de asientos contables.
// La autorización por capability (canCreateSaleEntries, ...) la resuelve el
// middleware antes de llegar aquí; este caso de uso solo valida el dominio.
type EntryUseCase struct {
	entryRepo repository.EntryRepository
}

// NewEntryUseCase construye el caso de uso de asientos.
func NewEntryUseCase(entryRepo repository.EntryRepository) *EntryUseCase {
	return &EntryUseCase{entryRepo: entryRepo}
}

// Create registra un asiento del tipo dado a nombre del usuario creador.
func (uc *EntryUseCase) Create(clientID, userID string, in dto.CreateEntryRequest) (*dto.EntryResponse, error) {
	t := entity.EntryType(in.Type)
	if !entity.ValidEntryType(t) {
		return nil, domain.ErrInvalidInput
	}
	if in.Category != entity.CategoryIncome && in.Category != entity.CategoryExpense {
		return nil, domain.ErrInvalidInput
	}
	if in.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	e := &entity.LedgerEntry{
		ID:          uuid.New().String(),
		ClientID:    clientID,
		Type:        t,
		Category:    in.Category,
		Date:        in.Date,
		Description: in.Description,
		Amount:      in.Amount,
		PartyID:     in.PartyID,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.entryRepo.Create(e); err != nil {
		return nil, err
	}
	return toEntryResponse(e), nil
}

// GetByID devuelve un asiento o domain.ErrNotFound. Verifica pertenencia al account.
func (uc *EntryUseCase) GetByID(clientID, id string) (*dto.EntryResponse, error) {
	e, err := uc.entryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	if e.ClientID != clientID {
		return nil, domain.ErrForbidden
	}
	return toEntryResponse(e), nil
}

// ListByClient lista asientos filtrando por tipo (opcional) y rango de fechas.
func (uc *EntryUseCase) ListByClient(clientID string, entryType string, from, to time.Time, page dto.PageRequest) (*dto.EntryListResponse, error) {
	t := entity.EntryType(entryType)
	if entryType != "" && !entity.ValidEntryType(t) {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	entries, err := uc.entryRepo.ListByClient(clientID, t, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, *toEntryResponse(e))
	}
	return &dto.EntryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(items)},
	}, nil
}

func toEntryResponse(e *entity.LedgerEntry) *dto.EntryResponse {
	return &dto.EntryResponse{
		ID:          e.ID,
		ClientID:    e.ClientID,
		Type:        string(e.Type),
		Category:    e.Category,
		Date:        e.Date,
		Description: e.Description,
		Amount:      e.Amount,
		PartyID:     e.PartyID,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
	}
}
