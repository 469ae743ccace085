package repository

import (
	"time"

	"github.com/tu-usuario/contable-pro/internal/domain/entity"
)

// EntryRepository puerto de persistencia para asientos contables (DIP).
type EntryRepository interface {
	Create(e *entity.LedgerEntry) error
	GetByID(id string) (*entity.LedgerEntry, error)
	ListByClient(clientID string, entryType entity.EntryType, from, to time.Time, limit, offset int) ([]*entity.LedgerEntry, error)
	// ProfitLoss agrega totales por tipo de asiento dentro del rango [from, to].
	ProfitLoss(clientID string, from, to time.Time) ([]entity.ProfitLossLine, error)
}
