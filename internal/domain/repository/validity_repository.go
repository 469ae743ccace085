package repository

import (
	"context"

	"github.com/tu-usuario/contable-pro/internal/domain/entity"
)

// ValidityRepository puerto de persistencia para la ventana de validez de accounts.
// Get devuelve (nil, nil) cuando el account no tiene registro de validez.
type ValidityRepository interface {
	Get(ctx context.Context, clientID string) (*entity.AccountValidity, error)
	// Save upsert del registro completo. El registro nunca se borra, solo se reemplaza.
	Save(ctx context.Context, v *entity.AccountValidity) error
}
