package repository

import "github.com/tu-usuario/contable-pro/internal/domain/entity"

// BankDetailRepository puerto de persistencia para datos bancarios (DIP).
type BankDetailRepository interface {
	Create(detail *entity.BankDetail) error
	GetByID(id string) (*entity.BankDetail, error)
	Update(detail *entity.BankDetail) error
	ListByClient(clientID string) ([]*entity.BankDetail, error)
	Delete(id string) error
}
