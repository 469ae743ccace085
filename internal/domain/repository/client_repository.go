package repository

import "github.com/tu-usuario/contable-pro/internal/domain/entity"

// ClientRepository define el puerto de persistencia para Client (DIP).
// La implementación vive en infrastructure.
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	GetByTaxID(taxID string) (*entity.Client, error)
	Update(client *entity.Client) error
	List(limit, offset int) ([]*entity.Client, error)
	Delete(id string) error
}
