package repository

import "github.com/tu-usuario/contable-pro/internal/domain/entity"

// CustomerRepository puerto de persistencia para terceros clientes (DIP).
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByTaxID(clientID, taxID string) (*entity.Customer, error)
	Update(customer *entity.Customer) error
	// ListByClient filtra opcionalmente por término de búsqueda ya normalizado (ver pkg/textnorm).
	ListByClient(clientID, search string, limit, offset int) ([]*entity.Customer, error)
	Delete(id string) error
}

// VendorRepository puerto de persistencia para proveedores (DIP).
type VendorRepository interface {
	Create(vendor *entity.Vendor) error
	GetByID(id string) (*entity.Vendor, error)
	GetByTaxID(clientID, taxID string) (*entity.Vendor, error)
	Update(vendor *entity.Vendor) error
	ListByClient(clientID, search string, limit, offset int) ([]*entity.Vendor, error)
	Delete(id string) error
}
