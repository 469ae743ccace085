package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/contable-pro/internal/application/dto"
	"github.com/tu-usuario/contable-pro/internal/domain"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
	"github.com/tu-usuario/contable-pro/internal/domain/repository"
	"github.com/tu-usuario/contable-pro/pkg/textnorm"
)

// CustomerUseCase CRUD de terceros clientes de un account.
type CustomerUseCase struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso de terceros clientes.
func NewCustomerUseCase(customerRepo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{customerRepo: customerRepo}
}

// Create registra un tercero cliente. NIT duplicado dentro del account => ErrDuplicate.
func (uc *CustomerUseCase) Create(clientID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" || in.TaxID == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.customerRepo.GetByTaxID(clientID, in.TaxID)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		ClientID:  clientID,
		Name:      in.Name,
		TaxID:     in.TaxID,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID devuelve un tercero cliente o domain.ErrNotFound. Verifica
// pertenencia al account.
func (uc *CustomerUseCase) GetByID(clientID, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.ClientID != clientID {
		return nil, domain.ErrForbidden
	}
	return toCustomerResponse(customer), nil
}

// ListByClient lista con búsqueda opcional por nombre. El término se normaliza
// (minúsculas, sin acentos) para que "Pérez" y "perez" encuentren lo mismo.
func (uc *CustomerUseCase) ListByClient(clientID, search string, page dto.PageRequest) (*dto.CustomerListResponse, error) {
	page.DefaultPage()
	customers, err := uc.customerRepo.ListByClient(clientID, textnorm.ForSearch(search), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		items = append(items, *toCustomerResponse(c))
	}
	return &dto.CustomerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(items)},
	}, nil
}

// Delete elimina un tercero cliente del account.
func (uc *CustomerUseCase) Delete(clientID, id string) error {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	if customer.ClientID != clientID {
		return domain.ErrForbidden
	}
	return uc.customerRepo.Delete(id)
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:       c.ID,
		ClientID: c.ClientID,
		Name:     c.Name,
		TaxID:    c.TaxID,
		Email:    c.Email,
		Phone:    c.Phone,
	}
}
