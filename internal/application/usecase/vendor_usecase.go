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

// VendorUseCase CRUD de proveedores de un account.
type VendorUseCase struct {
	vendorRepo repository.VendorRepository
}

// NewVendorUseCase construye el caso de uso de proveedores.
func NewVendorUseCase(vendorRepo repository.VendorRepository) *VendorUseCase {
	return &VendorUseCase{vendorRepo: vendorRepo}
}

// Create registra un proveedor. NIT duplicado dentro del account => ErrDuplicate.
func (uc *VendorUseCase) Create(clientID string, in dto.CreateVendorRequest) (*dto.VendorResponse, error) {
	if in.Name == "" || in.TaxID == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.vendorRepo.GetByTaxID(clientID, in.TaxID)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	vendor := &entity.Vendor{
		ID:        uuid.New().String(),
		ClientID:  clientID,
		Name:      in.Name,
		TaxID:     in.TaxID,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.vendorRepo.Create(vendor); err != nil {
		return nil, err
	}
	return toVendorResponse(vendor), nil
}

// GetByID devuelve un proveedor o domain.ErrNotFound. Verifica pertenencia
// al account.
func (uc *VendorUseCase) GetByID(clientID, id string) (*dto.VendorResponse, error) {
	vendor, err := uc.vendorRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, domain.ErrNotFound
	}
	if vendor.ClientID != clientID {
		return nil, domain.ErrForbidden
	}
	return toVendorResponse(vendor), nil
}

// ListByClient lista con búsqueda opcional por nombre normalizado.
func (uc *VendorUseCase) ListByClient(clientID, search string, page dto.PageRequest) (*dto.VendorListResponse, error) {
	page.DefaultPage()
	vendors, err := uc.vendorRepo.ListByClient(clientID, textnorm.ForSearch(search), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VendorResponse, 0, len(vendors))
	for _, v := range vendors {
		items = append(items, *toVendorResponse(v))
	}
	return &dto.VendorListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(items)},
	}, nil
}

// Delete elimina un proveedor del account.
func (uc *VendorUseCase) Delete(clientID, id string) error {
	vendor, err := uc.vendorRepo.GetByID(id)
	if err != nil {
		return err
	}
	if vendor == nil {
		return domain.ErrNotFound
	}
	if vendor.ClientID != clientID {
		return domain.ErrForbidden
	}
	return uc.vendorRepo.Delete(id)
}

func toVendorResponse(v *entity.Vendor) *dto.VendorResponse {
	return &dto.VendorResponse{
		ID:       v.ID,
		ClientID: v.ClientID,
		Name:     v.Name,
		TaxID:    v.TaxID,
		Email:    v.Email,
		Phone:    v.Phone,
	}
}
