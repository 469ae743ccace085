package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/contable-pro/internal/application/dto"
	"github.com/tu-usuario/contable-pro/internal/domain"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
	"github.com/tu-usuario/contable-pro/internal/domain/repository"
)

// BankUseCase CRUD de datos bancarios de un account.
type BankUseCase struct {
	bankRepo repository.BankDetailRepository
}

// NewBankUseCase construye el caso de uso de datos bancarios.
func NewBankUseCase(bankRepo repository.BankDetailRepository) *BankUseCase {
	return &BankUseCase{bankRepo: bankRepo}
}

// Create registra un dato bancario del account.
func (uc *BankUseCase) Create(clientID string, in dto.CreateBankDetailRequest) (*dto.BankDetailResponse, error) {
	now := time.Now()
	detail := &entity.BankDetail{
		ID:            uuid.New().String(),
		ClientID:      clientID,
		BankName:      in.BankName,
		AccountNumber: in.AccountNumber,
		AccountType:   in.AccountType,
		HolderName:    in.HolderName,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.bankRepo.Create(detail); err != nil {
		return nil, err
	}
	return toBankResponse(detail), nil
}

// Update aplica cambios parciales a un dato bancario del account.
func (uc *BankUseCase) Update(clientID, id string, in dto.UpdateBankDetailRequest) (*dto.BankDetailResponse, error) {
	detail, err := uc.bankRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, domain.ErrNotFound
	}
	if detail.ClientID != clientID {
		return nil, domain.ErrForbidden
	}
	if in.BankName != nil {
		detail.BankName = *in.BankName
	}
	if in.AccountNumber != nil {
		detail.AccountNumber = *in.AccountNumber
	}
	if in.AccountType != nil {
		detail.AccountType = *in.AccountType
	}
	if in.HolderName != nil {
		detail.HolderName = *in.HolderName
	}
	detail.UpdatedAt = time.Now()
	if err := uc.bankRepo.Update(detail); err != nil {
		return nil, err
	}
	return toBankResponse(detail), nil
}

// ListByClient todos los datos bancarios del account (no pagina: son pocos).
func (uc *BankUseCase) ListByClient(clientID string) ([]dto.BankDetailResponse, error) {
	details, err := uc.bankRepo.ListByClient(clientID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BankDetailResponse, 0, len(details))
	for _, d := range details {
		items = append(items, *toBankResponse(d))
	}
	return items, nil
}

// Delete elimina un dato bancario del account.
func (uc *BankUseCase) Delete(clientID, id string) error {
	detail, err := uc.bankRepo.GetByID(id)
	if err != nil {
		return err
	}
	if detail == nil {
		return domain.ErrNotFound
	}
	if detail.ClientID != clientID {
		return domain.ErrForbidden
	}
	return uc.bankRepo.Delete(id)
}

func toBankResponse(d *entity.BankDetail) *dto.BankDetailResponse {
	return &dto.BankDetailResponse{
		ID:            d.ID,
		ClientID:      d.ClientID,
		BankName:      d.BankName,
		AccountNumber: d.AccountNumber,
		AccountType:   d.AccountType,
		HolderName:    d.HolderName,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}
