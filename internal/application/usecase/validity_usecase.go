package usecase

import (
	"context"
	"time"

	"github.com/tu-usuario/contable-pro/internal/application/dto"
	"github.com/tu-usuario/contable-pro/internal/domain"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
	"github.com/tu-usuario/contable-pro/internal/domain/repository"
)

// ValidityUseCase gestiona la ventana de suscripción de los accounts.
type ValidityUseCase struct {
	validityRepo repository.ValidityRepository
	clientRepo   repository.ClientRepository
	now          func() time.Time
}

// NewValidityUseCase construye el caso de uso de validez. El reloj es
// inyectable para poder fijar "hoy" en tests.
func NewValidityUseCase(validityRepo repository.ValidityRepository, clientRepo repository.ClientRepository) *ValidityUseCase {
	return &ValidityUseCase{validityRepo: validityRepo, clientRepo: clientRepo, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *ValidityUseCase) WithClock(now func() time.Time) *ValidityUseCase {
	uc.now = now
	return uc
}

// Get devuelve la ventana de validez con los derivados (isActive, daysLeft,
// expired) ya calculados. Sin registro => domain.ErrNotFound. Solo master
// puede leer un account ajeno (callerClientID vacío).
func (uc *ValidityUseCase) Get(ctx context.Context, callerClientID, clientID string) (*dto.ValidityResponse, error) {
	if callerClientID != "" && clientID != callerClientID {
		return nil, domain.ErrForbidden
	}
	v, err := uc.load(ctx, clientID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToValidityResponse(v, uc.now())
	return &resp, nil
}

// Disable apaga el account: solo cambia el status a disabled, las fechas de la
// ventana quedan intactas. Responde el registro actualizado.
func (uc *ValidityUseCase) Disable(ctx context.Context, clientID string) (*dto.ValidityResponse, error) {
	v, err := uc.load(ctx, clientID)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	v.Disable(now)
	if err := uc.validityRepo.Save(ctx, v); err != nil {
		return nil, err
	}
	resp := dto.ToValidityResponse(v, now)
	return &resp, nil
}

// Extend otorga una nueva ventana por duración (years/months/days desde
// startAt o desde now). Crea el registro si el account existe pero aún no
// tiene ventana. Duración inválida => domain.ErrInvalidInput.
func (uc *ValidityUseCase) Extend(ctx context.Context, clientID string, in dto.ExtendValidityRequest) (*dto.ValidityResponse, error) {
	v, err := uc.loadOrProvision(ctx, clientID)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	if err := v.Extend(in.Years, in.Months, in.Days, in.StartAt, now); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.validityRepo.Save(ctx, v); err != nil {
		return nil, err
	}
	resp := dto.ToValidityResponse(v, now)
	return &resp, nil
}

// SetExpiry fija una fecha de vencimiento absoluta traduciéndola a duración
// en días desde now, con piso de 1 día: una fecha pasada o igual a now otorga
// igualmente una ventana mínima de un día.
func (uc *ValidityUseCase) SetExpiry(ctx context.Context, clientID string, in dto.SetExpiryRequest) (*dto.ValidityResponse, error) {
	now := uc.now()
	days := entity.DaysUntil(in.ExpiresAt, now)
	return uc.Extend(ctx, clientID, dto.ExtendValidityRequest{Days: days})
}

// load carga el registro o falla con domain.ErrNotFound.
func (uc *ValidityUseCase) load(ctx context.Context, clientID string) (*entity.AccountValidity, error) {
	v, err := uc.validityRepo.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

// loadOrProvision carga el registro o crea uno en unknown si el account existe.
func (uc *ValidityUseCase) loadOrProvision(ctx context.Context, clientID string) (*entity.AccountValidity, error) {
	v, err := uc.validityRepo.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if v != nil {
		return v, nil
	}
	client, err := uc.clientRepo.GetByID(clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	return &entity.AccountValidity{
		ClientID:  clientID,
		Status:    entity.StatusUnknown,
		UpdatedAt: uc.now(),
	}, nil
}
