package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/contable-pro/internal/application/dto"
	"github.com/tu-usuario/contable-pro/internal/domain"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
	"github.com/tu-usuario/contable-pro/internal/domain/repository"
)

// Límites por defecto del plan básico al aprovisionar un account.
const (
	defaultMaxCompanies   = 1
	defaultMaxUsers       = 3
	defaultMaxInventories = 100
)

// ClientUseCase CRUD de accounts (clients) y su aprovisionamiento inicial.
type ClientUseCase struct {
	clientRepo   repository.ClientRepository
	permRepo     repository.PermissionRepository
	validityRepo repository.ValidityRepository
}

// NewClientUseCase construye el caso de uso de accounts.
func NewClientUseCase(clientRepo repository.ClientRepository, permRepo repository.PermissionRepository, validityRepo repository.ValidityRepository) *ClientUseCase {
	return &ClientUseCase{clientRepo: clientRepo, permRepo: permRepo, validityRepo: validityRepo}
}

// Create aprovisiona un account: el client, su registro de permisos con los
// límites del plan básico y una ventana de validez en unknown (sin fechas)
// hasta que master otorgue la primera extensión.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	existing, _ := uc.clientRepo.GetByTaxID(in.TaxID)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	client := &entity.Client{
		ID:        uuid.New().String(),
		Name:      in.Name,
		TaxID:     in.TaxID,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.clientRepo.Create(client); err != nil {
		return nil, err
	}
	perm := &entity.ClientPermission{
		ClientID:       client.ID,
		Overrides:      entity.NewOverrideSet(),
		MaxCompanies:   defaultMaxCompanies,
		MaxUsers:       defaultMaxUsers,
		MaxInventories: defaultMaxInventories,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.permRepo.SaveClientPermission(ctx, perm); err != nil {
		return nil, err
	}
	validity := &entity.AccountValidity{
		ClientID:  client.ID,
		Status:    entity.StatusUnknown,
		UpdatedAt: now,
	}
	if err := uc.validityRepo.Save(ctx, validity); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, client), nil
}

// GetByID devuelve un account o domain.ErrNotFound.
func (uc *ClientUseCase) GetByID(ctx context.Context, id string) (*dto.ClientResponse, error) {
	client, err := uc.clientRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(ctx, client), nil
}

// Update aplica cambios parciales a un account.
func (uc *ClientUseCase) Update(ctx context.Context, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.clientRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		client.Name = *in.Name
	}
	if in.Address != nil {
		client.Address = *in.Address
	}
	if in.Phone != nil {
		client.Phone = *in.Phone
	}
	if in.Email != nil {
		client.Email = *in.Email
	}
	if in.Status != nil {
		client.Status = *in.Status
	}
	client.UpdatedAt = time.Now()
	if err := uc.clientRepo.Update(client); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, client), nil
}

// List lista paginada de accounts (solo master).
func (uc *ClientUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ClientListResponse, error) {
	page.DefaultPage()
	clients, err := uc.clientRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		items = append(items, *uc.toResponse(ctx, c))
	}
	return &dto.ClientListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(items)},
	}, nil
}

// Delete elimina un account por id.
func (uc *ClientUseCase) Delete(id string) error {
	client, err := uc.clientRepo.GetByID(id)
	if err != nil {
		return err
	}
	if client == nil {
		return domain.ErrNotFound
	}
	return uc.clientRepo.Delete(id)
}

// toResponse arma la respuesta incluyendo los límites del plan. Si el registro
// de permisos no existe todavía, viajan los defaults del plan básico: este es
// el fallback que la app usa cuando GET /client-permissions responde 404.
func (uc *ClientUseCase) toResponse(ctx context.Context, c *entity.Client) *dto.ClientResponse {
	maxCompanies, maxUsers, maxInventories := defaultMaxCompanies, defaultMaxUsers, defaultMaxInventories
	if perm, err := uc.permRepo.GetClientPermission(ctx, c.ID); err == nil && perm != nil {
		maxCompanies, maxUsers, maxInventories = perm.MaxCompanies, perm.MaxUsers, perm.MaxInventories
	}
	return &dto.ClientResponse{
		ID:             c.ID,
		Name:           c.Name,
		TaxID:          c.TaxID,
		Address:        c.Address,
		Phone:          c.Phone,
		Email:          c.Email,
		Status:         c.Status,
		MaxCompanies:   maxCompanies,
		MaxUsers:       maxUsers,
		MaxInventories: maxInventories,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
