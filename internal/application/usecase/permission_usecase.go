package usecase

import (
	"context"
	"time"

	"github.com/tu-usuario/contable-pro/internal/application/dto"
	"github.com/tu-usuario/contable-pro/internal/domain"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
	"github.com/tu-usuario/contable-pro/internal/domain/repository"
)

// PermissionUseCase resuelve y persiste los overrides de permisos.
// El registro de overrides es perezoso: su ausencia se reporta como
// domain.ErrNotFound y es el consumidor quien decide el default (todo false).
type PermissionUseCase struct {
	permRepo repository.PermissionRepository
	userRepo repository.UserRepository
}

// NewPermissionUseCase construye el caso de uso de permisos.
func NewPermissionUseCase(permRepo repository.PermissionRepository, userRepo repository.UserRepository) *PermissionUseCase {
	return &PermissionUseCase{permRepo: permRepo, userRepo: userRepo}
}

// requireSameTenant verifica que el usuario objetivo pertenezca al account
// del solicitante. callerClientID vacío = sin restricción (master).
func (uc *PermissionUseCase) requireSameTenant(callerClientID, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if callerClientID != "" && user.ClientID != callerClientID {
		return nil, domain.ErrForbidden
	}
	return user, nil
}

// LoadUserOverrides devuelve el mapa de overrides almacenado de un usuario.
// Sin registro => domain.ErrNotFound (el handler lo traduce a 404 y la app
// móvil lo interpreta como "todo denegado"). El usuario objetivo debe
// pertenecer al account del solicitante.
func (uc *PermissionUseCase) LoadUserOverrides(ctx context.Context, callerClientID, userID string) (dto.PermissionMap, error) {
	if _, err := uc.requireSameTenant(callerClientID, userID); err != nil {
		return nil, err
	}
	perm, err := uc.permRepo.GetUserOverrides(ctx, userID)
	if err != nil {
		return nil, err
	}
	if perm == nil {
		return nil, domain.ErrNotFound
	}
	s := perm.Overrides.Clone()
	s.Normalize()
	return dto.FromOverrideSet(s), nil
}

// SaveUserOverrides reemplaza el set completo de un usuario (last write wins).
// El set se sanitiza antes de persistir: claves desconocidas fuera, las 14
// definidas, y las ocultas (email/whatsapp de factura) forzadas a false.
func (uc *PermissionUseCase) SaveUserOverrides(ctx context.Context, callerClientID, userID string, in dto.PermissionMap) (dto.PermissionMap, error) {
	if _, err := uc.requireSameTenant(callerClientID, userID); err != nil {
		return nil, err
	}
	now := time.Now()
	perm := &entity.UserPermission{
		UserID:    userID,
		Overrides: in.ToOverrideSet().Sanitized(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.permRepo.SaveUserOverrides(ctx, perm); err != nil {
		return nil, err
	}
	return dto.FromOverrideSet(perm.Overrides), nil
}

// EffectiveForUser calcula el mapa efectivo completo de un usuario: bypass
// total para roles no restringidos, overrides almacenados (o todo false si no
// hay registro) para user/admin/manager.
func (uc *PermissionUseCase) EffectiveForUser(ctx context.Context, callerClientID, userID string) (dto.PermissionMap, error) {
	user, err := uc.requireSameTenant(callerClientID, userID)
	if err != nil {
		return nil, err
	}
	role := entity.NormalizeRole(user.Role)
	var overrides entity.OverrideSet // nil => todo false
	if role.Constrained() {
		perm, err := uc.permRepo.GetUserOverrides(ctx, userID)
		if err != nil {
			return nil, err
		}
		if perm != nil {
			overrides = perm.Overrides
		}
	}
	return dto.EffectiveFromRole(role, overrides), nil
}

// HasCapability evalúa un permiso puntual para el sujeto del request. El rol
// viene del token ya validado, así el bypass no toca la DB.
func (uc *PermissionUseCase) HasCapability(ctx context.Context, userID, rawRole string, c entity.Capability) (bool, error) {
	role := entity.NormalizeRole(rawRole)
	if !role.Constrained() {
		return true, nil
	}
	perm, err := uc.permRepo.GetUserOverrides(ctx, userID)
	if err != nil {
		return false, err
	}
	if perm == nil {
		return false, nil
	}
	return perm.Overrides.Effective(role, c), nil
}

// GetClientPermission devuelve permisos y límites a nivel account.
// Sin registro => domain.ErrNotFound; el handler responde 404 y la app usa
// los límites del plan que viajan en el Client. Solo master puede leer un
// account ajeno (callerClientID vacío).
func (uc *PermissionUseCase) GetClientPermission(ctx context.Context, callerClientID, clientID string) (*dto.ClientPermissionResponse, error) {
	if callerClientID != "" && clientID != callerClientID {
		return nil, domain.ErrForbidden
	}
	perm, err := uc.permRepo.GetClientPermission(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if perm == nil {
		return nil, domain.ErrNotFound
	}
	s := perm.Overrides.Clone()
	s.Normalize()
	return &dto.ClientPermissionResponse{
		ClientID:       perm.ClientID,
		Permissions:    dto.FromOverrideSet(s),
		MaxCompanies:   perm.MaxCompanies,
		MaxUsers:       perm.MaxUsers,
		MaxInventories: perm.MaxInventories,
	}, nil
}

// SaveClientPermission reemplaza permisos y límites del account (upsert).
func (uc *PermissionUseCase) SaveClientPermission(ctx context.Context, clientID string, permissions dto.PermissionMap, maxCompanies, maxUsers, maxInventories int) (*dto.ClientPermissionResponse, error) {
	now := time.Now()
	perm := &entity.ClientPermission{
		ClientID:       clientID,
		Overrides:      permissions.ToOverrideSet().Sanitized(),
		MaxCompanies:   maxCompanies,
		MaxUsers:       maxUsers,
		MaxInventories: maxInventories,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.permRepo.SaveClientPermission(ctx, perm); err != nil {
		return nil, err
	}
	return &dto.ClientPermissionResponse{
		ClientID:       perm.ClientID,
		Permissions:    dto.FromOverrideSet(perm.Overrides),
		MaxCompanies:   perm.MaxCompanies,
		MaxUsers:       perm.MaxUsers,
		MaxInventories: perm.MaxInventories,
	}, nil
}
