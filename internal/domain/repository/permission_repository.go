package repository

import (
	"context"

	"github.com/tu-usuario/contable-pro/internal/domain/entity"
)

// PermissionRepository puerto de persistencia para los overrides de permisos.
// Lleva ctx porque lo consume el middleware de autorización en cada request.
// Los Get devuelven (nil, nil) cuando no existe registro: el registro es
// perezoso y su ausencia no es un error de infraestructura.
type PermissionRepository interface {
	GetUserOverrides(ctx context.Context, userID string) (*entity.UserPermission, error)
	// SaveUserOverrides reemplaza el registro completo (upsert, last write wins).
	SaveUserOverrides(ctx context.Context, perm *entity.UserPermission) error
	GetClientPermission(ctx context.Context, clientID string) (*entity.ClientPermission, error)
	SaveClientPermission(ctx context.Context, perm *entity.ClientPermission) error
}
