package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
	"github.com/tu-usuario/contable-pro/internal/domain/repository"
)

var _ repository.PermissionRepository = (*PermissionRepo)(nil)

// PermissionRepo implementación del puerto PermissionRepository sobre PostgreSQL.
// Cada registro es una fila con 14 columnas boolean; el guardado es un upsert
// de la fila completa (reemplazo total, nunca parche por clave).
type PermissionRepo struct {
	pool *pgxpool.Pool
}

// NewPermissionRepository construye el adaptador de persistencia de permisos.
func NewPermissionRepository(pool *pgxpool.Pool) *PermissionRepo {
	return &PermissionRepo{pool: pool}
}

// capColumns columnas boolean en el mismo orden que entity.AllCapabilities.
const capColumns = `can_create_sale_entries, can_create_purchase_entries, can_create_receipt_entries,
		can_create_payment_entries, can_create_journal_entries, can_create_inventory, can_show_inventory,
		can_create_customers, can_show_customers, can_create_vendors, can_show_vendors, can_show_entries,
		can_send_invoice_email, can_send_invoice_whatsapp`

// capValues devuelve los 14 booleans en el orden de entity.AllCapabilities.
func capValues(s entity.OverrideSet) []any {
	out := make([]any, 0, len(entity.AllCapabilities))
	for _, c := range entity.AllCapabilities {
		out = append(out, s[c])
	}
	return out
}

// capDests destinos de Scan para las 14 columnas, en el mismo orden.
func capDests(flags *[14]bool) []any {
	out := make([]any, 0, len(flags))
	for i := range flags {
		out = append(out, &flags[i])
	}
	return out
}

// toOverrideSet arma el OverrideSet desde los 14 booleans escaneados.
func toOverrideSet(flags [14]bool) entity.OverrideSet {
	s := entity.NewOverrideSet()
	for i, c := range entity.AllCapabilities {
		s[c] = flags[i]
	}
	return s
}

// GetUserOverrides obtiene el registro de overrides de un usuario. (nil, nil) si no existe.
func (r *PermissionRepo) GetUserOverrides(ctx context.Context, userID string) (*entity.UserPermission, error) {
	query := `SELECT user_id, ` + capColumns + `, created_at, updated_at FROM user_permissions WHERE user_id = $1`
	var (
		p     entity.UserPermission
		flags [14]bool
	)
	dests := append([]any{&p.UserID}, capDests(&flags)...)
	dests = append(dests, &p.CreatedAt, &p.UpdatedAt)
	err := r.pool.QueryRow(ctx, query, userID).Scan(dests...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user permissions: %w", err)
	}
	p.Overrides = toOverrideSet(flags)
	return &p, nil
}

// SaveUserOverrides upsert del registro completo de un usuario.
func (r *PermissionRepo) SaveUserOverrides(ctx context.Context, perm *entity.UserPermission) error {
	query := `
		INSERT INTO user_permissions (user_id, ` + capColumns + `, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (user_id) DO UPDATE SET
			can_create_sale_entries = EXCLUDED.can_create_sale_entries,
			can_create_purchase_entries = EXCLUDED.can_create_purchase_entries,
			can_create_receipt_entries = EXCLUDED.can_create_receipt_entries,
			can_create_payment_entries = EXCLUDED.can_create_payment_entries,
			can_create_journal_entries = EXCLUDED.can_create_journal_entries,
			can_create_inventory = EXCLUDED.can_create_inventory,
			can_show_inventory = EXCLUDED.can_show_inventory,
			can_create_customers = EXCLUDED.can_create_customers,
			can_show_customers = EXCLUDED.can_show_customers,
			can_create_vendors = EXCLUDED.can_create_vendors,
			can_show_vendors = EXCLUDED.can_show_vendors,
			can_show_entries = EXCLUDED.can_show_entries,
			can_send_invoice_email = EXCLUDED.can_send_invoice_email,
			can_send_invoice_whatsapp = EXCLUDED.can_send_invoice_whatsapp,
			updated_at = EXCLUDED.updated_at`
	args := append([]any{perm.UserID}, capValues(perm.Overrides)...)
	args = append(args, perm.CreatedAt, perm.UpdatedAt)
	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert user permissions: %w", err)
	}
	return nil
}

// GetClientPermission obtiene permisos y límites a nivel account. (nil, nil) si no existe.
func (r *PermissionRepo) GetClientPermission(ctx context.Context, clientID string) (*entity.ClientPermission, error) {
	query := `
		SELECT client_id, ` + capColumns + `, max_companies, max_users, max_inventories, created_at, updated_at
		FROM client_permissions WHERE client_id = $1`
	var (
		p     entity.ClientPermission
		flags [14]bool
	)
	dests := append([]any{&p.ClientID}, capDests(&flags)...)
	dests = append(dests, &p.MaxCompanies, &p.MaxUsers, &p.MaxInventories, &p.CreatedAt, &p.UpdatedAt)
	err := r.pool.QueryRow(ctx, query, clientID).Scan(dests...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client permissions: %w", err)
	}
	p.Overrides = toOverrideSet(flags)
	return &p, nil
}

// SaveClientPermission upsert del registro completo de un client.
func (r *PermissionRepo) SaveClientPermission(ctx context.Context, perm *entity.ClientPermission) error {
	query := `
		INSERT INTO client_permissions (client_id, ` + capColumns + `, max_companies, max_users, max_inventories, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		ON CONFLICT (client_id) DO UPDATE SET
			can_create_sale_entries = EXCLUDED.can_create_sale_entries,
			can_create_purchase_entries = EXCLUDED.can_create_purchase_entries,
			can_create_receipt_entries = EXCLUDED.can_create_receipt_entries,
			can_create_payment_entries = EXCLUDED.can_create_payment_entries,
			can_create_journal_entries = EXCLUDED.can_create_journal_entries,
			can_create_inventory = EXCLUDED.can_create_inventory,
			can_show_inventory = EXCLUDED.can_show_inventory,
			can_create_customers = EXCLUDED.can_create_customers,
			can_show_customers = EXCLUDED.can_show_customers,
			can_create_vendors = EXCLUDED.can_create_vendors,
			can_show_vendors = EXCLUDED.can_show_vendors,
			can_show_entries = EXCLUDED.can_show_entries,
			can_send_invoice_email = EXCLUDED.can_send_invoice_email,
			can_send_invoice_whatsapp = EXCLUDED.can_send_invoice_whatsapp,
			max_companies = EXCLUDED.max_companies,
			max_users = EXCLUDED.max_users,
			max_inventories = EXCLUDED.max_inventories,
			updated_at = EXCLUDED.updated_at`
	args := append([]any{perm.ClientID}, capValues(perm.Overrides)...)
	args = append(args, perm.MaxCompanies, perm.MaxUsers, perm.MaxInventories, perm.CreatedAt, perm.UpdatedAt)
	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert client permissions: %w", err)
	}
	return nil
}
