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

var _ repository.ValidityRepository = (*ValidityRepo)(nil)

// ValidityRepo implementación del puerto ValidityRepository sobre PostgreSQL.
type ValidityRepo struct {
	pool *pgxpool.Pool
}

// NewValidityRepository construye el adaptador de persistencia de validez de accounts.
func NewValidityRepository(pool *pgxpool.Pool) *ValidityRepo {
	return &ValidityRepo{pool: pool}
}

// Get obtiene el registro de validez de un client. (nil, nil) si no existe.
// El status se coacciona al enum cerrado al decodificar: un valor fuera del
// conjunto jamás se propaga al resto del sistema.
func (r *ValidityRepo) Get(ctx context.Context, clientID string) (*entity.AccountValidity, error) {
	query := `SELECT client_id, status, start_at, expires_at, updated_at FROM account_validity WHERE client_id = $1`
	var (
		v      entity.AccountValidity
		status string
	)
	err := r.pool.QueryRow(ctx, query, clientID).Scan(&v.ClientID, &status, &v.StartAt, &v.ExpiresAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account validity: %w", err)
	}
	v.Status = entity.ParseStatus(status)
	return &v, nil
}

// Save upsert del registro completo de validez.
func (r *ValidityRepo) Save(ctx context.Context, v *entity.AccountValidity) error {
	query := `
		INSERT INTO account_validity (client_id, status, start_at, expires_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (client_id) DO UPDATE SET
			status = EXCLUDED.status,
			start_at = EXCLUDED.start_at,
			expires_at = EXCLUDED.expires_at,
			updated_at = EXCLUDED.updated_at`
	_, err := r.pool.Exec(ctx, query, v.ClientID, string(v.Status), v.StartAt, v.ExpiresAt, v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert account validity: %w", err)
	}
	return nil
}
