package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/contable-pro/internal/domain"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
	"github.com/tu-usuario/contable-pro/internal/domain/repository"
)

var _ repository.BankDetailRepository = (*BankDetailRepo)(nil)

// BankDetailRepo implementación del puerto BankDetailRepository sobre PostgreSQL.
type BankDetailRepo struct {
	pool *pgxpool.Pool
}

// NewBankDetailRepository construye el adaptador de persistencia de datos bancarios.
func NewBankDetailRepository(pool *pgxpool.Pool) *BankDetailRepo {
	return &BankDetailRepo{pool: pool}
}

const bankColumns = `id, client_id, bank_name, account_number, account_type, holder_name, created_at, updated_at`

// Create persiste un nuevo dato bancario.
func (r *BankDetailRepo) Create(detail *entity.BankDetail) error {
	query := `
		INSERT INTO bank_details (` + bankColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(context.Background(), query,
		detail.ID, detail.ClientID, detail.BankName, detail.AccountNumber, detail.AccountType,
		detail.HolderName, detail.CreatedAt, detail.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert bank detail: %w", err)
	}
	return nil
}

// GetByID obtiene un dato bancario por ID. (nil, nil) si no existe.
func (r *BankDetailRepo) GetByID(id string) (*entity.BankDetail, error) {
	query := `SELECT ` + bankColumns + ` FROM bank_details WHERE id = $1`
	var b entity.BankDetail
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.ClientID, &b.BankName, &b.AccountNumber, &b.AccountType, &b.HolderName,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bank detail: %w", err)
	}
	return &b, nil
}

// Update actualiza un dato bancario.
func (r *BankDetailRepo) Update(detail *entity.BankDetail) error {
	query := `
		UPDATE bank_details SET bank_name = $2, account_number = $3, account_type = $4, holder_name = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		detail.ID, detail.BankName, detail.AccountNumber, detail.AccountType, detail.HolderName, detail.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update bank detail: %w", err)
	}
	return nil
}

// ListByClient lista los datos bancarios de un client.
func (r *BankDetailRepo) ListByClient(clientID string) ([]*entity.BankDetail, error) {
	query := `SELECT ` + bankColumns + ` FROM bank_details WHERE client_id = $1 ORDER BY created_at`
	rows, err := r.pool.Query(context.Background(), query, clientID)
	if err != nil {
		return nil, fmt.Errorf("list bank details: %w", err)
	}
	defer rows.Close()
	var list []*entity.BankDetail
	for rows.Next() {
		var b entity.BankDetail
		if err := rows.Scan(&b.ID, &b.ClientID, &b.BankName, &b.AccountNumber, &b.AccountType, &b.HolderName, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan bank detail: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// Delete elimina un dato bancario por ID.
func (r *BankDetailRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM bank_details WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete bank detail: %w", err)
	}
	return nil
}
