package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
	"github.com/tu-usuario/contable-pro/internal/domain/repository"
)

var _ repository.EntryRepository = (*EntryRepo)(nil)

// EntryRepo implementación del puerto EntryRepository sobre PostgreSQL.
// Los montos son NUMERIC y se escanean como decimal.Decimal (codec del pool).
type EntryRepo struct {
	pool *pgxpool.Pool
}

// NewEntryRepository construye el adaptador de persistencia de asientos.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepo {
	return &EntryRepo{pool: pool}
}

const entryColumns = `id, client_id, type, category, date, description, amount, party_id, created_by, created_at, updated_at`

// Create persiste un nuevo asiento.
func (r *EntryRepo) Create(e *entity.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.pool.Exec(context.Background(), query,
		e.ID, e.ClientID, string(e.Type), e.Category, e.Date, e.Description, e.Amount,
		nullIfEmpty(e.PartyID), e.CreatedBy, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// GetByID obtiene un asiento por ID. (nil, nil) si no existe.
func (r *EntryRepo) GetByID(id string) (*entity.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE id = $1`
	var (
		e       entity.LedgerEntry
		typ     string
		partyID *string
	)
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.ClientID, &typ, &e.Category, &e.Date, &e.Description, &e.Amount,
		&partyID, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger entry: %w", err)
	}
	e.Type = entity.EntryType(typ)
	if partyID != nil {
		e.PartyID = *partyID
	}
	return &e, nil
}

// ListByClient lista asientos de un client en el rango [from, to], con filtro
// opcional por tipo (entryType vacío = todos los tipos).
func (r *EntryRepo) ListByClient(clientID string, entryType entity.EntryType, from, to time.Time, limit, offset int) ([]*entity.LedgerEntry, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if entryType != "" {
		query := `
			SELECT ` + entryColumns + ` FROM ledger_entries
			WHERE client_id = $1 AND type = $2 AND date >= $3 AND date <= $4
			ORDER BY date DESC, created_at DESC LIMIT $5 OFFSET $6`
		rows, err = r.pool.Query(context.Background(), query, clientID, string(entryType), from, to, limit, offset)
	} else {
		query := `
			SELECT ` + entryColumns + ` FROM ledger_entries
			WHERE client_id = $1 AND date >= $2 AND date <= $3
			ORDER BY date DESC, created_at DESC LIMIT $4 OFFSET $5`
		rows, err = r.pool.Query(context.Background(), query, clientID, from, to, limit, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.LedgerEntry
	for rows.Next() {
		var (
			e       entity.LedgerEntry
			typ     string
			partyID *string
		)
		if err := rows.Scan(&e.ID, &e.ClientID, &typ, &e.Category, &e.Date, &e.Description, &e.Amount,
			&partyID, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		e.Type = entity.EntryType(typ)
		if partyID != nil {
			e.PartyID = *partyID
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// ProfitLoss agrega totales por tipo de asiento dentro del rango [from, to].
// SUM sobre NUMERIC: el codec decimal garantiza precisión exacta, sin float64.
func (r *EntryRepo) ProfitLoss(clientID string, from, to time.Time) ([]entity.ProfitLossLine, error) {
	query := `
		SELECT type, category, COALESCE(SUM(amount), 0)
		FROM ledger_entries
		WHERE client_id = $1 AND date >= $2 AND date <= $3
		GROUP BY type, category
		ORDER BY type`
	rows, err := r.pool.Query(context.Background(), query, clientID, from, to)
	if err != nil {
		return nil, fmt.Errorf("profit loss: %w", err)
	}
	defer rows.Close()
	var lines []entity.ProfitLossLine
	for rows.Next() {
		var (
			l   entity.ProfitLossLine
			typ string
		)
		if err := rows.Scan(&typ, &l.Category, &l.Total); err != nil {
			return nil, fmt.Errorf("scan profit loss line: %w", err)
		}
		l.Type = entity.EntryType(typ)
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// nullIfEmpty convierte "" en NULL para columnas opcionales.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
