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

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación del puerto CustomerRepository sobre PostgreSQL.
// La columna search_name guarda el nombre normalizado (pkg/textnorm) para
// búsqueda insensible a tildes y mayúsculas.
type CustomerRepo struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository construye el adaptador de persistencia de terceros clientes.
func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepo {
	return &CustomerRepo{pool: pool}
}

const customerColumns = `id, client_id, name, tax_id, email, phone, created_at, updated_at`

// Create persiste un nuevo tercero cliente.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `, search_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(context.Background(), query,
		customer.ID, customer.ClientID, customer.Name, customer.TaxID, customer.Email, customer.Phone,
		customer.CreatedAt, customer.UpdatedAt, searchName(customer.Name),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un tercero cliente por ID. (nil, nil) si no existe.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByTaxID obtiene un tercero cliente por NIT/cédula dentro de un client.
func (r *CustomerRepo) GetByTaxID(clientID, taxID string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE client_id = $1 AND tax_id = $2`
	return r.scanOne(query, clientID, taxID)
}

func (r *CustomerRepo) scanOne(query string, args ...any) (*entity.Customer, error) {
	var c entity.Customer
	err := r.pool.QueryRow(context.Background(), query, args...).Scan(
		&c.ID, &c.ClientID, &c.Name, &c.TaxID, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// Update actualiza un tercero cliente (y su nombre de búsqueda).
func (r *CustomerRepo) Update(customer *entity.Customer) error {
	query := `
		UPDATE customers SET name = $2, tax_id = $3, email = $4, phone = $5, updated_at = $6, search_name = $7
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		customer.ID, customer.Name, customer.TaxID, customer.Email, customer.Phone, customer.UpdatedAt,
		searchName(customer.Name),
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// ListByClient lista terceros clientes, con búsqueda opcional por nombre normalizado.
func (r *CustomerRepo) ListByClient(clientID, search string, limit, offset int) ([]*entity.Customer, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if search != "" {
		query := `
			SELECT ` + customerColumns + ` FROM customers
			WHERE client_id = $1 AND search_name LIKE '%' || $2 || '%'
			ORDER BY name LIMIT $3 OFFSET $4`
		rows, err = r.pool.Query(context.Background(), query, clientID, search, limit, offset)
	} else {
		query := `
			SELECT ` + customerColumns + ` FROM customers
			WHERE client_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
		rows, err = r.pool.Query(context.Background(), query, clientID, limit, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.ID, &c.ClientID, &c.Name, &c.TaxID, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Delete elimina un tercero cliente por ID.
func (r *CustomerRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}
