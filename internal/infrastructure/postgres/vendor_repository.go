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

var _ repository.VendorRepository = (*VendorRepo)(nil)

// VendorRepo implementación del puerto VendorRepository sobre PostgreSQL.
type VendorRepo struct {
	pool *pgxpool.Pool
}

// NewVendorRepository construye el adaptador de persistencia de proveedores.
func NewVendorRepository(pool *pgxpool.Pool) *VendorRepo {
	return &VendorRepo{pool: pool}
}

const vendorColumns = `id, client_id, name, tax_id, email, phone, created_at, updated_at`

// Create persiste un nuevo proveedor.
func (r *VendorRepo) Create(vendor *entity.Vendor) error {
	query := `
		INSERT INTO vendors (` + vendorColumns + `, search_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(context.Background(), query,
		vendor.ID, vendor.ClientID, vendor.Name, vendor.TaxID, vendor.Email, vendor.Phone,
		vendor.CreatedAt, vendor.UpdatedAt, searchName(vendor.Name),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert vendor: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID. (nil, nil) si no existe.
func (r *VendorRepo) GetByID(id string) (*entity.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByTaxID obtiene un proveedor por NIT dentro de un client.
func (r *VendorRepo) GetByTaxID(clientID, taxID string) (*entity.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE client_id = $1 AND tax_id = $2`
	return r.scanOne(query, clientID, taxID)
}

func (r *VendorRepo) scanOne(query string, args ...any) (*entity.Vendor, error) {
	var v entity.Vendor
	err := r.pool.QueryRow(context.Background(), query, args...).Scan(
		&v.ID, &v.ClientID, &v.Name, &v.TaxID, &v.Email, &v.Phone, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vendor: %w", err)
	}
	return &v, nil
}

// Update actualiza un proveedor (y su nombre de búsqueda).
func (r *VendorRepo) Update(vendor *entity.Vendor) error {
	query := `
		UPDATE vendors SET name = $2, tax_id = $3, email = $4, phone = $5, updated_at = $6, search_name = $7
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		vendor.ID, vendor.Name, vendor.TaxID, vendor.Email, vendor.Phone, vendor.UpdatedAt,
		searchName(vendor.Name),
	)
	if err != nil {
		return fmt.Errorf("update vendor: %w", err)
	}
	return nil
}

// ListByClient lista proveedores, con búsqueda opcional por nombre normalizado.
func (r *VendorRepo) ListByClient(clientID, search string, limit, offset int) ([]*entity.Vendor, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if search != "" {
		query := `
			SELECT ` + vendorColumns + ` FROM vendors
			WHERE client_id = $1 AND search_name LIKE '%' || $2 || '%'
			ORDER BY name LIMIT $3 OFFSET $4`
		rows, err = r.pool.Query(context.Background(), query, clientID, search, limit, offset)
	} else {
		query := `
			SELECT ` + vendorColumns + ` FROM vendors
			WHERE client_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
		rows, err = r.pool.Query(context.Background(), query, clientID, limit, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()
	var list []*entity.Vendor
	for rows.Next() {
		var v entity.Vendor
		if err := rows.Scan(&v.ID, &v.ClientID, &v.Name, &v.TaxID, &v.Email, &v.Phone, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// Delete elimina un proveedor por ID.
func (r *VendorRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM vendors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete vendor: %w", err)
	}
	return nil
}
