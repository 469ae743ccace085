package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tu-usuario/contable-pro/pkg/textnorm"
)

// searchName normaliza un nombre para la columna search_name (búsqueda sin tildes).
func searchName(name string) string {
	return textnorm.ForSearch(name)
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}
