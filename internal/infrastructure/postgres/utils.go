package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gestionpro/stock-ledger-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// mapUnique traduce la violación de único al sentinel del dominio, dejando el
// resto de errores intactos.
func mapUnique(err error) error {
	if err != nil && isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	return err
}
