package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation devuelve el nombre del constraint si el error es una
// violación de unicidad (23505), o "" si no lo es. El constraint permite
// distinguir el índice único de email de la primary key de id.
func uniqueViolation(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
		return pgErr.ConstraintName
	}
	return ""
}
