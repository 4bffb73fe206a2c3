package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Jaaccob/SagaApp/internal/domain/domainerr"
)

const uniqueViolation = "23505"

// storageErr hides driver detail behind the domain taxonomy. Unique
// violations on a known constraint become conflicts.
func storageErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		if resource, field, ok := conflictTarget(pgErr.ConstraintName); ok {
			return domainerr.Conflict(resource, field)
		}
	}
	return domainerr.Storage(op, err)
}

// conflictTarget reads "<table>_<column>_key", the name postgres gives a
// UNIQUE constraint by default.
func conflictTarget(constraint string) (resource, field string, ok bool) {
	name, found := strings.CutSuffix(constraint, "_key")
	if !found {
		return "", "", false
	}
	table, column, found := strings.Cut(name, "_")
	if !found {
		return "", "", false
	}
	return strings.TrimSuffix(table, "s"), column, true
}
