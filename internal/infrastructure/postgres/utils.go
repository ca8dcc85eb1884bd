package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeInvalidTextRep      = "22P02" // p. ej. uuid mal formado
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único.
func isUniqueViolation(err error) bool { return pgCode(err) == codeUniqueViolation }

// isForeignKeyViolation verifica si un id asociado no existe en la tabla referenciada.
func isForeignKeyViolation(err error) bool { return pgCode(err) == codeForeignKeyViolation }

// isInvalidText verifica si un parámetro no pudo convertirse al tipo de la columna.
func isInvalidText(err error) bool { return pgCode(err) == codeInvalidTextRep }
