package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func IsUniqueViolation(err error) bool {
	return hasCode(err, pgUniqueViolation) || errors.Is(err, gorm.ErrDuplicatedKey)
}

// IsExclusionViolation reports a commit rejected by the confirmed-booking
// exclusion constraint.
func IsExclusionViolation(err error) bool {
	return hasCode(err, pgExclusionViolation)
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
