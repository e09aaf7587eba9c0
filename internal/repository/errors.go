package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

var (
	// ErrNotFound — записи нет или она принадлежит другому пользователю.
	ErrNotFound = errors.New("service provider not found")

	ErrCreationFailed       = errors.New("failed to create service provider")
	ErrUpdateFailed         = errors.New("failed to update service provider")
	ErrDeleteFailed         = errors.New("failed to delete service provider")
	ErrReviewCreationFailed = errors.New("failed to create review")
)

// postgres: foreign_key_violation
const pgForeignKeyViolation = "23503"

// isForeignKeyViolation распознаёт нарушение внешнего ключа у обоих драйверов.
func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}

	return false
}
