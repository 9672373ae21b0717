package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrSubjectNotFound     = errors.New("subject not found")
	ErrApplicationNotFound = errors.New("application not found")

	// ErrDuplicateApplication is raised by the storage layer's unique
	// constraint on (subject_id, applicant_id). The insert itself is the
	// check; there is no pre-read that could race.
	ErrDuplicateApplication = errors.New("duplicate application")

	// ErrCapacityExhausted means the conditional slot decrement matched no
	// row: the subject is closed or every slot is taken. The losing side of
	// a concurrent approval sees this.
	ErrCapacityExhausted = errors.New("subject capacity exhausted")

	// ErrApplicationResolved means a conditional status update matched no
	// row because the application is no longer in the expected state.
	ErrApplicationResolved = errors.New("application already resolved")

	ErrRecipientNotFound = errors.New("recipient not found")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}
