package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when the referenced row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate record")
	// ErrStatusConflict is returned when a conditional transition finds the
	// row in a different status than expected.
	ErrStatusConflict = errors.New("status changed concurrently")
	// ErrDonorUnavailable is returned when the donor binding a transition is
	// missing or not available at write time.
	ErrDonorUnavailable = errors.New("donor unavailable")
)

const (
	pgUniqueViolation  = "23505"
	pgInvalidTextValue = "22P02"
)

func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrDuplicate
		case pgInvalidTextValue:
			// malformed uuid literal, nothing can match it
			return ErrNotFound
		}
	}
	return err
}
