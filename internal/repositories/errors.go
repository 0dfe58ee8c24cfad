package repository

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrReferenceNotFound means an insert pointed at a row that does not exist.
	ErrReferenceNotFound = errors.New("referenced row does not exist")
	// ErrReferenced means a delete was refused because other rows still point at the row.
	ErrReferenced        = errors.New("row is still referenced")
	ErrDuplicate         = errors.New("duplicate key")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInsufficientStock = errors.New("insufficient stock")
)

const (
	pqForeignKeyViolation = pq.ErrorCode("23503")
	pqUniqueViolation     = pq.ErrorCode("23505")
)

func hasPQCode(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == code
	}

	return false
}

func isForeignKeyViolation(err error) bool {
	return hasPQCode(err, pqForeignKeyViolation)
}

func isUniqueViolation(err error) bool {
	return hasPQCode(err, pqUniqueViolation)
}
