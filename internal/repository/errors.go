package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned (wrapped in a StoreError) when no row matches.
var ErrNotFound = errors.New("appointment not found")

// StoreError wraps a failure of the underlying store. The driver error is
// kept as is and reachable through errors.Is/As.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return &StoreError{Op: op, Err: err}
}
