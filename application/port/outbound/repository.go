package outbound

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a unique constraint rejects a write, or when a
	// delete is blocked by rows that still reference the record.
	ErrConflict = errors.New("record conflicts with existing data")
	// ErrInvalidReference is returned when a foreign key points at a missing row.
	ErrInvalidReference = errors.New("referenced record does not exist")
)

// TxManager runs fn inside a single database transaction. Repositories called
// with the ctx passed to fn take part in that transaction; fn returning an
// error rolls everything back.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
