package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/stockroom/backoffice/application/port/outbound"
)

// writeError translates constraint violations of an INSERT or UPDATE.
func writeError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "unique_violation":
			return fmt.Errorf("%s: %w (%s)", op, outbound.ErrConflict, pqErr.Constraint)
		case "foreign_key_violation":
			return fmt.Errorf("%s: %w (%s)", op, outbound.ErrInvalidReference, pqErr.Constraint)
		}
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// deleteError translates a DELETE blocked by rows that still reference the record.
func deleteError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
		return fmt.Errorf("%s: %w (%s)", op, outbound.ErrConflict, pqErr.Constraint)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func readError(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return outbound.ErrNotFound
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// expectOneRow reports outbound.ErrNotFound when a statement touched nothing.
func expectOneRow(result sql.Result, op string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for %s: %w", op, err)
	}
	if rows == 0 {
		return outbound.ErrNotFound
	}
	return nil
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
