package catalog

import (
	"errors"

	"github.com/stockroom/backoffice/application/port/outbound"
	apperror "github.com/stockroom/backoffice/domain/error"
)

// writeErrors describes how repository sentinels surface for one resource.
type writeErrors struct {
	resource  string
	conflict  string
	reference string
}

var (
	categoryErrors = writeErrors{
		resource: "Category",
		conflict: "slug has already been taken",
	}
	productErrors = writeErrors{
		resource:  "Product",
		conflict:  "sku has already been taken",
		reference: "category_id",
	}
	inventoryErrors = writeErrors{
		resource:  "Inventory",
		conflict:  "product_id already has an inventory record",
		reference: "product_id",
	}
)

func (e writeErrors) lookup(id int64, err error) error {
	if errors.Is(err, outbound.ErrNotFound) {
		return apperror.ErrNotFound(e.resource, id)
	}
	return apperror.ErrDatabaseError("find "+e.resource, err)
}

func (e writeErrors) write(id int64, op string, err error) error {
	var appErr *apperror.AppError
	switch {
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, outbound.ErrNotFound):
		return apperror.ErrNotFound(e.resource, id)
	case errors.Is(err, outbound.ErrConflict):
		return apperror.ErrConflict(e.resource, e.conflict)
	case errors.Is(err, outbound.ErrInvalidReference) && e.reference != "":
		return apperror.ErrValidation(e.reference, "the selected "+e.reference+" is invalid")
	default:
		return apperror.ErrDatabaseError(op+" "+e.resource, err)
	}
}

// remove maps errors of a delete, where a conflict means other rows still
// reference the record.
func (e writeErrors) remove(id int64, err error) error {
	if errors.Is(err, outbound.ErrConflict) {
		return apperror.ErrResourceInUse(e.resource, "other records still reference it")
	}
	return e.write(id, "delete", err)
}
