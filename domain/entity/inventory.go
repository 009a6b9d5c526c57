package entity

import "time"

type Inventory struct {
	ID           int64     `json:"id"`
	ProductID    int64     `json:"product_id"`
	Quantity     int       `json:"quantity"`
	ReorderLevel int       `json:"reorder_level"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Product *Product `json:"product,omitempty"`
}

// IsLowStock reports whether the quantity has fallen to or below the reorder level.
func (i *Inventory) IsLowStock() bool {
	return i.Quantity <= i.ReorderLevel
}

func (i *Inventory) AuditType() string { return AuditTypeInventory }
func (i *Inventory) AuditKey() int64   { return i.ID }

func (i *Inventory) AuditSnapshot() Attributes {
	return Attributes{
		"id":            i.ID,
		"product_id":    i.ProductID,
		"quantity":      i.Quantity,
		"reorder_level": i.ReorderLevel,
		"created_at":    snapshotTime(i.CreatedAt),
		"updated_at":    snapshotTime(i.UpdatedAt),
	}
}
