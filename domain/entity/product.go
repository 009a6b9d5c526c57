package entity

import "time"

type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
	ProductStatusArchived ProductStatus = "archived"
)

func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusActive, ProductStatusInactive, ProductStatusArchived:
		return true
	}
	return false
}

type Product struct {
	ID          int64         `json:"id"`
	CategoryID  int64         `json:"category_id"`
	Name        string        `json:"name"`
	SKU         string        `json:"sku"`
	Description *string       `json:"description"`
	Price       float64       `json:"price"`
	Status      ProductStatus `json:"status"`
	ImageURL    *string       `json:"image_url"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	// Loaded on reads only; never part of the audit snapshot.
	Category  *Category  `json:"category,omitempty"`
	Inventory *Inventory `json:"inventory,omitempty"`
}

func (p *Product) AuditType() string { return AuditTypeProduct }
func (p *Product) AuditKey() int64   { return p.ID }

func (p *Product) AuditSnapshot() Attributes {
	return Attributes{
		"id":          p.ID,
		"category_id": p.CategoryID,
		"name":        p.Name,
		"sku":         p.SKU,
		"description": snapshotString(p.Description),
		"price":       p.Price,
		"status":      string(p.Status),
		"image_url":   snapshotString(p.ImageURL),
		"created_at":  snapshotTime(p.CreatedAt),
		"updated_at":  snapshotTime(p.UpdatedAt),
	}
}
