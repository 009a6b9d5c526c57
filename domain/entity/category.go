package entity

import "time"

type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewCategory(name, slug string, description *string, isActive bool) *Category {
	now := time.Now()
	return &Category{
		Name:        name,
		Slug:        slug,
		Description: description,
		IsActive:    isActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (c *Category) AuditType() string { return AuditTypeCategory }
func (c *Category) AuditKey() int64   { return c.ID }

func (c *Category) AuditSnapshot() Attributes {
	return Attributes{
		"id":          c.ID,
		"name":        c.Name,
		"slug":        c.Slug,
		"description": snapshotString(c.Description),
		"is_active":   c.IsActive,
		"created_at":  snapshotTime(c.CreatedAt),
		"updated_at":  snapshotTime(c.UpdatedAt),
	}
}
