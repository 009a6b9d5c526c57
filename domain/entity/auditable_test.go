package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDiff(t *testing.T) {
	prior := Attributes{"id": int64(1), "quantity": 5, "reorder_level": 2, "updated_at": "2024-01-01T00:00:00Z"}
	current := Attributes{"id": int64(1), "quantity": 3, "reorder_level": 2, "updated_at": "2024-01-02T00:00:00Z"}

	changed := Diff(prior, current)

	assert.Equal(t, Attributes{"quantity": 3, "updated_at": "2024-01-02T00:00:00Z"}, changed)
}

func TestDiff_NoChanges(t *testing.T) {
	snapshot := Attributes{"name": "Apparel", "description": nil}
	assert.Empty(t, Diff(snapshot, Attributes{"name": "Apparel", "description": nil}))
}

func TestDiff_MissingPriorFieldCountsAsChanged(t *testing.T) {
	changed := Diff(Attributes{}, Attributes{"image_url": nil})
	assert.Equal(t, Attributes{"image_url": nil}, changed)
}

func TestDiff_NilToValue(t *testing.T) {
	changed := Diff(Attributes{"description": nil}, Attributes{"description": "Cotton"})
	assert.Equal(t, Attributes{"description": "Cotton"}, changed)
}

func TestProductSnapshot(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.FixedZone("CET", 3600))
	product := &Product{
		ID:         7,
		CategoryID: 2,
		Name:       "Classic Hoodie",
		SKU:        "APP-HOOD-003",
		Price:      39,
		Status:     ProductStatusActive,
		CreatedAt:  created,
		UpdatedAt:  created,
		Category:   &Category{ID: 2, Name: "Apparel"},
	}

	snapshot := product.AuditSnapshot()

	assert.Equal(t, "Product", product.AuditType())
	assert.Equal(t, int64(7), product.AuditKey())
	assert.Equal(t, "active", snapshot["status"])
	assert.Equal(t, 39.0, snapshot["price"])
	assert.Nil(t, snapshot["description"])
	assert.Equal(t, "2024-03-01T09:00:00Z", snapshot["created_at"])
	assert.NotContains(t, snapshot, "category")
}

func TestInventoryIsLowStock(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		reorder  int
		expected bool
	}{
		{"below reorder level", 1, 3, true},
		{"at reorder level", 3, 3, true},
		{"above reorder level", 4, 3, false},
		{"zero reorder level with stock", 1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &Inventory{Quantity: tt.quantity, ReorderLevel: tt.reorder}
			assert.Equal(t, tt.expected, inv.IsLowStock())
		})
	}
}

func TestProductStatusIsValid(t *testing.T) {
	assert.True(t, ProductStatus("archived").IsValid())
	assert.False(t, ProductStatus("discontinued").IsValid())
	assert.False(t, ProductStatus("").IsValid())
}

func TestUserHasRole(t *testing.T) {
	user := NewUser("Ada", "ada@example.com", "hash", RoleManager)

	assert.True(t, user.HasRole(RoleAdmin, RoleManager))
	assert.False(t, user.HasRole(RoleAdmin))
	assert.True(t, IsValidRole(RoleEditor))
	assert.False(t, IsValidRole("owner"))
}
