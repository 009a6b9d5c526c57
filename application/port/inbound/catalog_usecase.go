package inbound

import (
	"context"

	"github.com/stockroom/backoffice/domain/entity"
)

// Mutating operations take the id of the authenticated caller; nil marks a
// system change (seeders, maintenance jobs).

type CategoryRequest struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

type ProductRequest struct {
	CategoryID  int64   `json:"category_id"`
	Name        string  `json:"name"`
	SKU         string  `json:"sku"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
	Status      string  `json:"status"`
	ImageURL    *string `json:"image_url"`
}

type InventoryRequest struct {
	ProductID    int64 `json:"product_id"`
	Quantity     int   `json:"quantity"`
	ReorderLevel *int  `json:"reorder_level"`
}

type CategoryUseCase interface {
	List(ctx context.Context, page int) (*Paginated[*entity.Category], error)
	Get(ctx context.Context, id int64) (*entity.Category, error)
	Create(ctx context.Context, actorID *int64, req CategoryRequest) (*entity.Category, error)
	Update(ctx context.Context, actorID *int64, id int64, req CategoryRequest) (*entity.Category, error)
	Delete(ctx context.Context, actorID *int64, id int64) error
}

type ProductUseCase interface {
	List(ctx context.Context, page int) (*Paginated[*entity.Product], error)
	Get(ctx context.Context, id int64) (*entity.Product, error)
	Create(ctx context.Context, actorID *int64, req ProductRequest) (*entity.Product, error)
	Update(ctx context.Context, actorID *int64, id int64, req ProductRequest) (*entity.Product, error)
	Delete(ctx context.Context, actorID *int64, id int64) error
}

type InventoryUseCase interface {
	List(ctx context.Context, page int) (*Paginated[*entity.Inventory], error)
	Get(ctx context.Context, id int64) (*entity.Inventory, error)
	Create(ctx context.Context, actorID *int64, req InventoryRequest) (*entity.Inventory, error)
	Update(ctx context.Context, actorID *int64, id int64, req InventoryRequest) (*entity.Inventory, error)
	Delete(ctx context.Context, actorID *int64, id int64) error
}
