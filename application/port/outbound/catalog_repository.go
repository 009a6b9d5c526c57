package outbound

import (
	"context"

	"github.com/stockroom/backoffice/domain/entity"
)

type CategoryRepository interface {
	List(ctx context.Context, offset, limit int) ([]*entity.Category, int, error)
	FindByID(ctx context.Context, id int64) (*entity.Category, error)
	FindForUpdate(ctx context.Context, id int64) (*entity.Category, error)
	Create(ctx context.Context, category *entity.Category) error
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

type ProductRepository interface {
	List(ctx context.Context, offset, limit int) ([]*entity.Product, int, error)
	// FindByID loads the product with its category and inventory.
	FindByID(ctx context.Context, id int64) (*entity.Product, error)
	FindForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

type InventoryRepository interface {
	List(ctx context.Context, offset, limit int) ([]*entity.Inventory, int, error)
	// FindByID loads the inventory record with its product.
	FindByID(ctx context.Context, id int64) (*entity.Inventory, error)
	FindForUpdate(ctx context.Context, id int64) (*entity.Inventory, error)
	Create(ctx context.Context, inventory *entity.Inventory) error
	Update(ctx context.Context, inventory *entity.Inventory) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
	CountLowStock(ctx context.Context) (int, error)
	ListLowStock(ctx context.Context, limit int) ([]*entity.Inventory, error)
	ListRecentlyUpdated(ctx context.Context, limit int) ([]*entity.Inventory, error)
}
