package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stockroom/backoffice/domain/entity"
)

const inventoryColumns = `id, product_id, quantity, reorder_level, created_at, updated_at`

const inventoryWithProduct = `
	SELECT i.id, i.product_id, i.quantity, i.reorder_level, i.created_at, i.updated_at,
	       p.id, p.category_id, p.name, p.sku, p.description, p.price, p.status, p.image_url, p.created_at, p.updated_at
	FROM inventories i
	JOIN products p ON p.id = i.product_id
`

type InventoryRepository struct {
	db *sql.DB
}

func NewInventoryRepository(db *sql.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// List returns inventory records, most recently updated first.
func (r *InventoryRepository) List(ctx context.Context, offset, limit int) ([]*entity.Inventory, int, error) {
	total, err := r.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	items, err := r.query(ctx, inventoryWithProduct+` ORDER BY i.updated_at DESC, i.id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *InventoryRepository) FindByID(ctx context.Context, id int64) (*entity.Inventory, error) {
	inventory, err := scanInventoryWithProduct(conn(ctx, r.db).QueryRowContext(ctx, inventoryWithProduct+` WHERE i.id = $1`, id))
	if err != nil {
		return nil, readError("find inventory", err)
	}
	return inventory, nil
}

// FindForUpdate locks the inventory row; the product is not loaded.
func (r *InventoryRepository) FindForUpdate(ctx context.Context, id int64) (*entity.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventories WHERE id = $1 FOR UPDATE`
	var inventory entity.Inventory
	err := conn(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&inventory.ID,
		&inventory.ProductID,
		&inventory.Quantity,
		&inventory.ReorderLevel,
		&inventory.CreatedAt,
		&inventory.UpdatedAt,
	)
	if err != nil {
		return nil, readError("lock inventory", err)
	}
	return &inventory, nil
}

func (r *InventoryRepository) Create(ctx context.Context, inventory *entity.Inventory) error {
	query := `
		INSERT INTO inventories (product_id, quantity, reorder_level, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := conn(ctx, r.db).QueryRowContext(ctx, query,
		inventory.ProductID,
		inventory.Quantity,
		inventory.ReorderLevel,
		inventory.CreatedAt,
		inventory.UpdatedAt,
	).Scan(&inventory.ID)
	if err != nil {
		return writeError("create inventory", err)
	}
	return nil
}

func (r *InventoryRepository) Update(ctx context.Context, inventory *entity.Inventory) error {
	query := `
		UPDATE inventories
		SET product_id = $1, quantity = $2, reorder_level = $3, updated_at = $4
		WHERE id = $5
	`
	result, err := conn(ctx, r.db).ExecContext(ctx, query,
		inventory.ProductID,
		inventory.Quantity,
		inventory.ReorderLevel,
		inventory.UpdatedAt,
		inventory.ID,
	)
	if err != nil {
		return writeError("update inventory", err)
	}
	return expectOneRow(result, "update inventory")
}

func (r *InventoryRepository) Delete(ctx context.Context, id int64) error {
	result, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM inventories WHERE id = $1`, id)
	if err != nil {
		return deleteError("delete inventory", err)
	}
	return expectOneRow(result, "delete inventory")
}

func (r *InventoryRepository) Count(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM inventories`)
}

func (r *InventoryRepository) CountLowStock(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM inventories WHERE quantity <= reorder_level`)
}

// ListLowStock returns up to limit low-stock records, lowest quantity first.
func (r *InventoryRepository) ListLowStock(ctx context.Context, limit int) ([]*entity.Inventory, error) {
	return r.query(ctx, inventoryWithProduct+` WHERE i.quantity <= i.reorder_level ORDER BY i.quantity ASC, i.id LIMIT $1`, limit)
}

func (r *InventoryRepository) ListRecentlyUpdated(ctx context.Context, limit int) ([]*entity.Inventory, error) {
	return r.query(ctx, inventoryWithProduct+` ORDER BY i.updated_at DESC, i.id DESC LIMIT $1`, limit)
}

func (r *InventoryRepository) count(ctx context.Context, query string) (int, error) {
	var count int
	if err := conn(ctx, r.db).QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count inventory: %w", err)
	}
	return count, nil
}

func (r *InventoryRepository) query(ctx context.Context, query string, args ...interface{}) ([]*entity.Inventory, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer rows.Close()

	items := []*entity.Inventory{}
	for rows.Next() {
		inventory, err := scanInventoryWithProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory: %w", err)
		}
		items = append(items, inventory)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inventory: %w", err)
	}
	return items, nil
}

func scanInventoryWithProduct(row scanner) (*entity.Inventory, error) {
	var (
		inventory   entity.Inventory
		product     entity.Product
		status      string
		description sql.NullString
		imageURL    sql.NullString
	)
	err := row.Scan(
		&inventory.ID,
		&inventory.ProductID,
		&inventory.Quantity,
		&inventory.ReorderLevel,
		&inventory.CreatedAt,
		&inventory.UpdatedAt,
		&product.ID,
		&product.CategoryID,
		&product.Name,
		&product.SKU,
		&description,
		&product.Price,
		&status,
		&imageURL,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	product.Status = entity.ProductStatus(status)
	product.Description = stringPtr(description)
	product.ImageURL = stringPtr(imageURL)
	inventory.Product = &product
	return &inventory, nil
}
