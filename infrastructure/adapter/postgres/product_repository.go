package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stockroom/backoffice/domain/entity"
)

const productColumns = `id, category_id, name, sku, description, price, status, image_url, created_at, updated_at`

// productWithRelations selects a product with its category and, when one
// exists, its inventory record.
const productWithRelations = `
	SELECT p.id, p.category_id, p.name, p.sku, p.description, p.price, p.status, p.image_url, p.created_at, p.updated_at,
	       c.id, c.name, c.slug, c.description, c.is_active, c.created_at, c.updated_at,
	       i.id, i.quantity, i.reorder_level, i.created_at, i.updated_at
	FROM products p
	JOIN categories c ON c.id = p.category_id
	LEFT JOIN inventories i ON i.product_id = p.id
`

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) List(ctx context.Context, offset, limit int) ([]*entity.Product, int, error) {
	total, err := r.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	query := productWithRelations + ` ORDER BY p.name, p.id LIMIT $1 OFFSET $2`
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []*entity.Product{}
	for rows.Next() {
		product, err := scanProductWithRelations(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating products: %w", err)
	}
	return products, total, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*entity.Product, error) {
	query := productWithRelations + ` WHERE p.id = $1`
	product, err := scanProductWithRelations(conn(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, readError("find product", err)
	}
	return product, nil
}

// FindForUpdate locks the product row; relations are not loaded.
func (r *ProductRepository) FindForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	product, err := scanProduct(conn(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, readError("lock product", err)
	}
	return product, nil
}

func (r *ProductRepository) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (category_id, name, sku, description, price, status, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := conn(ctx, r.db).QueryRowContext(ctx, query,
		product.CategoryID,
		product.Name,
		product.SKU,
		product.Description,
		product.Price,
		string(product.Status),
		product.ImageURL,
		product.CreatedAt,
		product.UpdatedAt,
	).Scan(&product.ID)
	if err != nil {
		return writeError("create product", err)
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products
		SET category_id = $1, name = $2, sku = $3, description = $4, price = $5,
		    status = $6, image_url = $7, updated_at = $8
		WHERE id = $9
	`
	result, err := conn(ctx, r.db).ExecContext(ctx, query,
		product.CategoryID,
		product.Name,
		product.SKU,
		product.Description,
		product.Price,
		string(product.Status),
		product.ImageURL,
		product.UpdatedAt,
		product.ID,
	)
	if err != nil {
		return writeError("update product", err)
	}
	return expectOneRow(result, "update product")
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	result, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return deleteError("delete product", err)
	}
	return expectOneRow(result, "delete product")
}

func (r *ProductRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := conn(ctx, r.db).QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func scanProduct(row scanner) (*entity.Product, error) {
	var (
		product     entity.Product
		status      string
		description sql.NullString
		imageURL    sql.NullString
	)
	err := row.Scan(
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
	return &product, nil
}

func scanProductWithRelations(row scanner) (*entity.Product, error) {
	var (
		product     entity.Product
		category    entity.Category
		status      string
		description sql.NullString
		imageURL    sql.NullString
		catDesc     sql.NullString
		invID       sql.NullInt64
		invQty      sql.NullInt64
		invReorder  sql.NullInt64
		invCreated  sql.NullTime
		invUpdated  sql.NullTime
	)
	err := row.Scan(
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
		&category.ID,
		&category.Name,
		&category.Slug,
		&catDesc,
		&category.IsActive,
		&category.CreatedAt,
		&category.UpdatedAt,
		&invID,
		&invQty,
		&invReorder,
		&invCreated,
		&invUpdated,
	)
	if err != nil {
		return nil, err
	}

	product.Status = entity.ProductStatus(status)
	product.Description = stringPtr(description)
	product.ImageURL = stringPtr(imageURL)
	category.Description = stringPtr(catDesc)
	product.Category = &category

	if invID.Valid {
		product.Inventory = &entity.Inventory{
			ID:           invID.Int64,
			ProductID:    product.ID,
			Quantity:     int(invQty.Int64),
			ReorderLevel: int(invReorder.Int64),
			CreatedAt:    invCreated.Time,
			UpdatedAt:    invUpdated.Time,
		}
	}
	return &product, nil
}
