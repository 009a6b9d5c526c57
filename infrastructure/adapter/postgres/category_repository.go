package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stockroom/backoffice/domain/entity"
)

const categoryColumns = `id, name, slug, description, is_active, created_at, updated_at`

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) List(ctx context.Context, offset, limit int) ([]*entity.Category, int, error) {
	total, err := r.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY name, id LIMIT $1 OFFSET $2`
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []*entity.Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, 0, err
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, total, nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id int64) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	category, err := scanCategory(conn(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, readError("find category", err)
	}
	return category, nil
}

// FindForUpdate locks the row until the surrounding transaction ends.
func (r *CategoryRepository) FindForUpdate(ctx context.Context, id int64) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1 FOR UPDATE`
	category, err := scanCategory(conn(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, readError("lock category", err)
	}
	return category, nil
}

func (r *CategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	query := `
		INSERT INTO categories (name, slug, description, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := conn(ctx, r.db).QueryRowContext(ctx, query,
		category.Name,
		category.Slug,
		category.Description,
		category.IsActive,
		category.CreatedAt,
		category.UpdatedAt,
	).Scan(&category.ID)
	if err != nil {
		return writeError("create category", err)
	}
	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *entity.Category) error {
	query := `
		UPDATE categories
		SET name = $1, slug = $2, description = $3, is_active = $4, updated_at = $5
		WHERE id = $6
	`
	result, err := conn(ctx, r.db).ExecContext(ctx, query,
		category.Name,
		category.Slug,
		category.Description,
		category.IsActive,
		category.UpdatedAt,
		category.ID,
	)
	if err != nil {
		return writeError("update category", err)
	}
	return expectOneRow(result, "update category")
}

func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	result, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return deleteError("delete category", err)
	}
	return expectOneRow(result, "delete category")
}

func (r *CategoryRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := conn(ctx, r.db).QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return count, nil
}

func scanCategory(row scanner) (*entity.Category, error) {
	var (
		category    entity.Category
		description sql.NullString
	)
	err := row.Scan(
		&category.ID,
		&category.Name,
		&category.Slug,
		&description,
		&category.IsActive,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	category.Description = stringPtr(description)
	return &category, nil
}
