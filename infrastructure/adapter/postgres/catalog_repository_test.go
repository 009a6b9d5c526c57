package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroom/backoffice/application/port/outbound"
	"github.com/stockroom/backoffice/domain/entity"
)

var (
	uniqueViolation     = &pq.Error{Code: "23505", Constraint: "products_sku_key"}
	foreignKeyViolation = &pq.Error{Code: "23503", Constraint: "products_category_id_fkey"}
)

func TestCategoryRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCategoryRepository(db)
	category := entity.NewCategory("Electronics", "electronics", nil, true)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO categories (name, slug, description, is_active, created_at, updated_at)")).
		WithArgs("Electronics", "electronics", nil, true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	require.NoError(t, repo.Create(context.Background(), category))
	assert.Equal(t, int64(1), category.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_Create_DuplicateSlug(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCategoryRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO categories")).WillReturnError(uniqueViolation)

	err = repo.Create(context.Background(), entity.NewCategory("Electronics", "electronics", nil, true))

	assert.ErrorIs(t, err, outbound.ErrConflict)
}

func TestCategoryRepository_FindByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCategoryRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("FROM categories WHERE id = $1")).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "description", "is_active", "created_at", "updated_at"}))

	_, err = repo.FindByID(context.Background(), 42)

	assert.ErrorIs(t, err, outbound.ErrNotFound)
}

func TestCategoryRepository_Delete_StillReferenced(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCategoryRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM categories WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "products_category_id_fkey"})

	err = repo.Delete(context.Background(), 1)

	assert.ErrorIs(t, err, outbound.ErrConflict)
}

func TestCategoryRepository_Update_Missing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCategoryRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE categories")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Update(context.Background(), &entity.Category{ID: 9, Name: "Apparel", Slug: "apparel"})

	assert.ErrorIs(t, err, outbound.ErrNotFound)
}

func TestProductRepository_Create_UnknownCategory(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO products")).WillReturnError(foreignKeyViolation)

	err = repo.Create(context.Background(), &entity.Product{CategoryID: 99, Name: "Ghost", SKU: "GHOST-1", Status: entity.ProductStatusActive})

	assert.ErrorIs(t, err, outbound.ErrInvalidReference)
}

func TestProductRepository_FindByID_WithRelations(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductRepository(db)
	now := time.Now()
	columns := []string{
		"id", "category_id", "name", "sku", "description", "price", "status", "image_url", "created_at", "updated_at",
		"id", "name", "slug", "description", "is_active", "created_at", "updated_at",
		"id", "quantity", "reorder_level", "created_at", "updated_at",
	}

	mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN inventories i ON i.product_id = p.id WHERE p.id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			1, 1, "Wireless Headphones", "ELEC-HEAD-001", "Noise cancelling", "129.99", "active", nil, now, now,
			1, "Electronics", "electronics", nil, true, now, now,
			1, 24, 5, now, now,
		))

	product, err := repo.FindByID(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 129.99, product.Price)
	assert.Equal(t, entity.ProductStatusActive, product.Status)
	require.NotNil(t, product.Description)
	assert.Nil(t, product.ImageURL)
	require.NotNil(t, product.Category)
	assert.Equal(t, "Electronics", product.Category.Name)
	require.NotNil(t, product.Inventory)
	assert.Equal(t, 24, product.Inventory.Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_FindByID_WithoutInventory(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductRepository(db)
	now := time.Now()
	columns := []string{
		"id", "category_id", "name", "sku", "description", "price", "status", "image_url", "created_at", "updated_at",
		"id", "name", "slug", "description", "is_active", "created_at", "updated_at",
		"id", "quantity", "reorder_level", "created_at", "updated_at",
	}

	mock.ExpectQuery(regexp.QuoteMeta("WHERE p.id = $1")).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			2, 1, "Classic Hoodie", "APP-HOOD-003", nil, "39.00", "active", nil, now, now,
			1, "Apparel", "apparel", nil, true, now, now,
			nil, nil, nil, nil, nil,
		))

	product, err := repo.FindByID(context.Background(), 2)

	require.NoError(t, err)
	assert.Nil(t, product.Inventory)
}

func TestInventoryRepository_ListLowStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewInventoryRepository(db)
	now := time.Now()
	columns := []string{
		"id", "product_id", "quantity", "reorder_level", "created_at", "updated_at",
		"id", "category_id", "name", "sku", "description", "price", "status", "image_url", "created_at", "updated_at",
	}

	mock.ExpectQuery(regexp.QuoteMeta("WHERE i.quantity <= i.reorder_level ORDER BY i.quantity ASC, i.id LIMIT $1")).
		WithArgs(6).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(2, 2, 1, 3, now, now, 2, 2, "Smart Air Fryer", "HOME-AFRY-002", nil, "89.50", "active", nil, now, now))

	items, err := repo.ListLowStock(context.Background(), 6)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].IsLowStock())
	assert.Equal(t, "HOME-AFRY-002", items[0].Product.SKU)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInventoryRepository_CountLowStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewInventoryRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM inventories WHERE quantity <= reorder_level")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountLowStock(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestInventoryRepository_Create_DuplicateProduct(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewInventoryRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO inventories")).
		WithArgs(int64(1), 5, 0, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "inventories_product_id_key"})

	err = repo.Create(context.Background(), &entity.Inventory{ProductID: 1, Quantity: 5})

	assert.ErrorIs(t, err, outbound.ErrConflict)
}

func TestUserRepository_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1 LIMIT 1")).
		WithArgs("admin@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password", "role", "last_login_at", "created_at", "updated_at"}).
			AddRow(1, "Admin", "admin@example.com", "hash", "admin", nil, now, now))

	user, err := repo.FindByEmail(context.Background(), "admin@example.com")

	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Nil(t, user.LastLoginAt)
}

func TestUserRepository_Update_EmailTaken(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	err = repo.Update(context.Background(), &entity.User{ID: 1, Name: "Admin", Email: "taken@example.com"})

	assert.ErrorIs(t, err, outbound.ErrConflict)
}
