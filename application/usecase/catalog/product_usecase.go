package catalog

import (
	"context"
	"math"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/stockroom/backoffice/application/port/inbound"
	"github.com/stockroom/backoffice/application/port/outbound"
	"github.com/stockroom/backoffice/domain/entity"
	apperror "github.com/stockroom/backoffice/domain/error"
)

const (
	maxProductNameLength = 200
	maxSKULength         = 100
	maxImageURLLength    = 500

	// maxPrice is the largest value a NUMERIC(12,2) column holds.
	maxPrice = 9999999999.99
)

type ProductUseCase struct {
	repo     outbound.ProductRepository
	tx       outbound.TxManager
	recorder inbound.ChangeRecorder
}

func NewProductUseCase(repo outbound.ProductRepository, tx outbound.TxManager, recorder inbound.ChangeRecorder) *ProductUseCase {
	return &ProductUseCase{
		repo:     repo,
		tx:       tx,
		recorder: recorder,
	}
}

// List returns products ordered by name, each with its category and inventory.
func (uc *ProductUseCase) List(ctx context.Context, page int) (*inbound.Paginated[*entity.Product], error) {
	page, offset := inbound.NormalizePage(page, inbound.DefaultPageSize)
	items, total, err := uc.repo.List(ctx, offset, inbound.DefaultPageSize)
	if err != nil {
		return nil, apperror.ErrDatabaseError("list products", err)
	}
	return inbound.NewPaginated(items, page, inbound.DefaultPageSize, total), nil
}

func (uc *ProductUseCase) Get(ctx context.Context, id int64) (*entity.Product, error) {
	product, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, productErrors.lookup(id, err)
	}
	return product, nil
}

func (uc *ProductUseCase) Create(ctx context.Context, actorID *int64, req inbound.ProductRequest) (*entity.Product, error) {
	status, err := validateProduct(req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	product := &entity.Product{
		CategoryID:  req.CategoryID,
		Name:        strings.TrimSpace(req.Name),
		SKU:         strings.TrimSpace(req.SKU),
		Description: req.Description,
		Price:       roundPrice(req.Price),
		Status:      status,
		ImageURL:    req.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := uc.repo.Create(ctx, product); err != nil {
			return err
		}
		return uc.recorder.OnCreate(ctx, actorID, product)
	})
	if err != nil {
		return nil, productErrors.write(0, "create", err)
	}
	return uc.Get(ctx, product.ID)
}

func (uc *ProductUseCase) Update(ctx context.Context, actorID *int64, id int64, req inbound.ProductRequest) (*entity.Product, error) {
	status, err := validateProduct(req)
	if err != nil {
		return nil, err
	}

	err = uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		product, err := uc.repo.FindForUpdate(ctx, id)
		if err != nil {
			return err
		}
		prior := product.AuditSnapshot()

		product.CategoryID = req.CategoryID
		product.Name = strings.TrimSpace(req.Name)
		product.SKU = strings.TrimSpace(req.SKU)
		product.Description = req.Description
		product.Price = roundPrice(req.Price)
		product.Status = status
		product.ImageURL = req.ImageURL
		product.UpdatedAt = time.Now()

		if err := uc.repo.Update(ctx, product); err != nil {
			return err
		}
		return uc.recorder.OnUpdate(ctx, actorID, product, prior)
	})
	if err != nil {
		return nil, productErrors.write(id, "update", err)
	}
	return uc.Get(ctx, id)
}

// Delete removes the product. A product that still has an inventory record
// cannot be deleted.
func (uc *ProductUseCase) Delete(ctx context.Context, actorID *int64, id int64) error {
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		product, err := uc.repo.FindForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := uc.repo.Delete(ctx, id); err != nil {
			return err
		}
		return uc.recorder.OnDelete(ctx, actorID, product)
	})
	if err != nil {
		return productErrors.remove(id, err)
	}
	return nil
}

// validateProduct checks the request and returns the status to store,
// defaulting to active.
func validateProduct(req inbound.ProductRequest) (entity.ProductStatus, error) {
	if req.CategoryID <= 0 {
		return "", apperror.ErrValidation("category_id", "the category_id field is required")
	}
	name, sku := strings.TrimSpace(req.Name), strings.TrimSpace(req.SKU)
	if name == "" {
		return "", apperror.ErrValidation("name", "the name field is required")
	}
	if utf8.RuneCountInString(name) > maxProductNameLength {
		return "", apperror.ErrValidation("name", "the name may not be greater than 200 characters")
	}
	if sku == "" {
		return "", apperror.ErrValidation("sku", "the sku field is required")
	}
	if utf8.RuneCountInString(sku) > maxSKULength {
		return "", apperror.ErrValidation("sku", "the sku may not be greater than 100 characters")
	}
	if req.ImageURL != nil && *req.ImageURL != "" {
		if len(*req.ImageURL) > maxImageURLLength {
			return "", apperror.ErrValidation("image_url", "the image url may not be greater than 500 characters")
		}
		if u, err := url.ParseRequestURI(*req.ImageURL); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return "", apperror.ErrValidation("image_url", "the image url must be a valid URL")
		}
	}
	if req.Price < 0 {
		return "", apperror.ErrValidation("price", "the price must be at least 0")
	}
	if math.IsNaN(req.Price) || roundPrice(req.Price) > maxPrice {
		return "", apperror.ErrValidation("price", "the price may not be greater than 9999999999.99")
	}

	status := entity.ProductStatus(strings.TrimSpace(req.Status))
	if status == "" {
		return entity.ProductStatusActive, nil
	}
	if !status.IsValid() {
		return "", apperror.ErrValidation("status", "the selected status is invalid")
	}
	return status, nil
}

// roundPrice rounds to whole cents, the precision the price column stores.
// Snapshots taken before and after a reload then agree.
func roundPrice(p float64) float64 {
	return math.Round(p*100) / 100
}
