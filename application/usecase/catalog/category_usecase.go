package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/stockroom/backoffice/application/port/inbound"
	"github.com/stockroom/backoffice/application/port/outbound"
	"github.com/stockroom/backoffice/domain/entity"
	apperror "github.com/stockroom/backoffice/domain/error"
)

type CategoryUseCase struct {
	repo     outbound.CategoryRepository
	tx       outbound.TxManager
	recorder inbound.ChangeRecorder
}

func NewCategoryUseCase(repo outbound.CategoryRepository, tx outbound.TxManager, recorder inbound.ChangeRecorder) *CategoryUseCase {
	return &CategoryUseCase{
		repo:     repo,
		tx:       tx,
		recorder: recorder,
	}
}

// List returns categories ordered by name.
func (uc *CategoryUseCase) List(ctx context.Context, page int) (*inbound.Paginated[*entity.Category], error) {
	page, offset := inbound.NormalizePage(page, inbound.DefaultPageSize)
	items, total, err := uc.repo.List(ctx, offset, inbound.DefaultPageSize)
	if err != nil {
		return nil, apperror.ErrDatabaseError("list categories", err)
	}
	return inbound.NewPaginated(items, page, inbound.DefaultPageSize, total), nil
}

func (uc *CategoryUseCase) Get(ctx context.Context, id int64) (*entity.Category, error) {
	category, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, categoryErrors.lookup(id, err)
	}
	return category, nil
}

func (uc *CategoryUseCase) Create(ctx context.Context, actorID *int64, req inbound.CategoryRequest) (*entity.Category, error) {
	if err := validateCategory(req); err != nil {
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	category := entity.NewCategory(strings.TrimSpace(req.Name), strings.TrimSpace(req.Slug), req.Description, isActive)

	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := uc.repo.Create(ctx, category); err != nil {
			return err
		}
		return uc.recorder.OnCreate(ctx, actorID, category)
	})
	if err != nil {
		return nil, categoryErrors.write(0, "create", err)
	}
	return category, nil
}

func (uc *CategoryUseCase) Update(ctx context.Context, actorID *int64, id int64, req inbound.CategoryRequest) (*entity.Category, error) {
	if err := validateCategory(req); err != nil {
		return nil, err
	}

	var category *entity.Category
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		category, err = uc.repo.FindForUpdate(ctx, id)
		if err != nil {
			return err
		}
		prior := category.AuditSnapshot()

		category.Name = strings.TrimSpace(req.Name)
		category.Slug = strings.TrimSpace(req.Slug)
		category.Description = req.Description
		if req.IsActive != nil {
			category.IsActive = *req.IsActive
		}
		category.UpdatedAt = time.Now()

		if err := uc.repo.Update(ctx, category); err != nil {
			return err
		}
		return uc.recorder.OnUpdate(ctx, actorID, category, prior)
	})
	if err != nil {
		return nil, categoryErrors.write(id, "update", err)
	}
	return category, nil
}

func (uc *CategoryUseCase) Delete(ctx context.Context, actorID *int64, id int64) error {
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		category, err := uc.repo.FindForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := uc.repo.Delete(ctx, id); err != nil {
			return err
		}
		return uc.recorder.OnDelete(ctx, actorID, category)
	})
	if err != nil {
		return categoryErrors.remove(id, err)
	}
	return nil
}

func validateCategory(req inbound.CategoryRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return apperror.ErrValidation("name", "the name field is required")
	}
	if strings.TrimSpace(req.Slug) == "" {
		return apperror.ErrValidation("slug", "the slug field is required")
	}
	return nil
}
