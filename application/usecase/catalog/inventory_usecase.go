package catalog

import (
	"context"
	"time"

	"github.com/stockroom/backoffice/application/port/inbound"
	"github.com/stockroom/backoffice/application/port/outbound"
	"github.com/stockroom/backoffice/domain/entity"
	apperror "github.com/stockroom/backoffice/domain/error"
)

type InventoryUseCase struct {
	repo     outbound.InventoryRepository
	tx       outbound.TxManager
	recorder inbound.ChangeRecorder
}

func NewInventoryUseCase(repo outbound.InventoryRepository, tx outbound.TxManager, recorder inbound.ChangeRecorder) *InventoryUseCase {
	return &InventoryUseCase{
		repo:     repo,
		tx:       tx,
		recorder: recorder,
	}
}

// List returns inventory records, most recently updated first, each with its product.
func (uc *InventoryUseCase) List(ctx context.Context, page int) (*inbound.Paginated[*entity.Inventory], error) {
	page, offset := inbound.NormalizePage(page, inbound.DefaultPageSize)
	items, total, err := uc.repo.List(ctx, offset, inbound.DefaultPageSize)
	if err != nil {
		return nil, apperror.ErrDatabaseError("list inventory", err)
	}
	return inbound.NewPaginated(items, page, inbound.DefaultPageSize, total), nil
}

func (uc *InventoryUseCase) Get(ctx context.Context, id int64) (*entity.Inventory, error) {
	inventory, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, inventoryErrors.lookup(id, err)
	}
	return inventory, nil
}

func (uc *InventoryUseCase) Create(ctx context.Context, actorID *int64, req inbound.InventoryRequest) (*entity.Inventory, error) {
	if err := validateInventory(req); err != nil {
		return nil, err
	}

	now := time.Now()
	inventory := &entity.Inventory{
		ProductID:    req.ProductID,
		Quantity:     req.Quantity,
		ReorderLevel: reorderLevel(req),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := uc.repo.Create(ctx, inventory); err != nil {
			return err
		}
		return uc.recorder.OnCreate(ctx, actorID, inventory)
	})
	if err != nil {
		return nil, inventoryErrors.write(0, "create", err)
	}
	return uc.Get(ctx, inventory.ID)
}

func (uc *InventoryUseCase) Update(ctx context.Context, actorID *int64, id int64, req inbound.InventoryRequest) (*entity.Inventory, error) {
	if err := validateInventory(req); err != nil {
		return nil, err
	}

	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		inventory, err := uc.repo.FindForUpdate(ctx, id)
		if err != nil {
			return err
		}
		prior := inventory.AuditSnapshot()

		inventory.ProductID = req.ProductID
		inventory.Quantity = req.Quantity
		inventory.ReorderLevel = reorderLevel(req)
		inventory.UpdatedAt = time.Now()

		if err := uc.repo.Update(ctx, inventory); err != nil {
			return err
		}
		return uc.recorder.OnUpdate(ctx, actorID, inventory, prior)
	})
	if err != nil {
		return nil, inventoryErrors.write(id, "update", err)
	}
	return uc.Get(ctx, id)
}

func (uc *InventoryUseCase) Delete(ctx context.Context, actorID *int64, id int64) error {
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		inventory, err := uc.repo.FindForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := uc.repo.Delete(ctx, id); err != nil {
			return err
		}
		return uc.recorder.OnDelete(ctx, actorID, inventory)
	})
	if err != nil {
		return inventoryErrors.remove(id, err)
	}
	return nil
}

// reorderLevel treats a missing reorder level as zero.
func reorderLevel(req inbound.InventoryRequest) int {
	if req.ReorderLevel == nil {
		return 0
	}
	return *req.ReorderLevel
}

func validateInventory(req inbound.InventoryRequest) error {
	if req.ProductID <= 0 {
		return apperror.ErrValidation("product_id", "the product_id field is required")
	}
	if req.Quantity < 0 {
		return apperror.ErrValidation("quantity", "the quantity must be at least 0")
	}
	if req.ReorderLevel != nil && *req.ReorderLevel < 0 {
		return apperror.ErrValidation("reorder_level", "the reorder_level must be at least 0")
	}
	return nil
}
