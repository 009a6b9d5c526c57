package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/stockroom/backoffice/application/port/inbound"
	"github.com/stockroom/backoffice/domain/entity"
)

type AuthUseCase struct {
	mock.Mock
}

func (m *AuthUseCase) Login(ctx context.Context, req inbound.LoginRequest) (*inbound.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.LoginResponse), args.Error(1)
}

func (m *AuthUseCase) Me(ctx context.Context, userID int64) (*entity.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *AuthUseCase) UpdateProfile(ctx context.Context, userID int64, req inbound.UpdateProfileRequest) (*entity.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *AuthUseCase) UpdatePassword(ctx context.Context, userID int64, req inbound.UpdatePasswordRequest) error {
	args := m.Called(ctx, userID, req)
	return args.Error(0)
}

type AuditQueryUseCase struct {
	mock.Mock
}

func (m *AuditQueryUseCase) List(ctx context.Context, req inbound.AuditListRequest) (*inbound.Paginated[*entity.AuditEntryView], error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.Paginated[*entity.AuditEntryView]), args.Error(1)
}

type DashboardUseCase struct {
	mock.Mock
}

func (m *DashboardUseCase) Summary(ctx context.Context) (*inbound.DashboardSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.DashboardSummary), args.Error(1)
}

type CategoryUseCase struct {
	mock.Mock
}

func (m *CategoryUseCase) List(ctx context.Context, page int) (*inbound.Paginated[*entity.Category], error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.Paginated[*entity.Category]), args.Error(1)
}

func (m *CategoryUseCase) Get(ctx context.Context, id int64) (*entity.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *CategoryUseCase) Create(ctx context.Context, actorID *int64, req inbound.CategoryRequest) (*entity.Category, error) {
	args := m.Called(ctx, actorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *CategoryUseCase) Update(ctx context.Context, actorID *int64, id int64, req inbound.CategoryRequest) (*entity.Category, error) {
	args := m.Called(ctx, actorID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *CategoryUseCase) Delete(ctx context.Context, actorID *int64, id int64) error {
	args := m.Called(ctx, actorID, id)
	return args.Error(0)
}

type ProductUseCase struct {
	mock.Mock
}

func (m *ProductUseCase) List(ctx context.Context, page int) (*inbound.Paginated[*entity.Product], error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.Paginated[*entity.Product]), args.Error(1)
}

func (m *ProductUseCase) Get(ctx context.Context, id int64) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *ProductUseCase) Create(ctx context.Context, actorID *int64, req inbound.ProductRequest) (*entity.Product, error) {
	args := m.Called(ctx, actorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *ProductUseCase) Update(ctx context.Context, actorID *int64, id int64, req inbound.ProductRequest) (*entity.Product, error) {
	args := m.Called(ctx, actorID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *ProductUseCase) Delete(ctx context.Context, actorID *int64, id int64) error {
	args := m.Called(ctx, actorID, id)
	return args.Error(0)
}

type InventoryUseCase struct {
	mock.Mock
}

func (m *InventoryUseCase) List(ctx context.Context, page int) (*inbound.Paginated[*entity.Inventory], error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.Paginated[*entity.Inventory]), args.Error(1)
}

func (m *InventoryUseCase) Get(ctx context.Context, id int64) (*entity.Inventory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Inventory), args.Error(1)
}

func (m *InventoryUseCase) Create(ctx context.Context, actorID *int64, req inbound.InventoryRequest) (*entity.Inventory, error) {
	args := m.Called(ctx, actorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Inventory), args.Error(1)
}

func (m *InventoryUseCase) Update(ctx context.Context, actorID *int64, id int64, req inbound.InventoryRequest) (*entity.Inventory, error) {
	args := m.Called(ctx, actorID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Inventory), args.Error(1)
}

func (m *InventoryUseCase) Delete(ctx context.Context, actorID *int64, id int64) error {
	args := m.Called(ctx, actorID, id)
	return args.Error(0)
}
