package dashboard

import (
	"context"
	"time"

	"github.com/stockroom/backoffice/application/port/inbound"
	"github.com/stockroom/backoffice/application/port/outbound"
	"github.com/stockroom/backoffice/domain/entity"
	apperror "github.com/stockroom/backoffice/domain/error"
	"github.com/stockroom/backoffice/infrastructure/service/logger"
)

const (
	lowStockLimit       = 6
	recentActivityLimit = 6
	trendDays           = 14
)

// stockActions are the inventory actions counted as stock movements.
var stockActions = []entity.AuditAction{entity.AuditActionCreated, entity.AuditActionUpdated}

type UseCase struct {
	productRepo   outbound.ProductRepository
	categoryRepo  outbound.CategoryRepository
	inventoryRepo outbound.InventoryRepository
	auditRepo     outbound.AuditRepository
	logger        logger.Logger
	location      *time.Location
	now           func() time.Time
}

func NewUseCase(
	productRepo outbound.ProductRepository,
	categoryRepo outbound.CategoryRepository,
	inventoryRepo outbound.InventoryRepository,
	auditRepo outbound.AuditRepository,
	log logger.Logger,
	location *time.Location,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		productRepo:   productRepo,
		categoryRepo:  categoryRepo,
		inventoryRepo: inventoryRepo,
		auditRepo:     auditRepo,
		logger:        log,
		location:      location,
		now:           time.Now,
	}
}

// Summary assembles the dashboard: catalog totals, the lowest stocked and most
// recently touched inventory records, and daily inventory movements over the
// last two weeks.
func (uc *UseCase) Summary(ctx context.Context) (*inbound.DashboardSummary, error) {
	start := time.Now()

	totals, err := uc.totals(ctx)
	if err != nil {
		return nil, err
	}

	lowStock, err := uc.inventoryRepo.ListLowStock(ctx, lowStockLimit)
	if err != nil {
		return nil, apperror.ErrDatabaseError("list low stock inventory", err)
	}

	recent, err := uc.inventoryRepo.ListRecentlyUpdated(ctx, recentActivityLimit)
	if err != nil {
		return nil, apperror.ErrDatabaseError("list recent inventory activity", err)
	}

	trends, err := uc.stockTrends(ctx)
	if err != nil {
		return nil, err
	}

	logger.LogPerformance(ctx, uc.logger, "dashboard_summary", time.Since(start), nil)

	return &inbound.DashboardSummary{
		Totals:         *totals,
		LowStockItems:  nonNilInventories(lowStock),
		RecentActivity: nonNilInventories(recent),
		StockTrends:    trends,
	}, nil
}

func (uc *UseCase) totals(ctx context.Context) (*inbound.DashboardTotals, error) {
	products, err := uc.productRepo.Count(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError("count products", err)
	}
	categories, err := uc.categoryRepo.Count(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError("count categories", err)
	}
	records, err := uc.inventoryRepo.Count(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError("count inventory", err)
	}
	lowStock, err := uc.inventoryRepo.CountLowStock(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError("count low stock inventory", err)
	}

	return &inbound.DashboardTotals{
		Products:         products,
		Categories:       categories,
		InventoryRecords: records,
		LowStock:         lowStock,
	}, nil
}

// stockTrends returns one bucket per calendar day, oldest first, ending today
// in the configured location. Days without entries count zero.
func (uc *UseCase) stockTrends(ctx context.Context) ([]inbound.StockTrend, error) {
	today := uc.now().In(uc.location)
	from := time.Date(today.Year(), today.Month(), today.Day()-(trendDays-1), 0, 0, 0, 0, uc.location)
	to := time.Date(today.Year(), today.Month(), today.Day()+1, 0, 0, 0, 0, uc.location)

	counts, err := uc.auditRepo.CountDaily(ctx, entity.AuditTypeInventory, stockActions, from, to, uc.location)
	if err != nil {
		return nil, apperror.ErrDatabaseError("count inventory updates", err)
	}

	byDate := make(map[string]int, len(counts))
	for _, c := range counts {
		byDate[c.Date] = c.Updates
	}

	trends := make([]inbound.StockTrend, 0, trendDays)
	for i := 0; i < trendDays; i++ {
		date := time.Date(from.Year(), from.Month(), from.Day()+i, 0, 0, 0, 0, uc.location).Format("2006-01-02")
		trends = append(trends, inbound.StockTrend{Date: date, Updates: byDate[date]})
	}
	return trends, nil
}

func nonNilInventories(items []*entity.Inventory) []*entity.Inventory {
	if items == nil {
		return []*entity.Inventory{}
	}
	return items
}
