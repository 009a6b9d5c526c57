package inbound

import (
	"context"

	"github.com/stockroom/backoffice/domain/entity"
)

type DashboardTotals struct {
	Products         int `json:"products"`
	Categories       int `json:"categories"`
	InventoryRecords int `json:"inventory_records"`
	LowStock         int `json:"low_stock"`
}

type StockTrend struct {
	Date    string `json:"date"`
	Updates int    `json:"updates"`
}

type DashboardSummary struct {
	Totals         DashboardTotals     `json:"totals"`
	LowStockItems  []*entity.Inventory `json:"low_stock_items"`
	RecentActivity []*entity.Inventory `json:"recent_activity"`
	StockTrends    []StockTrend        `json:"stock_trends"`
}

type DashboardUseCase interface {
	Summary(ctx context.Context) (*DashboardSummary, error)
}
