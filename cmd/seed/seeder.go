package main

import (
	"context"
	"fmt"

	"github.com/stockroom/backoffice/application/port/inbound"
	"github.com/stockroom/backoffice/infrastructure/service/logger"
)

type categorySeed struct {
	name        string
	slug        string
	description string
}

type productSeed struct {
	categorySlug string
	name         string
	sku          string
	description  string
	price        float64
}

type stockSeed struct {
	quantity     int
	reorderLevel int
}

var (
	categorySeeds = []categorySeed{
		{"Electronics", "electronics", "Devices, accessories, and gadgets."},
		{"Home & Kitchen", "home-kitchen", "Appliances and household essentials."},
		{"Apparel", "apparel", "Clothing and accessories."},
	}

	productSeeds = []productSeed{
		{"electronics", "Wireless Headphones", "ELEC-HEAD-001", "Noise-cancelling over-ear headphones.", 129.99},
		{"home-kitchen", "Smart Air Fryer", "HOME-AFRY-002", "5L smart air fryer with presets.", 89.50},
		{"apparel", "Classic Hoodie", "APP-HOOD-003", "Unisex cotton hoodie.", 39.00},
	}

	stockSeeds = map[string]stockSeed{
		"ELEC-HEAD-001": {quantity: 24, reorderLevel: 5},
		"HOME-AFRY-002": {quantity: 12, reorderLevel: 3},
		"APP-HOOD-003":  {quantity: 40, reorderLevel: 10},
	}

	defaultStock = stockSeed{quantity: 10, reorderLevel: 2}
)

type categoryCounter interface {
	Count(ctx context.Context) (int, error)
}

// seeder fills an empty catalog through the use cases, so every seeded row
// gets a system audit entry (nil actor).
type seeder struct {
	existing    categoryCounter
	categories  inbound.CategoryUseCase
	products    inbound.ProductUseCase
	inventories inbound.InventoryUseCase
	logger      logger.Logger
}

func (s *seeder) Run(ctx context.Context) error {
	count, err := s.existing.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if count > 0 {
		s.logger.Info(ctx, "Catalog already seeded, skipping", map[string]interface{}{"categories": count})
		return nil
	}

	active := true
	categoryIDs := make(map[string]int64, len(categorySeeds))
	for _, c := range categorySeeds {
		description := c.description
		category, err := s.categories.Create(ctx, nil, inbound.CategoryRequest{
			Name:        c.name,
			Slug:        c.slug,
			Description: &description,
			IsActive:    &active,
		})
		if err != nil {
			return fmt.Errorf("failed to seed category %s: %w", c.slug, err)
		}
		categoryIDs[c.slug] = category.ID
	}

	for _, p := range productSeeds {
		categoryID, ok := categoryIDs[p.categorySlug]
		if !ok {
			continue
		}

		description := p.description
		product, err := s.products.Create(ctx, nil, inbound.ProductRequest{
			CategoryID:  categoryID,
			Name:        p.name,
			SKU:         p.sku,
			Description: &description,
			Price:       p.price,
			Status:      "active",
		})
		if err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.sku, err)
		}

		stock, ok := stockSeeds[p.sku]
		if !ok {
			stock = defaultStock
		}
		reorderLevel := stock.reorderLevel
		if _, err := s.inventories.Create(ctx, nil, inbound.InventoryRequest{
			ProductID:    product.ID,
			Quantity:     stock.quantity,
			ReorderLevel: &reorderLevel,
		}); err != nil {
			return fmt.Errorf("failed to seed inventory for %s: %w", p.sku, err)
		}
	}

	s.logger.Info(ctx, "Catalog seeded", map[string]interface{}{
		"categories": len(categorySeeds),
		"products":   len(productSeeds),
	})
	return nil
}
