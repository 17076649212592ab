package models

import (
	"context"

	"github.com/mmdatafocus/insights_backend/config"
	"github.com/shopspring/decimal"
)

// Product is a read-only projection of the host application's products table.
// PurchasePrice doubles as the valuation rate for the approximate COGS margin.
type Product struct {
	ID            int             `gorm:"primary_key" json:"id"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	Sku           string          `gorm:"size:100" json:"sku"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"purchase_price"`
}

// StockSummary mirrors the host's stock cache: current on-hand quantity per
// product and warehouse.
type StockSummary struct {
	ID          int             `gorm:"primary_key" json:"id"`
	ProductId   int             `gorm:"index;not null" json:"product_id"`
	WarehouseId int             `gorm:"index;not null" json:"warehouse_id"`
	CurrentQty  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"current_qty"`
}

type productInventoryValue struct {
	ProductId      int             `json:"product_id"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
}

// GetInventoryValues returns the current inventory value per product
// (on-hand quantity across warehouses times the valuation rate). Products
// with no stock rows are absent; callers treat them as zero value.
func GetInventoryValues(ctx context.Context) (map[int]decimal.Decimal, error) {
	db := config.GetDB()
	var rows []*productInventoryValue
	if err := db.WithContext(ctx).Raw(`
SELECT
    ss.product_id,
    COALESCE(SUM(ss.current_qty), 0) * p.purchase_price AS inventory_value
FROM
    stock_summaries ss
    JOIN products p ON p.id = ss.product_id
GROUP BY ss.product_id, p.purchase_price
`).Scan(&rows).Error; err != nil {
		return nil, err
	}

	values := make(map[int]decimal.Decimal, len(rows))
	for _, row := range rows {
		values[row.ProductId] = row.InventoryValue
	}
	return values, nil
}
