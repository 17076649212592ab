package models

import (
	"context"
	"time"

	"github.com/mmdatafocus/insights_backend/config"
	"github.com/shopspring/decimal"
)

// ItemSalesAggregate is one row of the per-product sales rollup over the
// analysis window.
type ItemSalesAggregate struct {
	ProductId    int             `json:"product_id"`
	Name         string          `json:"name"`
	Revenue      decimal.Decimal `json:"revenue"`
	QtySold      decimal.Decimal `json:"qty_sold"`
	Cogs         decimal.Decimal `json:"cogs"`
	InvoiceCount int             `json:"invoice_count"`
}

// GetItemSalesAggregates rolls up submitted, non-return invoice lines per
// product since periodStart. COGS approximates cost as quantity times the
// product's current valuation rate when the line carries no cost amount.
func GetItemSalesAggregates(ctx context.Context, periodStart time.Time) ([]*ItemSalesAggregate, error) {
	db := config.GetDB()
	var rows []*ItemSalesAggregate
	if err := db.WithContext(ctx).Raw(`
SELECT
    sid.product_id,
    MAX(sid.name) AS name,
    COALESCE(SUM(sid.detail_total_amount), 0) AS revenue,
    COALESCE(SUM(sid.detail_qty), 0) AS qty_sold,
    COALESCE(SUM(IF(sid.cost_amount > 0, sid.cost_amount, sid.detail_qty * p.purchase_price)), 0) AS cogs,
    COUNT(DISTINCT si.id) AS invoice_count
FROM
    sales_invoice_details sid
    JOIN sales_invoices si ON si.id = sid.sales_invoice_id
    LEFT JOIN products p ON p.id = sid.product_id
WHERE
    si.current_status IN ('Confirmed', 'Partial Paid', 'Paid', 'Write Off')
    AND si.is_return = false
    AND si.invoice_date >= @periodStart
GROUP BY sid.product_id
`, map[string]interface{}{
		"periodStart": periodStart,
	}).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ItemMonthlyQty is one (product, calendar month) demand bucket.
type ItemMonthlyQty struct {
	ProductId  int             `json:"product_id"`
	SalesMonth string          `json:"sales_month"`
	Qty        decimal.Decimal `json:"qty"`
}

// GetItemMonthlyQuantities returns per-product monthly sold quantities since
// periodStart. Months with no sales for a product are absent; callers
// zero-fill.
func GetItemMonthlyQuantities(ctx context.Context, periodStart time.Time) ([]*ItemMonthlyQty, error) {
	db := config.GetDB()
	var rows []*ItemMonthlyQty
	if err := db.WithContext(ctx).Raw(`
SELECT
    sid.product_id,
    DATE_FORMAT(si.invoice_date, '%Y-%m') AS sales_month,
    COALESCE(SUM(sid.detail_qty), 0) AS qty
FROM
    sales_invoice_details sid
    JOIN sales_invoices si ON si.id = sid.sales_invoice_id
WHERE
    si.current_status IN ('Confirmed', 'Partial Paid', 'Paid', 'Write Off')
    AND si.is_return = false
    AND si.invoice_date >= @periodStart
GROUP BY sid.product_id, DATE_FORMAT(si.invoice_date, '%Y-%m')
`, map[string]interface{}{
		"periodStart": periodStart,
	}).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// InvoiceItemRow is one (invoice, product) pair from the basket query.
type InvoiceItemRow struct {
	SalesInvoiceId int    `json:"sales_invoice_id"`
	ProductId      int    `json:"product_id"`
	Name           string `json:"name"`
}

// GetInvoiceItemRows returns every (invoice, product) pair across submitted,
// non-return invoices, already deduplicated per invoice.
func GetInvoiceItemRows(ctx context.Context) ([]*InvoiceItemRow, error) {
	db := config.GetDB()
	var rows []*InvoiceItemRow
	if err := db.WithContext(ctx).Raw(`
SELECT DISTINCT
    sid.sales_invoice_id,
    sid.product_id,
    sid.name
FROM
    sales_invoice_details sid
    JOIN sales_invoices si ON si.id = sid.sales_invoice_id
WHERE
    si.current_status IN ('Confirmed', 'Partial Paid', 'Paid', 'Write Off')
    AND si.is_return = false
ORDER BY sid.sales_invoice_id, sid.product_id
`).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
