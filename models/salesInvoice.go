package models

import (
	"context"
	"time"

	"github.com/mmdatafocus/insights_backend/config"
	"github.com/shopspring/decimal"
)

// SalesInvoice is a read-only projection of the host application's
// sales_invoices table, trimmed to the columns the scoring and analytics
// pipelines consume.
type SalesInvoice struct {
	ID                 int                `gorm:"primary_key" json:"id"`
	CustomerId         int                `gorm:"index;not null" json:"customer_id"`
	InvoiceNumber      string             `gorm:"size:255;not null" json:"invoice_number"`
	InvoiceDate        time.Time          `gorm:"not null" json:"invoice_date"`
	InvoiceDueDate     *time.Time         `json:"invoice_due_date"`
	InvoiceTotalAmount decimal.Decimal    `gorm:"type:decimal(20,4);default:0" json:"invoice_total_amount"`
	RemainingBalance   decimal.Decimal    `gorm:"type:decimal(20,4);default:0" json:"remaining_balance"`
	CurrentStatus      SalesInvoiceStatus `gorm:"type:enum('Draft', 'Confirmed', 'Void', 'Partial Paid', 'Paid', 'Write Off');not null" json:"current_status"`
	IsReturn           *bool              `gorm:"not null;default:false" json:"is_return"`
}

type SalesInvoiceDetail struct {
	ID                int             `gorm:"primary_key" json:"id"`
	SalesInvoiceId    int             `gorm:"index;not null" json:"sales_invoice_id"`
	ProductId         int             `gorm:"index;not null" json:"product_id"`
	Name              string          `gorm:"size:255;not null" json:"name"`
	DetailQty         decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"detail_qty"`
	DetailTotalAmount decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"detail_total_amount"`
	CostAmount        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"cost_amount"`
}

// submittedStatuses are the invoice states that participate in scoring and
// analytics. Draft and Void never count; returns are excluded separately.
var submittedStatuses = []SalesInvoiceStatus{
	SalesInvoiceStatusConfirmed,
	SalesInvoiceStatusPartialPaid,
	SalesInvoiceStatusPaid,
	SalesInvoiceStatusWriteOff,
}

// CustomerPurchaseAggregate is one row of the per-customer purchase rollup.
type CustomerPurchaseAggregate struct {
	CustomerId       int             `json:"customer_id"`
	LastPurchaseDate *time.Time      `json:"last_purchase_date"`
	TotalOrders      int             `json:"total_orders"`
	TotalSpent       decimal.Decimal `json:"total_spent"`
}

// GetCustomerPurchaseAggregates rolls up submitted, non-return invoices per
// customer within the analysis window. Customers with no invoices in the
// window do not appear in the result.
func GetCustomerPurchaseAggregates(ctx context.Context, periodStart time.Time) (map[int]*CustomerPurchaseAggregate, error) {
	db := config.GetDB()
	var rows []*CustomerPurchaseAggregate
	if err := db.WithContext(ctx).Raw(`
SELECT
    customer_id,
    MAX(invoice_date) AS last_purchase_date,
    COUNT(id) AS total_orders,
    COALESCE(SUM(invoice_total_amount), 0) AS total_spent
FROM
    sales_invoices
WHERE
    current_status IN ('Confirmed', 'Partial Paid', 'Paid', 'Write Off')
    AND is_return = false
    AND invoice_date >= @periodStart
GROUP BY customer_id
`, map[string]interface{}{
		"periodStart": periodStart,
	}).Scan(&rows).Error; err != nil {
		return nil, err
	}

	aggregates := make(map[int]*CustomerPurchaseAggregate, len(rows))
	for _, row := range rows {
		aggregates[row.CustomerId] = row
	}
	return aggregates, nil
}

// GetCustomerInvoices returns every submitted, non-return invoice of one
// customer, oldest first. Used by the payment scorer, which needs the full
// invoice history rather than the windowed rollup.
func GetCustomerInvoices(ctx context.Context, customerId int) ([]*SalesInvoice, error) {
	db := config.GetDB()
	var invoices []*SalesInvoice
	if err := db.WithContext(ctx).
		Where("customer_id = ? AND current_status IN ? AND is_return = false", customerId, submittedStatuses).
		Order("invoice_date").
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}
