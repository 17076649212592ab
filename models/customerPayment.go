package models

import (
	"context"
	"time"

	"github.com/mmdatafocus/insights_backend/config"
	"github.com/shopspring/decimal"
)

// CustomerPayment and PaidInvoice are read-only projections of the host
// application's payment tables. A payment may settle several invoices; the
// paid_invoices rows carry the per-invoice split.
type CustomerPayment struct {
	ID          int             `gorm:"primary_key" json:"id"`
	CustomerId  int             `gorm:"index;not null" json:"customer_id"`
	PaymentDate time.Time       `gorm:"not null" json:"payment_date"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
	IsVoid      *bool           `gorm:"not null;default:false" json:"is_void"`
}

type PaidInvoice struct {
	ID                int             `gorm:"primary_key" json:"id"`
	CustomerPaymentId int             `gorm:"index;not null" json:"customer_payment_id"`
	InvoiceId         int             `gorm:"index;not null" json:"invoice_id"`
	PaidAmount        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"paid_amount"`
}

type invoiceLastPayment struct {
	InvoiceId       int        `json:"invoice_id"`
	LastPaymentDate *time.Time `json:"last_payment_date"`
}

// GetLastPaymentDates returns the latest non-void payment date per invoice
// for one customer, keyed by invoice id. Invoices with no payment rows are
// simply absent from the map.
func GetLastPaymentDates(ctx context.Context, customerId int) (map[int]time.Time, error) {
	db := config.GetDB()
	var rows []*invoiceLastPayment
	if err := db.WithContext(ctx).Raw(`
SELECT
    invoices.invoice_id,
    MAX(payments.payment_date) AS last_payment_date
FROM
    customer_payments AS payments
    JOIN paid_invoices AS invoices ON payments.id = invoices.customer_payment_id
WHERE
    payments.customer_id = @customerId
    AND payments.is_void = false
GROUP BY invoices.invoice_id
`, map[string]interface{}{
		"customerId": customerId,
	}).Scan(&rows).Error; err != nil {
		return nil, err
	}

	dates := make(map[int]time.Time, len(rows))
	for _, row := range rows {
		if row.LastPaymentDate != nil {
			dates[row.InvoiceId] = *row.LastPaymentDate
		}
	}
	return dates, nil
}
