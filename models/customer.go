package models

import (
	"context"

	"github.com/mmdatafocus/insights_backend/config"
)

// Customer is a read-only projection of the host application's customers
// table. This service never creates or mutates customers; it only resolves
// payment terms and names for scoring.
type Customer struct {
	ID                             int          `gorm:"primary_key" json:"id"`
	Name                           string       `gorm:"size:100;not null" json:"name"`
	CustomerPaymentTerms           PaymentTerms `gorm:"type:enum('Net15', 'Net30', 'Net45', 'Net60', 'DueMonthEnd', 'DueNextMonthEnd', 'DueOnReceipt', 'Custom');not null;default:'DueOnReceipt'" json:"customer_payment_terms"`
	CustomerPaymentTermsCustomDays int          `gorm:"default:0" json:"customer_payment_terms_custom_days"`
	IsActive                       *bool        `gorm:"not null;default:true" json:"is_active"`
}

// CreditDays resolves the customer's payment terms into a number of credit
// days used as the default due-date offset. Month-end style terms have no
// fixed day count and fall back to 30.
func (c Customer) CreditDays() int {
	switch c.CustomerPaymentTerms {
	case PaymentTermsNet15:
		return 15
	case PaymentTermsNet30:
		return 30
	case PaymentTermsNet45:
		return 45
	case PaymentTermsNet60:
		return 60
	case PaymentTermsDueEndOfMonth, PaymentTermsDueEndOfNextMonth:
		return 30
	case PaymentTermsCustom:
		return c.CustomerPaymentTermsCustomDays
	default: // DueOnReceipt
		return 0
	}
}

func GetAllCustomers(ctx context.Context) ([]*Customer, error) {
	db := config.GetDB()
	var customers []*Customer
	if err := db.WithContext(ctx).Order("id").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}
