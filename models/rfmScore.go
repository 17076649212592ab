package models

import (
	"context"
	"time"

	"github.com/mmdatafocus/insights_backend/config"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CustomerRFMScore is the per-customer scoring record. There is exactly one
// row per customer (upsert keyed by customer_id). AverageScore is always
// recomputed from the four current sub-scores; PreviousAverage moves only
// when the new average differs by at least ScoreChangeSensitivity.
type CustomerRFMScore struct {
	ID         int `gorm:"primary_key" json:"id"`
	CustomerId int `gorm:"uniqueIndex;not null" json:"customer_id"`

	RecencyScore   int     `gorm:"not null;default:0" json:"recency_score"`
	FrequencyScore int     `gorm:"not null;default:0" json:"frequency_score"`
	MonetaryScore  int     `gorm:"not null;default:0" json:"monetary_score"`
	PaymentScore   float64 `gorm:"type:decimal(3,1);not null;default:0" json:"payment_score"`
	TotalScore     float64 `gorm:"type:decimal(4,1);not null;default:0" json:"total_score"`
	AverageScore   float64 `gorm:"type:decimal(3,1);not null;default:0" json:"average_score"`

	Tier    ScoreTier `gorm:"type:enum('Excellent', 'Good', 'Average', 'Fair', 'Poor');default:null" json:"tier"`
	Segment string    `gorm:"size:50" json:"segment"`

	LastPurchaseDate  *time.Time      `json:"last_purchase_date"`
	DaysSincePurchase *int            `json:"days_since_purchase"`
	TotalOrders       int             `gorm:"not null;default:0" json:"total_orders"`
	TotalSpent        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_spent"`

	OnTimeInvoices   int     `gorm:"not null;default:0" json:"on_time_invoices"`
	LateInvoices     int     `gorm:"not null;default:0" json:"late_invoices"`
	AvgDaysLate      float64 `gorm:"type:decimal(8,1);not null;default:0" json:"avg_days_late"`
	PaymentTermsDays int     `gorm:"not null;default:0" json:"payment_terms_days"`

	PreviousAverage float64    `gorm:"type:decimal(3,1);not null;default:0" json:"previous_average"`
	ScoreChangedOn  *time.Time `json:"score_changed_on"`

	LastCalculated time.Time `json:"last_calculated"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// GetOrCreateCustomerRFMScore loads the score record for the customer, or
// returns a fresh in-memory record (not yet persisted) when none exists.
// The second return reports whether the record already existed.
func GetOrCreateCustomerRFMScore(ctx context.Context, customerId int) (*CustomerRFMScore, bool, error) {
	db := config.GetDB()
	var score CustomerRFMScore
	err := db.WithContext(ctx).Where("customer_id = ?", customerId).First(&score).Error
	if err == nil {
		return &score, true, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}
	return &CustomerRFMScore{CustomerId: customerId}, false, nil
}

// Save persists the record; gorm issues an INSERT for new records and an
// UPDATE for loaded ones, keeping the one-row-per-customer invariant.
func (s *CustomerRFMScore) Save(ctx context.Context) error {
	db := config.GetDB()
	return db.WithContext(ctx).Save(s).Error
}

// GetAllCustomerRFMScores returns the full current score table.
func GetAllCustomerRFMScores(ctx context.Context) ([]*CustomerRFMScore, error) {
	db := config.GetDB()
	var scores []*CustomerRFMScore
	if err := db.WithContext(ctx).Order("customer_id").Find(&scores).Error; err != nil {
		return nil, err
	}
	return scores, nil
}
