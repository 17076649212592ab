package models

import (
	"context"
	"time"

	"github.com/mmdatafocus/insights_backend/config"
	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"
)

// ItemAnalytics is the per-product analytics record. Each analytics run
// recomputes every field and overwrites the prior row (no merge, no
// change-detection).
type ItemAnalytics struct {
	ID        int    `gorm:"primary_key" json:"id"`
	ProductId int    `gorm:"uniqueIndex;not null" json:"product_id"`
	Name      string `gorm:"size:255" json:"name"`

	Revenue      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"revenue"`
	Profit       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"profit"`
	QtySold      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"qty_sold"`
	InvoiceCount int             `gorm:"not null;default:0" json:"invoice_count"`

	ABCCategory ABCCategory `gorm:"type:enum('A', 'B', 'C');default:null" json:"abc_category"`
	XYZCategory XYZCategory `gorm:"type:enum('X', 'Y', 'Z');default:null" json:"xyz_category"`

	CoefficientOfVariation float64 `gorm:"type:decimal(10,4);not null;default:0" json:"coefficient_of_variation"`
	TurnoverRatio          float64 `gorm:"type:decimal(10,4);not null;default:0" json:"turnover_ratio"`
	Gmroi                  float64 `gorm:"type:decimal(10,4);not null;default:0" json:"gmroi"`

	LastCalculated time.Time `json:"last_calculated"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Upsert writes the record keyed by product_id, fully overwriting prior
// values.
func (a *ItemAnalytics) Upsert(ctx context.Context) error {
	db := config.GetDB()
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "revenue", "profit", "qty_sold", "invoice_count",
			"abc_category", "xyz_category", "coefficient_of_variation",
			"turnover_ratio", "gmroi", "last_calculated", "updated_at",
		}),
	}).Create(a).Error
}

// GetAllItemAnalytics returns the current analytics table, highest revenue
// first.
func GetAllItemAnalytics(ctx context.Context) ([]*ItemAnalytics, error) {
	db := config.GetDB()
	var records []*ItemAnalytics
	if err := db.WithContext(ctx).Order("revenue DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
