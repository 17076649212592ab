package models

import (
	"context"
	"time"

	"github.com/mmdatafocus/insights_backend/config"
	"github.com/mmdatafocus/insights_backend/utils"
)

// RFMHistory is an immutable daily snapshot of one customer's scores.
//
// Grain: (customer_id, snapshot_date). The unique index enforces at most one
// snapshot per customer per calendar day; snapshot creation skips customers
// already snapshotted today instead of overwriting.
type RFMHistory struct {
	ID           int       `gorm:"primary_key" json:"id"`
	CustomerId   int       `gorm:"uniqueIndex:idx_rfm_history_cust_date,priority:1;not null" json:"customer_id"`
	SnapshotDate time.Time `gorm:"uniqueIndex:idx_rfm_history_cust_date,priority:2;not null" json:"snapshot_date"`

	RecencyScore   int       `gorm:"not null;default:0" json:"recency_score"`
	FrequencyScore int       `gorm:"not null;default:0" json:"frequency_score"`
	MonetaryScore  int       `gorm:"not null;default:0" json:"monetary_score"`
	PaymentScore   float64   `gorm:"type:decimal(3,1);not null;default:0" json:"payment_score"`
	AverageScore   float64   `gorm:"type:decimal(3,1);not null;default:0" json:"average_score"`
	Tier           ScoreTier `gorm:"type:enum('Excellent', 'Good', 'Average', 'Fair', 'Poor');default:null" json:"tier"`
	Segment        string    `gorm:"size:50" json:"segment"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// GetSnapshottedCustomerIds returns the customer ids that already have a
// snapshot for the given date.
func GetSnapshottedCustomerIds(ctx context.Context, snapshotDate time.Time) (map[int]bool, error) {
	db := config.GetDB()
	var ids []int
	if err := db.WithContext(ctx).Model(&RFMHistory{}).
		Where("snapshot_date = ?", snapshotDate).
		Pluck("customer_id", &ids).Error; err != nil {
		return nil, err
	}
	snapshotted := make(map[int]bool, len(ids))
	for _, id := range ids {
		snapshotted[id] = true
	}
	return snapshotted, nil
}

func (h *RFMHistory) Create(ctx context.Context) error {
	db := config.GetDB()
	return db.WithContext(ctx).Create(h).Error
}

// trendWindowStart anchors the trailing window on a calendar-day boundary.
// Snapshots carry date-grain values, so an untruncated cutoff would silently
// drop the oldest day's rows for most of the day.
func trendWindowStart(now time.Time, days int) (time.Time, error) {
	if days <= 0 {
		days = 30
	}
	today, err := utils.ConvertToDate(now, "UTC")
	if err != nil {
		return time.Time{}, err
	}
	return today.AddDate(0, 0, -days), nil
}

// GetTrendData returns snapshots within the trailing window, oldest first,
// optionally filtered to one customer.
func GetTrendData(ctx context.Context, customerId *int, days int) ([]*RFMHistory, error) {
	db := config.GetDB()
	fromDate, err := trendWindowStart(time.Now().UTC(), days)
	if err != nil {
		return nil, err
	}

	dbCtx := db.WithContext(ctx).
		Where("snapshot_date >= ?", fromDate).
		Order("snapshot_date")
	if customerId != nil && *customerId != 0 {
		dbCtx = dbCtx.Where("customer_id = ?", *customerId)
	}
	var snapshots []*RFMHistory
	if err := dbCtx.Find(&snapshots).Error; err != nil {
		return nil, err
	}
	return snapshots, nil
}

// PruneSnapshots deletes snapshots older than the retention window and
// returns the number of rows removed.
func PruneSnapshots(ctx context.Context, olderThan time.Time) (int64, error) {
	db := config.GetDB()
	result := db.WithContext(ctx).
		Where("snapshot_date < ?", olderThan).
		Delete(&RFMHistory{})
	return result.RowsAffected, result.Error
}
