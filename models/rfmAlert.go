package models

import (
	"context"
	"time"

	"github.com/mmdatafocus/insights_backend/config"
	"github.com/mmdatafocus/insights_backend/utils"
)

// RFMAlert records one qualifying score change. Alerts are append-only; the
// read flag is the only field that ever changes after creation.
type RFMAlert struct {
	ID         int       `gorm:"primary_key" json:"id"`
	CustomerId int       `gorm:"index;not null" json:"customer_id"`
	AlertType  AlertType `gorm:"type:enum('Upgrade', 'Downgrade');not null" json:"alert_type"`

	PreviousAverage float64   `gorm:"type:decimal(3,1);not null;default:0" json:"previous_average"`
	NewAverage      float64   `gorm:"type:decimal(3,1);not null;default:0" json:"new_average"`
	PreviousTier    ScoreTier `gorm:"type:enum('Excellent', 'Good', 'Average', 'Fair', 'Poor');default:null" json:"previous_tier"`
	NewTier         ScoreTier `gorm:"type:enum('Excellent', 'Good', 'Average', 'Fair', 'Poor');default:null" json:"new_tier"`

	IsRead    *bool     `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (a *RFMAlert) Create(ctx context.Context) error {
	db := config.GetDB()
	return db.WithContext(ctx).Create(a).Error
}

// GetAlerts returns alerts newest first, optionally only unread ones.
func GetAlerts(ctx context.Context, limit int, unreadOnly bool) ([]*RFMAlert, error) {
	db := config.GetDB()
	if limit <= 0 {
		limit = 20
	}
	dbCtx := db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if unreadOnly {
		dbCtx = dbCtx.Where("is_read = false")
	}
	var alerts []*RFMAlert
	if err := dbCtx.Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

// markReadOutcome decides what an UPDATE outcome means. The MySQL driver
// reports changed rows, not matched rows, so an already-read alert updates
// zero rows; only a genuinely missing id is a not-found.
func markReadOutcome(rowsAffected int64, alertExists bool) error {
	if rowsAffected > 0 || alertExists {
		return nil
	}
	return utils.ErrorRecordNotFound
}

// MarkAlertRead flips the read flag on one alert. Re-acknowledging an
// already-read alert is a no-op, not an error.
func MarkAlertRead(ctx context.Context, alertId int) error {
	db := config.GetDB()
	result := db.WithContext(ctx).Model(&RFMAlert{}).
		Where("id = ?", alertId).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	alertExists := result.RowsAffected > 0
	if !alertExists {
		var count int64
		if err := db.WithContext(ctx).Model(&RFMAlert{}).
			Where("id = ?", alertId).
			Count(&count).Error; err != nil {
			return err
		}
		alertExists = count > 0
	}
	return markReadOutcome(result.RowsAffected, alertExists)
}
