package models

import (
	"context"
	"time"

	"github.com/mmdatafocus/insights_backend/config"
	"github.com/mmdatafocus/insights_backend/utils"
	"gorm.io/gorm"
)

// RFMSettings is the singleton configuration row for the scoring pipelines.
// Every threshold override is optional; nil falls back to the documented
// default. Overrides are NOT validated for monotonicity: a non-monotonic
// ladder silently produces inconsistent scores (known limitation).
type RFMSettings struct {
	ID                 int   `gorm:"primary_key" json:"id"`
	AnalysisPeriodDays *int  `json:"analysis_period_days"`
	AlertOnDowngrade   *bool `gorm:"not null;default:true" json:"alert_on_downgrade"`

	RecencyDays5 *int `json:"recency_days_5"`
	RecencyDays4 *int `json:"recency_days_4"`
	RecencyDays3 *int `json:"recency_days_3"`
	RecencyDays2 *int `json:"recency_days_2"`

	FrequencyOrders5 *int `json:"frequency_orders_5"`
	FrequencyOrders4 *int `json:"frequency_orders_4"`
	FrequencyOrders3 *int `json:"frequency_orders_3"`
	FrequencyOrders2 *int `json:"frequency_orders_2"`

	MonetaryAmount5 *float64 `json:"monetary_amount_5"`
	MonetaryAmount4 *float64 `json:"monetary_amount_4"`
	MonetaryAmount3 *float64 `json:"monetary_amount_3"`
	MonetaryAmount2 *float64 `json:"monetary_amount_2"`

	PaymentDays5 *int `json:"payment_days_5"`
	PaymentDays4 *int `json:"payment_days_4"`
	PaymentDays3 *int `json:"payment_days_3"`
	PaymentDays2 *int `json:"payment_days_2"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Default threshold ladders, ordered for scores 5,4,3,2 (score 1 catch-all).
var (
	DefaultRecencyDays     = [4]float64{30, 60, 90, 180}
	DefaultFrequencyOrders = [4]float64{10, 5, 3, 2}
	DefaultMonetaryAmounts = [4]float64{50000, 25000, 10000, 2000}
	DefaultPaymentDays     = [4]float64{-7, 7, 30, 60}
)

const DefaultAnalysisPeriodDays = 365

// ScoreChangeSensitivity is the minimum average-score delta that counts as a
// change: below it, neither the previous-average bookkeeping nor alerting
// fires.
const ScoreChangeSensitivity = 0.5

// ScoreThresholds carries the four resolved ladders for one pipeline run.
type ScoreThresholds struct {
	Recency   [4]float64 `json:"recency"`
	Frequency [4]float64 `json:"frequency"`
	Monetary  [4]float64 `json:"monetary"`
	Payment   [4]float64 `json:"payment"`
}

const settingsRedisKey = "rfmSettings"

// GetRFMSettings loads the singleton settings row, redis first, then the
// database. A missing row yields all-default settings rather than an error.
func GetRFMSettings(ctx context.Context) (*RFMSettings, error) {
	var settings RFMSettings
	exists, err := config.GetRedisObject(settingsRedisKey, &settings)
	if err != nil {
		return nil, err
	}
	if exists {
		return &settings, nil
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Order("id").First(&settings).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
		settings = RFMSettings{}
	}
	if err := config.SetRedisObject(settingsRedisKey, &settings, 5*time.Minute); err != nil {
		return nil, err
	}
	return &settings, nil
}

// InvalidateSettingsCache drops the cached singleton after a settings write.
func InvalidateSettingsCache() error {
	return config.RemoveRedisKey(settingsRedisKey)
}

// Save upserts the singleton row and invalidates the cache.
func (s *RFMSettings) Save(ctx context.Context) error {
	db := config.GetDB()
	if err := db.WithContext(ctx).Save(s).Error; err != nil {
		return err
	}
	return InvalidateSettingsCache()
}

func (s *RFMSettings) AnalysisPeriod() int {
	return utils.DereferencePtr(s.AnalysisPeriodDays, DefaultAnalysisPeriodDays)
}

func (s *RFMSettings) AlertingEnabled() bool {
	return utils.DereferencePtr(s.AlertOnDowngrade, true)
}

// Thresholds resolves the configured overrides into the four ordered ladders.
func (s *RFMSettings) Thresholds() ScoreThresholds {
	return ScoreThresholds{
		Recency: [4]float64{
			floatOrDefault(s.RecencyDays5, DefaultRecencyDays[0]),
			floatOrDefault(s.RecencyDays4, DefaultRecencyDays[1]),
			floatOrDefault(s.RecencyDays3, DefaultRecencyDays[2]),
			floatOrDefault(s.RecencyDays2, DefaultRecencyDays[3]),
		},
		Frequency: [4]float64{
			floatOrDefault(s.FrequencyOrders5, DefaultFrequencyOrders[0]),
			floatOrDefault(s.FrequencyOrders4, DefaultFrequencyOrders[1]),
			floatOrDefault(s.FrequencyOrders3, DefaultFrequencyOrders[2]),
			floatOrDefault(s.FrequencyOrders2, DefaultFrequencyOrders[3]),
		},
		Monetary: [4]float64{
			utils.DereferencePtr(s.MonetaryAmount5, DefaultMonetaryAmounts[0]),
			utils.DereferencePtr(s.MonetaryAmount4, DefaultMonetaryAmounts[1]),
			utils.DereferencePtr(s.MonetaryAmount3, DefaultMonetaryAmounts[2]),
			utils.DereferencePtr(s.MonetaryAmount2, DefaultMonetaryAmounts[3]),
		},
		Payment: [4]float64{
			floatOrDefault(s.PaymentDays5, DefaultPaymentDays[0]),
			floatOrDefault(s.PaymentDays4, DefaultPaymentDays[1]),
			floatOrDefault(s.PaymentDays3, DefaultPaymentDays[2]),
			floatOrDefault(s.PaymentDays2, DefaultPaymentDays[3]),
		},
	}
}

func floatOrDefault(ptr *int, def float64) float64 {
	if ptr == nil {
		return def
	}
	return float64(*ptr)
}
