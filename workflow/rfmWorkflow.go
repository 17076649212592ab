package workflow

import (
	"context"
	"math"
	"time"

	"github.com/mmdatafocus/insights_backend/config"
	"github.com/mmdatafocus/insights_backend/models"
	"github.com/mmdatafocus/insights_backend/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// neverPurchasedDays is the sentinel recency for customers with no invoice
// in the analysis window; it sits past every sane recency ladder so they
// always score 1.
const neverPurchasedDays = 9999

type RFMScoreRunSummary struct {
	Processed     int `json:"processed"`
	AlertsCreated int `json:"alerts_created"`
}

// purchaseFacts resolves one customer's windowed purchase rollup. A customer
// absent from the rollup (no purchases inside the analysis window) resets to
// the never-buyer baseline: sentinel recency, zero orders, zero spent.
func purchaseFacts(agg *models.CustomerPurchaseAggregate, today time.Time) (lastPurchase *time.Time, daysSince int, orders int, spent decimal.Decimal) {
	if agg == nil || agg.LastPurchaseDate == nil {
		return nil, neverPurchasedDays, 0, decimal.Zero
	}
	return agg.LastPurchaseDate, daysBetween(*agg.LastPurchaseDate, today), agg.TotalOrders, agg.TotalSpent
}

// detectScoreChange applies the sensitivity gate to a recomputed average.
// The previous-average bookkeeping and the alert direction are one decision:
// both fire at |delta| >= ScoreChangeSensitivity, neither below it. Fresh
// records and zero stored averages never register a change.
func detectScoreChange(existed bool, oldAverage, newAverage float64) (bool, models.AlertType) {
	if !existed || oldAverage == 0 {
		return false, ""
	}
	if math.Abs(oldAverage-newAverage) < models.ScoreChangeSensitivity {
		return false, ""
	}
	if newAverage < oldAverage {
		return true, models.AlertTypeDowngrade
	}
	return true, models.AlertTypeUpgrade
}

// CalculateRFMScores runs the customer scoring pipeline over all customers:
// purchase aggregation, the four sub-scores, composite average, change
// detection and alerting, and the per-customer upsert. The run commits per
// customer; the first error aborts the remainder of the batch and leaves
// earlier writes in place.
func CalculateRFMScores(ctx context.Context) (*RFMScoreRunSummary, error) {
	logger := config.GetLogger()
	db := config.GetDB()

	if err := AcquireRunLock(db, "rfm-scores"); err != nil {
		return nil, err
	}
	defer ReleaseRunLock(db, "rfm-scores")

	settings, err := models.GetRFMSettings(ctx)
	if err != nil {
		return nil, err
	}
	thresholds := settings.Thresholds()

	today, err := utils.ConvertToDate(time.Now().UTC(), "UTC")
	if err != nil {
		return nil, err
	}
	periodStart := today.AddDate(0, 0, -settings.AnalysisPeriod())

	customers, err := models.GetAllCustomers(ctx)
	if err != nil {
		return nil, err
	}
	aggregates, err := models.GetCustomerPurchaseAggregates(ctx, periodStart)
	if err != nil {
		return nil, err
	}

	summary := &RFMScoreRunSummary{}
	now := time.Now().UTC()

	for _, customer := range customers {
		lastPurchase, daysSince, totalOrders, totalSpent := purchaseFacts(aggregates[customer.ID], today)
		totalSpentValue, _ := totalSpent.Float64()

		rScore := ScoreLowerBetter(float64(daysSince), thresholds.Recency)
		fScore := ScoreHigherBetter(float64(totalOrders), thresholds.Frequency)
		mScore := ScoreHigherBetter(totalSpentValue, thresholds.Monetary)

		payment, err := CalculatePaymentScore(ctx, customer, thresholds.Payment, today)
		if err != nil {
			config.LogError(logger, "rfmWorkflow.go", "CalculateRFMScores", "payment score", customer.ID, err)
			return nil, err
		}

		totalScore := float64(rScore+fScore+mScore) + payment.Score
		averageScore := utils.RoundTo1(totalScore / 4)
		tier := TierForAverage(averageScore)

		score, existed, err := models.GetOrCreateCustomerRFMScore(ctx, customer.ID)
		if err != nil {
			return nil, err
		}
		oldAverage := score.AverageScore

		score.RecencyScore = rScore
		score.FrequencyScore = fScore
		score.MonetaryScore = mScore
		score.PaymentScore = payment.Score
		score.TotalScore = totalScore
		score.AverageScore = averageScore
		score.Tier = tier
		score.Segment = Segment(rScore, fScore, mScore)
		score.LastPurchaseDate = lastPurchase
		if daysSince < neverPurchasedDays {
			score.DaysSincePurchase = &daysSince
		} else {
			score.DaysSincePurchase = nil
		}
		score.TotalOrders = totalOrders
		score.TotalSpent = totalSpent
		score.OnTimeInvoices = payment.OnTimeInvoices
		score.LateInvoices = payment.LateInvoices
		score.AvgDaysLate = payment.AvgDaysLate
		score.PaymentTermsDays = payment.CreditDays
		score.LastCalculated = now

		if changed, alertType := detectScoreChange(existed, oldAverage, averageScore); changed {
			changedOn := today
			score.PreviousAverage = oldAverage
			score.ScoreChangedOn = &changedOn

			if settings.AlertingEnabled() {
				alert := &models.RFMAlert{
					CustomerId:      customer.ID,
					AlertType:       alertType,
					PreviousAverage: oldAverage,
					NewAverage:      averageScore,
					PreviousTier:    TierForAverage(oldAverage),
					NewTier:         tier,
				}
				if err := alert.Create(ctx); err != nil {
					return nil, err
				}
				summary.AlertsCreated++
			}
		}

		if err := score.Save(ctx); err != nil {
			config.LogError(logger, "rfmWorkflow.go", "CalculateRFMScores", "save score", customer.ID, err)
			return nil, err
		}
		summary.Processed++
	}

	logger.WithFields(logrus.Fields{
		"processed":      summary.Processed,
		"alerts_created": summary.AlertsCreated,
	}).Info("rfm score run complete")

	return summary, nil
}
