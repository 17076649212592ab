package workflow

import (
	"context"
	"time"

	"github.com/mmdatafocus/insights_backend/config"
	"github.com/mmdatafocus/insights_backend/models"
	"github.com/mmdatafocus/insights_backend/utils"
	"github.com/sirupsen/logrus"
)

type SnapshotRunSummary struct {
	SnapshotsCreated int `json:"snapshots_created"`
}

// CreateHistorySnapshot copies every current score record into the history
// table, dated today. Customers already snapshotted today are skipped, so
// re-running within the same day is a no-op for them.
func CreateHistorySnapshot(ctx context.Context) (*SnapshotRunSummary, error) {
	logger := config.GetLogger()

	today, err := utils.ConvertToDate(time.Now().UTC(), "UTC")
	if err != nil {
		return nil, err
	}

	scores, err := models.GetAllCustomerRFMScores(ctx)
	if err != nil {
		return nil, err
	}
	snapshotted, err := models.GetSnapshottedCustomerIds(ctx, today)
	if err != nil {
		return nil, err
	}

	summary := &SnapshotRunSummary{}
	for _, score := range scores {
		if snapshotted[score.CustomerId] {
			continue
		}
		snapshot := &models.RFMHistory{
			CustomerId:     score.CustomerId,
			SnapshotDate:   today,
			RecencyScore:   score.RecencyScore,
			FrequencyScore: score.FrequencyScore,
			MonetaryScore:  score.MonetaryScore,
			PaymentScore:   score.PaymentScore,
			AverageScore:   score.AverageScore,
			Tier:           score.Tier,
			Segment:        score.Segment,
		}
		if err := snapshot.Create(ctx); err != nil {
			config.LogError(logger, "snapshotWorkflow.go", "CreateHistorySnapshot", "create snapshot", score.CustomerId, err)
			return nil, err
		}
		summary.SnapshotsCreated++
	}

	logger.WithFields(logrus.Fields{
		"snapshots_created": summary.SnapshotsCreated,
		"snapshot_date":     today.Format("2006-01-02"),
	}).Info("history snapshot complete")

	return summary, nil
}
