package reports

import (
	"context"
	"sort"
	"time"

	"github.com/mmdatafocus/insights_backend/config"
	"github.com/mmdatafocus/insights_backend/models"
	"github.com/mmdatafocus/insights_backend/workflow"
)

const segmentDistributionCacheKey = "report:segment_distribution"

type TierDistributionRow struct {
	Tier          models.ScoreTier `json:"tier"`
	CustomerCount int              `json:"customerCount"`
	AvgScore      float64          `json:"avgScore"`
}

type SegmentDistributionRow struct {
	Segment       string  `json:"segment"`
	CustomerCount int     `json:"customerCount"`
	AvgScore      float64 `json:"avgScore"`
}

type SegmentDistributionResponse struct {
	Tiers    []*TierDistributionRow    `json:"tiers"`
	Segments []*SegmentDistributionRow `json:"segments"`
}

// GetSegmentDistributionReport summarizes the current score table by tier and
// by named cohort. Segments come back best-first.
func GetSegmentDistributionReport(ctx context.Context) (*SegmentDistributionResponse, error) {
	started := time.Now()
	defer logSlowReport(ctx, "segment_distribution", started, nil)

	if reportCacheEnabled() {
		var cached SegmentDistributionResponse
		if ok, err := cacheGet(segmentDistributionCacheKey, &cached); err == nil && ok {
			return &cached, nil
		}
	}

	db := config.GetDB()
	response := &SegmentDistributionResponse{}

	if err := db.WithContext(ctx).Raw(`
SELECT
    tier,
    COUNT(id) AS customer_count,
    ROUND(AVG(average_score), 1) AS avg_score
FROM
    customer_rfm_scores
WHERE
    tier IS NOT NULL
GROUP BY tier
ORDER BY FIELD(tier, 'Excellent', 'Good', 'Average', 'Fair', 'Poor')
`).Scan(&response.Tiers).Error; err != nil {
		return nil, err
	}

	if err := db.WithContext(ctx).Raw(`
SELECT
    segment,
    COUNT(id) AS customer_count,
    ROUND(AVG(average_score), 1) AS avg_score
FROM
    customer_rfm_scores
WHERE
    segment <> ''
GROUP BY segment
`).Scan(&response.Segments).Error; err != nil {
		return nil, err
	}

	sort.Slice(response.Segments, func(i, j int) bool {
		return workflow.SegmentRank(response.Segments[i].Segment) > workflow.SegmentRank(response.Segments[j].Segment)
	})

	if reportCacheEnabled() {
		_ = cacheSet(segmentDistributionCacheKey, response, reportCacheTTL())
	}
	return response, nil
}
