package workflow

import (
	"github.com/mmdatafocus/insights_backend/models"
)

// ScoreHigherBetter maps a value onto a 4-element threshold ladder ordered
// for scores 5,4,3,2. The first threshold the value meets (inclusive) wins;
// values below every threshold score 1. Used for frequency and monetary.
func ScoreHigherBetter(value float64, thresholds [4]float64) int {
	for i, t := range thresholds {
		if value >= t {
			return 5 - i
		}
	}
	return 1
}

// ScoreLowerBetter is the mirror mapping for metrics where small is good
// (recency, payment lateness). Ties at a boundary take the higher score.
func ScoreLowerBetter(value float64, thresholds [4]float64) int {
	for i, t := range thresholds {
		if value <= t {
			return 5 - i
		}
	}
	return 1
}

// TierForAverage bands a 1.0-5.0 average score into the fixed tier labels.
func TierForAverage(avg float64) models.ScoreTier {
	switch {
	case avg >= 5:
		return models.ScoreTierExcellent
	case avg >= 4:
		return models.ScoreTierGood
	case avg >= 3:
		return models.ScoreTierAverage
	case avg >= 2:
		return models.ScoreTierFair
	default:
		return models.ScoreTierPoor
	}
}

type rfmKey struct {
	R, F, M int
}

// segmentTable is the fixed (recency, frequency, monetary) cohort mapping.
// It is never mutated; combinations outside the table fall back to
// average-based banding in Segment.
var segmentTable = map[rfmKey]string{
	{5, 5, 5}: "Champions",
	{5, 5, 4}: "Champions",
	{5, 4, 5}: "Champions",
	{4, 5, 5}: "Loyal",
	{5, 5, 3}: "Loyal",
	{4, 5, 4}: "Loyal",
	{4, 4, 5}: "Loyal",
	{4, 4, 4}: "Loyal",
	{5, 4, 4}: "Loyal",
	{5, 3, 3}: "Potential Loyalists",
	{4, 3, 3}: "Potential Loyalists",
	{5, 2, 2}: "Potential Loyalists",
	{4, 2, 3}: "Potential Loyalists",
	{5, 1, 1}: "New Customers",
	{5, 1, 2}: "New Customers",
	{4, 1, 1}: "New Customers",
	{4, 2, 1}: "Promising",
	{3, 3, 3}: "Need Attention",
	{3, 3, 2}: "Need Attention",
	{3, 2, 3}: "Need Attention",
	{2, 3, 3}: "About to Sleep",
	{2, 2, 3}: "About to Sleep",
	{2, 3, 2}: "About to Sleep",
	{2, 5, 5}: "At Risk",
	{2, 5, 4}: "At Risk",
	{2, 4, 5}: "At Risk",
	{2, 4, 4}: "At Risk",
	{1, 5, 5}: "Cant Lose",
	{1, 5, 4}: "Cant Lose",
	{1, 4, 5}: "Cant Lose",
	{2, 2, 2}: "Hibernating",
	{2, 2, 1}: "Hibernating",
	{2, 1, 2}: "Hibernating",
	{1, 2, 2}: "Hibernating",
	{1, 1, 1}: "Lost",
	{1, 1, 2}: "Lost",
	{1, 2, 1}: "Lost",
}

// Segment resolves the named cohort for an (r, f, m) triple. Untabulated
// combinations band on the triple's plain average: >=4 Loyal, >=3 Need
// Attention, >=2 Hibernating, else Lost.
func Segment(r, f, m int) string {
	if name, ok := segmentTable[rfmKey{r, f, m}]; ok {
		return name
	}

	avg := float64(r+f+m) / 3
	switch {
	case avg >= 4:
		return "Loyal"
	case avg >= 3:
		return "Need Attention"
	case avg >= 2:
		return "Hibernating"
	default:
		return "Lost"
	}
}

var segmentRanks = map[string]int{
	"Champions":           10,
	"Loyal":               9,
	"Potential Loyalists": 8,
	"New Customers":       7,
	"Promising":           6,
	"Need Attention":      5,
	"About to Sleep":      4,
	"At Risk":             3,
	"Cant Lose":           2,
	"Hibernating":         1,
	"Lost":                0,
}

// SegmentRank orders cohorts for display (higher = better). Unknown names
// rank as the neutral middle.
func SegmentRank(segment string) int {
	if rank, ok := segmentRanks[segment]; ok {
		return rank
	}
	return 5
}
