package workflow

import (
	"testing"

	"github.com/mmdatafocus/insights_backend/models"
)

func TestScoreHigherBetter_LadderBoundaries(t *testing.T) {
	thresholds := models.DefaultFrequencyOrders // 10, 5, 3, 2

	cases := []struct {
		value    float64
		expected int
	}{
		{15, 5},
		{10, 5}, // boundary is inclusive
		{9, 4},
		{5, 4},
		{3, 3},
		{2, 2},
		{1, 1},
		{0, 1},
	}
	for _, tc := range cases {
		if got := ScoreHigherBetter(tc.value, thresholds); got != tc.expected {
			t.Fatalf("ScoreHigherBetter(%v) expected %d, got %d", tc.value, tc.expected, got)
		}
	}
}

func TestScoreLowerBetter_LadderBoundaries(t *testing.T) {
	thresholds := models.DefaultRecencyDays // 30, 60, 90, 180

	cases := []struct {
		value    float64
		expected int
	}{
		{0, 5},
		{30, 5}, // boundary is inclusive
		{31, 4},
		{60, 4},
		{90, 3},
		{180, 2},
		{181, 1},
		{9999, 1}, // never-purchased sentinel
	}
	for _, tc := range cases {
		if got := ScoreLowerBetter(tc.value, thresholds); got != tc.expected {
			t.Fatalf("ScoreLowerBetter(%v) expected %d, got %d", tc.value, tc.expected, got)
		}
	}
}

func TestScoreLowerBetter_NegativeDaysLate(t *testing.T) {
	// Early payers (negative days late) must land on the best score.
	if got := ScoreLowerBetter(-10, models.DefaultPaymentDays); got != 5 {
		t.Fatalf("expected 5 for early payment, got %d", got)
	}
	// -7 is the score-5 boundary; just above it drops to 4.
	if got := ScoreLowerBetter(-6, models.DefaultPaymentDays); got != 4 {
		t.Fatalf("expected 4 just past the early-payment boundary, got %d", got)
	}
}

func TestTierForAverage_Bands(t *testing.T) {
	cases := []struct {
		avg      float64
		expected models.ScoreTier
	}{
		{5.0, models.ScoreTierExcellent},
		{4.9, models.ScoreTierGood},
		{4.0, models.ScoreTierGood},
		{3.5, models.ScoreTierAverage},
		{3.0, models.ScoreTierAverage},
		{2.0, models.ScoreTierFair},
		{1.9, models.ScoreTierPoor},
		{1.0, models.ScoreTierPoor},
	}
	for _, tc := range cases {
		if got := TierForAverage(tc.avg); got != tc.expected {
			t.Fatalf("TierForAverage(%v) expected %s, got %s", tc.avg, tc.expected, got)
		}
	}
}

func TestSegment_TableLookup(t *testing.T) {
	cases := []struct {
		r, f, m  int
		expected string
	}{
		{5, 5, 5, "Champions"},
		{4, 4, 4, "Loyal"},
		{5, 1, 1, "New Customers"},
		{1, 5, 5, "Cant Lose"},
		{1, 1, 1, "Lost"},
	}
	for _, tc := range cases {
		if got := Segment(tc.r, tc.f, tc.m); got != tc.expected {
			t.Fatalf("Segment(%d,%d,%d) expected %q, got %q", tc.r, tc.f, tc.m, tc.expected, got)
		}
	}
}

func TestSegment_FallbackBanding(t *testing.T) {
	// (3,5,5) is not in the cohort table; average 4.33 bands to Loyal.
	if got := Segment(3, 5, 5); got != "Loyal" {
		t.Fatalf("expected fallback Loyal, got %q", got)
	}
	// (3,1,5) averages 3.0, bands to Need Attention.
	if got := Segment(3, 1, 5); got != "Need Attention" {
		t.Fatalf("expected fallback Need Attention, got %q", got)
	}
	// (1,3,2) averages 2.0, bands to Hibernating.
	if got := Segment(1, 3, 2); got != "Hibernating" {
		t.Fatalf("expected fallback Hibernating, got %q", got)
	}
	// (1,1,3) averages 1.67, bands to Lost.
	if got := Segment(1, 1, 3); got != "Lost" {
		t.Fatalf("expected fallback Lost, got %q", got)
	}
}

func TestSegmentRank_OrdersKnownCohorts(t *testing.T) {
	if SegmentRank("Champions") <= SegmentRank("Loyal") {
		t.Fatal("Champions must rank above Loyal")
	}
	if SegmentRank("Lost") >= SegmentRank("Hibernating") {
		t.Fatal("Lost must rank below Hibernating")
	}
	if got := SegmentRank("Some Unknown"); got != 5 {
		t.Fatalf("unknown segment should rank 5, got %d", got)
	}
}
