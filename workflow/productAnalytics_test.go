package workflow

import (
	"math"
	"testing"
	"time"

	"github.com/mmdatafocus/insights_backend/models"
	"github.com/shopspring/decimal"
)

func TestAbcClassify_MidpointIntervals(t *testing.T) {
	// Revenue shares 40/35/13/9/3 give cumulative 40,75,88,97,100.
	// Interval midpoints 20, 57.5, 81.5, 92.5, 98.5 classify A,A,B,B,C.
	revenues := map[int]float64{
		1: 4000,
		2: 3500,
		3: 1300,
		4: 900,
		5: 300,
	}

	got := abcClassify(revenues)
	expected := map[int]models.ABCCategory{
		1: models.ABCCategoryA,
		2: models.ABCCategoryA,
		3: models.ABCCategoryB,
		4: models.ABCCategoryB,
		5: models.ABCCategoryC,
	}
	for id, want := range expected {
		if got[id] != want {
			t.Fatalf("product %d expected %s, got %s", id, want, got[id])
		}
	}
}

func TestAbcClassify_SingleProductIsA(t *testing.T) {
	got := abcClassify(map[int]float64{7: 123.45})
	if got[7] != models.ABCCategoryA {
		t.Fatalf("sole product must be A, got %s", got[7])
	}
}

func TestAbcClassify_ZeroRevenueAllC(t *testing.T) {
	got := abcClassify(map[int]float64{1: 0, 2: 0})
	for id, cat := range got {
		if cat != models.ABCCategoryC {
			t.Fatalf("product %d expected C with zero total revenue, got %s", id, cat)
		}
	}
}

func TestCoefficientOfVariation_SteadyDemand(t *testing.T) {
	monthly := []float64{10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10}
	if cv := coefficientOfVariation(monthly); cv != 0 {
		t.Fatalf("constant demand should have CV 0, got %v", cv)
	}
}

func TestCoefficientOfVariation_PopulationSigma(t *testing.T) {
	// Values 2 and 4: mean 3, population sigma 1, CV 1/3.
	monthly := []float64{2, 4}
	cv := coefficientOfVariation(monthly)
	if math.Abs(cv-1.0/3.0) > 1e-12 {
		t.Fatalf("expected CV 1/3, got %v", cv)
	}
}

func TestCoefficientOfVariation_ZeroMeanIsMax(t *testing.T) {
	if cv := coefficientOfVariation([]float64{0, 0, 0}); cv != math.MaxFloat64 {
		t.Fatalf("zero-mean demand should report max CV, got %v", cv)
	}
	if cv := coefficientOfVariation(nil); cv != math.MaxFloat64 {
		t.Fatalf("empty demand should report max CV, got %v", cv)
	}
}

func TestXyzClassify_Bands(t *testing.T) {
	cases := []struct {
		cv       float64
		expected models.XYZCategory
	}{
		{0, models.XYZCategoryX},
		{0.49, models.XYZCategoryX},
		{0.5, models.XYZCategoryY},
		{1.0, models.XYZCategoryY},
		{1.01, models.XYZCategoryZ},
		{math.MaxFloat64, models.XYZCategoryZ},
	}
	for _, tc := range cases {
		if got := xyzClassify(tc.cv); got != tc.expected {
			t.Fatalf("xyzClassify(%v) expected %s, got %s", tc.cv, tc.expected, got)
		}
	}
}

func TestBuildMonthlyVectors_ZeroFills(t *testing.T) {
	periodStart := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	rows := []*models.ItemMonthlyQty{
		{ProductId: 1, SalesMonth: "2025-09", Qty: decimal.NewFromInt(5)},
		{ProductId: 1, SalesMonth: "2026-02", Qty: decimal.NewFromInt(7)},
	}

	vectors := buildMonthlyVectors(rows, periodStart)
	vector := vectors[1]
	if len(vector) != analysisMonths {
		t.Fatalf("expected %d buckets, got %d", analysisMonths, len(vector))
	}
	if vector[0] != 5 {
		t.Fatalf("expected 5 in first bucket, got %v", vector[0])
	}
	if vector[5] != 7 {
		t.Fatalf("expected 7 in 2026-02 bucket, got %v", vector[5])
	}

	total := 0.0
	for _, v := range vector {
		total += v
	}
	if total != 12 {
		t.Fatalf("expected total 12 across buckets, got %v", total)
	}
}

func TestSafeRatio_ZeroInventoryValue(t *testing.T) {
	if got := safeRatio(100, 0); got != 0 {
		t.Fatalf("expected 0 for zero denominator, got %v", got)
	}
	if got := safeRatio(100, 50); got != 2 {
		t.Fatalf("expected 2, got %v", got)
	}
}
