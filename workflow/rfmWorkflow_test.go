package workflow

import (
	"testing"

	"github.com/mmdatafocus/insights_backend/models"
	"github.com/shopspring/decimal"
)

func TestPurchaseFacts_WindowedAggregate(t *testing.T) {
	today := day(2026, 8, 29)
	purchased := day(2026, 8, 1)
	agg := &models.CustomerPurchaseAggregate{
		CustomerId:       1,
		LastPurchaseDate: &purchased,
		TotalOrders:      7,
		TotalSpent:       decimal.NewFromInt(12500),
	}

	lastPurchase, daysSince, orders, spent := purchaseFacts(agg, today)
	if lastPurchase == nil || !lastPurchase.Equal(purchased) {
		t.Fatalf("expected last purchase %v, got %v", purchased, lastPurchase)
	}
	if daysSince != 28 {
		t.Fatalf("expected 28 days since purchase, got %d", daysSince)
	}
	if orders != 7 {
		t.Fatalf("expected 7 orders, got %d", orders)
	}
	if !spent.Equal(decimal.NewFromInt(12500)) {
		t.Fatalf("expected spent 12500, got %s", spent)
	}
}

func TestPurchaseFacts_AgedOutCustomerResetsAllAggregates(t *testing.T) {
	// A customer whose purchases all fall outside the analysis window is
	// absent from the rollup; every aggregate must reset, total spent
	// included, so a stale nonzero figure never survives next to a
	// monetary score of 1.
	lastPurchase, daysSince, orders, spent := purchaseFacts(nil, day(2026, 8, 29))
	if lastPurchase != nil {
		t.Fatalf("expected nil last purchase, got %v", lastPurchase)
	}
	if daysSince != neverPurchasedDays {
		t.Fatalf("expected sentinel days since, got %d", daysSince)
	}
	if orders != 0 {
		t.Fatalf("expected 0 orders, got %d", orders)
	}
	if !spent.IsZero() {
		t.Fatalf("expected zero spent, got %s", spent)
	}
}

func TestPurchaseFacts_AggregateWithoutDateIsNeverBuyer(t *testing.T) {
	agg := &models.CustomerPurchaseAggregate{CustomerId: 2, TotalOrders: 3, TotalSpent: decimal.NewFromInt(900)}
	_, daysSince, orders, spent := purchaseFacts(agg, day(2026, 8, 29))
	if daysSince != neverPurchasedDays || orders != 0 || !spent.IsZero() {
		t.Fatalf("dateless aggregate must reset, got days=%d orders=%d spent=%s", daysSince, orders, spent)
	}
}

func TestDetectScoreChange_SensitivityGate(t *testing.T) {
	cases := []struct {
		name       string
		existed    bool
		oldAverage float64
		newAverage float64
		changed    bool
		alertType  models.AlertType
	}{
		{"downgrade past gate", true, 3.0, 2.4, true, models.AlertTypeDowngrade},
		{"below gate is a no-op", true, 3.0, 2.8, false, ""},
		{"exact boundary fires", true, 3.0, 2.5, true, models.AlertTypeDowngrade},
		{"upgrade past gate", true, 3.0, 3.5, true, models.AlertTypeUpgrade},
		{"equal averages", true, 3.0, 3.0, false, ""},
		{"zero stored average", true, 0, 4.0, false, ""},
		{"fresh record", false, 3.0, 1.0, false, ""},
	}
	for _, tc := range cases {
		changed, alertType := detectScoreChange(tc.existed, tc.oldAverage, tc.newAverage)
		if changed != tc.changed || alertType != tc.alertType {
			t.Fatalf("%s: expected (%v, %q), got (%v, %q)", tc.name, tc.changed, tc.alertType, changed, alertType)
		}
	}
}
