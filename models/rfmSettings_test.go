package models

import "testing"

func intPtr(v int) *int {
	return &v
}

func floatPtr(v float64) *float64 {
	return &v
}

func TestThresholds_DefaultsWhenUnset(t *testing.T) {
	s := RFMSettings{}
	thresholds := s.Thresholds()

	if thresholds.Recency != DefaultRecencyDays {
		t.Fatalf("expected default recency ladder, got %v", thresholds.Recency)
	}
	if thresholds.Frequency != DefaultFrequencyOrders {
		t.Fatalf("expected default frequency ladder, got %v", thresholds.Frequency)
	}
	if thresholds.Monetary != DefaultMonetaryAmounts {
		t.Fatalf("expected default monetary ladder, got %v", thresholds.Monetary)
	}
	if thresholds.Payment != DefaultPaymentDays {
		t.Fatalf("expected default payment ladder, got %v", thresholds.Payment)
	}
	if s.AnalysisPeriod() != DefaultAnalysisPeriodDays {
		t.Fatalf("expected default analysis period, got %d", s.AnalysisPeriod())
	}
	if !s.AlertingEnabled() {
		t.Fatal("alerting must default to enabled")
	}
}

func TestThresholds_PartialOverrides(t *testing.T) {
	s := RFMSettings{
		AnalysisPeriodDays: intPtr(180),
		RecencyDays5:       intPtr(14),
		MonetaryAmount2:    floatPtr(500),
	}
	thresholds := s.Thresholds()

	if thresholds.Recency[0] != 14 {
		t.Fatalf("expected recency override 14, got %v", thresholds.Recency[0])
	}
	// Unset rungs of a partially overridden ladder keep their defaults.
	if thresholds.Recency[1] != DefaultRecencyDays[1] {
		t.Fatalf("expected default recency rung, got %v", thresholds.Recency[1])
	}
	if thresholds.Monetary[3] != 500 {
		t.Fatalf("expected monetary override 500, got %v", thresholds.Monetary[3])
	}
	if s.AnalysisPeriod() != 180 {
		t.Fatalf("expected analysis period 180, got %d", s.AnalysisPeriod())
	}
}

func TestAlertingEnabled_ExplicitFalse(t *testing.T) {
	off := false
	s := RFMSettings{AlertOnDowngrade: &off}
	if s.AlertingEnabled() {
		t.Fatal("expected alerting disabled")
	}
}
