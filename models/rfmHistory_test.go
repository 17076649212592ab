package models

import (
	"testing"
	"time"
)

func TestTrendWindowStart_TruncatesToDayBoundary(t *testing.T) {
	now := time.Date(2026, 8, 29, 17, 45, 12, 0, time.UTC)
	got, err := trendWindowStart(now, 30)
	if err != nil {
		t.Fatalf("trendWindowStart error: %v", err)
	}
	expected := time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC)
	if !got.Equal(expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
}

func TestTrendWindowStart_DefaultWindow(t *testing.T) {
	now := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	got, err := trendWindowStart(now, 0)
	if err != nil {
		t.Fatalf("trendWindowStart error: %v", err)
	}
	expected := time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC)
	if !got.Equal(expected) {
		t.Fatalf("expected 30-day default window, got %v", got)
	}
}
