package workflow

import (
	"testing"
	"time"

	"github.com/mmdatafocus/insights_backend/models"
)

// NOTE: These tests are intentionally DB-free. They exercise the lateness
// rules over prepared invoice facts; CalculatePaymentScore is a thin loader
// on top of scorePaymentFacts.

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestScorePaymentFacts_SettledTwoDaysLate(t *testing.T) {
	today := day(2026, 6, 1)
	facts := []invoicePaymentFacts{
		{DueDate: day(2026, 1, 1), Settled: true, SettlementDate: day(2026, 1, 3)},
	}

	result := &PaymentScoreResult{Score: 5}
	scorePaymentFacts(facts, models.DefaultPaymentDays, today, result)

	// 2 days late sits inside the score-4 band (-7 < 2 <= 7).
	if result.Score != 4 {
		t.Fatalf("expected score 4, got %v", result.Score)
	}
	if result.LateInvoices != 1 || result.OnTimeInvoices != 0 {
		t.Fatalf("expected 1 late / 0 on-time, got %d/%d", result.LateInvoices, result.OnTimeInvoices)
	}
	if result.AvgDaysLate != 2 {
		t.Fatalf("expected avg days late 2, got %v", result.AvgDaysLate)
	}
}

func TestScorePaymentFacts_EarlyPaymentScoresFive(t *testing.T) {
	today := day(2026, 6, 1)
	facts := []invoicePaymentFacts{
		{DueDate: day(2026, 1, 10), Settled: true, SettlementDate: day(2026, 1, 1)},
	}

	result := &PaymentScoreResult{Score: 5}
	scorePaymentFacts(facts, models.DefaultPaymentDays, today, result)

	if result.Score != 5 {
		t.Fatalf("expected score 5 for payment 9 days early, got %v", result.Score)
	}
	if result.OnTimeInvoices != 1 {
		t.Fatalf("expected on-time count 1, got %d", result.OnTimeInvoices)
	}
	if result.AvgDaysLate != -9 {
		t.Fatalf("expected avg days late -9, got %v", result.AvgDaysLate)
	}
}

func TestScorePaymentFacts_ImmatureInvoiceExcluded(t *testing.T) {
	today := day(2026, 6, 1)
	facts := []invoicePaymentFacts{
		// Unsettled but not yet due: must not be judged.
		{DueDate: day(2026, 7, 1), Settled: false},
	}

	result := &PaymentScoreResult{Score: 5}
	scorePaymentFacts(facts, models.DefaultPaymentDays, today, result)

	if result.ScoredInvoices != 0 {
		t.Fatalf("immature invoice should not be scored, got %d scored", result.ScoredInvoices)
	}
	if result.Score != 5 {
		t.Fatalf("expected default score 5, got %v", result.Score)
	}
}

func TestScorePaymentFacts_OverdueUnsettledJudgedAgainstToday(t *testing.T) {
	today := day(2026, 6, 1)
	facts := []invoicePaymentFacts{
		// Due 2026-03-03, still unpaid: 90 days late as of today.
		{DueDate: day(2026, 3, 3), Settled: false},
	}

	result := &PaymentScoreResult{Score: 5}
	scorePaymentFacts(facts, models.DefaultPaymentDays, today, result)

	// 90 days late falls past every band: score 1.
	if result.Score != 1 {
		t.Fatalf("expected score 1 for 90 days overdue, got %v", result.Score)
	}
	if result.AvgDaysLate != 90 {
		t.Fatalf("expected avg days late 90, got %v", result.AvgDaysLate)
	}
}

func TestScorePaymentFacts_MeanRoundsToOneDecimal(t *testing.T) {
	today := day(2026, 6, 1)
	facts := []invoicePaymentFacts{
		{DueDate: day(2026, 1, 1), Settled: true, SettlementDate: day(2026, 1, 1)},  // 0 late -> 5
		{DueDate: day(2026, 2, 1), Settled: true, SettlementDate: day(2026, 2, 21)}, // 20 late -> 3
		{DueDate: day(2026, 3, 1), Settled: true, SettlementDate: day(2026, 4, 20)}, // 50 late -> 2
	}

	result := &PaymentScoreResult{Score: 5}
	scorePaymentFacts(facts, models.DefaultPaymentDays, today, result)

	// (5+3+2)/3 = 3.333... rounds to 3.3.
	if result.Score != 3.3 {
		t.Fatalf("expected mean score 3.3, got %v", result.Score)
	}
	if result.ScoredInvoices != 3 {
		t.Fatalf("expected 3 scored invoices, got %d", result.ScoredInvoices)
	}
}

func TestScorePaymentFacts_NoFactsDefaultsToFive(t *testing.T) {
	result := &PaymentScoreResult{}
	scorePaymentFacts(nil, models.DefaultPaymentDays, day(2026, 6, 1), result)

	if result.Score != 5 {
		t.Fatalf("expected default score 5, got %v", result.Score)
	}
	if result.AvgDaysLate != 0 {
		t.Fatalf("expected avg days late 0, got %v", result.AvgDaysLate)
	}
}

func TestDaysBetween_IgnoresTimeOfDay(t *testing.T) {
	a := time.Date(2026, 1, 1, 23, 50, 0, 0, time.UTC)
	b := time.Date(2026, 1, 3, 0, 10, 0, 0, time.UTC)
	if got := daysBetween(a, b); got != 2 {
		t.Fatalf("expected 2 days, got %d", got)
	}
	if got := daysBetween(b, a); got != -2 {
		t.Fatalf("expected -2 days reversed, got %d", got)
	}
}
