package workflow

import (
	"context"
	"time"

	"github.com/mmdatafocus/insights_backend/models"
	"github.com/mmdatafocus/insights_backend/utils"
	"github.com/shopspring/decimal"
)

// settledTolerance: an invoice counts as fully settled once its remaining
// balance is within this absolute amount of zero (rounding slack in the
// ledger).
var settledTolerance = decimal.NewFromFloat(0.1)

// PaymentScoreResult aggregates one customer's payment behaviour.
type PaymentScoreResult struct {
	Score          float64
	OnTimeInvoices int
	LateInvoices   int
	AvgDaysLate    float64
	CreditDays     int
	ScoredInvoices int
}

// invoicePaymentFacts is the per-invoice view the scorer works on, decoupled
// from the DB rows so the scoring rules stay testable without a database.
type invoicePaymentFacts struct {
	DueDate        time.Time
	Settled        bool
	SettlementDate time.Time
}

// CalculatePaymentScore scans the customer's invoice history and averages
// the per-invoice lateness scores. Customers with no scoreable invoice
// default to 5 (benefit of the doubt).
func CalculatePaymentScore(ctx context.Context, customer *models.Customer, thresholds [4]float64, today time.Time) (*PaymentScoreResult, error) {
	invoices, err := models.GetCustomerInvoices(ctx, customer.ID)
	if err != nil {
		return nil, err
	}

	creditDays := customer.CreditDays()
	result := &PaymentScoreResult{Score: 5, CreditDays: creditDays}
	if len(invoices) == 0 {
		return result, nil
	}

	lastPayments, err := models.GetLastPaymentDates(ctx, customer.ID)
	if err != nil {
		return nil, err
	}

	facts := make([]invoicePaymentFacts, 0, len(invoices))
	for _, invoice := range invoices {
		f := invoicePaymentFacts{
			Settled: invoice.RemainingBalance.LessThanOrEqual(settledTolerance),
		}
		if invoice.InvoiceDueDate != nil {
			f.DueDate = *invoice.InvoiceDueDate
		} else {
			f.DueDate = invoice.InvoiceDate.AddDate(0, 0, creditDays)
		}
		if f.Settled {
			if paymentDate, ok := lastPayments[invoice.ID]; ok {
				f.SettlementDate = paymentDate
			} else {
				// Marked paid but no payment row found: fall back to the
				// invoice's own posting date (conservative).
				f.SettlementDate = invoice.InvoiceDate
			}
		}
		facts = append(facts, f)
	}

	scorePaymentFacts(facts, thresholds, today, result)
	return result, nil
}

// scorePaymentFacts applies the lateness rules over the prepared facts and
// fills the aggregate fields of result.
func scorePaymentFacts(facts []invoicePaymentFacts, thresholds [4]float64, today time.Time, result *PaymentScoreResult) {
	var scoreSum int
	var daysLateSum int

	for _, f := range facts {
		var daysLate int
		if f.Settled {
			daysLate = daysBetween(f.DueDate, f.SettlementDate)
		} else {
			if today.Before(f.DueDate) {
				// Not yet due and unpaid: immature, not judgeable.
				continue
			}
			daysLate = daysBetween(f.DueDate, today)
		}

		scoreSum += ScoreLowerBetter(float64(daysLate), thresholds)
		daysLateSum += daysLate
		result.ScoredInvoices++
		if daysLate <= 0 {
			result.OnTimeInvoices++
		} else {
			result.LateInvoices++
		}
	}

	if result.ScoredInvoices == 0 {
		result.Score = 5
		result.AvgDaysLate = 0
		return
	}
	result.Score = utils.RoundTo1(float64(scoreSum) / float64(result.ScoredInvoices))
	result.AvgDaysLate = utils.RoundTo1(float64(daysLateSum) / float64(result.ScoredInvoices))
}

// daysBetween counts whole calendar days from a to b (negative when b is
// earlier).
func daysBetween(a, b time.Time) int {
	aDate := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bDate := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bDate.Sub(aDate).Hours() / 24)
}
