package reports

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mmdatafocus/insights_backend/models"
	"github.com/xuri/excelize/v2"
)

// WriteRFMScoresExcel streams the current score table as an xlsx attachment.
func WriteRFMScoresExcel(ctx context.Context, w http.ResponseWriter) error {
	scores, err := models.GetAllCustomerRFMScores(ctx)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	sheetName := "RFM Scores"
	f.SetSheetName("Sheet1", sheetName)

	headings := []string{
		"CustomerId", "Recency", "Frequency", "Monetary", "Payment",
		"Total", "Average", "Tier", "Segment",
		"TotalOrders", "TotalSpent", "DaysSincePurchase",
		"OnTimeInvoices", "LateInvoices", "AvgDaysLate",
	}
	col := 'A'
	for _, h := range headings {
		f.SetCellValue(sheetName, string(col)+"1", h)
		col++
	}

	for i, s := range scores {
		row := fmt.Sprint(i + 2)
		daysSince := ""
		if s.DaysSincePurchase != nil {
			daysSince = fmt.Sprint(*s.DaysSincePurchase)
		}
		totalSpent, _ := s.TotalSpent.Float64()

		values := []interface{}{
			s.CustomerId, s.RecencyScore, s.FrequencyScore, s.MonetaryScore, s.PaymentScore,
			s.TotalScore, s.AverageScore, string(s.Tier), s.Segment,
			s.TotalOrders, totalSpent, daysSince,
			s.OnTimeInvoices, s.LateInvoices, s.AvgDaysLate,
		}
		col := 'A'
		for _, value := range values {
			f.SetCellValue(sheetName, string(col)+row, value)
			col++
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=rfm-scores.xlsx")
	return f.Write(w)
}

// WriteItemAnalyticsExcel streams the item analytics table as an xlsx
// attachment.
func WriteItemAnalyticsExcel(ctx context.Context, w http.ResponseWriter) error {
	records, err := models.GetAllItemAnalytics(ctx)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	sheetName := "Item Analytics"
	f.SetSheetName("Sheet1", sheetName)

	headings := []string{
		"ProductId", "Name", "Revenue", "Profit", "QtySold", "InvoiceCount",
		"ABC", "XYZ", "CV", "Turnover", "GMROI",
	}
	col := 'A'
	for _, h := range headings {
		f.SetCellValue(sheetName, string(col)+"1", h)
		col++
	}

	for i, r := range records {
		row := fmt.Sprint(i + 2)
		revenue, _ := r.Revenue.Float64()
		profit, _ := r.Profit.Float64()
		qty, _ := r.QtySold.Float64()

		values := []interface{}{
			r.ProductId, r.Name, revenue, profit, qty, r.InvoiceCount,
			string(r.ABCCategory), string(r.XYZCategory),
			r.CoefficientOfVariation, r.TurnoverRatio, r.Gmroi,
		}
		col := 'A'
		for _, value := range values {
			f.SetCellValue(sheetName, string(col)+row, value)
			col++
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=item-analytics.xlsx")
	return f.Write(w)
}
