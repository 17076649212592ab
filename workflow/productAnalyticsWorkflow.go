package workflow

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/mmdatafocus/insights_backend/config"
	"github.com/mmdatafocus/insights_backend/models"
	"github.com/mmdatafocus/insights_backend/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// analysisMonths is the trailing demand window for item analytics.
const analysisMonths = 12

type ProductAnalyticsRunSummary struct {
	Processed   int `json:"processed"`
	BasketRules int `json:"basket_rules"`
}

// CalculateProductAnalytics runs the item analytics pipeline: trailing
// twelve-month revenue/profit/quantity rollup per product, ABC and XYZ
// classification, turnover and GMROI, then the market basket rebuild.
func CalculateProductAnalytics(ctx context.Context) (*ProductAnalyticsRunSummary, error) {
	logger := config.GetLogger()
	db := config.GetDB()

	if err := AcquireRunLock(db, "product-analytics"); err != nil {
		return nil, err
	}
	defer ReleaseRunLock(db, "product-analytics")

	today, err := utils.ConvertToDate(time.Now().UTC(), "UTC")
	if err != nil {
		return nil, err
	}
	periodStart := today.AddDate(0, -analysisMonths, 0)

	aggregates, err := models.GetItemSalesAggregates(ctx, periodStart)
	if err != nil {
		return nil, err
	}
	monthlyRows, err := models.GetItemMonthlyQuantities(ctx, periodStart)
	if err != nil {
		return nil, err
	}
	inventoryValues, err := models.GetInventoryValues(ctx)
	if err != nil {
		return nil, err
	}

	monthlyQty := buildMonthlyVectors(monthlyRows, periodStart)

	revenues := make(map[int]float64, len(aggregates))
	for _, agg := range aggregates {
		revenues[agg.ProductId], _ = agg.Revenue.Float64()
	}
	abcCategories := abcClassify(revenues)

	now := time.Now().UTC()
	summary := &ProductAnalyticsRunSummary{}
	for _, agg := range aggregates {
		cogs, _ := agg.Cogs.Float64()
		profit := agg.Revenue.Sub(agg.Cogs)
		profitValue, _ := profit.Float64()
		invValue, _ := inventoryValues[agg.ProductId].Float64()

		cv := coefficientOfVariation(monthlyQty[agg.ProductId])
		// Zero-mean demand classifies Z but records CV as 0 rather than the
		// sentinel.
		storedCV := cv
		if cv == math.MaxFloat64 {
			storedCV = 0
		}

		record := &models.ItemAnalytics{
			ProductId:              agg.ProductId,
			Name:                   agg.Name,
			Revenue:                agg.Revenue,
			Profit:                 profit,
			QtySold:                agg.QtySold,
			InvoiceCount:           agg.InvoiceCount,
			ABCCategory:            abcCategories[agg.ProductId],
			XYZCategory:            xyzClassify(cv),
			CoefficientOfVariation: roundTo4(storedCV),
			TurnoverRatio:          roundTo4(safeRatio(cogs, invValue)),
			Gmroi:                  roundTo4(safeRatio(profitValue, invValue)),
			LastCalculated:         now,
		}
		if err := record.Upsert(ctx); err != nil {
			config.LogError(logger, "productAnalyticsWorkflow.go", "CalculateProductAnalytics", "upsert item", agg.ProductId, err)
			return nil, err
		}
		summary.Processed++
	}

	rules, err := RebuildMarketBasket(ctx)
	if err != nil {
		return nil, err
	}
	summary.BasketRules = rules

	logger.WithFields(logrus.Fields{
		"processed":    summary.Processed,
		"basket_rules": summary.BasketRules,
	}).Info("product analytics run complete")

	return summary, nil
}

// buildMonthlyVectors zero-fills each product's demand into one bucket per
// calendar month of the window, keyed "2006-01".
func buildMonthlyVectors(rows []*models.ItemMonthlyQty, periodStart time.Time) map[int][]float64 {
	monthIndex := make(map[string]int, analysisMonths)
	cursor := time.Date(periodStart.Year(), periodStart.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < analysisMonths; i++ {
		monthIndex[cursor.Format("2006-01")] = i
		cursor = cursor.AddDate(0, 1, 0)
	}

	vectors := make(map[int][]float64)
	for _, row := range rows {
		idx, ok := monthIndex[row.SalesMonth]
		if !ok {
			// Partial first/last month outside the index keeps its sales in
			// the nearest bucket.
			if row.SalesMonth < periodStart.Format("2006-01") {
				idx = 0
			} else {
				idx = analysisMonths - 1
			}
		}
		vector := vectors[row.ProductId]
		if vector == nil {
			vector = make([]float64, analysisMonths)
			vectors[row.ProductId] = vector
		}
		qty, _ := row.Qty.Float64()
		vector[idx] += qty
	}
	return vectors
}

// abcClassify ranks products by revenue share and classifies each at the
// midpoint of its cumulative interval: A up to 80%, B up to 95%, C above.
// Zero total revenue classifies everything C.
func abcClassify(revenues map[int]float64) map[int]models.ABCCategory {
	categories := make(map[int]models.ABCCategory, len(revenues))

	type productRevenue struct {
		productId int
		revenue   float64
	}
	ranked := make([]productRevenue, 0, len(revenues))
	total := 0.0
	for id, revenue := range revenues {
		ranked = append(ranked, productRevenue{id, revenue})
		total += revenue
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].revenue != ranked[j].revenue {
			return ranked[i].revenue > ranked[j].revenue
		}
		return ranked[i].productId < ranked[j].productId
	})

	if total <= 0 {
		for _, pr := range ranked {
			categories[pr.productId] = models.ABCCategoryC
		}
		return categories
	}

	cumulative := 0.0
	for _, pr := range ranked {
		share := pr.revenue / total * 100
		midpoint := cumulative + share/2
		cumulative += share
		switch {
		case midpoint <= 80:
			categories[pr.productId] = models.ABCCategoryA
		case midpoint <= 95:
			categories[pr.productId] = models.ABCCategoryB
		default:
			categories[pr.productId] = models.ABCCategoryC
		}
	}
	return categories
}

// coefficientOfVariation is the population std deviation over the mean of the
// monthly demand vector. An empty or zero-mean vector reports infinite
// variability as a large CV so the item lands in Z.
func coefficientOfVariation(monthly []float64) float64 {
	if len(monthly) == 0 {
		return math.MaxFloat64
	}
	mean := 0.0
	for _, v := range monthly {
		mean += v
	}
	mean /= float64(len(monthly))
	if mean == 0 {
		return math.MaxFloat64
	}

	variance := 0.0
	for _, v := range monthly {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(monthly))
	return math.Sqrt(variance) / mean
}

// xyzClassify bands demand variability: X below 0.5, Y up to 1.0, Z above.
func xyzClassify(cv float64) models.XYZCategory {
	switch {
	case cv < 0.5:
		return models.XYZCategoryX
	case cv <= 1.0:
		return models.XYZCategoryY
	default:
		return models.XYZCategoryZ
	}
}

// safeRatio divides, treating a zero or negative denominator as zero
// (products with no inventory value get turnover and GMROI of 0).
func safeRatio(numerator, denominator float64) float64 {
	if denominator <= 0 {
		return 0
	}
	return numerator / denominator
}

func roundTo4(v float64) float64 {
	d := decimal.NewFromFloat(v).Round(4)
	f, _ := d.Float64()
	return f
}
