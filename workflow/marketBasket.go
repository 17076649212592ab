package workflow

import (
	"context"
	"sort"

	"github.com/mmdatafocus/insights_backend/config"
	"github.com/mmdatafocus/insights_backend/models"
	"github.com/shopspring/decimal"
)

// basketItem is one product appearing in a basket.
type basketItem struct {
	ProductId int
	Name      string
}

type itemPair struct {
	A, B int
}

// RebuildMarketBasket recomputes the association rules over all submitted
// invoices and atomically replaces the rule table. Returns the number of
// rules written.
func RebuildMarketBasket(ctx context.Context) (int, error) {
	logger := config.GetLogger()

	rows, err := models.GetInvoiceItemRows(ctx)
	if err != nil {
		return 0, err
	}

	baskets := make(map[int][]basketItem)
	for _, row := range rows {
		baskets[row.SalesInvoiceId] = append(baskets[row.SalesInvoiceId], basketItem{
			ProductId: row.ProductId,
			Name:      row.Name,
		})
	}
	basketList := make([][]basketItem, 0, len(baskets))
	for _, items := range baskets {
		basketList = append(basketList, items)
	}

	rules := buildBasketRules(basketList)
	if err := models.ReplaceBasketRules(ctx, rules); err != nil {
		config.LogError(logger, "marketBasket.go", "RebuildMarketBasket", "replace rules", len(rules), err)
		return 0, err
	}
	return len(rules), nil
}

// buildBasketRules mines pairwise association rules from the baskets. Each
// basket is one invoice's distinct item set; pairs occurring in fewer than
// max(2, basketCount/100) baskets are discarded; every surviving pair yields
// two directional rules. Support and confidence are percentages.
func buildBasketRules(baskets [][]basketItem) []*models.BasketRule {
	totalBaskets := len(baskets)
	if totalBaskets == 0 {
		return nil
	}

	itemCounts := make(map[int]int)
	itemNames := make(map[int]string)
	pairCounts := make(map[itemPair]int)

	for _, basket := range baskets {
		seen := make(map[int]bool, len(basket))
		items := make([]basketItem, 0, len(basket))
		for _, item := range basket {
			if seen[item.ProductId] {
				continue
			}
			seen[item.ProductId] = true
			items = append(items, item)
			itemCounts[item.ProductId]++
			itemNames[item.ProductId] = item.Name
		}
		for i := 0; i < len(items); i++ {
			for j := i + 1; j < len(items); j++ {
				a, b := items[i].ProductId, items[j].ProductId
				if a > b {
					a, b = b, a
				}
				pairCounts[itemPair{a, b}]++
			}
		}
	}

	minSupport := totalBaskets / 100
	if minSupport < 2 {
		minSupport = 2
	}

	var rules []*models.BasketRule
	for pair, freq := range pairCounts {
		if freq < minSupport {
			continue
		}
		support := float64(freq) / float64(totalBaskets) * 100

		for _, dir := range [][2]int{{pair.A, pair.B}, {pair.B, pair.A}} {
			antecedent, consequent := dir[0], dir[1]
			confidence := float64(freq) / float64(itemCounts[antecedent]) * 100
			consequentShare := float64(itemCounts[consequent]) / float64(totalBaskets)
			lift := 0.0
			if consequentShare > 0 {
				lift = (float64(freq) / float64(itemCounts[antecedent])) / consequentShare
			}
			rules = append(rules, &models.BasketRule{
				ItemAId:    antecedent,
				ItemAName:  itemNames[antecedent],
				ItemBId:    consequent,
				ItemBName:  itemNames[consequent],
				Support:    roundBasket(support),
				Confidence: roundBasket(confidence),
				Lift:       roundBasket(lift),
				Frequency:  freq,
			})
		}
	}

	sort.Slice(rules, func(i, j int) bool {
		if rules[i].Confidence != rules[j].Confidence {
			return rules[i].Confidence > rules[j].Confidence
		}
		if rules[i].ItemAId != rules[j].ItemAId {
			return rules[i].ItemAId < rules[j].ItemAId
		}
		return rules[i].ItemBId < rules[j].ItemBId
	})
	return rules
}

func roundBasket(v float64) float64 {
	d := decimal.NewFromFloat(v).Round(4)
	f, _ := d.Float64()
	return f
}
