package workflow

import (
	"testing"
)

func basketOf(ids ...int) []basketItem {
	items := make([]basketItem, 0, len(ids))
	for _, id := range ids {
		items = append(items, basketItem{ProductId: id, Name: "P"})
	}
	return items
}

func TestBuildBasketRules_SupportFilterAndDirectionalRules(t *testing.T) {
	// 10 baskets. Pair (1,2) co-occurs in 4 of them; item 1 appears in 5,
	// item 2 in 4. Every other pair co-occurs once and is pruned by the
	// min-support floor of 2.
	baskets := [][]basketItem{
		basketOf(1, 2),
		basketOf(1, 2),
		basketOf(1, 2),
		basketOf(1, 2, 2), // duplicate line for the same product
		basketOf(1, 3),
		basketOf(4),
		basketOf(4),
		basketOf(5),
		basketOf(5),
		basketOf(4, 5),
	}

	rules := buildBasketRules(baskets)
	if len(rules) != 2 {
		t.Fatalf("expected 2 directional rules, got %d", len(rules))
	}

	// Sorted by confidence: 2->1 (100%) before 1->2 (80%).
	first, second := rules[0], rules[1]
	if first.ItemAId != 2 || first.ItemBId != 1 {
		t.Fatalf("expected strongest rule 2->1, got %d->%d", first.ItemAId, first.ItemBId)
	}
	if first.Confidence != 100 {
		t.Fatalf("expected confidence 100 for 2->1, got %v", first.Confidence)
	}
	if second.ItemAId != 1 || second.ItemBId != 2 {
		t.Fatalf("expected rule 1->2 second, got %d->%d", second.ItemAId, second.ItemBId)
	}
	if second.Confidence != 80 {
		t.Fatalf("expected confidence 80 for 1->2, got %v", second.Confidence)
	}

	for _, rule := range rules {
		if rule.Support != 40 {
			t.Fatalf("expected support 40%%, got %v", rule.Support)
		}
		if rule.Frequency != 4 {
			t.Fatalf("expected frequency 4, got %d", rule.Frequency)
		}
		// lift = (4/10) / ((5/10)*(4/10)) = 2.0 both directions.
		if rule.Lift != 2 {
			t.Fatalf("expected lift 2, got %v", rule.Lift)
		}
	}
}

func TestBuildBasketRules_DuplicateLinesCountOnce(t *testing.T) {
	// Two baskets, each listing both products twice. Pair frequency must be
	// 2 (per basket, not per line) and confidence 100 both ways.
	baskets := [][]basketItem{
		basketOf(1, 1, 2, 2),
		basketOf(2, 1, 1),
	}

	rules := buildBasketRules(baskets)
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(rules))
	}
	for _, rule := range rules {
		if rule.Frequency != 2 {
			t.Fatalf("expected pair frequency 2, got %d", rule.Frequency)
		}
		if rule.Confidence != 100 {
			t.Fatalf("expected confidence 100, got %v", rule.Confidence)
		}
	}
}

func TestBuildBasketRules_MinSupportScalesWithVolume(t *testing.T) {
	// 300 baskets: min support becomes 3, so a pair occurring twice is
	// pruned even though it clears the absolute floor of 2.
	baskets := make([][]basketItem, 0, 300)
	baskets = append(baskets, basketOf(1, 2), basketOf(1, 2))
	for i := 0; i < 298; i++ {
		baskets = append(baskets, basketOf(100+i))
	}

	if rules := buildBasketRules(baskets); len(rules) != 0 {
		t.Fatalf("expected no rules below scaled min support, got %d", len(rules))
	}
}

func TestBuildBasketRules_EmptyInput(t *testing.T) {
	if rules := buildBasketRules(nil); rules != nil {
		t.Fatalf("expected nil rules for no baskets, got %d", len(rules))
	}
}
