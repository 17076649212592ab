package models

import (
	"context"
	"time"

	"github.com/mmdatafocus/insights_backend/config"
	"github.com/mmdatafocus/insights_backend/utils"
	"gorm.io/gorm"
)

// BasketRule is one directional association rule (antecedent -> consequent).
// The whole table is derived data: every analytics run rebuilds it from the
// invoice set.
type BasketRule struct {
	ID int `gorm:"primary_key" json:"id"`

	ItemAId   int    `gorm:"index;not null" json:"item_a_id"`
	ItemAName string `gorm:"size:255" json:"item_a_name"`
	ItemBId   int    `gorm:"index;not null" json:"item_b_id"`
	ItemBName string `gorm:"size:255" json:"item_b_name"`

	Support    float64 `gorm:"type:decimal(10,4);not null;default:0" json:"support"`
	Confidence float64 `gorm:"type:decimal(10,4);not null;default:0" json:"confidence"`
	Lift       float64 `gorm:"type:decimal(10,4);not null;default:0" json:"lift"`
	Frequency  int     `gorm:"not null;default:0" json:"frequency"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ReplaceBasketRules swaps the full rule set inside one transaction so
// readers never observe an empty table mid-run.
func ReplaceBasketRules(ctx context.Context, rules []*BasketRule) error {
	db := config.GetDB()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&BasketRule{}).Error; err != nil {
			return err
		}
		if len(rules) == 0 {
			return nil
		}
		return tx.CreateInBatches(rules, 500).Error
	})
}

// GetBasketRules returns rules ordered by confidence, strongest first,
// optionally restricted to rules whose antecedent is one item.
func GetBasketRules(ctx context.Context, itemId *int, limit int) ([]*BasketRule, error) {
	sqlTemplate := `
SELECT
    id,
    item_a_id,
    item_a_name,
    item_b_id,
    item_b_name,
    support,
    confidence,
    lift,
    frequency,
    created_at
FROM
    basket_rules
WHERE 1 = 1
    {{- if .itemId }} AND item_a_id = @itemId {{- end }}
ORDER BY confidence DESC, id
{{- if .limit }} LIMIT {{ .limit }} {{- end }}
`
	db := config.GetDB()
	if limit <= 0 {
		limit = 50
	}

	sql, err := utils.ExecTemplate(sqlTemplate, map[string]interface{}{
		"itemId": utils.DereferencePtr(itemId),
		"limit":  limit,
	})
	if err != nil {
		return nil, err
	}

	var rules []*BasketRule
	if err := db.WithContext(ctx).Raw(sql, map[string]interface{}{
		"itemId": itemId,
	}).Scan(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}
