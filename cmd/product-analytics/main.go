// product-analytics runs the item analytics pipeline (ABC/XYZ, turnover,
// GMROI, market basket) once and exits.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mmdatafocus/insights_backend/config"
	"github.com/mmdatafocus/insights_backend/models"
	"github.com/mmdatafocus/insights_backend/utils"
	"github.com/mmdatafocus/insights_backend/workflow"
)

func main() {
	flag.Parse()

	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil)")
		os.Exit(1)
	}

	models.MigrateTable()

	ctx = utils.SetUserNameInContext(ctx, "ProductAnalyticsRunner")

	summary, err := workflow.CalculateProductAnalytics(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "product analytics run failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("processed=%d basket_rules=%d\n", summary.Processed, summary.BasketRules)
}
