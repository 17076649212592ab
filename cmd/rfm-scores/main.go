// rfm-scores runs the customer scoring pipeline once and exits. Intended to
// be invoked by an external scheduler (Cloud Scheduler / cron).
//
// Usage:
//
//	go run ./cmd/rfm-scores [--snapshot]
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
	snapshot := flag.Bool("snapshot", false, "Also write a history snapshot after scoring")
	flag.Parse()

	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil)")
		os.Exit(1)
	}

	models.MigrateTable()

	ctx = utils.SetUserNameInContext(ctx, "RFMScoresRunner")

	summary, err := workflow.CalculateRFMScores(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rfm score run failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("processed=%d alerts_created=%d\n", summary.Processed, summary.AlertsCreated)

	if *snapshot {
		snap, err := workflow.CreateHistorySnapshot(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "snapshot failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("snapshots_created=%d\n", snap.SnapshotsCreated)
	}
}
