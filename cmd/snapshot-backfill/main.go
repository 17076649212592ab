// snapshot-backfill writes today's history snapshot for every scored customer
// and optionally prunes snapshots past the retention window.
//
// Usage:
//
//	go run ./cmd/snapshot-backfill [--prune-days=365]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mmdatafocus/insights_backend/config"
	"github.com/mmdatafocus/insights_backend/models"
	"github.com/mmdatafocus/insights_backend/utils"
	"github.com/schollz/progressbar/v3"
)

func main() {
	pruneDays := flag.Int("prune-days", 0, "Optional: delete snapshots older than this many days (0 disables pruning)")
	flag.Parse()

	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil)")
		os.Exit(1)
	}

	models.MigrateTable()

	today, err := utils.ConvertToDate(time.Now().UTC(), "UTC")
	if err != nil {
		fmt.Fprintf(os.Stderr, "resolve date: %v\n", err)
		os.Exit(1)
	}

	scores, err := models.GetAllCustomerRFMScores(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load scores: %v\n", err)
		os.Exit(1)
	}
	snapshotted, err := models.GetSnapshottedCustomerIds(ctx, today)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load existing snapshots: %v\n", err)
		os.Exit(1)
	}

	bar := progressbar.Default(int64(len(scores)), "snapshotting")
	created := 0
	for _, score := range scores {
		_ = bar.Add(1)
		if snapshotted[score.CustomerId] {
			continue
		}
		snapshot := &models.RFMHistory{
			CustomerId:     score.CustomerId,
			SnapshotDate:   today,
			RecencyScore:   score.RecencyScore,
			FrequencyScore: score.FrequencyScore,
			MonetaryScore:  score.MonetaryScore,
			PaymentScore:   score.PaymentScore,
			AverageScore:   score.AverageScore,
			Tier:           score.Tier,
			Segment:        score.Segment,
		}
		if err := snapshot.Create(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "\ncustomer %d: snapshot failed: %v\n", score.CustomerId, err)
			os.Exit(1)
		}
		created++
	}
	fmt.Printf("\nsnapshots_created=%d\n", created)

	if *pruneDays > 0 {
		olderThan := today.AddDate(0, 0, -*pruneDays)
		pruned, err := models.PruneSnapshots(ctx, olderThan)
		if err != nil {
			fmt.Fprintf(os.Stderr, "prune failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("snapshots_pruned=%d (older than %s)\n", pruned, olderThan.Format("2006-01-02"))
	}
}
