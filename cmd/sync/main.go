package main

import (
	"context"
	"log"
	"time"

	"github.com/nowopenyyc/nowopen/app/repository"
	"github.com/nowopenyyc/nowopen/internal/pkg/database"
	"github.com/nowopenyyc/nowopen/internal/pkg/env"
	"github.com/nowopenyyc/nowopen/internal/pkg/jobs"
)

// One-shot licence sync, intended for cron or manual runs.
func main() {
	env.SetupEnvFile()
	database.SetupDatabase()
	repository.InitializeFactory(database.GetDB())

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	stats, err := jobs.RunSync(ctx)
	if err != nil {
		log.Fatalf("Sync failed: %v", err)
	}

	log.Printf("Sync finished in %s: %d processed, %d created, %d updated, %d skipped, %d failed",
		stats.Duration.Round(time.Millisecond),
		stats.Processed, stats.Created, stats.Updated, stats.Skipped, stats.Failed)

	for _, f := range stats.Failures {
		log.Printf("  record %s: %s", f.ExternalID, f.Reason)
	}
}
