// Command bikeshare-import loads a CSV dataset into the SQLite store used by
// DATASET_SOURCE=sqlite.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/i474232898/bikeshare-dashboard/internal/rental"
	"github.com/i474232898/bikeshare-dashboard/internal/rental/sources"
	"github.com/i474232898/bikeshare-dashboard/internal/storage"
)

func main() {
	csvPath := flag.String("csv", "dashboard/dataset.csv", "path to the hourly rentals CSV")
	dbPath := flag.String("db", "./data/bikeshare.db", "path to the SQLite database")
	lenient := flag.Bool("drop-malformed", false, "skip malformed rows instead of aborting")
	flag.Parse()

	policy := rental.PolicyAbort
	if *lenient {
		policy = rental.PolicyDrop
	}

	if err := run(context.Background(), *csvPath, *dbPath, policy); err != nil {
		log.Fatalf("import failed: %v", err)
	}
}

func run(ctx context.Context, csvPath, dbPath string, policy rental.LoadPolicy) error {
	records, err := sources.NewCSVSource(csvPath, policy).Load(ctx)
	if err != nil {
		return fmt.Errorf("read %s: %w", csvPath, err)
	}

	repo, err := storage.Open(dbPath)
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := repo.ReplaceRecords(ctx, records); err != nil {
		return err
	}
	log.Printf("INFO: imported %d records into %s", len(records), dbPath)
	return nil
}
