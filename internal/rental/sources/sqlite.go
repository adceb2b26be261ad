package sources

import (
	"context"
	"fmt"
	"log"

	"github.com/i474232898/bikeshare-dashboard/internal/rental"
	"github.com/i474232898/bikeshare-dashboard/internal/storage"
)

// SQLiteSource reads the dataset previously imported with bikeshare-import.
type SQLiteSource struct {
	path   string
	policy rental.LoadPolicy
}

func NewSQLiteSource(path string, policy rental.LoadPolicy) *SQLiteSource {
	return &SQLiteSource{path: path, policy: policy}
}

func (s *SQLiteSource) Name() string {
	return "sqlite:" + s.path
}

func (s *SQLiteSource) Load(ctx context.Context) ([]rental.Record, error) {
	repo, err := storage.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer repo.Close()

	stored, err := repo.ListRecords(ctx, s.policy)
	if err != nil {
		return nil, err
	}

	records := stored[:0]
	for _, rec := range stored {
		if err := rec.Validate(); err != nil {
			if s.policy == rental.PolicyAbort {
				return nil, fmt.Errorf("stored row %s hr %d: %w", rec.Date, rec.Hour, err)
			}
			log.Printf("WARN: dropping stored row %s hr %d: %v", rec.Date, rec.Hour, err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
