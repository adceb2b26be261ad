package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/i474232898/bikeshare-dashboard/internal/rental"
)

// Repository persists hourly rental rows in SQLite.
type Repository struct {
	db *sql.DB
}

// Open creates (if needed) and migrates the database at dbPath.
func Open(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ReplaceRecords swaps the whole table content for records in one transaction.
func (r *Repository) ReplaceRecords(ctx context.Context, records []rental.Record) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM hourly_rentals`); err != nil {
		return fmt.Errorf("clear hourly_rentals: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO hourly_rentals
			(dteday, hr, season, mnth, weekday, holiday, workingday, weathersit, casual, registered, cnt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx,
			rec.Date.String(), rec.Hour, rec.Season, rec.Month, rec.Weekday,
			rec.Holiday, rec.WorkingDay, rec.Weather,
			rec.Casual, rec.Registered, rec.Count,
		); err != nil {
			return fmt.Errorf("insert %s hr %d: %w", rec.Date, rec.Hour, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	log.Printf("INFO: stored %d hourly rental rows", len(records))
	return nil
}

// ListRecords returns every stored row ordered by date and hour. A row whose date
// cannot be parsed aborts the read or is skipped, depending on policy.
func (r *Repository) ListRecords(ctx context.Context, policy rental.LoadPolicy) ([]rental.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT dteday, hr, season, mnth, weekday, holiday, workingday, weathersit, casual, registered, cnt
		FROM hourly_rentals
		ORDER BY dteday, hr`)
	if err != nil {
		return nil, fmt.Errorf("query hourly_rentals: %w", err)
	}
	defer rows.Close()

	var records []rental.Record
	line := 0
	for rows.Next() {
		line++
		var (
			rec     rental.Record
			rawDate string
		)
		if err := rows.Scan(&rawDate, &rec.Hour, &rec.Season, &rec.Month, &rec.Weekday,
			&rec.Holiday, &rec.WorkingDay, &rec.Weather,
			&rec.Casual, &rec.Registered, &rec.Count); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", line, err)
		}
		d, err := rental.ParseDate(rawDate)
		if err != nil {
			malformed := &rental.MalformedError{Line: line, Field: "dteday", Value: rawDate,
				Err: fmt.Errorf("%w: %v", rental.ErrMalformedRecord, err)}
			if policy == rental.PolicyAbort {
				return nil, malformed
			}
			log.Printf("WARN: skipping stored row: %v", malformed)
			continue
		}
		rec.Date = d
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate hourly_rentals: %w", err)
	}
	return records, nil
}
