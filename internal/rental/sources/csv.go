package sources

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/i474232898/bikeshare-dashboard/internal/rental"
)

// ErrMissingColumn is returned when the input lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// Columns is the input schema. Other columns (instant, yr, temp, ...) are ignored.
var Columns = []string{
	"dteday", "hr", "season", "mnth", "weekday", "holiday",
	"workingday", "weathersit", "casual", "registered", "cnt",
}

// CSVSource reads the dataset from a local CSV file.
type CSVSource struct {
	path   string
	policy rental.LoadPolicy
}

func NewCSVSource(path string, policy rental.LoadPolicy) *CSVSource {
	return &CSVSource{path: path, policy: policy}
}

func (s *CSVSource) Name() string {
	return "csv:" + s.path
}

func (s *CSVSource) Load(ctx context.Context) ([]rental.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	return ReadCSV(f, s.policy)
}

// ReadCSV decodes every row of r. Cells are loaded as raw strings and parsed here,
// so nothing is coerced: a bad cell is a MalformedError handled per policy.
func ReadCSV(r io.Reader, policy rental.LoadPolicy) ([]rental.Record, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("read csv: %w", df.Err)
	}
	return decodeFrame(df, policy)
}

func decodeFrame(df dataframe.DataFrame, policy rental.LoadPolicy) ([]rental.Record, error) {
	present := make(map[string]bool)
	for _, name := range df.Names() {
		present[name] = true
	}

	cols := make(map[string][]string, len(Columns))
	for _, name := range Columns {
		if !present[name] {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
		cols[name] = df.Col(name).Records()
	}

	n := df.Nrow()
	records := make([]rental.Record, 0, n)
	dropped := 0

	for i := 0; i < n; i++ {
		rec, err := decodeRow(cols, i)
		if err == nil {
			err = rec.Validate()
		}
		if err != nil {
			var me *rental.MalformedError
			if errors.As(err, &me) {
				me.Line = i + 2 // header is line 1
			}
			if policy == rental.PolicyAbort {
				return nil, err
			}
			dropped++
			log.Printf("WARN: dropping malformed row: %v", err)
			continue
		}
		records = append(records, rec)
	}

	if dropped > 0 {
		log.Printf("INFO: loaded %d rows, dropped %d malformed", len(records), dropped)
	}
	return records, nil
}

func decodeRow(cols map[string][]string, i int) (rental.Record, error) {
	var (
		rec rental.Record
		err error
	)

	raw := cols["dteday"][i]
	if rec.Date, err = rental.ParseDate(raw); err != nil {
		return rec, &rental.MalformedError{Field: "dteday", Value: raw, Err: fmt.Errorf("%w: %v", rental.ErrMalformedRecord, err)}
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"hr", &rec.Hour},
		{"season", &rec.Season},
		{"mnth", &rec.Month},
		{"weekday", &rec.Weekday},
		{"holiday", &rec.Holiday},
		{"workingday", &rec.WorkingDay},
		{"weathersit", &rec.Weather},
	}
	for _, f := range ints {
		v, err := parseInt(f.name, cols[f.name][i])
		if err != nil {
			return rec, err
		}
		*f.dst = int(v)
	}

	counts := []struct {
		name string
		dst  *int64
	}{
		{"casual", &rec.Casual},
		{"registered", &rec.Registered},
		{"cnt", &rec.Count},
	}
	for _, f := range counts {
		v, err := parseInt(f.name, cols[f.name][i])
		if err != nil {
			return rec, err
		}
		*f.dst = v
	}
	return rec, nil
}

func parseInt(field, raw string) (int64, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &rental.MalformedError{Field: field, Value: raw, Err: fmt.Errorf("%w: not an integer", rental.ErrMalformedRecord)}
	}
	return v, nil
}
