package store

import (
	"errors"
	"sort"

	"github.com/i474232898/bikeshare-dashboard/internal/rental"
)

var (
	// ErrNotFound is returned when the store holds no records at all.
	ErrNotFound = errors.New("no rental records loaded")
)

// RecordStore is the immutable in-memory dataset. It is built once and only read
// afterwards, so it is safe for concurrent use without locking.
type RecordStore struct {
	records []rental.Record
	min     rental.Date
	max     rental.Date
}

// NewRecordStore copies records and orders them by date then hour.
func NewRecordStore(records []rental.Record) *RecordStore {
	data := make([]rental.Record, len(records))
	copy(data, records)

	sort.SliceStable(data, func(i, j int) bool {
		if !data[i].Date.Equal(data[j].Date.Time) {
			return data[i].Date.Before(data[j].Date.Time)
		}
		return data[i].Hour < data[j].Hour
	})

	s := &RecordStore{records: data}
	if len(data) > 0 {
		s.min = data[0].Date
		s.max = data[len(data)-1].Date
	}
	return s
}

// Len returns the number of records held.
func (s *RecordStore) Len() int {
	return len(s.records)
}

// All returns a copy of every record.
func (s *RecordStore) All() []rental.Record {
	out := make([]rental.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Bounds returns the earliest and latest record dates.
func (s *RecordStore) Bounds() (rental.Date, rental.Date, error) {
	if len(s.records) == 0 {
		return rental.Date{}, rental.Date{}, ErrNotFound
	}
	return s.min, s.max, nil
}

// Range returns all records dated between start and end (inclusive).
func (s *RecordStore) Range(start, end rental.Date) []rental.Record {
	return rental.FilterByDate(s.records, start, end)
}

// Clamp restricts [start, end] to the dataset bounds. Zero dates take the
// corresponding bound.
func (s *RecordStore) Clamp(start, end rental.Date) (rental.Date, rental.Date, error) {
	lo, hi, err := s.Bounds()
	if err != nil {
		return start, end, err
	}
	if start.IsZero() || start.Before(lo.Time) {
		start = lo
	}
	if end.IsZero() || end.After(hi.Time) {
		end = hi
	}
	return start, end, nil
}
