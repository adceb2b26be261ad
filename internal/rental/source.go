package rental

import "context"

// LoadPolicy decides what a source does with a malformed row.
type LoadPolicy int

const (
	// PolicyAbort fails the whole load on the first malformed row.
	PolicyAbort LoadPolicy = iota
	// PolicyDrop skips malformed rows and keeps loading.
	PolicyDrop
)

// Source abstracts where the raw dataset comes from (CSV file, HTTP, SQLite).
type Source interface {
	Name() string
	Load(ctx context.Context) ([]Record, error)
}
