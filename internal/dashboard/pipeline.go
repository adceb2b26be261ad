package dashboard

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/i474232898/bikeshare-dashboard/internal/chart"
	"github.com/i474232898/bikeshare-dashboard/internal/rental"
)

// Output is the derived part of a dashboard: headline metrics and chart specs.
type Output struct {
	Summary Summary
	Charts  []chart.Spec
}

// Build aggregates the filtered records once per panel and turns each result into
// its chart spec. Panels run concurrently when parallel is set; every panel writes
// only its own slot so the output matches the sequential order exactly.
func Build(ctx context.Context, records []rental.Record, parallel bool) (Output, error) {
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return Output{}, fmt.Errorf("record %d (%s): %w", i, r.Date, err)
		}
	}

	results := make([]rental.AggregateResult, len(panels))
	specs := make([]chart.Spec, len(panels))

	run := func(ctx context.Context, i int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		p := panels[i]
		var mapping *rental.CodeMapping
		if m, ok := rental.MappingFor(p.dimension); ok {
			mapping = &m
		}
		results[i] = rental.Aggregate(records, p.dimension, mapping, p.metrics...)
		specs[i] = p.build(p.meta, results[i])
		return specs[i].Validate()
	}

	if parallel {
		g, gctx := errgroup.WithContext(ctx)
		for i := range panels {
			i := i
			g.Go(func() error { return run(gctx, i) })
		}
		if err := g.Wait(); err != nil {
			return Output{}, err
		}
	} else {
		for i := range panels {
			if err := run(ctx, i); err != nil {
				return Output{}, err
			}
		}
	}

	daily := results[0]
	return Output{
		Summary: Summary{
			Casual:     daily.Total(rental.MetricCasual),
			Registered: daily.Total(rental.MetricRegistered),
			Total:      daily.Total(rental.MetricCount),
		},
		Charts: specs,
	}, nil
}
