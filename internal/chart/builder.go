package chart

import (
	"slices"
	"sort"

	"github.com/i474232898/bikeshare-dashboard/internal/rental"
)

// Series names used by the grouped-triple chart.
const (
	SeriesCasual     = "Casual"
	SeriesRegistered = "Registered"
	SeriesTotal      = "Total"
)

// Trend plots the count of each group in natural key order (chronological for
// dates, ascending for hours), not in the aggregator's ranking order.
func Trend(meta Meta, res rental.AggregateResult) Spec {
	rows := slices.Clone(res.Rows)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Code < rows[j].Code
	})

	spec := newSpec(KindTrend, meta, len(rows))
	values := make([]int64, 0, len(rows))
	for _, row := range rows {
		spec.Categories = append(spec.Categories, row.Key)
		values = append(values, row.Count)
	}
	spec.Series = []Series{{Name: SeriesTotal, Values: values}}
	return spec
}

// RankedBar keeps the aggregator's descending order and flags the group with the
// largest count; ties go to the first one.
func RankedBar(meta Meta, res rental.AggregateResult) Spec {
	spec := newSpec(KindRankedBar, meta, len(res.Rows))
	values := make([]int64, 0, len(res.Rows))
	for i, row := range res.Rows {
		spec.Categories = append(spec.Categories, row.Key)
		values = append(values, row.Count)
		if spec.Highlighted == NoHighlight || row.Count > values[spec.Highlighted] {
			spec.Highlighted = i
		}
	}
	spec.Series = []Series{{Name: SeriesTotal, Values: values}}
	return spec
}

// GroupedTriple lays out casual, registered and total side by side per group, in
// aggregator order. relabel, when non-nil, rewrites each category for display.
func GroupedTriple(meta Meta, res rental.AggregateResult, relabel func(string) string) Spec {
	spec := newSpec(KindGroupedTriple, meta, len(res.Rows))
	casual := make([]int64, 0, len(res.Rows))
	registered := make([]int64, 0, len(res.Rows))
	total := make([]int64, 0, len(res.Rows))
	for _, row := range res.Rows {
		key := row.Key
		if relabel != nil {
			key = relabel(key)
		}
		spec.Categories = append(spec.Categories, key)
		casual = append(casual, row.Casual)
		registered = append(registered, row.Registered)
		total = append(total, row.Count)
	}
	spec.Series = []Series{
		{Name: SeriesCasual, Values: casual},
		{Name: SeriesRegistered, Values: registered},
		{Name: SeriesTotal, Values: total},
	}
	return spec
}

// YesNo returns a relabel func mapping the "Yes" label to yes and anything else to no.
func YesNo(yes, no string) func(string) string {
	return func(key string) string {
		if key == rental.HolidayLabels.Label(1) {
			return yes
		}
		return no
	}
}
