package rental

import (
	"slices"
	"sort"
)

// AggregateRow holds the summed metrics of one group.
// Code is the natural ordering key of the group (epoch day for dates, the raw code
// otherwise) and is not affected by label mapping.
type AggregateRow struct {
	Key        string `json:"key"`
	Code       int64  `json:"-"`
	Casual     int64  `json:"casual_sum"`
	Registered int64  `json:"registered_sum"`
	Count      int64  `json:"cnt_sum"`
}

// Value returns the sum of m for the row.
func (r AggregateRow) Value(m Metric) int64 {
	switch m {
	case MetricCasual:
		return r.Casual
	case MetricRegistered:
		return r.Registered
	case MetricCount:
		return r.Count
	default:
		return 0
	}
}

func (r *AggregateRow) add(m Metric, v int64) {
	switch m {
	case MetricCasual:
		r.Casual += v
	case MetricRegistered:
		r.Registered += v
	case MetricCount:
		r.Count += v
	}
}

// AggregateResult is an ordered set of rows, sorted by SortMetric descending.
type AggregateResult struct {
	Dimension Dimension      `json:"-"`
	Metrics   []Metric       `json:"-"`
	Rows      []AggregateRow `json:"rows"`
}

// Len returns the number of groups.
func (r AggregateResult) Len() int {
	return len(r.Rows)
}

// SortMetric is Count when requested, the first requested metric otherwise.
func (r AggregateResult) SortMetric() Metric {
	return sortMetric(r.Metrics)
}

// Total sums m over every row.
func (r AggregateResult) Total(m Metric) int64 {
	var total int64
	for _, row := range r.Rows {
		total += row.Value(m)
	}
	return total
}

// Has reports whether m was summed.
func (r AggregateResult) Has(m Metric) bool {
	return slices.Contains(r.Metrics, m)
}

func sortMetric(metrics []Metric) Metric {
	if len(metrics) == 0 || slices.Contains(metrics, MetricCount) {
		return MetricCount
	}
	return metrics[0]
}

// Aggregate groups records along dim and sums the requested metrics per group.
// When mapping is non-nil each key is translated before grouping; codes missing from
// the mapping keep their raw form. With no metrics given all three are summed.
// Rows are sorted by the sort metric descending, ties keeping first-seen order.
func Aggregate(records []Record, dim Dimension, mapping *CodeMapping, metrics ...Metric) AggregateResult {
	if len(metrics) == 0 {
		metrics = AllMetrics
	}
	metrics = slices.Clone(metrics)

	index := make(map[string]int)
	rows := make([]AggregateRow, 0)

	for _, rec := range records {
		code, label := dim.key(rec)
		if mapping != nil && dim != DimensionDate {
			label = mapping.Label(int(code))
		}

		i, ok := index[label]
		if !ok {
			i = len(rows)
			index[label] = i
			rows = append(rows, AggregateRow{Key: label, Code: code})
		}
		for _, m := range metrics {
			rows[i].add(m, m.Value(rec))
		}
	}

	by := sortMetric(metrics)
	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].Value(by) > rows[b].Value(by)
	})

	return AggregateResult{
		Dimension: dim,
		Metrics:   metrics,
		Rows:      rows,
	}
}
