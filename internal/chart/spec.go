package chart

import (
	"errors"
	"fmt"
)

// Kind is the declarative chart type handed to a renderer.
type Kind string

const (
	KindTrend         Kind = "trend"
	KindRankedBar     Kind = "ranked_bar"
	KindGroupedTriple Kind = "grouped_triple"
)

// NoHighlight marks a spec without a highlighted category.
const NoHighlight = -1

// ErrMisaligned is returned when a series does not line up with the categories.
var ErrMisaligned = errors.New("series length does not match categories")

// Series is one named sequence of values aligned with Spec.Categories.
type Series struct {
	Name   string  `json:"name"`
	Values []int64 `json:"values"`
}

// Meta carries the presentation strings of a chart.
type Meta struct {
	Name   string
	Title  string
	XLabel string
	YLabel string
}

// Spec is a renderer-independent chart request.
type Spec struct {
	Name        string   `json:"name"`
	Kind        Kind     `json:"kind"`
	Title       string   `json:"title"`
	XLabel      string   `json:"xLabel,omitempty"`
	YLabel      string   `json:"yLabel,omitempty"`
	Categories  []string `json:"categories"`
	Series      []Series `json:"series"`
	Highlighted int      `json:"highlighted"`
}

// Empty reports whether the spec has nothing to draw.
func (s Spec) Empty() bool {
	return len(s.Categories) == 0
}

// HighlightedCategory returns the flagged category, if any.
func (s Spec) HighlightedCategory() (string, bool) {
	if s.Highlighted < 0 || s.Highlighted >= len(s.Categories) {
		return "", false
	}
	return s.Categories[s.Highlighted], true
}

// Validate checks that every series is aligned with the categories and the
// highlight index is in range.
func (s Spec) Validate() error {
	for _, series := range s.Series {
		if len(series.Values) != len(s.Categories) {
			return fmt.Errorf("%w: chart %s series %q has %d values for %d categories",
				ErrMisaligned, s.Name, series.Name, len(series.Values), len(s.Categories))
		}
	}
	if s.Highlighted != NoHighlight && (s.Highlighted < 0 || s.Highlighted >= len(s.Categories)) {
		return fmt.Errorf("%w: chart %s highlight index %d out of range", ErrMisaligned, s.Name, s.Highlighted)
	}
	return nil
}

func newSpec(kind Kind, meta Meta, n int) Spec {
	return Spec{
		Name:        meta.Name,
		Kind:        kind,
		Title:       meta.Title,
		XLabel:      meta.XLabel,
		YLabel:      meta.YLabel,
		Categories:  make([]string, 0, n),
		Highlighted: NoHighlight,
	}
}
