package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/bikeshare-dashboard/internal/chart"
	"github.com/i474232898/bikeshare-dashboard/internal/rental"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func records() []rental.Record {
	var out []rental.Record
	for day := 0; day < 30; day++ {
		d := rental.NewDate(2011, 6, 1).AddDays(day)
		for hour := 0; hour < 24; hour += 6 {
			out = append(out, rental.Record{
				Date: d, Hour: hour, Season: 2 + day%2, Month: int(d.Month()), Weekday: int(d.Weekday()),
				Holiday: day % 2, WorkingDay: 1 - day%2, Weather: 1 + hour%3,
				Casual: int64(day + hour), Registered: int64(2*day + hour), Count: int64(3*day + 2*hour),
			})
		}
	}
	return out
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, f)

	f, err = ParseFormat("svg")
	require.NoError(t, err)
	assert.Equal(t, "image/svg+xml", f.ContentType())

	_, err = ParseFormat("gif")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestRenderEveryKindPNG(t *testing.T) {
	recs := records()
	specs := []chart.Spec{
		chart.Trend(chart.Meta{Name: "daily", Title: "Daily Rentals"}, rental.Aggregate(recs, rental.DimensionDate, nil)),
		chart.Trend(chart.Meta{Name: "hourly", Title: "Rentals by Hour"}, rental.Aggregate(recs, rental.DimensionHour, nil)),
		chart.RankedBar(chart.Meta{Name: "season", Title: "Rentals by Season"}, rental.Aggregate(recs, rental.DimensionSeason, &rental.SeasonLabels)),
		chart.GroupedTriple(chart.Meta{Name: "weekday", Title: "Rentals by Day of the Week"}, rental.Aggregate(recs, rental.DimensionWeekday, &rental.WeekdayLabels), nil),
	}

	r := NewGoChart(FormatPNG, 800, 400)
	for _, spec := range specs {
		var buf bytes.Buffer
		require.NoError(t, r.Render(&buf, spec), spec.Name)
		assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic), spec.Name)
	}
}

func TestRenderSVG(t *testing.T) {
	spec := chart.RankedBar(chart.Meta{Name: "weather", Title: "Rentals by Weather Condition"},
		rental.Aggregate(records(), rental.DimensionWeather, &rental.WeatherLabels, rental.MetricCount))

	var buf bytes.Buffer
	require.NoError(t, NewGoChart(FormatSVG, 600, 300).Render(&buf, spec))
	assert.Contains(t, buf.String(), "<svg")
}

func TestRenderEmptySpecPlaceholder(t *testing.T) {
	spec := chart.RankedBar(chart.Meta{Name: "season", Title: "Rentals by Season"},
		rental.Aggregate(nil, rental.DimensionSeason, &rental.SeasonLabels))

	var buf bytes.Buffer
	require.NoError(t, NewGoChart(FormatPNG, 400, 300).Render(&buf, spec))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestRenderSinglePointTrend(t *testing.T) {
	recs := []rental.Record{{Date: rental.NewDate(2024, 1, 1), Casual: 1, Registered: 2, Count: 3}}
	spec := chart.Trend(chart.Meta{Name: "daily"}, rental.Aggregate(recs, rental.DimensionDate, nil))

	var buf bytes.Buffer
	require.NoError(t, NewGoChart(FormatPNG, 400, 300).Render(&buf, spec))
}

func TestRenderRejectsMisaligned(t *testing.T) {
	spec := chart.Spec{
		Kind:        chart.KindRankedBar,
		Categories:  []string{"a"},
		Series:      []chart.Series{{Values: []int64{1, 2}}},
		Highlighted: chart.NoHighlight,
	}
	var buf bytes.Buffer
	assert.ErrorIs(t, NewGoChart(FormatPNG, 400, 300).Render(&buf, spec), chart.ErrMisaligned)
}
