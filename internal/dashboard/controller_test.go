package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/bikeshare-dashboard/internal/chart"
	"github.com/i474232898/bikeshare-dashboard/internal/rental"
	"github.com/i474232898/bikeshare-dashboard/internal/store"
)

var fixedNow = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func scenarioRecords() []rental.Record {
	return []rental.Record{
		{Date: rental.NewDate(2024, 1, 1), Season: 1, Month: 1, Weekday: 1, Weather: 1, WorkingDay: 0, Holiday: 1, Casual: 1, Registered: 2, Count: 3},
		{Date: rental.NewDate(2024, 1, 2), Season: 1, Month: 1, Weekday: 2, Weather: 2, WorkingDay: 1, Casual: 0, Registered: 5, Count: 5},
	}
}

func wideRecords() []rental.Record {
	var out []rental.Record
	start := rental.NewDate(2011, 1, 1)
	for day := 0; day < 60; day++ {
		d := start.AddDays(day)
		for hour := 0; hour < 24; hour += 3 {
			casual := int64((day*7 + hour) % 11)
			registered := int64((day*3 + hour*5) % 37)
			out = append(out, rental.Record{
				Date:       d,
				Hour:       hour,
				Season:     1 + (day/20)%4,
				Month:      int(d.Month()),
				Weekday:    int(d.Weekday()),
				Holiday:    boolInt(day%17 == 0),
				WorkingDay: boolInt(d.Weekday() != time.Saturday && d.Weekday() != time.Sunday),
				Weather:    1 + (day+hour)%3,
				Casual:     casual,
				Registered: registered,
				Count:      casual + registered,
			})
		}
	}
	return out
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func TestUpdateSingleDay(t *testing.T) {
	c := NewController(store.NewRecordStore(scenarioRecords()), WithClock(func() time.Time { return fixedNow }))
	day := rental.NewDate(2024, 1, 1)

	dash, err := c.Update(context.Background(), day, day)
	require.NoError(t, err)

	assert.Equal(t, Summary{Casual: 1, Registered: 2, Total: 3}, dash.Summary)
	assert.Equal(t, 1, dash.Records)
	assert.Equal(t, fixedNow, dash.GeneratedAt)
	assert.NotEmpty(t, dash.ID)

	daily, ok := dash.Chart(ChartDaily)
	require.True(t, ok)
	assert.Equal(t, chart.KindTrend, daily.Kind)
	assert.Equal(t, []string{"2024-01-01"}, daily.Categories)
	assert.Equal(t, []int64{3}, daily.Series[0].Values)

	holiday, ok := dash.Chart(ChartHoliday)
	require.True(t, ok)
	assert.Equal(t, []string{"Holiday"}, holiday.Categories)

	working, ok := dash.Chart(ChartWorkingDay)
	require.True(t, ok)
	assert.Equal(t, []string{"Weekend"}, working.Categories)

	assert.Equal(t, StateIdle, c.State())
}

func TestUpdateBareRecords(t *testing.T) {
	records := []rental.Record{
		{Date: rental.NewDate(2024, 1, 1), Casual: 1, Registered: 2, Count: 3},
		{Date: rental.NewDate(2024, 1, 2), Casual: 0, Registered: 5, Count: 5},
	}
	c := NewController(store.NewRecordStore(records))
	day := rental.NewDate(2024, 1, 1)

	dash, err := c.Update(context.Background(), day, day)
	require.NoError(t, err)
	assert.Equal(t, Summary{Casual: 1, Registered: 2, Total: 3}, dash.Summary)

	daily, ok := dash.Chart(ChartDaily)
	require.True(t, ok)
	assert.Equal(t, []string{"2024-01-01"}, daily.Categories)
	assert.Equal(t, []int64{3}, daily.Series[0].Values)

	season, ok := dash.Chart(ChartSeason)
	require.True(t, ok)
	assert.Equal(t, []string{"0"}, season.Categories)
}

func TestUpdateUnlabelledCodePassesThrough(t *testing.T) {
	records := scenarioRecords()
	records = append(records, rental.Record{
		Date: rental.NewDate(2024, 1, 2), Hour: 5, Season: 1, Month: 1, Weekday: 2,
		Weather: 5, Casual: 4, Registered: 6, Count: 10,
	})
	c := NewController(store.NewRecordStore(records))

	dash, err := c.Update(context.Background(), rental.NewDate(2024, 1, 1), rental.NewDate(2024, 1, 2))
	require.NoError(t, err)
	assert.EqualValues(t, 18, dash.Summary.Total)

	weather, ok := dash.Chart(ChartWeather)
	require.True(t, ok)
	assert.Contains(t, weather.Categories, "5")
	top, ok := weather.HighlightedCategory()
	require.True(t, ok)
	assert.Equal(t, "5", top)
}

func TestUpdateEmptyRange(t *testing.T) {
	c := NewController(store.NewRecordStore(scenarioRecords()))

	for _, r := range [][2]rental.Date{
		{rental.NewDate(2030, 1, 1), rental.NewDate(2030, 2, 1)},
		{rental.NewDate(2024, 1, 2), rental.NewDate(2024, 1, 1)},
	} {
		dash, err := c.Update(context.Background(), r[0], r[1])
		require.NoError(t, err)
		assert.Zero(t, dash.Summary)
		require.Len(t, dash.Charts, len(ChartNames()))
		for _, spec := range dash.Charts {
			assert.True(t, spec.Empty(), spec.Name)
			assert.Equal(t, chart.NoHighlight, spec.Highlighted, spec.Name)
		}
	}
}

func TestChartsInDisplayOrder(t *testing.T) {
	c := NewController(store.NewRecordStore(wideRecords()))
	dash, err := c.Update(context.Background(), rental.NewDate(2011, 1, 1), rental.NewDate(2011, 3, 1))
	require.NoError(t, err)

	names := make([]string, 0, len(dash.Charts))
	for _, spec := range dash.Charts {
		names = append(names, spec.Name)
	}
	assert.Equal(t, []string{
		ChartDaily, ChartSeason, ChartMonth, ChartWeekday,
		ChartHourly, ChartHoliday, ChartWorkingDay, ChartWeather,
	}, names)
}

func TestSummaryMatchesEveryPanel(t *testing.T) {
	records := wideRecords()
	c := NewController(store.NewRecordStore(records))
	start, end := rental.NewDate(2011, 1, 10), rental.NewDate(2011, 2, 20)

	dash, err := c.Update(context.Background(), start, end)
	require.NoError(t, err)

	var want Summary
	for _, r := range rental.FilterByDate(records, start, end) {
		want.Casual += r.Casual
		want.Registered += r.Registered
		want.Total += r.Count
	}
	assert.Equal(t, want, dash.Summary)

	for _, spec := range dash.Charts {
		total := spec.Series[len(spec.Series)-1].Values
		var sum int64
		for _, v := range total {
			sum += v
		}
		assert.Equal(t, want.Total, sum, spec.Name)

		if spec.Kind == chart.KindRankedBar {
			values := spec.Series[0].Values
			for i := 1; i < len(values); i++ {
				assert.GreaterOrEqual(t, values[i-1], values[i], spec.Name)
			}
			for _, v := range values {
				assert.LessOrEqual(t, v, values[spec.Highlighted], spec.Name)
			}
		}
	}

	hourly, _ := dash.Chart(ChartHourly)
	assert.Equal(t, []string{"0", "3", "6", "9", "12", "15", "18", "21"}, hourly.Categories)
}

func TestParallelMatchesSequential(t *testing.T) {
	src := store.NewRecordStore(wideRecords())
	clock := WithClock(func() time.Time { return fixedNow })
	start, end := rental.NewDate(2011, 1, 1), rental.NewDate(2011, 3, 1)

	par, err := NewController(src, clock).Update(context.Background(), start, end)
	require.NoError(t, err)
	seq, err := NewController(src, clock, WithSequential()).Update(context.Background(), start, end)
	require.NoError(t, err)

	assert.Equal(t, seq.Summary, par.Summary)
	assert.Equal(t, seq.Charts, par.Charts)
}

type brokenSource struct {
	good []rental.Record
}

func (b brokenSource) Range(start, end rental.Date) []rental.Record {
	if start.Year() == 1999 {
		return []rental.Record{{Date: start, Hour: 99, Season: 1, Month: 1, Weather: 1}}
	}
	return rental.FilterByDate(b.good, start, end)
}

func TestFailedRecomputeKeepsPrevious(t *testing.T) {
	c := NewController(brokenSource{good: scenarioRecords()})

	_, err := c.Current()
	assert.ErrorIs(t, err, ErrNoCurrent)

	first, err := c.Update(context.Background(), rental.NewDate(2024, 1, 1), rental.NewDate(2024, 1, 2))
	require.NoError(t, err)

	_, err = c.Update(context.Background(), rental.NewDate(1999, 1, 1), rental.NewDate(1999, 1, 1))
	require.Error(t, err)
	assert.ErrorIs(t, err, rental.ErrMalformedRecord)

	current, err := c.Current()
	require.NoError(t, err)
	assert.Equal(t, first.ID, current.ID)
	assert.Equal(t, StateIdle, c.State())
}

func TestUpdateHonoursCancellation(t *testing.T) {
	c := NewController(store.NewRecordStore(scenarioRecords()), WithSequential())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Update(ctx, rental.NewDate(2024, 1, 1), rental.NewDate(2024, 1, 2))
	assert.ErrorIs(t, err, context.Canceled)
	_, err = c.Current()
	assert.ErrorIs(t, err, ErrNoCurrent)
}
