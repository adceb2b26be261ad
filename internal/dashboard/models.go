package dashboard

import (
	"time"

	"github.com/i474232898/bikeshare-dashboard/internal/chart"
	"github.com/i474232898/bikeshare-dashboard/internal/rental"
)

// Chart names, in display order.
const (
	ChartDaily      = "daily"
	ChartSeason     = "season"
	ChartMonth      = "month"
	ChartWeekday    = "weekday"
	ChartHourly     = "hourly"
	ChartHoliday    = "holiday"
	ChartWorkingDay = "workingday"
	ChartWeather    = "weather"
)

// Summary holds the three headline metrics of a dashboard.
type Summary struct {
	Casual     int64 `json:"casual"`
	Registered int64 `json:"registered"`
	Total      int64 `json:"total"`
}

// Dashboard is the complete output of one recompute.
type Dashboard struct {
	ID          string       `json:"id"`
	Start       rental.Date  `json:"start"`
	End         rental.Date  `json:"end"`
	Records     int          `json:"records"`
	Summary     Summary      `json:"summary"`
	Charts      []chart.Spec `json:"charts"`
	GeneratedAt time.Time    `json:"generatedAt"`
}

// Chart returns the chart spec registered under name.
func (d Dashboard) Chart(name string) (chart.Spec, bool) {
	for _, c := range d.Charts {
		if c.Name == name {
			return c, true
		}
	}
	return chart.Spec{}, false
}

// panel describes how one chart is derived from the filtered records.
type panel struct {
	meta      chart.Meta
	dimension rental.Dimension
	metrics   []rental.Metric
	build     func(chart.Meta, rental.AggregateResult) chart.Spec
}

func groupedTriple(relabel func(string) string) func(chart.Meta, rental.AggregateResult) chart.Spec {
	return func(meta chart.Meta, res rental.AggregateResult) chart.Spec {
		return chart.GroupedTriple(meta, res, relabel)
	}
}

// panels is the fixed dashboard layout. The daily panel comes first; the summary is
// taken from it.
var panels = []panel{
	{
		meta:      chart.Meta{Name: ChartDaily, Title: "Daily Rentals", XLabel: "Date", YLabel: "Rentals"},
		dimension: rental.DimensionDate,
		build:     chart.Trend,
	},
	{
		meta:      chart.Meta{Name: ChartSeason, Title: "Rentals by Season", YLabel: "Rentals"},
		dimension: rental.DimensionSeason,
		build:     chart.RankedBar,
	},
	{
		meta:      chart.Meta{Name: ChartMonth, Title: "Rentals by Month", YLabel: "Rentals"},
		dimension: rental.DimensionMonth,
		build:     chart.RankedBar,
	},
	{
		meta:      chart.Meta{Name: ChartWeekday, Title: "Rentals by Day of the Week", YLabel: "Rentals"},
		dimension: rental.DimensionWeekday,
		build:     groupedTriple(nil),
	},
	{
		meta:      chart.Meta{Name: ChartHourly, Title: "Rentals by Hour", XLabel: "Hour", YLabel: "Rentals"},
		dimension: rental.DimensionHour,
		build:     chart.Trend,
	},
	{
		meta:      chart.Meta{Name: ChartHoliday, Title: "Rentals on Holidays", YLabel: "Rentals"},
		dimension: rental.DimensionHoliday,
		build:     groupedTriple(chart.YesNo("Holiday", "Non-Holiday")),
	},
	{
		meta:      chart.Meta{Name: ChartWorkingDay, Title: "Rentals on Working Days", YLabel: "Rentals"},
		dimension: rental.DimensionWorkingDay,
		build:     groupedTriple(chart.YesNo("Working Day", "Weekend")),
	},
	{
		meta:      chart.Meta{Name: ChartWeather, Title: "Rentals by Weather Condition", YLabel: "Rentals"},
		dimension: rental.DimensionWeather,
		metrics:   []rental.Metric{rental.MetricCount},
		build:     chart.RankedBar,
	},
}

// ChartNames lists every chart a dashboard carries, in display order.
func ChartNames() []string {
	names := make([]string, 0, len(panels))
	for _, p := range panels {
		names = append(names, p.meta.Name)
	}
	return names
}
