package rental

import "strconv"

// Dimension selects the record attribute a result is grouped by.
type Dimension int

const (
	DimensionDate Dimension = iota
	DimensionSeason
	DimensionMonth
	DimensionWeekday
	DimensionHour
	DimensionHoliday
	DimensionWorkingDay
	DimensionWeather
)

// Dimensions lists every groupable dimension in dashboard order.
var Dimensions = []Dimension{
	DimensionDate,
	DimensionSeason,
	DimensionMonth,
	DimensionWeekday,
	DimensionHour,
	DimensionHoliday,
	DimensionWorkingDay,
	DimensionWeather,
}

// String returns the dataset column name of the dimension.
func (d Dimension) String() string {
	switch d {
	case DimensionDate:
		return "dteday"
	case DimensionSeason:
		return "season"
	case DimensionMonth:
		return "mnth"
	case DimensionWeekday:
		return "weekday"
	case DimensionHour:
		return "hr"
	case DimensionHoliday:
		return "holiday"
	case DimensionWorkingDay:
		return "workingday"
	case DimensionWeather:
		return "weathersit"
	default:
		return "dimension(" + strconv.Itoa(int(d)) + ")"
	}
}

// key returns the natural ordering code of r along d and its raw label.
func (d Dimension) key(r Record) (int64, string) {
	var code int
	switch d {
	case DimensionDate:
		return r.Date.Ordinal(), r.Date.String()
	case DimensionSeason:
		code = r.Season
	case DimensionMonth:
		code = r.Month
	case DimensionWeekday:
		code = r.Weekday
	case DimensionHour:
		code = r.Hour
	case DimensionHoliday:
		code = r.Holiday
	case DimensionWorkingDay:
		code = r.WorkingDay
	case DimensionWeather:
		code = r.Weather
	}
	return int64(code), strconv.Itoa(code)
}

// Metric names a summable count field.
type Metric int

const (
	MetricCasual Metric = iota
	MetricRegistered
	MetricCount
)

// AllMetrics is the default metric set.
var AllMetrics = []Metric{MetricCasual, MetricRegistered, MetricCount}

func (m Metric) String() string {
	switch m {
	case MetricCasual:
		return "casual"
	case MetricRegistered:
		return "registered"
	case MetricCount:
		return "cnt"
	default:
		return "metric(" + strconv.Itoa(int(m)) + ")"
	}
}

// Value extracts the metric from a record.
func (m Metric) Value(r Record) int64 {
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
