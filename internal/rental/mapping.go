package rental

import (
	"fmt"
	"strconv"
)

// CodeMapping translates the small integer codes of one dimension into display labels.
// It is immutable once built.
type CodeMapping struct {
	dimension Dimension
	labels    map[int]string
}

// NewCodeMapping copies labels into a mapping for dim. Two codes sharing a label would
// merge groups, so that is rejected.
func NewCodeMapping(dim Dimension, labels map[int]string) (CodeMapping, error) {
	seen := make(map[string]int, len(labels))
	copied := make(map[int]string, len(labels))
	for code, label := range labels {
		if other, ok := seen[label]; ok {
			return CodeMapping{}, fmt.Errorf("%w: %s codes %d and %d both map to %q", ErrDuplicateLabel, dim, other, code, label)
		}
		seen[label] = code
		copied[code] = label
	}
	return CodeMapping{dimension: dim, labels: copied}, nil
}

func mustMapping(dim Dimension, labels map[int]string) CodeMapping {
	m, err := NewCodeMapping(dim, labels)
	if err != nil {
		panic(err)
	}
	return m
}

// Dimension reports which dimension the mapping belongs to.
func (m CodeMapping) Dimension() Dimension {
	return m.dimension
}

// Lookup returns the label for code, if one is defined.
func (m CodeMapping) Lookup(code int) (string, bool) {
	label, ok := m.labels[code]
	return label, ok
}

// Label returns the label for code; unmapped codes pass through as their decimal form.
func (m CodeMapping) Label(code int) string {
	if label, ok := m.labels[code]; ok {
		return label
	}
	return strconv.Itoa(code)
}

// Len returns the number of defined codes.
func (m CodeMapping) Len() int {
	return len(m.labels)
}

var (
	SeasonLabels = mustMapping(DimensionSeason, map[int]string{
		1: "Winter", 2: "Spring", 3: "Summer", 4: "Fall",
	})

	MonthLabels = mustMapping(DimensionMonth, map[int]string{
		1: "January", 2: "February", 3: "March", 4: "April", 5: "May", 6: "June",
		7: "July", 8: "August", 9: "September", 10: "October", 11: "November", 12: "December",
	})

	WeekdayLabels = mustMapping(DimensionWeekday, map[int]string{
		0: "Sunday", 1: "Monday", 2: "Tuesday", 3: "Wednesday", 4: "Thursday", 5: "Friday", 6: "Saturday",
	})

	HolidayLabels = mustMapping(DimensionHoliday, map[int]string{0: "No", 1: "Yes"})

	WorkingDayLabels = mustMapping(DimensionWorkingDay, map[int]string{0: "No", 1: "Yes"})

	WeatherLabels = mustMapping(DimensionWeather, map[int]string{
		1: "Clear", 2: "Misty", 3: "Light Snow/Rain", 4: "Heavy Rain/Snow",
	})
)

// MappingFor returns the fixed label table of dim. Date and hour have none.
func MappingFor(dim Dimension) (CodeMapping, bool) {
	switch dim {
	case DimensionSeason:
		return SeasonLabels, true
	case DimensionMonth:
		return MonthLabels, true
	case DimensionWeekday:
		return WeekdayLabels, true
	case DimensionHoliday:
		return HolidayLabels, true
	case DimensionWorkingDay:
		return WorkingDayLabels, true
	case DimensionWeather:
		return WeatherLabels, true
	default:
		return CodeMapping{}, false
	}
}
