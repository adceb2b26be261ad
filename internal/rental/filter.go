package rental

// FilterByDate returns the records whose date lies in [start, end], both inclusive.
// An inverted range yields an empty slice. The result never aliases records.
func FilterByDate(records []Record, start, end Date) []Record {
	result := make([]Record, 0)
	if start.After(end.Time) {
		return result
	}
	for _, r := range records {
		if r.Date.Before(start.Time) || r.Date.After(end.Time) {
			continue
		}
		result = append(result, r)
	}
	return result
}
