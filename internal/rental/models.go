package rental

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// dateLayout is the canonical wire and label format for calendar dates.
const dateLayout = "2006-01-02"

// acceptedDateLayouts lists the unambiguous formats accepted for dteday.
var acceptedDateLayouts = []string{
	dateLayout,
	"2006/01/02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// Date is a calendar day, always stored as midnight UTC.
type Date struct {
	time.Time
}

// NewDate builds a Date from its calendar components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses s using any of the accepted layouts.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range acceptedDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, fmt.Errorf("unrecognized date %q", s)
}

// String renders the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(dateLayout)
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return Date{Time: d.AddDate(0, 0, n)}
}

// Ordinal is the number of days since the Unix epoch; it orders dates.
func (d Date) Ordinal() int64 {
	return d.Unix() / 86400
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Record is one hourly row of the rental dataset.
// Count is expected to equal Casual + Registered; the dataset guarantees it.
type Record struct {
	Date       Date  `json:"dteday"`
	Hour       int   `json:"hr"`
	Season     int   `json:"season"`
	Month      int   `json:"mnth"`
	Weekday    int   `json:"weekday"`
	Holiday    int   `json:"holiday"`
	WorkingDay int   `json:"workingday"`
	Weather    int   `json:"weathersit"`
	Casual     int64 `json:"casual"`
	Registered int64 `json:"registered"`
	Count      int64 `json:"cnt"`
}

// Validate rejects records that cannot be aggregated: a missing date, an hour
// outside 0..23 or a negative count. Categorical codes are not checked; codes
// without a label pass through as their raw value. Count == Casual + Registered is
// not enforced.
func (r Record) Validate() error {
	if r.Date.IsZero() {
		return &MalformedError{Field: "dteday", Value: "", Err: ErrMalformedRecord}
	}
	if r.Hour < 0 || r.Hour > 23 {
		return &MalformedError{
			Field: "hr",
			Value: fmt.Sprint(r.Hour),
			Err:   fmt.Errorf("%w: out of range [0, 23]", ErrMalformedRecord),
		}
	}
	for _, m := range AllMetrics {
		if v := m.Value(r); v < 0 {
			return &MalformedError{Field: m.String(), Value: fmt.Sprint(v), Err: fmt.Errorf("%w: negative count", ErrMalformedRecord)}
		}
	}
	return nil
}
