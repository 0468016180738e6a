// Package caldate implements a plain calendar date (no clock, no zone).
//
// Reservation dates are exchanged as "2006-01-02" strings and stored in a
// Postgres date column. Converting to time.Time only happens at local
// midnight of an explicit location, so a date never shifts by a day.
package caldate

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const ISOLayout = "2006-01-02"

type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func New(year int, month time.Month, day int) Date {
	return Of(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Of returns the calendar date of t in t's own location.
func Of(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func Today(loc *time.Location) Date {
	return Of(time.Now().In(loc))
}

// Parse accepts only the strict ISO form yyyy-mm-dd and rejects dates that
// do not exist in the calendar (e.g. 2025-02-31).
func Parse(s string) (Date, error) {
	t, err := time.Parse(ISOLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("caldate: invalid date %q: %w", s, err)
	}
	return Of(t), nil
}

func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// In returns local midnight of d in loc.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) AddDays(n int) Date {
	return Of(d.In(time.UTC).AddDate(0, 0, n))
}

func (d Date) Weekday() time.Weekday {
	return d.In(time.UTC).Weekday()
}

// StartOfWeek returns the Monday of d's week (weeks run Monday to Sunday).
func (d Date) StartOfWeek() Date {
	offset := int(d.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset = 6
	}
	return d.AddDays(-offset)
}

func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }
func (d Date) Equal(o Date) bool  { return d.Compare(o) == 0 }

// Between reports whether from <= d <= to.
func (d Date) Between(from, to Date) bool {
	return !d.Before(from) && !d.After(to)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// --------------------------------------------------
// JSON
// --------------------------------------------------

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// --------------------------------------------------
// SQL
// --------------------------------------------------

// Value encodes d as UTC midnight, which the date column stores verbatim.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.In(time.UTC), nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		// date columns come back as midnight UTC; keep the wall date.
		*d = Of(v)
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	}
	return fmt.Errorf("caldate: cannot scan %T", src)
}

func (d *Date) scanString(s string) error {
	if len(s) > len(ISOLayout) {
		s = s[:len(ISOLayout)]
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (Date) GormDataType() string {
	return "date"
}
