package types

import (
	"regexp"
	"strings"
	"time"
)

// Date is a calendar date. The time of day carries no meaning.
type Date time.Time

// ParseDate parses a string in RFC3339 full-date format ("2006-01-02")
// or a full RFC3339 timestamp and returns the Date it represents.
func ParseDate(s string) (Date, error) {
	// This allows to parse strings in the "2006-01-02" format
	match, err := regexp.MatchString("^[0-9]{4}-[0-9]{2}-[0-9]{2}$", s)
	if err != nil {
		return Date{}, err
	}

	// This is the default pattern
	pattern := "2006-01-02T15:04:05Z07:00"
	if match {
		pattern = "2006-01-02"
	}

	t, err := time.Parse(pattern, s)
	if err != nil {
		return Date{}, err
	}

	return Date(t), nil
}

// DateOf returns the Date a time instant falls on.
func DateOf(t time.Time) Date {
	return Date(t)
}

// String returns the date formatted as YYYY-MM-DD.
func (d Date) String() string {
	return time.Time(d).Format("2006-01-02")
}

// MarshalJSON implements the json.Marshaler interface.
func (d Date) MarshalJSON() ([]byte, error) {
	return time.Time(d).MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// The date is expected to be a string in a format accepted by ParseDate.
func (d *Date) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		return nil
	}

	date, err := ParseDate(value)
	if err != nil {
		return err
	}

	*d = date
	return nil
}

// UnmarshalParam binds a date from a query string or URI parameter.
// The value has to be in a format accepted by ParseDate.
func (d *Date) UnmarshalParam(p string) error {
	if p == "" {
		*d = Date{}
		return nil
	}

	date, err := ParseDate(p)
	if err != nil {
		return err
	}

	*d = date
	return nil
}

// IsZero reports if the date is the zero value.
func (d Date) IsZero() bool {
	return time.Time(d).IsZero()
}

// Time returns the date as a time.Time.
func (d Date) Time() time.Time {
	return time.Time(d)
}
