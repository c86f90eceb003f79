package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// ProgressCalendar maps a calendar date ("2006-01-02") to the effort
// recorded for that day. One entry per date; writing the same date again
// replaces that day's value.
type ProgressCalendar map[string]float64

// Total returns the sum of all recorded effort.
func (pc ProgressCalendar) Total() float64 {
	var total float64
	for _, effort := range pc {
		total += effort
	}
	return total
}

// TotalExcluding returns the sum of all recorded effort except the entry
// for the given date, if any.
func (pc ProgressCalendar) TotalExcluding(date string) float64 {
	var total float64
	for day, effort := range pc {
		if day != date {
			total += effort
		}
	}
	return total
}

// calendarEntry is the alternate wire form: a list of {date, effort}
// records instead of a plain map.
type calendarEntry struct {
	Date   string  `json:"date"`
	Effort float64 `json:"effort"`
}

// UnmarshalJSON accepts either a date→effort object or an array of
// {date, effort} records, normalizing both to the map form.
func (pc *ProgressCalendar) UnmarshalJSON(data []byte) error {
	var direct map[string]float64
	if err := json.Unmarshal(data, &direct); err == nil {
		*pc = direct
		return nil
	}

	var entries []calendarEntry
	if err := json.Unmarshal(data, &entries); err == nil {
		result := make(ProgressCalendar, len(entries))
		for _, e := range entries {
			if e.Date != "" {
				result[e.Date] = e.Effort
			}
		}
		*pc = result
		return nil
	}

	return errors.New("progressCalendar must be an object or an array")
}

// Value stores the calendar as a JSON column.
func (pc ProgressCalendar) Value() (driver.Value, error) {
	if pc == nil {
		pc = ProgressCalendar{}
	}
	return json.Marshal(map[string]float64(pc))
}

// Scan loads the calendar from its JSON column.
func (pc *ProgressCalendar) Scan(value interface{}) error {
	if value == nil {
		*pc = ProgressCalendar{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into ProgressCalendar", value)
	}

	var direct map[string]float64
	if err := json.Unmarshal(data, &direct); err != nil {
		return err
	}
	*pc = direct
	return nil
}
