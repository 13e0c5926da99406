// Package testutil provides fixtures for history and storage tests.
package testutil

import (
	"fmt"
	"time"
)

// BaseTime is the instant fixture records are stamped relative to.
var BaseTime = time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)

// recordData holds the fields of a record to be appended.
type recordData struct {
	value     int64
	at        time.Time
	converted string
}

func defaultRecord(value int64, index int) recordData {
	return recordData{
		value:     value,
		at:        BaseTime.Add(time.Duration(index) * time.Minute),
		converted: fmt.Sprintf("converted %d (1 minute ago)", value),
	}
}

// RecordOption configures a fixture record.
type RecordOption func(*recordData)

// At stamps the record with t instead of the sequential default.
func At(t time.Time) RecordOption {
	return func(r *recordData) { r.at = t }
}

// Converted sets the ConvertedValue.
func Converted(s string) RecordOption {
	return func(r *recordData) { r.converted = s }
}
