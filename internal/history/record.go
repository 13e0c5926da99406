// Package history keeps the bounded list of recent timestamp conversions.
package history

import (
	"strings"
	"time"
)

// Record is one successful conversion. Records are never modified after
// they are created.
type Record struct {
	// RecordedAt is when the conversion happened, in epoch milliseconds.
	RecordedAt int64 `json:"recordedAt"`
	// OriginalValue is the timestamp exactly as it was extracted.
	OriginalValue int64 `json:"originalValue"`
	// ConvertedValue is "{formatted} ({relative})".
	ConvertedValue string `json:"convertedValue"`
}

// NewRecord builds a record stamped with at.
func NewRecord(at time.Time, original int64, converted string) Record {
	return Record{
		RecordedAt:     at.UnixMilli(),
		OriginalValue:  original,
		ConvertedValue: converted,
	}
}

// Time returns the calendar part of ConvertedValue, without the relative
// suffix that goes stale as soon as it is stored.
func (r Record) Time() string {
	if i := strings.Index(r.ConvertedValue, " ("); i >= 0 {
		return r.ConvertedValue[:i]
	}
	return r.ConvertedValue
}

// RecordedTime returns RecordedAt as a time.Time.
func (r Record) RecordedTime() time.Time {
	return time.UnixMilli(r.RecordedAt)
}
