// Package timestamp locates Unix timestamps in free-form text and renders
// them as IST calendar strings with a relative "ago" description.
package timestamp

import (
	"regexp"
	"strconv"
	"time"
)

// Unit is the resolution an extracted value was interpreted in.
type Unit int

const (
	Seconds Unit = iota
	Milliseconds
)

func (u Unit) String() string {
	if u == Milliseconds {
		return "ms"
	}
	return "s"
}

// Year bounds a candidate must fall within, inclusive.
const (
	MinYear = 2000
	MaxYear = 2100
)

// millisDigits is the capture length that marks a millisecond value.
const millisDigits = 13

// Pattern is one extraction rule. The first capture group holds the digits.
type Pattern struct {
	Name string
	Expr *regexp.Regexp
}

// DefaultPatterns are tried in order, most specific first. Order is the
// tie-break when several patterns match the same text.
var DefaultPatterns = []Pattern{
	{Name: "json-key", Expr: regexp.MustCompile(`"_ts"\s*:\s*(\d+)`)},
	{Name: "quoted-key", Expr: regexp.MustCompile(`'_ts'\s*:\s*(\d+)`)},
	{Name: "query", Expr: regexp.MustCompile(`_ts=(\d+)`)},
	{Name: "timestamp-field", Expr: regexp.MustCompile(`(?i)timestamp["']?\s*[=:]\s*["']?(\d+)["']?`)},
	{Name: "millis", Expr: regexp.MustCompile(`\b(\d{13})\b`)},
	{Name: "seconds", Expr: regexp.MustCompile(`\b(\d{10})\b`)},
}

// Candidate is a timestamp found in text.
type Candidate struct {
	// Value is the captured integer exactly as it appeared in the text.
	Value int64
	// Unit is how Value was interpreted when validating its year.
	Unit Unit
	// Pattern names the rule that matched.
	Pattern string
}

// Time returns the instant the candidate denotes.
func (c Candidate) Time() time.Time {
	if c.Unit == Milliseconds {
		return time.UnixMilli(c.Value)
	}
	return time.Unix(c.Value, 0)
}

// EpochSeconds returns the candidate in whole seconds.
func (c Candidate) EpochSeconds() int64 {
	if c.Unit == Milliseconds {
		return c.Value / 1000
	}
	return c.Value
}

// Extractor scans text with an ordered list of patterns.
type Extractor struct {
	patterns []Pattern
}

// NewExtractor returns an extractor using patterns, or DefaultPatterns when
// none are given.
func NewExtractor(patterns ...Pattern) *Extractor {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	return &Extractor{patterns: patterns}
}

// Extract returns the first candidate whose implied year lies within
// [MinYear, MaxYear]. A match that fails validation does not stop the scan;
// later patterns are still tried. Returns ErrNoTimestamp otherwise.
func (e *Extractor) Extract(text string) (Candidate, error) {
	if text == "" {
		return Candidate{}, ErrNoTimestamp
	}

	for _, p := range e.patterns {
		match := p.Expr.FindStringSubmatch(text)
		if len(match) < 2 || match[1] == "" {
			continue
		}

		digits := match[1]
		value, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			// Too many digits for int64; no year in range could come of it.
			continue
		}

		c := Candidate{Value: value, Unit: Seconds, Pattern: p.Name}
		if len(digits) == millisDigits {
			c.Unit = Milliseconds
		}
		if plausible(c) {
			return c, nil
		}
	}

	return Candidate{}, ErrNoTimestamp
}

// Extract runs the default extractor over text.
func Extract(text string) (Candidate, error) {
	return defaultExtractor.Extract(text)
}

var defaultExtractor = NewExtractor()

func plausible(c Candidate) bool {
	// Seconds values past the representable range would wrap in time.Unix.
	if c.Unit == Seconds && (c.Value > maxEpochMillis/1000 || c.Value < -maxEpochMillis/1000) {
		return false
	}
	year := c.Time().In(IST).Year()
	return year >= MinYear && year <= MaxYear
}
