package timestamp

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestExtract_Patterns(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    int64
		unit    Unit
		pattern string
	}{
		{"json key", `{"_ts": 1700000000}`, 1700000000, Seconds, "json-key"},
		{"json key no space", `{"_ts":1700000000,"id":"x"}`, 1700000000, Seconds, "json-key"},
		{"single quoted key", `{'_ts' : 1700000000}`, 1700000000, Seconds, "quoted-key"},
		{"query string", `https://example.com/doc?id=4&_ts=1700000000`, 1700000000, Seconds, "query"},
		{"timestamp colon", `Timestamp: 1700000000`, 1700000000, Seconds, "timestamp-field"},
		{"timestamp quoted", `{"timestamp": "1700000000"}`, 1700000000, Seconds, "timestamp-field"},
		{"timestamp millis", `timestamp=1700000000123`, 1700000000123, Milliseconds, "timestamp-field"},
		{"bare millis", `created 1700000000123 by admin`, 1700000000123, Milliseconds, "millis"},
		{"bare seconds", `created 1700000000 by admin`, 1700000000, Seconds, "seconds"},
		{"short value via key", `_ts=946665000`, 946665000, Seconds, "query"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(tt.text)
			require.NoError(t, err)
			require.Equal(t, tt.want, got.Value)
			require.Equal(t, tt.unit, got.Unit)
			require.Equal(t, tt.pattern, got.Pattern)
		})
	}
}

func TestExtract_PatternOrderWins(t *testing.T) {
	got, err := Extract(`{"other": 1600000000000, "_ts": 1700000000}`)
	require.NoError(t, err)
	require.Equal(t, int64(1700000000), got.Value, "quoted _ts key beats a bare 13-digit number")

	got, err = Extract(`1600000000 and 1700000000000`)
	require.NoError(t, err)
	require.Equal(t, int64(1700000000000), got.Value, "13-digit pattern is tried before 10-digit")
}

func TestExtract_FailedValidationFallsThrough(t *testing.T) {
	// The _ts value implies 1970, so the scan continues to the bare number.
	got, err := Extract(`{"_ts": 12345} seen at 1700000000`)
	require.NoError(t, err)
	require.Equal(t, int64(1700000000), got.Value)
	require.Equal(t, "seconds", got.Pattern)
}

func TestExtract_NotFound(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"no digits", "nothing to see here"},
		{"year 2286", "9999999999"},
		{"year 2103", "value 4200000000"},
		{"millis year 2286", "9999999999999"},
		{"too early", `{"_ts": 12}`},
		{"embedded in word", "id1700000000x"},
		{"eleven digits", "17000000001"},
		{"overflow", `_ts=99999999999999999999999999`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(tt.text)
			require.ErrorIs(t, err, ErrNoTimestamp)
		})
	}
}

func TestExtract_YearBoundaries(t *testing.T) {
	// Boundaries are evaluated at UTC+5:30.
	tests := []struct {
		value int64
		ok    bool
	}{
		{946664999, false}, // 1999-12-31 23:59:59 IST
		{946665000, true},  // 2000-01-01 00:00:00 IST
		{4133960999, true}, // 2100-12-31 23:59:59 IST
		{4133961000, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.value), func(t *testing.T) {
			got, err := Extract(fmt.Sprintf("_ts=%d", tt.value))
			if !tt.ok {
				require.ErrorIs(t, err, ErrNoTimestamp)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.value, got.Value)
		})
	}
}

func TestCandidate_Time(t *testing.T) {
	secs := Candidate{Value: 1700000000, Unit: Seconds}
	millis := Candidate{Value: 1700000000123, Unit: Milliseconds}

	require.Equal(t, int64(1700000000), secs.Time().Unix())
	require.Equal(t, int64(1700000000123), millis.Time().UnixMilli())
	require.Equal(t, int64(1700000000), millis.EpochSeconds())
	require.Equal(t, "ms", millis.Unit.String())
}

func TestNewExtractor_CustomPatterns(t *testing.T) {
	e := NewExtractor(DefaultPatterns[len(DefaultPatterns)-1])

	_, err := e.Extract(`{"_ts": 946665000}`)
	require.ErrorIs(t, err, ErrNoTimestamp, "only the 10-digit rule is active")

	got, err := e.Extract("at 1700000000")
	require.NoError(t, err)
	require.Equal(t, int64(1700000000), got.Value)
}

func separator() *rapid.Generator[string] {
	return rapid.StringMatching(`[a-zA-Z]{0,12}[ ,;(\[]`)
}

// TestExtract_MillisProperty checks that any in-range 13-digit value is
// returned verbatim from surrounding text.
func TestExtract_MillisProperty(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		value := rapid.Int64Range(1_000_000_000_000, 4_133_960_999_999).Draw(r, "value")
		prefix := separator().Draw(r, "prefix")
		suffix := rapid.StringMatching(`[ ,;)\]][a-zA-Z]{0,12}`).Draw(r, "suffix")

		got, err := Extract(fmt.Sprintf("%s%d%s", prefix, value, suffix))
		require.NoError(r, err)
		require.Equal(r, value, got.Value)
		require.Equal(r, Milliseconds, got.Unit)
	})
}

// TestExtract_SecondsProperty checks in-range 10-digit values.
func TestExtract_SecondsProperty(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		value := rapid.Int64Range(1_000_000_000, 4_133_960_999).Draw(r, "value")
		prefix := separator().Draw(r, "prefix")

		got, err := Extract(fmt.Sprintf("%s%d", prefix, value))
		require.NoError(r, err)
		require.Equal(r, value, got.Value)
		require.Equal(r, Seconds, got.Unit)
	})
}

// TestExtract_OutOfRangeProperty checks 10-digit values past 2100 are rejected.
func TestExtract_OutOfRangeProperty(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		value := rapid.Int64Range(4_133_961_000, 9_999_999_999).Draw(r, "value")

		_, err := Extract(fmt.Sprintf("seen %d", value))
		require.ErrorIs(r, err, ErrNoTimestamp)
	})
}
