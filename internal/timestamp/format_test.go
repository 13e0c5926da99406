package timestamp

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var refNow = time.Date(2024, time.March, 1, 12, 0, 0, 500_000_000, time.UTC)

func TestFormatter_Format(t *testing.T) {
	f := NewFormatter(FixedClock(refNow))

	conv, err := f.Format(1700000000)
	require.NoError(t, err)
	require.Equal(t, "15 November 2023, 03:43:20 am", conv.Formatted)
	require.Contains(t, conv.Formatted, "November")
	require.Contains(t, conv.Formatted, "2023")
	require.Equal(t, "15 weeks ago", conv.Relative)
	require.Equal(t, "15 November 2023, 03:43:20 am (15 weeks ago)", conv.String())
}

func TestFormatter_Epoch(t *testing.T) {
	f := NewFormatter(FixedClock(refNow))

	conv, err := f.Format(0)
	require.NoError(t, err)
	require.Equal(t, "1 January 1970, 05:30:00 am", conv.Formatted)

	weeks := refNow.UnixMilli() / 604_800_000
	require.Equal(t, fmt.Sprintf("%d weeks ago", weeks), conv.Relative)
}

func TestFormatter_Pluralization(t *testing.T) {
	f := NewFormatter(FixedClock(refNow))
	now := refNow.Unix()

	one, err := f.Format(now - 1)
	require.NoError(t, err)
	require.Equal(t, "1 second ago", one.Relative)

	two, err := f.Format(now - 2)
	require.NoError(t, err)
	require.Equal(t, "2 seconds ago", two.Relative)
}

func TestFormatter_PM(t *testing.T) {
	f := NewFormatter(FixedClock(refNow))

	// 2020-09-13 17:56:40 IST
	conv, err := f.Format(1600000000)
	require.NoError(t, err)
	require.Equal(t, "13 September 2020, 05:56:40 pm", conv.Formatted)
}

func TestFormatter_FormatTimeMillis(t *testing.T) {
	f := NewFormatter(FixedClock(refNow))

	conv, err := f.FormatTime(time.UnixMilli(1700000000123))
	require.NoError(t, err)
	require.Equal(t, "15 November 2023, 03:43:20 am", conv.Formatted)
}

func TestFormatter_InvalidDate(t *testing.T) {
	f := NewFormatter(FixedClock(refNow))

	_, err := f.Format(8_640_000_000_001)
	require.Error(t, err)

	var convErr *ConversionError
	require.True(t, errors.As(err, &convErr))
	require.Equal(t, "Failed to convert timestamp", err.Error())
	require.ErrorIs(t, err, ErrInvalidDate)
	require.Contains(t, convErr.Detail(), "invalid date conversion")
}

func TestFormatter_NilClockUsesRealClock(t *testing.T) {
	f := NewFormatter(nil)

	conv, err := f.FormatTime(time.Now().Add(-3 * time.Hour))
	require.NoError(t, err)
	require.Equal(t, "3 hours ago", conv.Relative)
}

func TestRelativeMillis(t *testing.T) {
	tests := []struct {
		diff int64
		want string
	}{
		{0, "0 seconds ago"},
		{999, "0 seconds ago"},
		{1000, "1 second ago"},
		{59_999, "59 seconds ago"},
		{60_000, "1 minute ago"},
		{119_999, "1 minute ago"},
		{120_000, "2 minutes ago"},
		{3_599_999, "59 minutes ago"},
		{3_600_000, "1 hour ago"},
		{86_399_999, "23 hours ago"},
		{86_400_000, "1 day ago"},
		{604_799_999, "6 days ago"},
		{604_800_000, "1 week ago"},
		{604_800_000 * 520, "520 weeks ago"},
		{-1000, "in 1 second"},
		{-7_200_000, "in 2 hours"},
		{-500, "in 0 seconds"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			require.Equal(t, tt.want, RelativeMillis(tt.diff))
		})
	}
}
