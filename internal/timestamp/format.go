package timestamp

import (
	"fmt"
	"time"

	"github.com/zjrosen/tsconv/internal/log"
)

// IST is the fixed UTC+5:30 zone every conversion is rendered in,
// independent of the host's local time zone.
var IST = time.FixedZone("IST", 5*60*60+30*60)

// Layout renders day, full month name, year and a zero-padded 12-hour clock.
const Layout = "2 January 2006, 03:04:05 pm"

// maxEpochMillis bounds the instants a calendar date may be built from:
// 100,000,000 days either side of the epoch.
const maxEpochMillis = 8_640_000_000_000_000

type unit struct {
	name string
	ms   int64
}

// Relative-time buckets in escalating order. The last one has no upper
// bound, so week counts grow without a month or year rollover.
var units = []unit{
	{"second", 1000},
	{"minute", 60_000},
	{"hour", 3_600_000},
	{"day", 86_400_000},
	{"week", 604_800_000},
}

// Conversion is the display form of a timestamp.
type Conversion struct {
	Formatted string
	Relative  string
}

// String joins both parts the way history records store them.
func (c Conversion) String() string {
	return fmt.Sprintf("%s (%s)", c.Formatted, c.Relative)
}

// Formatter renders instants relative to its clock.
type Formatter struct {
	clock Clock
}

// NewFormatter returns a Formatter; a nil clock means RealClock.
func NewFormatter(clock Clock) *Formatter {
	if clock == nil {
		clock = RealClock{}
	}
	return &Formatter{clock: clock}
}

// Format converts epoch seconds.
func (f *Formatter) Format(epochSeconds int64) (Conversion, error) {
	if epochSeconds > maxEpochMillis/1000 || epochSeconds < -maxEpochMillis/1000 {
		return Conversion{}, f.fail(epochSeconds, ErrInvalidDate)
	}
	return f.FormatTime(time.Unix(epochSeconds, 0))
}

// FormatTime converts t. Any failure comes back as *ConversionError.
func (f *Formatter) FormatTime(t time.Time) (conv Conversion, err error) {
	defer func() {
		if r := recover(); r != nil {
			conv, err = Conversion{}, f.fail(t.Unix(), fmt.Errorf("panic: %v", r))
		}
	}()

	ms := t.UnixMilli()
	if ms > maxEpochMillis || ms < -maxEpochMillis {
		return Conversion{}, f.fail(t.Unix(), ErrInvalidDate)
	}

	return Conversion{
		Formatted: t.In(IST).Format(Layout),
		Relative:  RelativeMillis(f.clock.Now().UnixMilli() - ms),
	}, nil
}

func (f *Formatter) fail(value int64, cause error) error {
	err := &ConversionError{Value: value, Cause: cause}
	log.Error(log.CatTimestamp, "Conversion error", "detail", err.Detail())
	return err
}

// RelativeMillis describes a signed millisecond difference (now minus then).
// Positive differences read "3 hours ago", negative ones "in 3 hours".
func RelativeMillis(diffMs int64) string {
	if diffMs < 0 {
		return "in " + bucket(-diffMs)
	}
	return bucket(diffMs) + " ago"
}

// bucket picks the first unit whose successor exceeds d and floor-divides.
func bucket(d int64) string {
	u := units[len(units)-1]
	for i := 0; i < len(units)-1; i++ {
		if d < units[i+1].ms {
			u = units[i]
			break
		}
	}
	n := d / u.ms
	if n == 1 {
		return fmt.Sprintf("1 %s", u.name)
	}
	return fmt.Sprintf("%d %ss", n, u.name)
}
