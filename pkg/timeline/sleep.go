package timeline

import (
	"time"

	"github.com/nestlog/nestlog/pkg/events"
)

// MaxSleepHours caps a day's stacked sleep bar.
const MaxSleepHours = 16

// SleepSession is the chart projection of one sleep record: the literal
// elapsed hours between start and end, plus quality for tooltips.
type SleepSession struct {
	Start   time.Time
	End     time.Time
	Hours   float64
	Quality int
}

// SleepRules builds the aggregation rules for sleep. Bucketing keys off
// the start timestamp only, so an overnight 23:30-06:15 sleep counts
// entirely against the day it began. The list filter is wider: a record
// whose start or end touches the window stays visible.
func SleepRules() Rules[events.Sleep, SleepSession] {
	return Rules[events.Sleep, SleepSession]{
		Timestamp: func(s events.Sleep) time.Time { return s.Start },
		Valid: func(s events.Sleep) bool {
			return !s.Start.IsZero() && !s.End.IsZero() && s.End.After(s.Start)
		},
		InWindow: func(s events.Sleep, start, end time.Time) bool {
			return within(s.Start, start, end) || within(s.End, start, end)
		},
		Session: func(s events.Sleep) SleepSession {
			return SleepSession{Start: s.Start, End: s.End, Hours: s.Hours(), Quality: s.Quality}
		},
		Metric: func(ss SleepSession) float64 { return ss.Hours },
		Max:    MaxSleepHours,
	}
}

// FilterSleep returns the window's sleep records, newest first.
func FilterSleep(records []events.Sleep, rangeDays int) []events.Sleep {
	return SleepRules().FilterByRange(records, rangeDays)
}

// BucketSleep groups sleep records into local-day buckets for charting.
func BucketSleep(records []events.Sleep, rangeDays int) []DayBucket[events.Sleep, SleepSession] {
	return SleepRules().BucketByDay(records, rangeDays)
}

// SleepQualityColor returns the presentation color for a quality rating.
func SleepQualityColor(quality int) string {
	switch quality {
	case 1:
		return "#ff4d4d"
	case 2:
		return "#ff9900"
	case 3:
		return "#ffd700"
	case 4:
		return "#00c896"
	case 5:
		return "#4287f5"
	default:
		return "#ccc"
	}
}
