package timeline

import (
	"time"

	"github.com/nestlog/nestlog/pkg/events"
)

const (
	// MaxFeedMinutes caps a day's stacked feed bar.
	MaxFeedMinutes = 90

	// Bar sizing uses a fixed minute value per feed type, never the
	// caregiver-entered duration. The entered duration still travels on
	// the session unchanged for detail views.
	nursingChartMinutes = 15
	bottleChartMinutes  = 10
	solidChartMinutes   = 10
)

// FeedSession is the chart projection of one feed. ChartMinutes sizes the
// stacked segment; Duration is the caregiver's entry, untouched.
type FeedSession struct {
	Time         time.Time
	Type         events.FeedType
	Amount       float64
	Side         events.Side
	Duration     int
	ChartMinutes int
	Description  string
	Notes        string
}

// FeedChartMinutes returns the fixed chart duration for a feed type.
func FeedChartMinutes(t events.FeedType) int {
	switch t {
	case events.FeedNursing:
		return nursingChartMinutes
	case events.FeedBottle:
		return bottleChartMinutes
	case events.FeedSolid:
		return solidChartMinutes
	default:
		return 0
	}
}

// FeedRules builds the aggregation rules for feeds.
func FeedRules() Rules[events.Feed, FeedSession] {
	return Rules[events.Feed, FeedSession]{
		Timestamp: func(f events.Feed) time.Time { return f.DateTime },
		Session: func(f events.Feed) FeedSession {
			return FeedSession{
				Time:         f.DateTime,
				Type:         f.Type,
				Amount:       f.Amount,
				Side:         f.Side,
				Duration:     f.Duration,
				ChartMinutes: FeedChartMinutes(f.Type),
				Description:  f.Description,
				Notes:        f.Notes,
			}
		},
		Metric: func(fs FeedSession) float64 { return float64(fs.ChartMinutes) },
		Max:    MaxFeedMinutes,
	}
}

// FilterFeeds returns the window's feed records, newest first.
func FilterFeeds(records []events.Feed, rangeDays int) []events.Feed {
	return FeedRules().FilterByRange(records, rangeDays)
}

// BucketFeeds groups feed records into local-day buckets for charting.
func BucketFeeds(records []events.Feed, rangeDays int) []DayBucket[events.Feed, FeedSession] {
	return FeedRules().BucketByDay(records, rangeDays)
}

// FeedColor returns the presentation color for a feed type.
func FeedColor(t events.FeedType) string {
	switch t {
	case events.FeedNursing:
		return "#ff9900"
	case events.FeedBottle:
		return "#ff4d4d"
	case events.FeedSolid:
		return "#00c896"
	default:
		return "#4287f5"
	}
}
