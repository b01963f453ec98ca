package timeline

import (
	"time"

	"github.com/nestlog/nestlog/pkg/events"
)

// MaxActivityCount caps a day's stacked activity bar.
const MaxActivityCount = 10

// ActivitySession is the chart projection of one activity.
type ActivitySession struct {
	Time time.Time
	Type events.ActivityType
}

// ActivityRules builds the aggregation rules for activities, counted per day.
func ActivityRules() Rules[events.Activity, ActivitySession] {
	return Rules[events.Activity, ActivitySession]{
		Timestamp: func(a events.Activity) time.Time { return a.DateTime },
		Session: func(a events.Activity) ActivitySession {
			return ActivitySession{Time: a.DateTime, Type: a.Type}
		},
		Metric: func(ActivitySession) float64 { return 1 },
		Max:    MaxActivityCount,
	}
}

// FilterActivities returns the window's activity records, newest first.
func FilterActivities(records []events.Activity, rangeDays int) []events.Activity {
	return ActivityRules().FilterByRange(records, rangeDays)
}

// BucketActivities groups activity records into local-day buckets.
func BucketActivities(records []events.Activity, rangeDays int) []DayBucket[events.Activity, ActivitySession] {
	return ActivityRules().BucketByDay(records, rangeDays)
}

// ActivityColor returns the presentation color for an activity type.
func ActivityColor(t events.ActivityType) string {
	switch t {
	case events.ActivityBath:
		return "#4287f5"
	case events.ActivityTummyTime:
		return "#00c896"
	case events.ActivityStoryTime:
		return "#ff9900"
	case events.ActivitySkinToSkin:
		return "#ff4d4d"
	case events.ActivityBrushTeeth:
		return "#9c27b0"
	default:
		return "#ccc"
	}
}
