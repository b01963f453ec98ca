package timeline

import (
	"time"

	"github.com/nestlog/nestlog/pkg/events"
)

// MaxMilestonesPerDay caps a day's stacked milestone bar.
const MaxMilestonesPerDay = 5

// MilestoneSession is the chart projection of one milestone.
type MilestoneSession struct {
	Time time.Time
	Type events.MilestoneType
}

// MilestoneRules builds the aggregation rules for milestones. Milestones
// bucket by local date parts like every other category.
func MilestoneRules() Rules[events.Milestone, MilestoneSession] {
	return Rules[events.Milestone, MilestoneSession]{
		Timestamp: func(m events.Milestone) time.Time { return m.DateTime },
		Session: func(m events.Milestone) MilestoneSession {
			return MilestoneSession{Time: m.DateTime, Type: m.Type}
		},
		Metric: func(MilestoneSession) float64 { return 1 },
		Max:    MaxMilestonesPerDay,
	}
}

// FilterMilestones returns the window's milestone records, newest first.
func FilterMilestones(records []events.Milestone, rangeDays int) []events.Milestone {
	return MilestoneRules().FilterByRange(records, rangeDays)
}

// BucketMilestones groups milestone records into local-day buckets.
func BucketMilestones(records []events.Milestone, rangeDays int) []DayBucket[events.Milestone, MilestoneSession] {
	return MilestoneRules().BucketByDay(records, rangeDays)
}

// MilestoneColor returns the presentation color for a milestone type.
func MilestoneColor(t events.MilestoneType) string {
	switch t {
	case events.MilestoneSmiling:
		return "#ff9900"
	case events.MilestoneRollingOver:
		return "#ff4d4d"
	case events.MilestoneSittingUp:
		return "#00c896"
	case events.MilestoneCrawling:
		return "#4287f5"
	case events.MilestoneWalking:
		return "#9c27b0"
	default:
		return "#ccc"
	}
}
