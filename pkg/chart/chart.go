// Package chart renders the day buckets as stacked terminal bar charts,
// one bar per local calendar day, one colored segment per session.
package chart

import (
	"fmt"

	"github.com/nestlog/nestlog/pkg/events"
	"github.com/nestlog/nestlog/pkg/timeline"
)

// Segment is one session's slice of a day's stacked bar.
type Segment struct {
	Value float64 // capped height contribution
	Hex   string  // presentation color
	Label string  // short human description, used in day detail
}

// Day is one renderable bar.
type Day struct {
	Date     string
	Actual   float64 // as logged
	Display  float64 // capped for sizing
	Count    int     // sessions that day
	Segments []Segment
}

// FromBuckets projects day buckets into renderable days. When a day's
// total is capped, every segment is scaled by the same factor so the
// stacked heights still sum to Display.
func FromBuckets[R, S any](
	buckets []timeline.DayBucket[R, S],
	ru timeline.Rules[R, S],
	hexOf func(S) string,
	labelOf func(S) string,
) []Day {
	days := make([]Day, 0, len(buckets))
	for _, b := range buckets {
		d := Day{Date: b.Date, Actual: b.Actual, Display: b.Display, Count: len(b.Sessions)}
		scale := 1.0
		if b.Actual > b.Display && b.Actual > 0 {
			scale = b.Display / b.Actual
		}
		for _, s := range b.Sessions {
			d.Segments = append(d.Segments, Segment{
				Value: ru.Metric(s) * scale,
				Hex:   hexOf(s),
				Label: labelOf(s),
			})
		}
		days = append(days, d)
	}
	return days
}

// SleepDays builds the sleep chart for the trailing window.
func SleepDays(records []events.Sleep, rangeDays int) []Day {
	return FromBuckets(
		timeline.BucketSleep(records, rangeDays),
		timeline.SleepRules(),
		func(s timeline.SleepSession) string { return timeline.SleepQualityColor(s.Quality) },
		func(s timeline.SleepSession) string {
			return fmt.Sprintf("%s-%s %.1fh quality %d",
				s.Start.Format("15:04"), s.End.Format("15:04"), s.Hours, s.Quality)
		},
	)
}

// FeedDays builds the feed chart for the trailing window.
func FeedDays(records []events.Feed, rangeDays int) []Day {
	return FromBuckets(
		timeline.BucketFeeds(records, rangeDays),
		timeline.FeedRules(),
		func(s timeline.FeedSession) string { return timeline.FeedColor(s.Type) },
		func(s timeline.FeedSession) string {
			switch s.Type {
			case events.FeedNursing:
				return fmt.Sprintf("%s nursing %s %dmin", s.Time.Format("15:04"), s.Side, s.Duration)
			case events.FeedBottle:
				return fmt.Sprintf("%s bottle %.1foz", s.Time.Format("15:04"), s.Amount)
			default:
				return fmt.Sprintf("%s solid %s", s.Time.Format("15:04"), s.Description)
			}
		},
	)
}

// DiaperDays builds the diaper chart for the trailing window.
func DiaperDays(records []events.Diaper, rangeDays int) []Day {
	return FromBuckets(
		timeline.BucketDiapers(records, rangeDays),
		timeline.DiaperRules(),
		func(s timeline.DiaperSession) string { return timeline.DiaperColor(s.Type) },
		func(s timeline.DiaperSession) string {
			return fmt.Sprintf("%s %s", s.Time.Format("15:04"), s.Type)
		},
	)
}

// ActivityDays builds the activity chart for the trailing window.
func ActivityDays(records []events.Activity, rangeDays int) []Day {
	return FromBuckets(
		timeline.BucketActivities(records, rangeDays),
		timeline.ActivityRules(),
		func(s timeline.ActivitySession) string { return timeline.ActivityColor(s.Type) },
		func(s timeline.ActivitySession) string {
			return fmt.Sprintf("%s %s", s.Time.Format("15:04"), s.Type)
		},
	)
}

// MilestoneDays builds the milestone chart for the trailing window.
func MilestoneDays(records []events.Milestone, rangeDays int) []Day {
	return FromBuckets(
		timeline.BucketMilestones(records, rangeDays),
		timeline.MilestoneRules(),
		func(s timeline.MilestoneSession) string { return timeline.MilestoneColor(s.Type) },
		func(s timeline.MilestoneSession) string {
			return fmt.Sprintf("%s %s", s.Time.Format("15:04"), s.Type)
		},
	)
}

// WeightPoint is one day's latest measurement on the weight series.
type WeightPoint struct {
	Date   string
	Weight events.WeightValue
	Pounds float64
}

// WeightSeries builds the weight line: at most one point per day, the
// day's last measurement, empty days omitted.
func WeightSeries(records []events.Weight, rangeDays int) []WeightPoint {
	buckets := timeline.BucketWeights(records, rangeDays)
	var points []WeightPoint
	for _, b := range buckets {
		if n := len(b.Sessions); n > 0 {
			s := b.Sessions[n-1]
			points = append(points, WeightPoint{Date: b.Date, Weight: s.Weight, Pounds: s.Pounds()})
		}
	}
	return points
}
