package timeline

import (
	"time"

	"github.com/nestlog/nestlog/pkg/events"
)

// WeightSession is the chart projection of one weight measurement.
type WeightSession struct {
	Time   time.Time
	Weight events.WeightValue
}

// Pounds returns the measurement in fractional pounds.
func (s WeightSession) Pounds() float64 {
	return float64(s.Weight.TotalOunces()) / 16
}

// WeightRules builds the aggregation rules for weight. Weight renders as
// a point series rather than a capped stack, so Max stays zero and the
// day metric is only meaningful through LatestWeightPerDay.
func WeightRules() Rules[events.Weight, WeightSession] {
	return Rules[events.Weight, WeightSession]{
		Timestamp: func(w events.Weight) time.Time { return w.DateTime },
		Session: func(w events.Weight) WeightSession {
			return WeightSession{Time: w.DateTime, Weight: w.Value()}
		},
		Metric: func(ws WeightSession) float64 { return ws.Pounds() },
	}
}

// FilterWeights returns the window's weight records, newest first.
func FilterWeights(records []events.Weight, rangeDays int) []events.Weight {
	return WeightRules().FilterByRange(records, rangeDays)
}

// BucketWeights groups weight records into local-day buckets.
func BucketWeights(records []events.Weight, rangeDays int) []DayBucket[events.Weight, WeightSession] {
	return WeightRules().BucketByDay(records, rangeDays)
}

// LatestWeightPerDay reduces buckets to at most one point per day, the
// day's last measurement, for the line-style weight chart. Days without
// a measurement yield no point.
func LatestWeightPerDay(buckets []DayBucket[events.Weight, WeightSession]) []WeightSession {
	var out []WeightSession
	for _, b := range buckets {
		if n := len(b.Sessions); n > 0 {
			out = append(out, b.Sessions[n-1])
		}
	}
	return out
}
