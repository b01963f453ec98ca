package timeline

import (
	"time"

	"github.com/nestlog/nestlog/pkg/events"
)

// MaxDiaperCount caps a day's stacked diaper bar.
const MaxDiaperCount = 12

// DiaperSession is the chart projection of one diaper change. Pee fields
// are carried only for pee/mixed types and poo fields only for poo/mixed,
// so detail views never show fields the change cannot have.
type DiaperSession struct {
	Time           time.Time
	Type           events.DiaperType
	PeeAmount      events.DiaperAmount
	PooAmount      events.DiaperAmount
	PooColor       events.PooColor
	PooConsistency events.PooConsistency
	HasRash        bool
}

// DiaperRules builds the aggregation rules for diaper changes. The day
// metric is a simple count.
func DiaperRules() Rules[events.Diaper, DiaperSession] {
	return Rules[events.Diaper, DiaperSession]{
		Timestamp: func(d events.Diaper) time.Time { return d.DateTime },
		Session: func(d events.Diaper) DiaperSession {
			s := DiaperSession{Time: d.DateTime, Type: d.Type, HasRash: d.HasRash}
			if d.Type.HasPee() {
				s.PeeAmount = d.PeeAmount
			}
			if d.Type.HasPoo() {
				s.PooAmount = d.PooAmount
				s.PooColor = d.PooColor
				s.PooConsistency = d.PooConsistency
			}
			return s
		},
		Metric: func(DiaperSession) float64 { return 1 },
		Max:    MaxDiaperCount,
	}
}

// FilterDiapers returns the window's diaper records, newest first.
func FilterDiapers(records []events.Diaper, rangeDays int) []events.Diaper {
	return DiaperRules().FilterByRange(records, rangeDays)
}

// BucketDiapers groups diaper records into local-day buckets for charting.
func BucketDiapers(records []events.Diaper, rangeDays int) []DayBucket[events.Diaper, DiaperSession] {
	return DiaperRules().BucketByDay(records, rangeDays)
}

// DiaperColor returns the presentation color for a diaper type.
func DiaperColor(t events.DiaperType) string {
	switch t {
	case events.DiaperPee:
		return "#4287f5"
	case events.DiaperPoo:
		return "#ff9900"
	case events.DiaperMixed:
		return "#00c896"
	case events.DiaperDry:
		return "#ff4d4d"
	default:
		return "#ccc"
	}
}

// PooColorHex returns the presentation color for a poo color grade.
func PooColorHex(c events.PooColor) string {
	switch c {
	case events.PooYellow:
		return "#ffd700"
	case events.PooBrown:
		return "#8b4513"
	case events.PooBlack:
		return "#000000"
	case events.PooGreen:
		return "#228b22"
	case events.PooRed:
		return "#ff0000"
	default:
		return "#ff9900"
	}
}
