// Package timeline buckets raw care events into trailing local-calendar-day
// windows for charts, lists and summaries. Every function here is a pure,
// stateless transform: no I/O, no shared state, recomputed from scratch on
// each call with the latest records and window size.
//
// Day boundaries are built from local year/month/day components, never by
// slicing epoch time in UTC, so records do not shift into an adjacent day
// for users east or west of UTC.
package timeline

import (
	"fmt"
	"sort"
	"time"
)

// Rules parameterizes the engine for one category. R is the raw record
// type and S its chart-facing session projection.
type Rules[R, S any] struct {
	// Timestamp returns the instant used for day bucketing and ordering.
	Timestamp func(R) time.Time

	// Valid reports whether a record's timestamps could be interpreted.
	// Invalid records are silently dropped so one bad row cannot blank a
	// whole chart. Nil means "timestamp is non-zero".
	Valid func(R) bool

	// InWindow reports whether a record belongs to the trailing window
	// [start, end] for list filtering. Nil means Timestamp within range;
	// sleep overrides it to match on either start or end.
	InWindow func(r R, start, end time.Time) bool

	// Session projects a record into its session.
	Session func(R) S

	// Metric is a session's contribution to the day total: hours for
	// sleep, minutes for feed, a count of one for diaper, activity and
	// milestone, pounds for weight.
	Metric func(S) float64

	// Max caps a day's display total so a single extreme day cannot
	// visually dwarf the rest of the chart. Zero means uncapped.
	Max float64
}

// DayBucket holds exactly one local calendar day inside the window:
// the day's records in chronological order, their derived sessions, and
// the day's total metric both as logged (Actual) and as capped for bar
// sizing (Display). Buckets are rebuilt fresh on every call and never
// mutated once returned. Sessions always carries the complete day, so a
// tap on any stacked segment can present the day's full detail.
type DayBucket[R, S any] struct {
	Date     string    // YYYY-MM-DD from local date parts
	Start    time.Time // local midnight opening the half-open day interval
	Records  []R
	Sessions []S
	Actual   float64
	Display  float64
}

// FilterByRange returns the records whose timestamp falls inside the
// trailing rangeDays-day local-calendar window ending today, newest first.
// This is the order list and detail views consume.
func (ru Rules[R, S]) FilterByRange(records []R, rangeDays int) []R {
	return ru.FilterByRangeAt(records, rangeDays, time.Now())
}

// FilterByRangeAt is FilterByRange with an explicit "now".
func (ru Rules[R, S]) FilterByRangeAt(records []R, rangeDays int, now time.Time) []R {
	start := windowStart(now, rangeDays)
	end := endOfDay(now)

	var out []R
	for _, r := range records {
		if !ru.valid(r) {
			continue
		}
		if ru.inWindow(r, start, end) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return ru.Timestamp(out[i]).After(ru.Timestamp(out[j]))
	})
	return out
}

// BucketByDay groups records into exactly rangeDays buckets, one per local
// calendar day, oldest day first and today last. Empty days are retained
// so a chart always renders a full fixed-width grid. Within a bucket,
// records and sessions run ascending by timestamp: buckets feed a
// left-to-right chronological axis, the opposite of FilterByRange's
// newest-first list order.
func (ru Rules[R, S]) BucketByDay(records []R, rangeDays int) []DayBucket[R, S] {
	return ru.BucketByDayAt(records, rangeDays, time.Now())
}

// BucketByDayAt is BucketByDay with an explicit "now".
func (ru Rules[R, S]) BucketByDayAt(records []R, rangeDays int, now time.Time) []DayBucket[R, S] {
	start := windowStart(now, rangeDays)
	loc := now.Location()

	buckets := make([]DayBucket[R, S], rangeDays)
	index := make(map[string]int, rangeDays)
	for i := range buckets {
		dayStart := start.AddDate(0, 0, i)
		key := dayKey(dayStart)
		buckets[i] = DayBucket[R, S]{Date: key, Start: dayStart}
		index[key] = i
	}

	// A record lands in the single bucket whose half-open local-day
	// interval contains its timestamp; the local date parts identify
	// that interval directly.
	for _, r := range records {
		if !ru.valid(r) {
			continue
		}
		i, ok := index[dayKey(ru.Timestamp(r).In(loc))]
		if !ok {
			continue // outside the window
		}
		buckets[i].Records = append(buckets[i].Records, r)
	}

	for i := range buckets {
		b := &buckets[i]
		sort.SliceStable(b.Records, func(x, y int) bool {
			return ru.Timestamp(b.Records[x]).Before(ru.Timestamp(b.Records[y]))
		})
		b.Sessions = make([]S, 0, len(b.Records))
		for _, r := range b.Records {
			s := ru.Session(r)
			b.Sessions = append(b.Sessions, s)
			b.Actual += ru.Metric(s)
		}
		b.Display = b.Actual
		if ru.Max > 0 && b.Display > ru.Max {
			b.Display = ru.Max
		}
	}
	return buckets
}

// SegmentHeight is the capped per-session value used to size one stacked
// segment, mirroring the day-level Display cap.
func (ru Rules[R, S]) SegmentHeight(s S) float64 {
	v := ru.Metric(s)
	if ru.Max > 0 && v > ru.Max {
		return ru.Max
	}
	return v
}

func (ru Rules[R, S]) valid(r R) bool {
	if ru.Valid != nil {
		return ru.Valid(r)
	}
	return !ru.Timestamp(r).IsZero()
}

func (ru Rules[R, S]) inWindow(r R, start, end time.Time) bool {
	if ru.InWindow != nil {
		return ru.InWindow(r, start, end)
	}
	return within(ru.Timestamp(r), start, end)
}

// within reports whether t falls in [start, end] inclusive.
func within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// windowStart returns local midnight of (today - (rangeDays-1) days).
// AddDate does calendar arithmetic, so DST transitions inside the window
// cannot skew the boundary.
func windowStart(now time.Time, rangeDays int) time.Time {
	if rangeDays < 1 {
		panic(fmt.Sprintf("timeline: rangeDays must be at least 1, got %d", rangeDays))
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return today.AddDate(0, 0, -(rangeDays - 1))
}

// endOfDay returns the last representable instant of t's local day.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return start.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// dayKey formats a zero-padded YYYY-MM-DD key from local date parts.
func dayKey(t time.Time) string {
	y, m, d := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}
