package timeline

import (
	"fmt"
	"reflect"
	"testing"
	"time"
)

// Tests run against a fixed zone and a frozen "now" so results do not
// depend on the machine's clock or timezone.
var testZone = time.FixedZone("PST", -8*3600)

func testNow() time.Time {
	return time.Date(2026, 3, 10, 14, 30, 0, 0, testZone)
}

func at(day, hour, min int) time.Time {
	return time.Date(2026, 3, day, hour, min, 0, 0, testZone)
}

// stamp is a minimal record for exercising the engine without any
// category-specific behavior.
type stamp struct {
	When time.Time
	Name string
}

func stampRules() Rules[stamp, stamp] {
	return Rules[stamp, stamp]{
		Timestamp: func(s stamp) time.Time { return s.When },
		Session:   func(s stamp) stamp { return s },
		Metric:    func(stamp) float64 { return 1 },
		Max:       12,
	}
}

func TestBucketByDayWindowSize(t *testing.T) {
	ru := stampRules()
	for _, n := range []int{1, 2, 7, 30, 90} {
		t.Run(fmt.Sprintf("%d_days", n), func(t *testing.T) {
			buckets := ru.BucketByDayAt(nil, n, testNow())
			if len(buckets) != n {
				t.Fatalf("got %d buckets, want %d", len(buckets), n)
			}
			// Keys must be consecutive local days ending today.
			if got, want := buckets[n-1].Date, "2026-03-10"; got != want {
				t.Errorf("last bucket key = %q, want %q", got, want)
			}
			for i := 1; i < n; i++ {
				prev := buckets[i-1].Start.AddDate(0, 0, 1)
				if !buckets[i].Start.Equal(prev) {
					t.Errorf("bucket %d starts %v, want %v", i, buckets[i].Start, prev)
				}
			}
		})
	}
}

func TestBucketByDayPartition(t *testing.T) {
	records := []stamp{
		{When: at(10, 0, 5), Name: "today-early"},
		{When: at(10, 23, 59), Name: "today-late"},
		{When: at(9, 12, 0), Name: "yesterday"},
		{When: at(4, 12, 0), Name: "window-edge"},   // oldest day of a 7-day window
		{When: at(3, 23, 59), Name: "before-window"},
		{When: time.Date(2026, 3, 11, 1, 0, 0, 0, testZone), Name: "tomorrow"},
	}
	buckets := stampRules().BucketByDayAt(records, 7, testNow())

	seen := map[string]int{}
	total := 0
	for _, b := range buckets {
		for _, r := range b.Records {
			seen[r.Name]++
			total++
		}
	}
	for _, name := range []string{"today-early", "today-late", "yesterday", "window-edge"} {
		if seen[name] != 1 {
			t.Errorf("record %q appears in %d buckets, want exactly 1", name, seen[name])
		}
	}
	for _, name := range []string{"before-window", "tomorrow"} {
		if seen[name] != 0 {
			t.Errorf("out-of-window record %q was bucketed", name)
		}
	}
	if total != 4 {
		t.Errorf("bucketed %d records, want 4", total)
	}
}

func TestOrdering(t *testing.T) {
	records := []stamp{
		{When: at(10, 9, 0)},
		{When: at(10, 7, 30)},
		{When: at(9, 22, 0)},
		{When: at(10, 13, 15)},
		{When: at(9, 6, 0)},
	}
	ru := stampRules()

	// Buckets run ascending within each day.
	for _, b := range ru.BucketByDayAt(records, 2, testNow()) {
		for i := 1; i < len(b.Records); i++ {
			if b.Records[i].When.Before(b.Records[i-1].When) {
				t.Errorf("bucket %s records out of ascending order", b.Date)
			}
		}
	}

	// The filtered list runs descending, newest first.
	filtered := ru.FilterByRangeAt(records, 2, testNow())
	if len(filtered) != 5 {
		t.Fatalf("filtered %d records, want 5", len(filtered))
	}
	for i := 1; i < len(filtered); i++ {
		if filtered[i].When.After(filtered[i-1].When) {
			t.Errorf("filtered list out of descending order at %d", i)
		}
	}
}

func TestDisplayCap(t *testing.T) {
	tests := []struct {
		name        string
		count       int
		wantActual  float64
		wantDisplay float64
	}{
		{"under_cap", 11, 11, 11},
		{"at_cap", 12, 12, 12},
		{"over_cap", 13, 13, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var records []stamp
			for i := range tt.count {
				records = append(records, stamp{When: at(10, 8, i)})
			}
			buckets := stampRules().BucketByDayAt(records, 1, testNow())
			b := buckets[0]
			if b.Actual != tt.wantActual {
				t.Errorf("Actual = %v, want %v", b.Actual, tt.wantActual)
			}
			if b.Display != tt.wantDisplay {
				t.Errorf("Display = %v, want %v", b.Display, tt.wantDisplay)
			}
			// The capped bar never hides detail: the bucket still lists
			// every session.
			if len(b.Sessions) != tt.count {
				t.Errorf("bucket holds %d sessions, want %d", len(b.Sessions), tt.count)
			}
		})
	}
}

func TestIdempotence(t *testing.T) {
	records := []stamp{
		{When: at(10, 9, 0), Name: "a"},
		{When: at(9, 22, 0), Name: "b"},
		{When: at(8, 6, 0), Name: "c"},
	}
	ru := stampRules()
	now := testNow()

	b1 := ru.BucketByDayAt(records, 7, now)
	b2 := ru.BucketByDayAt(records, 7, now)
	if !reflect.DeepEqual(b1, b2) {
		t.Error("BucketByDayAt is not deterministic for identical inputs")
	}

	f1 := ru.FilterByRangeAt(records, 7, now)
	f2 := ru.FilterByRangeAt(records, 7, now)
	if !reflect.DeepEqual(f1, f2) {
		t.Error("FilterByRangeAt is not deterministic for identical inputs")
	}
}

func TestSingleDayJustAfterMidnight(t *testing.T) {
	// 00:05 local: a 1-day window must hold only today's records, even
	// though "yesterday" ended five minutes ago.
	now := time.Date(2026, 3, 10, 0, 5, 0, 0, testZone)
	records := []stamp{
		{When: at(10, 0, 1), Name: "today"},
		{When: at(9, 23, 58), Name: "yesterday"},
	}
	ru := stampRules()

	buckets := ru.BucketByDayAt(records, 1, now)
	if len(buckets) != 1 {
		t.Fatalf("got %d buckets, want 1", len(buckets))
	}
	if buckets[0].Date != "2026-03-10" {
		t.Errorf("bucket key = %q, want 2026-03-10", buckets[0].Date)
	}
	if len(buckets[0].Records) != 1 || buckets[0].Records[0].Name != "today" {
		t.Errorf("bucket holds %v, want only the 00:01 record", buckets[0].Records)
	}

	filtered := ru.FilterByRangeAt(records, 1, now)
	if len(filtered) != 1 || filtered[0].Name != "today" {
		t.Errorf("filter returned %v, want only the 00:01 record", filtered)
	}
}

func TestMalformedTimestampSkipped(t *testing.T) {
	records := []stamp{
		{When: at(10, 9, 0), Name: "good-1"},
		{Name: "bad"}, // zero timestamp: could not be interpreted
		{When: at(10, 11, 0), Name: "good-2"},
	}
	ru := stampRules()

	buckets := ru.BucketByDayAt(records, 1, testNow())
	if got := len(buckets[0].Records); got != 2 {
		t.Errorf("bucketed %d records, want 2 (bad row excluded)", got)
	}
	filtered := ru.FilterByRangeAt(records, 1, testNow())
	if got := len(filtered); got != 2 {
		t.Errorf("filtered %d records, want 2 (bad row excluded)", got)
	}
}

func TestEmptyInput(t *testing.T) {
	ru := stampRules()
	if got := ru.FilterByRangeAt(nil, 7, testNow()); len(got) != 0 {
		t.Errorf("filter of empty input returned %v", got)
	}
	buckets := ru.BucketByDayAt(nil, 7, testNow())
	if len(buckets) != 7 {
		t.Fatalf("got %d buckets, want 7", len(buckets))
	}
	for _, b := range buckets {
		if len(b.Records) != 0 || b.Actual != 0 || b.Display != 0 {
			t.Errorf("empty-input bucket %s not empty: %+v", b.Date, b)
		}
	}
}

func TestInvalidRangeDaysPanics(t *testing.T) {
	for _, n := range []int{0, -1} {
		t.Run(fmt.Sprintf("rangeDays_%d", n), func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("rangeDays=%d did not panic", n)
				}
			}()
			stampRules().BucketByDayAt(nil, n, testNow())
		})
	}
}

func TestBucketingUsesLocalDayNotUTC(t *testing.T) {
	// 23:30 on March 9 in PST is 07:30 on March 10 UTC. Slicing days in
	// UTC would pull this record into the wrong bucket; local date parts
	// must keep it on March 9. The record itself arrives as a UTC
	// instant, as stored values do.
	rec := stamp{When: time.Date(2026, 3, 10, 7, 30, 0, 0, time.UTC), Name: "late-evening"}
	buckets := stampRules().BucketByDayAt([]stamp{rec}, 2, testNow())

	if len(buckets[0].Records) != 1 {
		t.Fatalf("record not bucketed on March 9: %+v", buckets)
	}
	if buckets[0].Date != "2026-03-09" {
		t.Errorf("bucket key = %q, want 2026-03-09", buckets[0].Date)
	}
	if len(buckets[1].Records) != 0 {
		t.Errorf("record leaked into the March 10 bucket")
	}
}

func TestSegmentHeight(t *testing.T) {
	ru := Rules[stamp, stamp]{
		Timestamp: func(s stamp) time.Time { return s.When },
		Session:   func(s stamp) stamp { return s },
		Metric:    func(stamp) float64 { return 20 },
		Max:       16,
	}
	if got := ru.SegmentHeight(stamp{}); got != 16 {
		t.Errorf("SegmentHeight = %v, want capped 16", got)
	}
	ru.Max = 0
	if got := ru.SegmentHeight(stamp{}); got != 20 {
		t.Errorf("uncapped SegmentHeight = %v, want 20", got)
	}
}
