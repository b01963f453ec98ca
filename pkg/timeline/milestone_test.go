package timeline

import (
	"testing"
	"time"

	"github.com/nestlog/nestlog/pkg/events"
)

func TestMilestoneBucketsByLocalDay(t *testing.T) {
	// A milestone logged at 20:00 March 9 PST is already March 10 in
	// UTC. Keying the day off a UTC date string would move it a day
	// forward; local date parts must keep it on March 9.
	rec := events.Milestone{
		DateTime: time.Date(2026, 3, 9, 20, 0, 0, 0, testZone),
		Type:     events.MilestoneRollingOver,
	}
	buckets := MilestoneRules().BucketByDayAt([]events.Milestone{rec}, 2, testNow())

	if len(buckets[0].Sessions) != 1 {
		t.Fatalf("March 9 bucket holds %d sessions, want 1", len(buckets[0].Sessions))
	}
	if buckets[0].Date != "2026-03-09" {
		t.Errorf("bucket key = %q, want 2026-03-09", buckets[0].Date)
	}
	if len(buckets[1].Sessions) != 0 {
		t.Error("milestone leaked into the March 10 bucket")
	}
}

func TestMilestoneCap(t *testing.T) {
	var records []events.Milestone
	types := []events.MilestoneType{
		events.MilestoneSmiling, events.MilestoneRollingOver, events.MilestoneSittingUp,
		events.MilestoneCrawling, events.MilestoneWalking, events.MilestoneSmiling,
	}
	for i, mt := range types {
		records = append(records, events.Milestone{
			DateTime: time.Date(2026, 3, 10, 8+i, 0, 0, 0, testZone),
			Type:     mt,
		})
	}
	day := MilestoneRules().BucketByDayAt(records, 1, testNow())[0]
	if day.Actual != 6 {
		t.Errorf("Actual = %v, want 6", day.Actual)
	}
	if day.Display != MaxMilestonesPerDay {
		t.Errorf("Display = %v, want %v", day.Display, MaxMilestonesPerDay)
	}
}
