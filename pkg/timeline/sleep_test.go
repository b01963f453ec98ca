package timeline

import (
	"math"
	"testing"
	"time"

	"github.com/nestlog/nestlog/pkg/events"
)

func TestOvernightSleepStaysOnStartDay(t *testing.T) {
	// 23:30 on March 9 through 06:15 on March 10: the whole 6.75 hours
	// belongs to the March 9 bucket, where the sleep began.
	rec := events.Sleep{
		Start:   at(9, 23, 30),
		End:     at(10, 6, 15),
		Quality: 4,
	}
	buckets := SleepRules().BucketByDayAt([]events.Sleep{rec}, 2, testNow())
	if len(buckets) != 2 {
		t.Fatalf("got %d buckets, want 2", len(buckets))
	}

	day1, day2 := buckets[0], buckets[1]
	if len(day1.Sessions) != 1 {
		t.Fatalf("March 9 bucket holds %d sessions, want 1", len(day1.Sessions))
	}
	if len(day2.Sessions) != 0 {
		t.Errorf("March 10 bucket holds %d sessions, want 0", len(day2.Sessions))
	}
	if got := day1.Sessions[0].Hours; math.Abs(got-6.75) > 0.001 {
		t.Errorf("session duration = %v hours, want 6.75", got)
	}
	if math.Abs(day1.Actual-6.75) > 0.001 {
		t.Errorf("Actual = %v, want 6.75", day1.Actual)
	}
}

func TestSleepFilterMatchesOnStartOrEnd(t *testing.T) {
	now := testNow()
	// Started before the 1-day window but ended inside it: the list
	// still shows it, even though bucketing would assign it to a day
	// outside the window.
	endsToday := events.Sleep{Start: at(9, 22, 0), End: at(10, 5, 0), Quality: 3}
	// Fully before the window.
	old := events.Sleep{Start: at(8, 20, 0), End: at(9, 4, 0), Quality: 2}

	got := SleepRules().FilterByRangeAt([]events.Sleep{endsToday, old}, 1, now)
	if len(got) != 1 {
		t.Fatalf("filtered %d records, want 1", len(got))
	}
	if !got[0].Start.Equal(endsToday.Start) {
		t.Errorf("wrong record survived the filter: %+v", got[0])
	}
}

func TestSleepInvalidRecordsSkipped(t *testing.T) {
	records := []events.Sleep{
		{Start: at(10, 1, 0), End: at(10, 3, 0), Quality: 5},
		{End: at(10, 4, 0), Quality: 3},                     // missing start
		{Start: at(10, 8, 0), End: at(10, 7, 0), Quality: 2}, // end before start
	}
	buckets := SleepRules().BucketByDayAt(records, 1, testNow())
	if got := len(buckets[0].Sessions); got != 1 {
		t.Errorf("bucketed %d sessions, want 1 (invalid records excluded)", got)
	}
	filtered := SleepRules().FilterByRangeAt(records, 1, testNow())
	if got := len(filtered); got != 1 {
		t.Errorf("filtered %d records, want 1 (invalid records excluded)", got)
	}
}

func TestSleepCap(t *testing.T) {
	// Three long naps totalling 18 hours display as 16.
	records := []events.Sleep{
		{Start: at(10, 0, 0), End: at(10, 6, 0), Quality: 4},
		{Start: at(10, 7, 0), End: at(10, 13, 0), Quality: 4},
		{Start: at(10, 14, 0), End: at(10, 20, 0), Quality: 4},
	}
	day := SleepRules().BucketByDayAt(records, 1, testNow())[0]
	if math.Abs(day.Actual-18) > 0.001 {
		t.Errorf("Actual = %v, want 18", day.Actual)
	}
	if day.Display != MaxSleepHours {
		t.Errorf("Display = %v, want %v", day.Display, MaxSleepHours)
	}
}

func TestSleepSessionCarriesQuality(t *testing.T) {
	s := SleepRules().Session(events.Sleep{
		Start:   time.Date(2026, 3, 10, 13, 0, 0, 0, testZone),
		End:     time.Date(2026, 3, 10, 14, 30, 0, 0, testZone),
		Quality: 5,
	})
	if s.Quality != 5 {
		t.Errorf("Quality = %d, want 5", s.Quality)
	}
	if math.Abs(s.Hours-1.5) > 0.001 {
		t.Errorf("Hours = %v, want 1.5", s.Hours)
	}
}
