package timeline

import (
	"testing"
	"time"

	"github.com/nestlog/nestlog/pkg/events"
)

func diapersOnDay(count int) []events.Diaper {
	var out []events.Diaper
	for i := range count {
		out = append(out, events.Diaper{
			DateTime: time.Date(2026, 3, 10, 1, i, 0, 0, testZone),
			Type:     events.DiaperPee,
			PeeAmount: events.AmountMedium,
		})
	}
	return out
}

func TestDiaperCountCap(t *testing.T) {
	tests := []struct {
		name        string
		count       int
		wantDisplay float64
	}{
		{"eleven_changes_uncapped", 11, 11},
		{"thirteen_changes_capped", 13, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day := DiaperRules().BucketByDayAt(diapersOnDay(tt.count), 1, testNow())[0]
			if day.Actual != float64(tt.count) {
				t.Errorf("Actual = %v, want %d", day.Actual, tt.count)
			}
			if day.Display != tt.wantDisplay {
				t.Errorf("Display = %v, want %v", day.Display, tt.wantDisplay)
			}
			// Detail views still list every change on the day.
			if len(day.Sessions) != tt.count {
				t.Errorf("bucket lists %d sessions, want %d", len(day.Sessions), tt.count)
			}
		})
	}
}

func TestDiaperConditionalFields(t *testing.T) {
	base := events.Diaper{
		DateTime:       at(10, 9, 0),
		PeeAmount:      events.AmountBig,
		PooAmount:      events.AmountLittle,
		PooColor:       events.PooBrown,
		PooConsistency: events.ConsistencyLoose,
		HasRash:        true,
	}
	ru := DiaperRules()

	tests := []struct {
		diaperType events.DiaperType
		wantPee    bool
		wantPoo    bool
	}{
		{events.DiaperPee, true, false},
		{events.DiaperPoo, false, true},
		{events.DiaperMixed, true, true},
		{events.DiaperDry, false, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.diaperType), func(t *testing.T) {
			rec := base
			rec.Type = tt.diaperType
			s := ru.Session(rec)

			if got := s.PeeAmount != ""; got != tt.wantPee {
				t.Errorf("pee fields carried = %v, want %v", got, tt.wantPee)
			}
			pooCarried := s.PooAmount != "" || s.PooColor != "" || s.PooConsistency != ""
			if pooCarried != tt.wantPoo {
				t.Errorf("poo fields carried = %v, want %v", pooCarried, tt.wantPoo)
			}
			if !s.HasRash {
				t.Error("HasRash dropped from session")
			}
		})
	}
}

func TestDiaperColors(t *testing.T) {
	seen := map[string]events.DiaperType{}
	for _, dt := range []events.DiaperType{events.DiaperPee, events.DiaperPoo, events.DiaperMixed, events.DiaperDry} {
		hex := DiaperColor(dt)
		if prev, dup := seen[hex]; dup {
			t.Errorf("%s and %s share color %s", prev, dt, hex)
		}
		seen[hex] = dt
	}
	if PooColorHex(events.PooBrown) == PooColorHex(events.PooGreen) {
		t.Error("poo color grades are not distinguishable")
	}
}
