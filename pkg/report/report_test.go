package report

import (
	"strings"
	"testing"
	"time"

	"github.com/nestlog/nestlog/pkg/events"
)

func testData() Data {
	now := time.Now()
	return Data{
		Child: events.Child{
			ID:        "child-1",
			FirstName: "June",
			LastName:  "Park",
			DOB:       time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
			Sex:       events.SexFemale,
		},
		RangeDays:   7,
		Categories:  []events.Category{events.CategorySleep, events.CategoryFeed},
		GeneratedAt: now,
		Sleep: []events.Sleep{
			{ChildID: "child-1", Start: now.Add(-10 * time.Hour), End: now.Add(-8 * time.Hour), Quality: 4},
		},
		Feed: []events.Feed{
			{ChildID: "child-1", DateTime: now.Add(-2 * time.Hour), Type: events.FeedNursing, Side: events.SideLeft, Duration: 20},
		},
	}
}

func TestHTMLRendersSelectedSections(t *testing.T) {
	html, err := testData().HTML()
	if err != nil {
		t.Fatalf("HTML() error: %v", err)
	}
	if !strings.Contains(html, "Care report for June Park") {
		t.Errorf("HTML missing title:\n%s", html)
	}
	if !strings.Contains(html, "<h2>Sleep</h2>") || !strings.Contains(html, "<h2>Feeding</h2>") {
		t.Errorf("HTML missing selected sections:\n%s", html)
	}
	if strings.Contains(html, "<h2>Diapers</h2>") {
		t.Errorf("HTML rendered an empty unselected section:\n%s", html)
	}
	if !strings.Contains(html, "left side, 20 min") {
		t.Errorf("HTML missing nursing detail:\n%s", html)
	}
}

func TestHTMLIncludesInsightsBlock(t *testing.T) {
	d := testData()
	d.Insights = "## General Well-Being\nDoing great."
	html, err := d.HTML()
	if err != nil {
		t.Fatalf("HTML() error: %v", err)
	}
	if !strings.Contains(html, "<h2>Insights</h2>") {
		t.Errorf("HTML missing insights section:\n%s", html)
	}
	if !strings.Contains(html, "Doing great.") {
		t.Errorf("HTML missing insights text:\n%s", html)
	}
}

func TestMarkdownConversion(t *testing.T) {
	d := testData()
	d.Insights = "## General Well-Being\nDoing great."
	markdown, err := d.Markdown()
	if err != nil {
		t.Fatalf("Markdown() error: %v", err)
	}
	if !strings.Contains(markdown, "Care report for June Park") {
		t.Errorf("markdown missing title:\n%s", markdown)
	}
	if strings.Contains(markdown, "<h1>") || strings.Contains(markdown, "<table>") {
		t.Errorf("markdown still contains HTML tags:\n%s", markdown)
	}
	if !strings.Contains(markdown, "## Insights") || !strings.Contains(markdown, "## General Well-Being") {
		t.Errorf("markdown missing insights:\n%s", markdown)
	}
}

func TestNewFiltersToWindow(t *testing.T) {
	now := time.Now()
	feeds := []events.Feed{
		{ChildID: "child-1", DateTime: now.Add(-time.Hour), Type: events.FeedBottle},
		{ChildID: "child-1", DateTime: now.AddDate(0, 0, -30), Type: events.FeedBottle},
	}
	d := New(events.Child{ID: "child-1", FirstName: "June"}, 7,
		[]events.Category{events.CategoryFeed},
		nil, feeds, nil, nil, nil, nil)
	if len(d.Feed) != 1 {
		t.Errorf("New() kept %d feeds, want 1 inside the window", len(d.Feed))
	}
	if d.Sleep != nil {
		t.Errorf("unselected sleep populated: %v", d.Sleep)
	}
}

func TestDiaperDetail(t *testing.T) {
	tests := []struct {
		name string
		in   events.Diaper
		want string
	}{
		{
			name: "mixed with rash",
			in: events.Diaper{
				Type: events.DiaperMixed, PeeAmount: events.AmountMedium,
				PooAmount: events.AmountLittle, PooColor: events.PooYellow,
				PooConsistency: events.ConsistencyLoose, HasRash: true,
			},
			want: "pee medium; poo little, yellow, loose; rash",
		},
		{
			name: "dry",
			in:   events.Diaper{Type: events.DiaperDry},
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := diaperDetail(tt.in); got != tt.want {
				t.Errorf("diaperDetail() = %q, want %q", got, tt.want)
			}
		})
	}
}
