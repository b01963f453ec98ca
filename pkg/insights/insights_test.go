package insights

import (
	"strings"
	"testing"
	"time"

	"github.com/nestlog/nestlog/pkg/events"
)

var testChild = events.Child{
	ID:        "child-1",
	FirstName: "June",
	LastName:  "Park",
	DOB:       time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
	Sex:       events.SexFemale,
}

func TestUserPromptIncludesSelectedSections(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	req := Request{
		Child:      testChild,
		RangeDays:  7,
		Categories: []events.Category{events.CategoryFeed, events.CategorySleep},
		Feed: []events.Feed{
			{ChildID: "child-1", DateTime: now.Add(-2 * time.Hour), Type: events.FeedNursing, Duration: 20},
		},
		Sleep: []events.Sleep{
			{ChildID: "child-1", Start: now.Add(-10 * time.Hour), End: now.Add(-8 * time.Hour), Quality: 4},
		},
	}

	prompt, err := userPrompt(req, now)
	if err != nil {
		t.Fatalf("userPrompt() error: %v", err)
	}

	if !strings.Contains(prompt, "Last 7 days (as of March 10, 2026)") {
		t.Errorf("prompt missing time range line:\n%s", prompt)
	}
	if !strings.Contains(prompt, "FEED:") || !strings.Contains(prompt, "SLEEP:") {
		t.Errorf("prompt missing selected section headers:\n%s", prompt)
	}
	if strings.Contains(prompt, "DIAPER:") {
		t.Errorf("prompt includes unselected diaper section:\n%s", prompt)
	}
	if !strings.Contains(prompt, `"first_name":"June"`) {
		t.Errorf("prompt missing child info:\n%s", prompt)
	}
	// The profile block carries no database id.
	if !strings.Contains(prompt, `{"first_name":"June","last_name":"Park","dob":"2026-01-15","sex":"female"}`) {
		t.Errorf("child info block not as expected:\n%s", prompt)
	}
}

func TestUserPromptSkipsEmptySelectedSection(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	req := Request{
		Child:      testChild,
		RangeDays:  30,
		Categories: []events.Category{events.CategoryMilestone},
	}
	prompt, err := userPrompt(req, now)
	if err != nil {
		t.Fatalf("userPrompt() error: %v", err)
	}
	if strings.Contains(prompt, "MILESTONE:") {
		t.Errorf("selected but empty section rendered:\n%s", prompt)
	}
}

func TestNewRequestFiltersToWindow(t *testing.T) {
	now := time.Now()
	feeds := []events.Feed{
		{ChildID: "child-1", DateTime: now.Add(-time.Hour), Type: events.FeedBottle},
		{ChildID: "child-1", DateTime: now.AddDate(0, 0, -40), Type: events.FeedBottle},
	}
	req := NewRequest(testChild, 7, []events.Category{events.CategoryFeed},
		nil, feeds, nil, nil, nil, nil)
	if len(req.Feed) != 1 {
		t.Errorf("NewRequest kept %d feeds, want 1 inside the 7-day window", len(req.Feed))
	}
	if req.Sleep != nil {
		t.Errorf("unselected sleep category populated: %v", req.Sleep)
	}
}

func TestStripThink(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"## General Well-Being\nAll good.", "## General Well-Being\nAll good."},
		{"<think>reasoning here</think>\n## General Well-Being", "## General Well-Being"},
		{"<think>multi\nline</think>answer", "answer"},
	}
	for _, tt := range tests {
		if got := StripThink(tt.in); got != tt.want {
			t.Errorf("StripThink(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	if _, ok := c.Response("missing"); ok {
		t.Error("Response(missing) reported a hit")
	}
	c.SetResponse("k", "v")
	got, ok := c.Response("k")
	if !ok || got != "v" {
		t.Errorf("Response(k) = %q, %v, want v, true", got, ok)
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"googleapi: Error 503: service unavailable", true},
		{"rate limit exceeded", true},
		{"context deadline exceeded", true},
		{"googleapi: Error 400: invalid request", false},
		{"API key not valid", false},
	}
	for _, tt := range tests {
		if got := isTransient(errString(tt.msg)); got != tt.want {
			t.Errorf("isTransient(%q) = %v, want %v", tt.msg, got, tt.want)
		}
	}
}

type errString string

func (e errString) Error() string { return string(e) }
