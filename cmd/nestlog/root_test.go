package main

import (
	"testing"
	"time"

	"github.com/nestlog/nestlog/pkg/events"
)

func TestParseWhen(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"now", false},
		{"", false},
		{"14:30", false},
		{"2026-03-10 14:30", false},
		{"2026-03-10T14:30", false},
		{"2026-03-10", false},
		{"yesterday", true},
		{"25:99", true},
	}
	for _, tt := range tests {
		_, err := parseWhen(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseWhen(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}

func TestParseWhenClockTimeIsToday(t *testing.T) {
	got, err := parseWhen("06:15")
	if err != nil {
		t.Fatalf("parseWhen(06:15) error: %v", err)
	}
	now := time.Now()
	if got.Year() != now.Year() || got.Month() != now.Month() || got.Day() != now.Day() {
		t.Errorf("parseWhen(06:15) = %v, want today's date", got)
	}
	if got.Hour() != 6 || got.Minute() != 15 {
		t.Errorf("parseWhen(06:15) clock = %02d:%02d, want 06:15", got.Hour(), got.Minute())
	}
}

func TestParseCategories(t *testing.T) {
	got, err := parseCategories("sleep, feed")
	if err != nil {
		t.Fatalf("parseCategories() error: %v", err)
	}
	if len(got) != 2 || got[0] != events.CategorySleep || got[1] != events.CategoryFeed {
		t.Errorf("parseCategories(sleep, feed) = %v", got)
	}

	all, err := parseCategories("all")
	if err != nil {
		t.Fatalf("parseCategories(all) error: %v", err)
	}
	if len(all) != len(events.Categories) {
		t.Errorf("parseCategories(all) returned %d categories, want %d", len(all), len(events.Categories))
	}

	if _, err := parseCategories("naps"); err == nil {
		t.Error("parseCategories(naps) did not error")
	}
}
