// Package events defines the raw care-event records logged for a child:
// sleep, feed, diaper, activity, milestone and weight entries. Records are
// immutable values once fetched; downstream code regroups them but never
// mutates them.
package events

import (
	"fmt"
	"time"
)

// Category identifies one of the six tracked event kinds.
type Category string

const (
	CategorySleep     Category = "sleep"
	CategoryFeed      Category = "feed"
	CategoryDiaper    Category = "diaper"
	CategoryActivity  Category = "activity"
	CategoryMilestone Category = "milestone"
	CategoryWeight    Category = "weight"
)

// Categories lists all tracked categories in display order.
var Categories = []Category{
	CategorySleep, CategoryFeed, CategoryDiaper,
	CategoryActivity, CategoryMilestone, CategoryWeight,
}

// ParseCategory converts a user-supplied name into a Category.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Sex of a child profile.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// WeightValue is a pounds-and-ounces measurement. Ounces stay below 16.
type WeightValue struct {
	Pounds int `json:"pounds"`
	Ounces int `json:"ounces"`
}

// TotalOunces returns the measurement as a single ounce count.
func (w WeightValue) TotalOunces() int { return w.Pounds*16 + w.Ounces }

func (w WeightValue) String() string {
	return fmt.Sprintf("%d lb %d oz", w.Pounds, w.Ounces)
}

// Child is the owning profile whose events are tracked.
type Child struct {
	ID        string       `json:"id"`
	FirstName string       `json:"first_name"`
	LastName  string       `json:"last_name"`
	DOB       time.Time    `json:"dob"`
	Sex       Sex          `json:"sex"`
	Birth     *WeightValue `json:"weight,omitempty"` // birth weight, when recorded
}

// Sleep is one sleep session. Start is always strictly before End for a
// well-formed record; bucketing keys off Start so overnight sleeps stay on
// the day they began.
type Sleep struct {
	ChildID string    `json:"id"`
	DocID   string    `json:"docId,omitempty"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Quality int       `json:"quality"` // 1 (restless) to 5 (sound)
}

// Hours returns the elapsed sleep duration in fractional hours.
func (s Sleep) Hours() float64 { return s.End.Sub(s.Start).Hours() }

// FeedType distinguishes feeding methods.
type FeedType string

const (
	FeedNursing FeedType = "nursing"
	FeedBottle  FeedType = "bottle"
	FeedSolid   FeedType = "solid"
)

// Side is the nursing side; meaningful only for nursing feeds.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Feed is one feeding. Amount is meaningful for bottle and solid feeds;
// Duration is the caregiver-entered minute count and Side applies to
// nursing only.
type Feed struct {
	ChildID     string    `json:"id"`
	DocID       string    `json:"docId,omitempty"`
	DateTime    time.Time `json:"dateTime"`
	Type        FeedType  `json:"type"`
	Amount      float64   `json:"amount,omitempty"`
	Duration    int       `json:"duration,omitempty"`
	Side        Side      `json:"side,omitempty"`
	Description string    `json:"description,omitempty"`
	Notes       string    `json:"notes,omitempty"`
}

// DiaperType classifies a diaper change.
type DiaperType string

const (
	DiaperPee   DiaperType = "pee"
	DiaperPoo   DiaperType = "poo"
	DiaperMixed DiaperType = "mixed"
	DiaperDry   DiaperType = "dry"
)

// HasPee reports whether pee-related fields apply to this type.
func (t DiaperType) HasPee() bool { return t == DiaperPee || t == DiaperMixed }

// HasPoo reports whether poo-related fields apply to this type.
func (t DiaperType) HasPoo() bool { return t == DiaperPoo || t == DiaperMixed }

// DiaperAmount grades how much a diaper held.
type DiaperAmount string

const (
	AmountLittle DiaperAmount = "little"
	AmountMedium DiaperAmount = "medium"
	AmountBig    DiaperAmount = "big"
)

// PooColor of a poo or mixed diaper.
type PooColor string

const (
	PooYellow PooColor = "yellow"
	PooBrown  PooColor = "brown"
	PooBlack  PooColor = "black"
	PooGreen  PooColor = "green"
	PooRed    PooColor = "red"
)

// PooConsistency of a poo or mixed diaper.
type PooConsistency string

const (
	ConsistencySolid    PooConsistency = "solid"
	ConsistencyLoose    PooConsistency = "loose"
	ConsistencyRunny    PooConsistency = "runny"
	ConsistencyMucousy  PooConsistency = "mucousy"
	ConsistencyHard     PooConsistency = "hard"
	ConsistencyPebbles  PooConsistency = "pebbles"
	ConsistencyDiarrhea PooConsistency = "diarrhea"
)

// Diaper is one diaper change. The amount/color/consistency fields are
// populated only when Type implies them: pee fields for pee/mixed, poo
// fields for poo/mixed.
type Diaper struct {
	ChildID        string         `json:"id"`
	DocID          string         `json:"docId,omitempty"`
	DateTime       time.Time      `json:"dateTime"`
	Type           DiaperType     `json:"type"`
	PeeAmount      DiaperAmount   `json:"peeAmount,omitempty"`
	PooAmount      DiaperAmount   `json:"pooAmount,omitempty"`
	PooColor       PooColor       `json:"pooColor,omitempty"`
	PooConsistency PooConsistency `json:"pooConsistency,omitempty"`
	HasRash        bool           `json:"hasRash"`
}

// ActivityType enumerates tracked activities.
type ActivityType string

const (
	ActivityBath       ActivityType = "bath"
	ActivityTummyTime  ActivityType = "tummy time"
	ActivityStoryTime  ActivityType = "story time"
	ActivitySkinToSkin ActivityType = "skin to skin"
	ActivityBrushTeeth ActivityType = "brush teeth"
)

// Activity is one logged activity.
type Activity struct {
	ChildID  string       `json:"id"`
	DocID    string       `json:"docId,omitempty"`
	DateTime time.Time    `json:"dateTime"`
	Type     ActivityType `json:"type"`
}

// MilestoneType enumerates developmental milestones.
type MilestoneType string

const (
	MilestoneSmiling     MilestoneType = "smiling"
	MilestoneRollingOver MilestoneType = "rolling over"
	MilestoneSittingUp   MilestoneType = "sitting up"
	MilestoneCrawling    MilestoneType = "crawling"
	MilestoneWalking     MilestoneType = "walking"
)

// Milestone is one reached milestone.
type Milestone struct {
	ChildID  string        `json:"id"`
	DocID    string        `json:"docId,omitempty"`
	DateTime time.Time     `json:"dateTime"`
	Type     MilestoneType `json:"type"`
}

// Weight is one weight measurement.
type Weight struct {
	ChildID  string    `json:"id"`
	DocID    string    `json:"docId,omitempty"`
	DateTime time.Time `json:"dateTime"`
	Pounds   int       `json:"pounds"`
	Ounces   int       `json:"ounces"`
}

// Value returns the measurement as a WeightValue.
func (w Weight) Value() WeightValue { return WeightValue{Pounds: w.Pounds, Ounces: w.Ounces} }
