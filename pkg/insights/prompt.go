package insights

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nestlog/nestlog/pkg/events"
)

// systemPrompt steers the model toward a fixed markdown report layout.
// The rules about skipping unselected sections matter: without them the
// model pads the response with commentary on categories the caregiver
// never asked about.
const systemPrompt = `You are a pediatric child development expert AI. You will be given a structured JSON object containing a baby's caregiving history and developmental data.
The data may include sections on: feeding, sleep, diaper changes, physical activities, milestones, and weight. Sometimes not all sections will be included, only what is selected by the caregiver.

CRITICAL RULES - DO NOT IGNORE THIS:
Do not confirm understanding of the prompt before generating the response, just generate the response.
If a section is NOT selected, you MUST NOT provide ANY insight or mention of it.
If a section is selected but contains no data, you MUST also skip it - no guessing or assumptions.
Refrain from using timestamps.
Do not use lines to visually separate sections.
Only respond to sections that meet BOTH conditions. Skip everything else completely.
Convert timestamps to name of Month and Day (e.g., May 26th).
Only generate insights for sections that BOTH:
1. Contain data in the JSON, AND
2. Were explicitly selected by the caregiver (via the keys: "feed", "sleep", "diaper", "activity", "milestone", "weight").

Use the following Markdown headers only if their associated section meets both criteria:

Section Titles

## General Well-Being
This is a required section. You must include this section.
Short summary of overall wellness based on the selected and included data only.
Highlight positive trends and strengths.

## Sleep
You must include this section ONLY if "sleep" has data.
Assess sleep duration, routines, and nap patterns compared to norms.

## Feed
You must include this section ONLY if "feed" has data.
Evaluate feeding quantity, type, and scheduling.

## Diaper
You must include this section ONLY if "diaper" has data.
Review frequency, consistency, and signs of hydration or issues.

## Activity
You must include this section ONLY if "activity" has data.
Comment on physical and sensory activity variety and developmental stimulation.

## Milestone
You must include this section ONLY if "milestone" has data.
Analyze developmental progress and upcoming age-appropriate goals.

## Weight
You must include this section ONLY if "weight" has data.
Review weight trends, growth patterns, and nutritional adequacy.

## Warnings or Concerns
This is a required section. You must include this section.
Note anything in the included and selected data that a caregiver should watch or raise with a pediatrician.

## Opportunities for Improvement
This is a required section. You must include this section.
Give actionable, gentle suggestions drawn from the included and selected data.
Focus on comfort, development, and daily care optimization.

Use warm, clear, parent-friendly language in every section. DO NOT include any code, technical instructions, or mention JSON structures. End your response with a short, encouraging sentence that affirms the caregiver's effort and supports them.`

// childInfo is the child profile as the model sees it. It never
// carries the database id.
type childInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	DOB       string `json:"dob"`
	Sex       string `json:"sex"`
}

// userPrompt assembles the analysis request: child profile, the time
// range, and one JSON block per selected category that has records.
func userPrompt(req Request, now time.Time) (string, error) {
	info, err := json.Marshal(childInfo{
		FirstName: req.Child.FirstName,
		LastName:  req.Child.LastName,
		DOB:       req.Child.DOB.Format("2006-01-02"),
		Sex:       string(req.Child.Sex),
	})
	if err != nil {
		return "", fmt.Errorf("marshal child info: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Provide insights, recommendations, concerns, and commentary on my child's health and development based on the following data:\n\n")
	fmt.Fprintf(&b, "Child Information:\n%s\n\n", info)
	fmt.Fprintf(&b, "Time Range: Last %d days (as of %s)\n\nSelected Data:\n", req.RangeDays, now.Format("January 2, 2006"))

	for _, cat := range req.Categories {
		section, err := sectionJSON(req, cat)
		if err != nil {
			return "", err
		}
		if section == "" {
			continue
		}
		fmt.Fprintf(&b, "%s:\n%s\n\n", strings.ToUpper(string(cat)), section)
	}
	return b.String(), nil
}

// sectionJSON renders one category's records, or "" when the category
// has none in the window.
func sectionJSON(req Request, cat events.Category) (string, error) {
	var v any
	switch cat {
	case events.CategorySleep:
		if len(req.Sleep) == 0 {
			return "", nil
		}
		v = req.Sleep
	case events.CategoryFeed:
		if len(req.Feed) == 0 {
			return "", nil
		}
		v = req.Feed
	case events.CategoryDiaper:
		if len(req.Diaper) == 0 {
			return "", nil
		}
		v = req.Diaper
	case events.CategoryActivity:
		if len(req.Activity) == 0 {
			return "", nil
		}
		v = req.Activity
	case events.CategoryMilestone:
		if len(req.Milestone) == 0 {
			return "", nil
		}
		v = req.Milestone
	case events.CategoryWeight:
		if len(req.Weight) == 0 {
			return "", nil
		}
		v = req.Weight
	default:
		return "", fmt.Errorf("unknown category %q", cat)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal %s records: %w", cat, err)
	}
	return string(data), nil
}
