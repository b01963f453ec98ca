// Package report renders a shareable summary of a child's records over a
// trailing window, as HTML for export and as markdown for plain-text
// sharing. The same window rules used by the charts decide which records
// make it into the report.
package report

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/nestlog/nestlog/pkg/events"
	"github.com/nestlog/nestlog/pkg/timeline"
)

// Data is everything one report needs, already narrowed to the window.
type Data struct {
	Child       events.Child
	RangeDays   int
	Categories  []events.Category
	GeneratedAt time.Time

	// Insights is an optional model-written markdown summary appended
	// after the record sections.
	Insights string

	Sleep     []events.Sleep
	Feed      []events.Feed
	Diaper    []events.Diaper
	Activity  []events.Activity
	Milestone []events.Milestone
	Weight    []events.Weight
}

// New narrows each selected category's records to the last rangeDays and
// stamps the report with the current time.
func New(child events.Child, rangeDays int, categories []events.Category,
	sleep []events.Sleep, feed []events.Feed, diaper []events.Diaper,
	activity []events.Activity, milestone []events.Milestone, weight []events.Weight,
) Data {
	d := Data{
		Child:       child,
		RangeDays:   rangeDays,
		Categories:  categories,
		GeneratedAt: time.Now(),
	}
	for _, cat := range categories {
		switch cat {
		case events.CategorySleep:
			d.Sleep = timeline.FilterSleep(sleep, rangeDays)
		case events.CategoryFeed:
			d.Feed = timeline.FilterFeeds(feed, rangeDays)
		case events.CategoryDiaper:
			d.Diaper = timeline.FilterDiapers(diaper, rangeDays)
		case events.CategoryActivity:
			d.Activity = timeline.FilterActivities(activity, rangeDays)
		case events.CategoryMilestone:
			d.Milestone = timeline.FilterMilestones(milestone, rangeDays)
		case events.CategoryWeight:
			d.Weight = timeline.FilterWeights(weight, rangeDays)
		}
	}
	return d
}

// Selected reports whether a category was chosen for this report.
func (d Data) Selected(cat events.Category) bool {
	for _, c := range d.Categories {
		if c == cat {
			return true
		}
	}
	return false
}

var funcs = template.FuncMap{
	"when": func(t time.Time) string { return t.Format("Jan 2, 3:04 PM") },
	"day":  func(t time.Time) string { return t.Format("Jan 2, 2006") },
	"hours": func(h float64) string {
		return fmt.Sprintf("%.1f h", h)
	},
	"feedDetail":   feedDetail,
	"diaperDetail": diaperDetail,
}

var reportTmpl = template.Must(template.New("report").Funcs(funcs).Parse(`<html>
<head><title>{{.Child.FirstName}} {{.Child.LastName}} care report</title></head>
<body>
<h1>Care report for {{.Child.FirstName}} {{.Child.LastName}}</h1>
<p>Born {{day .Child.DOB}}. Last {{.RangeDays}} days, generated {{day .GeneratedAt}}.</p>
{{if .Sleep}}
<h2>Sleep</h2>
<table>
<tr><th>Start</th><th>End</th><th>Duration</th><th>Quality</th></tr>
{{range .Sleep}}<tr><td>{{when .Start}}</td><td>{{when .End}}</td><td>{{hours .Hours}}</td><td>{{.Quality}}/5</td></tr>
{{end}}</table>
{{end}}
{{if .Feed}}
<h2>Feeding</h2>
<table>
<tr><th>Time</th><th>Type</th><th>Detail</th></tr>
{{range .Feed}}<tr><td>{{when .DateTime}}</td><td>{{.Type}}</td><td>{{feedDetail .}}</td></tr>
{{end}}</table>
{{end}}
{{if .Diaper}}
<h2>Diapers</h2>
<table>
<tr><th>Time</th><th>Type</th><th>Detail</th></tr>
{{range .Diaper}}<tr><td>{{when .DateTime}}</td><td>{{.Type}}</td><td>{{diaperDetail .}}</td></tr>
{{end}}</table>
{{end}}
{{if .Activity}}
<h2>Activities</h2>
<table>
<tr><th>Time</th><th>Activity</th></tr>
{{range .Activity}}<tr><td>{{when .DateTime}}</td><td>{{.Type}}</td></tr>
{{end}}</table>
{{end}}
{{if .Milestone}}
<h2>Milestones</h2>
<table>
<tr><th>Day</th><th>Milestone</th></tr>
{{range .Milestone}}<tr><td>{{day .DateTime}}</td><td>{{.Type}}</td></tr>
{{end}}</table>
{{end}}
{{if .Weight}}
<h2>Weight</h2>
<table>
<tr><th>Day</th><th>Weight</th></tr>
{{range .Weight}}<tr><td>{{day .DateTime}}</td><td>{{.Value}}</td></tr>
{{end}}</table>
{{end}}
</body>
</html>
`))

func feedDetail(f events.Feed) string {
	switch f.Type {
	case events.FeedNursing:
		return fmt.Sprintf("%s side, %d min", f.Side, f.Duration)
	case events.FeedBottle:
		return fmt.Sprintf("%.1f oz", f.Amount)
	default:
		if f.Description != "" {
			return f.Description
		}
		return "solid food"
	}
}

func diaperDetail(d events.Diaper) string {
	var parts []string
	if d.Type.HasPee() && d.PeeAmount != "" {
		parts = append(parts, fmt.Sprintf("pee %s", d.PeeAmount))
	}
	if d.Type.HasPoo() {
		poo := "poo"
		if d.PooAmount != "" {
			poo += " " + string(d.PooAmount)
		}
		if d.PooColor != "" {
			poo += ", " + string(d.PooColor)
		}
		if d.PooConsistency != "" {
			poo += ", " + string(d.PooConsistency)
		}
		parts = append(parts, poo)
	}
	if d.HasRash {
		parts = append(parts, "rash")
	}
	return strings.Join(parts, "; ")
}

// HTML renders the report document. The insights markdown, when present,
// is appended verbatim inside a preformatted block.
func (d Data) HTML() (string, error) {
	var b strings.Builder
	if err := reportTmpl.Execute(&b, d); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	html := b.String()
	if d.Insights != "" {
		insert := "<h2>Insights</h2>\n<pre>" + template.HTMLEscapeString(d.Insights) + "</pre>\n</body>"
		html = strings.Replace(html, "</body>", insert, 1)
	}
	return html, nil
}

// Markdown renders the report as markdown: the record sections converted
// from the HTML rendering, then the insights markdown as-is.
func (d Data) Markdown() (string, error) {
	stripped := d
	stripped.Insights = ""
	html, err := stripped.HTML()
	if err != nil {
		return "", err
	}
	markdown, err := md.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("convert report to markdown: %w", err)
	}
	markdown = strings.TrimSpace(markdown)
	if d.Insights != "" {
		markdown += "\n\n## Insights\n\n" + strings.TrimSpace(d.Insights)
	}
	return markdown + "\n", nil
}
