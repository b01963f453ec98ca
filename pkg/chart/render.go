package chart

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

const barWidth = 40

// palette maps the presentation hex colors onto terminal colors.
var palette = map[string]*color.Color{
	"#4287f5": color.New(color.FgBlue),
	"#00c896": color.New(color.FgGreen),
	"#ff9900": color.New(color.FgYellow),
	"#ffd700": color.New(color.FgHiYellow),
	"#ff4d4d": color.New(color.FgRed),
	"#ff0000": color.New(color.FgHiRed),
	"#9c27b0": color.New(color.FgMagenta),
	"#8b4513": color.New(color.FgRed),
	"#228b22": color.New(color.FgGreen),
	"#000000": color.New(color.FgHiBlack),
}

func colorFor(hex string) *color.Color {
	if c, ok := palette[hex]; ok {
		return c
	}
	return color.New(color.FgHiBlack)
}

// Render draws one bar per day, oldest first. Bars are scaled against
// the window's largest capped day total; a day over its cap shows the
// as-logged total in parentheses next to the capped one.
func Render(title, unit string, days []Day) string {
	var out strings.Builder
	out.WriteString(title + "\n")
	out.WriteString(strings.Repeat("─", 50) + "\n")

	maxDisplay := 0.0
	for _, d := range days {
		if d.Display > maxDisplay {
			maxDisplay = d.Display
		}
	}
	if maxDisplay == 0 {
		out.WriteString("no entries in this window\n")
		return out.String()
	}

	for _, d := range days {
		line := fmt.Sprintf("%s %s ", d.Date, formatTotal(d, unit))
		cells := int(d.Display / maxDisplay * barWidth)
		if cells == 0 && d.Display > 0 {
			cells = 1
		}

		remaining := cells
		for _, seg := range d.Segments {
			if remaining == 0 {
				break
			}
			segCells := int(seg.Value / d.Display * float64(cells))
			if segCells == 0 && seg.Value > 0 {
				segCells = 1
			}
			if segCells > remaining {
				segCells = remaining
			}
			line += colorFor(seg.Hex).Sprint(strings.Repeat("█", segCells))
			remaining -= segCells
		}
		if remaining > 0 && len(d.Segments) > 0 {
			// rounding shortfall, filled with the last segment's color
			last := d.Segments[len(d.Segments)-1]
			line += colorFor(last.Hex).Sprint(strings.Repeat("█", remaining))
		}
		out.WriteString(line + "\n")
	}
	return out.String()
}

func formatTotal(d Day, unit string) string {
	if d.Display == 0 {
		return strings.Repeat(" ", 12)
	}
	total := fmt.Sprintf("%5.1f%s", d.Display, unit)
	if d.Actual > d.Display {
		total += fmt.Sprintf(" (%.1f)", d.Actual)
	}
	if len(total) < 12 {
		total += strings.Repeat(" ", 12-len(total))
	}
	return total
}

// RenderWeight draws the weight series as one labeled point per day that
// has a measurement.
func RenderWeight(title string, points []WeightPoint) string {
	var out strings.Builder
	out.WriteString(title + "\n")
	out.WriteString(strings.Repeat("─", 50) + "\n")
	if len(points) == 0 {
		out.WriteString("no entries in this window\n")
		return out.String()
	}

	maxPounds := 0.0
	for _, p := range points {
		if p.Pounds > maxPounds {
			maxPounds = p.Pounds
		}
	}

	marker := color.New(color.FgBlue)
	for _, p := range points {
		cells := int(p.Pounds / maxPounds * barWidth)
		if cells == 0 {
			cells = 1
		}
		out.WriteString(fmt.Sprintf("%s %-12s %s%s\n",
			p.Date, p.Weight.String(),
			strings.Repeat("·", cells-1), marker.Sprint("●")))
	}
	return out.String()
}
