package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nestlog/nestlog/pkg/events"
	"github.com/nestlog/nestlog/pkg/store"
	"github.com/nestlog/nestlog/pkg/timeline"
)

var flagDays int

var listCmd = &cobra.Command{
	Use:   "list <category>",
	Short: "List a category's records for the trailing window, newest first",
	Long: `List records of one category (sleep, feed, diaper, activity, milestone,
weight) inside the trailing --days window. An overnight sleep shows up as
long as its start or its end touches the window.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validDays(flagDays); err != nil {
			return err
		}
		cat, err := events.ParseCategory(args[0])
		if err != nil {
			return err
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		child, err := resolveChild(cmd.Context(), s)
		if err != nil {
			return err
		}

		lines, err := listLines(cmd, s, child, cat)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			fmt.Printf("No %s entries for %s in the last %d days\n", cat, child.FirstName, flagDays)
			return nil
		}
		for _, line := range lines {
			fmt.Println(line)
		}
		return nil
	},
}

func listLines(cmd *cobra.Command, s *store.Store, child events.Child, cat events.Category) ([]string, error) {
	ctx := cmd.Context()
	var lines []string
	switch cat {
	case events.CategorySleep:
		records, err := s.Sleeps(ctx, child.ID)
		if err != nil {
			return nil, err
		}
		for _, r := range timeline.FilterSleep(records, flagDays) {
			lines = append(lines, fmt.Sprintf("%s  %s-%s  %.1fh  quality %d/5  [%s]",
				r.Start.Format("Jan 02"), r.Start.Format("15:04"), r.End.Format("15:04"),
				r.Hours(), r.Quality, r.DocID))
		}
	case events.CategoryFeed:
		records, err := s.Feeds(ctx, child.ID)
		if err != nil {
			return nil, err
		}
		for _, r := range timeline.FilterFeeds(records, flagDays) {
			detail := ""
			switch r.Type {
			case events.FeedNursing:
				detail = fmt.Sprintf("%s side, %d min", r.Side, r.Duration)
			case events.FeedBottle:
				detail = fmt.Sprintf("%.1f oz", r.Amount)
			default:
				detail = r.Description
			}
			lines = append(lines, fmt.Sprintf("%s %s  %-8s %s  [%s]",
				r.DateTime.Format("Jan 02"), r.DateTime.Format("15:04"), r.Type, detail, r.DocID))
		}
	case events.CategoryDiaper:
		records, err := s.Diapers(ctx, child.ID)
		if err != nil {
			return nil, err
		}
		for _, r := range timeline.FilterDiapers(records, flagDays) {
			line := fmt.Sprintf("%s %s  %-5s", r.DateTime.Format("Jan 02"), r.DateTime.Format("15:04"), r.Type)
			if r.Type.HasPee() && r.PeeAmount != "" {
				line += fmt.Sprintf("  pee %s", r.PeeAmount)
			}
			if r.Type.HasPoo() && r.PooAmount != "" {
				line += fmt.Sprintf("  poo %s %s %s", r.PooAmount, r.PooColor, r.PooConsistency)
			}
			if r.HasRash {
				line += "  rash"
			}
			lines = append(lines, line+fmt.Sprintf("  [%s]", r.DocID))
		}
	case events.CategoryActivity:
		records, err := s.Activities(ctx, child.ID)
		if err != nil {
			return nil, err
		}
		for _, r := range timeline.FilterActivities(records, flagDays) {
			lines = append(lines, fmt.Sprintf("%s %s  %s  [%s]",
				r.DateTime.Format("Jan 02"), r.DateTime.Format("15:04"), r.Type, r.DocID))
		}
	case events.CategoryMilestone:
		records, err := s.Milestones(ctx, child.ID)
		if err != nil {
			return nil, err
		}
		for _, r := range timeline.FilterMilestones(records, flagDays) {
			lines = append(lines, fmt.Sprintf("%s  %s  [%s]",
				r.DateTime.Format("Jan 02"), r.Type, r.DocID))
		}
	case events.CategoryWeight:
		records, err := s.Weights(ctx, child.ID)
		if err != nil {
			return nil, err
		}
		for _, r := range timeline.FilterWeights(records, flagDays) {
			lines = append(lines, fmt.Sprintf("%s  %s  [%s]",
				r.DateTime.Format("Jan 02"), r.Value(), r.DocID))
		}
	}
	return lines, nil
}

func init() {
	listCmd.Flags().IntVar(&flagDays, "days", 7, "window size in days")
	rootCmd.AddCommand(listCmd)
}
