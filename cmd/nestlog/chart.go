package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nestlog/nestlog/pkg/chart"
	"github.com/nestlog/nestlog/pkg/events"
)

var flagChartDays int

var chartCmd = &cobra.Command{
	Use:   "chart <category>",
	Short: "Draw a day-by-day chart for one category",
	Long: `Draw one stacked bar per local calendar day over the trailing --days
window. Day totals are capped for display (16h sleep, 90min feed, 12
diapers, 10 activities, 5 milestones); a capped day shows its as-logged
total in parentheses. Weight draws as a point series, one point per day
with a measurement.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validDays(flagChartDays); err != nil {
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
		ctx := cmd.Context()

		switch cat {
		case events.CategorySleep:
			records, err := s.Sleeps(ctx, child.ID)
			if err != nil {
				return err
			}
			title := fmt.Sprintf("Sleep, %s, last %d days", child.FirstName, flagChartDays)
			fmt.Print(chart.Render(title, "h", chart.SleepDays(records, flagChartDays)))
		case events.CategoryFeed:
			records, err := s.Feeds(ctx, child.ID)
			if err != nil {
				return err
			}
			title := fmt.Sprintf("Feeding, %s, last %d days", child.FirstName, flagChartDays)
			fmt.Print(chart.Render(title, "m", chart.FeedDays(records, flagChartDays)))
		case events.CategoryDiaper:
			records, err := s.Diapers(ctx, child.ID)
			if err != nil {
				return err
			}
			title := fmt.Sprintf("Diapers, %s, last %d days", child.FirstName, flagChartDays)
			fmt.Print(chart.Render(title, "", chart.DiaperDays(records, flagChartDays)))
		case events.CategoryActivity:
			records, err := s.Activities(ctx, child.ID)
			if err != nil {
				return err
			}
			title := fmt.Sprintf("Activities, %s, last %d days", child.FirstName, flagChartDays)
			fmt.Print(chart.Render(title, "", chart.ActivityDays(records, flagChartDays)))
		case events.CategoryMilestone:
			records, err := s.Milestones(ctx, child.ID)
			if err != nil {
				return err
			}
			title := fmt.Sprintf("Milestones, %s, last %d days", child.FirstName, flagChartDays)
			fmt.Print(chart.Render(title, "", chart.MilestoneDays(records, flagChartDays)))
		case events.CategoryWeight:
			records, err := s.Weights(ctx, child.ID)
			if err != nil {
				return err
			}
			title := fmt.Sprintf("Weight, %s, last %d days", child.FirstName, flagChartDays)
			fmt.Print(chart.RenderWeight(title, chart.WeightSeries(records, flagChartDays)))
		}
		return nil
	},
}

func init() {
	chartCmd.Flags().IntVar(&flagChartDays, "days", 7, "window size in days")
	rootCmd.AddCommand(chartCmd)
}
