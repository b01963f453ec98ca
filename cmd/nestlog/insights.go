package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nestlog/nestlog/pkg/insights"
)

var (
	flagInsightsDays  int
	flagInsightsTypes string
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Ask the AI for a summary of recent records",
	Long: `Send the selected categories' records from the trailing --days window
to Gemini and print the markdown summary. Needs GEMINI_API_KEY; the model
defaults to ` + insights.DefaultModel + ` and can be overridden with
GEMINI_MODEL.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validDays(flagInsightsDays); err != nil {
			return err
		}
		categories, err := parseCategories(flagInsightsTypes)
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

		sleep, err := s.Sleeps(ctx, child.ID)
		if err != nil {
			return err
		}
		feed, err := s.Feeds(ctx, child.ID)
		if err != nil {
			return err
		}
		diaper, err := s.Diapers(ctx, child.ID)
		if err != nil {
			return err
		}
		activity, err := s.Activities(ctx, child.ID)
		if err != nil {
			return err
		}
		milestone, err := s.Milestones(ctx, child.ID)
		if err != nil {
			return err
		}
		weight, err := s.Weights(ctx, child.ID)
		if err != nil {
			return err
		}

		client := insights.NewClient(os.Getenv("GEMINI_API_KEY"), logger,
			insights.WithModel(os.Getenv("GEMINI_MODEL")),
			insights.WithCache(insights.NewMemoryCache(10*time.Minute)),
		)
		req := insights.NewRequest(child, flagInsightsDays, categories,
			sleep, feed, diaper, activity, milestone, weight)
		summary, err := client.Summarize(ctx, req)
		if err != nil {
			return err
		}
		fmt.Println(summary)
		return nil
	},
}

func init() {
	insightsCmd.Flags().IntVar(&flagInsightsDays, "days", 7, "window size in days")
	insightsCmd.Flags().StringVar(&flagInsightsTypes, "types", "feed,sleep", "comma list of categories, or 'all'")
	rootCmd.AddCommand(insightsCmd)
}
