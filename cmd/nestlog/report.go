package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nestlog/nestlog/pkg/insights"
	"github.com/nestlog/nestlog/pkg/report"
)

var (
	flagReportDays     int
	flagReportTypes    string
	flagReportMarkdown bool
	flagReportOut      string
	flagReportInsights bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render a shareable report of recent records",
	Long: `Render the selected categories' records from the trailing --days window
as an HTML document (or markdown with --markdown). With --insights the
report also includes a fresh AI summary, which needs GEMINI_API_KEY.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validDays(flagReportDays); err != nil {
			return err
		}
		categories, err := parseCategories(flagReportTypes)
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

		data := report.New(child, flagReportDays, categories,
			sleep, feed, diaper, activity, milestone, weight)

		if flagReportInsights {
			client := insights.NewClient(os.Getenv("GEMINI_API_KEY"), logger,
				insights.WithModel(os.Getenv("GEMINI_MODEL")),
				insights.WithCache(insights.NewMemoryCache(10*time.Minute)),
			)
			req := insights.NewRequest(child, flagReportDays, categories,
				sleep, feed, diaper, activity, milestone, weight)
			summary, err := client.Summarize(ctx, req)
			if err != nil {
				return fmt.Errorf("insights for report: %w", err)
			}
			data.Insights = summary
		}

		var out string
		if flagReportMarkdown {
			out, err = data.Markdown()
		} else {
			out, err = data.HTML()
		}
		if err != nil {
			return err
		}

		if flagReportOut != "" {
			if err := os.WriteFile(flagReportOut, []byte(out), 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			fmt.Println("Wrote", flagReportOut)
			return nil
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	reportCmd.Flags().IntVar(&flagReportDays, "days", 7, "window size in days")
	reportCmd.Flags().StringVar(&flagReportTypes, "types", "all", "comma list of categories, or 'all'")
	reportCmd.Flags().BoolVar(&flagReportMarkdown, "markdown", false, "emit markdown instead of HTML")
	reportCmd.Flags().StringVarP(&flagReportOut, "out", "o", "", "write to a file instead of stdout")
	reportCmd.Flags().BoolVar(&flagReportInsights, "insights", false, "include an AI summary")
	rootCmd.AddCommand(reportCmd)
}
