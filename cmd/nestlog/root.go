package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nestlog/nestlog/pkg/events"
	"github.com/nestlog/nestlog/pkg/store"
)

var (
	flagDB      string
	flagVerbose bool
	flagChild   string
	flagNoCache bool

	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "nestlog",
	Short: "Track a baby's sleep, feeds, diapers, activities, milestones and weight",
	Long: `nestlog keeps a local log of infant care events and turns it into
day-by-day charts, lists, shareable reports and AI-written summaries.

All data stays in a local SQLite database (default ~/.nestlog/nestlog.db,
override with --db or NESTLOG_DB).`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if flagVerbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	},
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", store.DefaultPath(), "path to the database file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagChild, "child", "", "child id (optional when only one child exists)")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "disable the in-memory record cache")
}

func openStore() (*store.Store, error) {
	var opts []store.Option
	if flagNoCache {
		opts = append(opts, store.WithoutCache())
	}
	return store.Open(flagDB, logger, opts...)
}

// resolveChild returns the child addressed by --child, or the only child
// when the flag is unset and exactly one profile exists.
func resolveChild(ctx context.Context, s *store.Store) (events.Child, error) {
	if flagChild != "" {
		return s.Child(ctx, flagChild)
	}
	children, err := s.Children(ctx)
	if err != nil {
		return events.Child{}, err
	}
	switch len(children) {
	case 0:
		return events.Child{}, fmt.Errorf("no children yet, add one with 'nestlog child add'")
	case 1:
		return children[0], nil
	default:
		return events.Child{}, fmt.Errorf("%d children found, pick one with --child", len(children))
	}
}

// parseWhen accepts "now", a bare clock time (today), or a full local
// timestamp.
func parseWhen(s string) (time.Time, error) {
	if s == "" || s == "now" {
		return time.Now(), nil
	}
	if t, err := time.ParseInLocation("15:04", s, time.Local); err == nil {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, time.Local), nil
	}
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time %q (use 15:04, 2006-01-02 15:04 or 2006-01-02)", s)
}

// parseCategories splits a comma list like "sleep,feed" into categories.
func parseCategories(s string) ([]events.Category, error) {
	if s == "" || s == "all" {
		return events.Categories, nil
	}
	var out []events.Category
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		cat, err := events.ParseCategory(part)
		if err != nil {
			return nil, err
		}
		out = append(out, cat)
	}
	return out, nil
}

func validDays(days int) error {
	if days < 1 {
		return fmt.Errorf("--days must be at least 1, got %d", days)
	}
	return nil
}
