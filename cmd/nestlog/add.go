package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nestlog/nestlog/pkg/events"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a care event",
}

var (
	flagWhen     string
	flagStart    string
	flagEnd      string
	flagQuality  int
	flagFeedType string
	flagAmount   float64
	flagDuration int
	flagSide     string
	flagDesc     string
	flagNotes    string
	flagDiaper   string
	flagPee      string
	flagPoo      string
	flagPooColor string
	flagPooCons  string
	flagRash     bool
	flagPounds   int
	flagOunces   int
)

var addSleepCmd = &cobra.Command{
	Use:   "sleep",
	Short: "Log a sleep session",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		child, err := resolveChild(cmd.Context(), s)
		if err != nil {
			return err
		}

		start, err := parseWhen(flagStart)
		if err != nil {
			return err
		}
		end, err := parseWhen(flagEnd)
		if err != nil {
			return err
		}
		if !end.After(start) {
			return fmt.Errorf("sleep end %s is not after start %s", end.Format("15:04"), start.Format("15:04"))
		}

		rec, err := s.AddSleep(cmd.Context(), events.Sleep{
			ChildID: child.ID, Start: start, End: end, Quality: flagQuality,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Logged sleep %s-%s (%.1fh) for %s [%s]\n",
			start.Format("15:04"), end.Format("15:04"), rec.Hours(), child.FirstName, rec.DocID)
		return nil
	},
}

var addFeedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Log a feeding",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		child, err := resolveChild(cmd.Context(), s)
		if err != nil {
			return err
		}

		when, err := parseWhen(flagWhen)
		if err != nil {
			return err
		}
		rec, err := s.AddFeed(cmd.Context(), events.Feed{
			ChildID:     child.ID,
			DateTime:    when,
			Type:        events.FeedType(flagFeedType),
			Amount:      flagAmount,
			Duration:    flagDuration,
			Side:        events.Side(flagSide),
			Description: flagDesc,
			Notes:       flagNotes,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Logged %s feed at %s for %s [%s]\n",
			rec.Type, when.Format("15:04"), child.FirstName, rec.DocID)
		return nil
	},
}

var addDiaperCmd = &cobra.Command{
	Use:   "diaper",
	Short: "Log a diaper change",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		child, err := resolveChild(cmd.Context(), s)
		if err != nil {
			return err
		}

		when, err := parseWhen(flagWhen)
		if err != nil {
			return err
		}
		rec, err := s.AddDiaper(cmd.Context(), events.Diaper{
			ChildID:        child.ID,
			DateTime:       when,
			Type:           events.DiaperType(flagDiaper),
			PeeAmount:      events.DiaperAmount(flagPee),
			PooAmount:      events.DiaperAmount(flagPoo),
			PooColor:       events.PooColor(flagPooColor),
			PooConsistency: events.PooConsistency(flagPooCons),
			HasRash:        flagRash,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Logged %s diaper at %s for %s [%s]\n",
			rec.Type, when.Format("15:04"), child.FirstName, rec.DocID)
		return nil
	},
}

var addActivityCmd = &cobra.Command{
	Use:   "activity <type>",
	Short: "Log an activity (bath, tummy time, story time, skin to skin, brush teeth)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		child, err := resolveChild(cmd.Context(), s)
		if err != nil {
			return err
		}

		when, err := parseWhen(flagWhen)
		if err != nil {
			return err
		}
		rec, err := s.AddActivity(cmd.Context(), events.Activity{
			ChildID: child.ID, DateTime: when, Type: events.ActivityType(joinArgs(args)),
		})
		if err != nil {
			return err
		}
		fmt.Printf("Logged %s at %s for %s [%s]\n", rec.Type, when.Format("15:04"), child.FirstName, rec.DocID)
		return nil
	},
}

var addMilestoneCmd = &cobra.Command{
	Use:   "milestone <type>",
	Short: "Log a milestone (smiling, rolling over, sitting up, crawling, walking)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		child, err := resolveChild(cmd.Context(), s)
		if err != nil {
			return err
		}

		when, err := parseWhen(flagWhen)
		if err != nil {
			return err
		}
		rec, err := s.AddMilestone(cmd.Context(), events.Milestone{
			ChildID: child.ID, DateTime: when, Type: events.MilestoneType(joinArgs(args)),
		})
		if err != nil {
			return err
		}
		fmt.Printf("Logged milestone %q at %s for %s [%s]\n",
			rec.Type, when.Format("Jan 2"), child.FirstName, rec.DocID)
		return nil
	},
}

var addWeightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Log a weight measurement",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		child, err := resolveChild(cmd.Context(), s)
		if err != nil {
			return err
		}

		when, err := parseWhen(flagWhen)
		if err != nil {
			return err
		}
		rec, err := s.AddWeight(cmd.Context(), events.Weight{
			ChildID: child.ID, DateTime: when, Pounds: flagPounds, Ounces: flagOunces,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Logged weight %s for %s [%s]\n", rec.Value(), child.FirstName, rec.DocID)
		return nil
	},
}

func joinArgs(args []string) string {
	return strings.Join(args, " ")
}

func init() {
	addSleepCmd.Flags().StringVar(&flagStart, "start", "", "sleep start (15:04 or 2006-01-02 15:04)")
	addSleepCmd.Flags().StringVar(&flagEnd, "end", "now", "sleep end")
	addSleepCmd.Flags().IntVar(&flagQuality, "quality", 3, "sleep quality 1-5")
	_ = addSleepCmd.MarkFlagRequired("start")

	addFeedCmd.Flags().StringVar(&flagWhen, "at", "now", "feed time")
	addFeedCmd.Flags().StringVar(&flagFeedType, "type", "nursing", "nursing, bottle or solid")
	addFeedCmd.Flags().Float64Var(&flagAmount, "oz", 0, "bottle amount in ounces")
	addFeedCmd.Flags().IntVar(&flagDuration, "minutes", 0, "nursing duration in minutes")
	addFeedCmd.Flags().StringVar(&flagSide, "side", "", "nursing side, left or right")
	addFeedCmd.Flags().StringVar(&flagDesc, "desc", "", "what was eaten (solids)")
	addFeedCmd.Flags().StringVar(&flagNotes, "notes", "", "free-form notes")

	addDiaperCmd.Flags().StringVar(&flagWhen, "at", "now", "change time")
	addDiaperCmd.Flags().StringVar(&flagDiaper, "type", "", "pee, poo, mixed or dry")
	addDiaperCmd.Flags().StringVar(&flagPee, "pee", "", "pee amount: little, medium or big")
	addDiaperCmd.Flags().StringVar(&flagPoo, "poo", "", "poo amount: little, medium or big")
	addDiaperCmd.Flags().StringVar(&flagPooColor, "poo-color", "", "yellow, brown, black, green or red")
	addDiaperCmd.Flags().StringVar(&flagPooCons, "poo-consistency", "", "solid, loose, runny, mucousy, hard, pebbles or diarrhea")
	addDiaperCmd.Flags().BoolVar(&flagRash, "rash", false, "diaper rash seen")
	_ = addDiaperCmd.MarkFlagRequired("type")

	addActivityCmd.Flags().StringVar(&flagWhen, "at", "now", "activity time")
	addMilestoneCmd.Flags().StringVar(&flagWhen, "at", "now", "milestone time")

	addWeightCmd.Flags().StringVar(&flagWhen, "at", "now", "measurement time")
	addWeightCmd.Flags().IntVar(&flagPounds, "lb", 0, "pounds part")
	addWeightCmd.Flags().IntVar(&flagOunces, "oz-part", 0, "ounces part")
	_ = addWeightCmd.MarkFlagRequired("lb")

	addCmd.AddCommand(addSleepCmd, addFeedCmd, addDiaperCmd, addActivityCmd, addMilestoneCmd, addWeightCmd)
	rootCmd.AddCommand(addCmd)
}
