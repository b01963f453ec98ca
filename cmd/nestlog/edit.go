package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nestlog/nestlog/pkg/events"
	"github.com/nestlog/nestlog/pkg/store"
)

var editCmd = &cobra.Command{
	Use:   "edit <category> <doc-id>",
	Short: "Edit one record; only the flags you pass change",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := events.ParseCategory(args[0])
		if err != nil {
			return err
		}
		docID := args[1]

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

		changedTime := func(name, value string) (*time.Time, error) {
			if !cmd.Flags().Changed(name) {
				return nil, nil
			}
			t, err := parseWhen(value)
			if err != nil {
				return nil, err
			}
			return &t, nil
		}

		switch cat {
		case events.CategorySleep:
			var p store.SleepPatch
			if p.Start, err = changedTime("start", flagStart); err != nil {
				return err
			}
			if p.End, err = changedTime("end", flagEnd); err != nil {
				return err
			}
			if cmd.Flags().Changed("quality") {
				p.Quality = &flagQuality
			}
			err = s.UpdateSleep(ctx, child.ID, docID, p)
		case events.CategoryFeed:
			var p store.FeedPatch
			if p.DateTime, err = changedTime("at", flagWhen); err != nil {
				return err
			}
			if cmd.Flags().Changed("type") {
				t := events.FeedType(flagEditType)
				p.Type = &t
			}
			if cmd.Flags().Changed("oz") {
				p.Amount = &flagAmount
			}
			if cmd.Flags().Changed("minutes") {
				p.Duration = &flagDuration
			}
			if cmd.Flags().Changed("side") {
				side := events.Side(flagSide)
				p.Side = &side
			}
			if cmd.Flags().Changed("desc") {
				p.Description = &flagDesc
			}
			if cmd.Flags().Changed("notes") {
				p.Notes = &flagNotes
			}
			err = s.UpdateFeed(ctx, child.ID, docID, p)
		case events.CategoryDiaper:
			var p store.DiaperPatch
			if p.DateTime, err = changedTime("at", flagWhen); err != nil {
				return err
			}
			if cmd.Flags().Changed("type") {
				t := events.DiaperType(flagEditType)
				p.Type = &t
			}
			if cmd.Flags().Changed("pee") {
				a := events.DiaperAmount(flagPee)
				p.PeeAmount = &a
			}
			if cmd.Flags().Changed("poo") {
				a := events.DiaperAmount(flagPoo)
				p.PooAmount = &a
			}
			if cmd.Flags().Changed("poo-color") {
				c := events.PooColor(flagPooColor)
				p.PooColor = &c
			}
			if cmd.Flags().Changed("poo-consistency") {
				c := events.PooConsistency(flagPooCons)
				p.PooConsistency = &c
			}
			if cmd.Flags().Changed("rash") {
				p.HasRash = &flagRash
			}
			err = s.UpdateDiaper(ctx, child.ID, docID, p)
		case events.CategoryActivity:
			var p store.ActivityPatch
			if p.DateTime, err = changedTime("at", flagWhen); err != nil {
				return err
			}
			if cmd.Flags().Changed("type") {
				t := events.ActivityType(flagEditType)
				p.Type = &t
			}
			err = s.UpdateActivity(ctx, child.ID, docID, p)
		case events.CategoryMilestone:
			var p store.MilestonePatch
			if p.DateTime, err = changedTime("at", flagWhen); err != nil {
				return err
			}
			if cmd.Flags().Changed("type") {
				t := events.MilestoneType(flagEditType)
				p.Type = &t
			}
			err = s.UpdateMilestone(ctx, child.ID, docID, p)
		case events.CategoryWeight:
			var p store.WeightPatch
			if p.DateTime, err = changedTime("at", flagWhen); err != nil {
				return err
			}
			if cmd.Flags().Changed("lb") {
				p.Pounds = &flagPounds
			}
			if cmd.Flags().Changed("oz-part") {
				p.Ounces = &flagOunces
			}
			err = s.UpdateWeight(ctx, child.ID, docID, p)
		}
		if err != nil {
			return err
		}
		fmt.Printf("Updated %s record %s\n", cat, docID)
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <category> <doc-id>",
	Short: "Delete one record",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := events.ParseCategory(args[0])
		if err != nil {
			return err
		}
		docID := args[1]

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
			err = s.DeleteSleep(ctx, child.ID, docID)
		case events.CategoryFeed:
			err = s.DeleteFeed(ctx, child.ID, docID)
		case events.CategoryDiaper:
			err = s.DeleteDiaper(ctx, child.ID, docID)
		case events.CategoryActivity:
			err = s.DeleteActivity(ctx, child.ID, docID)
		case events.CategoryMilestone:
			err = s.DeleteMilestone(ctx, child.ID, docID)
		case events.CategoryWeight:
			err = s.DeleteWeight(ctx, child.ID, docID)
		}
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %s record %s\n", cat, docID)
		return nil
	},
}

var flagEditType string

func init() {
	editCmd.Flags().StringVar(&flagStart, "start", "", "new sleep start")
	editCmd.Flags().StringVar(&flagEnd, "end", "", "new sleep end")
	editCmd.Flags().IntVar(&flagQuality, "quality", 0, "new sleep quality 1-5")
	editCmd.Flags().StringVar(&flagWhen, "at", "", "new record time")
	editCmd.Flags().StringVar(&flagEditType, "type", "", "new type")
	editCmd.Flags().Float64Var(&flagAmount, "oz", 0, "new bottle amount")
	editCmd.Flags().IntVar(&flagDuration, "minutes", 0, "new nursing duration")
	editCmd.Flags().StringVar(&flagSide, "side", "", "new nursing side")
	editCmd.Flags().StringVar(&flagDesc, "desc", "", "new description")
	editCmd.Flags().StringVar(&flagNotes, "notes", "", "new notes")
	editCmd.Flags().StringVar(&flagPee, "pee", "", "new pee amount")
	editCmd.Flags().StringVar(&flagPoo, "poo", "", "new poo amount")
	editCmd.Flags().StringVar(&flagPooColor, "poo-color", "", "new poo color")
	editCmd.Flags().StringVar(&flagPooCons, "poo-consistency", "", "new poo consistency")
	editCmd.Flags().BoolVar(&flagRash, "rash", false, "diaper rash seen")
	editCmd.Flags().IntVar(&flagPounds, "lb", 0, "new pounds part")
	editCmd.Flags().IntVar(&flagOunces, "oz-part", 0, "new ounces part")

	rootCmd.AddCommand(editCmd, rmCmd)
}
