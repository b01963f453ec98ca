package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nestlog/nestlog/pkg/events"
)

var childCmd = &cobra.Command{
	Use:   "child",
	Short: "Manage child profiles",
}

var (
	flagChildFirst  string
	flagChildLast   string
	flagChildDOB    string
	flagChildSex    string
	flagBirthPounds int
	flagBirthOunces int
)

var childAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a child profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		dob, err := parseWhen(flagChildDOB)
		if err != nil {
			return err
		}
		child := events.Child{
			FirstName: flagChildFirst,
			LastName:  flagChildLast,
			DOB:       dob,
			Sex:       events.Sex(flagChildSex),
		}
		if cmd.Flags().Changed("birth-lb") || cmd.Flags().Changed("birth-oz") {
			child.Birth = &events.WeightValue{Pounds: flagBirthPounds, Ounces: flagBirthOunces}
		}

		added, err := s.AddChild(cmd.Context(), child)
		if err != nil {
			return err
		}
		fmt.Printf("Added %s %s (%s)\n", added.FirstName, added.LastName, added.ID)
		if added.Birth != nil {
			fmt.Printf("Recorded birth weight %s\n", added.Birth)
		}
		return nil
	},
}

var childListCmd = &cobra.Command{
	Use:   "list",
	Short: "List child profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		children, err := s.Children(cmd.Context())
		if err != nil {
			return err
		}
		if len(children) == 0 {
			fmt.Println("No children yet, add one with 'nestlog child add'")
			return nil
		}
		for _, c := range children {
			line := fmt.Sprintf("%s  %s %s  born %s  %s",
				c.ID, c.FirstName, c.LastName, c.DOB.Format("2006-01-02"), c.Sex)
			if c.Birth != nil {
				line += fmt.Sprintf("  birth %s", c.Birth)
			}
			fmt.Println(line)
		}
		return nil
	},
}

var childRmCmd = &cobra.Command{
	Use:   "rm <child-id>",
	Short: "Remove a child profile and all of its records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.DeleteChild(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Removed", args[0])
		return nil
	},
}

func init() {
	childAddCmd.Flags().StringVar(&flagChildFirst, "first", "", "first name")
	childAddCmd.Flags().StringVar(&flagChildLast, "last", "", "last name")
	childAddCmd.Flags().StringVar(&flagChildDOB, "dob", "", "date of birth (2006-01-02)")
	childAddCmd.Flags().StringVar(&flagChildSex, "sex", "", "male or female")
	childAddCmd.Flags().IntVar(&flagBirthPounds, "birth-lb", 0, "birth weight, pounds part")
	childAddCmd.Flags().IntVar(&flagBirthOunces, "birth-oz", 0, "birth weight, ounces part")
	_ = childAddCmd.MarkFlagRequired("first")
	_ = childAddCmd.MarkFlagRequired("dob")

	childCmd.AddCommand(childAddCmd, childListCmd, childRmCmd)
	rootCmd.AddCommand(childCmd)
}
