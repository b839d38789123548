package cmd

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/albanobattistella/mecalin/internal/keyboard"
	"github.com/albanobattistella/mecalin/internal/lessons"
)

var courseCmd = &cobra.Command{
	Use:   "course",
	Short: "Inspect the built-in courses",
}

var courseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available course languages",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		layouts := keyboard.Codes()
		for _, code := range lessons.Languages() {
			c, err := lessons.Load(code)
			if err != nil {
				return fmt.Errorf("load course %s: %w", code, err)
			}
			layout := "no keyboard layout"
			if slices.Contains(layouts, code) {
				layout = "keyboard " + keyboard.LoadOrDefault(code).Name
			}
			fmt.Fprintf(out, "%-4s %3d lessons  %s\n", code, c.Len(), layout)
		}
		return nil
	},
}

var courseShowCmd = &cobra.Command{
	Use:   "show <language>",
	Short: "Print the lessons of a course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := lessons.Load(args[0])
		if errors.Is(err, lessons.ErrUnsupportedLanguage) {
			return fmt.Errorf("%w (available: %v)", err, lessons.Languages())
		}
		if err != nil {
			return err
		}
		printCourse(cmd, c)
		return nil
	},
}

var courseValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a course file against the dataset schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read course file: %w", err)
		}
		c, err := lessons.Parse(raw, "")
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		steps := 0
		for _, l := range c.Lessons() {
			steps += l.TypingSteps()
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok, %d lessons, %d typing steps\n", args[0], c.Len(), steps)
		return nil
	},
}

func printCourse(cmd *cobra.Command, c *lessons.Course) {
	out := cmd.OutOrStdout()
	for _, l := range c.Lessons() {
		kind := fmt.Sprintf("%d steps", l.TypingSteps())
		if l.Introduction {
			kind = "introduction"
		}
		fmt.Fprintf(out, "%3d. %-40s %s\n", l.ID, l.Title, kind)
	}
}

func init() {
	courseCmd.AddCommand(courseListCmd)
	courseCmd.AddCommand(courseShowCmd)
	courseCmd.AddCommand(courseValidateCmd)
}
