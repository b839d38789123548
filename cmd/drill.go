package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/albanobattistella/mecalin/internal/drill"
)

var drillLesson int

var drillCmd = &cobra.Command{
	Use:   "drill",
	Short: "Practice line by line without the full-screen interface",
	Long: "Reads one attempt per line from standard input. Press Enter on an " +
		"empty line to get past introductions. Progress is saved as in the tutor.",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		res, err := drill.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), drill.Options{
			Course:   e.deps.Course,
			Progress: e.deps.Progress,
			Events:   e.deps.Events,
			Log:      e.log,
			Lesson:   drillLesson,
		})
		if err != nil {
			return err
		}

		sum := res.Summary
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d steps, %d lessons, %d mistakes in %s\n",
			sum.StepsCompleted, sum.LessonsCompleted, sum.Mistakes, sum.Duration.Round(time.Second))
		return nil
	},
}

func init() {
	drillCmd.Flags().IntVar(&drillLesson, "lesson", 0, "Start at this lesson instead of the saved position")
}
