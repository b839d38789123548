package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/albanobattistella/mecalin/internal/progression"
)

var resetLesson int

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Move the saved position back to the start, or to a lesson",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctrl := progression.New(e.deps.Course, e.deps.Progress, nil, progression.WithLogger(e.log))
		if resetLesson > 0 {
			if err := ctrl.JumpToLesson(resetLesson); err != nil {
				return fmt.Errorf("lesson %d: %w", resetLesson, err)
			}
		} else {
			ctrl.Reset()
		}
		if err := e.deps.Progress.SetUint(context.Background(), progression.KeyCurrentStep, 1); err != nil {
			return fmt.Errorf("save step: %w", err)
		}

		lesson := ctrl.Lesson()
		e.log.Info("position reset", "lesson", lesson.ID)
		fmt.Fprintf(cmd.OutOrStdout(), "Next session starts at lesson %d: %s\n", lesson.ID, lesson.Title)
		return nil
	},
}

func init() {
	resetCmd.Flags().IntVar(&resetLesson, "lesson", 0, "Lesson to start from (default: the first lesson)")
}
