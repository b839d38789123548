package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/albanobattistella/mecalin/internal/progression"
	"github.com/albanobattistella/mecalin/internal/screens/history"
	"github.com/albanobattistella/mecalin/internal/store"
)

var statsLimit int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		counts, err := e.deps.Events.CountByKind(ctx)
		if err != nil {
			return fmt.Errorf("count progress: %w", err)
		}
		lesson, _, err := e.deps.Progress.Uint(ctx, progression.KeyCurrentLesson)
		if err != nil {
			return fmt.Errorf("read position: %w", err)
		}
		if lesson == 0 {
			lesson = 1
		}

		fmt.Fprintf(out, "Course:             %s\n", e.deps.Course.Language())
		fmt.Fprintf(out, "Current lesson:     %d of %d\n", lesson, e.deps.Course.Len())
		fmt.Fprintf(out, "Steps completed:    %d\n", counts[store.KindStepCompleted])
		fmt.Fprintf(out, "Lessons completed:  %d\n", counts[store.KindLessonCompleted])
		fmt.Fprintf(out, "Courses completed:  %d\n", counts[store.KindCourseCompleted])

		records, err := history.Load(ctx, e.deps.Events, statsLimit*2)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}

		fmt.Fprintln(out, "\nRecent sessions:")
		for _, r := range records {
			duration := "in progress"
			if r.Ended {
				duration = fmt.Sprintf("%d:%02d", r.DurationSecs/60, r.DurationSecs%60)
			}
			fmt.Fprintf(out, "  %s  [%s]  %-11s  %3d steps  %3d mistakes\n",
				r.Started.Local().Format("2006-01-02 15:04"), r.Language, duration, r.Steps(), r.Mistakes())
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().IntVar(&statsLimit, "sessions", 10, "Number of recent sessions to show")
}
