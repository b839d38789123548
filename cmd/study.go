package cmd

import (
	"github.com/spf13/cobra"

	"github.com/albanobattistella/mecalin/internal/app"
)

type appFlags struct {
	lesson      int
	skipWelcome bool
}

var studyFlags appFlags

var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "Open the typing tutor",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, studyFlags)
	},
}

func init() {
	studyCmd.Flags().IntVar(&studyFlags.lesson, "lesson", 0, "Start a session at this lesson")
	studyCmd.Flags().BoolVar(&studyFlags.skipWelcome, "no-welcome", false, "Skip the welcome animation")
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command, flags appFlags) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	return app.Run(app.Options{
		Deps:        e.deps,
		Version:     version,
		SkipWelcome: flags.skipWelcome,
		Lesson:      flags.lesson,
	})
}
