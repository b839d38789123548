package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "mecalin",
	Short:        "Learn to type with all ten fingers",
	Long:         "Mecalin is a terminal typing tutor that walks you through a course of lessons, one keystroke at a time.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, appFlags{})
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("db", "", "Path to SQLite database file (overrides MECALIN_DB)")
	flags.String("lang", "", "Course language or locale, e.g. us, es, es_ES.UTF-8 (overrides MECALIN_LANG)")
	flags.String("log-file", "", `Log file, "-" disables logging (overrides MECALIN_LOG_FILE)`)
	flags.String("log-level", "", "Log level: debug, info, warn, error (overrides MECALIN_LOG_LEVEL)")

	rootCmd.AddCommand(studyCmd)
	rootCmd.AddCommand(drillCmd)
	rootCmd.AddCommand(courseCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}
