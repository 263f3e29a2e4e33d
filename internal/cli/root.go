// Package cli contains the eve command-line interface. Commands talk to
// the lifecycle controller through package-level service variables wired
// by the app package before Execute runs.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "eve",
	Short: "eve - personal task manager with dependency tracking",
	Long: `eve is a personal task manager built around a task dependency graph.

Tasks can depend on other tasks; eve guarantees the graph stays acyclic,
blocks completion while prerequisites are open, and refuses deletions and
reopenings that would leave the graph inconsistent.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("eve %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
