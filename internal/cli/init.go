package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/eve/internal/core"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default .eveconfig to the current data directory",
	Long: `Write a .eveconfig file with default settings to the data directory.

The file controls the storage file name, default priority and category
for new tasks, and the task id format. Refuses to overwrite an existing
config.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := core.WriteDefaultConfig(BasePath)
		if err != nil {
			return fmt.Errorf("initializing config: %w", err)
		}
		fmt.Printf("Wrote default config to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
