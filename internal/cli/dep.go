package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/eve/internal/core"
)

var depCmd = &cobra.Command{
	Use:   "dep",
	Short: "Manage task dependencies",
	Long: `Manage the dependency edges between tasks.

A dependency "A depends on B" means B must be completed before A can be.
The graph is kept acyclic: adding an edge that would create a cycle is
rejected with the offending pair.`,
}

var depAddCmd = &cobra.Command{
	Use:   "add <task-id> <dependency-id>",
	Short: "Make one task depend on another",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}
		taskID, depID := args[0], args[1]

		if err := TaskMgr.AddDependency(taskID, depID); err != nil {
			var cycleErr *core.CycleError
			if errors.As(err, &cycleErr) {
				fmt.Fprintf(os.Stderr,
					"Cannot add dependency: %s already depends on %s (directly or transitively).\n",
					depID, taskID)
			}
			return fmt.Errorf("adding dependency: %w", err)
		}

		fmt.Printf("Task %s now depends on %s\n", taskID, depID)
		return nil
	},
}

var depRemoveCmd = &cobra.Command{
	Use:   "remove <task-id> <dependency-id>",
	Short: "Remove a dependency edge",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}
		taskID, depID := args[0], args[1]

		if err := TaskMgr.RemoveDependency(taskID, depID); err != nil {
			return fmt.Errorf("removing dependency: %w", err)
		}

		fmt.Printf("Task %s no longer depends on %s\n", taskID, depID)
		return nil
	},
}

var depShowCmd = &cobra.Command{
	Use:   "show <task-id>",
	Short: "Show what a task depends on and what depends on it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}
		task, err := TaskMgr.GetTask(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Task %s (%s)\n", task.ID, task.Title)
		if len(task.DependsOn) == 0 {
			fmt.Println("  Depends on: nothing")
		} else {
			fmt.Println("  Depends on:")
			for _, depID := range task.DependsOn {
				printTaskLine("    ", depID)
			}
		}

		dependents := TaskMgr.Dependents(task.ID)
		if len(dependents) == 0 {
			fmt.Println("  Blocks: nothing")
		} else {
			fmt.Println("  Blocks:")
			for _, depID := range dependents {
				printTaskLine("    ", depID)
			}
		}
		return nil
	},
}

// printTaskLine prints an id with its title and status when the task still
// exists, or marks the reference as dangling.
func printTaskLine(indent, id string) {
	task, err := TaskMgr.GetTask(id)
	if err != nil {
		fmt.Printf("%s%s (no longer exists)\n", indent, id)
		return
	}
	fmt.Printf("%s%s [%s] %s\n", indent, task.ID, task.Status, task.Title)
}

func init() {
	depAddCmd.ValidArgsFunction = completeTaskIDs()
	depRemoveCmd.ValidArgsFunction = completeTaskIDs()
	depShowCmd.ValidArgsFunction = completeTaskIDs()

	depCmd.AddCommand(depAddCmd)
	depCmd.AddCommand(depRemoveCmd)
	depCmd.AddCommand(depShowCmd)
	rootCmd.AddCommand(depCmd)
}
