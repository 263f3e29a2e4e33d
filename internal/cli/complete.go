package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/eve/internal/core"
	"github.com/valter-silva-au/eve/pkg/models"
)

var completeCmd = &cobra.Command{
	Use:   "complete [task-id]",
	Short: "Mark a task as complete",
	Long: `Mark a task as complete.

A task can only be completed once every task it depends on is itself
complete. Dependency references to tasks that no longer exist are cleaned
up automatically and reported. Without an argument, an interactive picker
lists the pending tasks.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}

		id, err := taskIDFromArgsOrPicker(args, "Complete which task?", models.StatusPending)
		if err != nil {
			return err
		}

		result, err := TaskMgr.Complete(id)
		if err != nil {
			var blocked *core.BlockedError
			if errors.As(err, &blocked) {
				fmt.Fprintf(os.Stderr, "Cannot complete %s: waiting on incomplete dependencies.\n", id)
				for _, b := range blocked.Blocking {
					fmt.Fprintf(os.Stderr, "  - %s\n", b)
				}
			}
			return fmt.Errorf("completing task: %w", err)
		}

		reportPruned(result.Pruned, id)
		if result.NoOp {
			fmt.Printf("Task %s is already complete.\n", id)
			return nil
		}
		fmt.Printf("Completed task %s (%s)\n", result.Task.ID, result.Task.Title)
		return nil
	},
}

var undoCmd = &cobra.Command{
	Use:   "undo [task-id]",
	Short: "Reopen a completed task",
	Long: `Reopen a completed task, returning it to pending.

Reopening is refused while any completed task still depends on this one,
since that task's completion relied on this one being done. Without an
argument, an interactive picker lists the completed tasks.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}

		id, err := taskIDFromArgsOrPicker(args, "Reopen which task?", models.StatusComplete)
		if err != nil {
			return err
		}

		result, err := TaskMgr.Uncomplete(id)
		if err != nil {
			var inval *core.WouldInvalidateDependentsError
			if errors.As(err, &inval) {
				fmt.Fprintf(os.Stderr, "Cannot reopen %s: completed tasks depend on it.\n", id)
				for _, d := range inval.Dependents {
					fmt.Fprintf(os.Stderr, "  - %s\n", d)
				}
				fmt.Fprintf(os.Stderr, "Reopen those tasks first.\n")
			}
			return fmt.Errorf("reopening task: %w", err)
		}

		if result.NoOp {
			fmt.Printf("Task %s is already pending.\n", id)
			return nil
		}
		fmt.Printf("Reopened task %s (%s)\n", result.Task.ID, result.Task.Title)
		return nil
	},
}

// taskIDFromArgsOrPicker returns the id from args, or runs the picker over
// tasks in the given status when no argument was given.
func taskIDFromArgsOrPicker(args []string, title string, status models.Status) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	tasks := TaskMgr.ListTasks(core.TaskFilter{Status: status}, core.SortDefault)
	return pickTask(title, tasks)
}

// reportPruned prints a warning for each dependency reference that was
// cleaned up because its target no longer exists.
func reportPruned(pruned []string, taskID string) {
	for _, depID := range pruned {
		fmt.Fprintf(os.Stderr, "Warning: removed reference to deleted task %s from %s\n", depID, taskID)
	}
}

func init() {
	completeCmd.ValidArgsFunction = completeTaskIDs(models.StatusComplete)
	undoCmd.ValidArgsFunction = completeTaskIDs(models.StatusPending)

	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(undoCmd)
}
