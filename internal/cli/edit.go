package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/eve/internal/core"
	"github.com/valter-silva-au/eve/pkg/models"
)

var editCmd = &cobra.Command{
	Use:   "edit <task-id>",
	Short: "Edit fields of an existing task",
	Long: `Edit basic fields of a task. Only flags you pass are changed.

Pass --due "" (or --due -) to clear the due date. Status changes go
through 'eve complete' and 'eve undo'; dependency changes go through
'eve dep'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}

		var updates core.TaskUpdate
		if cmd.Flags().Changed("title") {
			v, _ := cmd.Flags().GetString("title")
			updates.Title = &v
		}
		if cmd.Flags().Changed("description") {
			v, _ := cmd.Flags().GetString("description")
			updates.Description = &v
		}
		if cmd.Flags().Changed("due") {
			v, _ := cmd.Flags().GetString("due")
			updates.DueDate = &v
		}
		if cmd.Flags().Changed("priority") {
			v, _ := cmd.Flags().GetString("priority")
			p := models.Priority(v)
			updates.Priority = &p
		}
		if cmd.Flags().Changed("category") {
			v, _ := cmd.Flags().GetString("category")
			updates.Category = &v
		}
		if cmd.Flags().Changed("quadrant") {
			v, _ := cmd.Flags().GetString("quadrant")
			q := models.Quadrant(v)
			updates.Quadrant = &q
		}

		task, err := TaskMgr.UpdateTask(args[0], updates)
		if err != nil {
			return fmt.Errorf("editing task: %w", err)
		}

		fmt.Printf("Updated task %s\n", task.ID)
		fmt.Print(renderTaskDetail(task))
		return nil
	},
}

func init() {
	editCmd.Flags().StringP("title", "t", "", "New title")
	editCmd.Flags().StringP("description", "d", "", "New description")
	editCmd.Flags().String("due", "", "New due date (YYYY-MM-DD), empty to clear")
	editCmd.Flags().StringP("priority", "p", "", "New priority (high, medium, low)")
	editCmd.Flags().StringP("category", "c", "", "New category")
	editCmd.Flags().StringP("quadrant", "q", "", "New quadrant (Q1..Q4), empty to clear")
	_ = editCmd.RegisterFlagCompletionFunc("priority", completePriorities)
	_ = editCmd.RegisterFlagCompletionFunc("quadrant", completeQuadrants)
	editCmd.ValidArgsFunction = completeTaskIDs()

	rootCmd.AddCommand(editCmd)
}
