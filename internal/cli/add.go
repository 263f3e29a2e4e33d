package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/eve/internal/core"
	"github.com/valter-silva-au/eve/pkg/models"
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new task",
	Long: `Add a new task with the given title.

Dependencies declared with --depends-on are validated before the task is
stored: every referenced task must exist and the resulting graph must stay
acyclic. If validation fails, nothing is created.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}

		descFlag, _ := cmd.Flags().GetString("description")
		dueFlag, _ := cmd.Flags().GetString("due")
		priorityFlag, _ := cmd.Flags().GetString("priority")
		categoryFlag, _ := cmd.Flags().GetString("category")
		quadrantFlag, _ := cmd.Flags().GetString("quadrant")
		dependsFlag, _ := cmd.Flags().GetStringSlice("depends-on")
		projectsFlag, _ := cmd.Flags().GetStringSlice("project")
		contextsFlag, _ := cmd.Flags().GetStringSlice("context")

		task, err := TaskMgr.AddTask(core.AddTaskOpts{
			Title:       args[0],
			Description: descFlag,
			DueDate:     dueFlag,
			Priority:    models.Priority(priorityFlag),
			Category:    categoryFlag,
			Quadrant:    models.Quadrant(quadrantFlag),
			DependsOn:   dependsFlag,
			Projects:    projectsFlag,
			Contexts:    contextsFlag,
		})
		if err != nil {
			return fmt.Errorf("adding task: %w", err)
		}

		fmt.Printf("Created task %s\n", task.ID)
		fmt.Printf("  Title:    %s\n", task.Title)
		fmt.Printf("  Priority: %s\n", task.Priority)
		if task.DueDate != nil {
			fmt.Printf("  Due:      %s\n", task.DueDate)
		}
		if len(task.DependsOn) > 0 {
			fmt.Printf("  Depends:  %v\n", task.DependsOn)
		}
		return nil
	},
}

// completePriorities returns valid priority values for shell completion.
func completePriorities(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{
		"high\tDo this first",
		"medium\tNormal priority",
		"low\tWhenever there is time",
	}, cobra.ShellCompDirectiveNoFileComp
}

// completeQuadrants returns valid Eisenhower quadrant values for shell
// completion.
func completeQuadrants(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{
		"Q1\tUrgent and important",
		"Q2\tImportant, not urgent",
		"Q3\tUrgent, not important",
		"Q4\tNeither urgent nor important",
	}, cobra.ShellCompDirectiveNoFileComp
}

func init() {
	addCmd.Flags().StringP("description", "d", "", "Longer task description")
	addCmd.Flags().String("due", "", "Due date (YYYY-MM-DD)")
	addCmd.Flags().StringP("priority", "p", "", "Priority: high, medium, or low")
	addCmd.Flags().StringP("category", "c", "", "Free-form category label")
	addCmd.Flags().StringP("quadrant", "q", "", "Eisenhower quadrant: Q1, Q2, Q3, or Q4")
	addCmd.Flags().StringSlice("depends-on", nil, "Comma-separated ids of prerequisite tasks")
	addCmd.Flags().StringSlice("project", nil, "Project tags to attach")
	addCmd.Flags().StringSlice("context", nil, "Context tags to attach")
	_ = addCmd.RegisterFlagCompletionFunc("priority", completePriorities)
	_ = addCmd.RegisterFlagCompletionFunc("quadrant", completeQuadrants)

	rootCmd.AddCommand(addCmd)
}
