package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/eve/internal/core"
	"github.com/valter-silva-au/eve/pkg/models"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks with optional filters",
	Long: `List tasks, optionally filtered and sorted.

Filters combine with AND logic: --status pending --due overdue shows only
pending tasks whose due date has passed. The default sort is priority
first, then due date with undated tasks last.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}

		statusFlag, _ := cmd.Flags().GetString("status")
		priorityFlag, _ := cmd.Flags().GetString("priority")
		categoryFlag, _ := cmd.Flags().GetString("category")
		dueFlag, _ := cmd.Flags().GetString("due")
		quadrantFlag, _ := cmd.Flags().GetString("quadrant")
		unclassifiedFlag, _ := cmd.Flags().GetBool("unclassified")
		projectFlag, _ := cmd.Flags().GetString("project")
		contextFlag, _ := cmd.Flags().GetString("context")
		sortFlag, _ := cmd.Flags().GetString("sort")

		filter := core.TaskFilter{
			Status:       models.Status(statusFlag),
			Priority:     models.Priority(priorityFlag),
			Category:     categoryFlag,
			Due:          core.DueWindow(dueFlag),
			Quadrant:     models.Quadrant(quadrantFlag),
			Unclassified: unclassifiedFlag,
			Project:      projectFlag,
			Context:      contextFlag,
		}

		tasks := TaskMgr.ListTasks(filter, core.SortKey(sortFlag))
		if len(tasks) == 0 {
			fmt.Println("No tasks found.")
			return nil
		}

		fmt.Print(renderTaskTable(tasks))
		fmt.Printf("\n%d task(s)\n", len(tasks))
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <task-id>",
	Short: "Show full details for a single task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}
		task, err := TaskMgr.GetTask(args[0])
		if err != nil {
			return err
		}
		fmt.Print(renderTaskDetail(task))

		if dependents := TaskMgr.Dependents(task.ID); len(dependents) > 0 {
			fmt.Printf("  Blocks:   %v\n", dependents)
		}
		return nil
	},
}

// completeTaskIDs returns a completion function listing task ids, skipping
// any of the given statuses.
func completeTaskIDs(skip ...models.Status) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		if TaskMgr == nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		skipSet := make(map[models.Status]bool, len(skip))
		for _, s := range skip {
			skipSet[s] = true
		}
		var out []string
		for _, t := range TaskMgr.GetAllTasks() {
			if skipSet[t.Status] {
				continue
			}
			out = append(out, fmt.Sprintf("%s\t%s", t.ID, t.Title))
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}

// completeStatuses returns valid status values for shell completion.
func completeStatuses(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{
		"pending\tNot yet done",
		"complete\tDone",
	}, cobra.ShellCompDirectiveNoFileComp
}

func init() {
	listCmd.Flags().StringP("status", "s", "", "Filter by status (pending, complete)")
	listCmd.Flags().StringP("priority", "p", "", "Filter by priority (high, medium, low)")
	listCmd.Flags().StringP("category", "c", "", "Filter by category")
	listCmd.Flags().String("due", "", "Filter by due window (overdue, today, upcoming)")
	listCmd.Flags().StringP("quadrant", "q", "", "Filter by Eisenhower quadrant (Q1..Q4)")
	listCmd.Flags().Bool("unclassified", false, "Show only tasks with no quadrant")
	listCmd.Flags().String("project", "", "Filter by project tag")
	listCmd.Flags().String("context", "", "Filter by context tag")
	listCmd.Flags().String("sort", "", "Sort order (due, priority, quadrant, created)")
	_ = listCmd.RegisterFlagCompletionFunc("status", completeStatuses)
	_ = listCmd.RegisterFlagCompletionFunc("priority", completePriorities)
	_ = listCmd.RegisterFlagCompletionFunc("quadrant", completeQuadrants)

	showCmd.ValidArgsFunction = completeTaskIDs()

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
}
