package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Project and context tags share behavior: names are normalized (trimmed,
// inner whitespace collapsed, lowercased) before being attached, so
// "Deep  Work" and "deep work" are the same tag.

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage project tags on tasks",
}

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Manage context tags on tasks",
}

func newTagAddCmd(kind string, add func(id, name string) (string, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   fmt.Sprintf("add <task-id> <%s>", kind),
		Short: fmt.Sprintf("Attach a %s tag to a task", kind),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if TaskMgr == nil {
				return fmt.Errorf("task manager not initialized")
			}
			tag, err := add(args[0], args[1])
			if err != nil {
				return fmt.Errorf("adding %s: %w", kind, err)
			}
			fmt.Printf("Added %s %q to task %s\n", kind, tag, args[0])
			return nil
		},
	}
	cmd.ValidArgsFunction = completeTaskIDs()
	return cmd
}

func newTagRemoveCmd(kind string, remove func(id, name string) (string, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   fmt.Sprintf("remove <task-id> <%s>", kind),
		Short: fmt.Sprintf("Remove a %s tag from a task", kind),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if TaskMgr == nil {
				return fmt.Errorf("task manager not initialized")
			}
			tag, err := remove(args[0], args[1])
			if err != nil {
				return fmt.Errorf("removing %s: %w", kind, err)
			}
			fmt.Printf("Removed %s %q from task %s\n", kind, tag, args[0])
			return nil
		},
	}
	cmd.ValidArgsFunction = completeTaskIDs()
	return cmd
}

func init() {
	projectCmd.AddCommand(newTagAddCmd("project", func(id, name string) (string, error) {
		return TaskMgr.AddProject(id, name)
	}))
	projectCmd.AddCommand(newTagRemoveCmd("project", func(id, name string) (string, error) {
		return TaskMgr.RemoveProject(id, name)
	}))

	contextCmd.AddCommand(newTagAddCmd("context", func(id, name string) (string, error) {
		return TaskMgr.AddContext(id, name)
	}))
	contextCmd.AddCommand(newTagRemoveCmd("context", func(id, name string) (string, error) {
		return TaskMgr.RemoveContext(id, name)
	}))

	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(contextCmd)
}
