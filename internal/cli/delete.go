package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/eve/internal/core"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete <task-id>",
	Short: "Delete a task",
	Long: `Delete a task permanently.

Deletion is refused while any other task still depends on this one,
regardless of that task's status; remove those dependency edges first.
Asks for confirmation unless --yes is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}
		id := args[0]

		task, err := TaskMgr.GetTask(id)
		if err != nil {
			return err
		}

		if !deleteYes {
			fmt.Printf("Delete task %s (%q)? [y/N]: ", task.ID, task.Title)
			reader := bufio.NewReader(os.Stdin)
			input, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("reading confirmation: %w", err)
			}
			switch strings.ToLower(strings.TrimSpace(input)) {
			case "y", "yes":
			default:
				fmt.Println("Cancelled.")
				return nil
			}
		}

		if err := TaskMgr.DeleteTask(id); err != nil {
			var depErr *core.HasDependentsError
			if errors.As(err, &depErr) {
				fmt.Fprintf(os.Stderr, "Cannot delete %s: other tasks still depend on it.\n", id)
				for _, d := range depErr.Dependents {
					fmt.Fprintf(os.Stderr, "  - %s\n", d)
				}
				fmt.Fprintf(os.Stderr, "Remove those edges first with 'eve dep remove <id> %s'.\n", id)
			}
			return fmt.Errorf("deleting task: %w", err)
		}

		fmt.Printf("Deleted task %s\n", id)
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompt")
	deleteCmd.ValidArgsFunction = completeTaskIDs()

	rootCmd.AddCommand(deleteCmd)
}
