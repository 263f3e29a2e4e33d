package cli

import (
	"fmt"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/valter-silva-au/eve/internal/core"
	"github.com/valter-silva-au/eve/internal/storage"
)

// testIDGen implements core.TaskIDGenerator with a plain counter.
type testIDGen struct {
	n int
}

func (g *testIDGen) GenerateTaskID() (string, error) {
	g.n++
	return fmt.Sprintf("TASK-%05d", g.n), nil
}

func setupCLI(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	store := storage.NewFileTaskStore(dir, "tasks.json")
	mgr, err := core.NewTaskManager(store, &testIDGen{}, nil, core.ManagerDefaults{})
	if err != nil {
		t.Fatalf("NewTaskManager failed: %v", err)
	}

	prevMgr, prevPath := TaskMgr, BasePath
	TaskMgr = mgr
	BasePath = dir
	t.Cleanup(func() {
		TaskMgr = prevMgr
		BasePath = prevPath
	})
}

// resetFlags restores default flag values. Commands share package-level
// flag state across Execute calls, so every run starts from a clean slate.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	})
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	resetFlags(rootCmd)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestAddCompleteFlow(t *testing.T) {
	setupCLI(t)

	if err := runCommand(t, "add", "buy flour", "--priority", "high"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := runCommand(t, "add", "bake cake"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := runCommand(t, "dep", "add", "TASK-00002", "TASK-00001"); err != nil {
		t.Fatalf("dep add failed: %v", err)
	}

	// Blocked until the dependency is done.
	if err := runCommand(t, "complete", "TASK-00002"); err == nil {
		t.Fatal("expected complete to fail while dependency is pending")
	} else if !strings.Contains(err.Error(), "TASK-00001") {
		t.Errorf("error should name the blocking task: %v", err)
	}

	if err := runCommand(t, "complete", "TASK-00001"); err != nil {
		t.Fatalf("completing dependency failed: %v", err)
	}
	if err := runCommand(t, "complete", "TASK-00002"); err != nil {
		t.Fatalf("completing task failed: %v", err)
	}

	task, err := TaskMgr.GetTask("TASK-00002")
	if err != nil {
		t.Fatal(err)
	}
	if task.CompletedAt == nil {
		t.Error("expected completion timestamp after CLI complete")
	}
}

func TestDepAddRejectsCycle(t *testing.T) {
	setupCLI(t)

	if err := runCommand(t, "add", "a"); err != nil {
		t.Fatal(err)
	}
	if err := runCommand(t, "add", "b"); err != nil {
		t.Fatal(err)
	}
	if err := runCommand(t, "dep", "add", "TASK-00002", "TASK-00001"); err != nil {
		t.Fatal(err)
	}

	err := runCommand(t, "dep", "add", "TASK-00001", "TASK-00002")
	if err == nil {
		t.Fatal("expected cycle-creating dep add to fail")
	}
	if !strings.Contains(err.Error(), "cycle") {
		t.Errorf("error should mention the cycle: %v", err)
	}
}

func TestDeleteGuardedByDependents(t *testing.T) {
	setupCLI(t)

	if err := runCommand(t, "add", "a"); err != nil {
		t.Fatal(err)
	}
	if err := runCommand(t, "add", "b"); err != nil {
		t.Fatal(err)
	}
	if err := runCommand(t, "dep", "add", "TASK-00002", "TASK-00001"); err != nil {
		t.Fatal(err)
	}

	if err := runCommand(t, "delete", "TASK-00001", "--yes"); err == nil {
		t.Fatal("expected delete of depended-on task to fail")
	}

	if err := runCommand(t, "dep", "remove", "TASK-00002", "TASK-00001"); err != nil {
		t.Fatalf("dep remove failed: %v", err)
	}
	if err := runCommand(t, "delete", "TASK-00001", "--yes"); err != nil {
		t.Fatalf("delete after edge removal failed: %v", err)
	}
}

func TestProjectTagNormalization(t *testing.T) {
	setupCLI(t)

	if err := runCommand(t, "add", "a"); err != nil {
		t.Fatal(err)
	}
	if err := runCommand(t, "project", "add", "TASK-00001", "  Deep   Work "); err != nil {
		t.Fatalf("project add failed: %v", err)
	}

	task, err := TaskMgr.GetTask("TASK-00001")
	if err != nil {
		t.Fatal(err)
	}
	if len(task.Projects) != 1 || task.Projects[0] != "deep work" {
		t.Errorf("expected normalized project tag, got %v", task.Projects)
	}

	if err := runCommand(t, "project", "remove", "TASK-00001", "DEEP WORK"); err != nil {
		t.Fatalf("project remove failed: %v", err)
	}
}
