package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/valter-silva-au/eve/internal/core"
	"github.com/valter-silva-au/eve/internal/observability"
)

func TestNewAppWiresServices(t *testing.T) {
	dir := t.TempDir()

	app, err := NewApp(dir)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	defer func() { _ = app.Close() }()

	if app.TaskMgr == nil || app.Store == nil || app.IDGen == nil {
		t.Fatal("expected all services to be wired")
	}

	// A full mutation round trip through the wired stack.
	task, err := app.TaskMgr.AddTask(core.AddTaskOpts{Title: "wired"})
	if err != nil {
		t.Fatalf("AddTask through app failed: %v", err)
	}
	if task.ID != "TASK-00001" {
		t.Errorf("unexpected first id %s", task.ID)
	}

	if _, err := os.Stat(filepath.Join(dir, "tasks.json")); err != nil {
		t.Errorf("expected task file to exist: %v", err)
	}

	// The mutation must be narrated in the event log.
	events, err := app.EventLog.Read(observability.EventFilter{Type: observability.EventTaskCreated})
	if err != nil {
		t.Fatalf("reading event log: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("expected 1 task.created event, got %d", len(events))
	}
}

func TestNewAppReloadsPersistedTasks(t *testing.T) {
	dir := t.TempDir()

	app1, err := NewApp(dir)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	if _, err := app1.TaskMgr.AddTask(core.AddTaskOpts{Title: "persist me"}); err != nil {
		t.Fatal(err)
	}
	if err := app1.Close(); err != nil {
		t.Fatal(err)
	}

	app2, err := NewApp(dir)
	if err != nil {
		t.Fatalf("second NewApp failed: %v", err)
	}
	defer func() { _ = app2.Close() }()

	tasks := app2.TaskMgr.GetAllTasks()
	if len(tasks) != 1 || tasks[0].Title != "persist me" {
		t.Fatalf("expected persisted task to survive restart, got %v", tasks)
	}
}

func TestNewAppRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	content := "task_id:\n  prefix: \"bad prefix!\"\n"
	if err := os.WriteFile(filepath.Join(dir, ".eveconfig"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := NewApp(dir); err == nil {
		t.Fatal("expected error for invalid config")
	}
}

func TestResolveBasePath(t *testing.T) {
	t.Setenv("EVE_HOME", "/tmp/eve-home")
	if got := ResolveBasePath(); got != "/tmp/eve-home" {
		t.Errorf("expected EVE_HOME to win, got %s", got)
	}

	t.Setenv("EVE_HOME", "")
	dir := t.TempDir()
	sub := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(sub, 0o750); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Create(filepath.Join(dir, ".eveconfig")); err != nil {
		t.Fatal(err)
	}

	cwd, _ := os.Getwd()
	defer func() { _ = os.Chdir(cwd) }()
	if err := os.Chdir(sub); err != nil {
		t.Fatal(err)
	}

	got := ResolveBasePath()
	// Resolve symlinks: on some systems TempDir returns a symlinked path.
	wantReal, _ := filepath.EvalSymlinks(dir)
	gotReal, _ := filepath.EvalSymlinks(got)
	if gotReal != wantReal {
		t.Errorf("expected walk-up to find %s, got %s", dir, got)
	}
}
