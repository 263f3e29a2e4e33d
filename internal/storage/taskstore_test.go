package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/valter-silva-au/eve/pkg/models"
)

func TestLoadAllMissingFileIsEmpty(t *testing.T) {
	store := NewFileTaskStore(t.TempDir(), "tasks.json")

	tasks, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("expected empty set, got %d tasks", len(tasks))
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store := NewFileTaskStore(t.TempDir(), "tasks.json")

	due, err := models.ParseDate("2026-09-01")
	if err != nil {
		t.Fatal(err)
	}
	done := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	in := []models.Task{
		{
			ID:        "TASK-00001",
			Title:     "buy flour",
			Priority:  models.PriorityHigh,
			Category:  "errands",
			Status:    models.StatusComplete,
			CreatedAt: time.Date(2026, 8, 19, 9, 0, 0, 0, time.UTC),
			CompletedAt: &done,
			Projects:  []string{"baking"},
		},
		{
			ID:        "TASK-00002",
			Title:     "bake cake",
			DueDate:   &due,
			Priority:  models.PriorityMedium,
			Status:    models.StatusPending,
			CreatedAt: time.Date(2026, 8, 19, 9, 5, 0, 0, time.UTC),
			Quadrant:  models.Q2,
			DependsOn: []string{"TASK-00001"},
			Contexts:  []string{"home"},
		},
	}

	if err := store.SaveAll(in); err != nil {
		t.Fatalf("SaveAll failed: %v", err)
	}

	out, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(out))
	}
	if out[0].ID != "TASK-00001" || out[1].ID != "TASK-00002" {
		t.Errorf("order not preserved: %s, %s", out[0].ID, out[1].ID)
	}
	if out[1].DueDate == nil || out[1].DueDate.String() != "2026-09-01" {
		t.Errorf("due date lost: %v", out[1].DueDate)
	}
	if out[0].CompletedAt == nil || !out[0].CompletedAt.Equal(done) {
		t.Errorf("completion timestamp lost: %v", out[0].CompletedAt)
	}
	if len(out[1].DependsOn) != 1 || out[1].DependsOn[0] != "TASK-00001" {
		t.Errorf("dependencies lost: %v", out[1].DependsOn)
	}
}

func TestSaveAllUsesStableWireFormat(t *testing.T) {
	dir := t.TempDir()
	store := NewFileTaskStore(dir, "tasks.json")

	due, _ := models.ParseDate("2026-09-01")
	task := models.Task{
		ID:        "TASK-00001",
		Title:     "x",
		DueDate:   &due,
		Priority:  models.PriorityLow,
		Status:    models.StatusPending,
		CreatedAt: time.Date(2026, 8, 19, 9, 0, 0, 0, time.UTC),
	}
	if err := store.SaveAll([]models.Task{task}); err != nil {
		t.Fatalf("SaveAll failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "tasks.json"))
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	for _, want := range []string{`"depends_on"`, `"due_date": "2026-09-01"`, `"status": "pending"`} {
		if want == `"depends_on"` {
			// Empty lists are omitted entirely.
			if strings.Contains(content, want) {
				t.Errorf("empty depends_on should be omitted:\n%s", content)
			}
			continue
		}
		if !strings.Contains(content, want) {
			t.Errorf("wire format missing %s:\n%s", want, content)
		}
	}
}

func TestSaveAllReplacesPreviousContent(t *testing.T) {
	store := NewFileTaskStore(t.TempDir(), "tasks.json")

	if err := store.SaveAll([]models.Task{{ID: "A", Title: "a", Status: models.StatusPending}}); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveAll(nil); err != nil {
		t.Fatal(err)
	}

	tasks, err := store.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 0 {
		t.Errorf("expected empty set after saving nil, got %d", len(tasks))
	}
}

func TestLoadAllRejectsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tasks.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	store := NewFileTaskStore(dir, "tasks.json")
	if _, err := store.LoadAll(); err == nil {
		t.Fatal("expected error for corrupt file")
	}
}
