package core

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGenerateTaskIDSequence(t *testing.T) {
	dir := t.TempDir()
	gen := NewTaskIDGenerator(dir, "TASK", 5)

	want := []string{"TASK-00001", "TASK-00002", "TASK-00003"}
	for _, expected := range want {
		id, err := gen.GenerateTaskID()
		if err != nil {
			t.Fatalf("GenerateTaskID failed: %v", err)
		}
		if id != expected {
			t.Errorf("expected %s, got %s", expected, id)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, ".task_counter"))
	if err != nil {
		t.Fatalf("reading counter file: %v", err)
	}
	if string(data) != "3" {
		t.Errorf("expected counter 3, got %s", data)
	}
}

func TestGenerateTaskIDUnpadded(t *testing.T) {
	dir := t.TempDir()
	gen := NewTaskIDGenerator(dir, "T", 0)

	id, err := gen.GenerateTaskID()
	if err != nil {
		t.Fatalf("GenerateTaskID failed: %v", err)
	}
	if id != "T-1" {
		t.Errorf("expected T-1, got %s", id)
	}
}

func TestGenerateTaskIDResumesFromCounterFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".task_counter"), []byte("41"), 0o600); err != nil {
		t.Fatal(err)
	}

	gen := NewTaskIDGenerator(dir, "TASK", 5)
	id, err := gen.GenerateTaskID()
	if err != nil {
		t.Fatalf("GenerateTaskID failed: %v", err)
	}
	if id != "TASK-00042" {
		t.Errorf("expected TASK-00042, got %s", id)
	}
}

func TestGenerateTaskIDRejectsCorruptCounter(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".task_counter"), []byte("banana"), 0o600); err != nil {
		t.Fatal(err)
	}

	gen := NewTaskIDGenerator(dir, "TASK", 5)
	if _, err := gen.GenerateTaskID(); err == nil {
		t.Fatal("expected error for corrupt counter file")
	}
}
