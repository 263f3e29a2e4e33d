package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/valter-silva-au/eve/internal/core"
	"github.com/valter-silva-au/eve/pkg/models"
)

// memStore implements core.TaskStore in memory for testing.
type memStore struct {
	tasks []models.Task
}

func (s *memStore) LoadAll() ([]models.Task, error) {
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out, nil
}

func (s *memStore) SaveAll(tasks []models.Task) error {
	s.tasks = make([]models.Task, len(tasks))
	copy(s.tasks, tasks)
	return nil
}

// seqGen implements core.TaskIDGenerator with a plain counter.
type seqGen struct {
	n int
}

func (g *seqGen) GenerateTaskID() (string, error) {
	g.n++
	return fmt.Sprintf("TASK-%05d", g.n), nil
}

func newTestServer(t *testing.T) (*Server, core.TaskManager) {
	t.Helper()
	mgr, err := core.NewTaskManager(&memStore{}, &seqGen{}, nil, core.ManagerDefaults{})
	if err != nil {
		t.Fatalf("NewTaskManager failed: %v", err)
	}
	return NewServer(mgr, "test"), mgr
}

// callTool connects an in-memory client to the server and calls a tool.
func callTool(t *testing.T, srv *Server, toolName string, args map[string]any) *gomcp.CallToolResult {
	t.Helper()

	ctx := context.Background()
	client := gomcp.NewClient(&gomcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)

	t1, t2 := gomcp.NewInMemoryTransports()

	go func() {
		_ = srv.MCPServer().Run(ctx, t1)
	}()

	session, err := client.Connect(ctx, t2, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	defer session.Close()

	result, err := session.CallTool(ctx, &gomcp.CallToolParams{
		Name:      toolName,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("call tool %s: %v", toolName, err)
	}

	return result
}

func textOf(t *testing.T, result *gomcp.CallToolResult) string {
	t.Helper()
	var parts []string
	for _, c := range result.Content {
		if tc, ok := c.(*gomcp.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}

func TestAddAndGetTask(t *testing.T) {
	srv, _ := newTestServer(t)

	result := callTool(t, srv, "add_task", map[string]any{
		"title":    "write report",
		"priority": "high",
		"due_date": "2026-09-01",
	})
	if result.IsError {
		t.Fatalf("add_task returned error: %s", textOf(t, result))
	}

	result = callTool(t, srv, "get_task", map[string]any{"task_id": "TASK-00001"})
	if result.IsError {
		t.Fatalf("get_task returned error: %s", textOf(t, result))
	}

	var out taskOutput
	if err := json.Unmarshal([]byte(textOf(t, result)), &out); err != nil {
		t.Fatalf("decoding get_task output: %v", err)
	}
	if out.Title != "write report" || out.Priority != "high" || out.DueDate != "2026-09-01" {
		t.Errorf("unexpected task output: %+v", out)
	}
	if out.Status != "pending" {
		t.Errorf("expected pending status, got %s", out.Status)
	}
}

func TestGetTaskNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	result := callTool(t, srv, "get_task", map[string]any{"task_id": "TASK-99999"})
	if !result.IsError {
		t.Fatal("expected error result for unknown task")
	}
	if !strings.Contains(textOf(t, result), "TASK-99999") {
		t.Errorf("error should name the missing id: %s", textOf(t, result))
	}
}

func TestListTasksWithFilter(t *testing.T) {
	srv, mgr := newTestServer(t)

	if _, err := mgr.AddTask(core.AddTaskOpts{Title: "a", Priority: models.PriorityHigh}); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.AddTask(core.AddTaskOpts{Title: "b", Priority: models.PriorityLow}); err != nil {
		t.Fatal(err)
	}

	result := callTool(t, srv, "list_tasks", map[string]any{"priority": "high"})
	if result.IsError {
		t.Fatalf("list_tasks returned error: %s", textOf(t, result))
	}

	var out listTasksOutput
	if err := json.Unmarshal([]byte(textOf(t, result)), &out); err != nil {
		t.Fatalf("decoding list_tasks output: %v", err)
	}
	if out.Count != 1 || out.Tasks[0].Title != "a" {
		t.Errorf("unexpected filter result: %+v", out)
	}
}

func TestCompleteTaskBlocked(t *testing.T) {
	srv, mgr := newTestServer(t)

	dep, err := mgr.AddTask(core.AddTaskOpts{Title: "dep"})
	if err != nil {
		t.Fatal(err)
	}
	task, err := mgr.AddTask(core.AddTaskOpts{Title: "main", DependsOn: []string{dep.ID}})
	if err != nil {
		t.Fatal(err)
	}

	result := callTool(t, srv, "complete_task", map[string]any{"task_id": task.ID})
	if !result.IsError {
		t.Fatal("expected error completing a blocked task")
	}
	if !strings.Contains(textOf(t, result), dep.ID) {
		t.Errorf("error should name the blocking dependency: %s", textOf(t, result))
	}

	// Complete the dependency, then the task.
	result = callTool(t, srv, "complete_task", map[string]any{"task_id": dep.ID})
	if result.IsError {
		t.Fatalf("completing dependency failed: %s", textOf(t, result))
	}
	result = callTool(t, srv, "complete_task", map[string]any{"task_id": task.ID})
	if result.IsError {
		t.Fatalf("completing task failed: %s", textOf(t, result))
	}
}

func TestAddDependencyRejectsCycle(t *testing.T) {
	srv, mgr := newTestServer(t)

	a, err := mgr.AddTask(core.AddTaskOpts{Title: "a"})
	if err != nil {
		t.Fatal(err)
	}
	b, err := mgr.AddTask(core.AddTaskOpts{Title: "b", DependsOn: []string{a.ID}})
	if err != nil {
		t.Fatal(err)
	}

	result := callTool(t, srv, "add_dependency", map[string]any{
		"task_id":       a.ID,
		"dependency_id": b.ID,
	})
	if !result.IsError {
		t.Fatal("expected error for cycle-creating edge")
	}
	if !strings.Contains(textOf(t, result), "cycle") {
		t.Errorf("error should mention the cycle: %s", textOf(t, result))
	}
}
