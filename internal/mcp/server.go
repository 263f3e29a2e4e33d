// Package mcp provides an MCP (Model Context Protocol) server that exposes
// eve task management as MCP tools for AI assistants.
package mcp

import (
	"context"
	"fmt"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/valter-silva-au/eve/internal/core"
	"github.com/valter-silva-au/eve/pkg/models"
)

// Server wraps the lifecycle controller and exposes it as MCP tools.
type Server struct {
	server  *gomcp.Server
	taskMgr core.TaskManager
}

// NewServer creates a new MCP server over the given task manager.
func NewServer(taskMgr core.TaskManager, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{taskMgr: taskMgr}

	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "eve", Version: version},
		nil,
	)

	s.registerTools()

	return s
}

// Run starts the MCP server on stdio, blocking until the client
// disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type getTaskInput struct {
	TaskID string `json:"task_id" jsonschema:"required,the unique task identifier (e.g. TASK-00042)"`
}

type taskOutput struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority"`
	Category    string   `json:"category,omitempty"`
	DueDate     string   `json:"due_date,omitempty"`
	Quadrant    string   `json:"quadrant,omitempty"`
	Created     string   `json:"created"`
	Completed   string   `json:"completed,omitempty"`
	DependsOn   []string `json:"depends_on,omitempty"`
	Projects    []string `json:"projects,omitempty"`
	Contexts    []string `json:"contexts,omitempty"`
}

type listTasksInput struct {
	Status   string `json:"status,omitempty" jsonschema:"filter tasks by status (pending, complete)"`
	Priority string `json:"priority,omitempty" jsonschema:"filter tasks by priority (high, medium, low)"`
	Project  string `json:"project,omitempty" jsonschema:"filter tasks by project tag"`
	Context  string `json:"context,omitempty" jsonschema:"filter tasks by context tag"`
}

type listTasksOutput struct {
	Tasks []taskOutput `json:"tasks"`
	Count int          `json:"count"`
}

type addTaskInput struct {
	Title       string   `json:"title" jsonschema:"required,short task title"`
	Description string   `json:"description,omitempty" jsonschema:"longer task description"`
	DueDate     string   `json:"due_date,omitempty" jsonschema:"due date in YYYY-MM-DD form"`
	Priority    string   `json:"priority,omitempty" jsonschema:"priority (high, medium, low)"`
	Category    string   `json:"category,omitempty" jsonschema:"free-form category label"`
	DependsOn   []string `json:"depends_on,omitempty" jsonschema:"ids of prerequisite tasks"`
}

type completeTaskInput struct {
	TaskID string `json:"task_id" jsonschema:"required,the task to mark complete"`
}

type completeTaskOutput struct {
	Message string   `json:"message"`
	Pruned  []string `json:"pruned_dependencies,omitempty"`
}

type addDependencyInput struct {
	TaskID       string `json:"task_id" jsonschema:"required,the task that gains a prerequisite"`
	DependencyID string `json:"dependency_id" jsonschema:"required,the prerequisite task"`
}

type addDependencyOutput struct {
	Message string `json:"message"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_task",
		Description: "Get task details by ID. Returns the full task object including status, priority, due date, and dependencies.",
	}, s.handleGetTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "list_tasks",
		Description: "List tasks with optional status, priority, project, and context filters. Returns an array of task summaries.",
	}, s.handleListTasks)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "add_task",
		Description: "Create a new task. Dependencies are validated: every referenced task must exist and the graph must stay acyclic.",
	}, s.handleAddTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "complete_task",
		Description: "Mark a task as complete. Fails if any of its dependencies is still pending, listing the blocking tasks.",
	}, s.handleCompleteTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "add_dependency",
		Description: "Make one task depend on another. Rejects self-dependencies and edges that would create a cycle.",
	}, s.handleAddDependency)
}

// --- Tool handlers ---

func (s *Server) handleGetTask(_ context.Context, _ *gomcp.CallToolRequest, input getTaskInput) (*gomcp.CallToolResult, taskOutput, error) {
	if input.TaskID == "" {
		return errorResult("task_id is required"), taskOutput{}, nil
	}

	task, err := s.taskMgr.GetTask(input.TaskID)
	if err != nil {
		return errorResult(fmt.Sprintf("getting task %s: %s", input.TaskID, err)), taskOutput{}, nil
	}

	return nil, taskToOutput(task), nil
}

func (s *Server) handleListTasks(_ context.Context, _ *gomcp.CallToolRequest, input listTasksInput) (*gomcp.CallToolResult, listTasksOutput, error) {
	tasks := s.taskMgr.ListTasks(core.TaskFilter{
		Status:   models.Status(input.Status),
		Priority: models.Priority(input.Priority),
		Project:  input.Project,
		Context:  input.Context,
	}, core.SortDefault)

	out := listTasksOutput{
		Tasks: make([]taskOutput, len(tasks)),
		Count: len(tasks),
	}
	for i, t := range tasks {
		out.Tasks[i] = taskToOutput(t)
	}

	return nil, out, nil
}

func (s *Server) handleAddTask(_ context.Context, _ *gomcp.CallToolRequest, input addTaskInput) (*gomcp.CallToolResult, taskOutput, error) {
	if input.Title == "" {
		return errorResult("title is required"), taskOutput{}, nil
	}

	task, err := s.taskMgr.AddTask(core.AddTaskOpts{
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Priority:    models.Priority(input.Priority),
		Category:    input.Category,
		DependsOn:   input.DependsOn,
	})
	if err != nil {
		return errorResult(fmt.Sprintf("adding task: %s", err)), taskOutput{}, nil
	}

	return nil, taskToOutput(task), nil
}

func (s *Server) handleCompleteTask(_ context.Context, _ *gomcp.CallToolRequest, input completeTaskInput) (*gomcp.CallToolResult, completeTaskOutput, error) {
	if input.TaskID == "" {
		return errorResult("task_id is required"), completeTaskOutput{}, nil
	}

	result, err := s.taskMgr.Complete(input.TaskID)
	if err != nil {
		return errorResult(fmt.Sprintf("completing task %s: %s", input.TaskID, err)), completeTaskOutput{}, nil
	}

	out := completeTaskOutput{Pruned: result.Pruned}
	if result.NoOp {
		out.Message = fmt.Sprintf("task %s was already complete", input.TaskID)
	} else {
		out.Message = fmt.Sprintf("task %s marked complete", input.TaskID)
	}
	return nil, out, nil
}

func (s *Server) handleAddDependency(_ context.Context, _ *gomcp.CallToolRequest, input addDependencyInput) (*gomcp.CallToolResult, addDependencyOutput, error) {
	if input.TaskID == "" {
		return errorResult("task_id is required"), addDependencyOutput{}, nil
	}
	if input.DependencyID == "" {
		return errorResult("dependency_id is required"), addDependencyOutput{}, nil
	}

	if err := s.taskMgr.AddDependency(input.TaskID, input.DependencyID); err != nil {
		return errorResult(fmt.Sprintf("adding dependency: %s", err)), addDependencyOutput{}, nil
	}

	out := addDependencyOutput{
		Message: fmt.Sprintf("task %s now depends on %s", input.TaskID, input.DependencyID),
	}
	return nil, out, nil
}

// --- Helpers ---

func taskToOutput(t *models.Task) taskOutput {
	out := taskOutput{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		Category:    t.Category,
		Quadrant:    string(t.Quadrant),
		Created:     t.CreatedAt.Format(time.RFC3339),
		DependsOn:   t.DependsOn,
		Projects:    t.Projects,
		Contexts:    t.Contexts,
	}
	if t.DueDate != nil {
		out.DueDate = t.DueDate.String()
	}
	if t.CompletedAt != nil {
		out.Completed = t.CompletedAt.Format(time.RFC3339)
	}
	return out
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}
