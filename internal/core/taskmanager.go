package core

import (
	"fmt"
	"sort"
	"time"

	"github.com/valter-silva-au/eve/pkg/models"
)

// TaskStore is the persistence collaborator. Defining it here keeps core
// independent of the storage package. SaveAll always receives the full
// current set; there are no incremental writes.
type TaskStore interface {
	LoadAll() ([]models.Task, error)
	SaveAll(tasks []models.Task) error
}

// EventRecorder receives domain events for the observability layer.
// Implementations must tolerate being called on every mutation.
type EventRecorder interface {
	Record(level, eventType, message string, data map[string]any)
}

// DueWindow filters tasks by due date relative to today.
type DueWindow string

const (
	DueAny      DueWindow = ""
	DueOverdue  DueWindow = "overdue"  // due before today and still pending
	DueToday    DueWindow = "today"    // due today
	DueUpcoming DueWindow = "upcoming" // due after today
)

// SortKey selects the ordering of ListTasks results.
type SortKey string

const (
	// SortDefault orders by priority rank, then due date with absent
	// dates last.
	SortDefault  SortKey = ""
	SortDue      SortKey = "due"
	SortPriority SortKey = "priority"
	SortQuadrant SortKey = "quadrant"
	SortCreated  SortKey = "created" // newest first
)

// AddTaskOpts carries the fields for creating a task. Zero values fall
// back to configured defaults where one exists.
type AddTaskOpts struct {
	Title       string
	Description string
	DueDate     string // YYYY-MM-DD, empty for none
	Priority    models.Priority
	Category    string
	Quadrant    models.Quadrant
	DependsOn   []string
	Projects    []string
	Contexts    []string
}

// TaskUpdate carries field edits. Nil pointers leave the field unchanged;
// for DueDate and Quadrant, a pointer to the empty string clears the value.
type TaskUpdate struct {
	Title       *string
	Description *string
	DueDate     *string
	Priority    *models.Priority
	Category    *string
	Quadrant    *models.Quadrant
}

// TaskFilter selects tasks for ListTasks. Zero-valued fields match
// everything. All set fields must match (AND logic).
type TaskFilter struct {
	Status       models.Status
	Priority     models.Priority
	Category     string
	Due          DueWindow
	Quadrant     models.Quadrant
	Unclassified bool // match only tasks with no quadrant
	Project      string
	Context      string
}

// TransitionResult reports the outcome of a Complete or Uncomplete call.
type TransitionResult struct {
	Task *models.Task
	// Pruned lists dependency ids that no longer resolved to a live task
	// and were removed during the completion check.
	Pruned []string
	// NoOp is set when the task was already in the target state.
	NoOp bool
}

// TaskManager is the lifecycle controller: every mutation of the task set
// enters here, is validated against the dependency graph, applied in
// memory, and then persisted as a whole.
type TaskManager interface {
	AddTask(opts AddTaskOpts) (*models.Task, error)
	UpdateTask(id string, updates TaskUpdate) (*models.Task, error)
	GetTask(id string) (*models.Task, error)
	GetAllTasks() []*models.Task
	ListTasks(filter TaskFilter, sortBy SortKey) []*models.Task
	Complete(id string) (*TransitionResult, error)
	Uncomplete(id string) (*TransitionResult, error)
	AddDependency(taskID, dependencyID string) error
	RemoveDependency(taskID, dependencyID string) error
	DeleteTask(id string) error
	AddProject(id, name string) (string, error)
	RemoveProject(id, name string) (string, error)
	AddContext(id, name string) (string, error)
	RemoveContext(id, name string) (string, error)
	Dependents(id string) []string
}

// ManagerDefaults are the configured fallback values for task creation.
type ManagerDefaults struct {
	Priority models.Priority
	Category string
}

type taskManager struct {
	registry  *TaskRegistry
	validator *DependencyValidator
	store     TaskStore
	idGen     TaskIDGenerator
	events    EventRecorder // may be nil
	defaults  ManagerDefaults
}

// NewTaskManager loads the stored task set into a fresh registry and
// returns a manager over it. events may be nil if observability is
// disabled. Records restored with a complete status but no completion
// timestamp get one assigned at load.
func NewTaskManager(store TaskStore, idGen TaskIDGenerator, events EventRecorder, defaults ManagerDefaults) (TaskManager, error) {
	if defaults.Priority == "" {
		defaults.Priority = models.PriorityMedium
	}
	if defaults.Category == "" {
		defaults.Category = "general"
	}

	registry := NewTaskRegistry()

	tasks, err := store.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	for i := range tasks {
		t := tasks[i]
		if t.Status == "" {
			t.Status = models.StatusPending
		}
		if t.Status == models.StatusComplete && t.CompletedAt == nil {
			now := time.Now().UTC()
			t.CompletedAt = &now
		}
		if t.Status == models.StatusPending {
			t.CompletedAt = nil
		}
		if err := registry.Insert(&t); err != nil {
			return nil, fmt.Errorf("loading tasks: %w", err)
		}
	}

	return &taskManager{
		registry:  registry,
		validator: NewDependencyValidator(registry),
		store:     store,
		idGen:     idGen,
		events:    events,
		defaults:  defaults,
	}, nil
}

// save persists the full registry snapshot. The in-memory state is already
// mutated and stays valid even when the write fails.
func (m *taskManager) save() error {
	if err := m.store.SaveAll(m.registry.Snapshot()); err != nil {
		return fmt.Errorf("saving tasks: %w", err)
	}
	return nil
}

func (m *taskManager) record(level, eventType, message string, data map[string]any) {
	if m.events != nil {
		m.events.Record(level, eventType, message, data)
	}
}

// ref builds a TaskRef for error payloads, falling back to the bare id
// when the task is unknown.
func (m *taskManager) ref(id string) TaskRef {
	if t, ok := m.registry.Get(id); ok {
		return TaskRef{ID: id, Title: t.Title}
	}
	return TaskRef{ID: id}
}

// AddTask validates and creates a new task. The id is generated before
// dependency validation so the cycle check can treat the new task as
// already present; the task is only inserted once every dependency id has
// been resolved and cleared.
func (m *taskManager) AddTask(opts AddTaskOpts) (*models.Task, error) {
	if opts.Title == "" {
		return nil, &ValidationError{Field: "title", Message: "must not be empty"}
	}

	priority := opts.Priority
	if priority == "" {
		priority = m.defaults.Priority
	}
	if !priority.Valid() {
		return nil, &ValidationError{Field: "priority", Message: fmt.Sprintf("unknown value %q", opts.Priority)}
	}
	if !opts.Quadrant.Valid() {
		return nil, &ValidationError{Field: "quadrant", Message: fmt.Sprintf("unknown value %q", opts.Quadrant)}
	}
	category := opts.Category
	if category == "" {
		category = m.defaults.Category
	}

	var dueDate *models.Date
	if opts.DueDate != "" {
		parsed, err := models.ParseDate(opts.DueDate)
		if err != nil {
			return nil, &ValidationError{Field: "due_date", Message: err.Error()}
		}
		dueDate = &parsed
	}

	id, err := m.idGen.GenerateTaskID()
	if err != nil {
		return nil, fmt.Errorf("generating task id: %w", err)
	}

	for _, depID := range opts.DependsOn {
		if depID == id {
			return nil, &SelfDependencyError{ID: id}
		}
		if _, ok := m.registry.Get(depID); !ok {
			return nil, &NotFoundError{Kind: "dependency", ID: depID}
		}
		if m.validator.WouldCreateCycle(id, depID) {
			return nil, &CycleError{TaskID: id, DependencyID: depID}
		}
	}

	task := &models.Task{
		ID:          id,
		Title:       opts.Title,
		Description: opts.Description,
		DueDate:     dueDate,
		Priority:    priority,
		Category:    category,
		Status:      models.StatusPending,
		CreatedAt:   time.Now().UTC(),
		Quadrant:    opts.Quadrant,
	}
	for _, depID := range opts.DependsOn {
		task.AddDependency(depID)
	}
	for _, p := range opts.Projects {
		if tag := NormalizeTag(p); tag != "" {
			task.AddProject(tag)
		}
	}
	for _, c := range opts.Contexts {
		if tag := NormalizeTag(c); tag != "" {
			task.AddContext(tag)
		}
	}

	if err := m.registry.Insert(task); err != nil {
		return nil, err
	}

	m.record("INFO", "task.created", fmt.Sprintf("created task %s", id), map[string]any{
		"task_id": id,
		"title":   task.Title,
	})
	return task, m.save()
}

// UpdateTask edits basic fields. Status and dependency edges are not
// editable here; those go through the lifecycle transitions.
func (m *taskManager) UpdateTask(id string, updates TaskUpdate) (*models.Task, error) {
	task, ok := m.registry.Get(id)
	if !ok {
		return nil, &NotFoundError{Kind: "task", ID: id}
	}

	// Validate everything before touching the task: a failed edit must
	// leave no partial mutation behind.
	var newDue *models.Date
	clearDue := false
	if updates.DueDate != nil {
		switch raw := *updates.DueDate; raw {
		case "", "-", "N/A", "n/a":
			clearDue = true
		default:
			parsed, err := models.ParseDate(raw)
			if err != nil {
				return nil, &ValidationError{Field: "due_date", Message: err.Error()}
			}
			newDue = &parsed
		}
	}
	if updates.Title != nil && *updates.Title == "" {
		return nil, &ValidationError{Field: "title", Message: "must not be empty"}
	}
	if updates.Priority != nil && !updates.Priority.Valid() {
		return nil, &ValidationError{Field: "priority", Message: fmt.Sprintf("unknown value %q", *updates.Priority)}
	}
	if updates.Quadrant != nil && !updates.Quadrant.Valid() {
		return nil, &ValidationError{Field: "quadrant", Message: fmt.Sprintf("unknown value %q", *updates.Quadrant)}
	}

	if updates.Title != nil {
		task.Title = *updates.Title
	}
	if updates.Description != nil {
		task.Description = *updates.Description
	}
	if clearDue {
		task.DueDate = nil
	} else if newDue != nil {
		task.DueDate = newDue
	}
	if updates.Priority != nil {
		task.Priority = *updates.Priority
	}
	if updates.Category != nil {
		task.Category = *updates.Category
	}
	if updates.Quadrant != nil {
		task.Quadrant = *updates.Quadrant
	}

	return task, m.save()
}

func (m *taskManager) GetTask(id string) (*models.Task, error) {
	task, ok := m.registry.Get(id)
	if !ok {
		return nil, &NotFoundError{Kind: "task", ID: id}
	}
	return task, nil
}

func (m *taskManager) GetAllTasks() []*models.Task {
	return m.registry.All()
}

// ListTasks filters and sorts the task set. Pure read.
func (m *taskManager) ListTasks(filter TaskFilter, sortBy SortKey) []*models.Task {
	var out []*models.Task
	for _, t := range m.registry.All() {
		if matchesTaskFilter(t, filter) {
			out = append(out, t)
		}
	}
	sortTasks(out, sortBy)
	return out
}

func matchesTaskFilter(t *models.Task, f TaskFilter) bool {
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.Category != "" && !equalsFold(t.Category, f.Category) {
		return false
	}
	if f.Due != DueAny {
		today := models.Today()
		switch f.Due {
		case DueOverdue:
			if t.DueDate == nil || !t.DueDate.Before(today) || t.Status != models.StatusPending {
				return false
			}
		case DueToday:
			if t.DueDate == nil || !t.DueDate.Equal(today) {
				return false
			}
		case DueUpcoming:
			if t.DueDate == nil || !t.DueDate.After(today) {
				return false
			}
		}
	}
	if f.Unclassified {
		if t.Quadrant != models.QuadrantNone {
			return false
		}
	} else if f.Quadrant != models.QuadrantNone && t.Quadrant != f.Quadrant {
		return false
	}
	if f.Project != "" && !t.HasProject(NormalizeTag(f.Project)) {
		return false
	}
	if f.Context != "" && !t.HasContext(NormalizeTag(f.Context)) {
		return false
	}
	return true
}

func equalsFold(a, b string) bool {
	return NormalizeTag(a) == NormalizeTag(b)
}

// sortTasks orders tasks in place. The default ordering is priority rank
// ascending, then due date ascending with absent dates last.
func sortTasks(tasks []*models.Task, sortBy SortKey) {
	byDue := func(a, b *models.Task) (less, decided bool) {
		switch {
		case a.DueDate == nil && b.DueDate == nil:
			return false, false
		case a.DueDate == nil:
			return false, true
		case b.DueDate == nil:
			return true, true
		case a.DueDate.Equal(*b.DueDate):
			return false, false
		default:
			return a.DueDate.Before(*b.DueDate), true
		}
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		switch sortBy {
		case SortDue:
			if less, decided := byDue(a, b); decided {
				return less
			}
			return a.Priority.Rank() < b.Priority.Rank()
		case SortPriority:
			if a.Priority.Rank() != b.Priority.Rank() {
				return a.Priority.Rank() < b.Priority.Rank()
			}
			less, _ := byDue(a, b)
			return less
		case SortQuadrant:
			if a.Quadrant.Rank() != b.Quadrant.Rank() {
				return a.Quadrant.Rank() < b.Quadrant.Rank()
			}
			return a.Priority.Rank() < b.Priority.Rank()
		case SortCreated:
			return a.CreatedAt.After(b.CreatedAt)
		default:
			if a.Priority.Rank() != b.Priority.Rank() {
				return a.Priority.Rank() < b.Priority.Rank()
			}
			less, _ := byDue(a, b)
			return less
		}
	})
}

// Complete transitions a task from pending to complete. Dependency ids
// that no longer resolve to a live task are pruned (logged and persisted,
// never fatal); every remaining dependency must itself be complete, and
// all blocking dependencies are reported together.
func (m *taskManager) Complete(id string) (*TransitionResult, error) {
	task, ok := m.registry.Get(id)
	if !ok {
		return nil, &NotFoundError{Kind: "task", ID: id}
	}

	var pruned []string
	var blocking []TaskRef
	for _, depID := range append([]string(nil), task.DependsOn...) {
		dep, ok := m.registry.Get(depID)
		if !ok {
			task.RemoveDependency(depID)
			pruned = append(pruned, depID)
			m.record("WARN", "dependency.pruned",
				fmt.Sprintf("removed dangling dependency %s from task %s", depID, id),
				map[string]any{"task_id": id, "dependency_id": depID})
			continue
		}
		if dep.Status != models.StatusComplete {
			blocking = append(blocking, TaskRef{ID: dep.ID, Title: dep.Title})
		}
	}

	// Persist the self-heal even when the transition itself cannot proceed.
	if len(pruned) > 0 {
		if err := m.save(); err != nil {
			return nil, err
		}
	}

	if len(blocking) > 0 {
		return nil, &BlockedError{TaskID: id, Blocking: blocking}
	}

	if task.Status == models.StatusComplete {
		return &TransitionResult{Task: task, Pruned: pruned, NoOp: true}, nil
	}

	now := time.Now().UTC()
	task.Status = models.StatusComplete
	task.CompletedAt = &now

	m.record("INFO", "task.completed", fmt.Sprintf("completed task %s", id), map[string]any{
		"task_id": id,
	})
	return &TransitionResult{Task: task, Pruned: pruned}, m.save()
}

// Uncomplete transitions a task from complete back to pending. The guard
// checks direct dependents only: no completed task may list this one in
// its dependencies.
func (m *taskManager) Uncomplete(id string) (*TransitionResult, error) {
	task, ok := m.registry.Get(id)
	if !ok {
		return nil, &NotFoundError{Kind: "task", ID: id}
	}

	if task.Status == models.StatusPending {
		return &TransitionResult{Task: task, NoOp: true}, nil
	}

	var dependents []TaskRef
	for _, depID := range m.validator.DependentsOf(id) {
		if dep, ok := m.registry.Get(depID); ok && dep.Status == models.StatusComplete {
			dependents = append(dependents, TaskRef{ID: dep.ID, Title: dep.Title})
		}
	}
	if len(dependents) > 0 {
		return nil, &WouldInvalidateDependentsError{TaskID: id, Dependents: dependents}
	}

	task.Status = models.StatusPending
	task.CompletedAt = nil

	m.record("INFO", "task.reopened", fmt.Sprintf("reopened task %s", id), map[string]any{
		"task_id": id,
	})
	return &TransitionResult{Task: task}, m.save()
}

// AddDependency inserts the edge taskID -> dependencyID after validating
// it cannot close a cycle. Adding an existing edge is a no-op success.
func (m *taskManager) AddDependency(taskID, dependencyID string) error {
	if taskID == dependencyID {
		return &SelfDependencyError{ID: taskID}
	}
	task, ok := m.registry.Get(taskID)
	if !ok {
		return &NotFoundError{Kind: "task", ID: taskID}
	}
	if _, ok := m.registry.Get(dependencyID); !ok {
		return &NotFoundError{Kind: "dependency", ID: dependencyID}
	}
	if task.HasDependency(dependencyID) {
		return nil
	}
	if m.validator.WouldCreateCycle(taskID, dependencyID) {
		return &CycleError{TaskID: taskID, DependencyID: dependencyID}
	}

	task.AddDependency(dependencyID)
	m.record("INFO", "dependency.added",
		fmt.Sprintf("task %s now depends on %s", taskID, dependencyID),
		map[string]any{"task_id": taskID, "dependency_id": dependencyID})
	return m.save()
}

// RemoveDependency drops the edge taskID -> dependencyID. Removing an edge
// can never violate an invariant, so no further validation is needed.
func (m *taskManager) RemoveDependency(taskID, dependencyID string) error {
	task, ok := m.registry.Get(taskID)
	if !ok {
		return &NotFoundError{Kind: "task", ID: taskID}
	}
	if !task.RemoveDependency(dependencyID) {
		return &NotFoundError{Kind: "dependency", ID: dependencyID}
	}

	m.record("INFO", "dependency.removed",
		fmt.Sprintf("task %s no longer depends on %s", taskID, dependencyID),
		map[string]any{"task_id": taskID, "dependency_id": dependencyID})
	return m.save()
}

// DeleteTask removes a task, refusing while any live task depends on it.
func (m *taskManager) DeleteTask(id string) error {
	if _, ok := m.registry.Get(id); !ok {
		return &NotFoundError{Kind: "task", ID: id}
	}

	var dependents []TaskRef
	for _, depID := range m.validator.DependentsOf(id) {
		dependents = append(dependents, m.ref(depID))
	}
	if len(dependents) > 0 {
		return &HasDependentsError{TaskID: id, Dependents: dependents}
	}

	if err := m.registry.Remove(id); err != nil {
		return err
	}
	m.record("INFO", "task.deleted", fmt.Sprintf("deleted task %s", id), map[string]any{
		"task_id": id,
	})
	return m.save()
}

// Dependents returns the ids of tasks directly depending on id.
func (m *taskManager) Dependents(id string) []string {
	return m.validator.DependentsOf(id)
}

// tagSet distinguishes the two tag collections on a task.
type tagSet int

const (
	tagProject tagSet = iota
	tagContext
)

func (s tagSet) String() string {
	if s == tagProject {
		return "project"
	}
	return "context"
}

// addTag normalizes and attaches a tag. Adding an already-present tag is a
// no-op success.
func (m *taskManager) addTag(id, name string, set tagSet) (string, error) {
	task, ok := m.registry.Get(id)
	if !ok {
		return "", &NotFoundError{Kind: "task", ID: id}
	}
	tag := NormalizeTag(name)
	if tag == "" {
		return "", &ValidationError{Field: set.String(), Message: "must not be empty"}
	}

	already := (set == tagProject && task.HasProject(tag)) ||
		(set == tagContext && task.HasContext(tag))
	if already {
		return tag, nil
	}

	if set == tagProject {
		task.AddProject(tag)
	} else {
		task.AddContext(tag)
	}
	m.record("INFO", "tag.added",
		fmt.Sprintf("added %s %q to task %s", set, tag, id),
		map[string]any{"task_id": id, "tag": tag, "kind": set.String()})
	return tag, m.save()
}

// removeTag normalizes and detaches a tag. Removing an absent tag fails.
func (m *taskManager) removeTag(id, name string, set tagSet) (string, error) {
	task, ok := m.registry.Get(id)
	if !ok {
		return "", &NotFoundError{Kind: "task", ID: id}
	}
	tag := NormalizeTag(name)

	var removed bool
	if set == tagProject {
		removed = task.RemoveProject(tag)
	} else {
		removed = task.RemoveContext(tag)
	}
	if !removed {
		return "", &NotFoundError{Kind: set.String(), ID: tag}
	}

	m.record("INFO", "tag.removed",
		fmt.Sprintf("removed %s %q from task %s", set, tag, id),
		map[string]any{"task_id": id, "tag": tag, "kind": set.String()})
	return tag, m.save()
}

func (m *taskManager) AddProject(id, name string) (string, error) {
	return m.addTag(id, name, tagProject)
}

func (m *taskManager) RemoveProject(id, name string) (string, error) {
	return m.removeTag(id, name, tagProject)
}

func (m *taskManager) AddContext(id, name string) (string, error) {
	return m.addTag(id, name, tagContext)
}

func (m *taskManager) RemoveContext(id, name string) (string, error) {
	return m.removeTag(id, name, tagContext)
}
