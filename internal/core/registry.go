package core

import (
	"github.com/valter-silva-au/eve/pkg/models"
)

// TaskRegistry owns the authoritative set of task records and the id index
// derived from it. The backing slice and the index are only ever mutated
// together, so they cannot fall out of sync. The registry performs no graph
// or lifecycle validation; it is a consistent store and nothing more.
type TaskRegistry struct {
	tasks []*models.Task // insertion order
	index map[string]*models.Task
}

// NewTaskRegistry creates an empty registry.
func NewTaskRegistry() *TaskRegistry {
	return &TaskRegistry{
		index: make(map[string]*models.Task),
	}
}

// Insert adds a task to the registry. The task's id must not already exist.
func (r *TaskRegistry) Insert(t *models.Task) error {
	if _, exists := r.index[t.ID]; exists {
		return &DuplicateIDError{ID: t.ID}
	}
	r.tasks = append(r.tasks, t)
	r.index[t.ID] = t
	return nil
}

// Remove deletes a task from the registry by id.
func (r *TaskRegistry) Remove(id string) error {
	if _, exists := r.index[id]; !exists {
		return &NotFoundError{Kind: "task", ID: id}
	}
	for i, t := range r.tasks {
		if t.ID == id {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			break
		}
	}
	delete(r.index, id)
	return nil
}

// Get looks up a task by id.
func (r *TaskRegistry) Get(id string) (*models.Task, bool) {
	t, ok := r.index[id]
	return t, ok
}

// All returns the live tasks in insertion order. The returned slice is a
// copy; the tasks themselves are shared.
func (r *TaskRegistry) All() []*models.Task {
	out := make([]*models.Task, len(r.tasks))
	copy(out, r.tasks)
	return out
}

// Len returns the number of live tasks.
func (r *TaskRegistry) Len() int {
	return len(r.tasks)
}

// Snapshot returns value copies of all tasks in insertion order, suitable
// for handing to the persistence layer.
func (r *TaskRegistry) Snapshot() []models.Task {
	out := make([]models.Task, len(r.tasks))
	for i, t := range r.tasks {
		out[i] = *t
	}
	return out
}
