package core

import (
	"fmt"
	"strings"
)

// TaskRef identifies a task in error payloads without carrying the full record.
type TaskRef struct {
	ID    string
	Title string
}

func (r TaskRef) String() string {
	if r.Title == "" {
		return r.ID
	}
	return fmt.Sprintf("%s (%q)", r.ID, r.Title)
}

func joinRefs(refs []TaskRef) string {
	parts := make([]string, len(refs))
	for i, r := range refs {
		parts[i] = r.String()
	}
	return strings.Join(parts, ", ")
}

// ValidationError reports a malformed field on task construction or edit.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NotFoundError reports a referenced task, dependency edge, or tag that
// does not exist. Kind names what was looked up (task, dependency, project,
// context).
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// DuplicateIDError reports an attempt to register a task under an id that
// is already taken.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("task %s already exists", e.ID)
}

// SelfDependencyError reports an attempt to make a task depend on itself.
type SelfDependencyError struct {
	ID string
}

func (e *SelfDependencyError) Error() string {
	return fmt.Sprintf("task %s cannot depend on itself", e.ID)
}

// CycleError reports a dependency edge that would close a cycle in the graph.
type CycleError struct {
	TaskID       string
	DependencyID string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("adding dependency %s -> %s would create a cycle", e.TaskID, e.DependencyID)
}

// BlockedError reports a completion attempt blocked by pending dependencies.
// Blocking lists every pending dependency, not just the first one found.
type BlockedError struct {
	TaskID   string
	Blocking []TaskRef
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("task %s is blocked by pending dependencies: %s", e.TaskID, joinRefs(e.Blocking))
}

// WouldInvalidateDependentsError reports an attempt to revert a completed
// task that completed tasks still depend on.
type WouldInvalidateDependentsError struct {
	TaskID     string
	Dependents []TaskRef
}

func (e *WouldInvalidateDependentsError) Error() string {
	return fmt.Sprintf("task %s cannot be reopened: completed tasks depend on it: %s", e.TaskID, joinRefs(e.Dependents))
}

// HasDependentsError reports a deletion attempt on a task that other live
// tasks depend on.
type HasDependentsError struct {
	TaskID     string
	Dependents []TaskRef
}

func (e *HasDependentsError) Error() string {
	return fmt.Sprintf("task %s cannot be deleted: other tasks depend on it: %s", e.TaskID, joinRefs(e.Dependents))
}
