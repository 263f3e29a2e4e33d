package core

// DependencyValidator answers dependency-graph queries against the
// registry's current edge set. It holds no graph state of its own: every
// query reads the registry at call time, so results always reflect the
// live edges rather than a snapshot.
type DependencyValidator struct {
	registry *TaskRegistry
}

// NewDependencyValidator creates a validator reading edges from the
// given registry.
func NewDependencyValidator(registry *TaskRegistry) *DependencyValidator {
	return &DependencyValidator{registry: registry}
}

// WouldCreateCycle reports whether adding the edge taskID -> dependencyID
// would close a cycle. It walks the existing edges outward from
// dependencyID (toward prerequisites of prerequisites) and returns true
// the moment taskID is reached. The per-call visited set bounds the walk
// to O(V+E) and keeps it terminating even on data that is already
// self-referential or cyclic. Ids that do not resolve to a live task
// simply terminate that branch.
func (v *DependencyValidator) WouldCreateCycle(taskID, dependencyID string) bool {
	visited := make(map[string]struct{})
	stack := []string{dependencyID}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if id == taskID {
			return true
		}
		if _, seen := visited[id]; seen {
			continue
		}
		visited[id] = struct{}{}

		task, ok := v.registry.Get(id)
		if !ok {
			continue
		}
		stack = append(stack, task.DependsOn...)
	}
	return false
}

// DependenciesOf returns the ids the given task directly depends on.
// Returns nil for an unknown task.
func (v *DependencyValidator) DependenciesOf(id string) []string {
	task, ok := v.registry.Get(id)
	if !ok {
		return nil
	}
	out := make([]string, len(task.DependsOn))
	copy(out, task.DependsOn)
	return out
}

// DependentsOf returns the ids of tasks that directly depend on the given
// id, in registry insertion order. The reverse lookup is a linear scan, so
// it always reflects the current edge set exactly.
func (v *DependencyValidator) DependentsOf(id string) []string {
	var out []string
	for _, task := range v.registry.All() {
		if task.HasDependency(id) {
			out = append(out, task.ID)
		}
	}
	return out
}
