package models

import (
	"fmt"
	"strings"
	"time"
)

// Priority represents the urgency level of a task.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns the sort rank of a priority. Lower ranks sort first;
// unknown values sort after all known ones.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// Valid reports whether p is a known priority value.
func (p Priority) Valid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// Status represents the current lifecycle state of a task.
type Status string

const (
	StatusPending  Status = "pending"
	StatusComplete Status = "complete"
)

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusComplete
}

// Quadrant classifies a task on the Eisenhower urgency/importance matrix.
// The empty string means the task is unclassified.
type Quadrant string

const (
	QuadrantNone Quadrant = ""
	Q1           Quadrant = "Q1" // urgent and important
	Q2           Quadrant = "Q2" // important, not urgent
	Q3           Quadrant = "Q3" // urgent, not important
	Q4           Quadrant = "Q4" // neither urgent nor important
)

// Valid reports whether q is a known quadrant or unclassified.
func (q Quadrant) Valid() bool {
	switch q {
	case QuadrantNone, Q1, Q2, Q3, Q4:
		return true
	default:
		return false
	}
}

// Rank returns the sort rank of a quadrant. Unclassified sorts last.
func (q Quadrant) Rank() int {
	switch q {
	case Q1:
		return 0
	case Q2:
		return 1
	case Q3:
		return 2
	case Q4:
		return 3
	default:
		return 4
	}
}

// dateLayout is the wire format for calendar dates.
const dateLayout = "2006-01-02"

// Date is a calendar date without a time component. It marshals to a
// YYYY-MM-DD JSON string.
type Date struct {
	time.Time
}

// ParseDate parses a YYYY-MM-DD string into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: expected YYYY-MM-DD", s)
	}
	return Date{Time: t}, nil
}

// String returns the date in YYYY-MM-DD form.
func (d Date) String() string {
	return d.Format(dateLayout)
}

// Before reports whether d falls on an earlier calendar day than other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// After reports whether d falls on a later calendar day than other.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// Equal reports whether d and other are the same calendar day.
func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

// MarshalJSON encodes the date as a quoted YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON decodes a quoted YYYY-MM-DD string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Today returns the current calendar date, truncated to midnight UTC.
func Today() Date {
	now := time.Now().UTC()
	return Date{Time: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)}
}

// Task represents a single task in the collection. Dependency edges are
// stored as identifier sets, never as pointers to other tasks; all edge
// resolution goes through the registry.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *Date      `json:"due_date,omitempty"`
	Priority    Priority   `json:"priority"`
	Category    string     `json:"category,omitempty"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"` // set iff Status == complete
	Quadrant    Quadrant   `json:"quadrant,omitempty"`
	DependsOn   []string   `json:"depends_on,omitempty"`
	Projects    []string   `json:"projects,omitempty"`
	Contexts    []string   `json:"contexts,omitempty"`
}

// HasDependency reports whether the task depends on the given id.
func (t *Task) HasDependency(id string) bool {
	return containsString(t.DependsOn, id)
}

// AddDependency records a dependency edge if not already present.
// It performs no validation; that is the lifecycle controller's job.
func (t *Task) AddDependency(id string) {
	if !containsString(t.DependsOn, id) {
		t.DependsOn = append(t.DependsOn, id)
	}
}

// RemoveDependency drops a dependency edge, reporting whether it existed.
func (t *Task) RemoveDependency(id string) bool {
	var removed bool
	t.DependsOn, removed = removeString(t.DependsOn, id)
	return removed
}

// HasProject reports whether the task carries the given project tag.
func (t *Task) HasProject(tag string) bool {
	return containsString(t.Projects, tag)
}

// AddProject records a project tag if not already present.
func (t *Task) AddProject(tag string) {
	if !containsString(t.Projects, tag) {
		t.Projects = append(t.Projects, tag)
	}
}

// RemoveProject drops a project tag, reporting whether it existed.
func (t *Task) RemoveProject(tag string) bool {
	var removed bool
	t.Projects, removed = removeString(t.Projects, tag)
	return removed
}

// HasContext reports whether the task carries the given context tag.
func (t *Task) HasContext(tag string) bool {
	return containsString(t.Contexts, tag)
}

// AddContext records a context tag if not already present.
func (t *Task) AddContext(tag string) {
	if !containsString(t.Contexts, tag) {
		t.Contexts = append(t.Contexts, tag)
	}
}

// RemoveContext drops a context tag, reporting whether it existed.
func (t *Task) RemoveContext(tag string) bool {
	var removed bool
	t.Contexts, removed = removeString(t.Contexts, tag)
	return removed
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func removeString(list []string, s string) ([]string, bool) {
	for i, v := range list {
		if v == s {
			return append(list[:i], list[i+1:]...), true
		}
	}
	return list, false
}
