package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// TaskIDGenerator produces unique, opaque task identifiers. Ids restored
// from storage are accepted as-is regardless of format.
type TaskIDGenerator interface {
	GenerateTaskID() (string, error)
}

// fileTaskIDGenerator persists a monotonically increasing counter in a
// .task_counter file. An id consumed by a creation attempt that later
// fails validation is skipped, never reused.
type fileTaskIDGenerator struct {
	basePath string
	prefix   string
	padWidth int
}

// NewTaskIDGenerator creates a TaskIDGenerator storing its counter under
// basePath. padWidth controls zero-padding of the numeric part; 0 disables
// padding (TASK-1 instead of TASK-00001).
func NewTaskIDGenerator(basePath, prefix string, padWidth int) TaskIDGenerator {
	return &fileTaskIDGenerator{
		basePath: basePath,
		prefix:   prefix,
		padWidth: padWidth,
	}
}

func (g *fileTaskIDGenerator) GenerateTaskID() (string, error) {
	counterPath := filepath.Join(g.basePath, ".task_counter")

	counter := 0
	data, err := os.ReadFile(counterPath)
	if err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("reading task counter: %w", err)
	}
	if err == nil {
		trimmed := strings.TrimSpace(string(data))
		if trimmed != "" {
			counter, err = strconv.Atoi(trimmed)
			if err != nil {
				return "", fmt.Errorf("parsing task counter %q: %w", trimmed, err)
			}
		}
	}

	counter++

	if err := os.MkdirAll(g.basePath, 0o750); err != nil {
		return "", fmt.Errorf("creating directory for task counter: %w", err)
	}
	if err := os.WriteFile(counterPath, []byte(strconv.Itoa(counter)), 0o600); err != nil {
		return "", fmt.Errorf("writing task counter: %w", err)
	}

	if g.padWidth > 0 {
		return fmt.Sprintf("%s-%0*d", g.prefix, g.padWidth, counter), nil
	}
	return fmt.Sprintf("%s-%d", g.prefix, counter), nil
}
