// Package internal provides the App struct that wires all components of
// eve together and initializes the CLI layer.
package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/valter-silva-au/eve/internal/cli"
	"github.com/valter-silva-au/eve/internal/core"
	"github.com/valter-silva-au/eve/internal/observability"
	"github.com/valter-silva-au/eve/internal/storage"
)

// App holds all service dependencies for eve.
type App struct {
	BasePath string

	Cfg     *core.Config
	Store   *storage.FileTaskStore
	IDGen   core.TaskIDGenerator
	TaskMgr core.TaskManager

	EventLog observability.EventLog
}

// NewApp creates and wires all components. basePath is the data directory
// holding .eveconfig, the task file, the id counter, and the event log.
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath}

	cfg, err := core.LoadConfig(basePath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	app.Cfg = cfg

	app.Store = storage.NewFileTaskStore(basePath, cfg.StorageFile)
	app.IDGen = core.NewTaskIDGenerator(basePath, cfg.TaskIDPrefix, cfg.TaskIDPadWidth)

	// Non-fatal: run without an audit trail if the log can't be created.
	eventLogPath := filepath.Join(basePath, ".eve_events.jsonl")
	app.EventLog, err = observability.NewJSONLEventLog(eventLogPath)
	if err != nil {
		app.EventLog = nil
	}
	var recorder core.EventRecorder
	if app.EventLog != nil {
		recorder = &eventLogRecorder{log: app.EventLog}
	}

	app.TaskMgr, err = core.NewTaskManager(app.Store, app.IDGen, recorder, core.ManagerDefaults{
		Priority: cfg.DefaultPriority,
		Category: cfg.DefaultCategory,
	})
	if err != nil {
		return nil, err
	}

	// --- Wire CLI package-level variables ---
	cli.BasePath = basePath
	cli.Cfg = app.Cfg
	cli.TaskMgr = app.TaskMgr
	cli.EventLog = app.EventLog

	return app, nil
}

// Close releases resources held by the App, such as the event log file
// handle. Safe to call when EventLog is nil.
func (a *App) Close() error {
	if a.EventLog != nil {
		return a.EventLog.Close()
	}
	return nil
}

// ResolveBasePath determines the eve data directory. It checks the
// EVE_HOME env var, then walks up from the current directory looking for
// .eveconfig, and finally falls back to the current directory.
func ResolveBasePath() string {
	if home := os.Getenv("EVE_HOME"); home != "" {
		return home
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ".eveconfig")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	cwd, _ := os.Getwd()
	return cwd
}

// eventLogRecorder adapts observability.EventLog to core.EventRecorder.
// Write errors are swallowed: a failed audit entry never fails the
// mutation it narrates.
type eventLogRecorder struct {
	log observability.EventLog
}

func (r *eventLogRecorder) Record(level, eventType, message string, data map[string]any) {
	_ = r.log.Write(observability.Event{
		Time:    time.Now().UTC(),
		Level:   level,
		Type:    eventType,
		Message: message,
		Data:    data,
	})
}
