package cli

import (
	"github.com/valter-silva-au/eve/internal/core"
	"github.com/valter-silva-au/eve/internal/observability"
)

// Service instances, set during app initialization in app.go.
var (
	BasePath string
	Cfg      *core.Config
	TaskMgr  core.TaskManager
	EventLog observability.EventLog
)
