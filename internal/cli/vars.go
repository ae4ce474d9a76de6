package cli

import (
	"github.com/northgate-labs/agenthq/internal/core"
	"github.com/northgate-labs/agenthq/internal/observability"
	"github.com/northgate-labs/agenthq/internal/storage"
)

// Service instances, set during app initialization in internal/app.go.
var (
	BasePath string

	Engine   *core.Engine
	OrgMgr   core.OrgManager
	Agents   storage.AgentStore
	Tasks    storage.TaskStore
	Messages storage.MessageStore
	Board    storage.BoardStore

	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
)
