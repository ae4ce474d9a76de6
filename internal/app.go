// Package internal provides the App struct that wires all components of
// the agenthq orchestration system together.
package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/northgate-labs/agenthq/internal/cli"
	"github.com/northgate-labs/agenthq/internal/core"
	"github.com/northgate-labs/agenthq/internal/observability"
	"github.com/northgate-labs/agenthq/internal/storage"
)

// EventLogName is the JSONL event log file at the workspace root.
const EventLogName = ".agenthq_events.jsonl"

// App holds all service dependencies for the agenthq system.
type App struct {
	BasePath string

	// Configuration
	ConfigMgr core.ConfigurationManager
	Config    *core.WorkspaceConfig

	// Storage layer
	Agents   storage.AgentStore
	Tasks    storage.TaskStore
	Messages storage.MessageStore
	Board    storage.BoardStore
	OrgStore storage.OrgStore

	// Core services
	Bus    *core.EventBus
	OrgMgr core.OrgManager
	Engine *core.Engine

	// Observability
	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
}

// NewApp creates and wires all components. basePath is the workspace
// directory holding agents/, tasks/, messages/, board/, and org.json.
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath}

	app.ConfigMgr = core.NewConfigurationManager(basePath)
	cfg, err := app.ConfigMgr.Load()
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	app.Config = cfg

	app.Agents = storage.NewAgentStore(basePath)
	app.Tasks = storage.NewTaskStore(basePath)
	app.Messages = storage.NewMessageStore(basePath)
	app.Board = storage.NewBoardStore(basePath)
	app.OrgStore = storage.NewOrgStore(basePath)
	app.OrgMgr = core.NewOrgManager(app.OrgStore)

	// Observability first so the bus can report handler failures into it.
	eventLog, err := observability.NewJSONLEventLog(filepath.Join(basePath, EventLogName))
	if err != nil {
		// Non-fatal: run without a durable event trace.
		eventLog = nil
	}
	app.EventLog = eventLog
	if eventLog != nil {
		app.MetricsCalc = observability.NewMetricsCalculator(eventLog)
	}

	app.Bus = core.NewEventBus(func(kind core.EventKind, err error) {
		if eventLog != nil {
			_ = eventLog.Write(observability.Event{
				Kind: "bus.handler_error",
				Data: map[string]any{"event": string(kind), "error": err.Error()},
			})
		}
	})
	if eventLog != nil {
		subscribeRecorder(app.Bus, eventLog)
	}

	app.Engine = core.NewEngine(
		app.Agents, app.Tasks, app.Messages, app.Board, app.OrgMgr, app.Bus,
		core.EngineConfig{MaxAgents: cfg.MaxAgents},
	)

	// Hand the CLI layer its service instances.
	cli.BasePath = basePath
	cli.Engine = app.Engine
	cli.Agents = app.Agents
	cli.Tasks = app.Tasks
	cli.Messages = app.Messages
	cli.Board = app.Board
	cli.OrgMgr = app.OrgMgr
	cli.EventLog = app.EventLog
	cli.MetricsCalc = app.MetricsCalc

	return app, nil
}

// Close releases resources held by the App.
func (a *App) Close() error {
	if a.EventLog != nil {
		return a.EventLog.Close()
	}
	return nil
}

// recordedKinds lists every event kind mirrored into the JSONL log.
var recordedKinds = []core.EventKind{
	core.EventAgentCreated,
	core.EventAgentUpdated,
	core.EventAgentDeleted,
	core.EventAgentStatusChanged,
	core.EventTaskCreated,
	core.EventTaskStatusChanged,
	core.EventMessageSent,
	core.EventMessageRead,
	core.EventBoardPosted,
	core.EventOrgChanged,
	core.EventDelegationDone,
}

// subscribeRecorder registers a bus handler per event kind that mirrors
// the payload into the event log.
func subscribeRecorder(bus *core.EventBus, log observability.EventLog) {
	for _, kind := range recordedKinds {
		k := kind
		bus.Subscribe(k, func(payload any) {
			_ = log.Write(observability.Event{
				Kind: string(k),
				Data: eventData(payload),
			})
		})
	}
}

// eventData flattens a typed bus payload into the log's data map.
func eventData(payload any) map[string]any {
	switch p := payload.(type) {
	case core.AgentEvent:
		return map[string]any{"name": p.Name, "status": p.Status}
	case core.TaskEvent:
		return map[string]any{"task_id": p.TaskID, "status": p.Status}
	case core.MessageEvent:
		return map[string]any{"thread_id": p.ThreadID, "message_id": p.MessageID, "to": p.ToAgentID}
	case core.BoardEvent:
		return map[string]any{"item_id": p.ItemID, "type": p.Type, "author": p.Author}
	case core.OrgEvent:
		data := map[string]any{"name": p.AgentName}
		if p.ParentAgentName != nil {
			data["parent"] = *p.ParentAgentName
		}
		return data
	case core.DelegationEvent:
		return map[string]any{
			"child_task_id":  p.ChildTaskID,
			"parent_task_id": p.ParentTaskID,
			"agent":          p.AgentName,
			"artifact":       p.ArtifactPath,
		}
	default:
		return map[string]any{"payload": fmt.Sprintf("%v", payload)}
	}
}

// ResolveBasePath returns the workspace directory: $AGENTHQ_HOME when
// set, otherwise the current directory.
func ResolveBasePath() string {
	if home := os.Getenv("AGENTHQ_HOME"); home != "" {
		return home
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}

