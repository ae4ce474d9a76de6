package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/northgate-labs/agenthq/internal/storage"
	"github.com/northgate-labs/agenthq/pkg/models"
)

var (
	// ErrAgentLimit is returned when spawning would exceed the configured
	// number of concurrently running agents. It is an expected outcome,
	// not an I/O failure; callers implement their own backoff.
	ErrAgentLimit = errors.New("concurrent agent limit reached")

	// ErrAgentRunning is returned when an operation requires an idle
	// agent but the agent currently holds a task.
	ErrAgentRunning = errors.New("agent is running a task")

	// ErrAgentExists is returned when creating an agent whose name is
	// already taken.
	ErrAgentExists = errors.New("agent already exists")
)

// runningAgent is the in-memory registry entry for a spawned agent. The
// cancel handle is made available to callers; what cancellation means for
// the black-box execution is up to the driver.
type runningAgent struct {
	taskID string
	ctx    context.Context
	cancel context.CancelFunc
}

// Engine is the orchestration facade. It owns the concurrency accounting,
// drives the task and agent state machines, triggers the delegation flow
// on completion, and publishes an event for every externally visible
// mutation. The running registry is in-memory only: a process crash loses
// it, and reconciliation against persisted agent status is the driver's
// concern.
type Engine struct {
	agents   storage.AgentStore
	tasks    storage.TaskStore
	messages storage.MessageStore
	board    storage.BoardStore
	org      OrgManager
	bus      *EventBus

	maxAgents int

	mu      sync.Mutex
	running map[string]*runningAgent
}

// EngineConfig carries the Engine's tunables.
type EngineConfig struct {
	// MaxAgents bounds the number of concurrently running agents.
	// Values below 1 fall back to DefaultMaxAgents.
	MaxAgents int
}

// DefaultMaxAgents is the concurrency limit used when none is configured.
const DefaultMaxAgents = 3

// NewEngine wires an Engine over the given stores and bus.
func NewEngine(
	agents storage.AgentStore,
	tasks storage.TaskStore,
	messages storage.MessageStore,
	board storage.BoardStore,
	org OrgManager,
	bus *EventBus,
	cfg EngineConfig,
) *Engine {
	maxAgents := cfg.MaxAgents
	if maxAgents < 1 {
		maxAgents = DefaultMaxAgents
	}
	return &Engine{
		agents:    agents,
		tasks:     tasks,
		messages:  messages,
		board:     board,
		org:       org,
		bus:       bus,
		maxAgents: maxAgents,
		running:   make(map[string]*runningAgent),
	}
}

// --- Agents ---

// CreateAgentParams describes a new agent.
type CreateAgentParams struct {
	Name            string
	DisplayName     string
	Role            string
	Department      string
	Personality     string
	Level           models.AgentLevel
	ParentAgentName *string
}

// CreateAgent persists a new idle agent, places it in the org forest
// under the given parent (or as a root), and emits agent.created.
func (e *Engine) CreateAgent(params CreateAgentParams) (*models.Agent, error) {
	if params.Name == "" {
		return nil, fmt.Errorf("creating agent: name must not be empty")
	}
	existing, err := e.agents.Get(params.Name)
	if err != nil {
		return nil, fmt.Errorf("creating agent %s: %w", params.Name, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("creating agent %s: %w", params.Name, ErrAgentExists)
	}

	now := time.Now().UTC()
	agent := &models.Agent{
		Name:        params.Name,
		DisplayName: params.DisplayName,
		Role:        params.Role,
		Department:  params.Department,
		Personality: params.Personality,
		Level:       params.Level,
		Status:      models.AgentIdle,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if agent.DisplayName == "" {
		agent.DisplayName = agent.Name
	}
	if agent.Level == "" {
		agent.Level = models.LevelAssociate
	}
	if err := e.agents.Save(agent); err != nil {
		return nil, err
	}
	if err := e.org.SetParent(agent.Name, params.ParentAgentName); err != nil {
		return nil, fmt.Errorf("creating agent %s: %w", agent.Name, err)
	}

	e.bus.Publish(EventAgentCreated, AgentEvent{Name: agent.Name, Status: string(agent.Status)})
	e.bus.Publish(EventOrgChanged, OrgEvent{AgentName: agent.Name, ParentAgentName: params.ParentAgentName})
	return agent, nil
}

// UpdateAgentParams carries direct property updates. Empty fields are
// left unchanged. Status and current task are engine-owned and cannot be
// set here.
type UpdateAgentParams struct {
	DisplayName string
	Role        string
	Department  string
	Personality string
	Level       models.AgentLevel
}

// UpdateAgent applies presentation-field updates and emits agent.updated.
func (e *Engine) UpdateAgent(name string, params UpdateAgentParams) (*models.Agent, error) {
	agent, err := e.agents.Get(name)
	if err != nil {
		return nil, err
	}
	if agent == nil {
		return nil, fmt.Errorf("updating agent %s: not found", name)
	}

	if params.DisplayName != "" {
		agent.DisplayName = params.DisplayName
	}
	if params.Role != "" {
		agent.Role = params.Role
	}
	if params.Department != "" {
		agent.Department = params.Department
	}
	if params.Personality != "" {
		agent.Personality = params.Personality
	}
	if params.Level != "" {
		agent.Level = params.Level
	}
	agent.UpdatedAt = time.Now().UTC()

	if err := e.agents.Save(agent); err != nil {
		return nil, err
	}
	e.bus.Publish(EventAgentUpdated, AgentEvent{Name: agent.Name, Status: string(agent.Status)})
	return agent, nil
}

// DeleteAgent removes a non-running agent and its org node; the removed
// node's reports escalate to its own manager. Emits agent.deleted and
// org.changed.
func (e *Engine) DeleteAgent(name string) error {
	e.mu.Lock()
	_, isRunning := e.running[name]
	e.mu.Unlock()
	if isRunning {
		return fmt.Errorf("deleting agent %s: %w", name, ErrAgentRunning)
	}

	agent, err := e.agents.Get(name)
	if err != nil {
		return err
	}
	if agent != nil && agent.Status == models.AgentRunning {
		return fmt.Errorf("deleting agent %s: %w", name, ErrAgentRunning)
	}

	if err := e.agents.Delete(name); err != nil {
		return err
	}
	if err := e.org.RemoveAgent(name); err != nil {
		return err
	}

	e.bus.Publish(EventAgentDeleted, AgentEvent{Name: name})
	e.bus.Publish(EventOrgChanged, OrgEvent{AgentName: name})
	return nil
}

// SetAgentParent re-parents an agent in the org forest and emits
// org.changed.
func (e *Engine) SetAgentParent(name string, parent *string) error {
	if err := e.org.SetParent(name, parent); err != nil {
		return err
	}
	e.bus.Publish(EventOrgChanged, OrgEvent{AgentName: name, ParentAgentName: parent})
	return nil
}

// --- Tasks ---

// CreateTaskParams describes a new unit of work.
type CreateTaskParams struct {
	AssigneeID   string
	DelegatorID  *string
	ParentTaskID *string
	Prompt       string
	Context      string
	Priority     int
}

// CreateTask persists a new pending task and emits task.created. Priority
// is advisory only; the engine never schedules by it.
func (e *Engine) CreateTask(params CreateTaskParams) (*models.Task, error) {
	if params.AssigneeID == "" {
		return nil, fmt.Errorf("creating task: assignee must not be empty")
	}
	task := &models.Task{
		ID:           uuid.NewString(),
		ParentTaskID: params.ParentTaskID,
		AssigneeID:   params.AssigneeID,
		DelegatorID:  params.DelegatorID,
		Prompt:       params.Prompt,
		Context:      params.Context,
		Priority:     params.Priority,
		Status:       models.TaskPending,
		CreatedAt:    time.Now().UTC(),
	}
	if err := e.tasks.Save(task); err != nil {
		return nil, err
	}
	e.bus.Publish(EventTaskCreated, TaskEvent{TaskID: task.ID, Status: string(task.Status)})
	return task, nil
}

// SpawnAgent moves a pending task to running and marks the agent as its
// occupant. The returned context is the cancellation handle for the
// black-box execution; the engine itself attaches no behavior to it.
// Exceeding the concurrency limit fails with ErrAgentLimit before any
// stored state is touched.
func (e *Engine) SpawnAgent(ctx context.Context, agentName, taskID string) (context.Context, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.running[agentName]; ok {
		return nil, fmt.Errorf("spawning %s: %w", agentName, ErrAgentRunning)
	}
	if len(e.running) >= e.maxAgents {
		return nil, fmt.Errorf("spawning %s: %w", agentName, ErrAgentLimit)
	}

	agent, err := e.agents.Get(agentName)
	if err != nil {
		return nil, err
	}
	if agent == nil {
		return nil, fmt.Errorf("spawning %s: agent not found", agentName)
	}
	task, err := e.tasks.Get(taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, fmt.Errorf("spawning %s: task %s not found", agentName, taskID)
	}
	if task.Status != models.TaskPending {
		return nil, fmt.Errorf("spawning %s: task %s is %s, want pending", agentName, taskID, task.Status)
	}

	now := time.Now().UTC()
	task.Status = models.TaskRunning
	task.StartedAt = &now
	if err := e.tasks.Save(task); err != nil {
		return nil, err
	}

	agent.Status = models.AgentRunning
	agent.CurrentTaskID = &task.ID
	agent.UpdatedAt = now
	if err := e.agents.Save(agent); err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithCancel(ctx)
	e.running[agentName] = &runningAgent{taskID: taskID, ctx: runCtx, cancel: cancel}

	e.bus.Publish(EventTaskStatusChanged, TaskEvent{TaskID: task.ID, Status: string(task.Status)})
	e.bus.Publish(EventAgentStatusChanged, AgentEvent{Name: agent.Name, Status: string(agent.Status)})
	return runCtx, nil
}

// CompleteResult carries the externally supplied outcome of a task.
type CompleteResult struct {
	Status    models.TaskStatus
	Result    *string
	Telemetry *models.TaskTelemetry
}

// CompleteAgent records a terminal outcome for the agent's current task,
// frees the concurrency slot, resets the agent to idle, and routes the
// result to the delegating parent's assignee when the task was delegated.
// A missing task does not prevent the agent reset, and vice versa.
func (e *Engine) CompleteAgent(agentName string, outcome CompleteResult) error {
	if !outcome.Status.IsTerminal() {
		return fmt.Errorf("completing %s: status %s is not terminal", agentName, outcome.Status)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	taskID := ""
	if entry, ok := e.running[agentName]; ok {
		taskID = entry.taskID
	}

	agent, err := e.agents.Get(agentName)
	if err != nil {
		return err
	}
	if taskID == "" && agent != nil && agent.CurrentTaskID != nil {
		// The registry was lost (process restart); fall back to the
		// persisted back-reference.
		taskID = *agent.CurrentTaskID
	}

	now := time.Now().UTC()

	var task *models.Task
	if taskID != "" {
		task, err = e.tasks.Get(taskID)
		if err != nil {
			return err
		}
	}
	if task != nil {
		task.Status = outcome.Status
		task.Result = outcome.Result
		task.Telemetry = outcome.Telemetry
		task.CompletedAt = &now
		if err := e.tasks.Save(task); err != nil {
			return err
		}
		e.bus.Publish(EventTaskStatusChanged, TaskEvent{TaskID: task.ID, Status: string(task.Status)})

		artifact, err := DeliverResult(e.agents, e.tasks, task)
		if err != nil {
			return err
		}
		if artifact != "" {
			e.bus.Publish(EventDelegationDone, DelegationEvent{
				ChildTaskID:  task.ID,
				ParentTaskID: *task.ParentTaskID,
				AgentName:    agentName,
				ArtifactPath: artifact,
			})
		}
	}

	if agent != nil {
		agent.Status = models.AgentIdle
		agent.CurrentTaskID = nil
		agent.UpdatedAt = now
		if err := e.agents.Save(agent); err != nil {
			return err
		}
		e.bus.Publish(EventAgentStatusChanged, AgentEvent{Name: agent.Name, Status: string(agent.Status)})
	}

	if entry, ok := e.running[agentName]; ok {
		entry.cancel()
		delete(e.running, agentName)
	}
	return nil
}

// CancelAgent fires the running agent's cancellation handle. The engine
// does not change any stored state: interrupting the black-box execution
// and reporting a terminal status stays with the driver.
func (e *Engine) CancelAgent(agentName string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry, ok := e.running[agentName]
	if !ok {
		return false
	}
	entry.cancel()
	return true
}

// MaxAgents returns the configured concurrency limit.
func (e *Engine) MaxAgents() int {
	return e.maxAgents
}

// RunningCount returns the current size of the running registry.
func (e *Engine) RunningCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.running)
}

// RunningAgents returns the names in the running registry together with
// their task ids.
func (e *Engine) RunningAgents() map[string]string {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make(map[string]string, len(e.running))
	for name, entry := range e.running {
		out[name] = entry.taskID
	}
	return out
}

// --- Messages ---

// SendMessageParams describes an outgoing message.
type SendMessageParams struct {
	ThreadID    string
	FromAgentID *string
	ToAgentID   string
	Subject     string
	Body        string
	Type        models.MessageType
}

// SendMessage persists a message (opening a new thread when no thread id
// is given) and emits message.sent. A saved message is considered
// delivered: the record sits in the recipient's workspace.
func (e *Engine) SendMessage(params SendMessageParams) (*models.Message, error) {
	if params.ToAgentID == "" {
		return nil, fmt.Errorf("sending message: recipient must not be empty")
	}
	msgType := params.Type
	if msgType == "" {
		msgType = models.MessageDirect
	}
	threadID := params.ThreadID
	if threadID == "" {
		threadID = uuid.NewString()
	}
	msg := &models.Message{
		ID:          uuid.NewString(),
		ThreadID:    threadID,
		FromAgentID: params.FromAgentID,
		ToAgentID:   params.ToAgentID,
		Subject:     params.Subject,
		Body:        params.Body,
		Type:        msgType,
		Status:      models.MessageDelivered,
		CreatedAt:   time.Now().UTC(),
	}
	if err := e.messages.Save(msg); err != nil {
		return nil, err
	}
	e.bus.Publish(EventMessageSent, MessageEvent{ThreadID: msg.ThreadID, MessageID: msg.ID, ToAgentID: msg.ToAgentID})
	return msg, nil
}

// MarkMessageRead applies the read transition and emits message.read the
// first time only.
func (e *Engine) MarkMessageRead(threadID, msgID string) (*models.Message, error) {
	before, err := e.messages.Get(threadID, msgID)
	if err != nil || before == nil {
		return before, err
	}
	alreadyRead := before.Status == models.MessageRead

	msg, err := e.messages.MarkRead(threadID, msgID)
	if err != nil {
		return nil, err
	}
	if msg != nil && !alreadyRead {
		e.bus.Publish(EventMessageRead, MessageEvent{ThreadID: msg.ThreadID, MessageID: msg.ID, ToAgentID: msg.ToAgentID})
	}
	return msg, nil
}

// --- Board ---

// PostBoardItemParams describes a new board posting.
type PostBoardItemParams struct {
	Type    models.BoardItemType
	Author  string
	Summary string
	Body    string
}

// PostBoardItem appends an item to the shared board and emits
// board.posted. The board is append-only; there is no update.
func (e *Engine) PostBoardItem(params PostBoardItemParams) (*models.BoardItem, error) {
	if !params.Type.Valid() {
		return nil, fmt.Errorf("posting board item: unknown type %q", params.Type)
	}
	item := &models.BoardItem{
		ID:        uuid.NewString(),
		Type:      params.Type,
		Author:    params.Author,
		Summary:   params.Summary,
		Body:      params.Body,
		CreatedAt: time.Now().UTC(),
	}
	if err := e.board.Save(item); err != nil {
		return nil, err
	}
	e.bus.Publish(EventBoardPosted, BoardEvent{ItemID: item.ID, Type: string(item.Type), Author: item.Author})
	return item, nil
}
