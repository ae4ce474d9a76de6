package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/northgate-labs/agenthq/internal/storage"
	"github.com/northgate-labs/agenthq/pkg/models"
)

type engineFixture struct {
	engine *Engine
	agents storage.AgentStore
	tasks  storage.TaskStore
	msgs   storage.MessageStore
	board  storage.BoardStore
	org    OrgManager
	bus    *EventBus
	events []EventKind
}

func setupEngine(t *testing.T, maxAgents int) *engineFixture {
	t.Helper()
	dir := t.TempDir()

	f := &engineFixture{
		agents: storage.NewAgentStore(dir),
		tasks:  storage.NewTaskStore(dir),
		msgs:   storage.NewMessageStore(dir),
		board:  storage.NewBoardStore(dir),
		org:    NewOrgManager(storage.NewOrgStore(dir)),
		bus:    NewEventBus(nil),
	}
	for _, kind := range []EventKind{
		EventAgentCreated, EventAgentUpdated, EventAgentDeleted, EventAgentStatusChanged,
		EventTaskCreated, EventTaskStatusChanged,
		EventMessageSent, EventMessageRead,
		EventBoardPosted, EventOrgChanged, EventDelegationDone,
	} {
		k := kind
		f.bus.Subscribe(k, func(any) { f.events = append(f.events, k) })
	}
	f.engine = NewEngine(f.agents, f.tasks, f.msgs, f.board, f.org, f.bus, EngineConfig{MaxAgents: maxAgents})
	return f
}

func (f *engineFixture) countEvents(kind EventKind) int {
	n := 0
	for _, k := range f.events {
		if k == kind {
			n++
		}
	}
	return n
}

func (f *engineFixture) mustCreateAgent(t *testing.T, name string, parent *string) *models.Agent {
	t.Helper()
	agent, err := f.engine.CreateAgent(CreateAgentParams{Name: name, ParentAgentName: parent})
	if err != nil {
		t.Fatalf("creating agent %s: %v", name, err)
	}
	return agent
}

func (f *engineFixture) mustCreateTask(t *testing.T, params CreateTaskParams) *models.Task {
	t.Helper()
	task, err := f.engine.CreateTask(params)
	if err != nil {
		t.Fatalf("creating task: %v", err)
	}
	return task
}

func TestEngine_CreateAgentDefaults(t *testing.T) {
	f := setupEngine(t, 0)

	agent := f.mustCreateAgent(t, "maria", nil)

	if agent.DisplayName != "maria" {
		t.Errorf("display name should default to the name, got %s", agent.DisplayName)
	}
	if agent.Level != models.LevelAssociate {
		t.Errorf("level should default to associate, got %s", agent.Level)
	}
	if agent.Status != models.AgentIdle {
		t.Errorf("new agent should be idle, got %s", agent.Status)
	}
	if agent.CurrentTaskID != nil {
		t.Errorf("new agent should have no task, got %v", *agent.CurrentTaskID)
	}

	// Persisted and placed as an org root.
	saved, err := f.agents.Get("maria")
	if err != nil || saved == nil {
		t.Fatalf("agent should be persisted: %v", err)
	}
	parent, err := f.org.GetParent("maria")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parent != nil {
		t.Errorf("agent without a parent should be an org root, got %v", *parent)
	}

	if f.countEvents(EventAgentCreated) != 1 {
		t.Error("expected one agent.created event")
	}
	if f.countEvents(EventOrgChanged) != 1 {
		t.Error("expected one org.changed event")
	}
}

func TestEngine_CreateAgentUnderParent(t *testing.T) {
	f := setupEngine(t, 0)

	f.mustCreateAgent(t, "ceo", nil)
	f.mustCreateAgent(t, "eng", strptr("ceo"))

	parent, err := f.org.GetParent("eng")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parent == nil || *parent != "ceo" {
		t.Errorf("eng should report to ceo, got %v", parent)
	}
}

func TestEngine_CreateAgentDuplicate(t *testing.T) {
	f := setupEngine(t, 0)

	f.mustCreateAgent(t, "maria", nil)
	_, err := f.engine.CreateAgent(CreateAgentParams{Name: "maria"})
	if !errors.Is(err, ErrAgentExists) {
		t.Fatalf("expected ErrAgentExists, got %v", err)
	}
}

func TestEngine_UpdateAgent(t *testing.T) {
	f := setupEngine(t, 0)

	f.mustCreateAgent(t, "maria", nil)
	updated, err := f.engine.UpdateAgent("maria", UpdateAgentParams{Role: "architect", Level: models.LevelDirector})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Role != "architect" || updated.Level != models.LevelDirector {
		t.Errorf("update not applied: %+v", updated)
	}
	// Untouched fields survive.
	if updated.DisplayName != "maria" {
		t.Errorf("display name should be unchanged, got %s", updated.DisplayName)
	}
	if f.countEvents(EventAgentUpdated) != 1 {
		t.Error("expected one agent.updated event")
	}
}

func TestEngine_CreateTask(t *testing.T) {
	f := setupEngine(t, 0)

	task := f.mustCreateTask(t, CreateTaskParams{AssigneeID: "maria", Prompt: "build it", Priority: 1})

	if task.ID == "" {
		t.Fatal("task should get an id")
	}
	if task.Status != models.TaskPending {
		t.Errorf("new task should be pending, got %s", task.Status)
	}
	saved, err := f.tasks.Get(task.ID)
	if err != nil || saved == nil {
		t.Fatalf("task should be persisted: %v", err)
	}
	if f.countEvents(EventTaskCreated) != 1 {
		t.Error("expected one task.created event")
	}
}

func TestEngine_SpawnAgent(t *testing.T) {
	f := setupEngine(t, 0)

	f.mustCreateAgent(t, "maria", nil)
	task := f.mustCreateTask(t, CreateTaskParams{AssigneeID: "maria", Prompt: "go"})

	ctx, err := f.engine.SpawnAgent(context.Background(), "maria", task.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx == nil {
		t.Fatal("expected a cancellation context")
	}

	savedTask, _ := f.tasks.Get(task.ID)
	if savedTask.Status != models.TaskRunning {
		t.Errorf("task should be running, got %s", savedTask.Status)
	}
	if savedTask.StartedAt == nil {
		t.Error("startedAt should be stamped")
	}

	savedAgent, _ := f.agents.Get("maria")
	if savedAgent.Status != models.AgentRunning {
		t.Errorf("agent should be running, got %s", savedAgent.Status)
	}
	if savedAgent.CurrentTaskID == nil || *savedAgent.CurrentTaskID != task.ID {
		t.Errorf("agent should point at the task, got %v", savedAgent.CurrentTaskID)
	}

	if f.engine.RunningCount() != 1 {
		t.Errorf("expected 1 running agent, got %d", f.engine.RunningCount())
	}
	running := f.engine.RunningAgents()
	if running["maria"] != task.ID {
		t.Errorf("registry should map maria to the task, got %v", running)
	}
	if f.countEvents(EventTaskStatusChanged) != 1 || f.countEvents(EventAgentStatusChanged) != 1 {
		t.Error("expected one task and one agent status event")
	}
}

func TestEngine_SpawnAgentLimit(t *testing.T) {
	f := setupEngine(t, 1)

	f.mustCreateAgent(t, "a1", nil)
	f.mustCreateAgent(t, "a2", nil)
	t1 := f.mustCreateTask(t, CreateTaskParams{AssigneeID: "a1"})
	t2 := f.mustCreateTask(t, CreateTaskParams{AssigneeID: "a2"})

	if _, err := f.engine.SpawnAgent(context.Background(), "a1", t1.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := f.engine.SpawnAgent(context.Background(), "a2", t2.ID)
	if !errors.Is(err, ErrAgentLimit) {
		t.Fatalf("expected ErrAgentLimit, got %v", err)
	}

	// The rejected spawn left no trace in stored state.
	savedTask, _ := f.tasks.Get(t2.ID)
	if savedTask.Status != models.TaskPending {
		t.Errorf("rejected task should stay pending, got %s", savedTask.Status)
	}
	savedAgent, _ := f.agents.Get("a2")
	if savedAgent.Status != models.AgentIdle {
		t.Errorf("rejected agent should stay idle, got %s", savedAgent.Status)
	}

	// The slot frees after completion.
	if err := f.engine.CompleteAgent("a1", CompleteResult{Status: models.TaskCompleted}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.engine.SpawnAgent(context.Background(), "a2", t2.ID); err != nil {
		t.Fatalf("spawn should succeed after a slot freed: %v", err)
	}
}

func TestEngine_SpawnAgentAlreadyRunning(t *testing.T) {
	f := setupEngine(t, 0)

	f.mustCreateAgent(t, "maria", nil)
	t1 := f.mustCreateTask(t, CreateTaskParams{AssigneeID: "maria"})
	t2 := f.mustCreateTask(t, CreateTaskParams{AssigneeID: "maria"})

	if _, err := f.engine.SpawnAgent(context.Background(), "maria", t1.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := f.engine.SpawnAgent(context.Background(), "maria", t2.ID)
	if !errors.Is(err, ErrAgentRunning) {
		t.Fatalf("expected ErrAgentRunning, got %v", err)
	}
}

func TestEngine_SpawnAgentValidation(t *testing.T) {
	f := setupEngine(t, 0)

	f.mustCreateAgent(t, "maria", nil)
	task := f.mustCreateTask(t, CreateTaskParams{AssigneeID: "maria"})

	if _, err := f.engine.SpawnAgent(context.Background(), "ghost", task.ID); err == nil {
		t.Error("expected error for unknown agent")
	}
	if _, err := f.engine.SpawnAgent(context.Background(), "maria", "no-such-task"); err == nil {
		t.Error("expected error for unknown task")
	}

	// A non-pending task cannot be spawned.
	task.Status = models.TaskCompleted
	if err := f.tasks.Save(task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.engine.SpawnAgent(context.Background(), "maria", task.ID); err == nil {
		t.Error("expected error for non-pending task")
	}
}

func TestEngine_CompleteAgent(t *testing.T) {
	f := setupEngine(t, 0)

	f.mustCreateAgent(t, "maria", nil)
	task := f.mustCreateTask(t, CreateTaskParams{AssigneeID: "maria"})
	ctx, err := f.engine.SpawnAgent(context.Background(), "maria", task.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result := "done and dusted"
	outcome := CompleteResult{
		Status:    models.TaskCompleted,
		Result:    &result,
		Telemetry: &models.TaskTelemetry{CostUSD: 0.12, DurationMS: 4200, TurnCount: 3},
	}
	if err := f.engine.CompleteAgent("maria", outcome); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	savedTask, _ := f.tasks.Get(task.ID)
	if savedTask.Status != models.TaskCompleted {
		t.Errorf("task should be completed, got %s", savedTask.Status)
	}
	if savedTask.Result == nil || *savedTask.Result != result {
		t.Errorf("result lost: %v", savedTask.Result)
	}
	if savedTask.Telemetry == nil || savedTask.Telemetry.TurnCount != 3 {
		t.Errorf("telemetry lost: %+v", savedTask.Telemetry)
	}
	if savedTask.CompletedAt == nil {
		t.Error("completedAt should be stamped")
	}

	savedAgent, _ := f.agents.Get("maria")
	if savedAgent.Status != models.AgentIdle {
		t.Errorf("agent should be idle again, got %s", savedAgent.Status)
	}
	if savedAgent.CurrentTaskID != nil {
		t.Errorf("agent task pointer should be cleared, got %v", *savedAgent.CurrentTaskID)
	}

	if f.engine.RunningCount() != 0 {
		t.Errorf("slot should be freed, got %d running", f.engine.RunningCount())
	}
	select {
	case <-ctx.Done():
	default:
		t.Error("run context should be canceled on completion")
	}
}

func TestEngine_CompleteAgentNonTerminal(t *testing.T) {
	f := setupEngine(t, 0)

	for _, status := range []models.TaskStatus{models.TaskPending, models.TaskRunning, models.TaskReview} {
		err := f.engine.CompleteAgent("maria", CompleteResult{Status: status})
		if err == nil {
			t.Errorf("status %s should be rejected as non-terminal", status)
		}
	}
}

func TestEngine_CompleteAgentAfterRegistryLoss(t *testing.T) {
	f := setupEngine(t, 0)

	f.mustCreateAgent(t, "maria", nil)
	task := f.mustCreateTask(t, CreateTaskParams{AssigneeID: "maria"})
	if _, err := f.engine.SpawnAgent(context.Background(), "maria", task.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A fresh engine over the same stores has an empty registry, as
	// after a process restart. Completion must still find the task via
	// the agent's persisted back-reference.
	restarted := NewEngine(f.agents, f.tasks, f.msgs, f.board, f.org, f.bus, EngineConfig{})
	if err := restarted.CompleteAgent("maria", CompleteResult{Status: models.TaskFailed}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	savedTask, _ := f.tasks.Get(task.ID)
	if savedTask.Status != models.TaskFailed {
		t.Errorf("task should be failed, got %s", savedTask.Status)
	}
	savedAgent, _ := f.agents.Get("maria")
	if savedAgent.Status != models.AgentIdle {
		t.Errorf("agent should be idle, got %s", savedAgent.Status)
	}
}

func TestEngine_DelegationFlow(t *testing.T) {
	f := setupEngine(t, 0)

	// ceo delegates part of its own running task to eng.
	f.mustCreateAgent(t, "ceo", nil)
	f.mustCreateAgent(t, "eng", strptr("ceo"))
	parentTask := f.mustCreateTask(t, CreateTaskParams{AssigneeID: "ceo", Prompt: "ship v2"})
	if _, err := f.engine.SpawnAgent(context.Background(), "ceo", parentTask.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	childTask := f.mustCreateTask(t, CreateTaskParams{
		AssigneeID:   "eng",
		DelegatorID:  strptr("ceo"),
		ParentTaskID: &parentTask.ID,
		Prompt:       "implement the backend",
	})
	if _, err := f.engine.SpawnAgent(context.Background(), "eng", childTask.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result := "Backend implemented, all checks green."
	err := f.engine.CompleteAgent("eng", CompleteResult{Status: models.TaskCompleted, Result: &result})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The artifact landed in the parent assignee's mailbox.
	entries, err := ReadInbox(f.agents, "ceo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 inbox entry for ceo, got %d", len(entries))
	}
	if !strings.Contains(entries[0].Content, result) {
		t.Errorf("artifact should carry the result: %q", entries[0].Content)
	}
	if !strings.Contains(entries[0].Filename, childTask.ID) {
		t.Errorf("artifact filename should carry the child task id: %s", entries[0].Filename)
	}

	if f.countEvents(EventDelegationDone) != 1 {
		t.Error("expected one delegation.delivered event")
	}

	// ceo keeps running its own task; only eng is released.
	ceoAgent, _ := f.agents.Get("ceo")
	if ceoAgent.Status != models.AgentRunning {
		t.Errorf("ceo should still be running, got %s", ceoAgent.Status)
	}
	engAgent, _ := f.agents.Get("eng")
	if engAgent.Status != models.AgentIdle {
		t.Errorf("eng should be idle, got %s", engAgent.Status)
	}
	if f.engine.RunningCount() != 1 {
		t.Errorf("expected only ceo in the registry, got %d", f.engine.RunningCount())
	}
}

func TestEngine_CompleteWithoutDelegationWritesNothing(t *testing.T) {
	f := setupEngine(t, 0)

	f.mustCreateAgent(t, "maria", nil)
	task := f.mustCreateTask(t, CreateTaskParams{AssigneeID: "maria"})
	if _, err := f.engine.SpawnAgent(context.Background(), "maria", task.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.engine.CompleteAgent("maria", CompleteResult{Status: models.TaskCompleted}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := ReadInbox(f.agents, "maria")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("top-level task should deliver nothing, got %d entries", len(entries))
	}
	if f.countEvents(EventDelegationDone) != 0 {
		t.Error("no delegation event expected")
	}
}

func TestEngine_CancelAgent(t *testing.T) {
	f := setupEngine(t, 0)

	f.mustCreateAgent(t, "maria", nil)
	task := f.mustCreateTask(t, CreateTaskParams{AssigneeID: "maria"})
	ctx, err := f.engine.SpawnAgent(context.Background(), "maria", task.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !f.engine.CancelAgent("maria") {
		t.Fatal("cancel should report the agent as found")
	}
	select {
	case <-ctx.Done():
	default:
		t.Error("run context should be canceled")
	}
	// Cancellation alone does not change stored state or free the slot.
	savedTask, _ := f.tasks.Get(task.ID)
	if savedTask.Status != models.TaskRunning {
		t.Errorf("task should still be running, got %s", savedTask.Status)
	}
	if f.engine.RunningCount() != 1 {
		t.Errorf("slot should still be held, got %d", f.engine.RunningCount())
	}

	if f.engine.CancelAgent("nobody") {
		t.Error("cancel of an unknown agent should report false")
	}
}

func TestEngine_DeleteAgent(t *testing.T) {
	f := setupEngine(t, 0)

	f.mustCreateAgent(t, "ceo", nil)
	f.mustCreateAgent(t, "eng", strptr("ceo"))
	f.mustCreateAgent(t, "dev", strptr("eng"))

	if err := f.engine.DeleteAgent("eng"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	saved, err := f.agents.Get("eng")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved != nil {
		t.Error("agent record should be gone")
	}
	// The report escalates to the removed agent's manager.
	devParent, _ := f.org.GetParent("dev")
	if devParent == nil || *devParent != "ceo" {
		t.Errorf("dev should now report to ceo, got %v", devParent)
	}
	if f.countEvents(EventAgentDeleted) != 1 {
		t.Error("expected one agent.deleted event")
	}
}

func TestEngine_DeleteRunningAgent(t *testing.T) {
	f := setupEngine(t, 0)

	f.mustCreateAgent(t, "maria", nil)
	task := f.mustCreateTask(t, CreateTaskParams{AssigneeID: "maria"})
	if _, err := f.engine.SpawnAgent(context.Background(), "maria", task.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := f.engine.DeleteAgent("maria")
	if !errors.Is(err, ErrAgentRunning) {
		t.Fatalf("expected ErrAgentRunning, got %v", err)
	}
}

func TestEngine_SendMessage(t *testing.T) {
	f := setupEngine(t, 0)

	msg, err := f.engine.SendMessage(SendMessageParams{
		FromAgentID: strptr("ceo"),
		ToAgentID:   "maria",
		Subject:     "priorities",
		Body:        "focus on the launch",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.ThreadID == "" || msg.ID == "" {
		t.Fatal("message should get thread and message ids")
	}
	if msg.Status != models.MessageDelivered {
		t.Errorf("saved message should be delivered, got %s", msg.Status)
	}
	if msg.Type != models.MessageDirect {
		t.Errorf("type should default to direct, got %s", msg.Type)
	}

	unread, err := f.msgs.ListUnread("maria")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(unread) != 1 {
		t.Errorf("expected 1 unread message, got %d", len(unread))
	}

	// A reply in the same thread keeps the thread id.
	reply, err := f.engine.SendMessage(SendMessageParams{
		ThreadID:  msg.ThreadID,
		ToAgentID: "ceo",
		Subject:   "re: priorities",
		Body:      "on it",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.ThreadID != msg.ThreadID {
		t.Errorf("reply should stay in thread %s, got %s", msg.ThreadID, reply.ThreadID)
	}
	if f.countEvents(EventMessageSent) != 2 {
		t.Error("expected two message.sent events")
	}
}

func TestEngine_MarkMessageReadEmitsOnce(t *testing.T) {
	f := setupEngine(t, 0)

	msg, err := f.engine.SendMessage(SendMessageParams{ToAgentID: "maria", Body: "hi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := f.engine.MarkMessageRead(msg.ThreadID, msg.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.engine.MarkMessageRead(msg.ThreadID, msg.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.countEvents(EventMessageRead) != 1 {
		t.Errorf("expected exactly one message.read event, got %d", f.countEvents(EventMessageRead))
	}
}

func TestEngine_PostBoardItem(t *testing.T) {
	f := setupEngine(t, 0)

	item, err := f.engine.PostBoardItem(PostBoardItemParams{
		Type:    models.BoardBlocker,
		Author:  "maria",
		Summary: "registry down",
		Body:    "cannot push images",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.ID == "" {
		t.Fatal("item should get an id")
	}

	saved, err := f.board.Get(models.BoardBlocker, item.ID)
	if err != nil || saved == nil {
		t.Fatalf("item should be persisted: %v", err)
	}
	if f.countEvents(EventBoardPosted) != 1 {
		t.Error("expected one board.posted event")
	}

	if _, err := f.engine.PostBoardItem(PostBoardItemParams{Type: "gossip", Author: "x"}); err == nil {
		t.Error("expected error for unknown board type")
	}
}

func TestEngine_DefaultMaxAgents(t *testing.T) {
	f := setupEngine(t, 0)

	if f.engine.MaxAgents() != DefaultMaxAgents {
		t.Errorf("expected default limit %d, got %d", DefaultMaxAgents, f.engine.MaxAgents())
	}
}

func TestEngine_DelegationArtifactOnDisk(t *testing.T) {
	f := setupEngine(t, 0)

	f.mustCreateAgent(t, "ceo", nil)
	f.mustCreateAgent(t, "eng", strptr("ceo"))
	parentTask := f.mustCreateTask(t, CreateTaskParams{AssigneeID: "ceo"})
	childTask := f.mustCreateTask(t, CreateTaskParams{
		AssigneeID:   "eng",
		DelegatorID:  strptr("ceo"),
		ParentTaskID: &parentTask.ID,
	})
	if _, err := f.engine.SpawnAgent(context.Background(), "eng", childTask.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.engine.CompleteAgent("eng", CompleteResult{Status: models.TaskFailed}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Failed delegations still deliver, with the placeholder body.
	dir := f.agents.ResultsDir("ceo")
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("mailbox should exist: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 artifact, got %d", len(entries))
	}
	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(data), "**Status**: failed") {
		t.Errorf("artifact should record the failed status: %q", string(data))
	}
	if !strings.Contains(string(data), NoResultPlaceholder) {
		t.Errorf("artifact should carry the placeholder: %q", string(data))
	}
}
