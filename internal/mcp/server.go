// Package mcp provides an MCP (Model Context Protocol) server that
// exposes the agenthq engine as tools for AI agents. Every tool handler
// catches errors and returns them as plain-text error results so a
// failing call never crashes the calling agent loop.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/northgate-labs/agenthq/internal/core"
	"github.com/northgate-labs/agenthq/internal/storage"
	"github.com/northgate-labs/agenthq/pkg/models"
)

// Server wraps the engine and stores and exposes them as MCP tools.
type Server struct {
	server *gomcp.Server
	engine *core.Engine
	agents storage.AgentStore
	tasks  storage.TaskStore
	msgs   storage.MessageStore
	board  storage.BoardStore
	org    core.OrgManager
}

// NewServer creates an MCP server over the given services.
func NewServer(
	engine *core.Engine,
	agents storage.AgentStore,
	tasks storage.TaskStore,
	msgs storage.MessageStore,
	board storage.BoardStore,
	org core.OrgManager,
	version string,
) *Server {
	if version == "" {
		version = "dev"
	}
	s := &Server{
		engine: engine,
		agents: agents,
		tasks:  tasks,
		msgs:   msgs,
		board:  board,
		org:    org,
	}
	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "agenthq", Version: version},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio, blocking until the client
// disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type createAgentInput struct {
	Name        string `json:"name" jsonschema:"required,unique agent name (immutable key)"`
	DisplayName string `json:"display_name,omitempty" jsonschema:"human-friendly name"`
	Role        string `json:"role,omitempty" jsonschema:"job role, e.g. Backend Engineer"`
	Department  string `json:"department,omitempty" jsonschema:"department name"`
	Personality string `json:"personality,omitempty" jsonschema:"free-form personality notes"`
	Level       string `json:"level,omitempty" jsonschema:"rank: intern, associate, manager, director, vp, executive"`
	Parent      string `json:"parent,omitempty" jsonschema:"manager's agent name; omit for a root agent"`
}

type agentOutput struct {
	Name          string `json:"name"`
	DisplayName   string `json:"display_name"`
	Role          string `json:"role,omitempty"`
	Department    string `json:"department,omitempty"`
	Level         string `json:"level"`
	Status        string `json:"status"`
	CurrentTaskID string `json:"current_task_id,omitempty"`
	CreatedAt     string `json:"created_at"`
}

type getAgentInput struct {
	Name string `json:"name" jsonschema:"required,the agent name"`
}

type listAgentsInput struct{}

type listAgentsOutput struct {
	Agents []agentOutput `json:"agents"`
	Count  int           `json:"count"`
}

type deleteAgentInput struct {
	Name string `json:"name" jsonschema:"required,the agent name"`
}

type messageOutput struct {
	Message string `json:"message"`
}

type createTaskInput struct {
	Assignee     string `json:"assignee" jsonschema:"required,agent that must act on the task"`
	Delegator    string `json:"delegator,omitempty" jsonschema:"agent that created the task; omit for human-originated tasks"`
	ParentTaskID string `json:"parent_task_id,omitempty" jsonschema:"delegating parent task id"`
	Prompt       string `json:"prompt" jsonschema:"required,what the task asks for"`
	Context      string `json:"context,omitempty" jsonschema:"additional context for the assignee"`
	Priority     int    `json:"priority,omitempty" jsonschema:"advisory priority, higher is more urgent"`
}

type taskOutput struct {
	ID           string  `json:"id"`
	ParentTaskID string  `json:"parent_task_id,omitempty"`
	Assignee     string  `json:"assignee"`
	Delegator    string  `json:"delegator,omitempty"`
	Prompt       string  `json:"prompt"`
	Priority     int     `json:"priority"`
	Status       string  `json:"status"`
	Result       string  `json:"result,omitempty"`
	CostUSD      float64 `json:"cost_usd,omitempty"`
	DurationMS   int64   `json:"duration_ms,omitempty"`
	TurnCount    int     `json:"turn_count,omitempty"`
	CreatedAt    string  `json:"created_at"`
	StartedAt    string  `json:"started_at,omitempty"`
	CompletedAt  string  `json:"completed_at,omitempty"`
}

type getTaskInput struct {
	TaskID string `json:"task_id" jsonschema:"required,the task id"`
}

type listTasksInput struct {
	Status   string `json:"status,omitempty" jsonschema:"filter by status (pending, running, completed, failed, blocked, review)"`
	Assignee string `json:"assignee,omitempty" jsonschema:"filter by assignee agent name"`
}

type listTasksOutput struct {
	Tasks []taskOutput `json:"tasks"`
	Count int          `json:"count"`
}

type spawnAgentInput struct {
	Agent  string `json:"agent" jsonschema:"required,agent to spawn"`
	TaskID string `json:"task_id" jsonschema:"required,pending task to execute"`
}

type completeAgentInput struct {
	Agent      string  `json:"agent" jsonschema:"required,agent to complete"`
	Status     string  `json:"status" jsonschema:"required,terminal status: completed, failed, or blocked"`
	Result     string  `json:"result,omitempty" jsonschema:"result text; omit for no result"`
	CostUSD    float64 `json:"cost_usd,omitempty" jsonschema:"execution cost in USD"`
	DurationMS int64   `json:"duration_ms,omitempty" jsonschema:"execution duration in milliseconds"`
	TurnCount  int     `json:"turn_count,omitempty" jsonschema:"number of conversation turns"`
}

type setParentInput struct {
	Agent  string `json:"agent" jsonschema:"required,agent to move"`
	Parent string `json:"parent,omitempty" jsonschema:"new manager; omit to make the agent a root"`
}

type getOrgChartInput struct{}

type orgNodeOutput struct {
	Name     string          `json:"name"`
	Parent   string          `json:"parent,omitempty"`
	Position int             `json:"position"`
	Children []orgNodeOutput `json:"children,omitempty"`
}

type orgChartOutput struct {
	Roots []orgNodeOutput `json:"roots"`
}

type sendMessageInput struct {
	To       string `json:"to" jsonschema:"required,recipient agent name"`
	From     string `json:"from,omitempty" jsonschema:"sender agent name; omit for system messages"`
	ThreadID string `json:"thread_id,omitempty" jsonschema:"existing thread id; omit to open a new thread"`
	Subject  string `json:"subject,omitempty" jsonschema:"message subject"`
	Body     string `json:"body" jsonschema:"required,message body"`
	Type     string `json:"type,omitempty" jsonschema:"message type: direct, system, or chat (default direct)"`
}

type sendMessageOutput struct {
	MessageID string `json:"message_id"`
	ThreadID  string `json:"thread_id"`
}

type checkMessagesInput struct {
	Agent string `json:"agent" jsonschema:"required,agent whose unread messages to fetch"`
}

type messageEntryOutput struct {
	ID        string `json:"id"`
	ThreadID  string `json:"thread_id"`
	From      string `json:"from,omitempty"`
	Subject   string `json:"subject,omitempty"`
	Body      string `json:"body"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

type checkMessagesOutput struct {
	Messages []messageEntryOutput `json:"messages"`
	Count    int                  `json:"count"`
}

type markReadInput struct {
	ThreadID  string `json:"thread_id" jsonschema:"required,the thread id"`
	MessageID string `json:"message_id" jsonschema:"required,the message id"`
}

type postBoardItemInput struct {
	Type    string `json:"type" jsonschema:"required,item type: status_update, blocker, finding, or request"`
	Author  string `json:"author" jsonschema:"required,posting agent name"`
	Summary string `json:"summary" jsonschema:"required,one-line summary"`
	Body    string `json:"body,omitempty" jsonschema:"free-form body text"`
}

type postBoardItemOutput struct {
	ItemID string `json:"item_id"`
}

type listBoardItemsInput struct {
	Type string `json:"type,omitempty" jsonschema:"filter by item type; omit for all partitions"`
}

type boardItemOutput struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Author    string `json:"author"`
	Summary   string `json:"summary"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

type listBoardItemsOutput struct {
	Items []boardItemOutput `json:"items"`
	Count int               `json:"count"`
}

type checkInboxInput struct {
	Agent string `json:"agent" jsonschema:"required,agent whose results mailbox to read"`
}

type inboxEntryOutput struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

type checkInboxOutput struct {
	Results []inboxEntryOutput `json:"results"`
	Count   int                `json:"count"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "create_agent",
		Description: "Create a new agent and place it in the org chart under an optional manager.",
	}, s.handleCreateAgent)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_agent",
		Description: "Get an agent's record by name.",
	}, s.handleGetAgent)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "list_agents",
		Description: "List every agent in the workspace.",
	}, s.handleListAgents)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "delete_agent",
		Description: "Delete a non-running agent. Its org reports escalate to its own manager.",
	}, s.handleDeleteAgent)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "create_task",
		Description: "Create a pending task for an assignee, optionally delegated from a parent task.",
	}, s.handleCreateTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_task",
		Description: "Get a task's record by id.",
	}, s.handleGetTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "list_tasks",
		Description: "List tasks, newest first, with optional status and assignee filters.",
	}, s.handleListTasks)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "spawn_agent",
		Description: "Start an agent on a pending task. Fails when the concurrent agent limit is reached; retry later.",
	}, s.handleSpawnAgent)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "complete_agent",
		Description: "Record a terminal outcome for an agent's current task and free its slot. Delegated results are routed to the delegating manager's mailbox.",
	}, s.handleCompleteAgent)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "set_agent_parent",
		Description: "Move an agent under a new manager in the org chart, or make it a root.",
	}, s.handleSetParent)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_org_chart",
		Description: "Get the full org chart as a forest of agents.",
	}, s.handleGetOrgChart)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "send_message",
		Description: "Send a message to an agent, in an existing thread or a new one.",
	}, s.handleSendMessage)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "check_messages",
		Description: "List an agent's unread messages across all threads, oldest first.",
	}, s.handleCheckMessages)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "mark_message_read",
		Description: "Mark a message as read.",
	}, s.handleMarkRead)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "post_board_item",
		Description: "Post a status update, blocker, finding, or request to the shared board.",
	}, s.handlePostBoardItem)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "list_board_items",
		Description: "List board items, newest first, optionally filtered by type.",
	}, s.handleListBoardItems)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "check_results_inbox",
		Description: "List the delegated-task result artifacts waiting in an agent's mailbox, oldest first.",
	}, s.handleCheckInbox)
}

// --- Tool handlers ---

func (s *Server) handleCreateAgent(_ context.Context, _ *gomcp.CallToolRequest, input createAgentInput) (*gomcp.CallToolResult, agentOutput, error) {
	if input.Name == "" {
		return errorResult("name is required"), agentOutput{}, nil
	}
	var parent *string
	if input.Parent != "" {
		parent = &input.Parent
	}
	agent, err := s.engine.CreateAgent(core.CreateAgentParams{
		Name:            input.Name,
		DisplayName:     input.DisplayName,
		Role:            input.Role,
		Department:      input.Department,
		Personality:     input.Personality,
		Level:           models.AgentLevel(input.Level),
		ParentAgentName: parent,
	})
	if err != nil {
		return errorResult(fmt.Sprintf("creating agent %s: %s", input.Name, err)), agentOutput{}, nil
	}
	return nil, agentToOutput(agent), nil
}

func (s *Server) handleGetAgent(_ context.Context, _ *gomcp.CallToolRequest, input getAgentInput) (*gomcp.CallToolResult, agentOutput, error) {
	if input.Name == "" {
		return errorResult("name is required"), agentOutput{}, nil
	}
	agent, err := s.agents.Get(input.Name)
	if err != nil {
		return errorResult(fmt.Sprintf("getting agent %s: %s", input.Name, err)), agentOutput{}, nil
	}
	if agent == nil {
		return errorResult(fmt.Sprintf("agent %s not found", input.Name)), agentOutput{}, nil
	}
	return nil, agentToOutput(agent), nil
}

func (s *Server) handleListAgents(_ context.Context, _ *gomcp.CallToolRequest, _ listAgentsInput) (*gomcp.CallToolResult, listAgentsOutput, error) {
	agents, err := s.agents.List()
	if err != nil {
		return errorResult(fmt.Sprintf("listing agents: %s", err)), listAgentsOutput{}, nil
	}
	out := listAgentsOutput{Agents: make([]agentOutput, len(agents)), Count: len(agents)}
	for i, a := range agents {
		out.Agents[i] = agentToOutput(a)
	}
	return nil, out, nil
}

func (s *Server) handleDeleteAgent(_ context.Context, _ *gomcp.CallToolRequest, input deleteAgentInput) (*gomcp.CallToolResult, messageOutput, error) {
	if input.Name == "" {
		return errorResult("name is required"), messageOutput{}, nil
	}
	if err := s.engine.DeleteAgent(input.Name); err != nil {
		return errorResult(fmt.Sprintf("deleting agent %s: %s", input.Name, err)), messageOutput{}, nil
	}
	return nil, messageOutput{Message: fmt.Sprintf("agent %s deleted", input.Name)}, nil
}

func (s *Server) handleCreateTask(_ context.Context, _ *gomcp.CallToolRequest, input createTaskInput) (*gomcp.CallToolResult, taskOutput, error) {
	if input.Assignee == "" {
		return errorResult("assignee is required"), taskOutput{}, nil
	}
	if input.Prompt == "" {
		return errorResult("prompt is required"), taskOutput{}, nil
	}
	var delegator, parentTask *string
	if input.Delegator != "" {
		delegator = &input.Delegator
	}
	if input.ParentTaskID != "" {
		parentTask = &input.ParentTaskID
	}
	task, err := s.engine.CreateTask(core.CreateTaskParams{
		AssigneeID:   input.Assignee,
		DelegatorID:  delegator,
		ParentTaskID: parentTask,
		Prompt:       input.Prompt,
		Context:      input.Context,
		Priority:     input.Priority,
	})
	if err != nil {
		return errorResult(fmt.Sprintf("creating task: %s", err)), taskOutput{}, nil
	}
	return nil, taskToOutput(task), nil
}

func (s *Server) handleGetTask(_ context.Context, _ *gomcp.CallToolRequest, input getTaskInput) (*gomcp.CallToolResult, taskOutput, error) {
	if input.TaskID == "" {
		return errorResult("task_id is required"), taskOutput{}, nil
	}
	task, err := s.tasks.Get(input.TaskID)
	if err != nil {
		return errorResult(fmt.Sprintf("getting task %s: %s", input.TaskID, err)), taskOutput{}, nil
	}
	if task == nil {
		return errorResult(fmt.Sprintf("task %s not found", input.TaskID)), taskOutput{}, nil
	}
	return nil, taskToOutput(task), nil
}

func (s *Server) handleListTasks(_ context.Context, _ *gomcp.CallToolRequest, input listTasksInput) (*gomcp.CallToolResult, listTasksOutput, error) {
	tasks, err := s.tasks.List(storage.TaskFilter{
		Status:     models.TaskStatus(input.Status),
		AssigneeID: input.Assignee,
	})
	if err != nil {
		return errorResult(fmt.Sprintf("listing tasks: %s", err)), listTasksOutput{}, nil
	}
	out := listTasksOutput{Tasks: make([]taskOutput, len(tasks)), Count: len(tasks)}
	for i, t := range tasks {
		out.Tasks[i] = taskToOutput(t)
	}
	return nil, out, nil
}

func (s *Server) handleSpawnAgent(ctx context.Context, _ *gomcp.CallToolRequest, input spawnAgentInput) (*gomcp.CallToolResult, messageOutput, error) {
	if input.Agent == "" || input.TaskID == "" {
		return errorResult("agent and task_id are required"), messageOutput{}, nil
	}
	if _, err := s.engine.SpawnAgent(ctx, input.Agent, input.TaskID); err != nil {
		if errors.Is(err, core.ErrAgentLimit) {
			return errorResult(fmt.Sprintf("spawning %s: %s (retry after another agent completes)", input.Agent, err)), messageOutput{}, nil
		}
		return errorResult(fmt.Sprintf("spawning %s: %s", input.Agent, err)), messageOutput{}, nil
	}
	return nil, messageOutput{Message: fmt.Sprintf("agent %s is running task %s", input.Agent, input.TaskID)}, nil
}

func (s *Server) handleCompleteAgent(_ context.Context, _ *gomcp.CallToolRequest, input completeAgentInput) (*gomcp.CallToolResult, messageOutput, error) {
	if input.Agent == "" {
		return errorResult("agent is required"), messageOutput{}, nil
	}
	status := models.TaskStatus(input.Status)
	if !status.IsTerminal() {
		return errorResult(fmt.Sprintf("invalid status %q: must be completed, failed, or blocked", input.Status)), messageOutput{}, nil
	}
	outcome := core.CompleteResult{Status: status}
	if input.Result != "" {
		outcome.Result = &input.Result
	}
	if input.CostUSD != 0 || input.DurationMS != 0 || input.TurnCount != 0 {
		outcome.Telemetry = &models.TaskTelemetry{
			CostUSD:    input.CostUSD,
			DurationMS: input.DurationMS,
			TurnCount:  input.TurnCount,
		}
	}
	if err := s.engine.CompleteAgent(input.Agent, outcome); err != nil {
		return errorResult(fmt.Sprintf("completing %s: %s", input.Agent, err)), messageOutput{}, nil
	}
	return nil, messageOutput{Message: fmt.Sprintf("agent %s completed with status %s", input.Agent, input.Status)}, nil
}

func (s *Server) handleSetParent(_ context.Context, _ *gomcp.CallToolRequest, input setParentInput) (*gomcp.CallToolResult, messageOutput, error) {
	if input.Agent == "" {
		return errorResult("agent is required"), messageOutput{}, nil
	}
	var parent *string
	if input.Parent != "" {
		parent = &input.Parent
	}
	if err := s.engine.SetAgentParent(input.Agent, parent); err != nil {
		return errorResult(fmt.Sprintf("moving %s: %s", input.Agent, err)), messageOutput{}, nil
	}
	if parent == nil {
		return nil, messageOutput{Message: fmt.Sprintf("agent %s is now a root", input.Agent)}, nil
	}
	return nil, messageOutput{Message: fmt.Sprintf("agent %s now reports to %s", input.Agent, *parent)}, nil
}

func (s *Server) handleGetOrgChart(_ context.Context, _ *gomcp.CallToolRequest, _ getOrgChartInput) (*gomcp.CallToolResult, orgChartOutput, error) {
	doc, err := s.org.Chart()
	if err != nil {
		return errorResult(fmt.Sprintf("loading org chart: %s", err)), orgChartOutput{}, nil
	}
	out := orgChartOutput{}
	for _, root := range doc.Roots {
		out.Roots = append(out.Roots, orgNodeToOutput(root))
	}
	return nil, out, nil
}

func (s *Server) handleSendMessage(_ context.Context, _ *gomcp.CallToolRequest, input sendMessageInput) (*gomcp.CallToolResult, sendMessageOutput, error) {
	if input.To == "" {
		return errorResult("to is required"), sendMessageOutput{}, nil
	}
	if input.Body == "" {
		return errorResult("body is required"), sendMessageOutput{}, nil
	}
	var from *string
	if input.From != "" {
		from = &input.From
	}
	msg, err := s.engine.SendMessage(core.SendMessageParams{
		ThreadID:    input.ThreadID,
		FromAgentID: from,
		ToAgentID:   input.To,
		Subject:     input.Subject,
		Body:        input.Body,
		Type:        models.MessageType(input.Type),
	})
	if err != nil {
		return errorResult(fmt.Sprintf("sending message: %s", err)), sendMessageOutput{}, nil
	}
	return nil, sendMessageOutput{MessageID: msg.ID, ThreadID: msg.ThreadID}, nil
}

func (s *Server) handleCheckMessages(_ context.Context, _ *gomcp.CallToolRequest, input checkMessagesInput) (*gomcp.CallToolResult, checkMessagesOutput, error) {
	if input.Agent == "" {
		return errorResult("agent is required"), checkMessagesOutput{}, nil
	}
	msgs, err := s.msgs.ListUnread(input.Agent)
	if err != nil {
		return errorResult(fmt.Sprintf("checking messages for %s: %s", input.Agent, err)), checkMessagesOutput{}, nil
	}
	out := checkMessagesOutput{Messages: make([]messageEntryOutput, len(msgs)), Count: len(msgs)}
	for i, m := range msgs {
		out.Messages[i] = messageToOutput(m)
	}
	return nil, out, nil
}

func (s *Server) handleMarkRead(_ context.Context, _ *gomcp.CallToolRequest, input markReadInput) (*gomcp.CallToolResult, messageOutput, error) {
	if input.ThreadID == "" || input.MessageID == "" {
		return errorResult("thread_id and message_id are required"), messageOutput{}, nil
	}
	msg, err := s.engine.MarkMessageRead(input.ThreadID, input.MessageID)
	if err != nil {
		return errorResult(fmt.Sprintf("marking message %s read: %s", input.MessageID, err)), messageOutput{}, nil
	}
	if msg == nil {
		return errorResult(fmt.Sprintf("message %s not found in thread %s", input.MessageID, input.ThreadID)), messageOutput{}, nil
	}
	return nil, messageOutput{Message: fmt.Sprintf("message %s marked read", input.MessageID)}, nil
}

func (s *Server) handlePostBoardItem(_ context.Context, _ *gomcp.CallToolRequest, input postBoardItemInput) (*gomcp.CallToolResult, postBoardItemOutput, error) {
	if input.Author == "" || input.Summary == "" {
		return errorResult("author and summary are required"), postBoardItemOutput{}, nil
	}
	item, err := s.engine.PostBoardItem(core.PostBoardItemParams{
		Type:    models.BoardItemType(input.Type),
		Author:  input.Author,
		Summary: input.Summary,
		Body:    input.Body,
	})
	if err != nil {
		return errorResult(fmt.Sprintf("posting board item: %s", err)), postBoardItemOutput{}, nil
	}
	return nil, postBoardItemOutput{ItemID: item.ID}, nil
}

func (s *Server) handleListBoardItems(_ context.Context, _ *gomcp.CallToolRequest, input listBoardItemsInput) (*gomcp.CallToolResult, listBoardItemsOutput, error) {
	var items []*models.BoardItem
	var err error
	if input.Type != "" {
		itemType := models.BoardItemType(input.Type)
		if !itemType.Valid() {
			return errorResult(fmt.Sprintf("invalid type %q: must be status_update, blocker, finding, or request", input.Type)), listBoardItemsOutput{}, nil
		}
		items, err = s.board.List(itemType)
	} else {
		items, err = s.board.ListAll()
	}
	if err != nil {
		return errorResult(fmt.Sprintf("listing board items: %s", err)), listBoardItemsOutput{}, nil
	}
	out := listBoardItemsOutput{Items: make([]boardItemOutput, len(items)), Count: len(items)}
	for i, item := range items {
		out.Items[i] = boardItemOutput{
			ID:        item.ID,
			Type:      string(item.Type),
			Author:    item.Author,
			Summary:   item.Summary,
			Body:      item.Body,
			CreatedAt: item.CreatedAt.Format(time.RFC3339),
		}
	}
	return nil, out, nil
}

func (s *Server) handleCheckInbox(_ context.Context, _ *gomcp.CallToolRequest, input checkInboxInput) (*gomcp.CallToolResult, checkInboxOutput, error) {
	if input.Agent == "" {
		return errorResult("agent is required"), checkInboxOutput{}, nil
	}
	entries, err := core.ReadInbox(s.agents, input.Agent)
	if err != nil {
		return errorResult(fmt.Sprintf("reading inbox of %s: %s", input.Agent, err)), checkInboxOutput{}, nil
	}
	out := checkInboxOutput{Results: make([]inboxEntryOutput, len(entries)), Count: len(entries)}
	for i, entry := range entries {
		out.Results[i] = inboxEntryOutput{Filename: entry.Filename, Content: entry.Content}
	}
	return nil, out, nil
}

// --- Helpers ---

func agentToOutput(a *models.Agent) agentOutput {
	out := agentOutput{
		Name:        a.Name,
		DisplayName: a.DisplayName,
		Role:        a.Role,
		Department:  a.Department,
		Level:       string(a.Level),
		Status:      string(a.Status),
		CreatedAt:   a.CreatedAt.Format(time.RFC3339),
	}
	if a.CurrentTaskID != nil {
		out.CurrentTaskID = *a.CurrentTaskID
	}
	return out
}

func taskToOutput(t *models.Task) taskOutput {
	out := taskOutput{
		ID:        t.ID,
		Assignee:  t.AssigneeID,
		Prompt:    t.Prompt,
		Priority:  t.Priority,
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
	}
	if t.ParentTaskID != nil {
		out.ParentTaskID = *t.ParentTaskID
	}
	if t.DelegatorID != nil {
		out.Delegator = *t.DelegatorID
	}
	if t.Result != nil {
		out.Result = *t.Result
	}
	if t.Telemetry != nil {
		out.CostUSD = t.Telemetry.CostUSD
		out.DurationMS = t.Telemetry.DurationMS
		out.TurnCount = t.Telemetry.TurnCount
	}
	if t.StartedAt != nil {
		out.StartedAt = t.StartedAt.Format(time.RFC3339)
	}
	if t.CompletedAt != nil {
		out.CompletedAt = t.CompletedAt.Format(time.RFC3339)
	}
	return out
}

func messageToOutput(m *models.Message) messageEntryOutput {
	out := messageEntryOutput{
		ID:        m.ID,
		ThreadID:  m.ThreadID,
		Subject:   m.Subject,
		Body:      m.Body,
		Type:      string(m.Type),
		Status:    string(m.Status),
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
	if m.FromAgentID != nil {
		out.From = *m.FromAgentID
	}
	return out
}

func orgNodeToOutput(node *models.OrgNode) orgNodeOutput {
	out := orgNodeOutput{
		Name:     node.AgentName,
		Position: node.Position,
	}
	if node.ParentAgentName != nil {
		out.Parent = *node.ParentAgentName
	}
	for _, child := range node.Children {
		out.Children = append(out.Children, orgNodeToOutput(child))
	}
	return out
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}
