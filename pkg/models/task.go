package models

import "time"

// TaskStatus represents the current lifecycle state of a task.
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskRunning   TaskStatus = "running"
	TaskCompleted TaskStatus = "completed"
	TaskFailed    TaskStatus = "failed"
	TaskBlocked   TaskStatus = "blocked"
	// TaskReview is representable but the engine never transitions into
	// it; external drivers may set it by policy.
	TaskReview TaskStatus = "review"
)

// IsTerminal reports whether the status admits no further transitions.
func (s TaskStatus) IsTerminal() bool {
	switch s {
	case TaskCompleted, TaskFailed, TaskBlocked:
		return true
	}
	return false
}

// TaskTelemetry aggregates optional execution measurements attached only
// at a terminal transition, never partially populated before that.
type TaskTelemetry struct {
	CostUSD    float64 `json:"costUsd"`
	DurationMS int64   `json:"durationMs"`
	TurnCount  int     `json:"turnCount"`
}

// Task represents a unit of work with an assignee, an optional delegating
// parent, and a terminal outcome. ParentTaskID links the task delegation
// forest, which is independent of the org forest.
type Task struct {
	ID           string         `json:"id"`
	ParentTaskID *string        `json:"parentTaskId"`
	AssigneeID   string         `json:"assigneeId"`
	DelegatorID  *string        `json:"delegatorId"`
	Prompt       string         `json:"prompt"`
	Context      string         `json:"context,omitempty"`
	Priority     int            `json:"priority"`
	Status       TaskStatus     `json:"status"`
	Result       *string        `json:"result"`
	Telemetry    *TaskTelemetry `json:"telemetry,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	StartedAt    *time.Time     `json:"startedAt"`
	CompletedAt  *time.Time     `json:"completedAt"`
}
