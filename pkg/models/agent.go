package models

import "time"

// AgentLevel represents an agent's rank in the organization, ordered from
// most junior to most senior.
type AgentLevel string

const (
	LevelIntern    AgentLevel = "intern"
	LevelAssociate AgentLevel = "associate"
	LevelManager   AgentLevel = "manager"
	LevelDirector  AgentLevel = "director"
	LevelVP        AgentLevel = "vp"
	LevelExecutive AgentLevel = "executive"
)

// levelRank maps each level to its position in the ordering.
var levelRank = map[AgentLevel]int{
	LevelIntern:    0,
	LevelAssociate: 1,
	LevelManager:   2,
	LevelDirector:  3,
	LevelVP:        4,
	LevelExecutive: 5,
}

// Rank returns the numeric position of the level in the seniority
// ordering, or -1 for an unknown level.
func (l AgentLevel) Rank() int {
	if r, ok := levelRank[l]; ok {
		return r
	}
	return -1
}

// AgentStatus represents the current availability of an agent.
type AgentStatus string

const (
	AgentIdle    AgentStatus = "idle"
	AgentRunning AgentStatus = "running"
	AgentError   AgentStatus = "error"
	AgentOffline AgentStatus = "offline"
)

// Agent represents a named actor that can hold one task at a time and
// occupy a position in the org forest. Name is the immutable key;
// CurrentTaskID is non-nil exactly when Status is running.
type Agent struct {
	Name          string      `json:"name"`
	DisplayName   string      `json:"displayName"`
	Role          string      `json:"role"`
	Department    string      `json:"department"`
	Personality   string      `json:"personality,omitempty"`
	Level         AgentLevel  `json:"level"`
	Status        AgentStatus `json:"status"`
	CurrentTaskID *string     `json:"currentTaskId"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}
