package models

import "time"

// MessageType classifies how a message entered the system.
type MessageType string

const (
	MessageDirect MessageType = "direct"
	MessageSystem MessageType = "system"
	MessageChat   MessageType = "chat"
)

// MessageStatus tracks delivery of a message.
type MessageStatus string

const (
	MessagePending   MessageStatus = "pending"
	MessageDelivered MessageStatus = "delivered"
	MessageRead      MessageStatus = "read"
)

// Message is a single entry in a conversation thread. Messages are
// immutable after creation except for the read transition, which sets
// Status to read and stamps ReadAt once.
type Message struct {
	ID          string        `json:"id"`
	ThreadID    string        `json:"threadId"`
	FromAgentID *string       `json:"fromAgentId"`
	ToAgentID   string        `json:"toAgentId"`
	Subject     string        `json:"subject,omitempty"`
	Body        string        `json:"body"`
	Type        MessageType   `json:"type"`
	Status      MessageStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	ReadAt      *time.Time    `json:"readAt"`
}
