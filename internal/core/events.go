// Package core contains the business logic for agenthq: the orchestration
// engine, the org tree manager, the delegation flow, the event bus, and
// configuration management.
package core

import (
	"fmt"
	"sync"
)

// EventKind identifies one channel on the event bus.
type EventKind string

const (
	EventAgentCreated       EventKind = "agent.created"
	EventAgentUpdated       EventKind = "agent.updated"
	EventAgentDeleted       EventKind = "agent.deleted"
	EventAgentStatusChanged EventKind = "agent.status_changed"
	EventTaskCreated        EventKind = "task.created"
	EventTaskStatusChanged  EventKind = "task.status_changed"
	EventMessageSent        EventKind = "message.sent"
	EventMessageRead        EventKind = "message.read"
	EventBoardPosted        EventKind = "board.posted"
	EventOrgChanged         EventKind = "org.changed"
	EventDelegationDone     EventKind = "delegation.delivered"
)

// EventHandler receives the exact payload passed to Publish.
type EventHandler func(payload any)

// Subscription identifies one registered handler so it can be removed.
type Subscription struct {
	kind EventKind
	id   int
}

type busEntry struct {
	id      int
	handler EventHandler
}

// EventBus is an in-process synchronous publish/subscribe registry, one
// channel per event kind. Handlers run in registration order. A handler
// that panics is recovered so the remaining handlers still run and the
// mutation that triggered the event is unaffected; the failure is routed
// to the bus's error callback instead.
type EventBus struct {
	mu       sync.Mutex
	handlers map[EventKind][]busEntry
	nextID   int
	onError  func(kind EventKind, err error)
}

// NewEventBus creates an empty bus. onError may be nil, in which case
// handler failures are silently dropped.
func NewEventBus(onError func(kind EventKind, err error)) *EventBus {
	return &EventBus{
		handlers: make(map[EventKind][]busEntry),
		onError:  onError,
	}
}

// Subscribe registers a handler for the given kind and returns a token
// for removing exactly that registration.
func (b *EventBus) Subscribe(kind EventKind, handler EventHandler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.handlers[kind] = append(b.handlers[kind], busEntry{id: b.nextID, handler: handler})
	return Subscription{kind: kind, id: b.nextID}
}

// Unsubscribe removes the handler identified by the subscription token.
// Unknown tokens are ignored.
func (b *EventBus) Unsubscribe(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries := b.handlers[sub.kind]
	for i, entry := range entries {
		if entry.id == sub.id {
			b.handlers[sub.kind] = append(entries[:i:i], entries[i+1:]...)
			return
		}
	}
}

// Publish invokes every handler currently registered for the kind,
// synchronously and in registration order. Publishing to a kind with no
// subscribers is a no-op.
func (b *EventBus) Publish(kind EventKind, payload any) {
	b.mu.Lock()
	entries := make([]busEntry, len(b.handlers[kind]))
	copy(entries, b.handlers[kind])
	b.mu.Unlock()

	for _, entry := range entries {
		b.invoke(kind, entry.handler, payload)
	}
}

func (b *EventBus) invoke(kind EventKind, handler EventHandler, payload any) {
	defer func() {
		if r := recover(); r != nil && b.onError != nil {
			b.onError(kind, fmt.Errorf("event handler panicked: %v", r))
		}
	}()
	handler(payload)
}

// Clear drops every registration across every kind.
func (b *EventBus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers = make(map[EventKind][]busEntry)
}

// --- Event payloads ---

// AgentEvent accompanies agent lifecycle and status events.
type AgentEvent struct {
	Name   string
	Status string
}

// TaskEvent accompanies task lifecycle and status events.
type TaskEvent struct {
	TaskID string
	Status string
}

// MessageEvent accompanies message events.
type MessageEvent struct {
	ThreadID  string
	MessageID string
	ToAgentID string
}

// BoardEvent accompanies board postings.
type BoardEvent struct {
	ItemID string
	Type   string
	Author string
}

// OrgEvent accompanies org forest mutations.
type OrgEvent struct {
	AgentName       string
	ParentAgentName *string
}

// DelegationEvent accompanies a delivered child-task result.
type DelegationEvent struct {
	ChildTaskID  string
	ParentTaskID string
	AgentName    string
	ArtifactPath string
}
