package observability

import (
	"fmt"
	"time"
)

// Metrics holds aggregates derived from the event log.
type Metrics struct {
	AgentsCreated    int            `json:"agents_created"`
	TasksCreated     int            `json:"tasks_created"`
	TasksByStatus    map[string]int `json:"tasks_by_status"`
	AgentsByStatus   map[string]int `json:"agents_by_status"`
	MessagesSent     int            `json:"messages_sent"`
	BoardPosts       int            `json:"board_posts"`
	ResultsDelivered int            `json:"results_delivered"`
	EventCount       int            `json:"event_count"`
	OldestEvent      *time.Time     `json:"oldest_event,omitempty"`
	NewestEvent      *time.Time     `json:"newest_event,omitempty"`
}

// MetricsCalculator derives metrics from the event log.
type MetricsCalculator interface {
	Calculate(since time.Time) (*Metrics, error)
}

type metricsCalculator struct {
	eventLog EventLog
}

// NewMetricsCalculator creates a MetricsCalculator reading from the given
// EventLog.
func NewMetricsCalculator(eventLog EventLog) MetricsCalculator {
	return &metricsCalculator{eventLog: eventLog}
}

// Calculate reads all events since the given time and aggregates them.
func (mc *metricsCalculator) Calculate(since time.Time) (*Metrics, error) {
	events, err := mc.eventLog.Read(EventFilter{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("reading events for metrics: %w", err)
	}

	m := &Metrics{
		TasksByStatus:  make(map[string]int),
		AgentsByStatus: make(map[string]int),
	}
	m.EventCount = len(events)

	for i, event := range events {
		if i == 0 {
			t := event.Time
			m.OldestEvent = &t
		}
		t := event.Time
		m.NewestEvent = &t

		switch event.Kind {
		case "agent.created":
			m.AgentsCreated++
		case "agent.status_changed":
			if status, ok := event.Data["status"].(string); ok {
				m.AgentsByStatus[status]++
			}
		case "task.created":
			m.TasksCreated++
		case "task.status_changed":
			if status, ok := event.Data["status"].(string); ok {
				m.TasksByStatus[status]++
			}
		case "message.sent":
			m.MessagesSent++
		case "board.posted":
			m.BoardPosts++
		case "delegation.delivered":
			m.ResultsDelivered++
		}
	}

	return m, nil
}
