package models

import "time"

// BoardItemType determines which board partition an item is filed under.
type BoardItemType string

const (
	BoardStatusUpdate BoardItemType = "status_update"
	BoardBlocker      BoardItemType = "blocker"
	BoardFinding      BoardItemType = "finding"
	BoardRequest      BoardItemType = "request"
)

// BoardItemTypes lists every valid item type, in display order.
var BoardItemTypes = []BoardItemType{
	BoardStatusUpdate,
	BoardBlocker,
	BoardFinding,
	BoardRequest,
}

// Valid reports whether the type is one of the four known kinds.
func (t BoardItemType) Valid() bool {
	switch t {
	case BoardStatusUpdate, BoardBlocker, BoardFinding, BoardRequest:
		return true
	}
	return false
}

// BoardItem is an append-only announcement on the shared board. Items are
// stored as human-readable markdown documents and are never updated.
type BoardItem struct {
	ID        string        `json:"id"`
	Type      BoardItemType `json:"type"`
	Author    string        `json:"author"`
	Summary   string        `json:"summary"`
	Body      string        `json:"body"`
	CreatedAt time.Time     `json:"createdAt"`
}
