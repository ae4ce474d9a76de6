package core

import (
	"errors"
	"fmt"

	"github.com/northgate-labs/agenthq/internal/storage"
	"github.com/northgate-labs/agenthq/pkg/models"
)

// ErrOrgCycle is returned when a SetParent call would make a node its own
// ancestor.
var ErrOrgCycle = errors.New("org move would create a cycle")

// OrgManager maintains the manager/report forest. Mutations load the
// whole org document, rework it, and save it back atomically.
type OrgManager interface {
	SetParent(agentName string, parentAgentName *string) error
	GetParent(agentName string) (*string, error)
	GetChildren(agentName string) ([]string, error)
	RemoveAgent(agentName string) error
	Chart() (*models.OrgDoc, error)
}

type orgManager struct {
	store storage.OrgStore
}

// NewOrgManager creates an OrgManager persisting through the given store.
func NewOrgManager(store storage.OrgStore) OrgManager {
	return &orgManager{store: store}
}

// orgEntry is the flat arena record for one node: parent pointer, ordered
// child names, and the node's insertion index among its siblings.
type orgEntry struct {
	parent   *string
	children []string
	position int
}

// orgArena is the in-memory working form of the forest: a map from agent
// name to its entry plus the ordered root list.
type orgArena struct {
	nodes map[string]*orgEntry
	roots []string
}

func flattenOrg(doc *models.OrgDoc) *orgArena {
	arena := &orgArena{nodes: make(map[string]*orgEntry)}
	var walk func(node *models.OrgNode, parent *string)
	walk = func(node *models.OrgNode, parent *string) {
		entry := &orgEntry{parent: parent, position: node.Position}
		for _, child := range node.Children {
			entry.children = append(entry.children, child.AgentName)
		}
		arena.nodes[node.AgentName] = entry
		for _, child := range node.Children {
			name := node.AgentName
			walk(child, &name)
		}
	}
	for _, root := range doc.Roots {
		arena.roots = append(arena.roots, root.AgentName)
		walk(root, nil)
	}
	return arena
}

func (a *orgArena) buildDoc() *models.OrgDoc {
	var build func(name string) *models.OrgNode
	build = func(name string) *models.OrgNode {
		entry := a.nodes[name]
		node := &models.OrgNode{
			AgentName:       name,
			ParentAgentName: entry.parent,
			Position:        entry.position,
		}
		for _, child := range entry.children {
			node.Children = append(node.Children, build(child))
		}
		return node
	}
	doc := &models.OrgDoc{}
	for _, root := range a.roots {
		doc.Roots = append(doc.Roots, build(root))
	}
	return doc
}

// detach removes the node from its parent's child list (or the root
// list) without touching the node's own subtree. No-op if absent.
func (a *orgArena) detach(name string) {
	entry, ok := a.nodes[name]
	if !ok {
		return
	}
	if entry.parent == nil {
		a.roots = removeName(a.roots, name)
		return
	}
	if parent, ok := a.nodes[*entry.parent]; ok {
		parent.children = removeName(parent.children, name)
	}
}

// isAncestor reports whether candidate is name itself or one of its
// ancestors in the arena.
func (a *orgArena) isAncestor(candidate, name string) bool {
	for current := &name; current != nil; {
		if *current == candidate {
			return true
		}
		entry, ok := a.nodes[*current]
		if !ok {
			return false
		}
		current = entry.parent
	}
	return false
}

func removeName(names []string, name string) []string {
	for i, n := range names {
		if n == name {
			return append(names[:i:i], names[i+1:]...)
		}
	}
	return names
}

// SetParent detaches agentName from wherever it currently sits and
// re-inserts it, subtree intact, either as a new root (nil or unknown
// parent) or as the last child of parentAgentName. A move that would
// place a node under its own descendant is rejected with ErrOrgCycle.
func (m *orgManager) SetParent(agentName string, parentAgentName *string) error {
	doc, err := m.store.Load()
	if err != nil {
		return fmt.Errorf("setting parent of %s: %w", agentName, err)
	}
	arena := flattenOrg(doc)

	// Unknown parents fall back to a root insertion so the forest never
	// holds a dangling parent pointer.
	parent := parentAgentName
	if parent != nil {
		if _, ok := arena.nodes[*parent]; !ok {
			parent = nil
		}
	}
	if parent != nil && arena.isAncestor(agentName, *parent) {
		return fmt.Errorf("setting parent of %s to %s: %w", agentName, *parent, ErrOrgCycle)
	}

	arena.detach(agentName)
	entry, ok := arena.nodes[agentName]
	if !ok {
		entry = &orgEntry{}
		arena.nodes[agentName] = entry
	}
	entry.parent = parent
	if parent == nil {
		entry.position = len(arena.roots)
		arena.roots = append(arena.roots, agentName)
	} else {
		parentEntry := arena.nodes[*parent]
		entry.position = len(parentEntry.children)
		parentEntry.children = append(parentEntry.children, agentName)
	}

	if err := m.store.Save(arena.buildDoc()); err != nil {
		return fmt.Errorf("setting parent of %s: %w", agentName, err)
	}
	return nil
}

// GetParent returns the node's parent name, or nil for roots and for
// names not present in the forest.
func (m *orgManager) GetParent(agentName string) (*string, error) {
	doc, err := m.store.Load()
	if err != nil {
		return nil, fmt.Errorf("getting parent of %s: %w", agentName, err)
	}
	arena := flattenOrg(doc)
	entry, ok := arena.nodes[agentName]
	if !ok {
		return nil, nil
	}
	return entry.parent, nil
}

// GetChildren returns the node's direct children in sibling order.
func (m *orgManager) GetChildren(agentName string) ([]string, error) {
	doc, err := m.store.Load()
	if err != nil {
		return nil, fmt.Errorf("getting children of %s: %w", agentName, err)
	}
	arena := flattenOrg(doc)
	entry, ok := arena.nodes[agentName]
	if !ok {
		return nil, nil
	}
	return append([]string(nil), entry.children...), nil
}

// RemoveAgent deletes the node and reparents each of its direct children
// to the removed node's own parent, or to root if the removed node was a
// root, preserving their relative order. Subtrees below the reparented
// children are untouched. Removing an absent name is a no-op.
func (m *orgManager) RemoveAgent(agentName string) error {
	doc, err := m.store.Load()
	if err != nil {
		return fmt.Errorf("removing %s from org: %w", agentName, err)
	}
	arena := flattenOrg(doc)
	entry, ok := arena.nodes[agentName]
	if !ok {
		return nil
	}

	arena.detach(agentName)
	newParent := entry.parent
	for _, child := range entry.children {
		childEntry := arena.nodes[child]
		childEntry.parent = newParent
		if newParent == nil {
			childEntry.position = len(arena.roots)
			arena.roots = append(arena.roots, child)
		} else {
			parentEntry := arena.nodes[*newParent]
			childEntry.position = len(parentEntry.children)
			parentEntry.children = append(parentEntry.children, child)
		}
	}
	delete(arena.nodes, agentName)

	if err := m.store.Save(arena.buildDoc()); err != nil {
		return fmt.Errorf("removing %s from org: %w", agentName, err)
	}
	return nil
}

// Chart returns the current forest document.
func (m *orgManager) Chart() (*models.OrgDoc, error) {
	doc, err := m.store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading org chart: %w", err)
	}
	return doc, nil
}
