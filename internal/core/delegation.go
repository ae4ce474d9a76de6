package core

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/northgate-labs/agenthq/internal/storage"
	"github.com/northgate-labs/agenthq/pkg/models"
)

// NoResultPlaceholder is written verbatim into a result artifact when a
// task completed without a result string.
const NoResultPlaceholder = "_No result provided._"

// artifactTimestampLayout is fixed-width and UTC so artifact filenames
// sort lexically by arrival time; nanosecond precision keeps concurrent
// deliveries from colliding.
const artifactTimestampLayout = "20060102T150405.000000000Z"

// DeliverResult routes a completed child task's outcome into the mailbox
// of the parent task's assignee. It is fire-and-forget: the parent agent
// is never waited on. The artifact path is returned for observability.
// Delivery silently does nothing when the task has no delegation parent
// or the parent task can no longer be found.
func DeliverResult(agents storage.AgentStore, tasks storage.TaskStore, child *models.Task) (string, error) {
	if child.ParentTaskID == nil || child.DelegatorID == nil {
		return "", nil
	}
	parent, err := tasks.Get(*child.ParentTaskID)
	if err != nil {
		return "", fmt.Errorf("delivering result of %s: %w", child.ID, err)
	}
	if parent == nil {
		return "", nil
	}

	dir := agents.ResultsDir(parent.AssigneeID)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("delivering result of %s: creating mailbox: %w", child.ID, err)
	}

	completed := time.Now().UTC()
	if child.CompletedAt != nil {
		completed = child.CompletedAt.UTC()
	}
	filename := fmt.Sprintf("%s-%s.md", completed.Format(artifactTimestampLayout), child.ID)
	path := filepath.Join(dir, filename)

	content := formatResultArtifact(child, completed)
	if err := storage.WriteFileAtomic(path, []byte(content), 0o600); err != nil {
		return "", fmt.Errorf("delivering result of %s: %w", child.ID, err)
	}
	return path, nil
}

// formatResultArtifact renders the fixed artifact layout: heading,
// bold-label metadata lines, a horizontal rule, then the result text or
// the no-result placeholder.
func formatResultArtifact(child *models.Task, completed time.Time) string {
	result := NoResultPlaceholder
	if child.Result != nil && *child.Result != "" {
		result = *child.Result
	}

	var sb strings.Builder
	sb.WriteString("# Delegated Task Result\n\n")
	sb.WriteString(fmt.Sprintf("**Task ID**: %s\n", child.ID))
	sb.WriteString(fmt.Sprintf("**Status**: %s\n", child.Status))
	sb.WriteString(fmt.Sprintf("**Completed**: %s\n", completed.Format(time.RFC3339)))
	sb.WriteString("\n---\n\n")
	sb.WriteString(result)
	sb.WriteString("\n")
	return sb.String()
}

// InboxEntry is one delivered result artifact in an agent's mailbox.
type InboxEntry struct {
	Filename string
	Content  string
}

// ReadInbox lists an agent's delivered result artifacts in arrival order
// (lexical filename order). The mailbox is read-only here; consuming or
// deleting entries is the agent's own business.
func ReadInbox(agents storage.AgentStore, agentName string) ([]InboxEntry, error) {
	dir := agents.ResultsDir(agentName)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading inbox of %s: %w", agentName, err)
	}

	var results []InboxEntry
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name())) //nolint:gosec // G304: reading managed mailbox
		if err != nil {
			return nil, fmt.Errorf("reading inbox of %s: %w", agentName, err)
		}
		results = append(results, InboxEntry{Filename: entry.Name(), Content: string(data)})
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Filename < results[j].Filename
	})
	return results, nil
}
