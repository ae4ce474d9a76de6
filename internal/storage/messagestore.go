package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/northgate-labs/agenthq/pkg/models"
)

// MessageStore manages message records grouped by thread: one JSON file
// per message under messages/<threadId>/.
type MessageStore interface {
	Save(msg *models.Message) error
	Get(threadID, msgID string) (*models.Message, error)
	ListThread(threadID string) ([]*models.Message, error)
	ListUnread(toAgentID string) ([]*models.Message, error)
	MarkRead(threadID, msgID string) (*models.Message, error)
}

type fileMessageStore struct {
	basePath string
}

// NewMessageStore creates a MessageStore rooted at basePath/messages.
func NewMessageStore(basePath string) MessageStore {
	return &fileMessageStore{basePath: basePath}
}

func (s *fileMessageStore) messagesDir() string {
	return filepath.Join(s.basePath, "messages")
}

func (s *fileMessageStore) threadDir(threadID string) string {
	return filepath.Join(s.messagesDir(), threadID)
}

func (s *fileMessageStore) messagePath(threadID, msgID string) string {
	return filepath.Join(s.threadDir(threadID), msgID+".json")
}

func (s *fileMessageStore) Save(msg *models.Message) error {
	if msg.ID == "" || msg.ThreadID == "" {
		return fmt.Errorf("saving message: ID and thread ID must not be empty")
	}
	if err := os.MkdirAll(s.threadDir(msg.ThreadID), 0o750); err != nil {
		return fmt.Errorf("saving message %s: creating thread directory: %w", msg.ID, err)
	}
	data, err := json.MarshalIndent(msg, "", "  ")
	if err != nil {
		return fmt.Errorf("saving message %s: marshaling: %w", msg.ID, err)
	}
	if err := WriteFileAtomic(s.messagePath(msg.ThreadID, msg.ID), data, 0o600); err != nil {
		return fmt.Errorf("saving message %s: %w", msg.ID, err)
	}
	return nil
}

// Get returns a single message, or (nil, nil) if absent.
func (s *fileMessageStore) Get(threadID, msgID string) (*models.Message, error) {
	data, err := os.ReadFile(s.messagePath(threadID, msgID)) //nolint:gosec // G304: reading managed message record
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading message %s/%s: %w", threadID, msgID, err)
	}
	var msg models.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("reading message %s/%s: parsing JSON: %w", threadID, msgID, err)
	}
	return &msg, nil
}

// ListThread returns every message in a thread in chronological order.
func (s *fileMessageStore) ListThread(threadID string) ([]*models.Message, error) {
	entries, err := os.ReadDir(s.threadDir(threadID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing thread %s: %w", threadID, err)
	}

	var msgs []*models.Message
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		msg, err := s.Get(threadID, strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			return nil, err
		}
		if msg != nil {
			msgs = append(msgs, msg)
		}
	}
	sortMessagesAscending(msgs)
	return msgs, nil
}

// ListUnread aggregates unread messages addressed to the given agent
// across all threads, in chronological order.
func (s *fileMessageStore) ListUnread(toAgentID string) ([]*models.Message, error) {
	threads, err := os.ReadDir(s.messagesDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing messages: %w", err)
	}

	var unread []*models.Message
	for _, thread := range threads {
		if !thread.IsDir() {
			continue
		}
		msgs, err := s.ListThread(thread.Name())
		if err != nil {
			return nil, err
		}
		for _, msg := range msgs {
			if msg.ToAgentID == toAgentID && msg.Status != models.MessageRead {
				unread = append(unread, msg)
			}
		}
	}
	sortMessagesAscending(unread)
	return unread, nil
}

// MarkRead flips the message to read and stamps ReadAt. Marking an
// already-read message again is a no-op; the message is returned either
// way, or (nil, nil) if absent.
func (s *fileMessageStore) MarkRead(threadID, msgID string) (*models.Message, error) {
	msg, err := s.Get(threadID, msgID)
	if err != nil || msg == nil {
		return nil, err
	}
	if msg.Status == models.MessageRead {
		return msg, nil
	}
	now := nowUTC()
	msg.Status = models.MessageRead
	msg.ReadAt = &now
	if err := s.Save(msg); err != nil {
		return nil, fmt.Errorf("marking message %s read: %w", msgID, err)
	}
	return msg, nil
}

func sortMessagesAscending(msgs []*models.Message) {
	sort.Slice(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
	})
}
