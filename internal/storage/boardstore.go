package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/northgate-labs/agenthq/pkg/models"
)

// boardFolders maps each item type to its storage partition under board/.
// The mapping is closed: adding a new type means adding a folder here.
var boardFolders = map[models.BoardItemType]string{
	models.BoardStatusUpdate: "status-updates",
	models.BoardBlocker:      "blockers",
	models.BoardFinding:      "findings",
	models.BoardRequest:      "requests",
}

// BoardStore manages the append-only shared board. Items are markdown
// documents with a frontmatter block so humans can read entries directly.
type BoardStore interface {
	Save(item *models.BoardItem) error
	Get(itemType models.BoardItemType, id string) (*models.BoardItem, error)
	List(itemType models.BoardItemType) ([]*models.BoardItem, error)
	ListAll() ([]*models.BoardItem, error)
}

type fileBoardStore struct {
	basePath string
}

// NewBoardStore creates a BoardStore rooted at basePath/board.
func NewBoardStore(basePath string) BoardStore {
	return &fileBoardStore{basePath: basePath}
}

func (s *fileBoardStore) typeDir(itemType models.BoardItemType) string {
	return filepath.Join(s.basePath, "board", boardFolders[itemType])
}

func (s *fileBoardStore) itemPath(itemType models.BoardItemType, id string) string {
	return filepath.Join(s.typeDir(itemType), id+".md")
}

func (s *fileBoardStore) Save(item *models.BoardItem) error {
	if item.ID == "" {
		return fmt.Errorf("saving board item: ID must not be empty")
	}
	if !item.Type.Valid() {
		return fmt.Errorf("saving board item %s: unknown type %q", item.ID, item.Type)
	}
	if err := os.MkdirAll(s.typeDir(item.Type), 0o750); err != nil {
		return fmt.Errorf("saving board item %s: creating directory: %w", item.ID, err)
	}
	content := formatBoardItem(item)
	if err := WriteFileAtomic(s.itemPath(item.Type, item.ID), []byte(content), 0o600); err != nil {
		return fmt.Errorf("saving board item %s: %w", item.ID, err)
	}
	return nil
}

// Get returns a board item, or (nil, nil) if absent.
func (s *fileBoardStore) Get(itemType models.BoardItemType, id string) (*models.BoardItem, error) {
	data, err := os.ReadFile(s.itemPath(itemType, id)) //nolint:gosec // G304: reading managed board item
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading board item %s: %w", id, err)
	}
	item, err := parseBoardItem(string(data))
	if err != nil {
		return nil, fmt.Errorf("reading board item %s: %w", id, err)
	}
	return item, nil
}

// List returns every item in one partition, newest first.
func (s *fileBoardStore) List(itemType models.BoardItemType) ([]*models.BoardItem, error) {
	entries, err := os.ReadDir(s.typeDir(itemType))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing board %s items: %w", itemType, err)
	}

	var items []*models.BoardItem
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		item, err := s.Get(itemType, strings.TrimSuffix(entry.Name(), ".md"))
		if err != nil {
			return nil, err
		}
		if item != nil {
			items = append(items, item)
		}
	}
	sortBoardItemsDescending(items)
	return items, nil
}

// ListAll returns every item across all partitions, newest first.
func (s *fileBoardStore) ListAll() ([]*models.BoardItem, error) {
	var items []*models.BoardItem
	for _, itemType := range models.BoardItemTypes {
		typed, err := s.List(itemType)
		if err != nil {
			return nil, err
		}
		items = append(items, typed...)
	}
	sortBoardItemsDescending(items)
	return items, nil
}

func sortBoardItemsDescending(items []*models.BoardItem) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

// formatBoardItem renders the frontmatter+body document: a block of
// key: value lines between two "---" delimiters, a blank line, then the
// body verbatim.
func formatBoardItem(item *models.BoardItem) string {
	var sb strings.Builder
	sb.WriteString("---\n")
	sb.WriteString(fmt.Sprintf("id: %s\n", item.ID))
	sb.WriteString(fmt.Sprintf("type: %s\n", item.Type))
	sb.WriteString(fmt.Sprintf("author: %s\n", item.Author))
	sb.WriteString(fmt.Sprintf("summary: %s\n", item.Summary))
	sb.WriteString(fmt.Sprintf("createdAt: %s\n", item.CreatedAt.UTC().Format(time.RFC3339Nano)))
	sb.WriteString("---\n\n")
	sb.WriteString(item.Body)
	sb.WriteString("\n")
	return sb.String()
}

// parseBoardItem parses the frontmatter+body document. Frontmatter lines
// are split at the first colon only, so values containing colons survive
// a round trip intact.
func parseBoardItem(content string) (*models.BoardItem, error) {
	rest, found := strings.CutPrefix(content, "---\n")
	if !found {
		return nil, fmt.Errorf("missing frontmatter opening delimiter")
	}
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return nil, fmt.Errorf("missing frontmatter closing delimiter")
	}
	front := rest[:end]
	body := rest[end+len("\n---"):]
	body = strings.TrimPrefix(body, "\n")
	body = strings.TrimPrefix(body, "\n")
	body = strings.TrimSuffix(body, "\n")

	item := &models.BoardItem{Body: body}
	for _, line := range strings.Split(front, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimPrefix(value, " ")
		switch key {
		case "id":
			item.ID = value
		case "type":
			item.Type = models.BoardItemType(value)
		case "author":
			item.Author = value
		case "summary":
			item.Summary = value
		case "createdAt":
			t, err := time.Parse(time.RFC3339Nano, value)
			if err != nil {
				return nil, fmt.Errorf("parsing createdAt %q: %w", value, err)
			}
			item.CreatedAt = t
		}
	}
	return item, nil
}
