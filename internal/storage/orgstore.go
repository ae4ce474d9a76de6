package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/northgate-labs/agenthq/pkg/models"
)

// OrgStore loads and saves the single org.json document. The org forest
// is always read and written as a whole.
type OrgStore interface {
	Load() (*models.OrgDoc, error)
	Save(doc *models.OrgDoc) error
}

type fileOrgStore struct {
	basePath string
}

// NewOrgStore creates an OrgStore writing to basePath/org.json.
func NewOrgStore(basePath string) OrgStore {
	return &fileOrgStore{basePath: basePath}
}

func (s *fileOrgStore) orgPath() string {
	return filepath.Join(s.basePath, "org.json")
}

// Load reads org.json. A missing file yields an empty forest.
func (s *fileOrgStore) Load() (*models.OrgDoc, error) {
	data, err := os.ReadFile(s.orgPath()) //nolint:gosec // G304: reading managed org document
	if err != nil {
		if os.IsNotExist(err) {
			return &models.OrgDoc{}, nil
		}
		return nil, fmt.Errorf("loading org document: %w", err)
	}
	var doc models.OrgDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("loading org document: parsing JSON: %w", err)
	}
	return &doc, nil
}

// Save writes org.json atomically.
func (s *fileOrgStore) Save(doc *models.OrgDoc) error {
	if err := os.MkdirAll(s.basePath, 0o750); err != nil {
		return fmt.Errorf("saving org document: creating directory: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("saving org document: marshaling: %w", err)
	}
	if err := WriteFileAtomic(s.orgPath(), data, 0o600); err != nil {
		return fmt.Errorf("saving org document: %w", err)
	}
	return nil
}
