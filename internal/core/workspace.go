package core

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/northgate-labs/agenthq/internal/storage"
)

// InitWorkspace creates the workspace directory skeleton, an empty org
// document, and a default configuration file. Re-running it on an
// existing workspace is safe.
func InitWorkspace(basePath string) error {
	for _, dir := range []string{"agents", "tasks", "messages", "board"} {
		if err := os.MkdirAll(filepath.Join(basePath, dir), 0o750); err != nil {
			return fmt.Errorf("initializing workspace: %w", err)
		}
	}
	orgStore := storage.NewOrgStore(basePath)
	doc, err := orgStore.Load()
	if err != nil {
		return fmt.Errorf("initializing workspace: %w", err)
	}
	if err := orgStore.Save(doc); err != nil {
		return fmt.Errorf("initializing workspace: %w", err)
	}
	if err := NewConfigurationManager(basePath).WriteDefault(); err != nil {
		return fmt.Errorf("initializing workspace: %w", err)
	}
	return nil
}
