// Package storage implements the file-backed entity stores for the
// agenthq workspace: agents, tasks, messages, board items, and the org
// forest document. Every write follows the atomic rename discipline so a
// crash never leaves a partially-written record on disk.
package storage

import (
	"fmt"
	"os"
	"time"
)

func nowUTC() time.Time {
	return time.Now().UTC()
}

// WriteFileAtomic writes data to a sibling temporary file and renames it
// into place. Readers observe either the previous content or the new
// content, never a mix.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, perm); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming into place: %w", err)
	}
	return nil
}
