package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"wiserate/internal/domain"
)

// readJSON loads path into v. A missing file is not an error: it returns
// (false, nil) and leaves v untouched. Anything else that prevents a full
// decode is a persistence failure.
func readJSON(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: read %s: %v", domain.ErrPersistence, path, err)
	}
	if err = json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("%w: decode %s: %v", domain.ErrPersistence, path, err)
	}
	return true, nil
}

// writeJSON persists v atomically: marshal, write to a temp file next to
// the target, then rename over it. A crash mid-write never leaves a
// half-written store behind.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", domain.ErrPersistence, path, err)
	}

	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: create data dir: %v", domain.ErrPersistence, err)
	}

	tmp := path + ".tmp"
	if err = os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", domain.ErrPersistence, tmp, err)
	}
	if err = os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: replace %s: %v", domain.ErrPersistence, path, err)
	}
	return nil
}
