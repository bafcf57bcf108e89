package icons

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/csmith/steamicons/model"
)

// Store keeps icon files in a single directory. The directory belongs to
// Steam and is never created by the store.
type Store struct {
	Dir string
}

// CheckDir verifies that the icon directory exists and is a directory.
func (s *Store) CheckDir() error {
	info, err := os.Stat(s.Dir)
	if err != nil {
		return fmt.Errorf("icon directory %s: %w", s.Dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("icon directory %s is not a directory", s.Dir)
	}
	return nil
}

// Exists reports whether an icon file is already present. Content is not
// inspected; an empty or corrupt file still counts.
func (s *Store) Exists(iconFilename string) (bool, error) {
	_, err := os.Stat(filepath.Join(s.Dir, iconFilename))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("checking for icon %s: %w", iconFilename, err)
}

// Write saves icon bytes under the icon filename. Last write for a given
// filename wins.
func (s *Store) Write(iconFilename string, data []byte) error {
	path := filepath.Join(s.Dir, iconFilename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing icon %s: %w", iconFilename, err)
	}
	return nil
}

var _ model.Store = &Store{}
