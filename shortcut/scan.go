package shortcut

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Scan returns the paths of all .url shortcut files in dir, in listing
// order. Directories, symlinks and other non-regular entries are skipped.
// The only error is a failure to read the directory itself.
func Scan(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading shortcut directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		name := entry.Name()

		if entry.IsDir() {
			slog.Debug("Skipping directory", "name", name)
			continue
		}
		if !entry.Type().IsRegular() {
			slog.Warn("Skipping non-regular file", "name", name)
			continue
		}
		if !strings.EqualFold(filepath.Ext(name), ".url") {
			slog.Debug("Skipping non-shortcut file", "name", name)
			continue
		}

		paths = append(paths, filepath.Join(dir, name))
	}

	return paths, nil
}
