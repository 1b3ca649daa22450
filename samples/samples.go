// Package samples discovers the benchmark's sample program files.
package samples

import (
	"fmt"
	"os"
)

// List returns the file names in dir, sorted. Subdirectories are
// skipped. Listing order would otherwise be filesystem-dependent, and
// the report relies on sorted order so runs are comparable.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list samples in %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		names = append(names, entry.Name())
	}

	return names, nil
}
