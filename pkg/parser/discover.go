package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DiscoverFiles lists the files directly under dir that carry the
// given extension (with or without a leading dot). The listing is not
// recursive and comes back in lexical order, so batch output order is
// deterministic.
func DiscoverFiles(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	suffix := "." + strings.TrimPrefix(ext, ".")

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}
