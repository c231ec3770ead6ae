// Package scanner discovers the source files for a scan.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Options configures one directory walk.
type Options struct {
	Root          string
	Extensions    []string // accepted file extensions, with leading dot
	IgnoreFolders []string // folder names skipped at any depth
}

// CollectFiles walks the root and returns every file matching one of the
// extensions, skipping ignored folder names at any depth. The list is sorted
// so downstream processing is deterministic. An unreadable or missing root is
// an error; unreadable entries below it are skipped.
func CollectFiles(opts Options) ([]string, error) {
	info, err := os.Stat(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("cannot read root directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", opts.Root)
	}

	ignored := make(map[string]bool, len(opts.IgnoreFolders))
	for _, folder := range opts.IgnoreFolders {
		folder = strings.TrimSpace(folder)
		if folder != "" {
			ignored[folder] = true
		}
	}

	var files []string
	err = filepath.WalkDir(opts.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == opts.Root {
				return err
			}
			return nil
		}
		if d.IsDir() {
			if path != opts.Root && ignored[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if hasExtension(path, opts.Extensions) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

func hasExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}
