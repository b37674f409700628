// Package connectors discovers candidate dataset files on disk.
package connectors

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileMeta describes one discovered file.
type FileMeta struct {
	Path     string
	Size     int64
	Modified time.Time
}

// DiscoveryOptions filter the walk. Zero values disable a filter.
type DiscoveryOptions struct {
	Recursive      bool
	MinSize        int64
	MaxSize        int64
	ModifiedAfter  time.Time
	ModifiedBefore time.Time
}

// DiscoverFiles walks root and returns the files whose extension matches
// ext (case-insensitive, with or without the leading dot) and pass the
// option filters. Finding nothing is not an error.
func DiscoverFiles(root string, ext string, options DiscoveryOptions) ([]FileMeta, error) {
	if root == "" {
		return nil, fmt.Errorf("root directory cannot be empty")
	}
	stat, err := os.Stat(root)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("directory does not exist: %s", root)
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !stat.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", root)
	}

	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return nil, fmt.Errorf("file extension cannot be empty")
	}

	var files []FileMeta
	walkFunc := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("accessing %s: %w", path, err)
		}
		if d.IsDir() {
			if path != root && !options.Recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), "."+ext) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("file info for %s: %w", path, err)
		}
		if options.MinSize > 0 && info.Size() < options.MinSize {
			return nil
		}
		if options.MaxSize > 0 && info.Size() > options.MaxSize {
			return nil
		}
		if !options.ModifiedAfter.IsZero() && info.ModTime().Before(options.ModifiedAfter) {
			return nil
		}
		if !options.ModifiedBefore.IsZero() && info.ModTime().After(options.ModifiedBefore) {
			return nil
		}

		files = append(files, FileMeta{
			Path:     path,
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
		return nil
	}

	if err := filepath.WalkDir(root, walkFunc); err != nil {
		return nil, fmt.Errorf("directory walk error: %w", err)
	}
	return files, nil
}
