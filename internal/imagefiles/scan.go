package imagefiles

import (
	"io/fs"
	"path/filepath"
	"sort"

	"pictura/internal/services"
)

// Scan returns the supported image files under root, sorted by path. When
// recursive is false only the top-level directory is inspected. Unreadable
// subdirectories abort the walk.
func Scan(root string, extensions []string, recursive bool) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if !recursive && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if SupportedExt(path, extensions) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, services.Wrap(services.ErrUnreadable, "imagefiles", "scan", root, err)
	}
	sort.Strings(paths)
	return paths, nil
}
