// Package diskuse measures how much disk space a directory tree occupies.
package diskuse

import (
	"io/fs"
	"path/filepath"
)

// Size returns the total size in bytes of all regular files under path,
// without following symbolic links. Entries that cannot be read are
// skipped; only an unreadable root is an error.
func Size(path string) (int64, error) {
	var total int64
	first := true
	err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if first {
				return err
			}
			return nil
		}
		first = false
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		total += info.Size()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}
