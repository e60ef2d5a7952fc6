//go:build !unix

package exclude

import "os"

// Writable reports whether path looks writable. Without access(2) this
// falls back to the permission bits, which ignores ACLs.
func Writable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().Perm()&0200 != 0
}
