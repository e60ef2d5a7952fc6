//go:build unix

package exclude

import "golang.org/x/sys/unix"

// Writable reports whether the invoking user can write to path.
func Writable(path string) bool {
	return unix.Access(path, unix.W_OK) == nil
}
