//go:build linux || darwin

package exclude

import (
	"context"
	"fmt"

	"golang.org/x/sys/unix"
)

// DefaultXattrName is the extended attribute the xattr marker sets on
// excluded directories. Backup services configured to honor it (or tools
// layered on top) treat its presence as "never back up".
const DefaultXattrName = "user.dirsweep.excluded"

// XattrMarker marks exclusions by setting an extended attribute directly on
// the directory, so the mark travels with the path and survives config
// wipes.
type XattrMarker struct {
	Attr string
}

// NewXattrMarker returns an xattr-based Marker. An empty attr selects
// DefaultXattrName.
func NewXattrMarker(attr string) *XattrMarker {
	if attr == "" {
		attr = DefaultXattrName
	}
	return &XattrMarker{Attr: attr}
}

// IsExcluded reports whether the exclusion attribute is present on path.
func (m *XattrMarker) IsExcluded(_ context.Context, path string) (bool, error) {
	_, err := unix.Getxattr(path, m.Attr, nil)
	switch {
	case err == nil:
		return true, nil
	case isNoAttr(err):
		return false, nil
	default:
		return false, fmt.Errorf("getxattr %s: %w", m.Attr, err)
	}
}

// Exclude sets the exclusion attribute on path.
func (m *XattrMarker) Exclude(_ context.Context, path string) error {
	if err := unix.Setxattr(path, m.Attr, []byte("true"), 0); err != nil {
		return fmt.Errorf("setxattr %s: %w", m.Attr, err)
	}
	return nil
}
