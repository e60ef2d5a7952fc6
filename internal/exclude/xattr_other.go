//go:build !(linux || darwin)

package exclude

import (
	"context"
	"errors"
)

// DefaultXattrName is the extended attribute the xattr marker would set on
// platforms that support it.
const DefaultXattrName = "user.dirsweep.excluded"

// XattrMarker is unavailable on this platform; use the command marker.
type XattrMarker struct {
	Attr string
}

// NewXattrMarker returns a stub marker that reports ErrUnsupported.
func NewXattrMarker(attr string) *XattrMarker {
	if attr == "" {
		attr = DefaultXattrName
	}
	return &XattrMarker{Attr: attr}
}

func (m *XattrMarker) IsExcluded(context.Context, string) (bool, error) {
	return false, errors.ErrUnsupported
}

func (m *XattrMarker) Exclude(context.Context, string) error {
	return errors.ErrUnsupported
}
