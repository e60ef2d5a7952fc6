package exclude

import (
	"errors"

	"golang.org/x/sys/unix"
)

func isNoAttr(err error) bool {
	return errors.Is(err, unix.ENODATA)
}
