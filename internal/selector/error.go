package selector

import (
	"errors"
)

var ErrUnsupportedOp = errors.New("unsupported selector operator")
