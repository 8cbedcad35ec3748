package grant

import (
	"errors"
)

var ErrMissingParty = errors.New("grant requires payeer_id and resume_id")
