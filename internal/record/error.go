package record

import (
	"errors"
)

var (
	ErrMissingID      = errors.New("record is missing the id field")
	ErrMissingDocType = errors.New("record is missing the docType field")
	ErrMalformed      = errors.New("stored bytes are not a structured record")
)
