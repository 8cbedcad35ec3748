package state

import (
	"encoding/base64"
	"fmt"
)

// Bookmarks are opaque to callers: base64 over the last emitted key. An empty
// bookmark means "from the beginning".

func encodeBookmark(lastKey string) string {
	return base64.StdEncoding.EncodeToString([]byte(lastKey))
}

func decodeBookmark(bookmark string) (string, error) {
	if bookmark == "" {
		return "", nil
	}
	b, err := base64.StdEncoding.DecodeString(bookmark)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidBookmark, err)
	}
	return string(b), nil
}
