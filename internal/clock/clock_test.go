package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManual(t *testing.T) {
	start := time.Date(2026, 2, 1, 10, 30, 0, 0, time.UTC)
	c := NewManual(start)

	assert.Equal(t, start, c.Now())

	c.Advance(10 * time.Minute)
	assert.Equal(t, start.Add(10*time.Minute), c.Now())

	later := start.Add(time.Hour)
	c.Set(later)
	assert.Equal(t, later, c.Now())
}

func TestTimestamp(t *testing.T) {
	ts := time.Date(2026, 2, 1, 10, 30, 5, 0, time.UTC)
	assert.Equal(t, "01/02/2026 10:30:05", Timestamp(ts))
}

func TestEpochSeconds(t *testing.T) {
	ts := time.Unix(1767263400, 0)
	assert.Equal(t, "1767263400", EpochSeconds(ts))
}
