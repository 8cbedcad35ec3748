// Package clock is the single wall-clock seam of the registry. Services never
// call time.Now directly, so expiry behavior stays testable.
package clock

import (
	"strconv"
	"sync"
	"time"
)

// TimestampLayout is the human-readable rendering used for created_at fields
// (DD/MM/YYYY HH:mm:ss).
const TimestampLayout = "02/01/2006 15:04:05"

// Clock supplies the current time to services.
type Clock interface {
	Now() time.Time
}

// Wall is the production clock.
type Wall struct{}

func (Wall) Now() time.Time {
	return time.Now()
}

// Manual is a hand-advanced clock for tests.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Timestamp renders t in the fixed created_at format.
func Timestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// EpochSeconds renders t as an integer-as-string epoch deadline, the form
// expiry comparisons run against.
func EpochSeconds(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}
