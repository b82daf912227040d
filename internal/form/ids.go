package form

import (
	"strconv"
	"sync"
	"time"
)

// IDGenerator issues client-side event identifiers: the current
// unix-millisecond timestamp as a decimal string. Two submits in the same
// millisecond still get distinct ids.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewIDGenerator() *IDGenerator {
	return &IDGenerator{now: time.Now}
}

func (g *IDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return strconv.FormatInt(ms, 10)
}
