package hal

import (
	"sync"
	"time"
)

// MemPin is an in-memory pin usable as both input and output. It is safe to
// poke from a test goroutine while a node loop polls it.
type MemPin struct {
	mu    sync.Mutex
	level Level
}

// NewMemPin returns a pin resting at the given level.
func NewMemPin(level Level) *MemPin {
	return &MemPin{level: level}
}

func (p *MemPin) Read() Level {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

func (p *MemPin) Write(level Level) {
	p.mu.Lock()
	p.level = level
	p.mu.Unlock()
}

// ManualClock is a Clock advanced explicitly by tests.
type ManualClock struct {
	mu  sync.Mutex
	now uint32
}

func NewManualClock(start uint32) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) Set(now uint32) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}

func (c *ManualClock) Advance(ms uint32) {
	c.mu.Lock()
	c.now += ms
	c.mu.Unlock()
}

// WallClock derives the millisecond counter from the host monotonic clock.
type WallClock struct {
	start time.Time
}

func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

func (c *WallClock) Now() uint32 {
	return uint32(time.Since(c.start) / time.Millisecond)
}
