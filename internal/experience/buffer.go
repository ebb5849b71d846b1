// Package experience records environment transitions for training
// pipelines. The buffer is a bounded in-memory store; nothing here
// persists across process restarts.
package experience

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/packbotics/warehouse-rl/internal/env"
	"github.com/packbotics/warehouse-rl/internal/env/core"
)

// ErrBufferClosed is returned when operations are attempted on a closed buffer
var ErrBufferClosed = errors.New("experience buffer is closed")

// Transition is one (s, a, r, s') sample plus episode bookkeeping
type Transition struct {
	EpisodeID  string          `json:"episode_id"`
	Step       int             `json:"step"`
	Obs        env.Observation `json:"obs"`
	Action     core.Action     `json:"action"`
	Reward     float64         `json:"reward"`
	NextObs    env.Observation `json:"next_obs"`
	Done       bool            `json:"done"`
	DoneReason string          `json:"done_reason,omitempty"`
}

// Buffer is a thread-safe circular buffer of transitions. When full it
// drops the oldest sample rather than blocking the producer.
type Buffer struct {
	mu       sync.RWMutex
	buffer   []Transition
	capacity int
	size     int
	head     int
	tail     int
	closed   bool

	totalAdded   int64
	totalDropped int64

	logger zerolog.Logger
}

// NewBuffer creates a buffer with the given capacity
func NewBuffer(capacity int, logger zerolog.Logger) *Buffer {
	if capacity <= 0 {
		capacity = 10000
	}
	return &Buffer{
		buffer:   make([]Transition, capacity),
		capacity: capacity,
		logger:   logger.With().Str("component", "experience_buffer").Logger(),
	}
}

// Add appends one transition, evicting the oldest when at capacity
func (b *Buffer) Add(t Transition) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBufferClosed
	}

	if b.size >= b.capacity {
		b.tail = (b.tail + 1) % b.capacity
		b.totalDropped++
		b.logger.Debug().
			Int64("dropped_total", b.totalDropped).
			Msg("Buffer full, dropping oldest transition")
	} else {
		b.size++
	}

	b.buffer[b.head] = t
	b.head = (b.head + 1) % b.capacity
	b.totalAdded++
	return nil
}

// Len returns the number of stored transitions
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.size
}

// Snapshot copies out the stored transitions, oldest first
func (b *Buffer) Snapshot() []Transition {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Transition, 0, b.size)
	for i := 0; i < b.size; i++ {
		out = append(out, b.buffer[(b.tail+i)%b.capacity])
	}
	return out
}

// Stats reports buffer counters
func (b *Buffer) Stats() (added, dropped int64) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.totalAdded, b.totalDropped
}

// Close marks the buffer closed; further Adds fail
func (b *Buffer) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
}
