package experience

import (
	"sync"

	"github.com/rs/zerolog"
)

// Buffer is a thread-safe circular buffer of experiences. When full, adding
// drops the oldest entry.
type Buffer struct {
	mu       sync.RWMutex
	buffer   []*Experience
	capacity int
	size     int
	head     int // Write position
	tail     int // Read position

	totalAdded   int64
	totalDropped int64

	logger zerolog.Logger
}

// NewBuffer creates a new experience buffer with the specified capacity
func NewBuffer(capacity int, logger zerolog.Logger) *Buffer {
	if capacity <= 0 {
		capacity = 10000 // Default capacity
	}

	return &Buffer{
		buffer:   make([]*Experience, capacity),
		capacity: capacity,
		logger:   logger.With().Str("component", "experience_buffer").Logger(),
	}
}

// Add adds an experience to the buffer
func (b *Buffer) Add(exp *Experience) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.size >= b.capacity {
		b.tail = (b.tail + 1) % b.capacity
		b.totalDropped++
		if b.totalDropped == 1 {
			b.logger.Debug().
				Int("capacity", b.capacity).
				Msg("Buffer full, dropping oldest experiences")
		}
	} else {
		b.size++
	}

	b.buffer[b.head] = exp
	b.head = (b.head + 1) % b.capacity
	b.totalAdded++
}

// Snapshot returns every buffered experience, oldest first, without removing them
func (b *Buffer) Snapshot() []*Experience {
	b.mu.RLock()
	defer b.mu.RUnlock()

	result := make([]*Experience, b.size)
	for i := 0; i < b.size; i++ {
		result[i] = b.buffer[(b.tail+i)%b.capacity]
	}
	return result
}

// Size returns the current number of experiences in the buffer
func (b *Buffer) Size() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.size
}

// Stats returns buffer statistics
func (b *Buffer) Stats() BufferStats {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return BufferStats{
		CurrentSize:    b.size,
		Capacity:       b.capacity,
		TotalAdded:     b.totalAdded,
		TotalDropped:   b.totalDropped,
		UtilizationPct: float64(b.size) / float64(b.capacity) * 100,
	}
}

// BufferStats contains buffer statistics
type BufferStats struct {
	CurrentSize    int
	Capacity       int
	TotalAdded     int64
	TotalDropped   int64
	UtilizationPct float64
}
