package metrics

import (
	"sync/atomic"
	"time"

	"github.com/mfreeman451/unradar/pkg/models"
)

// samplePoint is the fixed-size slot stored in the ring. The optional
// array percentage is flattened into value+flag so slots stay
// pointer-free.
type samplePoint struct {
	timestamp int64
	cpu       float64
	memory    float64
	array     float64
	hasArray  bool
}

// LockFreeRingBuffer keeps the most recent utilization samples for one
// server. Writers coordinate through an atomic position counter; there
// is no lock on the write path.
type LockFreeRingBuffer struct {
	points []samplePoint
	pos    int64 // Atomic position counter
	size   int64
}

// NewBuffer creates the default MetricStore implementation.
func NewBuffer(size int) MetricStore {
	return NewLockFreeBuffer(size)
}

// NewLockFreeBuffer creates a new LockFreeRingBuffer with the specified size.
func NewLockFreeBuffer(size int) MetricStore {
	return &LockFreeRingBuffer{
		points: make([]samplePoint, size),
		size:   int64(size),
	}
}

// Add records one sample, overwriting the oldest slot once the ring is
// full. array is nil while the array's usage is undefined.
func (b *LockFreeRingBuffer) Add(timestamp time.Time, cpu, memory float64, array *float64) {
	// Atomically increment the position and get the index
	pos := atomic.AddInt64(&b.pos, 1) - 1
	idx := pos % b.size

	point := samplePoint{
		timestamp: timestamp.UnixNano(),
		cpu:       cpu,
		memory:    memory,
	}

	if array != nil {
		point.array = *array
		point.hasArray = true
	}

	b.points[idx] = point
}

// GetPoints retrieves the buffered samples, newest first.
func (b *LockFreeRingBuffer) GetPoints() []models.MetricPoint {
	// Load the current position atomically
	pos := atomic.LoadInt64(&b.pos)

	count := pos
	if count > b.size {
		count = b.size
	}

	points := make([]models.MetricPoint, 0, count)

	for i := int64(0); i < count; i++ {
		idx := (pos - i - 1 + b.size) % b.size
		points = append(points, toModelPoint(&b.points[idx]))
	}

	return points
}

// GetLastPoint returns the most recent sample, or nil while the ring is
// empty.
func (b *LockFreeRingBuffer) GetLastPoint() *models.MetricPoint {
	pos := atomic.LoadInt64(&b.pos)
	if pos == 0 {
		return nil
	}

	point := toModelPoint(&b.points[(pos-1)%b.size])

	return &point
}

func toModelPoint(p *samplePoint) models.MetricPoint {
	point := models.MetricPoint{
		Timestamp:     time.Unix(0, p.timestamp),
		CPUPercent:    p.cpu,
		MemoryPercent: p.memory,
	}

	if p.hasArray {
		array := p.array
		point.ArrayPercent = &array
	}

	return point
}
