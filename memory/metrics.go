package memory

import "fortio.org/safecast"

// ArenaMetrics contains statistical information about an arena.
type ArenaMetrics struct {
	SizeInUse   int     // Bytes handed out, including alignment padding
	Capacity    int     // Total bytes across chunks
	NumChunks   int     // Number of chunks
	ChunkSize   int     // Default chunk size
	Utilization float64 // SizeInUse / Capacity (0.0-1.0)
}

// Metrics returns a snapshot of arena statistics. A released arena reports
// zero usage.
func (a *Arena) Metrics() ArenaMetrics {
	m := ArenaMetrics{ChunkSize: a.chunkSize, NumChunks: len(a.chunks)}
	for _, c := range a.chunks {
		m.SizeInUse += safecast.MustConv[int](c.offset)
		m.Capacity += len(c.buf)
	}
	if m.Capacity > 0 {
		m.Utilization = float64(m.SizeInUse) / float64(m.Capacity)
	}
	return m
}

// SizeInUse returns the number of bytes handed out since the last Reset.
func (a *Arena) SizeInUse() int { return a.Metrics().SizeInUse }

// Capacity returns the total size of all chunks in bytes.
func (a *Arena) Capacity() int { return a.Metrics().Capacity }

// NumChunks returns the number of chunks the arena holds.
func (a *Arena) NumChunks() int { return len(a.chunks) }

// ChunkSize returns the default chunk size used by this arena.
func (a *Arena) ChunkSize() int { return a.chunkSize }

// Utilization returns SizeInUse / Capacity, or 0 for an empty arena.
func (a *Arena) Utilization() float64 { return a.Metrics().Utilization }

// AllocatorMetrics is a snapshot of the traffic a Tracker has observed.
type AllocatorMetrics struct {
	Allocations   int // Successful Allocate calls
	Deallocations int // Deallocate calls
	Failures      int // Allocate calls that returned an error
	LiveBlocks    int // Allocations not yet deallocated
	BytesInUse    int // Bytes covered by live blocks
	PeakBytes     int // Largest BytesInUse seen
}

// Balanced reports whether every allocation has been returned.
func (m AllocatorMetrics) Balanced() bool {
	return m.LiveBlocks == 0 && m.BytesInUse == 0
}
