// Package profiler records named timing spans for speedscope and reads
// the runtime counters shown by the debug overlay.
//
// Spans are only recorded in builds with the "profile" tag; otherwise
// Start returns a no-op and the dump functions fail with ErrDisabled.
//
//	end := profiler.Start("ui.Viewport.Draw")
//	defer end()
package profiler

import (
	"errors"
	"runtime"
)

var (
	ErrDisabled = errors.New("profiler: built without the profile tag")
	ErrNoSpans  = errors.New("profiler: no spans recorded")
)

// DefaultCapacity is the ring size Init uses for a non-positive capacity.
const DefaultCapacity = 1 << 20

// Counters is a snapshot of the runtime figures the overlay displays.
type Counters struct {
	HeapBytes  uint64
	Mallocs    uint64
	Goroutines int
	CPUs       int
}

// ReadCounters samples the runtime. It stops the world briefly, so call it
// at most once per frame.
func ReadCounters() Counters {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return Counters{
		HeapBytes:  m.Alloc,
		Mallocs:    m.Mallocs,
		Goroutines: runtime.NumGoroutine(),
		CPUs:       runtime.NumCPU(),
	}
}

func MemoryUsage() uint64  { return ReadCounters().HeapBytes }
func MemoryAllocs() uint64 { return ReadCounters().Mallocs }
func NumGoroutine() int    { return runtime.NumGoroutine() }
func NumCPU() int          { return runtime.NumCPU() }
