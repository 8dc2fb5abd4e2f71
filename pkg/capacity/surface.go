package capacity

import (
	"math"
	"sync"
)

// SurfaceState describes whether a container width has been measured.
type SurfaceState int

const (
	// Idle means no width has been reported yet.
	Idle SurfaceState = iota
	// Measured means exactly one width has been reported.
	Measured
	// Remeasured means the width has been reported again after a resize.
	Remeasured
)

func (st SurfaceState) String() string {
	switch st {
	case Idle:
		return "idle"
	case Measured:
		return "measured"
	case Remeasured:
		return "remeasured"
	default:
		return "unknown"
	}
}

// Surface caches the measured width of the container the bars are drawn in.
// It only changes on Resize.
type Surface struct {
	mu    sync.RWMutex
	width float64
	state SurfaceState
}

// Resize records a newly measured width and reports whether it changed.
// Negative or NaN widths are stored as zero.
func (s *Surface) Resize(width float64) bool {
	if width < 0 || math.IsNaN(width) {
		width = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	changed := s.state == Idle || s.width != width
	switch s.state {
	case Idle:
		s.state = Measured
	default:
		if changed {
			s.state = Remeasured
		}
	}
	s.width = width

	return changed
}

// Width returns the cached width and whether one has been measured.
func (s *Surface) Width() (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.state != Idle
}

// State returns the current measurement state.
func (s *Surface) State() SurfaceState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}
