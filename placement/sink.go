package placement

import (
	"sync"

	"github.com/aukilabs/probeseed/geometry"
)

// MemorySink keeps the probes of the last run in memory.
type MemorySink struct {
	mutex     sync.RWMutex
	positions []geometry.Vector3f
}

func (s *MemorySink) SetProbePositions(positions []geometry.Vector3f) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.positions = positions
	return nil
}

func (s *MemorySink) Positions() []geometry.Vector3f {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.positions
}
