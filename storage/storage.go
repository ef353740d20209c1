// Package storage holds the sinks adaptive placement runs write their probes
// to.
package storage

import (
	"sync"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/probeseed/geometry"
	"github.com/aukilabs/probeseed/placement"
)

const (
	ErrTypeStorage  = "storage"
	ErrTypeNotFound = "not_found"
)

// ProbeGroup is an in-memory probe sink. Setting positions replaces the
// previous ones.
type ProbeGroup struct {
	mutex     sync.RWMutex
	positions []geometry.Vector3f
}

func (g *ProbeGroup) SetProbePositions(positions []geometry.Vector3f) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	g.positions = append(make([]geometry.Vector3f, 0, len(positions)), positions...)
	instrumentWrite(sinkMemory, len(positions), nil)
	return nil
}

// Positions returns a copy of the current probe positions.
func (g *ProbeGroup) Positions() []geometry.Vector3f {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	return append([]geometry.Vector3f(nil), g.positions...)
}

func (g *ProbeGroup) Len() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	return len(g.positions)
}

// Target is the probe destination of a placement run. It writes to every
// sink it was given and creates an in-memory ProbeGroup on first use when
// given none.
type Target struct {
	mutex sync.Mutex
	sinks []placement.Sink
	group *ProbeGroup
}

func NewTarget(sinks ...placement.Sink) *Target {
	t := &Target{}
	for _, s := range sinks {
		if s != nil {
			t.sinks = append(t.sinks, s)
		}
	}
	return t
}

// Sinks returns the sinks written to, creating the default ProbeGroup when
// needed.
func (t *Target) Sinks() []placement.Sink {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if len(t.sinks) == 0 {
		t.group = &ProbeGroup{}
		t.sinks = []placement.Sink{t.group}
		logs.WithTag("sink", sinkMemory).
			Info("no probe sink configured, created an in-memory probe group")
	}
	return t.sinks
}

// ProbeGroup returns the group created by the target, or nil when the target
// was given sinks.
func (t *Target) ProbeGroup() *ProbeGroup {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	return t.group
}

// SetProbePositions writes positions to every sink and stops at the first
// failure.
func (t *Target) SetProbePositions(positions []geometry.Vector3f) error {
	for i, s := range t.Sinks() {
		if err := s.SetProbePositions(positions); err != nil {
			return errors.New("writing probe target failed").
				WithType(ErrTypeStorage).
				WithTag("sink_index", i).
				Wrap(err)
		}
	}
	return nil
}
