package scene

import (
	"github.com/aukilabs/probeseed/geometry"
)

type SpatialDebugInfo struct {
	Resolution    float32
	RowCount      uint32
	ColCount      uint32
	ColliderCount uint32
	MinPoint      geometry.Vector3f
	MaxPoint      geometry.Vector3f
	Occupancy     []uint32
}

// SpatialPartition is the broad-phase used by scene queries. Candidates are
// always returned in insertion order so that queries are repeatable.
type SpatialPartition interface {
	Insert(o *Object)
	Remove(o *Object)
	Column(x float32, z float32) []*Object
	Region(min geometry.Vector3f, max geometry.Vector3f) []*Object

	// debug stuff:
	GetDebugInfo() SpatialDebugInfo
}
