package scene

import (
	"math"
	"sort"
	"sync"

	"github.com/aukilabs/probeseed/geometry"
)

const defaultGridResolution = 2

// Scene is an in-memory static scene. It answers the geometry queries needed
// by probe placement and is safe for concurrent use.
type Scene struct {
	ids       SequentialIDGenerator
	mutex     sync.RWMutex
	objects   map[uint32]*Object
	partition SpatialPartition
}

// New returns an empty scene whose colliders are bucketed in cells of
// gridResolution meters.
func New(gridResolution float32) *Scene {
	if gridResolution <= 0 {
		gridResolution = defaultGridResolution
	}

	return &Scene{
		objects:   make(map[uint32]*Object),
		partition: NewRegularGrid(1, 1, gridResolution),
	}
}

// Add assigns an id to the object and adds it to the scene.
func (s *Scene) Add(o *Object) uint32 {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	o.ID = s.ids.New()
	s.objects[o.ID] = o
	s.partition.Insert(o)
	sceneObjectCount.Inc()
	return o.ID
}

// Remove removes the object with the given id. It returns false when no such
// object exists.
func (s *Scene) Remove(id uint32) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	o, ok := s.objects[id]
	if !ok {
		return false
	}

	s.partition.Remove(o)
	delete(s.objects, id)
	s.ids.Reuse(id)
	sceneObjectCount.Dec()
	return true
}

// Objects returns the scene objects sorted by id.
func (s *Scene) Objects() []*Object {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.sortedObjects()
}

func (s *Scene) sortedObjects() []*Object {
	objects := make([]*Object, 0, len(s.objects))
	for _, o := range s.objects {
		objects = append(objects, o)
	}
	sort.Slice(objects, func(i, j int) bool {
		return objects[i].ID < objects[j].ID
	})
	return objects
}

func (s *Scene) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return len(s.objects)
}

func (s *Scene) DebugInfo() SpatialDebugInfo {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.partition.GetDebugInfo()
}

// RenderableBounds returns the render bounds of every renderable object, in
// object id order.
func (s *Scene) RenderableBounds() []geometry.Bounds {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var bounds []geometry.Bounds
	for _, o := range s.sortedObjects() {
		if o.Renderable {
			bounds = append(bounds, o.RenderBounds)
		}
	}
	return bounds
}

// RaycastDown casts a ray straight down from origin over maxDistance and
// returns the closest hit point among colliders included in mask. A
// maxDistance of 0 tests whether origin lies on a collider.
func (s *Scene) RaycastDown(origin geometry.Vector3f, maxDistance float32, mask geometry.Mask) (geometry.Vector3f, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if maxDistance < 0 || math.IsNaN(float64(maxDistance)) {
		instrumentQuery(queryRaycast, false)
		return geometry.Vector3f{}, false
	}

	ray := geometry.NewDownRay(origin, maxDistance)
	tMin := (float32)(math.Inf(1))
	hit := false

	for _, o := range s.partition.Column(origin.X, origin.Z) {
		if !mask.Includes(o.Collider.Layer()) {
			continue
		}
		if ok, t := o.Collider.Raycast(ray); ok && t < tMin {
			tMin = t
			hit = true
		}
	}

	instrumentQuery(queryRaycast, hit)
	if !hit {
		return geometry.Vector3f{}, false
	}
	return ray.PointAt(tMin), true
}

// OverlapSphere returns the colliders included in mask that touch the sphere,
// in object id order.
func (s *Scene) OverlapSphere(center geometry.Vector3f, radius float32, mask geometry.Mask) []geometry.Collider {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if radius < 0 {
		radius = 0
	}

	query := geometry.Bounds{Min: center, Max: center}.Expand(radius)
	candidates := s.partition.Region(query.Min, query.Max)

	var colliders []geometry.Collider
	for _, o := range candidates {
		// The partition only culls on xz.
		if !mask.Includes(o.Collider.Layer()) || !o.Collider.Bounds().Intersects(query) {
			continue
		}
		if geometry.Distance(center, o.Collider.ClosestPoint(center)) <= radius {
			colliders = append(colliders, o.Collider)
		}
	}

	instrumentQuery(queryOverlap, len(colliders) != 0)
	return colliders
}

func (s *Scene) ClosestPoint(c geometry.Collider, p geometry.Vector3f) geometry.Vector3f {
	return c.ClosestPoint(p)
}
