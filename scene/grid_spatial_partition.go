package scene

import (
	"math"
	"sort"

	"github.com/aukilabs/probeseed/geometry"
)

// Regular Grid Spatial Partition
//
// An uniformely sub-divided grid implementing the SpatialPartition interface.
// The particularities are:
//   - the grid has a resolution that defines how large a cell is. For example,
//     a resolution of 1 will make each cell hold a 1x1 meter column of the scene.
//   - placement only casts vertical rays and horizontal overlaps, so only the
//     xz plane is partitioned. Each cell is an infinite vertical column.
//   - the grid grows on demand to fit every inserted collider.

type RegularGrid struct {
	Resolution    float32
	ColliderCount uint32
	Min           geometry.Vector3f
	Max           geometry.Vector3f
	Grid          [][][]*Object
}

func NewRegularGrid(numCols uint, numRows uint, resolution float32) *RegularGrid {
	if numCols == 0 {
		numCols = 1
	}
	if numRows == 0 {
		numRows = 1
	}
	if resolution <= 0 {
		resolution = 1
	}

	result := &RegularGrid{
		Resolution: resolution,
		Min:        geometry.Vector3f{},
		Max:        geometry.Vector3f{X: float32(numCols) * resolution, Z: float32(numRows) * resolution},
	}

	result.Grid = make([][][]*Object, numRows)
	for i := 0; i < (int)(numRows); i++ {
		result.Grid[i] = make([][]*Object, numCols)
	}

	return result
}

func (grid *RegularGrid) rowCount() int {
	return len(grid.Grid)
}

func (grid *RegularGrid) colCount() int {
	return len(grid.Grid[0])
}

// cellCoord returns the unclamped cell coordinate of v along an axis starting
// at origin.
func (grid *RegularGrid) cellCoord(v float32, origin float32) int {
	return (int)(math.Floor((float64)(v-origin) / (float64)(grid.Resolution)))
}

// cellRange returns the inclusive cell rectangle covering [min, max] clamped
// to the grid. ok is false when the rectangle is entirely outside the grid.
func (grid *RegularGrid) cellRange(min geometry.Vector3f, max geometry.Vector3f) (minX, minY, maxX, maxY int, ok bool) {
	minX = grid.cellCoord(min.X, grid.Min.X)
	minY = grid.cellCoord(min.Z, grid.Min.Z)
	maxX = grid.cellCoord(max.X, grid.Min.X)
	maxY = grid.cellCoord(max.Z, grid.Min.Z)

	if maxX < 0 || maxY < 0 || minX >= grid.colCount() || minY >= grid.rowCount() {
		return 0, 0, 0, 0, false
	}

	minX = (int)(math.Max((float64)(minX), 0))
	minY = (int)(math.Max((float64)(minY), 0))
	maxX = (int)(math.Min((float64)(maxX), (float64)(grid.colCount()-1)))
	maxY = (int)(math.Min((float64)(maxY), (float64)(grid.rowCount()-1)))
	return minX, minY, maxX, maxY, true
}

func (grid *RegularGrid) Insert(o *Object) {
	if o.Collider == nil {
		return
	}

	bounds := o.Collider.Bounds()

	// fit the min & max:
	grid.ExpandToFitPoint(bounds.Min)
	grid.ExpandToFitPoint(bounds.Max)

	minX, minY, maxX, maxY, ok := grid.cellRange(bounds.Min, bounds.Max)
	if !ok {
		return
	}

	for i := minY; i <= maxY; i++ {
		for j := minX; j <= maxX; j++ {
			grid.Grid[i][j] = append(grid.Grid[i][j], o)
		}
	}

	grid.ColliderCount++
}

func (grid *RegularGrid) Remove(o *Object) {
	if o.Collider == nil {
		return
	}

	bounds := o.Collider.Bounds()
	minX, minY, maxX, maxY, ok := grid.cellRange(bounds.Min, bounds.Max)
	if !ok {
		return
	}

	removed := false
	for i := minY; i <= maxY; i++ {
		for j := minX; j <= maxX; j++ {
			if grid.removeFromCell(o, j, i) {
				removed = true
			}
		}
	}

	if removed {
		grid.ColliderCount--
	}
}

func (grid *RegularGrid) removeFromCell(toRemove *Object, x int, y int) bool {
	cell := grid.Grid[y][x]
	for k := 0; k < len(cell); k++ {
		if cell[k] == toRemove {
			// keep insertion order:
			grid.Grid[y][x] = append(cell[:k], cell[k+1:]...)
			return true
		}
	}
	return false
}

// Column returns the objects whose collider may intersect the vertical line
// going through (x, z).
func (grid *RegularGrid) Column(x float32, z float32) []*Object {
	cellX := grid.cellCoord(x, grid.Min.X)
	cellY := grid.cellCoord(z, grid.Min.Z)

	if cellX < 0 || cellX >= grid.colCount() {
		return nil
	}
	if cellY < 0 || cellY >= grid.rowCount() {
		return nil
	}

	cell := grid.Grid[cellY][cellX]
	result := make([]*Object, len(cell))
	copy(result, cell)
	return result
}

// Region returns the objects whose collider may overlap the xz rectangle
// [min, max], each object once, sorted by object id.
func (grid *RegularGrid) Region(min geometry.Vector3f, max geometry.Vector3f) []*Object {
	minX, minY, maxX, maxY, ok := grid.cellRange(min, max)
	if !ok {
		return nil
	}

	seen := make(map[*Object]struct{})
	var objects []*Object
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			for _, o := range grid.Grid[y][x] {
				if _, ok := seen[o]; ok {
					continue
				}
				seen[o] = struct{}{}
				objects = append(objects, o)
			}
		}
	}

	sort.Slice(objects, func(i, j int) bool {
		return objects[i].ID < objects[j].ID
	})
	return objects
}

func (grid *RegularGrid) GetDebugInfo() SpatialDebugInfo {
	result := SpatialDebugInfo{}
	result.Resolution = grid.Resolution
	result.RowCount = (uint32)(grid.rowCount())
	result.ColCount = (uint32)(grid.colCount())
	result.ColliderCount = grid.ColliderCount
	result.MinPoint = grid.Min
	result.MaxPoint = grid.Max

	result.Occupancy = make([]uint32, result.RowCount*result.ColCount)
	for y := (uint32)(0); y < result.RowCount; y++ {
		for x := (uint32)(0); x < result.ColCount; x++ {
			result.Occupancy[y*result.ColCount+x] = (uint32)(len(grid.Grid[y][x]))
		}
	}

	return result
}

// NOTE: the cells limits are in the range [0..1[ meaning, for a resolution of
// 1, the "unit 1" is in "cell index" 1.
func (grid *RegularGrid) ExpandToFitPoint(p geometry.Vector3f) {
	if p.X >= grid.Min.X && p.Z >= grid.Min.Z && p.X < grid.Max.X && p.Z < grid.Max.Z {
		return
	}

	res := (float64)(grid.Resolution)

	// number of columns to add in front of / behind the grid:
	var colsBefore, colsAfter int
	if p.X < grid.Min.X {
		colsBefore = (int)(math.Ceil((float64)(grid.Min.X-p.X) / res))
	} else if p.X >= grid.Max.X {
		colsAfter = (int)(math.Floor((float64)(p.X-grid.Max.X)/res)) + 1
	}

	var rowsBefore, rowsAfter int
	if p.Z < grid.Min.Z {
		rowsBefore = (int)(math.Ceil((float64)(grid.Min.Z-p.Z) / res))
	} else if p.Z >= grid.Max.Z {
		rowsAfter = (int)(math.Floor((float64)(p.Z-grid.Max.Z)/res)) + 1
	}

	// Add columns:
	if colsBefore != 0 || colsAfter != 0 {
		for i := range grid.Grid {
			row := make([][]*Object, 0, colsBefore+len(grid.Grid[i])+colsAfter)
			row = append(row, make([][]*Object, colsBefore)...)
			row = append(row, grid.Grid[i]...)
			row = append(row, make([][]*Object, colsAfter)...)
			grid.Grid[i] = row
		}
		grid.Min.X -= (float32)(colsBefore) * grid.Resolution
		grid.Max.X += (float32)(colsAfter) * grid.Resolution
	}

	// Add rows:
	if rowsBefore != 0 || rowsAfter != 0 {
		cols := grid.colCount()
		rows := make([][][]*Object, 0, rowsBefore+len(grid.Grid)+rowsAfter)
		for i := 0; i < rowsBefore; i++ {
			rows = append(rows, make([][]*Object, cols))
		}
		rows = append(rows, grid.Grid...)
		for i := 0; i < rowsAfter; i++ {
			rows = append(rows, make([][]*Object, cols))
		}
		grid.Grid = rows
		grid.Min.Z -= (float32)(rowsBefore) * grid.Resolution
		grid.Max.Z += (float32)(rowsAfter) * grid.Resolution
	}
}
