package geometry

// Mask is a collision layer mask. Bit n set means layer n participates in a
// query.
type Mask uint32

const (
	Nothing    Mask = 0
	Everything Mask = ^Mask(0)
)

// MaskFromInt converts a signed mask, as commonly written in scene files and
// command lines, into a Mask. -1 selects every layer.
func MaskFromInt(v int64) Mask {
	return Mask(uint32(v))
}

func LayerMask(layers ...int) Mask {
	var m Mask
	for _, l := range layers {
		if l < 0 || l > 31 {
			continue
		}
		m |= 1 << uint(l)
	}
	return m
}

func (m Mask) Includes(layer int) bool {
	if layer < 0 || layer > 31 {
		return false
	}
	return m&(1<<uint(layer)) != 0
}
