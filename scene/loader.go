package scene

import (
	"io"
	"os"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/probeseed/geometry"
	"github.com/segmentio/encoding/json"
)

const (
	ErrTypeInvalidScene = "invalid_scene"

	ShapeBox    = "box"
	ShapeSphere = "sphere"
	ShapeQuad   = "quad"
)

// Description is the JSON description of a scene.
type Description struct {
	GridResolution float32     `json:"gridResolution,omitempty"`
	Objects        []ObjectCfg `json:"objects"`
}

type ObjectCfg struct {
	Name  string     `json:"name"`
	Shape string     `json:"shape"`
	Layer int        `json:"layer"`
	Pos   [3]float32 `json:"center"`

	// Full size for boxes and quads. Quads must have exactly one zero
	// component.
	Size   [3]float32 `json:"size,omitempty"`
	Radius float32    `json:"radius,omitempty"`

	// Both default to true.
	Renderable *bool `json:"renderable,omitempty"`
	Collidable *bool `json:"collidable,omitempty"`
}

// LoadFile reads and builds the scene described by the JSON file at path.
func LoadFile(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New("opening scene file failed").
			WithTag("path", path).
			Wrap(err)
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, errors.New("loading scene file failed").
			WithType(errors.Type(err)).
			WithTag("path", path).
			Wrap(err)
	}
	return s, nil
}

// Load decodes a JSON scene description from r and builds the scene.
func Load(r io.Reader) (*Scene, error) {
	var desc Description
	if err := json.NewDecoder(r).Decode(&desc); err != nil {
		return nil, errors.New("decoding scene description failed").
			WithType(ErrTypeInvalidScene).
			Wrap(err)
	}
	return Build(desc)
}

// Build validates the description and builds the scene.
func Build(desc Description) (*Scene, error) {
	s := New(desc.GridResolution)

	for i, cfg := range desc.Objects {
		o, err := cfg.object()
		if err != nil {
			return nil, errors.New("invalid scene object").
				WithType(ErrTypeInvalidScene).
				WithTag("index", i).
				WithTag("name", cfg.Name).
				Wrap(err)
		}
		s.Add(o)
	}

	return s, nil
}

func (cfg ObjectCfg) object() (*Object, error) {
	if cfg.Layer < 0 || cfg.Layer > 31 {
		return nil, errors.Newf("layer %d is out of [0, 31]", cfg.Layer)
	}

	center := geometry.NewVector3f(cfg.Pos[0], cfg.Pos[1], cfg.Pos[2])
	size := geometry.NewVector3f(cfg.Size[0], cfg.Size[1], cfg.Size[2])
	if !size.GreaterOrEqualThan(geometry.Zero) {
		return nil, errors.New("size must not be negative")
	}

	var o *Object
	switch cfg.Shape {
	case ShapeBox:
		o = NewBox(cfg.Name, center, size, cfg.Layer)

	case ShapeSphere:
		if cfg.Radius <= 0 {
			return nil, errors.New("sphere radius must be positive")
		}
		o = NewSphere(cfg.Name, center, cfg.Radius, cfg.Layer)

	case ShapeQuad:
		zeros := 0
		for _, v := range cfg.Size {
			if v == 0 {
				zeros++
			}
		}
		if zeros != 1 {
			return nil, errors.New("quad size must have exactly one zero component")
		}
		o = NewQuad(cfg.Name, center, geometry.Mul(size, 0.5), cfg.Layer)

	default:
		return nil, errors.Newf("unknown shape %q", cfg.Shape)
	}

	if cfg.Renderable != nil {
		o.Renderable = *cfg.Renderable
	}
	if cfg.Collidable != nil && !*cfg.Collidable {
		o.Collider = nil
	}
	return o, nil
}
