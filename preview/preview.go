// Package preview renders probe sets to images for inspection.
package preview

import (
	"image/color"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/probeseed/geometry"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	ErrTypePreview = "preview"
)

var (
	probeColor    = color.RGBA{R: 230, G: 126, B: 34, A: 255}
	obstacleColor = color.RGBA{R: 52, G: 73, B: 94, A: 255}
	boundsColor   = color.RGBA{R: 149, G: 165, B: 166, A: 255}
)

// SaveTopDown draws probes, seen from above, inside bounds and saves the
// image to path. Obstacles are drawn as their horizontal footprint. The
// image format is picked from the path extension.
func SaveTopDown(path string, probes []geometry.Vector3f, bounds geometry.Bounds, obstacles []geometry.Bounds) error {
	p := plot.New()
	p.Title.Text = "Light probes (top down)"
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Z"

	outline, err := footprint(bounds)
	if err != nil {
		return wrapError(path, err)
	}
	outline.LineStyle.Color = boundsColor
	outline.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(outline)

	for _, o := range obstacles {
		line, err := footprint(o)
		if err != nil {
			return wrapError(path, err)
		}
		line.LineStyle.Color = obstacleColor
		p.Add(line)
	}

	if len(probes) != 0 {
		points := make(plotter.XYs, 0, len(probes))
		for _, probe := range probes {
			points = append(points, plotter.XY{X: float64(probe.X), Y: float64(probe.Z)})
		}

		scatter, err := plotter.NewScatter(points)
		if err != nil {
			return wrapError(path, err)
		}
		scatter.GlyphStyle.Color = probeColor
		scatter.GlyphStyle.Radius = vg.Points(2)
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(scatter)
		p.Legend.Add("probes", scatter)
	}

	ext := bounds.Extents()
	margin := float64(max(ext.X, ext.Z)) * 0.1
	p.X.Min = float64(bounds.Min.X) - margin
	p.X.Max = float64(bounds.Max.X) + margin
	p.Y.Min = float64(bounds.Min.Z) - margin
	p.Y.Max = float64(bounds.Max.Z) + margin
	p.Legend.Top = true

	if err := p.Save(8*vg.Inch, 8*vg.Inch, path); err != nil {
		return wrapError(path, err)
	}
	return nil
}

func footprint(b geometry.Bounds) (*plotter.Line, error) {
	return plotter.NewLine(plotter.XYs{
		{X: float64(b.Min.X), Y: float64(b.Min.Z)},
		{X: float64(b.Max.X), Y: float64(b.Min.Z)},
		{X: float64(b.Max.X), Y: float64(b.Max.Z)},
		{X: float64(b.Min.X), Y: float64(b.Max.Z)},
		{X: float64(b.Min.X), Y: float64(b.Min.Z)},
	})
}

func wrapError(path string, err error) error {
	return errors.New("saving probe preview failed").
		WithType(ErrTypePreview).
		WithTag("path", path).
		Wrap(err)
}
