package preview

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/probeseed/geometry"
	"github.com/stretchr/testify/require"
)

func TestSaveTopDown(t *testing.T) {
	bounds := geometry.NewBounds(geometry.Zero, geometry.Mul(geometry.One, 10))
	obstacles := []geometry.Bounds{
		geometry.NewBounds(geometry.Zero, geometry.Mul(geometry.One, 2)),
	}

	tests := []struct {
		name   string
		file   string
		probes []geometry.Vector3f
	}{
		{
			name: "png",
			file: "probes.png",
			probes: []geometry.Vector3f{
				{X: -2, Y: 0.5, Z: -2},
				{X: 2, Y: 0.5, Z: 2},
			},
		},
		{
			name: "svg",
			file: "probes.svg",
			probes: []geometry.Vector3f{
				{X: 0, Y: 0.5, Z: 4},
			},
		},
		{
			name: "no probes",
			file: "empty.png",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), test.file)
			require.NoError(t, SaveTopDown(path, test.probes, bounds, obstacles))

			info, err := os.Stat(path)
			require.NoError(t, err)
			require.NotZero(t, info.Size())
		})
	}
}

func TestSaveTopDownUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "probes.unknown")
	err := SaveTopDown(path, nil, geometry.NewBounds(geometry.Zero, geometry.One), nil)
	require.Error(t, err)
	require.True(t, errors.IsType(err, ErrTypePreview))
}
