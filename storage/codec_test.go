package storage

import (
	"math"
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/probeseed/geometry"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestEncodeDecodeProbeSet(t *testing.T) {
	probes := append([]geometry.Vector3f{{X: float32(math.Inf(-1)), Y: 0, Z: 1e-7}}, testProbes...)

	b := EncodeProbeSet(probes)
	decoded, err := DecodeProbeSet(b)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(probes, decoded))
}

func TestEncodeProbeSetEmpty(t *testing.T) {
	require.Empty(t, EncodeProbeSet(nil))

	decoded, err := DecodeProbeSet(nil)
	require.NoError(t, err)
	require.Empty(t, decoded)
}

func TestDecodeProbeSetSkipsUnknownFields(t *testing.T) {
	var b []byte
	b = protowire.AppendTag(b, 7, protowire.VarintType)
	b = protowire.AppendVarint(b, 42)

	probe := protowire.AppendTag(nil, probeYField, protowire.Fixed32Type)
	probe = protowire.AppendFixed32(probe, math.Float32bits(2))
	probe = protowire.AppendTag(probe, 9, protowire.BytesType)
	probe = protowire.AppendString(probe, "ignored")

	b = protowire.AppendTag(b, probeSetProbesField, protowire.BytesType)
	b = protowire.AppendBytes(b, probe)

	decoded, err := DecodeProbeSet(b)
	require.NoError(t, err)
	require.Equal(t, []geometry.Vector3f{{X: 0, Y: 2, Z: 0}}, decoded)
}

func TestDecodeProbeSetMalformed(t *testing.T) {
	b := EncodeProbeSet(testProbes)

	_, err := DecodeProbeSet(b[:len(b)-2])
	require.Error(t, err)
	require.True(t, errors.IsType(err, ErrTypeStorage))

	_, err = DecodeProbeSet([]byte{0xff})
	require.Error(t, err)
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint(testProbes)
	require.Len(t, a, 66)
	require.Equal(t, a, Fingerprint(append([]geometry.Vector3f(nil), testProbes...)))
	require.NotEqual(t, a, Fingerprint(testProbes[:2]))

	reordered := []geometry.Vector3f{testProbes[1], testProbes[0], testProbes[2]}
	require.NotEqual(t, a, Fingerprint(reordered))
}
