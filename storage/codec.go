package storage

import (
	"math"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/probeseed/geometry"
	"github.com/ethereum/go-ethereum/crypto"
	"google.golang.org/protobuf/encoding/protowire"
)

// Probe sets are encoded in protobuf wire format, as if described by:
//
//	message Probe    { float x = 1; float y = 2; float z = 3; }
//	message ProbeSet { repeated Probe probes = 1; }
const (
	probeSetProbesField protowire.Number = 1

	probeXField protowire.Number = 1
	probeYField protowire.Number = 2
	probeZField protowire.Number = 3
)

// EncodeProbeSet returns the binary encoding of the given probes, in order.
func EncodeProbeSet(positions []geometry.Vector3f) []byte {
	var b []byte
	for _, p := range positions {
		b = protowire.AppendTag(b, probeSetProbesField, protowire.BytesType)
		b = protowire.AppendBytes(b, encodeProbe(p))
	}
	return b
}

func encodeProbe(p geometry.Vector3f) []byte {
	b := make([]byte, 0, 15)
	b = protowire.AppendTag(b, probeXField, protowire.Fixed32Type)
	b = protowire.AppendFixed32(b, math.Float32bits(p.X))
	b = protowire.AppendTag(b, probeYField, protowire.Fixed32Type)
	b = protowire.AppendFixed32(b, math.Float32bits(p.Y))
	b = protowire.AppendTag(b, probeZField, protowire.Fixed32Type)
	b = protowire.AppendFixed32(b, math.Float32bits(p.Z))
	return b
}

// DecodeProbeSet parses probes encoded with EncodeProbeSet. Unknown fields
// are skipped.
func DecodeProbeSet(b []byte) ([]geometry.Vector3f, error) {
	var positions []geometry.Vector3f

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, decodeError(n, "probe set tag")
		}
		b = b[n:]

		if num != probeSetProbesField || typ != protowire.BytesType {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, decodeError(n, "probe set field")
			}
			b = b[n:]
			continue
		}

		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return nil, decodeError(n, "probe")
		}
		b = b[n:]

		p, err := decodeProbe(v)
		if err != nil {
			return nil, errors.New("decoding probe failed").
				WithType(ErrTypeStorage).
				WithTag("index", len(positions)).
				Wrap(err)
		}
		positions = append(positions, p)
	}

	return positions, nil
}

func decodeProbe(b []byte) (geometry.Vector3f, error) {
	var p geometry.Vector3f

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return p, decodeError(n, "probe tag")
		}
		b = b[n:]

		if typ != protowire.Fixed32Type {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return p, decodeError(n, "probe field")
			}
			b = b[n:]
			continue
		}

		v, n := protowire.ConsumeFixed32(b)
		if n < 0 {
			return p, decodeError(n, "probe coordinate")
		}
		b = b[n:]

		switch num {
		case probeXField:
			p.X = math.Float32frombits(v)
		case probeYField:
			p.Y = math.Float32frombits(v)
		case probeZField:
			p.Z = math.Float32frombits(v)
		}
	}

	return p, nil
}

func decodeError(n int, what string) error {
	return errors.New("malformed probe set").
		WithType(ErrTypeStorage).
		WithTag("element", what).
		Wrap(protowire.ParseError(n))
}

// Fingerprint returns the Keccak-256 hash of the encoded probe set, as a hex
// string. Identical runs produce identical fingerprints.
func Fingerprint(positions []geometry.Vector3f) string {
	return crypto.Keccak256Hash(EncodeProbeSet(positions)).Hex()
}
