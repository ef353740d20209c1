package storage

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/probeseed/geometry"
	"github.com/segmentio/encoding/json"
)

const (
	FormatProtobuf = ".pb"
	FormatJSON     = ".json"
)

// FileSink writes probe sets to a file. The format is picked from the file
// extension: FormatProtobuf or FormatJSON.
type FileSink struct {
	Path string
}

func NewFileSink(path string) (*FileSink, error) {
	if _, err := fileFormat(path); err != nil {
		return nil, err
	}
	return &FileSink{Path: path}, nil
}

func (s *FileSink) SetProbePositions(positions []geometry.Vector3f) (err error) {
	defer func() {
		instrumentWrite(sinkFile, len(positions), err)
	}()

	format, err := fileFormat(s.Path)
	if err != nil {
		return err
	}

	var b []byte
	switch format {
	case FormatProtobuf:
		b = EncodeProbeSet(positions)

	case FormatJSON:
		if positions == nil {
			positions = []geometry.Vector3f{}
		}
		if b, err = json.Marshal(positions); err != nil {
			return errors.New("encoding probe set to json failed").
				WithType(ErrTypeStorage).
				Wrap(err)
		}
	}

	// Written next to the destination then renamed so that readers never see
	// a partial set.
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, b, 0644); err != nil {
		return errors.New("writing probe file failed").
			WithType(ErrTypeStorage).
			WithTag("path", tmp).
			Wrap(err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		os.Remove(tmp)
		return errors.New("replacing probe file failed").
			WithType(ErrTypeStorage).
			WithTag("path", s.Path).
			Wrap(err)
	}
	return nil
}

// ReadFile reads a probe set written by a FileSink.
func ReadFile(path string) ([]geometry.Vector3f, error) {
	format, err := fileFormat(path)
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("reading probe file failed").
			WithType(ErrTypeStorage).
			WithTag("path", path).
			Wrap(err)
	}

	if format == FormatProtobuf {
		return DecodeProbeSet(b)
	}

	var positions []geometry.Vector3f
	if err := json.Unmarshal(b, &positions); err != nil {
		return nil, errors.New("decoding probe file failed").
			WithType(ErrTypeStorage).
			WithTag("path", path).
			Wrap(err)
	}
	return positions, nil
}

func fileFormat(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case FormatProtobuf, FormatJSON:
		return ext, nil

	default:
		return "", errors.New("unsupported probe file format").
			WithType(ErrTypeStorage).
			WithTag("path", path).
			WithTag("extension", ext)
	}
}
