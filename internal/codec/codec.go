// Package codec reads and writes parent graph fixtures.
//
// Fixtures decode into record graphs, the same shape storage persists, so
// loading a fixture exercises the record-to-domain mapping exactly as a
// database read would.
package codec

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"graphmap/internal/record"
)

// Importer interface for importing parent graphs from various formats
type Importer interface {
	Parse(r io.Reader) ([]record.Parent, error)
	Format() string
}

// Exporter interface for exporting parent graphs to various formats
type Exporter interface {
	Export(parents []record.Parent, w io.Writer) error
	Format() string
}

// Codec is both an Importer and an Exporter
type Codec interface {
	Importer
	Exporter
}

// document is the top-level fixture shape shared by every format
type document struct {
	Parents []record.Parent `json:"parents" yaml:"parents"`
}

// ForPath picks a codec from the file extension
func ForPath(path string) (Codec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return NewYAMLCodec(), nil
	case ".json":
		return NewJSONCodec(), nil
	default:
		return nil, fmt.Errorf("unsupported fixture format %q", filepath.Ext(path))
	}
}
