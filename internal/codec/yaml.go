package codec

import (
	"errors"
	"fmt"
	"io"

	"graphmap/internal/record"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML import/export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// Parse imports parent graphs from a YAML stream. The parents of every
// document are returned in order; an empty stream yields no parents.
func (c *YAMLCodec) Parse(r io.Reader) ([]record.Parent, error) {
	var parents []record.Parent
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	for n := 1; ; n++ {
		var doc document
		err := decoder.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return parents, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse YAML document %d: %w", n, err)
		}
		parents = append(parents, doc.Parents...)
	}
}

// Export exports parent graphs to YAML
func (c *YAMLCodec) Export(parents []record.Parent, w io.Writer) error {
	if parents == nil {
		parents = []record.Parent{}
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(document{Parents: parents}); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
