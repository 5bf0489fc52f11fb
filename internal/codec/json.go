package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"graphmap/internal/record"
)

// JSONCodec handles JSON import/export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Parse imports parent graphs from JSON
func (c *JSONCodec) Parse(r io.Reader) ([]record.Parent, error) {
	var doc document
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return doc.Parents, nil
}

// Export exports parent graphs to JSON
func (c *JSONCodec) Export(parents []record.Parent, w io.Writer) error {
	if parents == nil {
		parents = []record.Parent{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(document{Parents: parents}); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
