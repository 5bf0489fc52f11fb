package config

import "strings"

// Driver names a repository implementation
type Driver string

const (
	DriverMemory Driver = "memory" // map-backed, process lifetime only
	DriverSQLite Driver = "sqlite" // modernc.org/sqlite
)

// Valid reports whether d is a known driver
func (d Driver) Valid() bool {
	return d == DriverMemory || d == DriverSQLite
}

// UnmarshalText normalizes case and whitespace and accepts "sqlite3" as an
// alias. Validate rejects unknown values.
func (d *Driver) UnmarshalText(text []byte) error {
	s := normalize(string(text))
	if s == "sqlite3" {
		s = string(DriverSQLite)
	}
	*d = Driver(s)
	return nil
}

// MappingMode selects the record-to-domain mapping
type MappingMode string

const (
	MappingEager MappingMode = "eager" // materialized, identity-stable children
	MappingLazy  MappingMode = "lazy"  // recomputed on every access
)

// Valid reports whether m is a known mode
func (m MappingMode) Valid() bool {
	return m == MappingEager || m == MappingLazy
}

// UnmarshalText normalizes case and whitespace; Validate rejects unknown values
func (m *MappingMode) UnmarshalText(text []byte) error {
	*m = MappingMode(normalize(string(text)))
	return nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
