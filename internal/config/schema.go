package config

// Config is the root configuration structure
type Config struct {
	Version int           `yaml:"version"`
	Storage StorageConfig `yaml:"storage" envPrefix:"STORAGE_"`
	Mapping MappingConfig `yaml:"mapping" envPrefix:"MAPPING_"`
}

// StorageConfig selects the repository implementation
type StorageConfig struct {
	Driver Driver `yaml:"driver" env:"DRIVER"`
	Path   string `yaml:"path" env:"PATH"` // sqlite only; ":memory:" for a throwaway database
}

// MappingConfig selects how the demo maps fixture records.
// Storage reads always materialize regardless of this setting.
type MappingConfig struct {
	Mode MappingMode `yaml:"mode" env:"MODE"`
}
