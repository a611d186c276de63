package level

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is the external level consulted when no custom path is given
const DefaultPath = "levels/default.toml"

// SourceEmbedded names the compiled-in level in LoadAuto results
const SourceEmbedded = "embedded"

//go:embed default.toml
var defaultLevel []byte

// Parse decodes a level strictly, unknown keys are errors, then fills defaults and validates
func Parse(data []byte) (*Level, error) {
	l := newDefaultLevel()

	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(l); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal level: %w", ErrInvalidLevel, err)
	}

	if l.Satellite.Name == "" {
		l.Satellite.Name = DefaultSatelliteName
	}
	for i := range l.Planets {
		if l.Planets[i].Name == "" {
			l.Planets[i].Name = fmt.Sprintf("planet-%d", i)
		}
	}

	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// Default returns the embedded level
func Default() (*Level, error) {
	return Parse(defaultLevel)
}

// Load reads and parses a level file
func Load(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level %s: %w", path, err)
	}
	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load level %s: %w", path, err)
	}
	return l, nil
}

// LoadAuto loads a level with priority: customPath > DefaultPath > embedded
// Returns the level and the source it came from
func LoadAuto(customPath string) (*Level, string, error) {
	// Custom path from CLI never falls back
	if customPath != "" {
		l, err := Load(customPath)
		return l, customPath, err
	}

	if fileExists(DefaultPath) {
		l, err := Load(DefaultPath)
		return l, DefaultPath, err
	}

	l, err := Default()
	return l, SourceEmbedded, err
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
