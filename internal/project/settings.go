package project

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Settings is the parsed dsense.toml for one project.
type Settings struct {
	Extract ExtractSettings `toml:"extract"`
	Output  OutputSettings  `toml:"output"`
}

// ExtractSettings tunes the extraction pass.
type ExtractSettings struct {
	// Versions replaces the predefined conditional-compilation identifier
	// set when non-empty.
	Versions []string `toml:"versions"`
	// ExtraVersions is appended to the active set, whichever it is.
	ExtraVersions []string `toml:"extra_versions"`
	// Workers caps concurrent per-file extractions; 0 means one per CPU.
	Workers int `toml:"workers"`
}

// OutputSettings tunes outline rendering.
type OutputSettings struct {
	// Format is "pretty" or "json"; empty means pretty.
	Format string `toml:"format"`
}

// Validate reports the first nonsensical setting.
func (s *Settings) Validate() error {
	if s.Extract.Workers < 0 {
		return fmt.Errorf("invalid [extract].workers %d: must be non-negative", s.Extract.Workers)
	}
	switch strings.TrimSpace(s.Output.Format) {
	case "", "pretty", "json":
	default:
		return fmt.Errorf("invalid [output].format %q: want pretty or json", s.Output.Format)
	}
	return nil
}

// ActiveVersions resolves the conditional-compilation identifier set against
// a default set.
func (s *Settings) ActiveVersions(defaults []string) []string {
	base := defaults
	if len(s.Extract.Versions) > 0 {
		base = s.Extract.Versions
	}
	if len(s.Extract.ExtraVersions) == 0 {
		return base
	}
	out := make([]string, 0, len(base)+len(s.Extract.ExtraVersions))
	out = append(out, base...)
	out = append(out, s.Extract.ExtraVersions...)
	return out
}

// LoadSettings parses a dsense.toml. A missing [extract] or [output] section
// leaves the zero value in place.
func LoadSettings(path string) (*Settings, error) {
	var cfg Settings
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// LoadProjectSettings finds and parses the nearest dsense.toml above
// startDir. Absence is not an error; the zero settings are returned.
func LoadProjectSettings(startDir string) (*Settings, bool, error) {
	path, ok, err := FindDsenseToml(startDir)
	if err != nil || !ok {
		return &Settings{}, ok, err
	}
	cfg, err := LoadSettings(path)
	if err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}
