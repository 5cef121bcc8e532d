package library

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed fixture.yaml
var defaultFixture []byte

// OutputSpec describes an audio output as listed in the fixture
type OutputSpec struct {
	Name    string `yaml:"name"`
	Enabled bool   `yaml:"enabled"`
}

// PlaylistSpec describes a stored playlist as listed in the fixture
type PlaylistSpec struct {
	Name  string   `yaml:"name"`
	Files []string `yaml:"files,omitempty"`
}

// Fixture is the canned content the emulator starts with
type Fixture struct {
	Songs     []Song         `yaml:"songs"`
	Outputs   []OutputSpec   `yaml:"outputs"`
	Playlists []PlaylistSpec `yaml:"playlists"`
}

// DefaultFixture returns the fixture compiled into the binary
func DefaultFixture() (*Fixture, error) {
	return ParseFixture(defaultFixture)
}

// LoadFixture reads a fixture from a YAML file
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}
	return ParseFixture(data)
}

// ParseFixture decodes and validates fixture YAML
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *Fixture) validate() error {
	files := make(map[string]bool, len(f.Songs))
	for i, song := range f.Songs {
		if song.File == "" {
			return fmt.Errorf("fixture song %d has no file", i)
		}
		if files[song.File] {
			return fmt.Errorf("duplicate fixture song: %s", song.File)
		}
		if song.Time < 0 {
			return fmt.Errorf("fixture song %s has negative time", song.File)
		}
		files[song.File] = true
	}

	for i, out := range f.Outputs {
		if out.Name == "" {
			return fmt.Errorf("fixture output %d has no name", i)
		}
	}

	names := make(map[string]bool, len(f.Playlists))
	for _, pl := range f.Playlists {
		if pl.Name == "" {
			return fmt.Errorf("fixture playlist has no name")
		}
		if names[pl.Name] {
			return fmt.Errorf("duplicate fixture playlist: %s", pl.Name)
		}
		names[pl.Name] = true
		for _, file := range pl.Files {
			if !files[file] {
				return fmt.Errorf("playlist %s references unknown song: %s", pl.Name, file)
			}
		}
	}
	return nil
}
