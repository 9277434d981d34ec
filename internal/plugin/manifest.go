package plugin

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestFile is the manifest file name inside a plugin directory.
const ManifestFile = "plugin.yaml"

// DefaultMain is the entry file used when the manifest names none.
const DefaultMain = "init.lua"

// Manifest describes an extension.
type Manifest struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	DisplayName string `yaml:"displayName"`
	Description string `yaml:"description"`
	Author      string `yaml:"author"`

	// Main is the entry file relative to the plugin directory.
	Main string `yaml:"main"`

	dir string
}

var (
	namePattern   = regexp.MustCompile(`^[a-z][a-z0-9-]*[a-z0-9]$|^[a-z]$`)
	semverPattern = regexp.MustCompile(`^\d+\.\d+\.\d+(-[a-zA-Z0-9.-]+)?(\+[a-zA-Z0-9.-]+)?$`)
)

// LoadManifest reads and validates dir/plugin.yaml.
func LoadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	m.dir = dir
	m.applyDefaults()

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) applyDefaults() {
	if m.Main == "" {
		m.Main = DefaultMain
	}
	if m.Version == "" {
		m.Version = "0.0.0"
	}
}

// Validate checks the manifest fields.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return ErrMissingName
	}
	if !namePattern.MatchString(m.Name) {
		return fmt.Errorf("%w: %s", ErrInvalidName, m.Name)
	}
	if !semverPattern.MatchString(m.Version) {
		return fmt.Errorf("%w: %s", ErrInvalidVersion, m.Version)
	}
	if filepath.Ext(m.Main) != ".lua" || filepath.IsAbs(m.Main) ||
		strings.HasPrefix(filepath.Clean(m.Main), "..") {
		return fmt.Errorf("%w: %s", ErrInvalidMain, m.Main)
	}
	return nil
}

// Dir returns the plugin directory.
func (m *Manifest) Dir() string {
	return m.dir
}

// MainPath returns the full path of the entry file.
func (m *Manifest) MainPath() string {
	return filepath.Join(m.dir, m.Main)
}

// String returns "DisplayName vVersion".
func (m *Manifest) String() string {
	display := m.DisplayName
	if display == "" {
		display = m.Name
	}
	return fmt.Sprintf("%s v%s", display, m.Version)
}
