package discovery

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ManifestEntry toggles one system by its registration id ("core:MotionSystem").
type ManifestEntry struct {
	ID      string `yaml:"id"`
	Enabled bool   `yaml:"enabled"`
	Note    string `yaml:"note"`
}

// Manifest filters discovered systems. Ids not listed are enabled.
type Manifest struct {
	entries map[string]*ManifestEntry
}

// LoadManifest loads a systems.yaml file. A missing file yields an empty
// manifest that enables everything.
func LoadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Manifest{entries: map[string]*ManifestEntry{}}, nil
		}
		return nil, fmt.Errorf("read system manifest: %w", err)
	}
	return ParseManifest(raw)
}

// ParseManifest decodes manifest YAML.
func ParseManifest(raw []byte) (*Manifest, error) {
	var entries []ManifestEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse system manifest: %w", err)
	}
	m := &Manifest{
		entries: make(map[string]*ManifestEntry, len(entries)),
	}
	for i := range entries {
		e := &entries[i]
		m.entries[e.ID] = e
	}
	return m, nil
}

// Enabled reports whether id may be registered.
func (m *Manifest) Enabled(id string) bool {
	e, ok := m.entries[id]
	return !ok || e.Enabled
}

// Count returns the number of listed entries.
func (m *Manifest) Count() int {
	return len(m.entries)
}
