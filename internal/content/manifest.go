package content

import (
	"bytes"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// ManifestFile is the name of the catalog manifest at the bundle root.
const ManifestFile = "catalog.yaml"

// Manifest lists the published lessons of a bundle.
type Manifest struct {
	Course    string           `yaml:"course"`
	Published string           `yaml:"published"`
	Modules   []ManifestModule `yaml:"modules"`
}

// ManifestModule describes one module and its published lessons.
type ManifestModule struct {
	Number  int              `yaml:"number"`
	Title   string           `yaml:"title"`
	Lessons []ManifestLesson `yaml:"lessons"`
}

// ManifestLesson points at the markdown file of one lesson.
type ManifestLesson struct {
	Number int    `yaml:"number"`
	File   string `yaml:"file"`
}

// ParseManifest decodes a catalog manifest. Unknown keys are rejected so a
// typo does not silently unpublish a lesson.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if m.Course == "" {
		return nil, fmt.Errorf("manifest: course is required")
	}
	return &m, nil
}

// PublishedAt parses the manifest release date. An empty value yields the zero time.
func (m *Manifest) PublishedAt() (time.Time, error) {
	if m.Published == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, m.Published)
	if err != nil {
		return time.Time{}, fmt.Errorf("manifest: invalid published date %q: %w", m.Published, err)
	}
	return t.UTC(), nil
}
