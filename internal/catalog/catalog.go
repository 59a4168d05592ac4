// Package catalog holds the predefined circuit templates and matches
// free-text descriptions against them.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var templatesYAML []byte

// Component is a single part in a circuit template.
type Component struct {
	Ref         string `yaml:"ref"`
	Value       string `yaml:"value"`
	Footprint   string `yaml:"footprint"`
	Description string `yaml:"description"`
}

// Net is a named connection between component pins ("J1.A4" style refs).
type Net struct {
	Name string   `yaml:"name"`
	Pins []string `yaml:"pins"`
}

// Template is an immutable circuit blueprint loaded at startup.
type Template struct {
	ID              string      `yaml:"id"`
	Name            string      `yaml:"name"`
	Description     string      `yaml:"description"`
	Components      []Component `yaml:"components"`
	Nets            []Net       `yaml:"nets"`
	EstimatedLayers int         `yaml:"estimated_layers"`
}

// Catalog is the loaded template registry. Construct once per session.
type Catalog struct {
	templates map[string]*Template
}

// Load parses the embedded template data.
func Load() (*Catalog, error) {
	var doc struct {
		Templates []*Template `yaml:"templates"`
	}
	if err := yaml.Unmarshal(templatesYAML, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse template catalog: %w", err)
	}

	c := &Catalog{templates: make(map[string]*Template, len(doc.Templates))}
	for _, t := range doc.Templates {
		if t.ID == "" {
			return nil, fmt.Errorf("template %q has no id", t.Name)
		}
		if t.EstimatedLayers < 2 {
			return nil, fmt.Errorf("template %q has invalid layer estimate %d", t.Name, t.EstimatedLayers)
		}
		c.templates[t.ID] = t
	}
	return c, nil
}

// Get returns a template by ID.
func (c *Catalog) Get(id string) (*Template, bool) {
	t, ok := c.templates[id]
	return t, ok
}

// GetByName returns a template by its display name, case-insensitively.
func (c *Catalog) GetByName(name string) (*Template, bool) {
	for _, t := range c.templates {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return nil, false
}

// Len returns the number of loaded templates.
func (c *Catalog) Len() int {
	return len(c.templates)
}
