// Package tablet holds the catalog of tablet models offered by the picker.
package tablet

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"
)

//go:embed tablets.yaml
var defaultCatalog []byte

// minDimension matches the engine's smallest accepted tablet side.
const minDimension = 10.0

var ErrNotFound = errors.New("tablet not found")

// Model is one tablet with its active surface in millimeters.
type Model struct {
	ID       string  `yaml:"id" json:"id"`
	Brand    string  `yaml:"brand" json:"brand"`
	Name     string  `yaml:"name" json:"name"`
	WidthMM  float64 `yaml:"width" json:"width"`
	HeightMM float64 `yaml:"height" json:"height"`
}

// Label is the text the picker shows and searches.
func (m Model) Label() string {
	return m.Brand + " " + m.Name
}

type catalogFile struct {
	Tablets []Model `yaml:"tablets"`
}

// Catalog is an immutable, label-sorted list of models.
type Catalog struct {
	models []Model
	byID   map[string]int
	labels []string
}

// Load parses a YAML catalog. Entries without an id, with a duplicate id, or
// with a side below 10mm are rejected.
func Load(r io.Reader) (*Catalog, error) {
	var f catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode tablet catalog: %w", err)
	}

	models := make([]Model, 0, len(f.Tablets))
	seen := make(map[string]bool, len(f.Tablets))
	for i, m := range f.Tablets {
		m.ID = strings.TrimSpace(m.ID)
		switch {
		case m.ID == "":
			return nil, fmt.Errorf("tablet %d: missing id", i)
		case seen[m.ID]:
			return nil, fmt.Errorf("tablet %q: duplicate id", m.ID)
		case m.WidthMM < minDimension || m.HeightMM < minDimension:
			return nil, fmt.Errorf("tablet %q: dimensions %gx%g below %gmm", m.ID, m.WidthMM, m.HeightMM, minDimension)
		}
		seen[m.ID] = true
		models = append(models, m)
	}

	sort.SliceStable(models, func(i, j int) bool {
		return strings.ToLower(models[i].Label()) < strings.ToLower(models[j].Label())
	})

	c := &Catalog{
		models: models,
		byID:   make(map[string]int, len(models)),
		labels: make([]string, len(models)),
	}
	for i, m := range models {
		c.byID[m.ID] = i
		c.labels[i] = m.Label()
	}
	return c, nil
}

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := Load(bytes.NewReader(defaultCatalog))
	if err != nil {
		panic(fmt.Sprintf("embedded tablet catalog: %v", err))
	}
	return c
}

// Len returns the number of models.
func (c *Catalog) Len() int { return len(c.models) }

// All returns every model in label order.
func (c *Catalog) All() []Model {
	out := make([]Model, len(c.models))
	copy(out, c.models)
	return out
}

// Get looks a model up by id.
func (c *Catalog) Get(id string) (Model, error) {
	i, ok := c.byID[id]
	if !ok {
		return Model{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return c.models[i], nil
}

// Search fuzzy-matches query against model labels, best match first.
// An empty query returns every model in label order. limit <= 0 means no
// limit.
func (c *Catalog) Search(query string, limit int) []Model {
	query = strings.TrimSpace(query)
	var out []Model
	if query == "" {
		out = c.All()
	} else {
		matches := fuzzy.Find(query, c.labels)
		out = make([]Model, 0, len(matches))
		for _, m := range matches {
			out = append(out, c.models[m.Index])
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
