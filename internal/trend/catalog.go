// Package trend keeps the multi-series point buffer behind the parameter
// trend view: live and history navigation, incremental polling, backfill
// and scaling of auxiliary series onto the base axis.
package trend

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/techequipments/engine/internal/models"
)

// DefaultBaseKey is the series plotted when a group declares nothing else.
const DefaultBaseKey = "R"

// SeriesSpec declares one trend series of a parameter model.
type SeriesSpec struct {
	Key          string  `json:"key"`
	Base         bool    `json:"base"`
	HasRange     bool    `json:"hasRange"`
	Min          float64 `json:"min,omitempty"`
	Max          float64 `json:"max,omitempty"`
	Color        string  `json:"color,omitempty"`
	Transparency float64 `json:"transparency,omitempty"`
}

// Range returns the declared native range with Min <= Max.
func (s SeriesSpec) Range() (lo, hi float64, ok bool) {
	if !s.HasRange {
		return 0, 0, false
	}
	if s.Min > s.Max {
		return s.Max, s.Min, true
	}
	return s.Min, s.Max, true
}

// Catalog holds the series registrations per type group.
type Catalog struct {
	mu    sync.RWMutex
	specs map[models.TypeGroup][]SeriesSpec
}

// NewCatalog returns a catalog with the built-in registrations.
func NewCatalog() *Catalog {
	c := &Catalog{specs: make(map[models.TypeGroup][]SeriesSpec)}
	c.specs[models.GroupAI] = normalize([]SeriesSpec{
		{Key: "R", Color: "#2E7D32", Transparency: 0.7},
		{Key: "STW", HasRange: true, Min: 0, Max: 100, Color: "DarkSlateBlue", Transparency: 0.8},
	})
	return c
}

// normalize makes the first spec the only base and drops blank or repeated keys.
func normalize(specs []SeriesSpec) []SeriesSpec {
	out := make([]SeriesSpec, 0, len(specs))
	seen := make(map[string]struct{}, len(specs))
	for _, s := range specs {
		s.Key = strings.TrimSpace(s.Key)
		if s.Key == "" {
			continue
		}
		k := strings.ToUpper(s.Key)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		s.Base = len(out) == 0
		out = append(out, s)
	}
	return out
}

// Register replaces the series of a group.
func (c *Catalog) Register(group models.TypeGroup, specs []SeriesSpec) error {
	n := normalize(specs)
	if len(n) == 0 {
		return fmt.Errorf("group %s: no series declared", group)
	}
	c.mu.Lock()
	c.specs[group] = n
	c.mu.Unlock()
	return nil
}

// Series returns the series of a group, base first. Groups without a
// registration fall back to a single base series.
func (c *Catalog) Series(group models.TypeGroup) []SeriesSpec {
	c.mu.RLock()
	specs, ok := c.specs[group]
	c.mu.RUnlock()
	if !ok || len(specs) == 0 {
		return []SeriesSpec{{Key: DefaultBaseKey, Base: true}}
	}
	out := make([]SeriesSpec, len(specs))
	copy(out, specs)
	return out
}

// Base returns the base series of a group.
func (c *Catalog) Base(group models.TypeGroup) SeriesSpec {
	return c.Series(group)[0]
}

type seriesFile struct {
	Groups map[string][]seriesYAML `yaml:"groups"`
}

type seriesYAML struct {
	Key          string   `yaml:"key"`
	Min          *float64 `yaml:"min"`
	Max          *float64 `yaml:"max"`
	Color        string   `yaml:"color"`
	Transparency float64  `yaml:"transparency"`
}

// LoadYAML applies series overrides:
//
//	groups:
//	  AI:
//	    - key: R
//	      color: "#2E7D32"
//	    - key: STW
//	      min: 0
//	      max: 100
func (c *Catalog) LoadYAML(r io.Reader) error {
	var f seriesFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("decode series overrides: %w", err)
	}

	parsed := make(map[models.TypeGroup][]SeriesSpec, len(f.Groups))
	for name, entries := range f.Groups {
		group, err := models.ParseTypeGroup(name)
		if err != nil {
			return err
		}
		specs := make([]SeriesSpec, 0, len(entries))
		for _, e := range entries {
			s := SeriesSpec{Key: e.Key, Color: e.Color, Transparency: e.Transparency}
			if e.Min != nil && e.Max != nil {
				s.HasRange, s.Min, s.Max = true, *e.Min, *e.Max
			}
			specs = append(specs, s)
		}
		if len(normalize(specs)) == 0 {
			return fmt.Errorf("group %s: no series declared", name)
		}
		parsed[group] = specs
	}

	for group, specs := range parsed {
		if err := c.Register(group, specs); err != nil {
			return err
		}
	}
	return nil
}

// LoadCatalogFile builds a catalog from the defaults plus the overrides in path.
// A missing file yields the defaults.
func LoadCatalogFile(path string) (*Catalog, error) {
	c := NewCatalog()
	if path == "" {
		return c, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("open series overrides: %w", err)
	}
	defer f.Close()

	if err := c.LoadYAML(f); err != nil {
		return nil, err
	}
	fmt.Printf("[Catalog] Loaded series overrides from %s\n", path)
	return c, nil
}
