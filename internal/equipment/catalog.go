// Package equipment loads the plant equipment catalog from YAML and answers
// the directory, tag and scale lookups of the engine.
package equipment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/techequipments/engine/internal/models"
	"github.com/techequipments/engine/internal/soe"
)

// ErrNotFound is returned for equipment missing from the catalog.
var ErrNotFound = errors.New("equipment not found")

// Scale is the MinR/MaxR range of an equipment.
type Scale struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Entry is one equipment of the catalog file.
type Entry struct {
	Name        string              `yaml:"name" json:"name"`
	Type        string              `yaml:"type" json:"type"`
	Description string              `yaml:"description,omitempty" json:"description,omitempty"`
	Tag         string              `yaml:"tag,omitempty" json:"tag,omitempty"`
	Trends      map[string]string   `yaml:"trends,omitempty" json:"trends,omitempty"`
	Scale       *Scale              `yaml:"scale,omitempty" json:"scale,omitempty"`
	Refs        map[string][]string `yaml:"refs,omitempty" json:"refs,omitempty"`
}

// Station is the name prefix before the first dot.
func (e Entry) Station() string {
	if i := strings.Index(e.Name, "."); i > 0 {
		return e.Name[:i]
	}
	return ""
}

// Group is the resolved type group.
func (e Entry) Group() models.TypeGroup {
	return soe.ResolveGroup(e.Type)
}

// trendTag returns the configured tag of item. Entries without a trends
// map use "<name>.<item>"; with a map, unlisted items have no trend.
func (e Entry) trendTag(item string) string {
	item = strings.TrimSpace(item)
	if item == "" {
		return ""
	}
	if e.Trends == nil {
		return e.Name + "." + item
	}
	for k, v := range e.Trends {
		if strings.EqualFold(k, item) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

type catalogFile struct {
	Equipment []Entry `yaml:"equipment"`
}

// Parse reads a catalog document.
func Parse(r io.Reader) ([]Entry, error) {
	var f catalogFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode equipment catalog: %w", err)
	}
	for i, e := range f.Equipment {
		if strings.TrimSpace(e.Name) == "" {
			return nil, fmt.Errorf("equipment #%d has no name", i+1)
		}
		f.Equipment[i].Name = strings.TrimSpace(e.Name)
	}
	return f.Equipment, nil
}

// Filter selects rows of the equipment list.
type Filter struct {
	Station string
	Group   string // group name; "" or "All" matches every group
	Query   string // case-insensitive substring of name, description or tag
}

// Catalog is the in-memory equipment catalog.
type Catalog struct {
	mu      sync.RWMutex
	entries map[string]Entry // upper(name) -> entry
	order   []string
}

// NewCatalog builds a catalog. Later duplicates of a name replace earlier ones.
func NewCatalog(entries []Entry) *Catalog {
	c := &Catalog{}
	c.Replace(entries)
	return c
}

// LoadFile reads a catalog file.
func LoadFile(path string) (*Catalog, error) {
	entries, err := readFile(path)
	if err != nil {
		return nil, err
	}
	fmt.Printf("[Catalog] Loaded %d equipment from %s\n", len(entries), path)
	return NewCatalog(entries), nil
}

func readFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open equipment catalog: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Replace swaps the catalog content.
func (c *Catalog) Replace(entries []Entry) {
	m := make(map[string]Entry, len(entries))
	order := make([]string, 0, len(entries))
	for _, e := range entries {
		key := strings.ToUpper(strings.TrimSpace(e.Name))
		if key == "" {
			continue
		}
		if _, dup := m[key]; !dup {
			order = append(order, key)
		}
		m[key] = e
	}

	c.mu.Lock()
	c.entries = m
	c.order = order
	c.mu.Unlock()
}

// Len returns the number of equipment.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

// Get returns an entry by name, ignoring case.
func (c *Catalog) Get(name string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[strings.ToUpper(strings.TrimSpace(name))]
	return e, ok
}

func (c *Catalog) get(name string) (Entry, error) {
	e, ok := c.Get(name)
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return e, nil
}

// List returns the equipment rows matching filter, in catalog order.
func (c *Catalog) List(filter Filter) ([]models.EquipmentListItem, error) {
	var group models.TypeGroup
	filterGroup := false
	if g := strings.TrimSpace(filter.Group); g != "" {
		parsed, err := models.ParseTypeGroup(g)
		if err != nil {
			return nil, err
		}
		group, filterGroup = parsed, parsed != models.GroupAll
	}
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	station := strings.TrimSpace(filter.Station)

	c.mu.RLock()
	defer c.mu.RUnlock()

	items := make([]models.EquipmentListItem, 0, len(c.order))
	for _, key := range c.order {
		e := c.entries[key]
		g := e.Group()
		if filterGroup && g != group {
			continue
		}
		if station != "" && !strings.EqualFold(e.Station(), station) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(e.Name), query) &&
			!strings.Contains(strings.ToLower(e.Description), query) &&
			!strings.Contains(strings.ToLower(e.Tag), query) {
			continue
		}
		items = append(items, models.EquipmentListItem{
			Equipment: e.Name,
			Tag:       e.Tag,
			Type:      e.Type,
			Station:   e.Station(),
			Group:     g,
			Color:     soe.GroupColor(g).Hex(),
		})
	}
	return items, nil
}

// Stations returns the distinct stations, sorted.
func (c *Catalog) Stations() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, e := range c.entries {
		if s := e.Station(); s != "" {
			seen[s] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Equipment returns the reference of an equipment with the trend tag of item.
func (c *Catalog) Equipment(ctx context.Context, name, item string) (models.EquipmentRef, error) {
	e, err := c.get(name)
	if err != nil {
		return models.EquipmentRef{}, err
	}
	return models.EquipmentRef{
		Name:        e.Name,
		TagName:     e.Tag,
		Type:        e.Type,
		Description: e.Description,
		TrendTag:    e.trendTag(item),
	}, nil
}

// References returns the names an equipment references under category.
func (c *Catalog) References(ctx context.Context, name, category string) ([]string, error) {
	e, err := c.get(name)
	if err != nil {
		return nil, err
	}
	for k, refs := range e.Refs {
		if strings.EqualFold(k, category) {
			return append([]string(nil), refs...), nil
		}
	}
	return nil, nil
}

// ResolveTrendTag returns the trend tag of an equipment item, or "".
func (c *Catalog) ResolveTrendTag(ctx context.Context, equipment, item string) (string, error) {
	e, err := c.get(equipment)
	if err != nil {
		return "", err
	}
	return e.trendTag(item), nil
}

// ResolveEquipmentType returns the raw type string of an equipment.
func (c *Catalog) ResolveEquipmentType(ctx context.Context, name string) (string, error) {
	e, err := c.get(name)
	if err != nil {
		return "", err
	}
	return e.Type, nil
}

// BaseRange returns the MinR/MaxR scale when the equipment declares one.
func (c *Catalog) BaseRange(ctx context.Context, equipment string) (float64, float64, bool) {
	e, ok := c.Get(equipment)
	if !ok || e.Scale == nil {
		return 0, 0, false
	}
	return e.Scale.Min, e.Scale.Max, true
}
