// mock_historian.go - In-memory sample source and equipment directory for tests
package testutil

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/techequipments/engine/internal/models"
)

// FetchCall records one FetchSamples invocation.
type FetchCall struct {
	Tag  string
	From time.Time
	To   time.Time
}

// MockHistorian implements the sample source interfaces for testing.
type MockHistorian struct {
	series map[string][]models.Sample // upper(tag) -> samples sorted by time
	errs   map[string]error
	calls  []FetchCall
	mu     sync.RWMutex

	// FetchHook, when set, runs before every fetch. A non-nil error is returned to the caller.
	FetchHook func(ctx context.Context, tag string, from, to time.Time) error
}

// NewMockHistorian creates an empty mock historian.
func NewMockHistorian() *MockHistorian {
	return &MockHistorian{
		series: make(map[string][]models.Sample),
		errs:   make(map[string]error),
	}
}

// Add appends samples to a tag.
func (m *MockHistorian) Add(tag string, samples ...models.Sample) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToUpper(tag)
	s := append(m.series[key], samples...)
	sort.SliceStable(s, func(i, j int) bool { return s[i].Time.Before(s[j].Time) })
	m.series[key] = s
}

// SetError makes every fetch of tag fail with err. A nil err clears it.
func (m *MockHistorian) SetError(tag string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.errs, strings.ToUpper(tag))
		return
	}
	m.errs[strings.ToUpper(tag)] = err
}

func (m *MockHistorian) FetchSamples(ctx context.Context, tag string, from, to time.Time) ([]models.Sample, error) {
	m.mu.Lock()
	m.calls = append(m.calls, FetchCall{Tag: tag, From: from, To: to})
	hook := m.FetchHook
	m.mu.Unlock()

	if hook != nil {
		if err := hook(ctx, tag, from, to); err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	key := strings.ToUpper(tag)
	if err, ok := m.errs[key]; ok {
		return nil, err
	}

	var out []models.Sample
	for _, s := range m.series[key] {
		if s.Time.Before(from) || s.Time.After(to) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// Calls returns a copy of all recorded fetches.
func (m *MockHistorian) Calls() []FetchCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]FetchCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallsFor returns the recorded fetches of one tag.
func (m *MockHistorian) CallsFor(tag string) []FetchCall {
	var out []FetchCall
	for _, c := range m.Calls() {
		if strings.EqualFold(c.Tag, tag) {
			out = append(out, c)
		}
	}
	return out
}

// ResetCalls forgets recorded fetches.
func (m *MockHistorian) ResetCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

// Series builds Good samples starting at start, one every step.
func Series(start time.Time, step time.Duration, values ...float64) []models.Sample {
	out := make([]models.Sample, len(values))
	for i, v := range values {
		out[i] = models.Sample{Time: start.Add(time.Duration(i) * step), Value: v, Quality: models.QualityGood}
	}
	return out
}

// ErrNotFound is returned by MockDirectory for unknown equipment.
var ErrNotFound = errors.New("equipment not found")

type mockEquipment struct {
	name   string
	typ    string
	trends map[string]string
	refs   map[string][]string
	lo, hi float64
	scaled bool
}

// MockDirectory implements the equipment directory, tag resolver and scale source.
type MockDirectory struct {
	equipment map[string]*mockEquipment
	mu        sync.RWMutex
}

// NewMockDirectory creates an empty directory.
func NewMockDirectory() *MockDirectory {
	return &MockDirectory{equipment: make(map[string]*mockEquipment)}
}

// AddEquipment registers equipment with its trend tags per item.
func (d *MockDirectory) AddEquipment(name, rawType string, trends map[string]string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t := make(map[string]string, len(trends))
	for item, tag := range trends {
		t[strings.ToUpper(item)] = tag
	}
	d.equipment[strings.ToUpper(name)] = &mockEquipment{
		name:   name,
		typ:    rawType,
		trends: t,
		refs:   make(map[string][]string),
	}
}

// AddReferences appends references of a category to registered equipment.
func (d *MockDirectory) AddReferences(name, category string, refs ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if e, ok := d.equipment[strings.ToUpper(name)]; ok {
		e.refs[strings.ToUpper(category)] = append(e.refs[strings.ToUpper(category)], refs...)
	}
}

// SetBaseRange sets the MinR/MaxR scale of registered equipment.
func (d *MockDirectory) SetBaseRange(name string, lo, hi float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if e, ok := d.equipment[strings.ToUpper(name)]; ok {
		e.lo, e.hi, e.scaled = lo, hi, true
	}
}

func (d *MockDirectory) get(name string) (*mockEquipment, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	e, ok := d.equipment[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return e, nil
}

func (d *MockDirectory) Equipment(ctx context.Context, name, item string) (models.EquipmentRef, error) {
	if err := ctx.Err(); err != nil {
		return models.EquipmentRef{}, err
	}
	e, err := d.get(name)
	if err != nil {
		return models.EquipmentRef{}, err
	}
	return models.EquipmentRef{
		Name:     e.name,
		Type:     e.typ,
		TrendTag: e.trends[strings.ToUpper(item)],
	}, nil
}

func (d *MockDirectory) References(ctx context.Context, name, category string) ([]string, error) {
	e, err := d.get(name)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), e.refs[strings.ToUpper(category)]...), nil
}

func (d *MockDirectory) ResolveTrendTag(ctx context.Context, equipment, item string) (string, error) {
	e, err := d.get(equipment)
	if err != nil {
		return "", err
	}
	return e.trends[strings.ToUpper(item)], nil
}

func (d *MockDirectory) ResolveEquipmentType(ctx context.Context, name string) (string, error) {
	e, err := d.get(name)
	if err != nil {
		return "", err
	}
	return e.typ, nil
}

func (d *MockDirectory) BaseRange(ctx context.Context, equipment string) (float64, float64, bool) {
	e, err := d.get(equipment)
	if err != nil || !e.scaled {
		return 0, 0, false
	}
	return e.lo, e.hi, true
}
