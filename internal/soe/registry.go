package soe

import (
	"fmt"
	"strings"

	"github.com/techequipments/engine/internal/models"
)

// EventCode is one entry of a status word layout.
type EventCode struct {
	Code        int    `json:"code"`
	Key         string `json:"key"`
	Description string `json:"description"`
}

// CodeTable maps bit codes of one decode family to event names.
type CodeTable struct {
	name    string
	entries []EventCode // entries[code-1]
}

func newCodeTable(name string, codes []EventCode) *CodeTable {
	t := &CodeTable{name: name, entries: make([]EventCode, len(codes))}
	for i, c := range codes {
		if c.Code != i+1 {
			panic(fmt.Sprintf("soe: table %s is not dense at code %d", name, c.Code))
		}
		t.entries[i] = c
	}
	return t
}

// Name returns the table family name ("AI", "ATV", ...).
func (t *CodeTable) Name() string {
	return t.name
}

// Size returns the number of codes in the table (32 or 64).
func (t *CodeTable) Size() int {
	return len(t.entries)
}

// Lookup returns the entry for code, or false when the code is out of range.
func (t *CodeTable) Lookup(code int) (EventCode, bool) {
	if t == nil || code <= 0 || code > len(t.entries) {
		return EventCode{}, false
	}
	return t.entries[code-1], true
}

// Entries returns a copy of the table in code order.
func (t *CodeTable) Entries() []EventCode {
	out := make([]EventCode, len(t.entries))
	copy(out, t.entries)
	return out
}

// Registry holds the decode table for each type group.
type Registry struct {
	tables map[models.TypeGroup]*CodeTable
}

// Global registry instance
var globalRegistry = NewRegistry()

// NewRegistry builds the standard group to table association.
func NewRegistry() *Registry {
	return &Registry{
		tables: map[models.TypeGroup]*CodeTable{
			models.GroupAI:    aiCodes,
			models.GroupVGA:   aoCodes,
			models.GroupDI:    diCodes,
			models.GroupDO:    doCodes,
			models.GroupAtv:   atvCodes,
			models.GroupVGD:   vgdCodes,
			models.GroupMotor: motorCodes,
			models.GroupVGAEL: vgaElCodes,
		},
	}
}

// GetGlobalRegistry returns the process-wide registry. It is never mutated.
func GetGlobalRegistry() *Registry {
	return globalRegistry
}

// Table returns the decode table for a group. GroupAll has none.
func (r *Registry) Table(group models.TypeGroup) (*CodeTable, bool) {
	t, ok := r.tables[group]
	return t, ok
}

// TableByName finds a table by family name, case-insensitively.
func (r *Registry) TableByName(name string) (*CodeTable, bool) {
	for _, t := range r.tables {
		if strings.EqualFold(t.name, strings.TrimSpace(name)) {
			return t, true
		}
	}
	return nil, false
}

// Key returns the enum-style event name, or "" for unknown codes.
func (r *Registry) Key(group models.TypeGroup, code int) string {
	t, ok := r.tables[group]
	if !ok {
		return ""
	}
	e, ok := t.Lookup(code)
	if !ok {
		return ""
	}
	return e.Key
}

// Description returns the human readable event text, or "" for unknown codes.
func (r *Registry) Description(group models.TypeGroup, code int) string {
	t, ok := r.tables[group]
	if !ok {
		return ""
	}
	e, ok := t.Lookup(code)
	if !ok {
		return ""
	}
	return e.Description
}
