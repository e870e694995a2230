package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TypeGroup is the normalized equipment category that selects a decode table.
type TypeGroup int

const (
	GroupAll TypeGroup = iota
	GroupVGA
	GroupVGAEL
	GroupVGD
	GroupMotor
	GroupAI
	GroupDI
	GroupDO
	GroupAtv
)

var typeGroupNames = [...]string{"All", "VGA", "VGA_EL", "VGD", "Motor", "AI", "DI", "DO", "Atv"}

// AllTypeGroups lists every group, All first.
func AllTypeGroups() []TypeGroup {
	return []TypeGroup{GroupAll, GroupVGA, GroupVGAEL, GroupVGD, GroupMotor, GroupAI, GroupDI, GroupDO, GroupAtv}
}

func (g TypeGroup) String() string {
	if g < 0 || int(g) >= len(typeGroupNames) {
		return typeGroupNames[GroupAll]
	}
	return typeGroupNames[g]
}

// ParseTypeGroup accepts a group name ("AI", "vga_el", ...). Unknown names fail.
func ParseTypeGroup(s string) (TypeGroup, error) {
	s = strings.TrimSpace(s)
	for i, name := range typeGroupNames {
		if strings.EqualFold(name, s) {
			return TypeGroup(i), nil
		}
	}
	return GroupAll, fmt.Errorf("unknown type group: %q", s)
}

func (g TypeGroup) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.String())
}

func (g *TypeGroup) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTypeGroup(s)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// EquipmentRef describes one piece of plant equipment as seen by the SOE walk.
type EquipmentRef struct {
	Name        string `json:"name"`
	TagName     string `json:"tagName,omitempty"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	TrendTag    string `json:"trendTag"`
}

// EquipmentModel is a main equipment plus the equipment it references.
type EquipmentModel struct {
	Main *EquipmentRef  `json:"main"`
	Refs []EquipmentRef `json:"refs"`
}

// EquipmentListItem is a row of the equipment list.
type EquipmentListItem struct {
	Equipment string    `json:"equipment"`
	Tag       string    `json:"tag"`
	Type      string    `json:"type"`
	Station   string    `json:"station"`
	Group     TypeGroup `json:"group"`
	Color     string    `json:"color"`
}
