package soe

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/techequipments/engine/internal/models"
)

// Color is an RGBA cell colour. The zero value is transparent.
type Color struct {
	R, G, B, A uint8
}

// Transparent is used for groups and events without a colour.
var Transparent = Color{}

func rgb(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// Hex renders the colour as #RRGGBB, or "transparent".
func (c Color) Hex() string {
	if c.A == 0 {
		return "transparent"
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Hex())
}

var groupPalette = map[models.TypeGroup]Color{
	models.GroupVGA:   rgb(159, 223, 191),
	models.GroupVGD:   rgb(223, 191, 159),
	models.GroupMotor: rgb(229, 229, 229),
	models.GroupAI:    rgb(191, 223, 159),
	models.GroupDI:    rgb(170, 255, 255),
	models.GroupDO:    rgb(191, 211, 234),
	models.GroupAtv:   rgb(255, 213, 170),
}

// GroupColor returns the list cell colour of a type group.
func GroupColor(group models.TypeGroup) Color {
	if c, ok := groupPalette[group]; ok {
		return c
	}
	return Transparent
}

// EventClass is the colour class of an event key.
type EventClass string

const (
	ClassNone      EventClass = ""
	ClassGray      EventClass = "gray"
	ClassBlue      EventClass = "blue"
	ClassLightBlue EventClass = "lightblue"
	ClassGreen     EventClass = "green"
	ClassYellow    EventClass = "yellow"
	ClassRed       EventClass = "red"
)

var classColors = map[EventClass]Color{
	ClassGray:      rgb(224, 224, 224),
	ClassBlue:      rgb(187, 222, 251),
	ClassLightBlue: rgb(200, 240, 255),
	ClassGreen:     rgb(200, 230, 201),
	ClassYellow:    rgb(255, 244, 179),
	ClassRed:       rgb(255, 199, 199),
}

// Keys are stored upper-cased.
var (
	lightBlueKeys = set("VALUE_TRUE_On", "VALUE_FORCED_On", "FORCE_CMD_On")
	greenKeys     = set("MODE_Auto", "VALUE_On", "CMD_On", "MAN_On")
	yellowKeys    = set("AL_LW_Up", "AL_HW_Up", "AL_W_Up", "T_WORK_AL_On")
	redKeys       = set("AL_LA_Up", "AL_HA_Up", "AL_A_Up", "AL_HEALTH_Up", "AL_On")
)

func set(keys ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		m[strings.ToUpper(k)] = struct{}{}
	}
	return m
}

// ClassifyEvent returns the colour class for an enum-style event key.
// Rules are checked in order; the first match wins.
func ClassifyEvent(key string) EventClass {
	k := strings.ToUpper(strings.TrimSpace(key))
	if k == "" {
		return ClassNone
	}
	if strings.HasSuffix(k, "_OFF") || strings.HasSuffix(k, "_DOWN") || strings.HasSuffix(k, "_MAN") {
		return ClassGray
	}
	if strings.Contains(k, "_EN_ON") {
		return ClassBlue
	}
	if _, ok := lightBlueKeys[k]; ok {
		return ClassLightBlue
	}
	if _, ok := greenKeys[k]; ok {
		return ClassGreen
	}
	if _, ok := yellowKeys[k]; ok {
		return ClassYellow
	}
	if _, ok := redKeys[k]; ok {
		return ClassRed
	}
	return ClassNone
}

// EventColor returns the row colour for an event key.
func EventColor(key string) Color {
	if c, ok := classColors[ClassifyEvent(key)]; ok {
		return c
	}
	return Transparent
}
