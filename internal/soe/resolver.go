package soe

import (
	"strings"

	"github.com/techequipments/engine/internal/models"
)

type typeEntry struct {
	group models.TypeGroup
	table *CodeTable
}

// typeRegistry maps lower-cased raw equipment types to their group and table.
var typeRegistry = map[string]typeEntry{
	"digitalin":    {models.GroupDI, diCodes},
	"digitalout":   {models.GroupDO, doCodes},
	"motor":        {models.GroupMotor, motorCodes},
	"analogin":     {models.GroupAI, aiCodes},
	"analogincalc": {models.GroupAI, aiCodes},
	"valvea":       {models.GroupVGA, aoCodes},
	"valvea_el":    {models.GroupVGAEL, vgaElCodes},
	"valved":       {models.GroupVGD, vgdCodes},
	"atv":          {models.GroupAtv, atvCodes},
}

func lookupType(raw string) (typeEntry, bool) {
	e, ok := typeRegistry[strings.ToLower(strings.TrimSpace(raw))]
	return e, ok
}

// ResolveGroup maps a raw equipment type ("AnalogIn", " motor ") to its group.
// Unknown or empty input resolves to GroupAll.
func ResolveGroup(raw string) models.TypeGroup {
	if e, ok := lookupType(raw); ok {
		return e.group
	}
	return models.GroupAll
}

// RawTypes returns the raw type strings known to the resolver.
func RawTypes() []string {
	return []string{"DigitalIn", "DigitalOut", "Motor", "AnalogIn", "AnalogInCalc", "ValveA", "ValveA_EL", "ValveD", "Atv"}
}

// EventText returns the event description for a bit code of the given raw type.
func EventText(raw string, code int) string {
	e, ok := lookupType(raw)
	if !ok {
		return ""
	}
	ec, ok := e.table.Lookup(code)
	if !ok {
		return ""
	}
	return ec.Description
}

// EventKey returns the enum-style event name for a bit code of the given raw type.
func EventKey(raw string, code int) string {
	e, ok := lookupType(raw)
	if !ok {
		return ""
	}
	ec, ok := e.table.Lookup(code)
	if !ok {
		return ""
	}
	return ec.Key
}
