package trend

import "github.com/techequipments/engine/internal/models"

// FieldKind is the value type of a parameter model field.
type FieldKind int

const (
	KindBool FieldKind = iota
	KindInt
	KindLong
	KindUint
	KindDouble
	KindString
)

var fieldKindNames = [...]string{"bool", "int", "long", "uint", "double", "string"}

func (k FieldKind) String() string {
	if k < 0 || int(k) >= len(fieldKindNames) {
		return "unknown"
	}
	return fieldKindNames[k]
}

// Field describes one property of a parameter model.
type Field struct {
	Name string    `json:"name"`
	Kind FieldKind `json:"-"`
	Type string    `json:"type"`
}

// ParamModel is the ordered field list of one parameter model.
type ParamModel struct {
	Name   string
	Fields []Field
}

func fields(kind FieldKind, names ...string) []Field {
	out := make([]Field, len(names))
	for i, n := range names {
		out[i] = Field{Name: n, Kind: kind, Type: kind.String()}
	}
	return out
}

func model(name string, groups ...[]Field) ParamModel {
	m := ParamModel{Name: name}
	for _, g := range groups {
		m.Fields = append(m.Fields, g...)
	}
	return m
}

var paramModels = map[models.TypeGroup]ParamModel{
	models.GroupAI: model("AI",
		fields(KindBool, "AlarmLAEn", "AlarmLWEn", "AlarmHWEn", "AlarmHAEn", "ForceCmd", "NotTripLow", "NotTripHigh", "RealVar", "AlarmLA", "AlarmLW", "AlarmHW", "AlarmHA", "AlarmA", "Shunt", "AlarmW", "AlarmHealth"),
		fields(KindInt, "STW"),
		fields(KindDouble, "Min", "Max", "MinR", "MaxR", "Flt", "Coef", "Value", "Hmi", "HmiTrue", "HmiForced", "SetLA", "SetLW", "SetHW", "SetHA", "SetHyst", "R"),
		fields(KindUint, "HashCode"),
		fields(KindString, "Unit"),
	),
	models.GroupAtv: model("ATV",
		fields(KindBool, "Mode", "AlarmLAEn", "AlarmLWEn", "AlarmHWEn", "AlarmHAEn", "ForceCmd", "AlarmLA", "AlarmLW", "AlarmHW", "AlarmHA", "AlarmA", "AlarmW", "AlarmHealth", "Run", "AlarmEn", "Alarm", "Start", "StopType"),
		fields(KindInt, "STW01", "STW02"),
		fields(KindDouble, "OutMin", "OutMax", "NMax", "NHmi", "IHmi", "RpmHmi", "FHmi", "THmi", "IL1R", "Nsp", "Cli", "RemoteSet", "RemoteAcc", "RemoteDec", "LocalSet", "LocalAcc", "LocalDec", "Man", "ManTrue", "ManForced", "SetLA", "SetLW", "SetHW", "SetHA", "SetHyst", "R"),
		fields(KindUint, "HashCode"),
	),
	models.GroupDI: model("DI",
		fields(KindBool, "Value", "ValueTrue", "ValueForced", "ForceCmd", "AlarmHealth", "NotTrip", "Shunt"),
		fields(KindInt, "STW"),
		fields(KindUint, "HashCode"),
	),
	models.GroupMotor: model("Motor",
		fields(KindBool, "Mode", "Auto", "Man", "AlarmAEn", "AlarmA", "TimeWorkAlarmW", "TimeWorkAlarmWAck", "TimeReset", "On", "NotTrip"),
		fields(KindInt, "STW", "State"),
		fields(KindDouble, "TimeWarn", "TimeSet", "TimeHmi"),
		fields(KindLong, "TimeWork"),
		fields(KindUint, "HashCode"),
	),
	models.GroupVGA: model("VGA",
		fields(KindBool, "Mode", "AlarmLAEn", "AlarmLWEn", "AlarmHWEn", "AlarmHAEn", "ForceCmd", "AlarmLA", "AlarmLW", "AlarmHW", "AlarmHA", "AlarmA", "AlarmW", "AlarmHealth"),
		fields(KindInt, "STW"),
		fields(KindDouble, "Min", "Max", "MinR", "MaxR", "OutMin", "OutMax", "Value", "Man", "ManTrue", "ManForced", "SetLA", "SetLW", "SetHW", "SetHA", "SetHyst", "R"),
		fields(KindUint, "HashCode"),
	),
	models.GroupVGAEL: model("VGA_El",
		fields(KindBool, "Mode", "OpenCmd", "CloseCmd", "AlarmEn", "Alarm", "SQEn", "ActuatorEn", "Opened", "Closed", "OpenAl", "CloseAl"),
		fields(KindInt, "State"),
		fields(KindDouble, "Man", "CurrPos", "TimeOpening", "OutMin", "OutMax", "R"),
		fields(KindLong, "STW"),
		fields(KindUint, "HashCode"),
	),
	models.GroupVGD: model("VGD",
		fields(KindBool, "Mode", "Auto", "Man", "AlarmEn", "AlarmA", "AlarmOpen", "AlarmClose", "Opened", "Closed", "Dcs", "NotTrip"),
		fields(KindInt, "STW", "State", "TOpen", "TClose"),
		fields(KindUint, "HashCode"),
	),
}

// ModelFor returns the parameter model of a group. DO and All have none.
func ModelFor(group models.TypeGroup) (ParamModel, bool) {
	m, ok := paramModels[group]
	return m, ok
}

// Fields returns the ordered fields of the group's parameter model, or nil.
func Fields(group models.TypeGroup) []Field {
	m, ok := paramModels[group]
	if !ok {
		return nil
	}
	out := make([]Field, len(m.Fields))
	copy(out, m.Fields)
	return out
}

// HasField reports whether the group's model declares name.
func HasField(group models.TypeGroup, name string) bool {
	for _, f := range paramModels[group].Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}
