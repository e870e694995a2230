package models

import (
	"encoding/json"
	"time"
)

// TrendMode is the navigation state of a trend view.
type TrendMode int

const (
	ModeLive TrendMode = iota
	ModeHistory
)

func (m TrendMode) String() string {
	if m == ModeHistory {
		return "history"
	}
	return "live"
}

func (m TrendMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// TrendPoint is one plotted sample. Value is on the shared base axis,
// RawValue is what the historian returned.
type TrendPoint struct {
	Series   string    `json:"series" msgpack:"s"`
	Time     time.Time `json:"time" msgpack:"t"`
	Value    float64   `json:"value" msgpack:"v"`
	RawValue float64   `json:"rawValue" msgpack:"r"`
}

// TrendAxisState holds the chart axes.
type TrendAxisState struct {
	VisualMin time.Time `json:"visualMin"`
	VisualMax time.Time `json:"visualMax"`
	WholeMin  time.Time `json:"wholeMin"`
	WholeMax  time.Time `json:"wholeMax"`
	YMin      float64   `json:"yMin"`
	YMax      float64   `json:"yMax"`
	Live      bool      `json:"isLiveMode"`
}
