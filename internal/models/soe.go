package models

import "time"

// EventRecord is one detected single-bit transition of an equipment status word.
// BitCode is -99 when the low 16 bits did not change.
type EventRecord struct {
	TimeUtc      time.Time `json:"timeUtc" msgpack:"timeUtc"`
	TypeGroup    TypeGroup `json:"typeGroup" msgpack:"typeGroup"`
	Equipment    string    `json:"equipment" msgpack:"equipment"`
	TrnValue     float64   `json:"trnValue" msgpack:"trnValue"`
	BitCode      int       `json:"bitCode" msgpack:"bitCode"`
	Event        string    `json:"event" msgpack:"event"`       // description shown to operators
	EventKey     string    `json:"eventKey" msgpack:"eventKey"` // enum-style name used for colouring
	ValueQuality Quality   `json:"valueQuality" msgpack:"valueQuality"`
}

// LoadingProgress reports how far an aggregated SOE extraction has got.
type LoadingProgress struct {
	TotalTrends       int    `json:"totalTrends"`
	CurrentTrendIndex int    `json:"currentTrendIndex"`
	CurrentTrendName  string `json:"currentTrendName"`
	CurrentTrendCount int    `json:"currentTrendCount"`
	TotalLoaded       int    `json:"totalLoaded"`
}

// SoeResult is the outcome of one aggregated extraction.
type SoeResult struct {
	Equipment    string        `json:"equipment"`
	Records      []EventRecord `json:"records"`
	Trends       []string      `json:"trends"`
	StoppedOnBad []string      `json:"stoppedOnBad,omitempty"`
	Truncated    bool          `json:"truncated"`
	ElapsedMs    int64         `json:"elapsedMs"`
}
