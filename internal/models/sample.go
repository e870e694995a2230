// Package models contains domain types for the Equipment Event & Trend Engine.
package models

import "time"

// Quality is the historian quality flag attached to a sample.
type Quality string

const (
	QualityGood      Quality = "Good"
	QualityBad       Quality = "Bad"
	QualityUncertain Quality = "Uncertain"
)

// ParseQuality maps a historian quality string onto a Quality.
// Empty input is treated as Good.
func ParseQuality(s string) Quality {
	switch s {
	case "", "Good", "good", "GOOD":
		return QualityGood
	case "Bad", "bad", "BAD":
		return QualityBad
	default:
		return QualityUncertain
	}
}

// Sample is one raw value read from a trend tag.
type Sample struct {
	Time    time.Time `json:"time" msgpack:"t"`
	Value   float64   `json:"value" msgpack:"v"`
	Quality Quality   `json:"quality" msgpack:"q"`
}

// TimeRange represents a time window.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}
