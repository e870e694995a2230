package trend

import "math"

// MapToBase rescales raw from its native range onto the base axis.
// Values outside the native range saturate at the base bounds.
func MapToBase(raw, fromMin, fromMax, baseMin, baseMax float64) float64 {
	span := fromMax - fromMin
	if math.Abs(span) < 1e-12 {
		return baseMin
	}

	t := (raw - fromMin) / span
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return baseMin + t*(baseMax-baseMin)
}

func ordered(a, b float64) (float64, float64) {
	if a > b {
		return b, a
	}
	return a, b
}
