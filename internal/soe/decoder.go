// Package soe turns equipment status-word trends into a Sequence of Events.
package soe

import "math"

// NoChange is returned by ChangedBitCode when the two words are identical.
const NoChange = -99

// ChangedBitCode reports the lowest-order bit that differs between last and cur.
// A bit that is now set yields 1..16, a bit that is now clear yields 17..32.
// When several bits flip at once only the lowest one is reported.
func ChangedBitCode(last, cur uint16) int {
	diff := cur ^ last
	if diff == 0 {
		return NoChange
	}

	pos := 0
	for i := 0; i < 16; i++ {
		if diff&(1<<i) != 0 {
			pos = i + 1
			break
		}
	}

	if cur&(1<<(pos-1)) != 0 {
		return pos
	}
	return pos + 16
}

// ToWord converts a historian value to an integer status word,
// rounding half away from zero.
func ToWord(v float64) int64 {
	return int64(math.Round(v))
}
