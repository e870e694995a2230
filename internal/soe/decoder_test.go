package soe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChangedBitCode_Equal(t *testing.T) {
	for _, w := range []uint16{0, 1, 12, 0x8000, 0xFFFF} {
		assert.Equal(t, NoChange, ChangedBitCode(w, w), "word %#x", w)
	}
}

func TestChangedBitCode_SingleBit(t *testing.T) {
	for b := 0; b < 16; b++ {
		bit := uint16(1) << b

		// 0 -> 1
		assert.Equal(t, b+1, ChangedBitCode(0, bit), "bit %d set", b)
		assert.Equal(t, b+1, ChangedBitCode(0xFFFF&^bit, 0xFFFF), "bit %d set on full word", b)

		// 1 -> 0
		assert.Equal(t, b+17, ChangedBitCode(bit, 0), "bit %d cleared", b)
		assert.Equal(t, b+17, ChangedBitCode(0xFFFF, 0xFFFF&^bit), "bit %d cleared on full word", b)
	}
}

func TestChangedBitCode_LowestBitWins(t *testing.T) {
	tests := []struct {
		name      string
		last, cur uint16
		want      int
	}{
		{"bits 0 and 3 set", 0b0000, 0b1001, 1},
		{"bit 2 cleared and bit 5 set", 0b000100, 0b100000, 19},
		{"twelve to thirteen", 12, 13, 1},
		{"thirteen to twelve", 13, 12, 17},
		{"high bit only", 0x0000, 0x8000, 16},
		{"high bit cleared", 0x8000, 0x0000, 32},
		{"all bits flip", 0x0000, 0xFFFF, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChangedBitCode(tt.last, tt.cur))
		})
	}
}

func TestChangedBitCode_Range(t *testing.T) {
	// exhaustive over a slice of pairs; every result is NoChange or within 1..32
	for last := 0; last < 1<<16; last += 257 {
		for cur := 0; cur < 1<<16; cur += 263 {
			code := ChangedBitCode(uint16(last), uint16(cur))
			if last == cur {
				assert.Equal(t, NoChange, code)
				continue
			}
			assert.True(t, code >= 1 && code <= 32, "code %d for %#x -> %#x", code, last, cur)
		}
	}
}

func TestToWord(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{0, 0},
		{12.4, 12},
		{12.5, 13},
		{13.5, 14},
		{-0.5, -1},
		{-2.5, -3},
		{65535.49, 65535},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToWord(tt.in), "ToWord(%v)", tt.in)
	}
}
