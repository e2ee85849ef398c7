package memory

import (
	"github.com/mpalmer/dmgo/dmg/addr"
	"github.com/mpalmer/dmgo/dmg/bit"
)

// JoypadKey is one of the eight physical Game Boy input lines.
type JoypadKey uint8

const (
	JoypadRight JoypadKey = iota
	JoypadLeft
	JoypadUp
	JoypadDown
	JoypadA
	JoypadB
	JoypadSelect
	JoypadStart
)

// Joypad implements the P1 (0xFF00) nibble-select nibble-read latch.
// buttons/dpad bits are active-low: 0 = pressed, 1 = released, as on
// real hardware.
type Joypad struct {
	buttons uint8 // bit0=A bit1=B bit2=Select bit3=Start
	dpad    uint8 // bit0=Right bit1=Left bit2=Up bit3=Down

	selection uint8 // bits 4-5 of P1, as last written

	// RequestInterrupt is called when any line transitions released->pressed.
	RequestInterrupt func(addr.Interrupt)
}

// NewJoypad returns a Joypad with all eight lines released.
func NewJoypad() *Joypad {
	return &Joypad{buttons: 0x0F, dpad: 0x0F}
}

// Write latches only the selection nibble (bits 4-5); all other bits are
// ignored on write.
func (j *Joypad) Write(value uint8) {
	j.selection = value & 0b0011_0000
}

// Read returns the full P1 byte: bits 6-7 fixed high, the selection nibble
// as last written, and the active-low result nibble.
func (j *Joypad) Read() uint8 {
	selectDpad := !bit.IsSet(4, j.selection)
	selectButtons := !bit.IsSet(5, j.selection)

	var result uint8
	switch {
	case selectButtons && selectDpad:
		result = j.buttons & j.dpad & 0x0F
	case selectButtons:
		result = j.buttons & 0x0F
	case selectDpad:
		result = j.dpad & 0x0F
	default:
		result = 0x0F
	}

	return 0b1100_0000 | j.selection | result
}

// Press marks key as held, requesting the Joypad interrupt on a
// released-to-pressed transition. The interrupt fires on the physical
// line itself, independent of which nibble P1 currently selects.
func (j *Joypad) Press(key JoypadKey) {
	wasReleased := j.lineValue(key) == 1
	j.setLine(key, false)

	if wasReleased && j.RequestInterrupt != nil {
		j.RequestInterrupt(addr.JoypadInterrupt)
	}
}

func (j *Joypad) lineValue(key JoypadKey) uint8 {
	switch key {
	case JoypadRight:
		return (j.dpad >> 0) & 1
	case JoypadLeft:
		return (j.dpad >> 1) & 1
	case JoypadUp:
		return (j.dpad >> 2) & 1
	case JoypadDown:
		return (j.dpad >> 3) & 1
	case JoypadA:
		return (j.buttons >> 0) & 1
	case JoypadB:
		return (j.buttons >> 1) & 1
	case JoypadSelect:
		return (j.buttons >> 2) & 1
	case JoypadStart:
		return (j.buttons >> 3) & 1
	default:
		return 1
	}
}

// Release marks key as released.
func (j *Joypad) Release(key JoypadKey) {
	j.setLine(key, true)
}

func (j *Joypad) setLine(key JoypadKey, released bool) {
	switch key {
	case JoypadRight:
		j.dpad = bit.SetTo(0, j.dpad, released)
	case JoypadLeft:
		j.dpad = bit.SetTo(1, j.dpad, released)
	case JoypadUp:
		j.dpad = bit.SetTo(2, j.dpad, released)
	case JoypadDown:
		j.dpad = bit.SetTo(3, j.dpad, released)
	case JoypadA:
		j.buttons = bit.SetTo(0, j.buttons, released)
	case JoypadB:
		j.buttons = bit.SetTo(1, j.buttons, released)
	case JoypadSelect:
		j.buttons = bit.SetTo(2, j.buttons, released)
	case JoypadStart:
		j.buttons = bit.SetTo(3, j.buttons, released)
	}
}
