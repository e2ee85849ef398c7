// Package audio accepts writes to the sound registers without synthesizing
// anything, per the core's explicit non-goal of audio output. Registers
// still read back what was last written so polling code doesn't stall.
package audio

import "github.com/mpalmer/dmgo/dmg/addr"

// Unit stores the APU register file inertly.
type Unit struct {
	regs [addr.AudioEnd - addr.AudioStart + 1]byte
}

// NewUnit returns an Unit with NR52 reporting the APU as powered off.
func NewUnit() *Unit {
	return &Unit{}
}

func (u *Unit) Read(address uint16) byte {
	if address < addr.AudioStart || address > addr.AudioEnd {
		return 0xFF
	}
	return u.regs[address-addr.AudioStart]
}

func (u *Unit) Write(address uint16, value byte) {
	if address < addr.AudioStart || address > addr.AudioEnd {
		return
	}
	u.regs[address-addr.AudioStart] = value
}
