// Package cpu implements the SM83 fetch-decode-execute engine: register
// file, bit-structured instruction decoder, flag-exact execution, interrupt
// dispatch and HALT handling.
package cpu

import "github.com/mpalmer/dmgo/dmg/addr"

// Bus is the memory-mapped interface the CPU reaches the rest of the
// console through. The concrete implementation lives in dmg/memory.
type Bus interface {
	Read(address uint16) byte
	Write(address uint16, value byte)
}

// CPU is the SM83 processor: register file, program counter, stack
// pointer, interrupt master enable and halt state, wired to a Bus.
type CPU struct {
	Registers

	PC uint16
	SP uint16

	bus Bus

	ime      bool
	imeDelay int // counts down to 0 before ime becomes true; 0 = no pending EI

	Halted bool
}

// New returns a freshly reset CPU wired to bus.
func New(bus Bus) *CPU {
	return &CPU{bus: bus}
}

// Step executes one instruction (or services a pending interrupt, or idles
// one HALT tick) and returns the number of T-cycles consumed. A non-nil
// error is only ever a *DecodeError surfaced from an undefined opcode.
func (c *CPU) Step() (int, error) {
	pending := c.pendingInterrupts()

	if c.ime && pending != 0 {
		return c.serviceInterrupt(pending), nil
	}

	if c.Halted {
		if pending != 0 {
			c.Halted = false
		} else {
			return 4, nil
		}
	}

	instr, err := Decode(func(offset uint16) byte { return c.bus.Read(c.PC + offset) })
	if err != nil {
		return 0, err
	}

	c.PC += uint16(instr.Length)
	cycles := c.execute(instr)

	if c.imeDelay > 0 {
		c.imeDelay--
		if c.imeDelay == 0 {
			c.ime = true
		}
	}

	return cycles, nil
}

func (c *CPU) pendingInterrupts() uint8 {
	ie := c.bus.Read(addr.IE)
	iflag := c.bus.Read(addr.IF)
	return ie & iflag & 0x1F
}

// serviceInterrupt dispatches the highest-priority pending interrupt and
// returns its fixed 20-cycle cost.
func (c *CPU) serviceInterrupt(pending uint8) int {
	c.ime = false
	c.Halted = false

	for _, irq := range addr.Priority {
		if pending&uint8(irq) == 0 {
			continue
		}
		iflag := c.bus.Read(addr.IF)
		c.bus.Write(addr.IF, iflag&^uint8(irq))
		c.push(c.PC)
		c.PC = irq.Vector()
		return 20
	}

	return 20
}

func (c *CPU) push(v uint16) {
	c.SP--
	c.bus.Write(c.SP, byte(v>>8))
	c.SP--
	c.bus.Write(c.SP, byte(v))
}

func (c *CPU) pop() uint16 {
	low := c.bus.Read(c.SP)
	c.SP++
	high := c.bus.Read(c.SP)
	c.SP++
	return uint16(high)<<8 | uint16(low)
}

// IME reports the current interrupt master enable state.
func (c *CPU) IME() bool { return c.ime }

// SetIME forces the interrupt master enable flag, bypassing the EI delay.
// Used by tests seeding CPU state.
func (c *CPU) SetIME(on bool) {
	c.ime = on
	c.imeDelay = 0
}
