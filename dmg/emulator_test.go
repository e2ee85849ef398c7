package dmg

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mpalmer/dmgo/dmg/memory"
)

// tightLoopROM is a cartridge whose entry point (0x100) jumps to a tiny
// infinite loop, enough to drive RunUntilFrame without halting on an
// undefined opcode.
func tightLoopROM() []byte {
	rom := make([]byte, 0x8000)
	// 0x100: JP 0x150
	rom[0x100] = 0xC3
	rom[0x101] = 0x50
	rom[0x102] = 0x01
	// 0x150: JR -2 (spin forever)
	rom[0x150] = 0x18
	rom[0x151] = 0xFE
	return rom
}

func TestEmulator_RunUntilFrameAdvancesFrameCount(t *testing.T) {
	e := newEmulator(memory.NewCartridgeWithData(tightLoopROM()), nil)
	e.cpu.PC = 0x100

	err := e.RunUntilFrame()
	assert.NoError(t, err)
	assert.Equal(t, uint64(1), e.FrameCount())
	assert.True(t, e.InstructionCount() > 0)
}

func TestEmulator_KeyPressReachesJoypad(t *testing.T) {
	e := newEmulator(memory.NewCartridgeWithData(tightLoopROM()), nil)
	e.HandleKeyPress(memory.JoypadA)

	assert.Equal(t, byte(0x0E), e.Bus().Joypad().Read()&0x0F)
}

func TestEmulator_UndefinedOpcodeSurfacesAsError(t *testing.T) {
	rom := make([]byte, 0x8000)
	rom[0x100] = 0xD3 // undefined
	e := newEmulator(memory.NewCartridgeWithData(rom), nil)
	e.cpu.PC = 0x100

	err := e.RunUntilFrame()
	assert.Error(t, err)
}
