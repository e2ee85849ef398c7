package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mpalmer/dmgo/dmg/addr"
)

func TestBus_EchoRAMMirrorsWRAM(t *testing.T) {
	b := NewBus(NewCartridge(), nil, nil)

	b.Write(0xC010, 0x42)
	assert.Equal(t, byte(0x42), b.Read(0xE010))

	b.Write(0xE020, 0x99)
	assert.Equal(t, byte(0x99), b.Read(0xC020))
}

func TestBus_BootROMOverlayThenPermanentDisable(t *testing.T) {
	bootROM := make([]byte, 0x100)
	bootROM[0] = 0xAB

	cart := NewCartridgeWithData(make([]byte, 0x8000))
	cart.data[0] = 0xCD

	b := NewBus(cart, bootROM, nil)
	assert.Equal(t, byte(0xAB), b.Read(0x0000))

	b.Write(addr.BootDisable, 0x01)
	assert.Equal(t, byte(0xCD), b.Read(0x0000))

	// Disabling is one-way: further writes to BootDisable don't re-enable it.
	b.Write(addr.BootDisable, 0x00)
	assert.Equal(t, byte(0xCD), b.Read(0x0000))
}

func TestBus_WordAccessIsLittleEndian(t *testing.T) {
	b := NewBus(NewCartridge(), nil, nil)

	b.WriteWord(0xC100, 0x1234)
	assert.Equal(t, byte(0x34), b.Read(0xC100))
	assert.Equal(t, byte(0x12), b.Read(0xC101))
	assert.Equal(t, uint16(0x1234), b.ReadWord(0xC100))
}

func TestBus_ProhibitedRegionReadsFFAndIgnoresWrites(t *testing.T) {
	b := NewBus(NewCartridge(), nil, nil)
	b.Write(0xFEA0, 0x55)
	assert.Equal(t, byte(0xFF), b.Read(0xFEA0))
}

func TestBus_DMACopiesIntoOAM(t *testing.T) {
	b := NewBus(NewCartridge(), nil, nil)
	for i := uint16(0); i < 0xA0; i++ {
		b.wram[i] = byte(i)
	}
	b.Write(addr.DMA, 0xC0) // source 0xC000

	assert.Equal(t, byte(0x00), b.gpu.ReadOAM(addr.OAMStart))
	assert.Equal(t, byte(0x01), b.gpu.ReadOAM(addr.OAMStart+1))
}

func TestBus_IFReadsWithUpperBitsSet(t *testing.T) {
	b := NewBus(NewCartridge(), nil, nil)
	b.Write(addr.IF, 0x01)
	assert.Equal(t, byte(0xE1), b.Read(addr.IF))
}

func TestBus_TimerInterruptReachesIF(t *testing.T) {
	b := NewBus(NewCartridge(), nil, nil)
	b.Write(addr.TAC, 0x05) // enabled, period 16
	b.Write(addr.TIMA, 0xFF)
	b.Write(addr.TMA, 0x10)

	b.Tick(16)

	assert.Equal(t, byte(0x10), b.Read(addr.TIMA))
	assert.NotZero(t, b.Read(addr.IF)&byte(addr.TimerInterrupt))
}
