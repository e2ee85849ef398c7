package video

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mpalmer/dmgo/dmg/addr"
)

func newTestGPU() (*GPU, *[]addr.Interrupt) {
	fired := []addr.Interrupt{}
	g := NewGPU(func(i addr.Interrupt) { fired = append(fired, i) })
	g.WriteRegister(addr.LCDC, 0x80) // LCD on, everything else off
	return g, &fired
}

func TestGPU_ModeSequencePerLine(t *testing.T) {
	g, _ := newTestGPU()
	assert.Equal(t, ModeOAM, g.mode)

	g.Tick(oamScanCycles - 1)
	assert.Equal(t, ModeOAM, g.mode)
	g.Tick(1)
	assert.Equal(t, ModeDraw, g.mode)

	g.Tick(drawCycles)
	assert.Equal(t, ModeHBlank, g.mode)

	g.Tick(hblankCycles)
	assert.Equal(t, ModeOAM, g.mode)
	assert.Equal(t, byte(1), g.LY)
}

func TestGPU_VBlankFiresAtLine144(t *testing.T) {
	g, fired := newTestGPU()
	for line := 0; line < Height; line++ {
		g.Tick(lineCycles)
	}
	assert.Equal(t, ModeVBlank, g.mode)
	assert.Equal(t, byte(144), g.LY)
	assert.Contains(t, *fired, addr.VBlankInterrupt)
	assert.True(t, g.FrameReady)
}

func TestGPU_FullFrameWrapsLYToZero(t *testing.T) {
	g, _ := newTestGPU()
	totalLines := Height + vblankLines
	for line := 0; line < totalLines; line++ {
		g.Tick(lineCycles)
	}
	assert.Equal(t, byte(0), g.LY)
	assert.Equal(t, ModeOAM, g.mode)
}

func TestGPU_BackgroundTileRenders(t *testing.T) {
	g, _ := newTestGPU()
	g.WriteRegister(addr.LCDC, 0x91)         // LCD on, BG tile data at 0x8000, BG on
	g.WriteRegister(addr.BGP, 0b11_10_01_00) // identity-ish mapping per index

	// Tile 0: every pixel color index 3 (both bitplanes all 1s).
	for row := 0; row < 8; row++ {
		g.WriteVRAM(0x8000+uint16(row*2), 0xFF)
		g.WriteVRAM(0x8000+uint16(row*2)+1, 0xFF)
	}
	// Tile map entry (0,0) = tile 0 (already zero-valued in VRAM by default).

	g.Tick(oamScanCycles)
	g.Tick(drawCycles)

	r, gr, b := g.FrameBuffer.At(0, 0)
	assert.Equal(t, byte(0), r)
	assert.Equal(t, byte(0), gr)
	assert.Equal(t, byte(0), b)
}

func TestGPU_STATCoincidenceInterrupt(t *testing.T) {
	g, fired := newTestGPU()
	g.WriteRegister(addr.STAT, 0x40) // LYC=LY interrupt enable
	g.WriteRegister(addr.LYC, 0)
	*fired = (*fired)[:0]
	g.checkLYC()
	assert.Contains(t, *fired, addr.LCDSTATInterrupt)
}

func TestGPU_FixedLYReadsConstant(t *testing.T) {
	g, _ := newTestGPU()
	g.Tick(lineCycles * 5)
	assert.Equal(t, byte(5), g.ReadRegister(addr.LY))

	g.FixedLY = true
	assert.Equal(t, byte(0x90), g.ReadRegister(addr.LY))
}

func TestGPU_DisablingLCDResetsLine(t *testing.T) {
	g, _ := newTestGPU()
	g.Tick(lineCycles * 3)
	g.WriteRegister(addr.LCDC, 0x00)
	assert.Equal(t, byte(0), g.LY)
	assert.Equal(t, ModeHBlank, g.mode)
}
