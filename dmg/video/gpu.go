package video

import (
	"github.com/mpalmer/dmgo/dmg/addr"
	"github.com/mpalmer/dmgo/dmg/bit"
)

// Mode is the PPU's current scanline phase, numbered to match the value
// STAT's low two bits report.
type Mode uint8

const (
	ModeHBlank Mode = 0
	ModeVBlank Mode = 1
	ModeOAM    Mode = 2
	ModeDraw   Mode = 3
)

const (
	oamScanCycles = 80
	drawCycles    = 172
	hblankCycles  = 204
	lineCycles    = oamScanCycles + drawCycles + hblankCycles // 456
	vblankLines   = 10
)

// GPU is the scanline renderer: VRAM + OAM storage, a decoded tile cache,
// the LCDC/STAT/palette register file, and the mode state machine that
// composites background, window and sprites one scanline at a time.
type GPU struct {
	vram [0x2000]byte
	oam  [0xA0]byte

	tiles [384]Tile

	FrameBuffer *FrameBuffer
	FrameReady  bool

	// FixedLY makes LY read back as a constant 0x90. CPU-focused test
	// ROMs poll LY for VBlank instead of enabling the interrupt, and a
	// fixed 0x90 lets them run without frame synchronization.
	FixedLY bool

	mode          Mode
	lineCycleAcc  int
	LY            byte
	windowLine    int

	lcdc, stat         byte
	scy, scx           byte
	lyc                byte
	bgp, obp0, obp1    byte
	wy, wx             byte

	requestInterrupt func(addr.Interrupt)
}

// NewGPU returns a GPU powered on in OAM-scan mode at line 0.
func NewGPU(requestInterrupt func(addr.Interrupt)) *GPU {
	return &GPU{
		FrameBuffer:      NewFrameBuffer(),
		mode:             ModeOAM,
		requestInterrupt: requestInterrupt,
	}
}

// ConsumeFrame reports whether a frame completed since the last call,
// clearing the flag.
func (g *GPU) ConsumeFrame() bool {
	ready := g.FrameReady
	g.FrameReady = false
	return ready
}

func (g *GPU) lcdEnabled() bool { return bit.IsSet(7, g.lcdc) }

// Tick advances the PPU by cycles T-cycles, driving the mode state
// machine, rendering completed scanlines, and requesting VBlank/STAT
// interrupts at the appropriate transitions.
func (g *GPU) Tick(cycles int) {
	if !g.lcdEnabled() {
		return
	}

	g.lineCycleAcc += cycles
	for {
		switch g.mode {
		case ModeOAM:
			if g.lineCycleAcc < oamScanCycles {
				return
			}
			g.lineCycleAcc -= oamScanCycles
			g.setMode(ModeDraw)
		case ModeDraw:
			if g.lineCycleAcc < drawCycles {
				return
			}
			g.lineCycleAcc -= drawCycles
			g.renderScanline()
			g.setMode(ModeHBlank)
		case ModeHBlank:
			if g.lineCycleAcc < hblankCycles {
				return
			}
			g.lineCycleAcc -= hblankCycles
			g.advanceLine()
		case ModeVBlank:
			if g.lineCycleAcc < lineCycles {
				return
			}
			g.lineCycleAcc -= lineCycles
			g.advanceLine()
		}
	}
}

func (g *GPU) advanceLine() {
	g.LY++
	switch {
	case g.LY == Height:
		g.setMode(ModeVBlank)
		g.FrameReady = true
		if g.requestInterrupt != nil {
			g.requestInterrupt(addr.VBlankInterrupt)
		}
	case g.LY > Height+vblankLines-1:
		g.LY = 0
		g.windowLine = 0
		g.setMode(ModeOAM)
	case g.LY < Height:
		g.setMode(ModeOAM)
	}
	g.checkLYC()
}

func (g *GPU) setMode(m Mode) {
	g.mode = m
	enableBit := uint8(0xFF)
	switch m {
	case ModeHBlank:
		enableBit = 3
	case ModeVBlank:
		enableBit = 4
	case ModeOAM:
		enableBit = 5
	}
	if enableBit != 0xFF && bit.IsSet(enableBit, g.stat) && g.requestInterrupt != nil {
		g.requestInterrupt(addr.LCDSTATInterrupt)
	}
}

func (g *GPU) checkLYC() {
	if g.LY == g.lyc && bit.IsSet(6, g.stat) && g.requestInterrupt != nil {
		g.requestInterrupt(addr.LCDSTATInterrupt)
	}
}

// resolveTileIndex maps a tile-map byte to a cache slot, honoring LCDC's
// addressing-mode bit: unsigned indexing bases at 0x8000 (cache 0-255),
// signed indexing bases at 0x9000 (cache 256 + int8(tileNum)).
func (g *GPU) resolveTileIndex(tileNum byte, unsignedAddressing bool) int {
	if unsignedAddressing {
		return int(tileNum)
	}
	return 256 + int(int8(tileNum))
}

func applyPalette(palette, colorIndex byte) byte {
	return (palette >> (colorIndex * 2)) & 0x03
}

func (g *GPU) renderScanline() {
	y := int(g.LY)
	if y >= Height {
		return
	}

	var bgIndex [Width]uint8
	bgEnabled := bit.IsSet(0, g.lcdc)
	if bgEnabled {
		g.renderBackgroundLine(y, &bgIndex)
	}

	if bgEnabled && bit.IsSet(5, g.lcdc) {
		g.renderWindowLine(y, &bgIndex)
	}

	if bit.IsSet(1, g.lcdc) {
		g.renderSpritesLine(y, &bgIndex)
	}
}

func (g *GPU) renderBackgroundLine(y int, bgIndex *[Width]uint8) {
	tileMapBase := addr.TileMap0
	if bit.IsSet(3, g.lcdc) {
		tileMapBase = addr.TileMap1
	}
	unsignedAddressing := bit.IsSet(4, g.lcdc)

	scrolledY := (y + int(g.scy)) & 0xFF
	tileRow := scrolledY / 8
	fineY := scrolledY % 8

	for x := 0; x < Width; x++ {
		scrolledX := (x + int(g.scx)) & 0xFF
		tileCol := scrolledX / 8
		fineX := scrolledX % 8

		mapOffset := tileMapBase + uint16(tileRow*32+tileCol) - 0x8000
		tileNum := g.vram[mapOffset]
		tileIdx := g.resolveTileIndex(tileNum, unsignedAddressing)

		color := g.tiles[tileIdx][fineY][fineX]
		bgIndex[x] = color
		g.FrameBuffer.SetShade(x, y, applyPalette(g.bgp, color))
	}
}

func (g *GPU) renderWindowLine(y int, bgIndex *[Width]uint8) {
	wy := int(g.wy)
	if y < wy {
		return
	}
	wx := int(g.wx) - 7

	tileMapBase := addr.TileMap0
	if bit.IsSet(6, g.lcdc) {
		tileMapBase = addr.TileMap1
	}
	unsignedAddressing := bit.IsSet(4, g.lcdc)

	tileRow := g.windowLine / 8
	fineY := g.windowLine % 8

	drew := false
	for x := 0; x < Width; x++ {
		wPix := x - wx
		if wPix < 0 {
			continue
		}
		drew = true

		tileCol := wPix / 8
		fineX := wPix % 8

		mapOffset := tileMapBase + uint16(tileRow*32+tileCol) - 0x8000
		tileNum := g.vram[mapOffset]
		tileIdx := g.resolveTileIndex(tileNum, unsignedAddressing)

		color := g.tiles[tileIdx][fineY][fineX]
		bgIndex[x] = color
		g.FrameBuffer.SetShade(x, y, applyPalette(g.bgp, color))
	}
	if drew {
		g.windowLine++
	}
}

func (g *GPU) renderSpritesLine(y int, bgIndex *[Width]uint8) {
	tall := bit.IsSet(2, g.lcdc)
	height := 8
	if tall {
		height = 16
	}

	var spriteOwned [Width]bool
	drawn := 0
	for i := 0; i < 40 && drawn < 10; i++ {
		base := i * 4
		spriteY := int(g.oam[base]) - 16
		spriteX := int(g.oam[base+1]) - 8
		tileNum := g.oam[base+2]
		flags := g.oam[base+3]

		if y < spriteY || y >= spriteY+height {
			continue
		}
		drawn++

		yFlip := bit.IsSet(6, flags)
		xFlip := bit.IsSet(5, flags)
		behindBG := bit.IsSet(7, flags)
		palette := g.obp0
		if bit.IsSet(4, flags) {
			palette = g.obp1
		}

		row := y - spriteY
		if yFlip {
			row = height - 1 - row
		}
		tileIdx := int(tileNum)
		if tall {
			tileIdx &^= 1
			if row >= 8 {
				tileIdx++
				row -= 8
			}
		}

		for px := 0; px < 8; px++ {
			screenX := spriteX + px
			if screenX < 0 || screenX >= Width || spriteOwned[screenX] {
				continue
			}
			col := px
			if xFlip {
				col = 7 - px
			}
			color := g.tiles[tileIdx][row][col]
			if color == 0 {
				continue
			}
			spriteOwned[screenX] = true
			if behindBG && bgIndex[screenX] != 0 {
				continue
			}
			g.FrameBuffer.SetShade(screenX, y, applyPalette(palette, color))
		}
	}
}

// ReadVRAM/WriteVRAM accept addresses in 0x8000-0x9FFF.
func (g *GPU) ReadVRAM(address uint16) byte {
	return g.vram[address-0x8000]
}

func (g *GPU) WriteVRAM(address uint16, value byte) {
	offset := address - 0x8000
	g.vram[offset] = value
	if offset < 0x1800 {
		g.updateTile(int(offset) / 16)
	}
}

// ReadOAM/WriteOAM accept addresses in 0xFE00-0xFE9F.
func (g *GPU) ReadOAM(address uint16) byte {
	return g.oam[address-addr.OAMStart]
}

func (g *GPU) WriteOAM(address uint16, value byte) {
	g.oam[address-addr.OAMStart] = value
}

// WriteOAMByte is used by DMA transfer, addressed 0-0x9F directly.
func (g *GPU) WriteOAMByte(offset uint8, value byte) {
	g.oam[offset] = value
}

func (g *GPU) ReadRegister(address uint16) byte {
	switch address {
	case addr.LCDC:
		return g.lcdc
	case addr.STAT:
		coincidence := byte(0)
		if g.LY == g.lyc {
			coincidence = 1 << 2
		}
		return 0x80 | g.stat | coincidence | byte(g.mode)
	case addr.SCY:
		return g.scy
	case addr.SCX:
		return g.scx
	case addr.LY:
		if g.FixedLY {
			return 0x90
		}
		return g.LY
	case addr.LYC:
		return g.lyc
	case addr.BGP:
		return g.bgp
	case addr.OBP0:
		return g.obp0
	case addr.OBP1:
		return g.obp1
	case addr.WY:
		return g.wy
	case addr.WX:
		return g.wx
	default:
		return 0xFF
	}
}

func (g *GPU) WriteRegister(address uint16, value byte) {
	switch address {
	case addr.LCDC:
		wasEnabled := g.lcdEnabled()
		g.lcdc = value
		if wasEnabled && !g.lcdEnabled() {
			g.LY = 0
			g.lineCycleAcc = 0
			g.windowLine = 0
			g.mode = ModeHBlank
		}
	case addr.STAT:
		g.stat = value & 0x78
	case addr.SCY:
		g.scy = value
	case addr.SCX:
		g.scx = value
	case addr.LY:
		// read-only on hardware
	case addr.LYC:
		g.lyc = value
		g.checkLYC()
	case addr.BGP:
		g.bgp = value
	case addr.OBP0:
		g.obp0 = value
	case addr.OBP1:
		g.obp1 = value
	case addr.WY:
		g.wy = value
	case addr.WX:
		g.wx = value
	}
}
