// Package memory implements the address bus, timer, joypad and cartridge.
package memory

import (
	"log/slog"

	"github.com/mpalmer/dmgo/dmg/addr"
	"github.com/mpalmer/dmgo/dmg/audio"
	"github.com/mpalmer/dmgo/dmg/bit"
	"github.com/mpalmer/dmgo/dmg/serial"
	"github.com/mpalmer/dmgo/dmg/video"
)

// Bus is the full address-space decoder: boot ROM overlay, cartridge ROM,
// work/external/high RAM, and register-page dispatch to the GPU, timer,
// joypad, serial port and audio unit. It satisfies cpu.Bus.
type Bus struct {
	cart *Cartridge

	bootROM        []byte
	bootROMEnabled bool

	gpu    *video.GPU
	timer  *Timer
	joypad *Joypad
	serial *serial.Port
	audio  *audio.Unit

	externalRAM [0x2000]byte
	wram        [0x2000]byte
	hram        [0x7F]byte

	ie    byte
	iflag byte

	log *slog.Logger
}

// NewBus wires a fresh console around cart. bootROM may be nil, in which
// case the boot overlay starts disabled and execution begins directly at
// the cartridge entry point.
func NewBus(cart *Cartridge, bootROM []byte, logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}

	b := &Bus{
		cart:           cart,
		bootROM:        bootROM,
		bootROMEnabled: len(bootROM) > 0,
		serial:         serial.NewPort(logger),
		audio:          audio.NewUnit(),
		log:            logger,
	}

	b.timer = &Timer{RequestInterrupt: b.requestInterrupt}
	b.joypad = NewJoypad()
	b.joypad.RequestInterrupt = b.requestInterrupt
	b.gpu = video.NewGPU(b.requestInterrupt)

	return b
}

func (b *Bus) GPU() *video.GPU { return b.gpu }
func (b *Bus) Timer() *Timer   { return b.timer }
func (b *Bus) Joypad() *Joypad { return b.joypad }

func (b *Bus) requestInterrupt(irq addr.Interrupt) {
	b.iflag |= byte(irq)
}

// Tick advances every cycle-driven peripheral. The emulator calls this
// after every CPU Step with the cycles that Step consumed.
func (b *Bus) Tick(cycles int) {
	b.timer.Tick(cycles)
	b.gpu.Tick(cycles)
}

// ReadWord reads a little-endian 16-bit value composed from two byte
// accesses.
func (b *Bus) ReadWord(address uint16) uint16 {
	return bit.Combine(b.Read(address+1), b.Read(address))
}

// WriteWord writes a little-endian 16-bit value as two byte accesses.
func (b *Bus) WriteWord(address uint16, value uint16) {
	b.Write(address, bit.Low(value))
	b.Write(address+1, bit.High(value))
}

func (b *Bus) Read(address uint16) byte {
	switch {
	case address < 0x100 && b.bootROMEnabled:
		return b.bootROM[address]
	case address <= 0x7FFF:
		return b.cart.ReadByte(address)
	case address <= 0x9FFF:
		return b.gpu.ReadVRAM(address)
	case address <= 0xBFFF:
		return b.externalRAM[address-0xA000]
	case address <= 0xDFFF:
		return b.wram[address-0xC000]
	case address <= 0xFDFF:
		return b.wram[address-0xE000] // echo RAM mirrors WRAM
	case address <= addr.OAMEnd:
		return b.gpu.ReadOAM(address)
	case address <= 0xFEFF:
		return 0xFF // prohibited region
	case address == addr.P1:
		return b.joypad.Read()
	case address == addr.SB:
		return b.serial.ReadSB()
	case address == addr.SC:
		return b.serial.ReadSC()
	case address == addr.DIV, address == addr.TIMA, address == addr.TMA, address == addr.TAC:
		return b.timer.Read(address)
	case address == addr.IF:
		return 0xE0 | b.iflag
	case address >= addr.AudioStart && address <= addr.AudioEnd:
		return b.audio.Read(address)
	case address >= addr.LCDC && address <= addr.WX:
		return b.gpu.ReadRegister(address)
	case address == addr.BootDisable:
		return 0xFF
	case address >= 0xFF80 && address <= 0xFFFE:
		return b.hram[address-0xFF80]
	case address == addr.IE:
		return b.ie
	default:
		b.log.Debug("read from unknown I/O register", "addr", address)
		return 0xFF
	}
}

func (b *Bus) Write(address uint16, value byte) {
	switch {
	case address <= 0x7FFF:
		b.log.Warn("write to ROM ignored", "addr", address, "value", value)
		b.cart.WriteByte(address, value)
	case address <= 0x9FFF:
		b.gpu.WriteVRAM(address, value)
	case address <= 0xBFFF:
		b.externalRAM[address-0xA000] = value
	case address <= 0xDFFF:
		b.wram[address-0xC000] = value
	case address <= 0xFDFF:
		b.wram[address-0xE000] = value
	case address <= addr.OAMEnd:
		b.gpu.WriteOAM(address, value)
	case address <= 0xFEFF:
		// prohibited region: writes ignored
	case address == addr.P1:
		b.joypad.Write(value)
	case address == addr.SB:
		b.serial.WriteSB(value)
	case address == addr.SC:
		b.serial.WriteSC(value)
	case address == addr.DIV, address == addr.TIMA, address == addr.TMA, address == addr.TAC:
		b.timer.Write(address, value)
	case address == addr.IF:
		b.iflag = value & 0x1F
	case address == addr.DMA:
		b.performDMA(value)
	case address >= addr.AudioStart && address <= addr.AudioEnd:
		b.audio.Write(address, value)
	case address >= addr.LCDC && address <= addr.WX:
		b.gpu.WriteRegister(address, value)
	case address == addr.BootDisable:
		if b.bootROMEnabled {
			b.log.Debug("boot ROM disabled")
		}
		b.bootROMEnabled = false
	case address >= 0xFF80 && address <= 0xFFFE:
		b.hram[address-0xFF80] = value
	case address == addr.IE:
		b.ie = value
	default:
		b.log.Debug("write to unknown I/O register dropped", "addr", address, "value", value)
	}
}

// performDMA copies 160 bytes starting at value*0x100 into OAM. Real
// hardware takes 160 M-cycles and locks out non-HRAM bus access for the
// duration; this core applies the copy instantaneously, a documented
// simplification.
func (b *Bus) performDMA(value byte) {
	src := uint16(value) << 8
	for i := uint16(0); i < 0xA0; i++ {
		b.gpu.WriteOAMByte(uint8(i), b.Read(src+i))
	}
}
