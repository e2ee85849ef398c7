package memory

// Cartridge is an immutable input ROM image. This core maps only
// bank-0 + bank-N static ROM, with no MBC bank switching: larger
// cartridge images are simply truncated to the first two 16KiB banks,
// and any ROM shorter than 0x8000 bytes is zero-padded.
type Cartridge struct {
	data  []byte
	title string
}

const (
	minCartridgeSize = 0x8000
	titleAddress     = 0x134
	titleLength      = 16
)

// NewCartridge returns an empty cartridge (powering on with no game
// inserted).
func NewCartridge() *Cartridge {
	return &Cartridge{data: make([]byte, minCartridgeSize)}
}

// NewCartridgeWithData builds a cartridge from raw ROM bytes, zero-padding
// up to the minimum bank-0+bank-N size.
func NewCartridgeWithData(raw []byte) *Cartridge {
	data := make([]byte, minCartridgeSize)
	copy(data, raw)

	end := titleAddress + titleLength
	title := ""
	if len(data) >= end {
		title = decodeTitle(data[titleAddress:end])
	}

	return &Cartridge{data: data, title: title}
}

func decodeTitle(b []byte) string {
	n := len(b)
	for n > 0 && b[n-1] == 0 {
		n--
	}
	return string(b[:n])
}

// Title returns the cartridge's header title, if any.
func (c *Cartridge) Title() string { return c.title }

// ReadByte reads a byte from bank 0 (0x0000-0x3FFF) or bank N
// (0x4000-0x7FFF); both are static in this core.
func (c *Cartridge) ReadByte(address uint16) byte {
	if int(address) >= len(c.data) {
		return 0xFF
	}
	return c.data[address]
}

// WriteByte is a no-op: this core has no MBC registers to steer, and ROM
// contents are immutable. The bus logs the attempt at the warning level.
func (c *Cartridge) WriteByte(address uint16, value byte) {}
