package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartridge_DecodesTitleAndStripsTrailingZeros(t *testing.T) {
	raw := make([]byte, 0x8000)
	copy(raw[titleAddress:], []byte("TETRIS\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00"))
	c := NewCartridgeWithData(raw)
	assert.Equal(t, "TETRIS", c.Title())
}

func TestCartridge_ShorterThanMinimumIsZeroPadded(t *testing.T) {
	c := NewCartridgeWithData([]byte{0x01, 0x02, 0x03})
	assert.Equal(t, byte(0x01), c.ReadByte(0))
	assert.Equal(t, byte(0x00), c.ReadByte(0x7FFF))
}

func TestCartridge_WriteByteIsNoOp(t *testing.T) {
	c := NewCartridgeWithData([]byte{0xAA})
	c.WriteByte(0, 0xFF)
	assert.Equal(t, byte(0xAA), c.ReadByte(0))
}

func TestCartridge_EmptyCartridgeReadsZero(t *testing.T) {
	c := NewCartridge()
	assert.Equal(t, byte(0), c.ReadByte(0x100))
}
