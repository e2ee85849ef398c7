package disasm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat_BasicInstructions(t *testing.T) {
	read := func(bytes ...byte) func(uint16) byte {
		return func(offset uint16) byte {
			if int(offset) < len(bytes) {
				return bytes[offset]
			}
			return 0
		}
	}

	line := AtPC(0, read(0x00))
	assert.Equal(t, "NOP", line.Instruction)
	assert.Equal(t, 1, line.Length)

	line = AtPC(0, read(0x21, 0x34, 0x12))
	assert.Equal(t, "LD HL,0x1234", line.Instruction)

	line = AtPC(0, read(0xCB, 0x7C)) // BIT 7,H
	assert.Equal(t, "BIT 7,H", line.Instruction)

	line = AtPC(0, read(0x28, 0x05)) // JR Z,+5
	assert.Equal(t, "JR Z,5", line.Instruction)

	line = AtPC(0, read(0xC9)) // RET
	assert.Equal(t, "RET", line.Instruction)
}

func TestAtPC_UndefinedOpcodeFormatsAsUnknown(t *testing.T) {
	read := func(offset uint16) byte {
		if offset == 0 {
			return 0xD3
		}
		return 0
	}
	line := AtPC(0, read)
	assert.Contains(t, line.Instruction, "???")
}

func TestRange_AdvancesByInstructionLength(t *testing.T) {
	bytes := []byte{0x00, 0x21, 0x34, 0x12, 0x00}
	read := func(offset uint16) byte {
		if int(offset) < len(bytes) {
			return bytes[offset]
		}
		return 0
	}
	lines := Range(0, 3, read)
	assert.Equal(t, uint16(0), lines[0].Address)
	assert.Equal(t, uint16(1), lines[1].Address)
	assert.Equal(t, uint16(4), lines[2].Address)
}
