package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fetchFrom(bytes ...byte) func(uint16) byte {
	return func(offset uint16) byte {
		if int(offset) < len(bytes) {
			return bytes[offset]
		}
		return 0
	}
}

func TestDecode_Nop(t *testing.T) {
	instr, err := Decode(fetchFrom(0x00))
	assert.NoError(t, err)
	assert.Equal(t, KindNop, instr.Kind)
	assert.Equal(t, 1, instr.Length)
}

func TestDecode_LdR16Imm16(t *testing.T) {
	instr, err := Decode(fetchFrom(0x21, 0x34, 0x12)) // LD HL,0x1234
	assert.NoError(t, err)
	assert.Equal(t, KindLdR16Imm16, instr.Kind)
	assert.Equal(t, R16HL, instr.R16)
	assert.Equal(t, uint16(0x1234), instr.Imm16)
	assert.Equal(t, 3, instr.Length)
}

func TestDecode_IncBC(t *testing.T) {
	instr, err := Decode(fetchFrom(0x03))
	assert.NoError(t, err)
	assert.Equal(t, KindInc16, instr.Kind)
	assert.Equal(t, R16BC, instr.R16)
}

func TestDecode_LdBB_IsTrivialRegisterMove(t *testing.T) {
	instr, err := Decode(fetchFrom(0x40)) // LD B,B
	assert.NoError(t, err)
	assert.Equal(t, KindLdRR, instr.Kind)
	assert.Equal(t, R8B, instr.Dst)
	assert.Equal(t, R8B, instr.Src)
}

func TestDecode_HaltIsNotARegisterMove(t *testing.T) {
	instr, err := Decode(fetchFrom(0x76)) // would be LD (HL),(HL) but is HALT
	assert.NoError(t, err)
	assert.Equal(t, KindHalt, instr.Kind)
	assert.Equal(t, 1, instr.Length)
}

func TestDecode_AluGroup(t *testing.T) {
	instr, err := Decode(fetchFrom(0x87)) // ADD A,A
	assert.NoError(t, err)
	assert.Equal(t, KindAlu, instr.Kind)
	assert.Equal(t, AluAdd, instr.Alu)
	assert.Equal(t, R8A, instr.Src)
}

func TestDecode_CBBitAtPageBoundary(t *testing.T) {
	instr, err := Decode(fetchFrom(0xCB, 0x40)) // BIT 0,B
	assert.NoError(t, err)
	assert.Equal(t, KindBitOp, instr.Kind)
	assert.Equal(t, uint8(0), instr.Bit)
	assert.Equal(t, R8B, instr.Src)
	assert.Equal(t, 2, instr.Length)
}

func TestDecode_CBSetHighBit(t *testing.T) {
	instr, err := Decode(fetchFrom(0xCB, 0xFF)) // SET 7,A
	assert.NoError(t, err)
	assert.Equal(t, KindSet, instr.Kind)
	assert.Equal(t, uint8(7), instr.Bit)
	assert.Equal(t, R8A, instr.Src)
}

func TestDecode_JRConditional(t *testing.T) {
	instr, err := Decode(fetchFrom(0x28, 0x05)) // JR Z,+5
	assert.NoError(t, err)
	assert.Equal(t, KindJR, instr.Kind)
	assert.Equal(t, CondZ, instr.Cond)
	assert.Equal(t, uint8(5), instr.Imm8)
}

func TestDecode_RST(t *testing.T) {
	instr, err := Decode(fetchFrom(0xEF)) // RST 0x28
	assert.NoError(t, err)
	assert.Equal(t, KindRst, instr.Kind)
	assert.Equal(t, uint16(0x28), instr.Rst)
}

func TestDecode_UndefinedOpcodesFail(t *testing.T) {
	for _, op := range []byte{0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD} {
		_, err := Decode(fetchFrom(op))
		assert.Errorf(t, err, "opcode 0x%02X should be invalid", op)
	}
}

func TestDecode_LDHVariants(t *testing.T) {
	instr, err := Decode(fetchFrom(0xE0, 0x80)) // LDH (0xFF80),A
	assert.NoError(t, err)
	assert.Equal(t, KindLdIOFromA, instr.Kind)
	assert.Equal(t, uint8(0x80), instr.Imm8)

	instr, err = Decode(fetchFrom(0xF2)) // LDH A,(C)
	assert.NoError(t, err)
	assert.Equal(t, KindLdAFromIOC, instr.Kind)
}

func TestDecode_PushPopAF(t *testing.T) {
	instr, err := Decode(fetchFrom(0xF5)) // PUSH AF
	assert.NoError(t, err)
	assert.Equal(t, KindPush, instr.Kind)
	assert.Equal(t, R16StackAF, instr.Stack)

	instr, err = Decode(fetchFrom(0xF1)) // POP AF
	assert.NoError(t, err)
	assert.Equal(t, KindPop, instr.Kind)
	assert.Equal(t, R16StackAF, instr.Stack)
}
