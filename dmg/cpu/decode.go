package cpu

import "fmt"

// DecodeError reports an opcode byte with no defined DMG meaning. These
// lock up real hardware, so decoding fails instead of treating them as NOP.
type DecodeError struct {
	Opcode byte
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cpu: invalid opcode 0x%02X", e.Opcode)
}

// reg16Table is the rp table used by z=1/z=3 of the x=0 block (LD rr,nn;
// ADD HL,rr; INC/DEC rr).
var reg16Table = [4]R16{R16BC, R16DE, R16HL, R16SP}

// reg16StackTable is the rp2 table used by PUSH/POP.
var reg16StackTable = [4]R16Stack{R16StackBC, R16StackDE, R16StackHL, R16StackAF}

// indirectTable is the table used by x=0,z=2 LD (r),A / LD A,(r).
var indirectTable = [4]Indirect{IndBC, IndDE, IndHLInc, IndHLDec}

// condTable is the 4-entry condition table used by JR/JP/CALL/RET.
var condTable = [4]Cond{CondNZ, CondZ, CondNC, CondC}

// aluTable is the 8-entry ALU operation table.
var aluTable = [8]AluOp{AluAdd, AluAdc, AluSub, AluSbc, AluAnd, AluXor, AluOr, AluCp}

// rotTable is the 8-entry CB rotate/shift table.
var rotTable = [8]RotOp{RotRLC, RotRRC, RotRL, RotRR, RotSLA, RotSRA, RotSwap, RotSRL}

// reg8 maps the canonical z80/SM83 3-bit register index (B,C,D,E,H,L,(HL),A)
// to R8. The encoding is already identical to R8's iota ordering.
func reg8(index uint8) R8 { return R8(index & 7) }

// undefinedOpcodes lists the eleven DMG opcodes with no defined behavior.
var undefinedOpcodes = map[byte]bool{
	0xD3: true, 0xDB: true, 0xDD: true,
	0xE3: true, 0xE4: true, 0xEB: true, 0xEC: true, 0xED: true,
	0xF4: true, 0xFC: true, 0xFD: true,
}

// Decode reads an opcode (and, if needed, its operand/prefix bytes) via
// fetch, where fetch(0) is the byte at PC and fetch(n) is PC+n. It never
// advances PC itself; the caller uses the returned Length to do so.
func Decode(fetch func(offset uint16) byte) (Instruction, error) {
	b0 := fetch(0)

	if b0 == 0xCB {
		return decodeCB(fetch(1)), nil
	}

	if undefinedOpcodes[b0] {
		return Instruction{}, &DecodeError{Opcode: b0}
	}

	x := b0 >> 6
	y := (b0 >> 3) & 7
	z := b0 & 7
	p := y >> 1
	q := y & 1

	switch x {
	case 0:
		return decodeX0(b0, y, z, p, q, fetch)
	case 1:
		if y == 6 && z == 6 {
			return Instruction{Kind: KindHalt, Length: 1}, nil
		}
		return Instruction{Kind: KindLdRR, Dst: reg8(y), Src: reg8(z), Length: 1}, nil
	case 2:
		return Instruction{Kind: KindAlu, Alu: aluTable[y], Src: reg8(z), Length: 1}, nil
	default: // x == 3
		return decodeX3(b0, y, z, p, q, fetch)
	}
}

func decodeX0(b0, y, z, p, q byte, fetch func(uint16) byte) (Instruction, error) {
	switch z {
	case 0:
		switch {
		case y == 0:
			return Instruction{Kind: KindNop, Length: 1}, nil
		case y == 1:
			return Instruction{Kind: KindLdAddrFromSP, Imm16: imm16(fetch), Length: 3}, nil
		case y == 2:
			return Instruction{Kind: KindStop, Length: 2}, nil
		case y == 3:
			return Instruction{Kind: KindJR, Cond: CondAlways, Imm8: fetch(1), Length: 2}, nil
		default: // y = 4..7
			return Instruction{Kind: KindJR, Cond: condTable[y-4], Imm8: fetch(1), Length: 2}, nil
		}
	case 1:
		if q == 0 {
			return Instruction{Kind: KindLdR16Imm16, R16: reg16Table[p], Imm16: imm16(fetch), Length: 3}, nil
		}
		return Instruction{Kind: KindAddHL, R16: reg16Table[p], Length: 1}, nil
	case 2:
		if q == 0 {
			return Instruction{Kind: KindLdIndirectFromA, Ind: indirectTable[p], Length: 1}, nil
		}
		return Instruction{Kind: KindLdAFromIndirect, Ind: indirectTable[p], Length: 1}, nil
	case 3:
		if q == 0 {
			return Instruction{Kind: KindInc16, R16: reg16Table[p], Length: 1}, nil
		}
		return Instruction{Kind: KindDec16, R16: reg16Table[p], Length: 1}, nil
	case 4:
		return Instruction{Kind: KindInc8, Dst: reg8(y), Length: 1}, nil
	case 5:
		return Instruction{Kind: KindDec8, Dst: reg8(y), Length: 1}, nil
	case 6:
		return Instruction{Kind: KindLdRImm8, Dst: reg8(y), Imm8: fetch(1), Length: 2}, nil
	default: // z == 7
		return decodeAccumulatorMisc(y), nil
	}
}

func decodeAccumulatorMisc(y byte) Instruction {
	switch y {
	case 0:
		return Instruction{Kind: KindRotAcc, Rot: RotRLC, Length: 1}
	case 1:
		return Instruction{Kind: KindRotAcc, Rot: RotRRC, Length: 1}
	case 2:
		return Instruction{Kind: KindRotAcc, Rot: RotRL, Length: 1}
	case 3:
		return Instruction{Kind: KindRotAcc, Rot: RotRR, Length: 1}
	case 4:
		return Instruction{Kind: KindDAA, Length: 1}
	case 5:
		return Instruction{Kind: KindCPL, Length: 1}
	case 6:
		return Instruction{Kind: KindSCF, Length: 1}
	default: // y == 7
		return Instruction{Kind: KindCCF, Length: 1}
	}
}

func decodeX3(b0, y, z, p, q byte, fetch func(uint16) byte) (Instruction, error) {
	switch z {
	case 0:
		switch {
		case y <= 3:
			return Instruction{Kind: KindRet, Cond: condTable[y], Length: 1}, nil
		case y == 4:
			return Instruction{Kind: KindLdIOFromA, Imm8: fetch(1), Length: 2}, nil
		case y == 5:
			return Instruction{Kind: KindAddSP, Imm8: fetch(1), Length: 2}, nil
		case y == 6:
			return Instruction{Kind: KindLdAFromIO, Imm8: fetch(1), Length: 2}, nil
		default: // y == 7
			return Instruction{Kind: KindLdHLFromSPOffset, Imm8: fetch(1), Length: 2}, nil
		}
	case 1:
		if q == 0 {
			return Instruction{Kind: KindPop, Stack: reg16StackTable[p], Length: 1}, nil
		}
		switch p {
		case 0:
			return Instruction{Kind: KindRet, Cond: CondAlways, Length: 1}, nil
		case 1:
			return Instruction{Kind: KindReti, Length: 1}, nil
		case 2:
			return Instruction{Kind: KindJPHL, Length: 1}, nil
		default: // p == 3
			return Instruction{Kind: KindLdSPFromHL, Length: 1}, nil
		}
	case 2:
		switch {
		case y <= 3:
			return Instruction{Kind: KindJP, Cond: condTable[y], Imm16: imm16(fetch), Length: 3}, nil
		case y == 4:
			return Instruction{Kind: KindLdIOCFromA, Length: 1}, nil
		case y == 5:
			return Instruction{Kind: KindLdAddrFromA, Imm16: imm16(fetch), Length: 3}, nil
		case y == 6:
			return Instruction{Kind: KindLdAFromIOC, Length: 1}, nil
		default: // y == 7
			return Instruction{Kind: KindLdAFromAddr, Imm16: imm16(fetch), Length: 3}, nil
		}
	case 3:
		switch y {
		case 0:
			return Instruction{Kind: KindJP, Cond: CondAlways, Imm16: imm16(fetch), Length: 3}, nil
		case 6:
			return Instruction{Kind: KindDI, Length: 1}, nil
		case 7:
			return Instruction{Kind: KindEI, Length: 1}, nil
		default:
			return Instruction{}, &DecodeError{Opcode: b0}
		}
	case 4:
		if y <= 3 {
			return Instruction{Kind: KindCall, Cond: condTable[y], Imm16: imm16(fetch), Length: 3}, nil
		}
		return Instruction{}, &DecodeError{Opcode: b0}
	case 5:
		if q == 0 {
			return Instruction{Kind: KindPush, Stack: reg16StackTable[p], Length: 1}, nil
		}
		if p == 0 {
			return Instruction{Kind: KindCall, Cond: CondAlways, Imm16: imm16(fetch), Length: 3}, nil
		}
		return Instruction{}, &DecodeError{Opcode: b0}
	case 6:
		return Instruction{Kind: KindAluImm8, Alu: aluTable[y], Imm8: fetch(1), Length: 2}, nil
	default: // z == 7
		return Instruction{Kind: KindRst, Rst: uint16(y) * 8, Length: 1}, nil
	}
}

// decodeCB decodes the second byte of a 0xCB-prefixed instruction. All CB
// instructions are 2 bytes long.
func decodeCB(b1 byte) Instruction {
	x := b1 >> 6
	y := (b1 >> 3) & 7
	z := b1 & 7

	switch x {
	case 0:
		return Instruction{Kind: KindRot, Rot: rotTable[y], Src: reg8(z), Length: 2}
	case 1:
		return Instruction{Kind: KindBitOp, Bit: y, Src: reg8(z), Length: 2}
	case 2:
		return Instruction{Kind: KindRes, Bit: y, Src: reg8(z), Length: 2}
	default: // x == 3
		return Instruction{Kind: KindSet, Bit: y, Src: reg8(z), Length: 2}
	}
}

func imm16(fetch func(uint16) byte) uint16 {
	return uint16(fetch(1)) | uint16(fetch(2))<<8
}
