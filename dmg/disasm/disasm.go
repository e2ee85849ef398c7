// Package disasm renders decoded instructions as text, formatting the
// same Instruction values the CPU executes instead of keeping a parallel
// opcode-indexed template table in sync by hand.
package disasm

import (
	"fmt"

	"github.com/mpalmer/dmgo/dmg/cpu"
)

// Line is one disassembled instruction.
type Line struct {
	Address     uint16
	Instruction string
	Length      int
}

var r8Names = [...]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}
var r16Names = [...]string{"BC", "DE", "HL", "SP"}
var r16StackNames = [...]string{"BC", "DE", "HL", "AF"}
var condNames = [...]string{"NZ", "Z", "NC", "C", ""}
var aluNames = [...]string{"ADD A,", "ADC A,", "SUB", "SBC A,", "AND", "XOR", "OR", "CP"}
var rotNames = [...]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}
var indNames = [...]string{"(BC)", "(DE)", "(HL+)", "(HL-)"}

// AtPC decodes and formats the instruction at pc, reading bytes through
// read (typically bus.Read).
func AtPC(pc uint16, read func(uint16) byte) Line {
	instr, err := cpu.Decode(func(offset uint16) byte { return read(pc + offset) })
	if err != nil {
		return Line{Address: pc, Instruction: fmt.Sprintf("??? (0x%02X)", read(pc)), Length: 1}
	}
	return Line{Address: pc, Instruction: Format(instr), Length: instr.Length}
}

// Range disassembles count instructions starting at pc.
func Range(pc uint16, count int, read func(uint16) byte) []Line {
	lines := make([]Line, 0, count)
	for i := 0; i < count; i++ {
		line := AtPC(pc, read)
		lines = append(lines, line)
		pc += uint16(line.Length)
	}
	return lines
}

// Format renders a decoded Instruction as an assembly mnemonic.
func Format(i cpu.Instruction) string {
	switch i.Kind {
	case cpu.KindNop:
		return "NOP"
	case cpu.KindLdRR:
		return fmt.Sprintf("LD %s,%s", r8Names[i.Dst], r8Names[i.Src])
	case cpu.KindLdRImm8:
		return fmt.Sprintf("LD %s,0x%02X", r8Names[i.Dst], i.Imm8)
	case cpu.KindLdR16Imm16:
		return fmt.Sprintf("LD %s,0x%04X", r16Names[i.R16], i.Imm16)
	case cpu.KindLdIndirectFromA:
		return fmt.Sprintf("LD %s,A", indNames[i.Ind])
	case cpu.KindLdAFromIndirect:
		return fmt.Sprintf("LD A,%s", indNames[i.Ind])
	case cpu.KindLdAddrFromSP:
		return fmt.Sprintf("LD (0x%04X),SP", i.Imm16)
	case cpu.KindLdSPFromHL:
		return "LD SP,HL"
	case cpu.KindLdHLFromSPOffset:
		return fmt.Sprintf("LD HL,SP+%d", int8(i.Imm8))
	case cpu.KindLdIOFromA:
		return fmt.Sprintf("LDH (0xFF00+0x%02X),A", i.Imm8)
	case cpu.KindLdAFromIO:
		return fmt.Sprintf("LDH A,(0xFF00+0x%02X)", i.Imm8)
	case cpu.KindLdIOCFromA:
		return "LD (0xFF00+C),A"
	case cpu.KindLdAFromIOC:
		return "LD A,(0xFF00+C)"
	case cpu.KindLdAddrFromA:
		return fmt.Sprintf("LD (0x%04X),A", i.Imm16)
	case cpu.KindLdAFromAddr:
		return fmt.Sprintf("LD A,(0x%04X)", i.Imm16)
	case cpu.KindAlu:
		return fmt.Sprintf("%s %s", aluNames[i.Alu], r8Names[i.Src])
	case cpu.KindAluImm8:
		return fmt.Sprintf("%s 0x%02X", aluNames[i.Alu], i.Imm8)
	case cpu.KindAddHL:
		return fmt.Sprintf("ADD HL,%s", r16Names[i.R16])
	case cpu.KindAddSP:
		return fmt.Sprintf("ADD SP,%d", int8(i.Imm8))
	case cpu.KindInc8:
		return fmt.Sprintf("INC %s", r8Names[i.Dst])
	case cpu.KindDec8:
		return fmt.Sprintf("DEC %s", r8Names[i.Dst])
	case cpu.KindInc16:
		return fmt.Sprintf("INC %s", r16Names[i.R16])
	case cpu.KindDec16:
		return fmt.Sprintf("DEC %s", r16Names[i.R16])
	case cpu.KindRotAcc:
		return rotNames[i.Rot] + "A"
	case cpu.KindRot:
		return fmt.Sprintf("%s %s", rotNames[i.Rot], r8Names[i.Src])
	case cpu.KindBitOp:
		return fmt.Sprintf("BIT %d,%s", i.Bit, r8Names[i.Src])
	case cpu.KindRes:
		return fmt.Sprintf("RES %d,%s", i.Bit, r8Names[i.Src])
	case cpu.KindSet:
		return fmt.Sprintf("SET %d,%s", i.Bit, r8Names[i.Src])
	case cpu.KindJR:
		return formatCond("JR", i.Cond, fmt.Sprintf("%d", int8(i.Imm8)))
	case cpu.KindJP:
		return formatCond("JP", i.Cond, fmt.Sprintf("0x%04X", i.Imm16))
	case cpu.KindJPHL:
		return "JP HL"
	case cpu.KindCall:
		return formatCond("CALL", i.Cond, fmt.Sprintf("0x%04X", i.Imm16))
	case cpu.KindRet:
		return formatCond("RET", i.Cond, "")
	case cpu.KindReti:
		return "RETI"
	case cpu.KindRst:
		return fmt.Sprintf("RST 0x%02X", i.Rst)
	case cpu.KindPush:
		return fmt.Sprintf("PUSH %s", r16StackNames[i.Stack])
	case cpu.KindPop:
		return fmt.Sprintf("POP %s", r16StackNames[i.Stack])
	case cpu.KindHalt:
		return "HALT"
	case cpu.KindStop:
		return "STOP"
	case cpu.KindDI:
		return "DI"
	case cpu.KindEI:
		return "EI"
	case cpu.KindDAA:
		return "DAA"
	case cpu.KindCPL:
		return "CPL"
	case cpu.KindSCF:
		return "SCF"
	case cpu.KindCCF:
		return "CCF"
	default:
		return "???"
	}
}

func formatCond(mnemonic string, cond cpu.Cond, operand string) string {
	name := condNames[cond]
	switch {
	case name == "" && operand == "":
		return mnemonic
	case name == "":
		return fmt.Sprintf("%s %s", mnemonic, operand)
	case operand == "":
		return fmt.Sprintf("%s %s", mnemonic, name)
	default:
		return fmt.Sprintf("%s %s,%s", mnemonic, name, operand)
	}
}
