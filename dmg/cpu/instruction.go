package cpu

// R8 indexes the eight-entry register table (B,C,D,E,H,L,(HL),A) used by the
// bit-structured decoder. R8HL stands for the indirect (HL) operand.
type R8 uint8

const (
	R8B R8 = iota
	R8C
	R8D
	R8E
	R8H
	R8L
	R8HL
	R8A
)

// R16 indexes the four-entry 16-bit register table (BC,DE,HL,SP).
type R16 uint8

const (
	R16BC R16 = iota
	R16DE
	R16HL
	R16SP
)

// R16Stack indexes the PUSH/POP register table (BC,DE,HL,AF).
type R16Stack uint8

const (
	R16StackBC R16Stack = iota
	R16StackDE
	R16StackHL
	R16StackAF
)

// Cond is a branch condition code.
type Cond uint8

const (
	CondNZ Cond = iota
	CondZ
	CondNC
	CondC
	CondAlways
)

// AluOp selects one of the eight arithmetic/logic operations on A.
type AluOp uint8

const (
	AluAdd AluOp = iota
	AluAdc
	AluSub
	AluSbc
	AluAnd
	AluXor
	AluOr
	AluCp
)

// RotOp selects one of the eight CB-prefixed rotate/shift operations.
type RotOp uint8

const (
	RotRLC RotOp = iota
	RotRRC
	RotRL
	RotRR
	RotSLA
	RotSRA
	RotSwap
	RotSRL
)

// Indirect selects one of the four (BC)/(DE)/(HL+)/(HL-) addressing modes
// used by the x=0,z=2 LD group.
type Indirect uint8

const (
	IndBC Indirect = iota
	IndDE
	IndHLInc
	IndHLDec
)

// Kind tags which variant of Instruction is populated. Instruction is a sum
// type expressed as a flat struct with a discriminant, since Go has no
// native tagged union: only the fields documented for a given Kind are
// meaningful.
type Kind uint8

const (
	KindNop Kind = iota
	KindLdRR             // Dst, Src
	KindLdRImm8          // Dst, Imm8
	KindLdR16Imm16       // R16, Imm16
	KindLdIndirectFromA  // Ind
	KindLdAFromIndirect  // Ind
	KindLdAddrFromSP     // Imm16
	KindLdSPFromHL       // (no operands)
	KindLdHLFromSPOffset // Imm8 (signed)
	KindLdIOFromA        // Imm8 (offset from 0xFF00)
	KindLdAFromIO        // Imm8
	KindLdIOCFromA       // (no operands, uses C)
	KindLdAFromIOC       // (no operands, uses C)
	KindLdAddrFromA      // Imm16
	KindLdAFromAddr      // Imm16
	KindAlu              // Alu, Src
	KindAluImm8          // Alu, Imm8
	KindAddHL            // R16
	KindAddSP            // Imm8 (signed)
	KindInc8             // Dst
	KindDec8             // Dst
	KindInc16            // R16
	KindDec16            // R16
	KindRotAcc           // Rot (one of RLC/RRC/RL/RR, unprefixed accumulator form)
	KindRot              // Rot, Src
	KindBitOp            // Bit, Src
	KindRes              // Bit, Src
	KindSet              // Bit, Src
	KindJR               // Cond, Imm8 (signed)
	KindJP               // Cond, Imm16
	KindJPHL             // (no operands)
	KindCall             // Cond, Imm16
	KindRet              // Cond
	KindReti             // (no operands)
	KindRst              // RST
	KindPush             // Stack
	KindPop              // Stack
	KindHalt
	KindStop
	KindDI
	KindEI
	KindDAA
	KindCPL
	KindSCF
	KindCCF
)

// Instruction is the decoded, executable representation of one opcode.
// Length is the total number of bytes consumed, including any CB prefix
// byte and immediate operand bytes; the caller advances PC by Length.
type Instruction struct {
	Kind Kind

	Dst, Src R8
	R16      R16
	Stack    R16Stack
	Ind      Indirect
	Cond     Cond
	Alu      AluOp
	Rot      RotOp
	Bit      uint8
	Imm8     uint8
	Imm16    uint16
	Rst      uint16

	Length int
}
