package cpu

// execute runs the already-decoded instruction (PC has already been
// advanced past it) and returns the T-cycles consumed, following the
// canonical SM83 timing table.
func (c *CPU) execute(instr Instruction) int {
	switch instr.Kind {
	case KindNop:
		return 4

	case KindLdRR:
		v := c.getR8(instr.Src)
		c.setR8(instr.Dst, v)
		if instr.Dst == R8HL || instr.Src == R8HL {
			return 8
		}
		return 4

	case KindLdRImm8:
		c.setR8(instr.Dst, instr.Imm8)
		if instr.Dst == R8HL {
			return 12
		}
		return 8

	case KindLdR16Imm16:
		c.setR16(instr.R16, instr.Imm16)
		return 12

	case KindLdIndirectFromA:
		c.bus.Write(c.indirectAddr(instr.Ind), c.A)
		return 8

	case KindLdAFromIndirect:
		c.A = c.bus.Read(c.indirectAddr(instr.Ind))
		return 8

	case KindLdAddrFromSP:
		c.bus.Write(instr.Imm16, byte(c.SP))
		c.bus.Write(instr.Imm16+1, byte(c.SP>>8))
		return 20

	case KindLdSPFromHL:
		c.SP = c.HL()
		return 8

	case KindLdHLFromSPOffset:
		result, carry, half := c.spPlusE8(instr.Imm8)
		c.SetHL(result)
		c.SetFlag(FlagZ, false)
		c.SetFlag(FlagN, false)
		c.SetFlag(FlagH, half)
		c.SetFlag(FlagC, carry)
		return 12

	case KindLdIOFromA:
		c.bus.Write(0xFF00+uint16(instr.Imm8), c.A)
		return 12

	case KindLdAFromIO:
		c.A = c.bus.Read(0xFF00 + uint16(instr.Imm8))
		return 12

	case KindLdIOCFromA:
		c.bus.Write(0xFF00+uint16(c.C), c.A)
		return 8

	case KindLdAFromIOC:
		c.A = c.bus.Read(0xFF00 + uint16(c.C))
		return 8

	case KindLdAddrFromA:
		c.bus.Write(instr.Imm16, c.A)
		return 16

	case KindLdAFromAddr:
		c.A = c.bus.Read(instr.Imm16)
		return 16

	case KindAlu:
		c.alu(instr.Alu, c.getR8(instr.Src))
		if instr.Src == R8HL {
			return 8
		}
		return 4

	case KindAluImm8:
		c.alu(instr.Alu, instr.Imm8)
		return 8

	case KindAddHL:
		c.addToHL(c.getR16(instr.R16))
		return 8

	case KindAddSP:
		result, carry, half := c.spPlusE8(instr.Imm8)
		c.SP = result
		c.SetFlag(FlagZ, false)
		c.SetFlag(FlagN, false)
		c.SetFlag(FlagH, half)
		c.SetFlag(FlagC, carry)
		return 16

	case KindInc8:
		c.setR8(instr.Dst, c.inc8(c.getR8(instr.Dst)))
		if instr.Dst == R8HL {
			return 12
		}
		return 4

	case KindDec8:
		c.setR8(instr.Dst, c.dec8(c.getR8(instr.Dst)))
		if instr.Dst == R8HL {
			return 12
		}
		return 4

	case KindInc16:
		c.setR16(instr.R16, c.getR16(instr.R16)+1)
		return 8

	case KindDec16:
		c.setR16(instr.R16, c.getR16(instr.R16)-1)
		return 8

	case KindRotAcc:
		c.A = c.rotate(instr.Rot, c.A)
		c.SetFlag(FlagZ, false)
		return 4

	case KindRot:
		v := c.rotate(instr.Rot, c.getR8(instr.Src))
		c.setR8(instr.Src, v)
		if instr.Src == R8HL {
			return 16
		}
		return 8

	case KindBitOp:
		v := c.getR8(instr.Src)
		c.SetFlag(FlagZ, (v>>instr.Bit)&1 == 0)
		c.SetFlag(FlagN, false)
		c.SetFlag(FlagH, true)
		if instr.Src == R8HL {
			return 12
		}
		return 8

	case KindRes:
		v := c.getR8(instr.Src) &^ (1 << instr.Bit)
		c.setR8(instr.Src, v)
		if instr.Src == R8HL {
			return 16
		}
		return 8

	case KindSet:
		v := c.getR8(instr.Src) | (1 << instr.Bit)
		c.setR8(instr.Src, v)
		if instr.Src == R8HL {
			return 16
		}
		return 8

	case KindJR:
		if !c.condTrue(instr.Cond) {
			return 8
		}
		c.PC = uint16(int32(c.PC) + int32(int8(instr.Imm8)))
		return 12

	case KindJP:
		if !c.condTrue(instr.Cond) {
			return 12
		}
		c.PC = instr.Imm16
		return 16

	case KindJPHL:
		c.PC = c.HL()
		return 4

	case KindCall:
		if !c.condTrue(instr.Cond) {
			return 12
		}
		c.push(c.PC)
		c.PC = instr.Imm16
		return 24

	case KindRet:
		if instr.Cond == CondAlways {
			c.PC = c.pop()
			return 16
		}
		if !c.condTrue(instr.Cond) {
			return 8
		}
		c.PC = c.pop()
		return 20

	case KindReti:
		c.PC = c.pop()
		c.ime = true
		c.imeDelay = 0
		return 16

	case KindRst:
		c.push(c.PC)
		c.PC = instr.Rst
		return 16

	case KindPush:
		c.push(c.getR16Stack(instr.Stack))
		return 16

	case KindPop:
		v := c.pop()
		if instr.Stack == R16StackAF {
			v &= 0xFFF0
		}
		c.setR16Stack(instr.Stack, v)
		return 12

	case KindHalt:
		c.Halted = true
		return 4

	case KindStop:
		return 4

	case KindDI:
		c.ime = false
		c.imeDelay = 0
		return 4

	case KindEI:
		c.imeDelay = 2
		return 4

	case KindDAA:
		c.daa()
		return 4

	case KindCPL:
		c.A = ^c.A
		c.SetFlag(FlagN, true)
		c.SetFlag(FlagH, true)
		return 4

	case KindSCF:
		c.SetFlag(FlagN, false)
		c.SetFlag(FlagH, false)
		c.SetFlag(FlagC, true)
		return 4

	case KindCCF:
		c.SetFlag(FlagN, false)
		c.SetFlag(FlagH, false)
		c.SetFlag(FlagC, !c.HasFlag(FlagC))
		return 4
	}

	panic("cpu: unreachable instruction kind")
}

func (c *CPU) condTrue(cond Cond) bool {
	switch cond {
	case CondNZ:
		return !c.HasFlag(FlagZ)
	case CondZ:
		return c.HasFlag(FlagZ)
	case CondNC:
		return !c.HasFlag(FlagC)
	case CondC:
		return c.HasFlag(FlagC)
	default:
		return true
	}
}

func (c *CPU) getR8(r R8) uint8 {
	switch r {
	case R8B:
		return c.B
	case R8C:
		return c.C
	case R8D:
		return c.D
	case R8E:
		return c.E
	case R8H:
		return c.H
	case R8L:
		return c.L
	case R8HL:
		return c.bus.Read(c.HL())
	default: // R8A
		return c.A
	}
}

func (c *CPU) setR8(r R8, v uint8) {
	switch r {
	case R8B:
		c.B = v
	case R8C:
		c.C = v
	case R8D:
		c.D = v
	case R8E:
		c.E = v
	case R8H:
		c.H = v
	case R8L:
		c.L = v
	case R8HL:
		c.bus.Write(c.HL(), v)
	default: // R8A
		c.A = v
	}
}

func (c *CPU) getR16(r R16) uint16 {
	switch r {
	case R16BC:
		return c.BC()
	case R16DE:
		return c.DE()
	case R16HL:
		return c.HL()
	default: // R16SP
		return c.SP
	}
}

func (c *CPU) setR16(r R16, v uint16) {
	switch r {
	case R16BC:
		c.SetBC(v)
	case R16DE:
		c.SetDE(v)
	case R16HL:
		c.SetHL(v)
	default: // R16SP
		c.SP = v
	}
}

func (c *CPU) getR16Stack(r R16Stack) uint16 {
	switch r {
	case R16StackBC:
		return c.BC()
	case R16StackDE:
		return c.DE()
	case R16StackHL:
		return c.HL()
	default: // R16StackAF
		return c.AF()
	}
}

func (c *CPU) setR16Stack(r R16Stack, v uint16) {
	switch r {
	case R16StackBC:
		c.SetBC(v)
	case R16StackDE:
		c.SetDE(v)
	case R16StackHL:
		c.SetHL(v)
	default: // R16StackAF
		c.SetAF(v)
	}
}

func (c *CPU) indirectAddr(ind Indirect) uint16 {
	switch ind {
	case IndBC:
		return c.BC()
	case IndDE:
		return c.DE()
	case IndHLInc:
		hl := c.HL()
		c.SetHL(hl + 1)
		return hl
	default: // IndHLDec
		hl := c.HL()
		c.SetHL(hl - 1)
		return hl
	}
}

// alu applies one of the eight ALU operations to A with SM83 flag
// semantics.
func (c *CPU) alu(op AluOp, n uint8) {
	a := c.A

	switch op {
	case AluAdd, AluAdc:
		var carryIn uint16
		if op == AluAdc && c.HasFlag(FlagC) {
			carryIn = 1
		}
		result := uint16(a) + uint16(n) + carryIn
		c.SetFlag(FlagH, (a&0xF)+(n&0xF)+uint8(carryIn) > 0xF)
		c.SetFlag(FlagC, result > 0xFF)
		c.A = uint8(result)
		c.SetFlag(FlagZ, c.A == 0)
		c.SetFlag(FlagN, false)

	case AluSub, AluSbc, AluCp:
		var carryIn uint16
		if op == AluSbc && c.HasFlag(FlagC) {
			carryIn = 1
		}
		result := int32(a) - int32(n) - int32(carryIn)
		c.SetFlag(FlagH, int32(a&0xF) < int32(n&0xF)+int32(carryIn))
		c.SetFlag(FlagC, int32(a) < int32(n)+int32(carryIn))
		c.SetFlag(FlagN, true)
		res8 := uint8(result)
		c.SetFlag(FlagZ, res8 == 0)
		if op != AluCp {
			c.A = res8
		}

	case AluAnd:
		c.A &= n
		c.SetFlag(FlagZ, c.A == 0)
		c.SetFlag(FlagN, false)
		c.SetFlag(FlagH, true)
		c.SetFlag(FlagC, false)

	case AluXor:
		c.A ^= n
		c.SetFlag(FlagZ, c.A == 0)
		c.SetFlag(FlagN, false)
		c.SetFlag(FlagH, false)
		c.SetFlag(FlagC, false)

	case AluOr:
		c.A |= n
		c.SetFlag(FlagZ, c.A == 0)
		c.SetFlag(FlagN, false)
		c.SetFlag(FlagH, false)
		c.SetFlag(FlagC, false)
	}
}

func (c *CPU) inc8(v uint8) uint8 {
	result := v + 1
	c.SetFlag(FlagZ, result == 0)
	c.SetFlag(FlagN, false)
	c.SetFlag(FlagH, (v&0xF)+1 > 0xF)
	return result
}

func (c *CPU) dec8(v uint8) uint8 {
	result := v - 1
	c.SetFlag(FlagZ, result == 0)
	c.SetFlag(FlagN, true)
	c.SetFlag(FlagH, (v & 0xF) == 0)
	return result
}

func (c *CPU) addToHL(rr uint16) {
	hl := c.HL()
	result := uint32(hl) + uint32(rr)
	c.SetFlag(FlagN, false)
	c.SetFlag(FlagH, (hl&0xFFF)+(rr&0xFFF) > 0xFFF)
	c.SetFlag(FlagC, result > 0xFFFF)
	c.SetHL(uint16(result))
}

// spPlusE8 computes SP + sign-extended e8 and the H/C flags derived from
// the 8-bit addition lane, shared by ADD SP,e8 and LD HL,SP+e8.
func (c *CPU) spPlusE8(e uint8) (result uint16, carry, half bool) {
	offset := int16(int8(e))
	result = uint16(int32(c.SP) + int32(offset))
	low := uint8(c.SP)
	half = (low&0xF)+(e&0xF) > 0xF
	carry = uint16(low)+uint16(e) > 0xFF
	return result, carry, half
}

// rotate applies one of the eight rotate/shift operations and returns the
// result; it also sets Z/N/H/C (callers override Z for the unprefixed
// accumulator forms, which clear it unconditionally).
func (c *CPU) rotate(op RotOp, v uint8) uint8 {
	var result uint8
	var carryOut bool

	oldCarry := uint8(0)
	if c.HasFlag(FlagC) {
		oldCarry = 1
	}

	switch op {
	case RotRLC:
		carryOut = v&0x80 != 0
		result = (v << 1) | b2u8(carryOut)
	case RotRRC:
		carryOut = v&0x01 != 0
		result = (v >> 1) | (b2u8(carryOut) << 7)
	case RotRL:
		carryOut = v&0x80 != 0
		result = (v << 1) | oldCarry
	case RotRR:
		carryOut = v&0x01 != 0
		result = (v >> 1) | (oldCarry << 7)
	case RotSLA:
		carryOut = v&0x80 != 0
		result = v << 1
	case RotSRA:
		carryOut = v&0x01 != 0
		result = (v >> 1) | (v & 0x80)
	case RotSwap:
		result = (v << 4) | (v >> 4)
		carryOut = false
	case RotSRL:
		carryOut = v&0x01 != 0
		result = v >> 1
	}

	c.SetFlag(FlagC, carryOut)
	c.SetFlag(FlagN, false)
	c.SetFlag(FlagH, false)
	c.SetFlag(FlagZ, result == 0)

	return result
}

func b2u8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// daa adjusts A into packed BCD after an ADD/SUB sequence, driven by the
// current N, H and C flags.
func (c *CPU) daa() {
	a := c.A
	n := c.HasFlag(FlagN)
	h := c.HasFlag(FlagH)
	cy := c.HasFlag(FlagC)

	var adjust uint8
	newCarry := cy

	if h || (!n && (a&0x0F) > 9) {
		adjust |= 0x06
	}
	if cy || (!n && a > 0x99) {
		adjust |= 0x60
		newCarry = true
	}

	if n {
		a -= adjust
	} else {
		a += adjust
	}

	c.SetFlag(FlagC, newCarry)
	c.SetFlag(FlagH, false)
	c.SetFlag(FlagZ, a == 0)
	c.A = a
}
