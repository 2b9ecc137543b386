// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

package cpu

// execDataProc implements all sixteen data-processing opcodes (AND..MVN)
// across their three encodings: immediate operand, register shifted by an
// immediate amount, and register shifted by a register-held amount.
func (c *CPU) execDataProc(opcode uint32) {
	if !checkCondition(opcode>>armConditionShift, c.status) {
		return
	}

	immediate := opcode&(1<<25) != 0
	setFlags := opcode&(1<<20) != 0
	dataOp := (opcode >> 21) & 0b1111
	regD := (opcode >> 12) & 0b1111
	isPC := regD == regProgramCounter
	regN := c.getReg((opcode >> 16) & 0b1111)

	var operand uint32
	var carry bool

	if immediate {
		imm := opcode & 0xFF
		rot := ((opcode >> 8) & 0b1111) * 2
		operand = rotateRight32(imm, rot)
		carry = c.status.Carry
		if rot != 0 {
			carry = operand&0x80000000 != 0
		}
	} else {
		shiftByRegister := opcode&(1<<4) != 0
		st := shiftType((opcode >> 5) & 0b11)

		rm := c.getReg(opcode & 0b1111)
		var amount uint32
		var zeroShift bool
		if shiftByRegister {
			amount = c.getReg((opcode>>8)&0b1111) & 0xFF
			zeroShift = amount == 0
			if zeroShift {
				// a register-held shift amount of zero passes the value
				// through unchanged and leaves carry untouched.
				operand, carry = rm, c.status.Carry
			} else {
				operand, carry = shift(st, false, false, rm, amount, c.status.Carry)
			}
		} else {
			amount = (opcode >> 7) & 0b11111
			zeroShift = amount == 0
			operand, carry = shift(st, true, zeroShift, rm, amount, c.status.Carry)
		}
	}

	var result uint32
	var overflow bool
	setRegister := false
	logical := false

	cFlag := uint32(0)
	if c.status.Carry {
		cFlag = 1
	}

	switch dataOp {
	case 0x0: // AND
		result = regN & operand
		setRegister, logical = true, true
	case 0x1: // EOR
		result = regN ^ operand
		setRegister, logical = true, true
	case 0x2: // SUB
		result = regN - operand
		overflow = subOverflows(regN, operand)
		carry = !subBorrows(regN, operand)
		setRegister = true
	case 0x3: // RSB
		result = operand - regN
		overflow = subOverflows(operand, regN)
		carry = !subBorrows(operand, regN)
		setRegister = true
	case 0x4: // ADD
		result = regN + operand
		overflow = addOverflows(regN, operand)
		carry = addCarries(regN, operand)
		setRegister = true
	case 0x5: // ADC
		result = regN + operand + cFlag
		overflow = addOverflows(regN, operand, cFlag)
		carry = addCarries(regN, operand, cFlag)
		setRegister = true
	case 0x6: // SBC
		result = regN - operand + cFlag - 1
		overflow = subOverflows(regN, operand, cFlag)
		carry = !subBorrows(regN, operand, cFlag)
		setRegister = true
	case 0x7: // RSC
		result = operand - regN + cFlag - 1
		overflow = subOverflows(operand, regN, cFlag)
		carry = !subBorrows(operand, regN, cFlag)
		setRegister = true
	case 0x8: // TST
		result = regN & operand
		logical = true
	case 0x9: // TEQ
		result = regN ^ operand
		logical = true
	case 0xA: // CMP
		result = regN - operand
		overflow = subOverflows(regN, operand)
		carry = !subBorrows(regN, operand)
	case 0xB: // CMN
		result = regN + operand
		overflow = addOverflows(regN, operand)
		carry = addCarries(regN, operand)
	case 0xC: // ORR
		result = regN | operand
		setRegister, logical = true, true
	case 0xD: // MOV
		result = operand
		setRegister, logical = true, true
	case 0xE: // BIC
		result = regN &^ operand
		setRegister, logical = true, true
	case 0xF: // MVN
		result = ^operand
		setRegister, logical = true, true
	}

	if setRegister {
		c.setReg(regD, result)
	}

	if setFlags {
		if isPC {
			// writing to PC with S set restores CPSR from the current
			// mode's SPSR -- the "return from exception" idiom.
			if spsr, isUserOrSystem := c.reg.currentSPSR(c.status.Mode); !isUserOrSystem {
				c.status.FromUint32(*spsr)
				c.reg.cpsr = *spsr
			}
		} else {
			if !logical {
				c.status.Overflow = overflow
			}
			c.status.Carry = carry
			c.status.Zero = result == 0
			c.status.Negative = result&0x80000000 != 0
			c.reg.cpsr = c.status.ToUint32()
		}
	}
}

func addOverflows(a, b uint32, extra ...uint32) bool {
	sum := int64(int32(a)) + int64(int32(b))
	for _, e := range extra {
		sum += int64(e)
	}
	return sum < -(1<<31) || sum > (1<<31)-1
}

func addCarries(a, b uint32, extra ...uint32) bool {
	sum := uint64(a) + uint64(b)
	for _, e := range extra {
		sum += uint64(e)
	}
	return sum > 0xFFFFFFFF
}

func subOverflows(a, b uint32, extra ...uint32) bool {
	diff := int64(int32(a)) - int64(int32(b))
	for _, e := range extra {
		diff += int64(e) - 1
	}
	return diff < -(1<<31) || diff > (1<<31)-1
}

// subBorrows reports whether a-b (optionally plus a borrow-in term)
// consumes a borrow. The ARM carry flag after a subtraction is the
// logical negation of this: C is set when NO borrow occurred.
func subBorrows(a, b uint32, extra ...uint32) bool {
	diff := int64(a) - int64(b)
	for _, e := range extra {
		diff += int64(e) - 1
	}
	return diff < 0
}
