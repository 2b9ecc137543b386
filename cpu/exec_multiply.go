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

// execMultiply implements MUL and MLA: a 32-bit result, discarding the
// upper half of the 64-bit product.
func (c *CPU) execMultiply(opcode uint32) {
	if !checkCondition(opcode>>armConditionShift, c.status) {
		return
	}

	accumulate := opcode&(1<<21) != 0
	setFlags := opcode&(1<<20) != 0

	regD := (opcode >> 16) & 0b1111
	regN := (opcode >> 12) & 0b1111
	regS := (opcode >> 8) & 0b1111
	regM := opcode & 0b1111

	result := c.getReg(regM) * c.getReg(regS)
	if accumulate {
		result += c.getReg(regN)
	}
	c.setReg(regD, result)

	if setFlags {
		c.status.Zero = result == 0
		c.status.Negative = result&0x80000000 != 0
		c.status.Carry = false
		c.reg.cpsr = c.status.ToUint32()
	}
}

// execMultiplyLong implements UMULL/UMLAL/SMULL/SMLAL, producing a 64-bit
// result split across a register pair.
func (c *CPU) execMultiplyLong(opcode uint32) {
	if !checkCondition(opcode>>armConditionShift, c.status) {
		return
	}

	signed := opcode&(1<<22) != 0
	accumulate := opcode&(1<<21) != 0
	setFlags := opcode&(1<<20) != 0

	regHi := (opcode >> 16) & 0b1111
	regLo := (opcode >> 12) & 0b1111
	regS := (opcode >> 8) & 0b1111
	regM := opcode & 0b1111

	var result uint64
	if signed {
		result = uint64(int64(int32(c.getReg(regM))) * int64(int32(c.getReg(regS))))
	} else {
		result = uint64(c.getReg(regM)) * uint64(c.getReg(regS))
	}

	if accumulate {
		acc := uint64(c.getReg(regHi))<<32 | uint64(c.getReg(regLo))
		result += acc
	}

	c.setReg(regHi, uint32(result>>32))
	c.setReg(regLo, uint32(result))

	if setFlags {
		c.status.Zero = result == 0
		c.status.Negative = result&(1<<63) != 0
		c.status.Carry = false
		c.status.Overflow = false
		c.reg.cpsr = c.status.ToUint32()
	}
}
