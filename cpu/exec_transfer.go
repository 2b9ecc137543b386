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

import (
	"github.com/arm7tdmi/gbacore/cpu/faults"
)

func addOrSub(base, offset uint32, add bool) uint32 {
	if add {
		return base + offset
	}
	return base - offset
}

// execTransSingle implements LDR/STR and the byte variants LDRB/STRB, in
// both their immediate-offset and shifted-register-offset encodings.
func (c *CPU) execTransSingle(opcode uint32) {
	if !checkCondition(opcode>>armConditionShift, c.status) {
		return
	}

	immediateOffset := opcode&(1<<25) == 0
	preIndexed := opcode&(1<<24) != 0
	addOffset := opcode&(1<<23) != 0
	byteTransfer := opcode&(1<<22) != 0
	writeBack := opcode&(1<<21) != 0
	load := opcode&(1<<20) != 0

	regN := (opcode >> 16) & 0b1111
	regD := (opcode >> 12) & 0b1111

	var offset uint32
	if immediateOffset {
		offset = opcode & 0xFFF
	} else {
		rm := c.getReg(opcode & 0b1111)
		amount := (opcode >> 7) & 0b11111
		st := shiftType((opcode >> 5) & 0b11)
		offset, _ = shift(st, true, amount == 0, rm, amount, c.status.Carry)
	}

	addr := c.getReg(regN)
	if preIndexed {
		addr = addOrSub(addr, offset, addOffset)
		if writeBack {
			c.setReg(regN, addr)
		}
	}

	if load {
		if byteTransfer {
			c.setReg(regD, uint32(c.mem.Read8(addr)))
		} else {
			c.setReg(regD, c.mem.Read32(addr))
		}
	} else {
		if byteTransfer {
			c.mem.Write8(addr, uint8(c.getReg(regD)))
		} else {
			c.mem.Write32(addr, c.getReg(regD))
		}
	}

	if !preIndexed {
		addr = addOrSub(addr, offset, addOffset)
		c.setReg(regN, addr)
	}
}

// execTransHalf implements LDRH/STRH/LDRSB/LDRSH, in both their
// immediate-offset and register-offset encodings.
func (c *CPU) execTransHalf(opcode uint32) {
	if !checkCondition(opcode>>armConditionShift, c.status) {
		return
	}

	preIndexed := opcode&(1<<24) != 0
	addOffset := opcode&(1<<23) != 0
	immediateOffset := opcode&(1<<22) != 0
	writeBack := opcode&(1<<21) != 0
	load := opcode&(1<<20) != 0

	regN := (opcode >> 16) & 0b1111
	regD := (opcode >> 12) & 0b1111

	var offset uint32
	if immediateOffset {
		offset = ((opcode >> 4) & 0xF0) | (opcode & 0b1111)
	} else {
		offset = c.getReg(opcode & 0b1111)
	}

	addr := c.getReg(regN)
	if preIndexed {
		addr = addOrSub(addr, offset, addOffset)
		if writeBack {
			c.setReg(regN, addr)
		}
	}

	transferType := (opcode >> 5) & 0b11
	if load {
		var data uint32
		switch transferType {
		case 0b01: // LDRH
			data = uint32(c.mem.Read16(addr))
		case 0b10: // LDRSB
			b := c.mem.Read8(addr)
			data = uint32(int32(int8(b)))
		case 0b11: // LDRSH
			h := c.mem.Read16(addr)
			data = uint32(int32(int16(h)))
		}
		c.setReg(regD, data)
	} else if transferType == 0b01 { // STRH is the only store form
		c.mem.Write16(addr, uint16(c.getReg(regD)))
	}

	if !preIndexed {
		addr = addOrSub(addr, offset, addOffset)
		c.setReg(regN, addr)
	}
}

// execSwap implements SWP/SWPB: an atomic load-then-store on this
// single-core model, since nothing else can observe the memory in between.
func (c *CPU) execSwap(opcode uint32) {
	if !checkCondition(opcode>>armConditionShift, c.status) {
		return
	}

	byteTransfer := opcode&(1<<22) != 0
	regN := (opcode >> 16) & 0b1111
	regD := (opcode >> 12) & 0b1111
	regM := opcode & 0b1111

	addr := c.getReg(regN)
	if byteTransfer {
		old := c.mem.Read8(addr)
		c.mem.Write8(addr, uint8(c.getReg(regM)))
		c.setReg(regD, uint32(old))
	} else {
		old := c.mem.Read32(addr)
		c.mem.Write32(addr, c.getReg(regM))
		c.setReg(regD, old)
	}
}

// execBlockTransfer implements LDM/STM, including the user-bank-register
// and mode-change-on-load forms (LDM/STM with the S bit set).
func (c *CPU) execBlockTransfer(opcode uint32) {
	if !checkCondition(opcode>>armConditionShift, c.status) {
		return
	}

	preIndexed := opcode&(1<<24) != 0
	addOffset := opcode&(1<<23) != 0
	sBit := opcode&(1<<22) != 0
	load := opcode&(1<<20) != 0
	writeBackBit := opcode&(1<<21) != 0

	regN := (opcode >> 16) & 0b1111
	regList := opcode & 0xFFFF
	containsPC := regList&(1<<regProgramCounter) != 0

	modeChange := load && containsPC && sBit
	useUserBank := sBit && !modeChange
	writeBack := writeBackBit && !useUserBank

	count := uint32(0)
	for i := 0; i < registerListLength; i++ {
		if regList&(1<<i) != 0 {
			count++
		}
	}
	blockSize := count * armWordLength

	base := c.getReg(regN)

	// The ascending walk (U=1) starts at base, the descending walk (U=0)
	// starts blockSize below it; either way the first word transferred
	// sits one word further in when pre-indexed matches the direction of
	// travel (P==U gives IB/DA's "+4 on the near end", P!=U gives IA/DB).
	var addr uint32
	if addOffset {
		addr = base
		if preIndexed {
			addr += armWordLength
		}
	} else {
		addr = base - blockSize
		if !preIndexed {
			addr += armWordLength
		}
	}

	if !addOffset && base < blockSize {
		c.Faults.Record(faults.StackCollision, c.reg.pc-armWordLength, addr)
	}

	for i := uint32(0); i < registerListLength; i++ {
		if regList&(1<<i) == 0 {
			continue
		}

		if load {
			v := c.mem.Read32(addr)
			c.reg.set(i, c.status.Mode, useUserBank, v)
		} else {
			c.mem.Write32(addr, c.reg.get(i, c.status.Mode, useUserBank))
		}

		addr += armWordLength
	}

	if writeBack {
		c.setReg(regN, addOrSub(base, blockSize, addOffset))
	}

	if modeChange {
		if spsr, isUserOrSystem := c.reg.currentSPSR(c.status.Mode); !isUserOrSystem {
			c.status.FromUint32(*spsr)
			c.reg.cpsr = *spsr
		}
	}
}
