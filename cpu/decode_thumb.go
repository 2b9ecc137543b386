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
	"github.com/arm7tdmi/gbacore/errors"
	"github.com/arm7tdmi/gbacore/logger"
)

// thumb family mask/test patterns, 16 bits wide, matched against the
// fetched THUMB halfword zero-extended into a uint32.
const (
	thumbShiftMask  = 0b111_00_00000_000_000
	thumbShiftTest  = 0b000_00_00000_000_000
	thumbDataRegMask = 0b11111_00_000_000_000
	thumbDataRegTest = 0b00011_00_000_000_000
	thumbDataImmMask = 0b111_00_000_00000000
	thumbDataImmTest = 0b001_00_000_00000000
	thumbALUMask    = 0b111111_0000_000_000
	thumbALUTest    = 0b010000_0000_000_000
	thumbHiRegMask  = 0b111111_00_00_000_000
	thumbHiRegTest  = 0b010001_00_00_000_000
	thumbAdrMask    = 0b1111_0_000_00000000
	thumbAdrTest    = 0b1010_0_000_00000000
	thumbStackAdjMask = 0b11111111_00000000
	thumbStackAdjTest = 0b10110000_00000000
	thumbPCRelMask  = 0b11111_000_00000000
	thumbPCRelTest  = 0b01001_000_00000000
	thumbTransRegMask = 0b1111_00_1_000_000_000
	thumbTransRegTest = 0b0101_00_0_000_000_000
	thumbTransSignedMask = 0b1111_00_1_000_000_000
	thumbTransSignedTest = 0b0101_00_1_000_000_000
	thumbTransImmMask = 0b111_00_00000_000_000
	thumbTransImmTest = 0b011_00_00000_000_000
	thumbTransHalfMask = 0b1111_0_00000_000_000
	thumbTransHalfTest = 0b1000_0_00000_000_000
	thumbTransStackMask = 0b1111_0_000_00000000
	thumbTransStackTest = 0b1001_0_000_00000000
	thumbPushPopMask = 0b1111_0_11_0_00000000
	thumbPushPopTest = 0b1011_0_10_0_00000000
	thumbBlockMask  = 0b1111_0_000_00000000
	thumbBlockTest  = 0b1100_0_000_00000000
	thumbCondBranchMask = 0b1111_0000_00000000
	thumbCondBranchTest = 0b1101_0000_00000000
	thumbSWIMask    = 0b11111111_00000000
	thumbSWITest    = 0b11011111_00000000
	thumbBranchMask = 0b11111_00000000000
	thumbBranchTest = 0b11100_00000000000
	thumbBranchLinkMask = 0b1111_000000000000
	thumbBranchLinkTest = 0b1111_000000000000
)

const thumbConditionAL = 0xE << armConditionShift

func buildThumbTable() []decoderEntry {
	t := []decoderEntry{
		{thumbShiftMask, thumbShiftTest, (*CPU).thumbMoveShifted, "thumb move shifted register"},
		{thumbDataRegMask, thumbDataRegTest, (*CPU).thumbAddSubtract, "thumb add/subtract"},
		{thumbDataImmMask, thumbDataImmTest, (*CPU).thumbDataImmediate, "thumb mov/cmp/add/sub immediate"},
		{thumbALUMask, thumbALUTest, (*CPU).thumbALU, "thumb alu operation"},
		{thumbHiRegMask, thumbHiRegTest, (*CPU).thumbHiRegister, "thumb hi register operation / bx"},
		{thumbPCRelMask, thumbPCRelTest, (*CPU).thumbPCRelativeLoad, "thumb pc-relative load"},
		{thumbTransRegMask, thumbTransRegTest, (*CPU).thumbTransRegOffset, "thumb load/store register offset"},
		{thumbTransSignedMask, thumbTransSignedTest, (*CPU).thumbTransSignExtended, "thumb load/store sign-extended"},
		{thumbTransImmMask, thumbTransImmTest, (*CPU).thumbTransImmOffset, "thumb load/store immediate offset"},
		{thumbTransHalfMask, thumbTransHalfTest, (*CPU).thumbTransHalfword, "thumb load/store halfword"},
		{thumbTransStackMask, thumbTransStackTest, (*CPU).thumbTransStack, "thumb sp-relative load/store"},
		{thumbAdrMask, thumbAdrTest, (*CPU).thumbLoadAddress, "thumb load address"},
		{thumbStackAdjMask, thumbStackAdjTest, (*CPU).thumbAddOffsetToSP, "thumb add offset to sp"},
		{thumbPushPopMask, thumbPushPopTest, (*CPU).thumbPushPop, "thumb push/pop registers"},
		{thumbBlockMask, thumbBlockTest, (*CPU).thumbBlockTransfer, "thumb multiple load/store"},
		{thumbCondBranchMask, thumbCondBranchTest, (*CPU).thumbConditionalBranch, "thumb conditional branch"},
		{thumbSWIMask, thumbSWITest, (*CPU).thumbSoftwareInterrupt, "thumb software interrupt"},
		{thumbBranchMask, thumbBranchTest, (*CPU).thumbUnconditionalBranch, "thumb unconditional branch"},
		{thumbBranchLinkMask, thumbBranchLinkTest, (*CPU).thumbBranchLink, "thumb long branch with link"},
	}
	sortDecoderTable(t)
	return t
}

// dispatchThumb looks up the re-encoded opcode in the THUMB table and
// executes the match. Mirrors dispatchARM's miss handling: logged and
// recorded, not auto-raised.
func (c *CPU) dispatchThumb(opcode uint16) {
	entry, ok := lookup(c.thumbTable, uint32(opcode))
	if !ok {
		c.log.Logf(logger.Allow, "cpu", errors.CPUDecodeMiss, uint32(opcode))
		c.Faults.Record(faults.IllegalInstruction, c.reg.pc-thumbWordLength, 0)
		return
	}
	entry.execute(c, uint32(opcode))
}

// thumbMoveShifted re-encodes "LSL/LSR/ASR Rd, Rs, #imm5" as an ARM MOV
// with the equivalent shift field.
func (c *CPU) thumbMoveShifted(opcode uint32) {
	st := (opcode >> 11) & 0b11
	amount := (opcode >> 6) & 0b11111
	regS := (opcode >> 3) & 0b111
	regD := opcode & 0b111

	armOp := thumbConditionAL | (0xD << 21) | (1 << 20) | (regD << 12) | (amount << 7) | (st << 5) | regS
	c.execDataProc(armOp)
}

// thumbAddSubtract re-encodes "ADD/SUB Rd, Rs, Rn" and the #imm3 immediate
// forms as ARM ADD/SUB.
func (c *CPU) thumbAddSubtract(opcode uint32) {
	immediate := opcode&(1<<10) != 0
	subtract := opcode&(1<<9) != 0
	operand := (opcode >> 6) & 0b111
	regS := (opcode >> 3) & 0b111
	regD := opcode & 0b111

	dataOp := uint32(0x4) // ADD
	if subtract {
		dataOp = 0x2 // SUB
	}

	var armOp uint32
	if immediate {
		armOp = thumbConditionAL | (1 << 25) | (dataOp << 21) | (1 << 20) | (regS << 16) | (regD << 12) | operand
	} else {
		armOp = thumbConditionAL | (dataOp << 21) | (1 << 20) | (regS << 16) | (regD << 12) | operand
	}
	c.execDataProc(armOp)
}

// thumbDataImmediate re-encodes "MOV/CMP/ADD/SUB Rd, #imm8".
func (c *CPU) thumbDataImmediate(opcode uint32) {
	op := (opcode >> 11) & 0b11
	regD := (opcode >> 8) & 0b111
	imm := opcode & 0xFF

	var dataOp uint32
	switch op {
	case 0b00:
		dataOp = 0xD // MOV
	case 0b01:
		dataOp = 0xA // CMP
	case 0b10:
		dataOp = 0x4 // ADD
	case 0b11:
		dataOp = 0x2 // SUB
	}

	regN := regD
	if op == 0b00 {
		regN = 0
	}
	armOp := thumbConditionAL | (1 << 25) | (dataOp << 21) | (1 << 20) | (regN << 16) | (regD << 12) | imm
	c.execDataProc(armOp)
}

// thumbALUOps maps the 4-bit THUMB ALU selector to an ARM data-processing
// opcode. LSL/LSR/ASR/ROR and NEG/MUL are handled by dedicated branches in
// thumbALU below rather than this table, since they don't correspond to a
// single ARM dataproc opcode value.
var thumbALUOps = [16]uint32{
	0x0: 0x0, // AND
	0x1: 0x1, // EOR
	0x5: 0x5, // ADC
	0x6: 0x6, // SBC
	0x8: 0x8, // TST
	0xA: 0xA, // CMP
	0xB: 0xB, // CMN
	0xC: 0xC, // ORR
	0xE: 0xE, // BIC
	0xF: 0xF, // MVN
}

// thumbALU re-encodes the sixteen register-register ALU operations. Shifts
// (LSL/LSR/ASR/ROR) become an ARM MOV with a register-specified shift
// amount; NEG becomes RSB Rd, Rs, #0; MUL becomes ARM MUL; everything else
// maps directly onto the matching ARM data-processing opcode.
func (c *CPU) thumbALU(opcode uint32) {
	op := (opcode >> 6) & 0b1111
	regS := (opcode >> 3) & 0b111
	regD := opcode & 0b111

	switch op {
	case 0x2, 0x3, 0x4, 0x7: // LSL, LSR, ASR, ROR
		var st uint32
		switch op {
		case 0x2:
			st = uint32(shiftLSL)
		case 0x3:
			st = uint32(shiftLSR)
		case 0x4:
			st = uint32(shiftASR)
		case 0x7:
			st = uint32(shiftROR)
		}
		armOp := thumbConditionAL | (0xD << 21) | (1 << 20) | (regD << 12) | (regS << 8) | (1 << 4) | (st << 5) | regD
		c.execDataProc(armOp)
	case 0x9: // NEG
		armOp := thumbConditionAL | (1 << 25) | (0x3 << 21) | (1 << 20) | (regS << 16) | (regD << 12)
		c.execDataProc(armOp)
	case 0xD: // MUL
		armOp := thumbConditionAL | (1 << 20) | (regD << 16) | (regS << 8) | (1 << 4) | 0b1001<<4 | regD
		c.execMultiply(armOp)
	default:
		dataOp := thumbALUOps[op]
		armOp := thumbConditionAL | (dataOp << 21) | (1 << 20) | (regD << 16) | (regD << 12) | regS
		c.execDataProc(armOp)
	}
}

// thumbHiRegister re-encodes ADD/CMP/MOV on the hi registers (r8-r15) and
// the BX form used to switch back to ARM state.
func (c *CPU) thumbHiRegister(opcode uint32) {
	op := (opcode >> 8) & 0b11
	hiS := opcode&(1<<6) != 0
	hiD := opcode&(1<<7) != 0
	regS := (opcode >> 3) & 0b111
	if hiS {
		regS += 8
	}
	regD := opcode & 0b111
	if hiD {
		regD += 8
	}

	if op == 0b11 { // BX
		armOp := thumbConditionAL | armBranchExTest | regS
		c.execBranchExchange(armOp)
		return
	}

	var dataOp uint32
	switch op {
	case 0b00:
		dataOp = 0x4 // ADD
	case 0b01:
		dataOp = 0xA // CMP
	case 0b10:
		dataOp = 0xD // MOV
	}
	setFlags := uint32(0)
	if op == 0b01 {
		setFlags = 1 << 20
	}
	armOp := thumbConditionAL | (dataOp << 21) | setFlags | (regD << 16) | (regD << 12) | regS
	c.execDataProc(armOp)
}

// thumbPCRelativeLoad re-encodes "LDR Rd, [PC, #imm8*4]". The value the
// THUMB reference uses for PC is the word-aligned address of the
// instruction plus 4; the decode loop has already advanced c.reg.pc by
// thumbWordLength past the instruction's own address, so only one more
// thumbWordLength is needed to reach that point before masking.
func (c *CPU) thumbPCRelativeLoad(opcode uint32) {
	regD := (opcode >> 8) & 0b111
	imm := (opcode & 0xFF) * 4

	armOp := thumbConditionAL | (1 << 24) | (1 << 23) | (1 << 20) | (regProgramCounter << 16) | (regD << 12) | imm
	saved := c.reg.pc
	c.reg.pc = (saved + thumbWordLength) &^ 0b11
	c.execTransSingle(armOp)
	c.reg.pc = saved
}

// thumbTransRegOffset re-encodes "STR/LDR/STRB/LDRB Rd, [Rb, Ro]".
func (c *CPU) thumbTransRegOffset(opcode uint32) {
	byteTransfer := opcode&(1<<10) != 0
	load := opcode&(1<<11) != 0
	regO := (opcode >> 6) & 0b111
	regB := (opcode >> 3) & 0b111
	regD := opcode & 0b111

	var flags uint32
	flags |= 1 << 24 // pre-indexed
	flags |= 1 << 23 // add
	if byteTransfer {
		flags |= 1 << 22
	}
	if load {
		flags |= 1 << 20
	}
	armOp := thumbConditionAL | flags | (regB << 16) | (regD << 12) | regO
	c.execTransSingle(armOp)
}

// thumbTransSignExtended re-encodes "STRH/LDRH/LDSB/LDSH Rd, [Rb, Ro]".
func (c *CPU) thumbTransSignExtended(opcode uint32) {
	signOrHalf := (opcode >> 10) & 0b11
	regO := (opcode >> 6) & 0b111
	regB := (opcode >> 3) & 0b111
	regD := opcode & 0b111

	var transferType uint32
	var load bool
	switch signOrHalf {
	case 0b00: // STRH
		transferType = 0b01
		load = false
	case 0b01: // LDSB (sign-extended byte load is not a "half" family on
		// real hardware, but the reference decoder dispatches it through
		// the same half/signed-transfer executor with transferType 0b10)
		transferType = 0b10
		load = true
	case 0b10: // LDRH
		transferType = 0b01
		load = true
	case 0b11: // LDSH
		transferType = 0b11
		load = true
	}

	var flags uint32
	flags |= 1 << 24 // pre-indexed
	flags |= 1 << 23 // add
	flags |= 1 << 7
	flags |= transferType << 5
	flags |= 1 << 4
	if load {
		flags |= 1 << 20
	}
	armOp := thumbConditionAL | flags | (regB << 16) | (regD << 12) | regO
	c.execTransHalf(armOp)
}

// thumbTransImmOffset re-encodes "STR/LDR/STRB/LDRB Rd, [Rb, #imm]". The
// immediate is scaled by four for the word form, matching the THUMB
// encoding's implicit alignment.
func (c *CPU) thumbTransImmOffset(opcode uint32) {
	byteTransfer := opcode&(1<<12) != 0
	load := opcode&(1<<11) != 0
	imm := (opcode >> 6) & 0b11111
	regB := (opcode >> 3) & 0b111
	regD := opcode & 0b111

	if !byteTransfer {
		imm *= 4
	}

	var flags uint32
	flags |= 1 << 24
	flags |= 1 << 23
	if byteTransfer {
		flags |= 1 << 22
	}
	if load {
		flags |= 1 << 20
	}
	armOp := thumbConditionAL | flags | (regB << 16) | (regD << 12) | imm
	c.execTransSingle(armOp)
}

// thumbTransHalfword re-encodes "STRH/LDRH Rd, [Rb, #imm5*2]".
func (c *CPU) thumbTransHalfword(opcode uint32) {
	load := opcode&(1<<11) != 0
	imm := ((opcode >> 6) & 0b11111) * 2
	regB := (opcode >> 3) & 0b111
	regD := opcode & 0b111

	immLo := imm & 0b1111
	immHi := (imm >> 4) & 0b1111
	var flags uint32
	flags |= 1 << 24
	flags |= 1 << 23
	flags |= 1 << 22 // immediate offset form
	flags |= 0b01 << 5
	flags |= 1 << 7
	flags |= 1 << 4
	if load {
		flags |= 1 << 20
	}
	armOp := thumbConditionAL | flags | (regB << 16) | (regD << 12) | (immHi << 8) | immLo
	c.execTransHalf(armOp)
}

// thumbTransStack re-encodes "STR/LDR Rd, [SP, #imm8*4]".
func (c *CPU) thumbTransStack(opcode uint32) {
	load := opcode&(1<<11) != 0
	regD := (opcode >> 8) & 0b111
	imm := (opcode & 0xFF) * 4

	var flags uint32
	flags |= 1 << 24
	flags |= 1 << 23
	if load {
		flags |= 1 << 20
	}
	armOp := thumbConditionAL | flags | (regStackPointer << 16) | (regD << 12) | imm
	c.execTransSingle(armOp)
}

// thumbLoadAddress re-encodes "ADD Rd, PC/SP, #imm8*4" (address
// calculation, not a memory access).
func (c *CPU) thumbLoadAddress(opcode uint32) {
	useSP := opcode&(1<<11) != 0
	regD := (opcode >> 8) & 0b111
	imm := (opcode & 0xFF) * 4

	base := uint32(regProgramCounter)
	if useSP {
		base = regStackPointer
	}
	// imm is imm8*4; the ARM rotated-immediate form re-derives it as
	// imm8 rotated right by 30 (equivalently left by 2), which is exact
	// since imm8 only occupies the low 8 bits.
	armOp := thumbConditionAL | (1 << 25) | (0x4 << 21) | (base << 16) | (regD << 12) | (0xF << 8) | (opcode & 0xFF)
	_ = imm

	if useSP {
		c.execDataProc(armOp)
		return
	}
	// PC form: THUMB requires the word-aligned address of the
	// instruction plus 4; c.reg.pc has already advanced by
	// thumbWordLength past the instruction's own address.
	saved := c.reg.pc
	c.reg.pc = (saved + thumbWordLength) &^ 0b11
	c.execDataProc(armOp)
	c.reg.pc = saved
}

// thumbAddOffsetToSP re-encodes "ADD/SUB SP, #imm7*4".
func (c *CPU) thumbAddOffsetToSP(opcode uint32) {
	negative := opcode&(1<<7) != 0

	dataOp := uint32(0x4) // ADD
	if negative {
		dataOp = 0x2 // SUB
	}
	// #imm7*4 re-derived as imm7 rotated right by 30, exact since imm7
	// only occupies the low 7 bits.
	armOp := thumbConditionAL | (1 << 25) | (dataOp << 21) | (regStackPointer << 16) | (regStackPointer << 12) | (0xF << 8) | (opcode & 0x7F)
	c.execDataProc(armOp)
}

// thumbPushPop re-encodes PUSH/POP, which are STMDB/LDMIA on SP with an
// always-on write-back and an optional LR/PC slot.
func (c *CPU) thumbPushPop(opcode uint32) {
	load := opcode&(1<<11) != 0
	storeLRorPC := opcode&(1<<8) != 0
	regList := opcode & 0xFF

	if storeLRorPC {
		if load {
			regList |= 1 << regProgramCounter
		} else {
			regList |= 1 << regLink
		}
	}

	var flags uint32
	flags |= 1 << 21 // write-back
	if load {
		// POP is LDMIA: post-indexed, add.
		flags |= 1 << 20
		flags |= 1 << 23
	} else {
		// PUSH is STMDB: pre-indexed, subtract.
		flags |= 1 << 24
	}
	armOp := thumbConditionAL | flags | (regStackPointer << 16) | regList
	c.execBlockTransfer(armOp)
}

// thumbBlockTransfer re-encodes "STMIA/LDMIA Rb!, {Rlist}".
func (c *CPU) thumbBlockTransfer(opcode uint32) {
	load := opcode&(1<<11) != 0
	regB := (opcode >> 8) & 0b111
	regList := opcode & 0xFF

	var flags uint32
	flags |= 1 << 23 // add
	flags |= 1 << 21 // write-back
	if load {
		flags |= 1 << 20
	}
	armOp := thumbConditionAL | flags | (regB << 16) | regList
	c.execBlockTransfer(armOp)
}

// thumbConditionalBranch implements "Bcc #imm8*2" directly rather than
// re-encoding through execBranch: THUMB's halfword-granular offset and
// instr+4 base don't survive a round trip through ARM's word-granular
// 24-bit field (execBranch adds armWordLength to a PC that has only
// advanced by thumbWordLength, landing 2 bytes short of instr+4).
func (c *CPU) thumbConditionalBranch(opcode uint32) {
	cond := (opcode >> 8) & 0b1111
	if !checkCondition(cond, c.status) {
		return
	}
	offset := int32(int8(opcode&0xFF)) * 2
	c.reg.pc = uint32(int32(c.reg.pc+thumbWordLength) + offset)
}

// thumbSoftwareInterrupt re-encodes "SWI #imm8".
func (c *CPU) thumbSoftwareInterrupt(opcode uint32) {
	armOp := uint32(thumbConditionAL | armSWITest)
	c.execSoftwareInterrupt(armOp)
}

// thumbUnconditionalBranch implements "B #imm11*2" directly, for the same
// reason as thumbConditionalBranch: the target must be computed against
// instr+4 with a halfword-granular, sign-extended 11-bit offset, which
// execBranch's word-granular 24-bit field cannot represent faithfully.
func (c *CPU) thumbUnconditionalBranch(opcode uint32) {
	offset := int32(opcode<<21) >> 21 // sign-extend 11 bits
	offset *= 2
	c.reg.pc = uint32(int32(c.reg.pc+thumbWordLength) + offset)
}

// thumbBranchLink implements BL's two-halfword encoding. The first
// halfword (H=0) stashes PC+(offsetHi<<12) in LR, where PC is the address
// of that first instruction plus 4; the second (H=1) computes the final
// target from LR and the low 11 bits, then sets LR to the address of the
// instruction after the second halfword with bit 0 set (THUMB return
// marker). c.reg.pc has already advanced by thumbWordLength past each
// halfword's own address by the time this runs.
func (c *CPU) thumbBranchLink(opcode uint32) {
	high := opcode&(1<<11) != 0
	offset := opcode & 0x7FF

	if !high {
		signExtended := int32(offset<<21) >> 21
		pc := int32(c.reg.pc) + thumbWordLength
		c.reg.set(regLink, c.status.Mode, false, uint32(pc+(signExtended<<12)))
		return
	}

	lr := c.reg.get(regLink, c.status.Mode, false)
	target := lr + (offset << 1)
	returnAddr := c.reg.pc | 1
	c.reg.set(regLink, c.status.Mode, false, returnAddr)
	c.reg.pc = target
}
