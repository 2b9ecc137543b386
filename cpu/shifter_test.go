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
	"testing"

	"github.com/arm7tdmi/gbacore/test"
)

func TestLSLByZeroImmediateLeavesCarryUnchanged(t *testing.T) {
	result, carry := shift(shiftLSL, true, true, 0xFFFFFFFF, 0, true)
	test.Equate(t, result, uint32(0xFFFFFFFF))
	test.Equate(t, carry, true)

	_, carry = shift(shiftLSL, true, true, 0xFFFFFFFF, 0, false)
	test.Equate(t, carry, false)
}

func TestLSRByZeroImmediateIsLSRBy32(t *testing.T) {
	result, carry := shift(shiftLSR, true, true, 0x80000000, 0, false)
	test.Equate(t, result, uint32(0))
	test.Equate(t, carry, true)

	result, carry = shift(shiftLSR, true, true, 0x7FFFFFFF, 0, false)
	test.Equate(t, result, uint32(0))
	test.Equate(t, carry, false)
}

func TestRORByZeroImmediateIsRRX(t *testing.T) {
	// RRX with carry-in set: result's top bit comes from carry, bottom bit
	// of operand becomes the new carry-out.
	result, carry := shift(shiftROR, true, true, 0x00000001, 0, true)
	test.Equate(t, result, uint32(0x80000000))
	test.Equate(t, carry, true)

	result, carry = shift(shiftROR, true, true, 0x00000002, 0, false)
	test.Equate(t, result, uint32(0x00000001))
	test.Equate(t, carry, false)
}

func TestRegisterSuppliedZeroShiftPassesThrough(t *testing.T) {
	// A register-supplied shift amount of 0 (imm=false) is never
	// special-cased: operand and carry both pass through unchanged.
	for _, st := range []shiftType{shiftLSL, shiftLSR, shiftASR, shiftROR} {
		result, carry := shift(st, false, true, 0xDEADBEEF, 0, true)
		test.Equate(t, result, uint32(0xDEADBEEF))
		test.Equate(t, carry, true)
	}
}

func TestLSLCarryOutIsLastBitShiftedOut(t *testing.T) {
	result, carry := shift(shiftLSL, true, false, 0x80000001, 1, false)
	test.Equate(t, result, uint32(0x00000002))
	test.Equate(t, carry, true)
}

func TestASRSignExtendsNegativeOperand(t *testing.T) {
	result, carry := shift(shiftASR, true, true, 0x80000000, 32, false)
	test.Equate(t, result, uint32(0xFFFFFFFF))
	test.Equate(t, carry, true)
}

func TestRORRotatesBitsAroundTheWord(t *testing.T) {
	result, carry := shift(shiftROR, true, false, 0x00000001, 1, false)
	test.Equate(t, result, uint32(0x80000000))
	test.Equate(t, carry, true)
}
