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

package cpu_test

import (
	"math/bits"
	"testing"

	"github.com/arm7tdmi/gbacore/test"
)

// blockTransferOpcode assembles an LDM opcode (condition AL, r0 as the base
// register, P=0 S=0 W=1 L=1) with the given U bit and 16-bit register list.
func blockTransferOpcode(addOffset bool, regList uint32) uint32 {
	opcode := uint32(0xE8300000) // AL, block transfer, P=0 U=0 S=0 W=1 L=1, base=r0
	if addOffset {
		opcode |= 1 << 23
	}
	return opcode | (regList & 0xFFFF)
}

// TestBlockTransferWritebackFormula checks, for a handful of non-empty
// register lists that exclude the base register r0 and r15, that writeback equals
// base +/- (popcount(list) * 4) with the sign matching the U bit.
func TestBlockTransferWritebackFormula(t *testing.T) {
	const base = 0x3000 // 0x30 rotated left 8 -- fits the MOV immediate below

	lists := []uint32{
		0b0000_0000_0000_0010, // r1
		0b0000_0000_0010_1010, // r1,r3,r5
		0b0111_1111_1111_1110, // r1..r14
		0b0000_0000_0000_1100, // r2,r3
	}

	for _, regList := range lists {
		for _, addOffset := range []bool{true, false} {
			c, b := prepareCPU()
			poke32(b, 0x00, 0xE3A00C30) // MOV r0, #0x3000
			poke32(b, 0x04, blockTransferOpcode(addOffset, regList))

			c.Cycle()
			test.Equate(t, c.ReadRegister(0), uint32(base))

			c.Cycle()

			count := uint32(bits.OnesCount32(regList))
			want := uint32(base) + count*4
			if !addOffset {
				want = uint32(base) - count*4
			}
			test.Equate(t, c.ReadRegister(0), want)
		}
	}
}

// stmOpcode assembles an STM opcode (condition AL, r0 as the base register,
// S=0 W=0 L=0, {r1,r2} in the register list) with the given P and U bits,
// so all four addressing modes (IA/IB/DA/DB) can be exercised directly.
func stmOpcode(preIndexed, addOffset bool) uint32 {
	opcode := uint32(0xE8000006) // AL, block transfer, P=0 U=0 S=0 W=0 L=0, base=r0, {r1,r2}
	if preIndexed {
		opcode |= 1 << 24
	}
	if addOffset {
		opcode |= 1 << 23
	}
	return opcode
}

// TestBlockTransferAddressingModes checks the four P/U combinations land on
// the architecturally correct addresses for base=0x1000, {r1,r2}: ascending
// writes visit 0x1000 then 0x1004 (IA) or 0x1004 then 0x1008 (IB);
// descending writes visit 0xFFC then 0x1000 (DA) or 0xFF8 then 0xFFC (DB).
// Before the fix, DA and DB swapped which pair of addresses they touched.
func TestBlockTransferAddressingModes(t *testing.T) {
	cases := []struct {
		name                  string
		preIndexed, addOffset bool
		lowAddr, highAddr     uint32
	}{
		{"IA", false, true, 0x1000, 0x1004},
		{"IB", true, true, 0x1004, 0x1008},
		{"DA", false, false, 0xFFC, 0x1000},
		{"DB", true, false, 0xFF8, 0xFFC},
	}

	for _, tc := range cases {
		c, b := prepareCPU()
		poke32(b, 0x00, 0xE3A00C10) // MOV r0, #0x1000
		poke32(b, 0x04, 0xE3A01CAB) // MOV r1, #0xAB00
		poke32(b, 0x08, 0xE3A02CCD) // MOV r2, #0xCD00
		poke32(b, 0x0C, stmOpcode(tc.preIndexed, tc.addOffset))

		for i := 0; i < 4; i++ {
			c.Cycle()
		}

		if got := b.Read32(tc.lowAddr); got != 0xAB00 {
			t.Fatalf("%s: expected r1 (0xab00) at %#x, got %#08x", tc.name, tc.lowAddr, got)
		}
		if got := b.Read32(tc.highAddr); got != 0xCD00 {
			t.Fatalf("%s: expected r2 (0xcd00) at %#x, got %#08x", tc.name, tc.highAddr, got)
		}
	}
}
