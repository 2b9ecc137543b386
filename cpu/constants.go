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

// word lengths and register indices shared across the ARM and THUMB
// decoders.
const (
	armWordLength   = 4
	armWordBitLen   = 32
	thumbWordLength = 2

	regStackPointer    = 13
	regLink            = 14
	regProgramCounter  = 15
	regFIQBankOffset   = 5
	registerListLength = 16
)

// CPSR/SPSR bit shifts.
const (
	statusShiftN = 31
	statusShiftZ = 30
	statusShiftC = 29
	statusShiftV = 28
	statusShiftI = 7
	statusShiftF = 6
	statusShiftT = 5
)

// CPSR/SPSR bit masks derived from the shifts above.
const (
	statusBitN = 1 << statusShiftN
	statusBitZ = 1 << statusShiftZ
	statusBitC = 1 << statusShiftC
	statusBitV = 1 << statusShiftV
	statusBitI = 1 << statusShiftI
	statusBitF = 1 << statusShiftF
	statusBitT = 1 << statusShiftT

	statusFlagsMask   = 0xFF000000
	statusControlMask = 0x000000FF
	statusPreserveMask = ^uint32(statusFlagsMask | statusControlMask)
)

// exception vector addresses.
const (
	vectorReset      = 0x00
	vectorUndefined  = 0x04
	vectorSWI        = 0x08
	vectorPrefetch   = 0x0C
	vectorDataAbort  = 0x10
	vectorIRQ        = 0x18
	vectorFIQ        = 0x1C
)

// condition-shift and ARM family mask/test pairs, grouped by instruction
// family (buildARMTable sorts them by specificity). bit widths match the ARMv4T
// encoding: bits [31:28] hold the condition field in every conditional
// family below.
const (
	armConditionShift = 28

	armDataProc1Mask = 0b0000_111_0000_0_0000_0000_00000_00_1_0000
	armDataProc1Test = 0b0000_000_0000_0_0000_0000_00000_00_0_0000
	armDataProc2Mask = 0b0000_111_0000_0_0000_0000_0000_1_00_1_0000
	armDataProc2Test = 0b0000_000_0000_0_0000_0000_0000_0_00_1_0000
	armDataProc3Mask = 0b0000_111_0000_0_0000_0000_0000_00000000
	armDataProc3Test = 0b0000_001_0000_0_0000_0000_0000_00000000

	armBranchExMask = 0b0000_1111111111111111111111_0_1_0000
	armBranchExTest = 0b0000_0001001011111111111100_0_1_0000
	armBranchMask   = 0b0000_111_0_000000000000000000000000
	armBranchTest   = 0b0000_101_0_000000000000000000000000

	armTransSingle1Mask = 0b0000_111_00000_0000_0000_00000_00_1_0000
	armTransSingle1Test = 0b0000_011_00000_0000_0000_00000_00_0_0000
	armTransSingle2Mask = 0b0000_111_00000_0000_0000_000000000000
	armTransSingle2Test = 0b0000_010_00000_0000_0000_000000000000
	armTransHalf1Mask   = 0b0000_111_00_1_00_0000_0000_1111_1_00_1_0000
	armTransHalf1Test   = 0b0000_000_00_0_00_0000_0000_0000_1_00_1_0000
	armTransHalf2Mask   = 0b0000_111_00_1_00_0000_0000_0000_1_00_1_0000
	armTransHalf2Test   = 0b0000_000_00_1_00_0000_0000_0000_1_00_1_0000
	armTransSwapMask    = 0b0000_11111_0_11_0000_0000_1111_1111_0000
	armTransSwapTest    = 0b0000_00010_0_00_0000_0000_0000_1001_0000
	armTransBlockMask   = 0b0000_111_00000_0000_0000000000000000
	armTransBlockTest   = 0b0000_100_00000_0000_0000000000000000

	armMultiply1Mask = 0b0000_111111_00_0000_0000_0000_1111_0000
	armMultiply1Test = 0b0000_000000_00_0000_0000_0000_1001_0000
	armMultiply2Mask = 0b0000_11111_000_0000_0000_0000_1111_0000
	armMultiply2Test = 0b0000_00001_000_0000_0000_0000_1001_0000

	armPSR1Mask = 0b0000_11111_0_11_0000_0000_0000_00000000
	armPSR1Test = 0b0000_00110_0_10_0000_0000_0000_00000000
	armPSR2Mask = 0b0000_11111_00_1_0000_0000_11111111_0000
	armPSR2Test = 0b0000_00010_00_0_0000_0000_00000000_0000

	armSWIMask = 0b0000_1111_000000000000000000000000
	armSWITest = 0b0000_1111_000000000000000000000000
)
