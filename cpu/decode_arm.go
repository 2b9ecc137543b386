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

// buildARMTable constructs the ARM instruction decoder table and sorts it
// so the most specific mask/test pair is tried first for any opcode that
// would otherwise match more than one family.
func buildARMTable() []decoderEntry {
	t := []decoderEntry{
		{armDataProc1Mask, armDataProc1Test, (*CPU).execDataProc, "data proc (register shift)"},
		{armDataProc2Mask, armDataProc2Test, (*CPU).execDataProc, "data proc (register-amount shift)"},
		{armDataProc3Mask, armDataProc3Test, (*CPU).execDataProc, "data proc (immediate)"},
		{armMultiply1Mask, armMultiply1Test, (*CPU).execMultiply, "multiply"},
		{armMultiply2Mask, armMultiply2Test, (*CPU).execMultiplyLong, "multiply long"},
		{armBranchExMask, armBranchExTest, (*CPU).execBranchExchange, "branch and exchange"},
		{armBranchMask, armBranchTest, (*CPU).execBranch, "branch (with link)"},
		{armTransSingle1Mask, armTransSingle1Test, (*CPU).execTransSingle, "single transfer (register offset)"},
		{armTransSingle2Mask, armTransSingle2Test, (*CPU).execTransSingle, "single transfer (immediate offset)"},
		{armTransHalf1Mask, armTransHalf1Test, (*CPU).execTransHalf, "halfword/signed transfer (register offset)"},
		{armTransHalf2Mask, armTransHalf2Test, (*CPU).execTransHalf, "halfword/signed transfer (immediate offset)"},
		{armTransSwapMask, armTransSwapTest, (*CPU).execSwap, "single data swap"},
		{armTransBlockMask, armTransBlockTest, (*CPU).execBlockTransfer, "block transfer"},
		{armPSR1Mask, armPSR1Test, (*CPU).execPSRTransfer, "msr (immediate)"},
		{armPSR2Mask, armPSR2Test, (*CPU).execPSRTransfer, "mrs/msr (register)"},
		{armSWIMask, armSWITest, (*CPU).execSoftwareInterrupt, "software interrupt"},
	}
	sortDecoderTable(t)
	return t
}
