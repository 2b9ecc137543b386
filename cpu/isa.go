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

import "math/bits"

// decoderEntry pairs a mask/test pattern with the executor it dispatches to.
// An opcode matches when (opcode & mask) == test.
type decoderEntry struct {
	mask    uint32
	test    uint32
	execute func(c *CPU, opcode uint32)
	name    string
}

// sortDecoderTable orders entries most-specific-first: more set bits in the
// mask wins, ties broken by the numeric value of the mask, then by the
// higher numeric value of the test pattern. This mirrors the ordering the
// reference decoder builds so that, for any opcode matching more than one family's mask/test pair, the
// narrowest (most specific) family is tried first.
func sortDecoderTable(entries []decoderEntry) {
	less := func(a, b decoderEntry) bool {
		am, bm := bits.OnesCount32(a.mask), bits.OnesCount32(b.mask)
		if am != bm {
			return am > bm
		}
		if a.mask != b.mask {
			return a.mask > b.mask
		}
		return a.test > b.test
	}

	// insertion sort: these tables are small (a dozen or so entries) and
	// built once at CPU construction.
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && less(entries[j], entries[j-1]); j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}
}

// lookup returns the first entry whose mask/test pattern matches opcode, and
// whether a match was found.
func lookup(table []decoderEntry, opcode uint32) (decoderEntry, bool) {
	for _, e := range table {
		if opcode&e.mask == e.test {
			return e, true
		}
	}
	return decoderEntry{}, false
}
