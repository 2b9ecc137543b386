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

import "strings"

// Mode identifies one of the seven ARM7TDMI processor modes. The numeric
// value is not the mode's bit pattern in CPSR[4:0]; use mode.bits()/modeOf()
// to translate to and from the real encoding.
type Mode int

const (
	ModeUser Mode = iota
	ModeFIQ
	ModeIRQ
	ModeSupervisor
	ModeAbort
	ModeUndefined
	ModeSystem
)

func (m Mode) String() string {
	switch m {
	case ModeUser:
		return "USR"
	case ModeFIQ:
		return "FIQ"
	case ModeIRQ:
		return "IRQ"
	case ModeSupervisor:
		return "SVC"
	case ModeAbort:
		return "ABT"
	case ModeUndefined:
		return "UND"
	case ModeSystem:
		return "SYS"
	default:
		return "???"
	}
}

// bits returns the 5-bit mode field as it appears in CPSR[4:0].
func (m Mode) bits() uint32 {
	switch m {
	case ModeUser:
		return 0b10000
	case ModeFIQ:
		return 0b10001
	case ModeIRQ:
		return 0b10010
	case ModeSupervisor:
		return 0b10011
	case ModeAbort:
		return 0b10111
	case ModeUndefined:
		return 0b11011
	case ModeSystem:
		return 0b11111
	default:
		return 0b10000
	}
}

// modeOf decodes the mode field of a CPSR/SPSR value. An unrecognised
// pattern decodes as ModeUndefined, mirroring how the ARM7TDMI treats a
// reserved mode encoding.
func modeOf(psr uint32) Mode {
	switch psr & 0b11111 {
	case 0b10000:
		return ModeUser
	case 0b10001:
		return ModeFIQ
	case 0b10010:
		return ModeIRQ
	case 0b10011:
		return ModeSupervisor
	case 0b10111:
		return ModeAbort
	case 0b11111:
		return ModeSystem
	default:
		return ModeUndefined
	}
}

// Status is the decomposed form of a CPSR or SPSR: the four condition flags,
// the two interrupt masks, the instruction-set state bit, and the current
// mode field. ToUint32/FromUint32 convert to and from the packed 32-bit
// register representation the cpu actually stores.
type Status struct {
	Negative bool
	Zero     bool
	Carry    bool
	Overflow bool
	IRQDisable bool
	FIQDisable bool
	Thumb      bool
	Mode       Mode
}

// FromUint32 decomposes a packed CPSR/SPSR value.
func (s *Status) FromUint32(v uint32) {
	s.Negative = v&statusBitN != 0
	s.Zero = v&statusBitZ != 0
	s.Carry = v&statusBitC != 0
	s.Overflow = v&statusBitV != 0
	s.IRQDisable = v&statusBitI != 0
	s.FIQDisable = v&statusBitF != 0
	s.Thumb = v&statusBitT != 0
	s.Mode = modeOf(v)
}

// ToUint32 packs the decomposed flags back into CPSR/SPSR form.
func (s Status) ToUint32() uint32 {
	var v uint32
	if s.Negative {
		v |= statusBitN
	}
	if s.Zero {
		v |= statusBitZ
	}
	if s.Carry {
		v |= statusBitC
	}
	if s.Overflow {
		v |= statusBitV
	}
	if s.IRQDisable {
		v |= statusBitI
	}
	if s.FIQDisable {
		v |= statusBitF
	}
	if s.Thumb {
		v |= statusBitT
	}
	v |= s.Mode.bits()
	return v
}

// String renders the flag letters in upper/lower case depending on whether
// each flag is set, following ARM disassembler convention (NZCV).
func (s Status) String() string {
	var b strings.Builder
	writeFlag(&b, 'N', s.Negative)
	writeFlag(&b, 'Z', s.Zero)
	writeFlag(&b, 'C', s.Carry)
	writeFlag(&b, 'V', s.Overflow)
	writeFlag(&b, 'I', s.IRQDisable)
	writeFlag(&b, 'F', s.FIQDisable)
	writeFlag(&b, 'T', s.Thumb)
	b.WriteString(" " + s.Mode.String())
	return b.String()
}

func writeFlag(b *strings.Builder, letter rune, set bool) {
	if set {
		b.WriteRune(letter)
	} else {
		b.WriteRune(letter + ('a' - 'A'))
	}
}
