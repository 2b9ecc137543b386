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

// registers holds the full ARM7TDMI register file: r0-r7 are never banked,
// r8-r12 bank only in FIQ mode, r13/r14 bank across all six privileged
// modes (FIQ/IRQ/SVC/ABT/UND plus the one shared USR/SYS bank), and r15 is
// never banked. cpsr and the five SPSR copies (one per privileged mode)
// round out the set.
type registers struct {
	low   [8]uint32 // r0-r7
	high  [2][5]uint32 // r8-r12, indexed [bank][reg-8]; bank 0 = usr/irq/svc/abt/und/sys, bank 1 = fiq
	bank  [6]uint32    // r13 per mode: usr/sys, fiq, irq, svc, abt, und
	link  [6]uint32    // r14 per mode, same bank order as bank
	pc    uint32
	cpsr  uint32
	spsr  [5]uint32 // fiq, irq, svc, abt, und
}

// bankIndex maps a Mode to its r13/r14/SPSR bank slot. User and System
// share the same r13/r14 bank (there is no SPSR in either).
func bankIndex(m Mode) int {
	switch m {
	case ModeFIQ:
		return 1
	case ModeIRQ:
		return 2
	case ModeSupervisor:
		return 3
	case ModeAbort:
		return 4
	case ModeUndefined:
		return 5
	default:
		return 0
	}
}

// spsrIndex maps a Mode to its SPSR slot, or -1 if the mode has no SPSR.
func spsrIndex(m Mode) int {
	switch m {
	case ModeFIQ:
		return 0
	case ModeIRQ:
		return 1
	case ModeSupervisor:
		return 2
	case ModeAbort:
		return 3
	case ModeUndefined:
		return 4
	default:
		return -1
	}
}

func (r *registers) reset() {
	*r = registers{}
}

// get reads register n as seen by the current mode. forceUser reads the
// user-mode bank regardless of current mode, as LDM^/STM^ require.
func (r *registers) get(n uint32, mode Mode, forceUser bool) uint32 {
	switch {
	case n <= 7:
		return r.low[n]
	case n <= 12:
		if mode == ModeFIQ && !forceUser {
			return r.high[1][n-8]
		}
		return r.high[0][n-8]
	case n == regStackPointer:
		if forceUser {
			return r.bank[0]
		}
		return r.bank[bankIndex(mode)]
	case n == regLink:
		if forceUser {
			return r.link[0]
		}
		return r.link[bankIndex(mode)]
	case n == regProgramCounter:
		return r.pc
	default:
		return 0
	}
}

// set writes register n as seen by the current mode, with the same
// forceUser semantics as get.
func (r *registers) set(n uint32, mode Mode, forceUser bool, v uint32) {
	switch {
	case n <= 7:
		r.low[n] = v
	case n <= 12:
		if mode == ModeFIQ && !forceUser {
			r.high[1][n-8] = v
		} else {
			r.high[0][n-8] = v
		}
	case n == regStackPointer:
		if forceUser {
			r.bank[0] = v
		} else {
			r.bank[bankIndex(mode)] = v
		}
	case n == regLink:
		if forceUser {
			r.link[0] = v
		} else {
			r.link[bankIndex(mode)] = v
		}
	case n == regProgramCounter:
		r.pc = v
	}
}

// currentSPSR returns a pointer to the SPSR of the current mode, and
// whether the current mode is User or System (which have no SPSR of their
// own; writes in that case must be rejected by the caller).
func (r *registers) currentSPSR(mode Mode) (*uint32, bool) {
	i := spsrIndex(mode)
	if i < 0 {
		return &r.cpsr, true
	}
	return &r.spsr[i], false
}
