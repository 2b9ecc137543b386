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

// Package cpu implements the ARM7TDMI instruction interpreter: register
// banking across the seven processor modes, the ARM and THUMB decoders, and
// the exception-entry sequence. THUMB opcodes are never executed directly;
// each one is re-encoded into an equivalent ARM opcode (condition field
// forced to AL) and dispatched through the ARM executors, so the ARM
// executors are the one place instruction semantics live.
package cpu

import (
	"github.com/arm7tdmi/gbacore/cpu/faults"
	"github.com/arm7tdmi/gbacore/errors"
	"github.com/arm7tdmi/gbacore/logger"
)

// Bus is the memory interface the cpu package requires. *bus.Bus satisfies
// this without either package importing the other's internals.
type Bus interface {
	Read8(addr uint32) uint8
	Read16(addr uint32) uint16
	Read32(addr uint32) uint32
	Write8(addr uint32, val uint8)
	Write16(addr uint32, val uint16)
	Write32(addr uint32, val uint32)
}

// CPU is an ARM7TDMI core: register file, current flags, and the decoder
// tables that drive Cycle.
type CPU struct {
	mem Bus
	cfg Config

	reg    registers
	status Status

	armTable   []decoderEntry
	thumbTable []decoderEntry
	cyclesRun  uint64

	Faults *faults.Faults
	log    *logger.Logger
}

// New creates a CPU wired to mem, configured by cfg, and leaves it in the
// same state Reset would.
func New(mem Bus, cfg Config) *CPU {
	c := &CPU{
		mem:        mem,
		cfg:        cfg,
		armTable:   buildARMTable(),
		thumbTable: buildThumbTable(),
		Faults:     faults.NewFaults(),
		log:        logger.NewLogger(cfg.logCapacity()),
	}
	c.Reset()
	return c
}

// Reset puts the cpu through the ARM7TDMI reset exception: the configured
// initial mode (supervisor, on real hardware), IRQ/FIQ disabled, THUMB
// cleared, PC set to the reset vector. With Config.RandomState set, the
// general-purpose registers are seeded with pseudo-random values instead of
// zero, matching real silicon's indeterminate power-on state.
func (c *CPU) Reset() {
	c.reg.reset()
	c.cfg.seedRegisters(&c.reg)
	c.status = Status{Mode: c.cfg.resetMode(), IRQDisable: true, FIQDisable: true}
	c.reg.pc = vectorReset
	c.reg.cpsr = c.status.ToUint32()
}

// Interrupt raises IRQ if the core's I flag allows it.
func (c *CPU) Interrupt() {
	if c.status.IRQDisable {
		return
	}
	c.triggerException(vectorIRQ, ModeIRQ, false)
}

// FastInterrupt raises FIQ if the core's F flag allows it.
func (c *CPU) FastInterrupt() {
	if c.status.FIQDisable {
		return
	}
	c.triggerException(vectorFIQ, ModeFIQ, true)
}

// TriggerUndefined enters the undefined-instruction exception. Cycle does
// not call this itself on a decode miss -- it only logs and records a fault
// (see dispatchARM/dispatchThumb) -- so this exists purely as an opt-in
// entry point for a caller (eg. to model a coprocessor instruction this
// core doesn't implement, or a future auto-raise policy).
func (c *CPU) TriggerUndefined() {
	c.triggerException(vectorUndefined, ModeUndefined, false)
}

// TriggerPrefetchAbort enters the prefetch-abort exception and records a
// faults.UnmappedAccess entry. Cycle never calls this on its own -- the bus
// returns zero for unmapped instruction fetches rather than aborting -- so
// this exists purely as an entry point for a future MMU/fault layer.
func (c *CPU) TriggerPrefetchAbort(instructionAddr uint32) {
	c.Faults.Record(faults.UnmappedAccess, instructionAddr, instructionAddr)
	c.triggerException(vectorPrefetch, ModeAbort, false)
}

// TriggerDataAbort enters the data-abort exception and records a
// faults.UnmappedAccess entry for the offending access address. Like
// TriggerPrefetchAbort, nothing in this core calls it automatically today.
func (c *CPU) TriggerDataAbort(instructionAddr, accessAddr uint32) {
	c.Faults.Record(faults.UnmappedAccess, instructionAddr, accessAddr)
	c.triggerException(vectorDataAbort, ModeAbort, false)
}

// triggerException performs the common exception-entry sequence: save PC to
// LR and CPSR to SPSR of the target mode, switch mode, clear T, set I (and
// F for reset/FIQ), then jump to the vector.
func (c *CPU) triggerException(vector uint32, mode Mode, disableFIQ bool) {
	previousCPSR := c.reg.cpsr
	returnPC := c.reg.pc

	c.setMode(mode)
	c.reg.set(regLink, mode, false, returnPC)

	if spsr, isUserOrSystem := c.reg.currentSPSR(mode); !isUserOrSystem {
		*spsr = previousCPSR
	}

	c.status.Thumb = false
	c.status.IRQDisable = true
	if disableFIQ {
		c.status.FIQDisable = true
	}
	c.reg.cpsr = c.status.ToUint32()
	c.reg.pc = vector
}

func (c *CPU) setMode(mode Mode) {
	c.status.Mode = mode
	c.reg.cpsr = c.reg.cpsr&^0b11111 | mode.bits()
}

// Cycle fetches, decodes and executes a single instruction. In THUMB state
// the fetched halfword is re-encoded into an ARM opcode before dispatch.
// The return value is reserved for future cycle-accurate accounting and is
// always 0 today.
func (c *CPU) Cycle() uint32 {
	if c.status.Thumb {
		c.cycleThumb()
	} else {
		c.cycleARM()
	}
	return 0
}

func (c *CPU) cycleARM() {
	pc := c.reg.pc
	opcode := c.mem.Read32(pc)
	c.reg.pc = pc + armWordLength
	c.cyclesRun++
	c.dispatchARM(opcode)
}

func (c *CPU) cycleThumb() {
	pc := c.reg.pc
	opcode := c.mem.Read16(pc)
	c.reg.pc = pc + thumbWordLength
	c.cyclesRun++
	c.dispatchThumb(opcode)
}

// dispatchARM looks up opcode in the ARM table and executes the match. A
// miss is logged and recorded as an illegal-instruction fault but, per the
// decode-miss error design, does not itself raise the Undefined exception --
// TriggerUndefined is there for a caller that wants to opt in.
func (c *CPU) dispatchARM(opcode uint32) {
	entry, ok := lookup(c.armTable, opcode)
	if !ok {
		c.log.Logf(logger.Allow, "cpu", errors.CPUDecodeMiss, opcode)
		c.Faults.Record(faults.IllegalInstruction, c.reg.pc-armWordLength, 0)
		return
	}
	entry.execute(c, opcode)
}

// getReg reads general-purpose register n honouring the current mode's
// register bank.
func (c *CPU) getReg(n uint32) uint32 {
	return c.reg.get(n, c.status.Mode, false)
}

// setReg writes general-purpose register n honouring the current mode's
// register bank.
func (c *CPU) setReg(n uint32, v uint32) {
	c.reg.set(n, c.status.Mode, false, v)
}

// ReadRegister exposes register n (0-15) for debuggers and tests.
func (c *CPU) ReadRegister(n int) uint32 {
	return c.getReg(uint32(n))
}

// CPSR returns the current program status register, packed.
func (c *CPU) CPSR() uint32 {
	return c.status.ToUint32()
}

// Mode returns the cpu's current processor mode.
func (c *CPU) Mode() Mode {
	return c.status.Mode
}
