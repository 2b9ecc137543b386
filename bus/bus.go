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

// Package bus implements the GBA address space: six fixed-size regions
// composed from 8-bit primitives into the 16- and 32-bit little-endian
// accesses the cpu package requires.
package bus

import (
	"io"

	"github.com/arm7tdmi/gbacore/errors"
	"github.com/arm7tdmi/gbacore/logger"
)

// Bus owns the backing storage for every region of the GBA address space
// and provides byte/halfword/word access across all of them.
type Bus struct {
	bios  []uint8
	board []uint8
	chip  []uint8
	io    []uint8
	rom   []uint8
	sram  []uint8

	log *logger.Logger
}

// NewBus allocates a Bus with every region zeroed and ready for use.
func NewBus() *Bus {
	return &Bus{
		bios:  make([]uint8, BIOSSize),
		board: make([]uint8, BoardWRAMSize),
		chip:  make([]uint8, ChipWRAMSize),
		io:    make([]uint8, IORegistersSize),
		rom:   make([]uint8, ROMSize),
		sram:  make([]uint8, SRAMSize),
		log:   logger.NewLogger(256),
	}
}

func (b *Bus) backing(r region) []uint8 {
	switch r {
	case regionBIOS:
		return b.bios
	case regionBoardWRAM:
		return b.board
	case regionChipWRAM:
		return b.chip
	case regionIO:
		return b.io
	case regionROM:
		return b.rom
	case regionSRAM:
		return b.sram
	default:
		return nil
	}
}

// Read8 reads a single byte. Reads of unmapped addresses are logged and
// return zero; the GBA open-bus behaviour for unmapped reads is not
// replicated since doing so faithfully depends on the last value latched on
// the bus, which this core does not model.
func (b *Bus) Read8(addr uint32) uint8 {
	r, rel := locate(addr)
	mem := b.backing(r)
	if mem == nil {
		b.log.Logf(logger.Allow, "bus", errors.BusUnmappedRead, addr)
		return 0
	}
	return mem[rel]
}

// Read16 reads a little-endian halfword from two consecutive bytes.
func (b *Bus) Read16(addr uint32) uint16 {
	lo := uint16(b.Read8(addr))
	hi := uint16(b.Read8(addr+1)) << 8
	return hi | lo
}

// Read32 reads a little-endian word from two consecutive halfwords.
func (b *Bus) Read32(addr uint32) uint32 {
	lo := uint32(b.Read16(addr))
	hi := uint32(b.Read16(addr+2)) << 16
	return hi | lo
}

// Write8 writes a single byte. Writes to unmapped addresses, or to the
// read-only ROM region, are logged and otherwise ignored.
func (b *Bus) Write8(addr uint32, val uint8) {
	r, rel := locate(addr)
	if r == regionROM {
		b.log.Logf(logger.Allow, "bus", errors.BusUnmappedWrite, addr)
		return
	}
	mem := b.backing(r)
	if mem == nil {
		b.log.Logf(logger.Allow, "bus", errors.BusUnmappedWrite, addr)
		return
	}
	mem[rel] = val
}

// Write16 writes a little-endian halfword as two byte writes.
func (b *Bus) Write16(addr uint32, val uint16) {
	b.Write8(addr, uint8(val))
	b.Write8(addr+1, uint8(val>>8))
}

// Write32 writes a little-endian word as two halfword writes.
func (b *Bus) Write32(addr uint32, val uint32) {
	b.Write16(addr, uint16(val))
	b.Write16(addr+2, uint16(val>>16))
}

// LoadBIOS copies data into the BIOS region. data must be non-empty and fit
// within BIOSSize; reading the image from disk is the caller's
// responsibility.
func (b *Bus) LoadBIOS(data []byte) error {
	if len(data) == 0 {
		return errors.Errorf(errors.BusBIOSNotFound)
	}
	if len(data) > len(b.bios) {
		return errors.Errorf(errors.BusBIOSTooLarge, len(data))
	}
	copy(b.bios, data)
	return nil
}

// LoadROM copies data into the cartridge ROM region. data must be non-empty
// and fit within ROMSize; all three ROM address windows read from this same
// buffer, and writes to any of them are ignored.
func (b *Bus) LoadROM(data []byte) error {
	if len(data) == 0 {
		return errors.Errorf(errors.BusROMNotFound)
	}
	if len(data) > len(b.rom) {
		return errors.Errorf(errors.BusROMTooLarge, len(data))
	}
	copy(b.rom, data)
	return nil
}

// WriteLog dumps the bus's own fault log (unmapped accesses) to w.
func (b *Bus) WriteLog(w io.Writer) {
	b.log.Write(w)
}
