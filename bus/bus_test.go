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

package bus_test

import (
	"testing"

	"github.com/arm7tdmi/gbacore/bus"
	"github.com/arm7tdmi/gbacore/errors"
	"github.com/arm7tdmi/gbacore/test"
)

func TestByteRoundTrip(t *testing.T) {
	b := bus.NewBus()
	b.Write8(bus.BoardWRAMAddr+0x10, 0xab)
	test.Equate(t, b.Read8(bus.BoardWRAMAddr+0x10), uint8(0xab))
}

func TestLittleEndianHalfword(t *testing.T) {
	b := bus.NewBus()
	b.Write16(bus.ChipWRAMAddr, 0x1234)
	test.Equate(t, b.Read8(bus.ChipWRAMAddr), uint8(0x34))
	test.Equate(t, b.Read8(bus.ChipWRAMAddr+1), uint8(0x12))
	test.Equate(t, b.Read16(bus.ChipWRAMAddr), uint16(0x1234))
}

func TestLittleEndianWord(t *testing.T) {
	b := bus.NewBus()
	b.Write32(bus.BoardWRAMAddr, 0xdeadbeef)
	test.Equate(t, b.Read32(bus.BoardWRAMAddr), uint32(0xdeadbeef))
}

func TestROMIsOneContiguousStore(t *testing.T) {
	b := bus.NewBus()
	data := make([]byte, bus.ROMWindowSize+4)
	data[0], data[1], data[2], data[3] = 0x01, 0x02, 0x03, 0x04
	copy(data[bus.ROMWindowSize:], []byte{0x05, 0x06, 0x07, 0x08})
	test.ExpectSuccess(t, b.LoadROM(data))

	// ROM0Addr indexes the image from its start; ROM1Addr, being
	// ROMWindowSize higher, lands on bytes ROMWindowSize..ROMWindowSize+4
	// of the same backing store rather than re-reading from byte 0.
	test.Equate(t, b.Read32(bus.ROM0Addr), uint32(0x04030201))
	test.Equate(t, b.Read32(bus.ROM1Addr), uint32(0x08070605))
}

func TestLoadROMEmptyIsNotFound(t *testing.T) {
	b := bus.NewBus()
	err := b.LoadROM(nil)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, errors.Is(err, errors.BusROMNotFound))
}

func TestROMIsReadOnly(t *testing.T) {
	b := bus.NewBus()
	before := b.Read8(bus.ROM0Addr)
	b.Write8(bus.ROM0Addr, 0xff)
	test.Equate(t, b.Read8(bus.ROM0Addr), before)
}

func TestUnmappedReadReturnsZero(t *testing.T) {
	b := bus.NewBus()
	test.Equate(t, b.Read8(0x01000000), uint8(0))
}

func TestLoadBIOSTooLarge(t *testing.T) {
	b := bus.NewBus()
	data := make([]byte, bus.BIOSSize+1)
	test.ExpectFailure(t, b.LoadBIOS(data))
}
