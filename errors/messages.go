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

package errors

// error messages
const (
	// panics
	PanicError = "panic: %v: %v"

	// sentinals
	UserInterrupt = "user interrupt"
	UserQuit      = "user quit"

	// bus
	BusUnmappedRead   = "bus error: unmapped read at address (%#08x)"
	BusUnmappedWrite  = "bus error: unmapped write at address (%#08x)"
	BusMisaligned     = "bus error: misaligned access (%#08x, width %d)"
	BusLoadError      = "bus error: %v"
	BusROMTooLarge    = "bus error: rom image too large for cartridge window (%d bytes)"
	BusBIOSTooLarge   = "bus error: bios image too large for bios window (%d bytes)"
	BusCapacityExceed = "bus error: region capacity exceeded (%v)"
	BusROMNotFound    = "bus error: rom source is missing or empty"
	BusBIOSNotFound   = "bus error: bios source is missing or empty"

	// cpu
	CPUDecodeMiss         = "cpu error: no decoder entry matches opcode (%#08x)"
	CPUUndefinedInstr     = "cpu error: undefined instruction (%#08x) at (%#08x)"
	CPUInvalidMode        = "cpu error: invalid processor mode (%#02x)"
	CPUInvalidBankedReg   = "cpu error: no banked register for mode/register pair (%v, r%d)"
	CPUUnimplementedInstr = "cpu error: unimplemented instruction (%#08x)"

	// faults
	FaultRecordError = "fault record error: %v"

	// directives / command line
	DirectiveParseError  = "directive error: %v"
	DirectiveUnknownWord = "directive error: unrecognised directive (%v)"
	DirectiveFileError   = "directive error: cannot open directives file (%v)"

	// config
	ConfigError      = "config error: %v"
	ConfigFileError  = "config error: cannot read config file (%v)"
	ConfigInvalidKey = "config error: unrecognised setting (%v)"

	// logger
	LoggerCapacityError = "logger error: capacity must be greater than zero"
)
