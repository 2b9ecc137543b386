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

import "math/rand"

// Config carries the handful of settings New needs to build a CPU. It plays
// the role a preferences file plays elsewhere in the codebase, except none
// of these values need to survive a process restart, so there is nothing
// here beyond a plain struct with defaults.
type Config struct {
	// RandomState seeds general-purpose registers with pseudo-random values
	// on Reset instead of zero, the way real silicon powers up in an
	// indeterminate state. Useful for shaking out code that assumes
	// zero-initialised registers.
	RandomState bool

	// InitialMode overrides the mode Reset enters. Zero value (ModeUser,
	// numerically 0b10000's corresponding const) is not a valid reset mode
	// on real hardware, so New treats InitialMode's zero value specially
	// and defaults to ModeSupervisor.
	InitialMode Mode

	// LogCapacity bounds how many entries the cpu's internal logger keeps.
	// Zero selects a sensible default.
	LogCapacity int
}

// DefaultConfig returns the configuration New uses when none is given.
func DefaultConfig() Config {
	return Config{InitialMode: ModeSupervisor, LogCapacity: 512}
}

func (cfg Config) logCapacity() int {
	if cfg.LogCapacity <= 0 {
		return 512
	}
	return cfg.LogCapacity
}

func (cfg Config) resetMode() Mode {
	if cfg.InitialMode == 0 {
		return ModeSupervisor
	}
	return cfg.InitialMode
}

func (cfg Config) seedRegisters(r *registers) {
	if !cfg.RandomState {
		return
	}
	src := rand.New(rand.NewSource(1))
	for i := range r.low {
		r.low[i] = src.Uint32()
	}
	for bank := range r.high {
		for i := range r.high[bank] {
			r.high[bank][i] = src.Uint32()
		}
	}
}
