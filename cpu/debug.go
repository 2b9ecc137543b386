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

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bradleyjkemp/memviz"
)

// FormatStatus renders every general-purpose register, the program status
// register and its flags, for a one-screen dump of the cpu's current state.
func (c *CPU) FormatStatus() string {
	var b strings.Builder
	for i := 0; i < 4; i++ {
		for col := 0; col < 4; col++ {
			n := i*4 + col
			fmt.Fprintf(&b, "r%-2d=%08x  ", n, c.getReg(uint32(n)))
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "cpsr=%08x %s\n", c.reg.cpsr, c.status.String())
	return b.String()
}

// FormatISATable renders the mask/test/name triples of the ARM or THUMB
// decoder table, in the priority order Cycle actually searches them.
func (c *CPU) FormatISATable(isARM bool) string {
	table := c.thumbTable
	if isARM {
		table = c.armTable
	}
	var b strings.Builder
	for _, e := range table {
		fmt.Fprintf(&b, "%-32s mask=%#010x test=%#010x\n", e.name, e.mask, e.test)
	}
	return b.String()
}

// WriteLog writes the cpu's internal log (decode misses and the like) to
// the file at path, creating or truncating it as needed.
func (c *CPU) WriteLog(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	c.log.Write(f)
	return nil
}

// DumpRegisterGraph renders the live register file to w as a Graphviz dot
// graph, for offline inspection of a run's final state. The decoder tables
// are not included.
func (c *CPU) DumpRegisterGraph(w io.Writer) error {
	memviz.Map(w, &c.reg)
	return nil
}
