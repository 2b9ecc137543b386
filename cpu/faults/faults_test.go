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

package faults_test

import (
	"strings"
	"testing"

	"github.com/arm7tdmi/gbacore/cpu/faults"
	"github.com/arm7tdmi/gbacore/test"
)

func TestRecordDeduplicatesByCategoryAndAddresses(t *testing.T) {
	f := faults.NewFaults()
	f.Record(faults.IllegalInstruction, 0x100, 0)
	f.Record(faults.IllegalInstruction, 0x100, 0)
	f.Record(faults.IllegalInstruction, 0x104, 0)

	test.Equate(t, len(f.Log), 2)
	test.Equate(t, f.Log[0].Count, 2)
	test.Equate(t, f.Log[1].Count, 1)
}

func TestRecordSetsHasStackCollision(t *testing.T) {
	f := faults.NewFaults()
	test.Equate(t, f.HasStackCollision, false)
	f.Record(faults.StackCollision, 0x200, 0x300)
	test.Equate(t, f.HasStackCollision, true)
}

func TestClearEmptiesLogButKeepsStackCollisionFlag(t *testing.T) {
	f := faults.NewFaults()
	f.Record(faults.StackCollision, 0x200, 0x300)
	f.Clear()
	test.Equate(t, len(f.Log), 0)
	test.Equate(t, f.HasStackCollision, true)
}

func TestWriteLogRendersEveryEntry(t *testing.T) {
	f := faults.NewFaults()
	f.Record(faults.UnmappedAccess, 0x08, 0x0A000000)

	var b strings.Builder
	f.WriteLog(&b)

	out := b.String()
	if !strings.Contains(out, string(faults.UnmappedAccess)) {
		t.Fatalf("expected log to mention category, got %q", out)
	}
	if !strings.Contains(out, "0a000000") {
		t.Fatalf("expected log to mention access address, got %q", out)
	}
}
