// This file is part of Gopherds.
//
// Gopherds is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopherds is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopherds.  If not, see <https://www.gnu.org/licenses/>.

package memory_test

import (
	"testing"

	"github.com/jetsetilly/gopherds/hardware/memory"
	"github.com/jetsetilly/gopherds/test"
)

func TestVRAMBanks(t *testing.T) {
	m := memory.NewMap()

	// plain VRAM allocation prefers bank A
	a, err := m.AllocVRAM(1024)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, a.InVRAM())
	test.ExpectEquality(t, a.Bank(), memory.BankA)

	// directed allocation lands in the requested bank
	b, err := m.AllocVRAMAt(1024, memory.BankB)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, b.Bank(), memory.BankB)

	test.ExpectEquality(t, memory.BankA.Opposite(), memory.BankB)
	test.ExpectEquality(t, memory.BankB.Opposite(), memory.BankA)

	test.ExpectSuccess(t, m.Free(a))
	test.ExpectSuccess(t, m.Free(b))
}

func TestExhaustion(t *testing.T) {
	m := memory.NewMap()

	// a directed allocation larger than the bank fails without affecting the
	// bank's accounting
	before := m.AvailableVRAM(memory.BankA)
	_, err := m.AllocVRAMAt(memory.VRAMBankSize+1, memory.BankA)
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, m.AvailableVRAM(memory.BankA), before)

	// filling bank A forces plain allocation over to bank B
	a, err := m.AllocVRAMAt(memory.VRAMBankSize, memory.BankA)
	test.ExpectSuccess(t, err)
	b, err := m.AllocVRAM(1024)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, b.Bank(), memory.BankB)

	test.ExpectSuccess(t, m.Free(a))
	test.ExpectSuccess(t, m.Free(b))
}

func TestFreeCoalescing(t *testing.T) {
	m := memory.NewMap()

	a, err := m.AllocVRAMAt(1024, memory.BankA)
	test.ExpectSuccess(t, err)
	b, err := m.AllocVRAMAt(1024, memory.BankA)
	test.ExpectSuccess(t, err)
	c, err := m.AllocVRAMAt(memory.VRAMBankSize-2048, memory.BankA)
	test.ExpectSuccess(t, err)

	// bank is full. freeing a and b out of order must coalesce the two spans
	// or the subsequent 2048 byte allocation will fail
	test.ExpectEquality(t, m.AvailableVRAM(memory.BankA), 0)
	test.ExpectSuccess(t, m.Free(b))
	test.ExpectSuccess(t, m.Free(a))

	d, err := m.AllocVRAMAt(2048, memory.BankA)
	test.ExpectSuccess(t, err)

	test.ExpectSuccess(t, m.Free(d))
	test.ExpectSuccess(t, m.Free(c))
	test.ExpectEquality(t, m.AvailableVRAM(memory.BankA), memory.VRAMBankSize)
}

func TestBadFree(t *testing.T) {
	m := memory.NewMap()

	a, err := m.AllocLinear(4096)
	test.ExpectSuccess(t, err)

	// slices of a block cannot be freed
	s := a.Slice(1024, 512)
	test.ExpectEquality(t, s.Size(), 512)
	test.ExpectFailure(t, m.Free(s))

	// double free fails
	test.ExpectSuccess(t, m.Free(a))
	test.ExpectFailure(t, m.Free(a))
}

func TestSliceAliasing(t *testing.T) {
	m := memory.NewMap()

	a, err := m.AllocLinear(16)
	test.ExpectSuccess(t, err)

	s := a.Slice(8, 8)
	s.Bytes()[0] = 0xff
	test.ExpectEquality(t, a.Bytes()[8], byte(0xff))

	test.ExpectSuccess(t, m.Free(a))
}

func TestFlushGeneration(t *testing.T) {
	m := memory.NewMap()
	test.ExpectEquality(t, m.FlushCount(), 0)
	m.FlushLinear()
	m.FlushLinear()
	test.ExpectEquality(t, m.FlushCount(), 2)
}
