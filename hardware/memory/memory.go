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

// Package memory implements the console's graphics memory map: two VRAM
// banks and the linear heap.
//
// VRAM is the only memory the GPU can scan out of, which is why render
// targets must be VRAM resident. It is split into two banks with independent
// bandwidth; allocating a colour buffer in one bank and its depth buffer in
// the other means the GPU isn't fighting itself for access during rendering.
//
// The linear heap holds everything else the GPU touches: command lists,
// textures and the screen framebuffers. Writes to the linear heap by the CPU
// must be flushed before the GPU can be trusted to see them; the flush is
// modelled by a generation counter which tests and hardware can observe.
package memory

import (
	"sync"

	"github.com/jetsetilly/gopherds/curated"
)

// Bank identifies one of the two VRAM banks.
type Bank int

// The two VRAM banks.
const (
	BankA Bank = iota
	BankB
)

func (b Bank) String() string {
	if b == BankA {
		return "A"
	}
	return "B"
}

// Opposite returns the other VRAM bank.
func (b Bank) Opposite() Bank {
	return b ^ 1
}

// Region identifies the part of the memory map a Block lives in.
type Region int

// List of memory regions.
const (
	RegionVRAM Region = iota
	RegionLinear
)

// Sizes of the memory regions.
const (
	VRAMBankSize   = 3 * 1024 * 1024
	LinearHeapSize = 32 * 1024 * 1024
)

// Error patterns returned by the allocation functions.
const (
	OutOfMemory = "memory: %s: cannot allocate %d bytes"
	BadFree     = "memory: free of %s"
)

// Block is an allocation from the memory map. A Block may also be a window
// onto part of another Block (see the Slice() function); such windows share
// the parent's storage and cannot be freed.
type Block struct {
	region Region
	bank   Bank
	offset int
	buf    []byte
	parent *Block
	freed  bool
}

// Bytes gives access to the block's storage.
func (b *Block) Bytes() []byte {
	return b.buf
}

// Size of the block in bytes.
func (b *Block) Size() int {
	return len(b.buf)
}

// InVRAM is true if the block was allocated from either VRAM bank.
func (b *Block) InVRAM() bool {
	return b.region == RegionVRAM
}

// Bank the block was allocated from. Only meaningful for VRAM blocks.
func (b *Block) Bank() Bank {
	return b.bank
}

// Slice returns a window onto part of the block. The window aliases the
// parent's storage; it must not be freed.
func (b *Block) Slice(offset int, size int) *Block {
	return &Block{
		region: b.region,
		bank:   b.bank,
		offset: b.offset + offset,
		buf:    b.buf[offset : offset+size],
		parent: b,
	}
}

// span records a free extent within an arena.
type span struct {
	offset int
	size   int
}

// arena is a first-fit allocator over a fixed extent of memory.
type arena struct {
	label  string
	region Region
	bank   Bank
	mem    []byte
	free   []span
}

func newArena(label string, region Region, bank Bank, size int) *arena {
	return &arena{
		label:  label,
		region: region,
		bank:   bank,
		mem:    make([]byte, size),
		free:   []span{{offset: 0, size: size}},
	}
}

func (a *arena) alloc(size int) (*Block, bool) {
	if size <= 0 {
		return nil, false
	}

	for i := range a.free {
		if a.free[i].size >= size {
			offset := a.free[i].offset
			a.free[i].offset += size
			a.free[i].size -= size
			if a.free[i].size == 0 {
				a.free = append(a.free[:i], a.free[i+1:]...)
			}
			return &Block{
				region: a.region,
				bank:   a.bank,
				offset: offset,
				buf:    a.mem[offset : offset+size],
			}, true
		}
	}

	return nil, false
}

// return the extent to the free list, coalescing with neighbouring spans.
func (a *arena) release(offset int, size int) {
	idx := len(a.free)
	for i := range a.free {
		if a.free[i].offset > offset {
			idx = i
			break
		}
	}

	a.free = append(a.free, span{})
	copy(a.free[idx+1:], a.free[idx:])
	a.free[idx] = span{offset: offset, size: size}

	// coalesce with the following span
	if idx+1 < len(a.free) && a.free[idx].offset+a.free[idx].size == a.free[idx+1].offset {
		a.free[idx].size += a.free[idx+1].size
		a.free = append(a.free[:idx+1], a.free[idx+2:]...)
	}

	// coalesce with the preceding span
	if idx > 0 && a.free[idx-1].offset+a.free[idx-1].size == a.free[idx].offset {
		a.free[idx-1].size += a.free[idx].size
		a.free = append(a.free[:idx], a.free[idx+1:]...)
	}
}

// available bytes in the arena.
func (a *arena) available() int {
	n := 0
	for _, s := range a.free {
		n += s.size
	}
	return n
}

// Map is the console's graphics memory map.
type Map struct {
	crit sync.Mutex

	vram   [2]*arena
	linear *arena

	// number of linear heap flushes since creation. incremented by
	// FlushLinear() and read by FlushCount()
	flushes int
}

// NewMap is the preferred method of initialisation for the Map type.
func NewMap() *Map {
	return &Map{
		vram: [2]*arena{
			newArena("vram bank A", RegionVRAM, BankA, VRAMBankSize),
			newArena("vram bank B", RegionVRAM, BankB, VRAMBankSize),
		},
		linear: newArena("linear heap", RegionLinear, 0, LinearHeapSize),
	}
}

// AllocVRAM allocates from either VRAM bank, trying bank A first.
func (m *Map) AllocVRAM(size int) (*Block, error) {
	m.crit.Lock()
	defer m.crit.Unlock()

	for _, a := range m.vram {
		if b, ok := a.alloc(size); ok {
			return b, nil
		}
	}
	return nil, curated.Errorf(OutOfMemory, "vram", size)
}

// AllocVRAMAt allocates from the specified VRAM bank only.
func (m *Map) AllocVRAMAt(size int, bank Bank) (*Block, error) {
	m.crit.Lock()
	defer m.crit.Unlock()

	if b, ok := m.vram[bank].alloc(size); ok {
		return b, nil
	}
	return nil, curated.Errorf(OutOfMemory, m.vram[bank].label, size)
}

// AllocLinear allocates from the linear heap.
func (m *Map) AllocLinear(size int) (*Block, error) {
	m.crit.Lock()
	defer m.crit.Unlock()

	if b, ok := m.linear.alloc(size); ok {
		return b, nil
	}
	return nil, curated.Errorf(OutOfMemory, m.linear.label, size)
}

// Free returns the block's extent to its arena. Freeing a slice of another
// block, or freeing a block twice, is an error.
func (m *Map) Free(b *Block) error {
	m.crit.Lock()
	defer m.crit.Unlock()

	if b == nil || b.parent != nil {
		return curated.Errorf(BadFree, "block not allocated by this map")
	}
	if b.freed {
		return curated.Errorf(BadFree, "block freed twice")
	}
	b.freed = true

	if b.region == RegionLinear {
		m.linear.release(b.offset, len(b.buf))
	} else {
		m.vram[b.bank].release(b.offset, len(b.buf))
	}
	return nil
}

// AvailableVRAM returns the number of unallocated bytes in the specified bank.
func (m *Map) AvailableVRAM(bank Bank) int {
	m.crit.Lock()
	defer m.crit.Unlock()
	return m.vram[bank].available()
}

// AvailableLinear returns the number of unallocated bytes in the linear heap.
func (m *Map) AvailableLinear() int {
	m.crit.Lock()
	defer m.crit.Unlock()
	return m.linear.available()
}

// FlushLinear makes CPU writes to the linear heap visible to the GPU. In this
// emulated memory map the flush is a generation count; the count lets tests
// confirm that the flush discipline is being followed.
func (m *Map) FlushLinear() {
	m.crit.Lock()
	defer m.crit.Unlock()
	m.flushes++
}

// FlushCount returns the number of times the linear heap has been flushed.
func (m *Map) FlushCount() int {
	m.crit.Lock()
	defer m.crit.Unlock()
	return m.flushes
}
