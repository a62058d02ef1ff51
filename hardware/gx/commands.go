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

package gx

import (
	"github.com/jetsetilly/gopherds/hardware/gpu"
	"github.com/jetsetilly/gopherds/hardware/memory"
)

// Dim is the dimensions of a transfer source or destination.
type Dim struct {
	Width  int
	Height int
}

// Transfer flag bits understood by the transfer engine.
const (
	// flip the image vertically during transfer
	TransferFlipVertical uint32 = 0x01
)

// Command is a single unit of work for the command channel. Commands are
// processed strictly in submission order.
type Command interface {
	command()
}

// ProcessCommandList asks the GPU to execute a finalised list of drawing
// operations.
type ProcessCommandList struct {
	List  gpu.List
	Flags uint32
}

// DisplayTransfer asks the transfer engine to convert and copy a rendered
// colour buffer to a screen framebuffer. Completion raises the PPF event.
type DisplayTransfer struct {
	Src    *memory.Block
	SrcDim Dim
	SrcFmt gpu.ColorFormat
	Dst    *memory.Block
	DstDim Dim
	DstFmt gpu.ColorFormat
	Flags  uint32
}

// TextureCopy asks the transfer engine for a raw byte copy between two
// blocks. Completion raises the PPF event.
type TextureCopy struct {
	Src   *memory.Block
	Dst   *memory.Block
	Size  int
	Flags uint32
}

// MemoryFill asks the fill engine to fill up to two blocks with fixed
// values. Either buffer may be nil. Completion raises the PSC0 event.
type MemoryFill struct {
	Buf0   *memory.Block
	Value0 uint32
	Fmt0   gpu.ColorFormat
	Buf1   *memory.Block
	Value1 uint32
	Fmt1   gpu.ColorFormat
}

func (ProcessCommandList) command() {}
func (DisplayTransfer) command()    {}
func (TextureCopy) command()        {}
func (MemoryFill) command()         {}
