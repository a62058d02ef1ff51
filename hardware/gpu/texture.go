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

package gpu

import "github.com/jetsetilly/gopherds/hardware/memory"

// TexFace identifies one face of a texture. Plain 2D textures have a single
// face; cubemaps have six.
type TexFace int

// List of valid TexFace values. Face2D and FacePosX share a value, as they do
// in the hardware.
const (
	Face2D   TexFace = 0
	FacePosX TexFace = 0
	FaceNegX TexFace = 1
	FacePosY TexFace = 2
	FaceNegY TexFace = 3
	FacePosZ TexFace = 4
	FaceNegZ TexFace = 5
)

// Texture is an image (or six, for cubemaps) with an optional mipmap chain,
// backed by a single allocation in either the linear heap or VRAM.
type Texture struct {
	Width  int
	Height int
	Fmt    ColorFormat

	// number of faces (1 or 6) and mipmap levels (at least 1)
	Faces  int
	Levels int

	Data *memory.Block
}

// NewTexture allocates storage for a texture. A texture allocated in VRAM can
// later be used as a render target; a texture in the linear heap cannot.
func NewTexture(m *memory.Map, width int, height int, f ColorFormat, faces int, levels int, vram bool) (*Texture, error) {
	t := &Texture{
		Width:  width,
		Height: height,
		Fmt:    f,
		Faces:  faces,
		Levels: levels,
	}

	var err error
	if vram {
		t.Data, err = m.AllocVRAM(t.Faces * t.faceSize())
	} else {
		t.Data, err = m.AllocLinear(t.Faces * t.faceSize())
	}
	if err != nil {
		return nil, err
	}

	return t, nil
}

// Delete frees the texture's storage.
func (t *Texture) Delete(m *memory.Map) error {
	return m.Free(t.Data)
}

// InVRAM is true if the texture's storage is VRAM resident.
func (t *Texture) InVRAM() bool {
	return t.Data.InVRAM()
}

// LevelDim returns the dimensions of the specified mipmap level.
func (t *Texture) LevelDim(level int) (int, int) {
	w := t.Width >> level
	h := t.Height >> level
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// size in bytes of one face, including its mipmap chain.
func (t *Texture) faceSize() int {
	size := 0
	for l := 0; l < t.Levels; l++ {
		w, h := t.LevelDim(l)
		size += ColorBufSize(w, h, t.Fmt)
	}
	return size
}

// FaceBlock returns a window onto the storage of one face/level of the
// texture. The window aliases the texture's allocation.
func (t *Texture) FaceBlock(face TexFace, level int) *memory.Block {
	offset := int(face) * t.faceSize()
	for l := 0; l < level; l++ {
		w, h := t.LevelDim(l)
		offset += ColorBufSize(w, h, t.Fmt)
	}
	w, h := t.LevelDim(level)
	return t.Data.Slice(offset, ColorBufSize(w, h, t.Fmt))
}
