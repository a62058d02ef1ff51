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

// ColorFormat is the pixel format of a colour buffer or texture.
type ColorFormat int

// List of valid ColorFormat values.
const (
	RGBA8 ColorFormat = iota
	RGB8
	RGB565
	RGBA5551
	RGBA4
)

func (f ColorFormat) String() string {
	switch f {
	case RGBA8:
		return "RGBA8"
	case RGB8:
		return "RGB8"
	case RGB565:
		return "RGB565"
	case RGBA5551:
		return "RGBA5551"
	case RGBA4:
		return "RGBA4"
	}
	return "unknown"
}

// BytesPerPixel for the colour format.
func (f ColorFormat) BytesPerPixel() int {
	switch f {
	case RGBA8:
		return 4
	case RGB8:
		return 3
	}
	return 2
}

// DepthFormat is the pixel format of a depth buffer. DepthNone indicates that
// no depth buffer is wanted.
type DepthFormat int

// List of valid DepthFormat values.
const (
	DepthNone DepthFormat = iota
	Depth16
	Depth24
	Depth24Stencil8
)

func (f DepthFormat) String() string {
	switch f {
	case DepthNone:
		return "no depth"
	case Depth16:
		return "D16"
	case Depth24:
		return "D24"
	case Depth24Stencil8:
		return "D24S8"
	}
	return "unknown"
}

// BytesPerPixel for the depth format. Zero for DepthNone.
func (f DepthFormat) BytesPerPixel() int {
	switch f {
	case Depth16:
		return 2
	case Depth24:
		return 3
	case Depth24Stencil8:
		return 4
	}
	return 0
}

// ColorBufSize returns the size in bytes of a colour buffer of the given
// dimensions and format.
func ColorBufSize(width int, height int, f ColorFormat) int {
	return width * height * f.BytesPerPixel()
}

// DepthBufSize returns the size in bytes of a depth buffer of the given
// dimensions and format.
func DepthBufSize(width int, height int, f DepthFormat) int {
	return width * height * f.BytesPerPixel()
}
