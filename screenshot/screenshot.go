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

// Package screenshot saves presented frames as PNG files.
package screenshot

import (
	"image"
	"image/png"
	"os"

	"github.com/jetsetilly/gopherds/curated"
	"github.com/jetsetilly/gopherds/hardware/display"

	xdraw "golang.org/x/image/draw"
)

// Error patterns returned by Save.
const (
	SaveError = "screenshot: %v"
)

// Save writes the screen's front buffer to a PNG file, upscaled by an
// integer factor. The native screens are small; a scale of two or three
// makes the result comfortable to look at. A scale below one is treated as
// one.
func Save(screens *display.Screens, s display.Screen, side display.Side, scale int, path string) error {
	w, h := display.Dim(s)

	src := image.NewNRGBA(image.Rect(0, 0, w, h))
	copy(src.Pix, screens.Frontbuffer(s, side).Bytes())

	var img image.Image = src
	if scale > 1 {
		dst := image.NewNRGBA(image.Rect(0, 0, w*scale, h*scale))
		xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
		img = dst
	}

	f, err := os.Create(path)
	if err != nil {
		return curated.Errorf(SaveError, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return curated.Errorf(SaveError, err)
	}
	return nil
}
