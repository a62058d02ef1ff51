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

// Package digest condenses presented frames into hashes. A digest is a
// cheap way for a regression test to assert that a long run of frames was
// pixel-identical to a previous run, without storing any images.
package digest

import (
	"crypto/sha1"
	"encoding/hex"
	"sync"

	"github.com/jetsetilly/gopherds/hardware/display"
)

// Video hashes every frame presented on one screen. It registers itself as
// a display renderer; the hash folds the previous digest in, so the final
// value summarises the whole sequence of frames and not just the last one.
type Video struct {
	crit    sync.Mutex
	screens *display.Screens
	screen  display.Screen

	digest [sha1.Size]byte
	frames int
}

// NewVideo creates a digester for the screen and registers it with the
// display.
func NewVideo(screens *display.Screens, s display.Screen) *Video {
	dig := &Video{
		screens: screens,
		screen:  s,
	}
	screens.AddRenderer(dig)
	return dig
}

// NewFrame implements the display.Renderer interface. For the top screen
// both eyes are folded into the digest, so mono and stereo runs of the same
// left-eye content still hash differently.
func (dig *Video) NewFrame(s display.Screen) error {
	if s != dig.screen {
		return nil
	}

	dig.crit.Lock()
	defer dig.crit.Unlock()

	h := sha1.New()
	h.Write(dig.digest[:])
	h.Write(dig.screens.Frontbuffer(s, display.SideLeft).Bytes())
	if s == display.ScreenTop && dig.screens.Stereo() {
		h.Write(dig.screens.Frontbuffer(s, display.SideRight).Bytes())
	}
	copy(dig.digest[:], h.Sum(nil))

	dig.frames++
	return nil
}

// Hash returns the rolling digest as a hex string.
func (dig *Video) Hash() string {
	dig.crit.Lock()
	defer dig.crit.Unlock()
	return hex.EncodeToString(dig.digest[:])
}

// Frames returns the number of frames folded into the digest so far.
func (dig *Video) Frames() int {
	dig.crit.Lock()
	defer dig.crit.Unlock()
	return dig.frames
}
