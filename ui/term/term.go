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

// Package term puts the controlling terminal into cbreak mode so the
// headless run mode can react to single keypresses without waiting for a
// newline.
package term

import (
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"

	"github.com/jetsetilly/gopherds/curated"
)

// Error patterns returned by the Input functions.
const (
	TermError = "term: %v"
)

// Input reads single keypresses from the terminal. Create with NewInput()
// and always Restore() before the program exits, or the user gets their
// shell back in a strange state.
type Input struct {
	fd       uintptr
	canAttr  unix.Termios
	restored bool
}

// NewInput switches the terminal to cbreak mode with non-blocking reads.
func NewInput() (*Input, error) {
	inp := &Input{fd: os.Stdin.Fd()}

	if err := termios.Tcgetattr(inp.fd, &inp.canAttr); err != nil {
		return nil, curated.Errorf(TermError, err)
	}

	raw := inp.canAttr
	termios.Cfmakecbreak(&raw)

	// polling reads: a read with no pending input returns immediately
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 0

	if err := termios.Tcsetattr(inp.fd, termios.TCSANOW, &raw); err != nil {
		return nil, curated.Errorf(TermError, err)
	}

	return inp, nil
}

// Restore the terminal to the attributes it had before NewInput().
func (inp *Input) Restore() error {
	if inp.restored {
		return nil
	}
	inp.restored = true

	if err := termios.Tcsetattr(inp.fd, termios.TCSANOW, &inp.canAttr); err != nil {
		return curated.Errorf(TermError, err)
	}
	return nil
}

// KeyPressed polls the terminal for a single keypress. The second return
// value is false if no key was pending.
func (inp *Input) KeyPressed() (byte, bool) {
	b := make([]byte, 1)
	n, err := os.Stdin.Read(b)
	if err != nil || n == 0 {
		return 0, false
	}
	return b[0], true
}
