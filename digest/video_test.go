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

package digest_test

import (
	"testing"

	"github.com/jetsetilly/gopherds/demo"
	"github.com/jetsetilly/gopherds/digest"
	"github.com/jetsetilly/gopherds/hardware"
	"github.com/jetsetilly/gopherds/hardware/display"
	"github.com/jetsetilly/gopherds/test"
)

// run the demo for a number of frames and return the top screen digest.
func run(t *testing.T, stereo bool, frames int) string {
	t.Helper()

	ds, err := hardware.NewDS()
	if err != nil {
		t.Fatal(err)
	}
	defer ds.End()

	dig := digest.NewVideo(ds.Screens, display.ScreenTop)

	sc, err := demo.NewScene(ds, stereo)
	if err != nil {
		t.Fatal(err)
	}
	defer sc.Close()

	for i := 0; i < frames; i++ {
		if !sc.DrawFrame() {
			t.Fatal("demo frame did not begin")
		}
		ds.Render.WaitDone()
	}

	test.ExpectEquality(t, dig.Frames(), frames)
	return dig.Hash()
}

func TestDemoRegression(t *testing.T) {
	// two identical runs hash identically
	a := run(t, false, 10)
	b := run(t, false, 10)
	test.ExpectEquality(t, a, b)

	// a stereo run of the same scene does not
	c := run(t, true, 10)
	test.ExpectInequality(t, a, c)

	// and neither does a shorter run
	d := run(t, false, 9)
	test.ExpectInequality(t, a, d)
}
