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

package hardware

// Run calls f once per logical frame, pacing against the vblank clock,
// until f returns false or an error. The function is expected to record and
// end a frame on ds.Render; anything else it does is its own business.
func (ds *DS) Run(f func() (bool, error)) error {
	for {
		ds.Render.FrameSync()
		cont, err := f()
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}
}

// RunForFrames calls f exactly numFrames times, pacing against the vblank
// clock.
func (ds *DS) RunForFrames(numFrames int, f func() error) error {
	n := 0
	return ds.Run(func() (bool, error) {
		if err := f(); err != nil {
			return false, err
		}
		n++
		return n < numFrames, nil
	})
}
