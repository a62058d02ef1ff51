//go:build !statsview

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

// Package statsview serves a live dashboard of Go runtime statistics over
// HTTP. It is only compiled in when the statsview build tag is given; the
// dashboard drags a web toolkit into the binary, which most builds don't
// want.
package statsview

import (
	"fmt"
	"io"
)

// Available is true when the build includes the statsview dashboard.
const Available = false

// Launch does nothing in builds without the statsview tag.
func Launch(output io.Writer) {
	fmt.Fprintln(output, "statsview not included in this build (rebuild with -tags statsview)")
}
