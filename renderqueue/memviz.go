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

package renderqueue

import (
	"io"

	"github.com/bradleyjkemp/memviz"
)

// WriteRegistryGraph writes a graphviz dot rendering of the render target
// registry and output slots. Useful when debugging target leaks: pipe the
// output through dot -Tsvg.
func (ctx *Context) WriteRegistryGraph(w io.Writer) {
	ctx.crit.Lock()
	defer ctx.crit.Unlock()
	memviz.Map(w, &ctx.linked)
}
