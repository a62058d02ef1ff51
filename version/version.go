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

// Package version records the version number of the project as a whole.
package version

import "runtime/debug"

// The version string for the current release. "unreleased" for builds made
// between releases.
const Version = "0.1.0 (unreleased)"

// Revision returns the vcs revision the binary was built from, if the build
// system recorded it.
func Revision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "no build info"
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return "no revision information"
}
