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

// Package curated is the error mechanism used throughout Gopherds. Curated
// errors are created with the Errorf() function which, unlike fmt.Errorf(),
// retains the formatting pattern. The pattern doubles as the identity of the
// error: the Is() and Has() functions compare patterns, not formatted
// messages.
//
// Packages that create errors should declare their patterns as constants so
// that callers have something to test against. For example:
//
//	const NotRecording = "renderqueue: not recording"
//
//	...
//
//	return curated.Errorf(NotRecording)
//
// and at the call site:
//
//	if curated.Is(err, renderqueue.NotRecording) {
//		...
//	}
//
// Wrapping one curated error in another happens naturally through the format
// values. The Has() function finds a pattern anywhere in the chain and the
// Error() function normalises the chain, removing duplicate adjacent message
// parts.
package curated
