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

package curated_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/gopherds/curated"
	"github.com/jetsetilly/gopherds/test"
)

const testPattern = "test error: %s"
const wrapPattern = "wrapping error: %v"

func TestIs(t *testing.T) {
	e := curated.Errorf(testPattern, "detail")
	test.ExpectSuccess(t, curated.IsAny(e))
	test.ExpectSuccess(t, curated.Is(e, testPattern))
	test.ExpectFailure(t, curated.Is(e, wrapPattern))

	// uncurated errors are never matched
	f := errors.New("plain error")
	test.ExpectFailure(t, curated.IsAny(f))
	test.ExpectFailure(t, curated.Is(f, testPattern))
	test.ExpectFailure(t, curated.Is(nil, testPattern))
}

func TestHas(t *testing.T) {
	e := curated.Errorf(testPattern, "detail")
	f := curated.Errorf(wrapPattern, e)

	test.ExpectSuccess(t, curated.Is(f, wrapPattern))
	test.ExpectFailure(t, curated.Is(f, testPattern))
	test.ExpectSuccess(t, curated.Has(f, wrapPattern))
	test.ExpectSuccess(t, curated.Has(f, testPattern))
}

func TestDeduplication(t *testing.T) {
	e := curated.Errorf("error: %v", curated.Errorf("error: %v", curated.Errorf("not yet implemented")))
	test.ExpectEquality(t, e.Error(), "error: not yet implemented")
}
