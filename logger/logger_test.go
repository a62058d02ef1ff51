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

package logger_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/gopherds/logger"
	"github.com/jetsetilly/gopherds/test"
)

func TestLog(t *testing.T) {
	logger.Clear()

	logger.Log("test", "this is a test")
	s := &strings.Builder{}
	logger.Write(s)
	test.ExpectEquality(t, s.String(), "test: this is a test\n")

	// clearing the log works
	logger.Clear()
	s.Reset()
	logger.Write(s)
	test.ExpectEquality(t, s.String(), "")
}

func TestRepeatFolding(t *testing.T) {
	logger.Clear()

	logger.Log("test", "same entry")
	logger.Log("test", "same entry")
	logger.Log("test", "same entry")

	s := &strings.Builder{}
	logger.Write(s)
	test.ExpectEquality(t, s.String(), "test: same entry (repeat x3)\n")
}

func TestTail(t *testing.T) {
	logger.Clear()

	logger.Logf("test", "entry %d", 1)
	logger.Logf("test", "entry %d", 2)
	logger.Logf("test", "entry %d", 3)

	s := &strings.Builder{}
	logger.Tail(s, 2)
	test.ExpectEquality(t, s.String(), "test: entry 2\ntest: entry 3\n")

	// a tail longer than the log is the whole log
	s.Reset()
	logger.Tail(s, 100)
	test.ExpectEquality(t, s.String(), "test: entry 1\ntest: entry 2\ntest: entry 3\n")
}
