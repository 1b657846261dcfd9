/*
Copyright © 2026 the nicam authors.
This file is part of nicam.

nicam is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

nicam is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with nicam.  If not, see <http://www.gnu.org/licenses/>.
*/

package nicam

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewError(IoFailure, "TestOp", cause)
	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(err, cause) = false, want true")
	}
	var target *Error
	if !errors.As(err, &target) {
		t.Fatalf("errors.As failed to unwrap *Error")
	}
	if target.Kind != IoFailure {
		t.Errorf("Kind = %v, want IoFailure", target.Kind)
	}
}

func TestErrorMessageIncludesOpAndKind(t *testing.T) {
	err := NewError(NotFound, "Reader.SeekDataInfo", errors.New("missing"))
	msg := err.Error()
	if !strings.Contains(msg, "Reader.SeekDataInfo") || !strings.Contains(msg, "not found") || !strings.Contains(msg, "missing") {
		t.Errorf("Error() = %q, missing expected substrings", msg)
	}
}

func TestErrorMessageWithoutCause(t *testing.T) {
	err := NewError(ShapeMismatch, "TestOp", nil)
	msg := err.Error()
	if !strings.Contains(msg, "shape mismatch") {
		t.Errorf("Error() = %q, want it to mention shape mismatch", msg)
	}
}
