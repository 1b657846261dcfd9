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

import "testing"

func TestNewGrdXShape(t *testing.T) {
	p := RefinementParams{Glevel: 5, Rlevel: 1}
	a := NewGrdX(p)
	want := []int{3, p.Gall()}
	if len(a.Shape) != len(want) || a.Shape[0] != want[0] || a.Shape[1] != want[1] {
		t.Errorf("NewGrdX Shape = %v, want %v", a.Shape, want)
	}
	if len(a.Elements) != 3*p.Gall() {
		t.Errorf("len(Elements) = %d, want %d", len(a.Elements), 3*p.Gall())
	}
}

func TestNewGrdXTShape(t *testing.T) {
	p := RefinementParams{Glevel: 5, Rlevel: 1}
	a := NewGrdXT(p)
	want := []int{3, 2, p.Gall()}
	if len(a.Shape) != len(want) || a.Shape[0] != want[0] || a.Shape[1] != want[1] || a.Shape[2] != want[2] {
		t.Errorf("NewGrdXT Shape = %v, want %v", a.Shape, want)
	}
	if len(a.Elements) != 3*2*p.Gall() {
		t.Errorf("len(Elements) = %d, want %d", len(a.Elements), 3*2*p.Gall())
	}
}
