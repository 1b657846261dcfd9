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

// RefinementParams holds the two integers that determine the size of
// every array in a NICAM icosahedral grid: the subdivision level of the
// mesh (Glevel) and the subdivision level at which the sphere is cut
// into regions (Rlevel).
type RefinementParams struct {
	Glevel int
	Rlevel int
}

// Validate reports an InvalidParameter error if the refinement
// parameters are out of range: both must be non-negative, Glevel must be
// at least Rlevel, and the difference must not exceed 30 (at which
// NMax*NMax is 2^60, still within a 64-bit int).
func (p RefinementParams) Validate() error {
	if p.Glevel < 0 || p.Rlevel < 0 {
		return NewError(InvalidParameter, "RefinementParams.Validate", errNegativeLevel)
	}
	if p.Glevel < p.Rlevel {
		return NewError(InvalidParameter, "RefinementParams.Validate", errGlevelBelowRlevel)
	}
	if p.Glevel-p.Rlevel > 30 {
		return NewError(InvalidParameter, "RefinementParams.Validate", errLevelSpreadTooLarge)
	}
	return nil
}

// NMax returns the number of interior cells per region side,
// 2^(Glevel-Rlevel).
func (p RefinementParams) NMax() int {
	return 1 << uint(p.Glevel-p.Rlevel)
}

// Gall1D returns the side length of a region in cells, including the
// one-cell halo on each side.
func (p RefinementParams) Gall1D() int {
	return p.NMax() + 2
}

// Gall returns the number of cells in a region including halo,
// Gall1D^2.
func (p RefinementParams) Gall() int {
	g := p.Gall1D()
	return g * g
}

// GallIn returns the number of interior cells per region, NMax^2.
func (p RefinementParams) GallIn() int {
	n := p.NMax()
	return n * n
}

// Lall returns the total number of regions covering the sphere,
// 10*4^Rlevel.
func (p RefinementParams) Lall() int {
	return 10 * (1 << uint(2*p.Rlevel))
}

var (
	errNegativeLevel       = simpleErr("glevel and rlevel must be non-negative")
	errGlevelBelowRlevel   = simpleErr("glevel must be greater than or equal to rlevel")
	errLevelSpreadTooLarge = simpleErr("glevel-rlevel must not exceed 30")
)

type simpleErr string

func (e simpleErr) Error() string { return string(e) }
