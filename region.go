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

import "github.com/ctessum/sparse"

// EarthRadius is the default sphere radius, in metres, used to scale
// cartesian coordinates and spherical-polygon areas when a caller does
// not supply its own.
const EarthRadius = 6371.01e3

// Region bundles one region's cartesian center and vertex arrays with
// the refinement parameters that produced them. GrdX has shape
// [3, gall]; GrdXT has shape [3, 2, gall].
type Region struct {
	Params RefinementParams
	GrdX   *sparse.DenseArray
	GrdXT  *sparse.DenseArray
}

// NewGrdX allocates a zeroed [3, gall] center array for the given
// parameters.
func NewGrdX(p RefinementParams) *sparse.DenseArray {
	return sparse.ZerosDense(3, p.Gall())
}

// NewGrdXT allocates a zeroed [3, 2, gall] vertex array for the given
// parameters.
func NewGrdXT(p RefinementParams) *sparse.DenseArray {
	return sparse.ZerosDense(3, 2, p.Gall())
}

// GridSource produces a region's cartesian center and vertex arrays from
// some underlying representation (legacy binary records or a NetCDF
// file supplying only centers). Implementations own whatever resources
// they need only for the duration of Load.
type GridSource interface {
	Load() (*Region, error)
}

// FieldSpec selects one 2-D slice of a field: a timestep and a vertical
// level.
type FieldSpec struct {
	Step  int
	Level int
}

// FieldReader returns interior-cell numeric values sampled at a given
// (step, level), and releases its resources on Close. Close must be
// idempotent.
type FieldReader interface {
	Read(spec FieldSpec) (*sparse.DenseArray, error)
	Close() error
}
