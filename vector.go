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
	"math"

	"gonum.org/v1/gonum/floats"
)

// Vec3 is a fixed 3-component cartesian vector, the representation used
// throughout THE CORE for points on (or near) the unit sphere.
type Vec3 [3]float64

// Dot returns the dot product of a and b.
func Dot(a, b Vec3) float64 {
	return floats.Dot(a[:], b[:])
}

// Cross returns the cross product a x b. gonum has no 3-vector cross
// product helper, so this is hand-rolled, matching VECTR_cross in the
// original source.
func Cross(a, b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Norm returns the Euclidean length of a.
func Norm(a Vec3) float64 {
	return floats.Norm(a[:], 2)
}

// Angle returns the angle in radians between x and y as seen from the
// origin, computed as atan2(||x cross y||, x dot y) so that it stays
// numerically well-behaved for any pair of nonzero vectors, including
// nearly parallel or nearly antiparallel ones.
func Angle(x, y Vec3) float64 {
	c := Cross(x, y)
	return math.Atan2(Norm(c), Dot(x, y))
}

// TriangleArea returns the area of the spherical triangle with cartesian
// vertices a, b, c on a sphere of the given radius, using l'Huilier's
// theorem on the spherical excess. Degenerate (collinear-on-a-great-circle)
// triangles return 0 instead of propagating a negative radicand.
func TriangleArea(a, b, c Vec3, radius float64) float64 {
	s1 := Angle(a, b) / 2
	s2 := Angle(b, c) / 2
	s3 := Angle(c, a) / 2
	s := (s1 + s2 + s3) / 2
	t := math.Tan(s) * math.Tan(s-s1) * math.Tan(s-s2) * math.Tan(s-s3)
	if t <= 0 {
		return 0
	}
	return 4 * math.Atan(math.Sqrt(t)) * radius * radius
}
