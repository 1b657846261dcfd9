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

import "math"

// epsilon is the degenerate-vector threshold below which a cartesian
// vector is treated as the zero vector rather than risking a division
// by a denormal length.
const epsilon = 1.0e-99

// LatLonFromXYZ converts a cartesian vector to (latitude, longitude) in
// radians. The zero vector maps to (0, 0). Exactly-polar vectors return
// longitude 0 rather than an arbitrary value from an ill-conditioned
// atan2. Unlike the original xyz2latlon_1 (which returns bare `return`
// statements on the polar branches, silently discarding the assigned
// lat/lon to the caller), every branch here returns its own (lat, lon)
// pair directly.
func LatLonFromXYZ(v Vec3) (lat, lon float64) {
	length := Norm(v)
	if length < epsilon {
		return 0, 0
	}

	z := v[2] / length
	switch {
	case z >= 1:
		return math.Pi / 2, 0
	case z <= -1:
		return -math.Pi / 2, 0
	}
	lat = math.Asin(z)

	lengthH := math.Hypot(v[0], v[1])
	if lengthH < epsilon {
		return lat, 0
	}

	x := clamp(v[0]/lengthH, -1, 1)
	lon = math.Acos(x)
	if v[1] < 0 {
		lon = -lon
	}
	return lat, lon
}

// XYZFromLatLon converts (latitude, longitude) in radians to a
// unit-sphere cartesian vector. Callers scale the result by a radius
// when a physical-length cartesian representation is needed.
func XYZFromLatLon(lat, lon float64) Vec3 {
	cl := math.Cos(lat)
	return Vec3{
		cl * math.Cos(lon),
		cl * math.Sin(lon),
		math.Sin(lat),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
