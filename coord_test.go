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
	"testing"
)

func TestLatLonFromXYZPoles(t *testing.T) {
	nLat, nLon := LatLonFromXYZ(Vec3{0, 0, 1})
	if math.Abs(nLat-math.Pi/2) > 1e-12 || nLon != 0 {
		t.Errorf("north pole: lat=%v lon=%v, want pi/2, 0", nLat, nLon)
	}
	sLat, sLon := LatLonFromXYZ(Vec3{0, 0, -1})
	if math.Abs(sLat+math.Pi/2) > 1e-12 || sLon != 0 {
		t.Errorf("south pole: lat=%v lon=%v, want -pi/2, 0", sLat, sLon)
	}
}

func TestLatLonFromXYZZero(t *testing.T) {
	lat, lon := LatLonFromXYZ(Vec3{0, 0, 0})
	if lat != 0 || lon != 0 {
		t.Errorf("zero vector: lat=%v lon=%v, want 0, 0", lat, lon)
	}
}

func TestLatLonRoundTrip(t *testing.T) {
	cases := []struct{ lat, lon float64 }{
		{0, 0},
		{math.Pi / 4, math.Pi / 3},
		{-math.Pi / 6, -2 * math.Pi / 3},
		{math.Pi / 2.5, math.Pi},
	}
	for _, c := range cases {
		v := XYZFromLatLon(c.lat, c.lon)
		lat, lon := LatLonFromXYZ(v)
		if math.Abs(lat-c.lat) > 1e-9 {
			t.Errorf("round trip lat: got %v, want %v", lat, c.lat)
		}
		if math.Abs(lon-c.lon) > 1e-9 {
			t.Errorf("round trip lon: got %v, want %v", lon, c.lon)
		}
	}
}

func TestXYZFromLatLonUnitLength(t *testing.T) {
	v := XYZFromLatLon(math.Pi/5, math.Pi/7)
	if math.Abs(Norm(v)-1) > 1e-12 {
		t.Errorf("Norm(XYZFromLatLon(...)) = %v, want 1", Norm(v))
	}
}
