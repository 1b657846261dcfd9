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

	"github.com/ctessum/geom"
	"github.com/ctessum/sparse"
)

// CellPolygon is one interior cell's hexagon (or, at an icosahedral
// corner, pentagon) in both its cartesian and lon/lat-degree forms. The
// two are kept in lockstep so that PolygonArea/CellArea do not have to
// re-derive cartesian coordinates from degrees.
type CellPolygon struct {
	geom.Polygon
	Vertices []Vec3
	Pentagon bool
	// Area is the cell's spherical area, fan-triangulated from its own
	// center via CellArea, at the radius AssembleCellPolygons was
	// called with.
	Area float64
}

// cellVertexOrder is the fixed gather order of spec §3: each entry names
// the (rowOffset, colOffset, slot) of the source cell relative to the
// interior cell (i, j).
var cellVertexOrder = [6]struct {
	dj, di int
	slot   int
}{
	{-1, -1, TJ},
	{-1, -1, TI},
	{-1, 0, TJ},
	{0, 0, TI},
	{0, 0, TJ},
	{0, -1, TI},
}

// AssembleCellPolygons converts grd_xt to lon/lat and gathers, for every
// interior cell, the 6 vertices tabulated in spec §3 in their canonical
// winding order. Consecutive coincident vertices (the pentagon case at
// icosahedral corners) are deduplicated to 5. Each returned CellPolygon's
// Area is filled in via CellArea, fanned from the cell's own center in
// grdX, at the given radius.
func AssembleCellPolygons(p RefinementParams, grdX, grdXT *sparse.DenseArray, radius float64) []CellPolygon {
	gall1D := p.Gall1D()
	suf := func(j, i int) int { return gall1D*j + i }

	vertex := func(slot, ij int) Vec3 {
		return Vec3{grdXT.Get(0, slot, ij), grdXT.Get(1, slot, ij), grdXT.Get(2, slot, ij)}
	}
	center := func(ij int) Vec3 {
		return Vec3{grdX.Get(0, ij), grdX.Get(1, ij), grdX.Get(2, ij)}
	}

	nmax := p.NMax()
	polys := make([]CellPolygon, 0, nmax*nmax)
	for j := 1; j <= gall1D-2; j++ {
		for i := 1; i <= gall1D-2; i++ {
			var raw [6]Vec3
			for k, o := range cellVertexOrder {
				raw[k] = vertex(o.slot, suf(j+o.dj, i+o.di))
			}
			verts := dedupConsecutive(raw[:])

			ring := make([]geom.Point, len(verts))
			for k, v := range verts {
				lat, lon := LatLonFromXYZ(v)
				ring[k] = geom.Point{X: radToDeg(lon), Y: radToDeg(lat)}
			}
			poly := CellPolygon{
				Polygon:  geom.Polygon{ring},
				Vertices: verts,
				Pentagon: len(verts) == 5,
			}
			poly.Area = CellArea(center(suf(j, i)), poly, radius)
			polys = append(polys, poly)
		}
	}
	return polys
}

// dedupConsecutive removes vertices equal to their predecessor in the
// cyclic sequence (wraparound included), leaving winding order intact.
// It returns the full 6-entry input unchanged when no adjacent pair
// coincides.
func dedupConsecutive(verts []Vec3) []Vec3 {
	n := len(verts)
	out := make([]Vec3, 0, n)
	for k, v := range verts {
		prev := verts[(k-1+n)%n]
		if v == prev {
			continue
		}
		out = append(out, v)
	}
	return out
}

// PolygonArea returns the spherical area of poly, fan-triangulated from
// its own first vertex, on a sphere of the given radius.
func PolygonArea(poly CellPolygon, radius float64) float64 {
	v := poly.Vertices
	var area float64
	for k := 1; k < len(v)-1; k++ {
		area += TriangleArea(v[0], v[k], v[k+1], radius)
	}
	return area
}

// CellArea returns the spherical area of poly, fan-triangulated from the
// cell's own center rather than one of its vertices, matching
// NICOgrid.area_all in the original source. This is the form used by
// the full-sphere closure invariant (§8).
func CellArea(center Vec3, poly CellPolygon, radius float64) float64 {
	v := poly.Vertices
	n := len(v)
	var area float64
	for k := 0; k < n; k++ {
		area += TriangleArea(center, v[k], v[(k+1)%n], radius)
	}
	return area
}

func radToDeg(r float64) float64 { return r * 180 / math.Pi }
func degToRad(d float64) float64 { return d * math.Pi / 180 }
