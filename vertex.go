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

	"github.com/ctessum/sparse"
)

// TI and TJ index the two dual-mesh vertex slots of grd_xt: the
// lower-right and upper-left triangle vertices of each cell,
// respectively.
const (
	TI = 0
	TJ = 1
)

// SynthesizeVertices reconstructs the two triangle-vertex coordinates
// per cell (grd_xt, shape [3, 2, gall]) from a grid source that only
// supplies cell centers (grd_x, shape [3, gall]).
//
// For each interior pair (i, j) with 0 <= i, j <= gall_1d-2, it builds
// the TI ("lower-right") and TJ ("upper-left") triangle trails from the
// four neighbouring centers, then replaces each trail with its
// great-circle centroid: for each consecutive edge (p, q) it forms
// r = (O->p) x (O->q), normalises it, scales it by the angle between p
// and q, sums the three such vectors and re-normalises.
//
// Three seam fix-ups are applied afterward to patch dual-mesh vertices
// the procedure above cannot derive on its own at region boundaries. Two
// of the three (the left- and bottom-boundary halo cells) patch cells
// that are never consulted by the interior-cell vertex assembler (§4.5)
// and exist only to mirror the original source's behaviour faithfully;
// the third (the pentagonal corner) feeds directly into the first
// interior cell's polygon and is required for correctness. The original
// source marks the pentagon case "tentative" — a label carried here
// unchanged rather than resolved against a reference dataset this port
// does not have access to.
func SynthesizeVertices(p RefinementParams, grdX *sparse.DenseArray) *sparse.DenseArray {
	gall1D := p.Gall1D()
	gall := p.Gall()
	gmax := gall1D - 1 // last valid 0-based cell index along one axis

	suf := func(j, i int) int { return gall1D*j + i }

	center := func(ij int) Vec3 {
		return Vec3{grdX.Get(0, ij), grdX.Get(1, ij), grdX.Get(2, ij)}
	}

	// trail[ij] holds the 4-point vertex trail (closed back to the first
	// point) for the TI/TJ triangle at cell ij; only indices with
	// 0 <= i, j <= gmax-1 are populated.
	ti := make([][4]Vec3, gall)
	tj := make([][4]Vec3, gall)

	for j := 0; j < gmax; j++ {
		for i := 0; i < gmax; i++ {
			ij := suf(j, i)
			ip1j := suf(j, i+1)
			ip1jp1 := suf(j+1, i+1)
			ijp1 := suf(j+1, i)

			c := center(ij)
			ti[ij] = [4]Vec3{c, center(ip1j), center(ip1jp1), c}
			tj[ij] = [4]Vec3{c, center(ip1jp1), center(ijp1), c}
		}
	}

	grdXT := NewGrdXT(p)
	for j := 0; j < gmax; j++ {
		for i := 0; i < gmax; i++ {
			ij := suf(j, i)
			setVertex(grdXT, TI, ij, greatCircleCentroid(ti[ij]))
			setVertex(grdXT, TJ, ij, greatCircleCentroid(tj[ij]))
		}
	}

	// Seam fix-ups, applied to the already-synthesized vertices.
	gmin := 0
	copyVertex(grdXT, TJ, suf(gmin, gmax), TI, suf(gmin, gmax))
	copyVertex(grdXT, TI, suf(gmax, gmin), TJ, suf(gmax, gmin))
	copyVertex(grdXT, TJ, suf(gmin, gmin+1), TI, suf(gmin, gmin))

	return grdXT
}

// greatCircleCentroid returns the unit-normalized great-circle centroid
// of a closed 4-point trail (p0, p1, p2, p0): the normalized sum of the
// three edge vectors (O->a) x (O->b), each itself normalized and scaled
// by the spherical angle between a and b.
func greatCircleCentroid(trail [4]Vec3) Vec3 {
	var sum Vec3
	for m := 0; m < 3; m++ {
		a, b := trail[m], trail[m+1]
		r := Cross(a, b)
		rLenS := Norm(r)
		rLenC := Dot(a, b)
		theta := math.Atan2(rLenS, rLenC)
		scale := theta / rLenS
		sum[0] += r[0] * scale
		sum[1] += r[1] * scale
		sum[2] += r[2] * scale
	}
	n := Norm(sum)
	return Vec3{sum[0] / n, sum[1] / n, sum[2] / n}
}

func setVertex(grdXT *sparse.DenseArray, slot, ij int, v Vec3) {
	for d := 0; d < 3; d++ {
		grdXT.Set(v[d], d, slot, ij)
	}
}

// copyVertex copies grd_xt[:, fromSlot, fromIJ] into grd_xt[:, toSlot, toIJ].
func copyVertex(grdXT *sparse.DenseArray, fromSlot, fromIJ, toSlot, toIJ int) {
	for d := 0; d < 3; d++ {
		grdXT.Set(grdXT.Get(d, fromSlot, fromIJ), d, toSlot, toIJ)
	}
}
