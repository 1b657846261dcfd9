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
	"fmt"
	"os"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

// NetCDFGridSource reads cell-center longitudes and latitudes (in
// degrees, variables ICO_node_x and ICO_node_y) out of a NetCDF grid
// file and reconstructs grd_x/grd_xt from them, with the centers scaled
// to EarthRadius. Unlike the legacy
// format, a NetCDF grid file carries no pre-synthesized dual-mesh
// vertices, so SynthesizeVertices always runs.
type NetCDFGridSource struct {
	Path   string
	Params RefinementParams
}

// Load implements GridSource.
func (s *NetCDFGridSource) Load() (*Region, error) {
	if err := s.Params.Validate(); err != nil {
		return nil, NewError(InvalidParameter, "NetCDFGridSource.Load", err)
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, NewError(IoFailure, "NetCDFGridSource.Load", err)
	}
	defer f.Close()

	ff, err := cdf.Open(f)
	if err != nil {
		return nil, NewError(FormatViolation, "NetCDFGridSource.Load", err)
	}

	lon, err := readNCFVar(ff, "ICO_node_x")
	if err != nil {
		return nil, NewError(FormatViolation, "NetCDFGridSource.Load", err)
	}
	lat, err := readNCFVar(ff, "ICO_node_y")
	if err != nil {
		return nil, NewError(FormatViolation, "NetCDFGridSource.Load", err)
	}

	gall := s.Params.Gall()
	if len(lon) != gall || len(lat) != gall {
		return nil, NewError(ShapeMismatch, "NetCDFGridSource.Load",
			fmt.Errorf("expected %d cells, got %d lon / %d lat", gall, len(lon), len(lat)))
	}

	grdX := NewGrdX(s.Params)
	for ij := 0; ij < gall; ij++ {
		v := XYZFromLatLon(degToRad(lat[ij]), degToRad(lon[ij]))
		for d := 0; d < 3; d++ {
			grdX.Set(v[d]*EarthRadius, d, ij)
		}
	}

	return &Region{
		Params: s.Params,
		GrdX:   grdX,
		GrdXT:  SynthesizeVertices(s.Params, grdX),
	}, nil
}

// readNCFVar reads a 1-D float32 NetCDF variable in full, following the
// same Header.Lengths/Reader/Zero/Read sequence used throughout this
// codebase's other NetCDF readers.
func readNCFVar(ff *cdf.File, name string) ([]float64, error) {
	dims := ff.Header.Lengths(name)
	if len(dims) == 0 {
		return nil, fmt.Errorf("variable %s not in file", name)
	}
	n := 1
	for _, d := range dims {
		n *= d
	}
	r := ff.Reader(name, nil, nil)
	buf := r.Zero(n)
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("reading variable %s: %w", name, err)
	}
	raw, ok := buf.([]float32)
	if !ok {
		return nil, fmt.Errorf("variable %s: unsupported NetCDF element type %T", name, buf)
	}
	out := make([]float64, len(raw))
	for i, v := range raw {
		out[i] = float64(v)
	}
	return out, nil
}

// NetCDFFieldReader reads interior-cell values of one variable, at a
// chosen (step, level), out of a NetCDF data file shaped
// [step][level][region][cell] or a subset thereof. The file's cells are
// taken to be interior cells already: Read returns them as stored and
// does not crop a halo.
type NetCDFFieldReader struct {
	Params  RefinementParams
	VarName string

	f  *os.File
	ff *cdf.File
}

// OpenNetCDFFieldReader opens path and prepares to read VarName at
// whatever (step, level) Read is later called with.
func OpenNetCDFFieldReader(path, varName string, params RefinementParams) (*NetCDFFieldReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, NewError(IoFailure, "OpenNetCDFFieldReader", err)
	}
	ff, err := cdf.Open(f)
	if err != nil {
		f.Close()
		return nil, NewError(FormatViolation, "OpenNetCDFFieldReader", err)
	}
	return &NetCDFFieldReader{Params: params, VarName: varName, f: f, ff: ff}, nil
}

// Read implements FieldReader. It reads the full [region][gall_in] slab
// for the requested step and level and returns it as a [gall_in]-shaped
// array per region, flattened into a single [num_of_rgn * gall_in] array
// in row-major (region, cell) order, matching the panda reader's shape.
func (r *NetCDFFieldReader) Read(spec FieldSpec) (*sparse.DenseArray, error) {
	dims := r.ff.Header.Lengths(r.VarName)
	if len(dims) < 2 {
		return nil, NewError(FormatViolation, "NetCDFFieldReader.Read",
			fmt.Errorf("variable %s has too few dimensions", r.VarName))
	}

	start := make([]int, len(dims))
	end := make([]int, len(dims))
	for i, d := range dims {
		end[i] = d
	}
	start[0], end[0] = spec.Step, spec.Step+1
	if len(dims) > 2 {
		start[1], end[1] = spec.Level, spec.Level+1
	}

	nread := 1
	for i := range dims {
		nread *= end[i] - start[i]
	}
	rdr := r.ff.Reader(r.VarName, start, end)
	buf := rdr.Zero(nread)
	if _, err := rdr.Read(buf); err != nil {
		return nil, NewError(IoFailure, "NetCDFFieldReader.Read", err)
	}
	raw, ok := buf.([]float32)
	if !ok {
		return nil, NewError(FormatViolation, "NetCDFFieldReader.Read",
			fmt.Errorf("unsupported NetCDF element type %T", buf))
	}

	gallIn := r.Params.GallIn()
	if len(raw) != nread || nread%gallIn != 0 {
		return nil, NewError(ShapeMismatch, "NetCDFFieldReader.Read",
			fmt.Errorf("read %d values, not a multiple of gall_in=%d", len(raw), gallIn))
	}

	out := sparse.ZerosDense(nread)
	for i, v := range raw {
		out.Elements[i] = float64(v)
	}
	return out, nil
}

// Close implements FieldReader. It is safe to call more than once.
func (r *NetCDFFieldReader) Close() error {
	if r.f == nil {
		return nil
	}
	err := r.f.Close()
	r.f = nil
	r.ff = nil
	return err
}
