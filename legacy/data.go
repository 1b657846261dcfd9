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

package legacy

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/ctessum/sparse"
	"github.com/nicamgo/nicam"
)

// Access selects whether DataReader treats a file as a plain
// concatenation of tiles (Direct) or as one carrying a 4-byte
// record-length prefix before every (step, level) tile (Sequential).
type Access int

const (
	Direct Access = iota
	Sequential
)

// Shape selects whether DataReader.Read returns a flat ravel of the
// tile (Shape1D) or a 2-D [n, n] array (Shape2D).
type Shape int

const (
	Shape1D Shape = iota
	Shape2D
)

// DataReader reads one region's field file: a plain big-endian float32
// array laid out [step][level][cell], cell itself being a row-major
// gall_1d x gall_1d tile. DataReader implements nicam.FieldReader once
// Path is set, binding Read(spec) to Path and to spec's step and level.
type DataReader struct {
	Params      nicam.RefinementParams
	Path        string
	Kall        int // number of vertical levels stored per step
	Access      Access
	OutputShape Shape
	OutputHalo  bool
}

// Read implements nicam.FieldReader by calling ReadTile with Path.
func (d *DataReader) Read(spec nicam.FieldSpec) (*sparse.DenseArray, error) {
	return d.ReadTile(d.Path, spec.Step, spec.Level)
}

// Close implements nicam.FieldReader. DataReader opens and closes its
// file once per ReadTile call, so Close is a no-op kept only to satisfy
// the interface.
func (d *DataReader) Close() error { return nil }

// ReadTile returns the (step, level) tile from the field file at path,
// cropped to interior cells unless OutputHalo is set, and shaped
// according to OutputShape.
func (d *DataReader) ReadTile(path string, step, level int) (*sparse.DenseArray, error) {
	if level < 0 || level >= d.Kall {
		return nil, nicam.NewError(nicam.InvalidParameter, "DataReader.Read",
			fmt.Errorf("level %d out of range [0, %d)", level, d.Kall))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nicam.NewError(nicam.IoFailure, "DataReader.Read", err)
	}
	defer f.Close()

	gall := d.Params.Gall()
	gall1D := d.Params.Gall1D()
	tileBytes := int64(gall) * 4

	var prefix int64
	if d.Access == Sequential {
		prefix = 4
	}
	recordBytes := prefix + tileBytes
	tileIndex := int64(step)*int64(d.Kall) + int64(level)
	offset := tileIndex*recordBytes + prefix

	if _, err := f.Seek(offset, 0); err != nil {
		return nil, nicam.NewError(nicam.IoFailure, "DataReader.Read", err)
	}
	raw := make([]float32, gall)
	if err := binary.Read(f, binary.BigEndian, raw); err != nil {
		return nil, nicam.NewError(nicam.IoFailure, "DataReader.Read", err)
	}

	if d.OutputHalo {
		return shapeTile(raw, gall1D, gall1D, d.OutputShape), nil
	}

	n := gall1D - 2
	inner := make([]float32, 0, n*n)
	for j := 1; j <= gall1D-2; j++ {
		for i := 1; i <= gall1D-2; i++ {
			inner = append(inner, raw[gall1D*j+i])
		}
	}
	return shapeTile(inner, n, n, d.OutputShape), nil
}

func shapeTile(raw []float32, rows, cols int, shape Shape) *sparse.DenseArray {
	var out *sparse.DenseArray
	switch shape {
	case Shape2D:
		out = sparse.ZerosDense(rows, cols)
	default:
		out = sparse.ZerosDense(rows * cols)
	}
	for i, v := range raw {
		out.Elements[i] = float64(v)
	}
	return out
}
