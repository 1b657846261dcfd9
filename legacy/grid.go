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

// Package legacy decodes the per-region grid and field files NICAM
// writes without the panda container: raw big-endian arrays, the grid
// file additionally wrapped in Fortran unformatted-sequential record
// framing.
package legacy

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/nicamgo/nicam"
)

// RegionFileName builds the conventional per-region file name NICAM
// uses for both grid and data files: base + ".rgn" + a 5-digit,
// zero-padded region index.
func RegionFileName(base string, region int) string {
	return fmt.Sprintf("%s.rgn%05d", base, region)
}

// GridReader loads one region's grd_x/grd_xt arrays out of a Fortran
// sequential-access file: every record is framed front and back by an
// int32 big-endian byte count, which this reader validates but does not
// otherwise expose. GridReader implements nicam.GridSource once Path is
// set.
type GridReader struct {
	Params nicam.RefinementParams
	Path   string
}

// Load implements nicam.GridSource by calling ReadRegion with Path.
func (g *GridReader) Load() (*nicam.Region, error) {
	return g.ReadRegion(g.Path)
}

// ReadRegion opens path and reads one region's grid: a single-value
// record giving gall_1d, three records of gall float64 values (grd_x,
// one per cartesian axis), then three records of 2*gall float64 values
// (grd_xt, one per axis, each holding the TI slot's gall values
// followed by the TJ slot's). The gall_1d value framed as the first
// record must match the refinement parameters the reader was built
// with.
func (g *GridReader) ReadRegion(path string) (*nicam.Region, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nicam.NewError(nicam.IoFailure, "GridReader.ReadRegion", err)
	}
	defer f.Close()

	gall1D, err := readGall1DRecord(f)
	if err != nil {
		return nil, nicam.NewError(nicam.FormatViolation, "GridReader.ReadRegion", err)
	}
	if gall1D != g.Params.Gall1D() {
		return nil, nicam.NewError(nicam.ShapeMismatch, "GridReader.ReadRegion",
			fmt.Errorf("file declares gall_1d=%d, refinement params want %d", gall1D, g.Params.Gall1D()))
	}

	gall := g.Params.Gall()
	grdX := nicam.NewGrdX(g.Params)
	for axis := 0; axis < 3; axis++ {
		vals, err := readFloat64Record(f, gall)
		if err != nil {
			return nil, nicam.NewError(nicam.FormatViolation, "GridReader.ReadRegion", err)
		}
		for ij, v := range vals {
			grdX.Set(v, axis, ij)
		}
	}

	grdXT := nicam.NewGrdXT(g.Params)
	for axis := 0; axis < 3; axis++ {
		vals, err := readFloat64Record(f, 2*gall)
		if err != nil {
			return nil, nicam.NewError(nicam.FormatViolation, "GridReader.ReadRegion", err)
		}
		for slot := 0; slot < 2; slot++ {
			for ij := 0; ij < gall; ij++ {
				grdXT.Set(vals[slot*gall+ij], axis, slot, ij)
			}
		}
	}

	return &nicam.Region{Params: g.Params, GrdX: grdX, GrdXT: grdXT}, nil
}

// readGall1DRecord reads the single-int32 record that opens every
// legacy grid file.
func readGall1DRecord(r io.Reader) (int, error) {
	vals, err := readInt32Record(r, 1)
	if err != nil {
		return 0, err
	}
	return int(vals[0]), nil
}

// readInt32Record reads one Fortran sequential record expected to
// contain n big-endian int32 values, validating the leading and
// trailing record-length markers agree with each other and with n.
func readInt32Record(r io.Reader, n int) ([]int32, error) {
	want := int32(n * 4)
	if err := expectRecordLength(r, want); err != nil {
		return nil, err
	}
	vals := make([]int32, n)
	if err := binary.Read(r, binary.BigEndian, vals); err != nil {
		return nil, fmt.Errorf("legacy grid record payload: %w", err)
	}
	if err := expectRecordLength(r, want); err != nil {
		return nil, err
	}
	return vals, nil
}

// readFloat64Record reads one Fortran sequential record expected to
// contain n big-endian float64 values.
func readFloat64Record(r io.Reader, n int) ([]float64, error) {
	want := int32(n * 8)
	if err := expectRecordLength(r, want); err != nil {
		return nil, err
	}
	vals := make([]float64, n)
	if err := binary.Read(r, binary.BigEndian, vals); err != nil {
		return nil, fmt.Errorf("legacy grid record payload: %w", err)
	}
	if err := expectRecordLength(r, want); err != nil {
		return nil, err
	}
	return vals, nil
}

// expectRecordLength reads one int32 big-endian record-length marker
// and fails unless it equals want.
func expectRecordLength(r io.Reader, want int32) error {
	var got int32
	if err := binary.Read(r, binary.BigEndian, &got); err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("legacy grid record length marker %d, want %d", got, want)
	}
	return nil
}
