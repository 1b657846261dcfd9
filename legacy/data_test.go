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
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/nicamgo/nicam"
)

// writeDataFile lays out nSteps*kall tiles of gall float32 values, each
// tile's value at cell ij set to tileIndex*1000+ij, optionally preceded
// by a 4-byte record marker when access is Sequential.
func writeDataFile(t *testing.T, path string, p nicam.RefinementParams, nSteps, kall int, access Access) {
	t.Helper()
	gall := p.Gall()
	var buf bytes.Buffer
	for step := 0; step < nSteps; step++ {
		for level := 0; level < kall; level++ {
			if access == Sequential {
				binary.Write(&buf, binary.BigEndian, int32(gall*4))
			}
			tileIndex := step*kall + level
			vals := make([]float32, gall)
			for ij := range vals {
				vals[ij] = float32(tileIndex*1000 + ij)
			}
			binary.Write(&buf, binary.BigEndian, vals)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDataReaderDirectHaloAndCrop(t *testing.T) {
	p := nicam.RefinementParams{Glevel: 2, Rlevel: 0}
	dir := t.TempDir()
	path := filepath.Join(dir, "data.rgn00000")
	writeDataFile(t, path, p, 2, 3, Direct)

	d := &DataReader{Params: p, Path: path, Kall: 3, Access: Direct, OutputShape: Shape1D, OutputHalo: true}
	got, err := d.ReadTile(path, 1, 2)
	if err != nil {
		t.Fatalf("ReadTile() error = %v", err)
	}
	gall := p.Gall()
	if len(got.Elements) != gall {
		t.Fatalf("len(Elements) = %d, want %d (halo kept)", len(got.Elements), gall)
	}
	tileIndex := 1*3 + 2
	if got.Elements[0] != float64(tileIndex*1000) {
		t.Errorf("Elements[0] = %v, want %v", got.Elements[0], float64(tileIndex*1000))
	}

	d.OutputHalo = false
	cropped, err := d.ReadTile(path, 1, 2)
	if err != nil {
		t.Fatalf("ReadTile() error = %v", err)
	}
	n := p.Gall1D() - 2
	if len(cropped.Elements) != n*n {
		t.Fatalf("len(Elements) = %d, want %d (cropped)", len(cropped.Elements), n*n)
	}
	gall1D := p.Gall1D()
	wantFirst := float64(tileIndex*1000 + gall1D + 1) // cell (j=1,i=1)
	if cropped.Elements[0] != wantFirst {
		t.Errorf("cropped Elements[0] = %v, want %v", cropped.Elements[0], wantFirst)
	}
}

func TestDataReaderShape2D(t *testing.T) {
	p := nicam.RefinementParams{Glevel: 2, Rlevel: 0}
	dir := t.TempDir()
	path := filepath.Join(dir, "data.rgn00000")
	writeDataFile(t, path, p, 1, 1, Direct)

	d := &DataReader{Params: p, Path: path, Kall: 1, Access: Direct, OutputShape: Shape2D, OutputHalo: false}
	got, err := d.Read(nicam.FieldSpec{Step: 0, Level: 0})
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	n := p.Gall1D() - 2
	if len(got.Shape) != 2 || got.Shape[0] != n || got.Shape[1] != n {
		t.Errorf("Shape = %v, want [%d %d]", got.Shape, n, n)
	}
}

func TestDataReaderSequentialAccess(t *testing.T) {
	p := nicam.RefinementParams{Glevel: 2, Rlevel: 0}
	dir := t.TempDir()
	path := filepath.Join(dir, "data.rgn00000")
	writeDataFile(t, path, p, 2, 2, Sequential)

	d := &DataReader{Params: p, Path: path, Kall: 2, Access: Sequential, OutputShape: Shape1D, OutputHalo: true}
	got, err := d.ReadTile(path, 1, 1)
	if err != nil {
		t.Fatalf("ReadTile() error = %v", err)
	}
	tileIndex := 1*2 + 1
	if got.Elements[0] != float64(tileIndex*1000) {
		t.Errorf("Elements[0] = %v, want %v", got.Elements[0], float64(tileIndex*1000))
	}
}

func TestDataReaderLevelOutOfRange(t *testing.T) {
	p := nicam.RefinementParams{Glevel: 2, Rlevel: 0}
	dir := t.TempDir()
	path := filepath.Join(dir, "data.rgn00000")
	writeDataFile(t, path, p, 1, 1, Direct)

	d := &DataReader{Params: p, Path: path, Kall: 1, Access: Direct}
	if _, err := d.ReadTile(path, 0, 5); err == nil {
		t.Fatal("ReadTile() with out-of-range level: want error, got nil")
	}
}
