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
	"os"
	"path/filepath"
	"testing"

	"github.com/ctessum/cdf"
)

func writeTestGridNCF(t *testing.T, path string, p RefinementParams) {
	t.Helper()
	gall := p.Gall()
	h := cdf.NewHeader([]string{"cell"}, []int{gall})
	h.AddVariable("ICO_node_x", []string{"cell"}, float32(0))
	h.AddVariable("ICO_node_y", []string{"cell"}, float32(0))
	h.Define()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	ff, err := cdf.Create(f, h)
	if err != nil {
		t.Fatal(err)
	}

	lon := make([]float32, gall)
	lat := make([]float32, gall)
	gall1D := p.Gall1D()
	for j := 0; j < gall1D; j++ {
		for i := 0; i < gall1D; i++ {
			ij := gall1D*j + i
			lon[ij] = float32(float64(i) * 0.5)
			lat[ij] = float32(10 + float64(j)*0.5)
		}
	}
	if _, err := ff.Writer("ICO_node_x", nil, nil).Write(lon); err != nil {
		t.Fatal(err)
	}
	if _, err := ff.Writer("ICO_node_y", nil, nil).Write(lat); err != nil {
		t.Fatal(err)
	}
}

func TestNetCDFGridSourceLoad(t *testing.T) {
	p := RefinementParams{Glevel: 2, Rlevel: 0}
	dir := t.TempDir()
	path := filepath.Join(dir, "grid.nc")
	writeTestGridNCF(t, path, p)

	src := &NetCDFGridSource{Path: path, Params: p}
	region, err := src.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	gall := p.Gall()
	if len(region.GrdX.Elements) != 3*gall {
		t.Fatalf("len(GrdX.Elements) = %d, want %d", len(region.GrdX.Elements), 3*gall)
	}
	// Every center must land on the sphere of radius EarthRadius.
	for ij := 0; ij < gall; ij++ {
		v := Vec3{region.GrdX.Get(0, ij), region.GrdX.Get(1, ij), region.GrdX.Get(2, ij)}
		if math.Abs(Norm(v)-EarthRadius) > 1e-6 {
			t.Fatalf("center %d norm = %v, want %v", ij, Norm(v), EarthRadius)
		}
	}
	if region.GrdXT == nil {
		t.Fatal("GrdXT = nil, want synthesized vertices")
	}
}

func writeTestFieldNCF(t *testing.T, path string, nSteps, gallIn int) {
	t.Helper()
	h := cdf.NewHeader([]string{"step", "cell"}, []int{nSteps, gallIn})
	h.AddVariable("ms_tem", []string{"step", "cell"}, float32(0))
	h.Define()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	ff, err := cdf.Create(f, h)
	if err != nil {
		t.Fatal(err)
	}

	vals := make([]float32, nSteps*gallIn)
	for i := range vals {
		vals[i] = float32(i)
	}
	if _, err := ff.Writer("ms_tem", nil, nil).Write(vals); err != nil {
		t.Fatal(err)
	}
}

func TestNetCDFFieldReaderRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "field.nc")
	writeTestFieldNCF(t, path, 3, 16)

	p := RefinementParams{Glevel: 2, Rlevel: 0}
	r, err := OpenNetCDFFieldReader(path, "ms_tem", p)
	if err != nil {
		t.Fatalf("OpenNetCDFFieldReader() error = %v", err)
	}
	defer r.Close()

	got, err := r.Read(FieldSpec{Step: 1, Level: 0})
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(got.Elements) != 16 {
		t.Fatalf("len(Elements) = %d, want 16", len(got.Elements))
	}
	if got.Elements[0] != float64(1*16) {
		t.Errorf("Elements[0] = %v, want %v", got.Elements[0], float64(1*16))
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("second Close() error = %v, want nil (idempotent)", err)
	}
}

func TestNetCDFGridSourceShapeMismatch(t *testing.T) {
	p := RefinementParams{Glevel: 2, Rlevel: 0}
	wrong := RefinementParams{Glevel: 3, Rlevel: 0}
	dir := t.TempDir()
	path := filepath.Join(dir, "grid.nc")
	writeTestGridNCF(t, path, p)

	src := &NetCDFGridSource{Path: path, Params: wrong}
	if _, err := src.Load(); err == nil {
		t.Fatal("Load() with mismatched cell count: want error, got nil")
	}
}
