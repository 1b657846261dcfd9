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

// Package panda decodes the panda ("PaNDa", per-process NICAM data)
// container format: one file per process, holding a fixed-field header
// followed by a directory of per-variable data-info records and their
// contiguous big-endian payloads.
package panda

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ctessum/sparse"
	"github.com/nicamgo/nicam"
)

// Character field widths shared by the header and the data-info
// records.
const (
	hshort = 16
	hmid   = 64
	hlong  = 256
)

// dinfoSize is the fixed byte width of one data-info record: varname
// (16) + description (64) + unit (16) + layername (16) + note (256) +
// datasize (int64, 8) + datatype (int32, 4) + num_of_layer (int32, 4) +
// step (int32, 4) + time_start (int64, 8) + time_end (int64, 8).
const dinfoSize = 3*hshort + hmid + hlong + 3*8 + 3*4

// DataType identifies a data-info record's element encoding.
type DataType int32

const (
	Real4 DataType = iota
	Real8
	Integer4
	Integer8
)

func (t DataType) elemSize() (int, bool) {
	switch t {
	case Real4, Integer4:
		return 4, true
	case Real8, Integer8:
		return 8, true
	default:
		return 0, false
	}
}

// state is the panda handle's lifecycle, per the original tool's
// register/open/read_pkginfo/read_datainfo sequence.
type state int

const (
	registered state = iota
	opened
	headerRead
	directoryRead
	closed
)

// Header is the fixed-layout package header at offset 0 of a panda
// file.
type Header struct {
	Description  string
	Note         string
	Fmode        int32
	EndianType   int32
	GridTopology int32
	Glevel       int32
	Rlevel       int32
	NumOfRgn     int32
	Rgnid        []int32
	NumOfData    int32
}

// DataInfo is one entry of a panda file's data-record directory.
type DataInfo struct {
	Varname     string
	Description string
	Unit        string
	Layername   string
	Note        string
	Datasize    int64
	Datatype    DataType
	NumOfLayer  int32
	Step        int32
	TimeStart   int64
	TimeEnd     int64
}

// CommonInfo is the caller-supplied reference ValidPkgInfo compares a
// file's header against.
type CommonInfo struct {
	GridTopology int32
	Glevel       int32
	Rlevel       int32
	NumOfRgn     int32
	Rgnid        []int32
}

// Reader is one panda file handle. It implements nicam.FieldReader once
// VarName is set, binding it to a single variable for the Read method;
// ReadPE remains available for reading any variable directly.
type Reader struct {
	Params  nicam.RefinementParams
	VarName string

	path  string
	f     *os.File
	state state

	Header Header
	Dinfo  []DataInfo
	eoh    int64

	// Warnings accumulates non-fatal mismatches found by
	// ValidPkgInfo/ValidDataInfo, per the original tool's
	// warn-don't-fail policy for these checks.
	Warnings []string
}

// NewReader registers path without opening it, mirroring
// FIO.register_file.
func NewReader(path string, params nicam.RefinementParams) *Reader {
	return &Reader{path: path, Params: params, state: registered}
}

// Open opens the underlying file and reads both the header and the
// data-info directory. Calling Open twice without an intervening Close
// is a no-op, matching the original tool's "already opened" guard.
func (r *Reader) Open() error {
	if r.state != registered && r.state != closed {
		return nil
	}
	f, err := os.Open(r.path)
	if err != nil {
		return nicam.NewError(nicam.IoFailure, "Reader.Open", err)
	}
	r.f = f
	r.state = opened

	if err := r.readHeader(); err != nil {
		r.f.Close()
		r.state = registered
		return err
	}
	r.state = headerRead

	if err := r.readDirectory(); err != nil {
		r.f.Close()
		r.state = registered
		return err
	}
	r.state = directoryRead
	return nil
}

// Close releases the file handle. It is safe to call more than once.
func (r *Reader) Close() error {
	if r.f == nil {
		return nil
	}
	err := r.f.Close()
	r.f = nil
	r.state = closed
	return err
}

func (r *Reader) readHeader() error {
	if _, err := r.f.Seek(0, io.SeekStart); err != nil {
		return nicam.NewError(nicam.IoFailure, "Reader.readHeader", err)
	}
	var h Header
	var err error
	if h.Description, err = readFixedString(r.f, hmid); err != nil {
		return nicam.NewError(nicam.FormatViolation, "Reader.readHeader", err)
	}
	if h.Note, err = readFixedString(r.f, hlong); err != nil {
		return nicam.NewError(nicam.FormatViolation, "Reader.readHeader", err)
	}
	ints := []*int32{&h.Fmode, &h.EndianType, &h.GridTopology, &h.Glevel, &h.Rlevel, &h.NumOfRgn}
	for _, p := range ints {
		if err := binary.Read(r.f, binary.BigEndian, p); err != nil {
			return nicam.NewError(nicam.FormatViolation, "Reader.readHeader", err)
		}
	}
	h.Rgnid = make([]int32, h.NumOfRgn)
	if h.NumOfRgn > 0 {
		if err := binary.Read(r.f, binary.BigEndian, h.Rgnid); err != nil {
			return nicam.NewError(nicam.FormatViolation, "Reader.readHeader", err)
		}
	}
	if err := binary.Read(r.f, binary.BigEndian, &h.NumOfData); err != nil {
		return nicam.NewError(nicam.FormatViolation, "Reader.readHeader", err)
	}
	pos, err := r.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return nicam.NewError(nicam.IoFailure, "Reader.readHeader", err)
	}
	r.Header = h
	r.eoh = pos
	return nil
}

func (r *Reader) readDirectory() error {
	if _, err := r.f.Seek(r.eoh, io.SeekStart); err != nil {
		return nicam.NewError(nicam.IoFailure, "Reader.readDirectory", err)
	}
	dinfo := make([]DataInfo, 0, r.Header.NumOfData)
	for i := int32(0); i < r.Header.NumOfData; i++ {
		d, err := readDataInfo(r.f)
		if err != nil {
			return nicam.NewError(nicam.FormatViolation, "Reader.readDirectory", err)
		}
		dinfo = append(dinfo, d)
		if _, err := r.f.Seek(d.Datasize, io.SeekCurrent); err != nil {
			return nicam.NewError(nicam.IoFailure, "Reader.readDirectory", err)
		}
	}
	r.Dinfo = dinfo
	return nil
}

func readDataInfo(r io.Reader) (DataInfo, error) {
	var d DataInfo
	var err error
	if d.Varname, err = readFixedString(r, hshort); err != nil {
		return d, err
	}
	if d.Description, err = readFixedString(r, hmid); err != nil {
		return d, err
	}
	if d.Unit, err = readFixedString(r, hshort); err != nil {
		return d, err
	}
	if d.Layername, err = readFixedString(r, hshort); err != nil {
		return d, err
	}
	if d.Note, err = readFixedString(r, hlong); err != nil {
		return d, err
	}
	if err = binary.Read(r, binary.BigEndian, &d.Datasize); err != nil {
		return d, err
	}
	var datatype int32
	if err = binary.Read(r, binary.BigEndian, &datatype); err != nil {
		return d, err
	}
	d.Datatype = DataType(datatype)
	if err = binary.Read(r, binary.BigEndian, &d.NumOfLayer); err != nil {
		return d, err
	}
	if err = binary.Read(r, binary.BigEndian, &d.Step); err != nil {
		return d, err
	}
	if err = binary.Read(r, binary.BigEndian, &d.TimeStart); err != nil {
		return d, err
	}
	if err = binary.Read(r, binary.BigEndian, &d.TimeEnd); err != nil {
		return d, err
	}
	return d, nil
}

// readFixedString reads n bytes and trims the trailing NUL padding the
// original ASCII fields are written with. Other trailing bytes, such as
// spaces, are kept.
func readFixedString(r io.Reader, n int) (string, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return strings.TrimRight(string(buf), "\x00"), nil
}

// SeekDataInfo returns the index into Dinfo of the record matching
// varname and step, or a NotFound error.
func (r *Reader) SeekDataInfo(varname string, step int32) (int, error) {
	for i, d := range r.Dinfo {
		if d.Varname == varname && d.Step == step {
			return i, nil
		}
	}
	return -1, nicam.NewError(nicam.NotFound, "Reader.SeekDataInfo",
		fmt.Errorf("no record for varname=%q step=%d", varname, step))
}

// payloadOffset returns the absolute file offset of data-info record
// did's payload.
func (r *Reader) payloadOffset(did int) int64 {
	pos := r.eoh
	for i := 0; i < did; i++ {
		pos += dinfoSize + r.Dinfo[i].Datasize
	}
	return pos + dinfoSize
}

// ReadPE reads variable varname at the given step, extracts the k-th
// vertical layer across every region in the file, and crops the halo,
// returning a (num_of_rgn, gall_in) array flattened in row-major
// (region, cell) order.
func (r *Reader) ReadPE(varname string, step int32, k int) (*sparse.DenseArray, error) {
	if r.state != headerRead && r.state != directoryRead {
		return nil, nicam.NewError(nicam.UnsupportedConfiguration, "Reader.ReadPE",
			fmt.Errorf("reader is not open"))
	}
	did, err := r.SeekDataInfo(varname, step)
	if err != nil {
		return nil, err
	}
	d := r.Dinfo[did]
	if k < 0 || int32(k) >= d.NumOfLayer {
		return nil, nicam.NewError(nicam.InvalidParameter, "Reader.ReadPE",
			fmt.Errorf("level %d out of range [0, %d)", k, d.NumOfLayer))
	}
	elemSize, ok := d.Datatype.elemSize()
	if !ok {
		return nil, nicam.NewError(nicam.FormatViolation, "Reader.ReadPE",
			fmt.Errorf("unsupported datatype %d", d.Datatype))
	}

	gall := r.Params.Gall()
	numRgn := int(r.Header.NumOfRgn)
	want := int64(numRgn) * int64(d.NumOfLayer) * int64(gall) * int64(elemSize)
	if want != d.Datasize {
		return nil, nicam.NewError(nicam.ShapeMismatch, "Reader.ReadPE",
			fmt.Errorf("declared datasize %d does not match region*layer*gall*elemSize %d", d.Datasize, want))
	}

	gallIn := r.Params.GallIn()
	gall1D := r.Params.Gall1D()
	out := sparse.ZerosDense(numRgn * gallIn)

	layerStride := int64(gall) * int64(elemSize)
	regionStride := int64(d.NumOfLayer) * layerStride
	base := r.payloadOffset(did) + int64(k)*layerStride

	raw := make([]float64, gall)
	for rgn := 0; rgn < numRgn; rgn++ {
		offset := base + int64(rgn)*regionStride
		if _, err := r.f.Seek(offset, io.SeekStart); err != nil {
			return nil, nicam.NewError(nicam.IoFailure, "Reader.ReadPE", err)
		}
		if err := readElements(r.f, d.Datatype, raw); err != nil {
			return nil, nicam.NewError(nicam.IoFailure, "Reader.ReadPE", err)
		}
		outIdx := rgn * gallIn
		for j := 1; j <= gall1D-2; j++ {
			for i := 1; i <= gall1D-2; i++ {
				out.Elements[outIdx] = raw[gall1D*j+i]
				outIdx++
			}
		}
	}
	return out, nil
}

// readElements reads len(dst) big-endian values of the record's
// datatype into dst, converting Real4/Integer4/Integer8 storage to
// float64 and reading Real8 directly, so Real8 values are never
// narrowed through float32.
func readElements(r io.Reader, dt DataType, dst []float64) error {
	switch dt {
	case Real4:
		buf := make([]float32, len(dst))
		if err := binary.Read(r, binary.BigEndian, buf); err != nil {
			return err
		}
		for i, v := range buf {
			dst[i] = float64(v)
		}
		return nil
	case Real8:
		return binary.Read(r, binary.BigEndian, dst)
	case Integer4:
		buf := make([]int32, len(dst))
		if err := binary.Read(r, binary.BigEndian, buf); err != nil {
			return err
		}
		for i, v := range buf {
			dst[i] = float64(v)
		}
		return nil
	case Integer8:
		buf := make([]int64, len(dst))
		if err := binary.Read(r, binary.BigEndian, buf); err != nil {
			return err
		}
		for i, v := range buf {
			dst[i] = float64(v)
		}
		return nil
	default:
		return fmt.Errorf("unsupported datatype %d", dt)
	}
}

// ValidPkgInfo compares the file's header against a caller-supplied
// reference, appending a Warnings entry for each mismatch rather than
// failing, matching the original tool's valid_pkginfo.
func (r *Reader) ValidPkgInfo(common CommonInfo) {
	h := r.Header
	if h.GridTopology != common.GridTopology {
		r.warnf("grid_topology mismatch: %d != %d", h.GridTopology, common.GridTopology)
	}
	if h.Glevel != common.Glevel {
		r.warnf("glevel mismatch: %d != %d", h.Glevel, common.Glevel)
	}
	if h.Rlevel != common.Rlevel {
		r.warnf("rlevel mismatch: %d != %d", h.Rlevel, common.Rlevel)
	}
	if h.NumOfRgn != common.NumOfRgn {
		r.warnf("num_of_rgn mismatch: %d != %d", h.NumOfRgn, common.NumOfRgn)
	}
	for i := 0; i < len(h.Rgnid) && i < len(common.Rgnid); i++ {
		if h.Rgnid[i] != common.Rgnid[i] {
			r.warnf("rgnid[%d] mismatch: %d != %d", i, h.Rgnid[i], common.Rgnid[i])
		}
	}
}

// ValidDataInfo verifies each directory record's declared datasize
// against region*layer*gall*elemSize, appending a Warnings entry for
// each mismatch rather than failing, matching the original tool's
// valid_datainfo.
func (r *Reader) ValidDataInfo() {
	gall := r.Params.Gall()
	for _, d := range r.Dinfo {
		elemSize, ok := d.Datatype.elemSize()
		if !ok {
			r.warnf("datainfo %s: unknown datatype %d", d.Varname, d.Datatype)
			continue
		}
		want := int64(r.Header.NumOfRgn) * int64(d.NumOfLayer) * int64(gall) * int64(elemSize)
		if d.Datasize != want {
			r.warnf("datainfo %s: datasize %d, want %d (%d region x %d layer x %d gall x %d bytes)",
				d.Varname, d.Datasize, want, r.Header.NumOfRgn, d.NumOfLayer, gall, elemSize)
		}
	}
}

func (r *Reader) warnf(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Read implements nicam.FieldReader by calling ReadPE with VarName.
func (r *Reader) Read(spec nicam.FieldSpec) (*sparse.DenseArray, error) {
	return r.ReadPE(r.VarName, int32(spec.Step), spec.Level)
}
