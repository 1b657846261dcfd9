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

// Command nicainfo is a command-line inspector for NICAM grid and field
// files: it prints summary statistics rather than full arrays, useful
// for sanity-checking a file before handing it to a plotting client.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/nicamgo/nicam"
	"github.com/nicamgo/nicam/legacy"
	"github.com/nicamgo/nicam/panda"
	"github.com/spf13/cobra"
)

var (
	glevel, rlevel int
)

func main() {
	root := &cobra.Command{
		Use:   "nicainfo",
		Short: "Inspect NICAM grid and field files.",
		Long: `nicainfo opens a NICAM grid or field file and reports summary
statistics: cell counts, center-norm bounds and, for fields, the range
of values read. It exists to sanity-check a file before handing it to a
plotting client; it is not part of the grid geometry engine or the
container decoders themselves.`,
		DisableAutoGenTag: true,
	}
	root.PersistentFlags().IntVar(&glevel, "glevel", 5, "grid subdivision level")
	root.PersistentFlags().IntVar(&rlevel, "rlevel", 1, "region subdivision level")

	root.AddCommand(gridCmd(), pandaCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func params() nicam.RefinementParams {
	return nicam.RefinementParams{Glevel: glevel, Rlevel: rlevel}
}

func gridCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grid [path]",
		Short: "Summarize a legacy-format region grid file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := params()
			if err := p.Validate(); err != nil {
				return err
			}
			reader := &legacy.GridReader{Params: p, Path: args[0]}
			region, err := reader.Load()
			if err != nil {
				return err
			}

			polys := nicam.AssembleCellPolygons(p, region.GrdX, region.GrdXT, nicam.EarthRadius)
			pentagons := 0
			var totalArea float64
			for _, poly := range polys {
				if poly.Pentagon {
					pentagons++
				}
				totalArea += poly.Area
			}

			minNorm, maxNorm := centerNormBounds(p, region.GrdX)
			fmt.Printf("gall=%d gall_in=%d cells=%d pentagons=%d center_norm=[%.6f,%.6f] area=%.6e\n",
				p.Gall(), p.GallIn(), len(polys), pentagons, minNorm, maxNorm, totalArea)
			return nil
		},
	}
}

func pandaCmd() *cobra.Command {
	var varname string
	var step int
	var level int

	cmd := &cobra.Command{
		Use:   "field [path]",
		Short: "Summarize one (varname, step, level) slice of a panda file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := params()
			if err := p.Validate(); err != nil {
				return err
			}
			reader := panda.NewReader(args[0], p)
			if err := reader.Open(); err != nil {
				return err
			}
			defer reader.Close()

			reader.ValidDataInfo()
			for _, w := range reader.Warnings {
				log.Printf("warning: %s", w)
			}

			data, err := reader.ReadPE(varname, int32(step), level)
			if err != nil {
				return err
			}
			minV, maxV := valueBounds(data.Elements)
			fmt.Printf("%s step=%d level=%d shape=%v min=%.6g max=%.6g\n",
				varname, step, level, data.Shape, minV, maxV)
			return nil
		},
	}
	cmd.Flags().StringVar(&varname, "var", "", "variable name")
	cmd.Flags().IntVar(&step, "step", 0, "timestep")
	cmd.Flags().IntVar(&level, "level", 0, "vertical level")
	cmd.MarkFlagRequired("var")
	return cmd
}

func centerNormBounds(p nicam.RefinementParams, grdX interface {
	Get(idx ...int) float64
}) (min, max float64) {
	gall := p.Gall()
	min, max = 1e300, -1e300
	for ij := 0; ij < gall; ij++ {
		v := nicam.Vec3{grdX.Get(0, ij), grdX.Get(1, ij), grdX.Get(2, ij)}
		n := nicam.Norm(v)
		if n < min {
			min = n
		}
		if n > max {
			max = n
		}
	}
	return min, max
}

func valueBounds(vals []float64) (min, max float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	min, max = vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
