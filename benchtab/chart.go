// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtab

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const boxWidth = vg.Centimeter

// Charts writes one PNG per row into dir, each showing the baseline
// and experiment observations as side-by-side box plots. Rows without
// observations on both sides are skipped.
func (rep *Report) Charts(dir string) error {
	if err := os.MkdirAll(dir, 0777); err != nil {
		return err
	}

	for _, row := range rep.Rows {
		if row.Base.N() == 0 || row.Exp.N() == 0 {
			continue
		}

		pl := plot.New()
		pl.Title.Text = fmt.Sprintf("%s (%s)", row.Scenario, row.Metric)
		pl.Y.Label.Text = row.Metric

		grid := plotter.NewGrid()
		grid.Vertical.Color = nil
		pl.Add(grid)

		samples := []plotter.Values{
			plotter.Values(row.Base.Values),
			plotter.Values(row.Exp.Values),
		}
		for i, values := range samples {
			b, err := plotter.NewBoxPlot(boxWidth, float64(i), values)
			if err != nil {
				return fmt.Errorf("chart %s %s: %w", row.Scenario, row.Metric, err)
			}
			pl.Add(b)
		}
		pl.NominalX("baseline", "experiment")

		file := filepath.Join(dir, chartName(row)+".png")
		if err := pl.Save(12*vg.Centimeter, 10*vg.Centimeter, file); err != nil {
			return fmt.Errorf("chart %s %s: %w", row.Scenario, row.Metric, err)
		}
	}
	return nil
}

func chartName(row *Row) string {
	s := row.Scenario + "-" + row.Metric
	s = strings.ReplaceAll(s, "/", "-per-")
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		}
		return '_'
	}, s)
}
