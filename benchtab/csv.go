// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtab

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

var csvHeader = []string{
	"scenario", "metric", "fallback",
	"n_base", "n_exp", "base_mean", "exp_mean",
	"delta_pct", "significant",
	"t", "dof", "ci_lo", "ci_hi",
	"boot_lo_pct", "boot_hi_pct", "boot_median_pct",
	"effect", "effect_class", "rank_p",
}

// ToCSV renders the report in machine-readable form. Quantities that
// could not be computed are left as empty fields. Warnings are written
// in text form to the warnings Writer, one per line, prefixed with the
// row they belong to.
func (rep *Report) ToCSV(o *csv.Writer, warnings io.Writer) error {
	if err := o.Write(csvHeader); err != nil {
		return err
	}

	ff := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	for _, row := range rep.Rows {
		rec := make([]string, 0, len(csvHeader))
		rec = append(rec, row.Scenario, row.Metric, strconv.FormatBool(row.Fallback))
		rec = append(rec, strconv.Itoa(row.Base.N()), strconv.Itoa(row.Exp.N()))

		if c := row.Cmp; c != nil {
			rec = append(rec, ff(c.BaseMean), ff(c.ExpMean), ff(c.PctChange),
				strconv.FormatBool(c.Significant()))
			if t := c.TTest; t != nil {
				rec = append(rec, ff(t.T), strconv.Itoa(t.DoF), ff(t.Lo), ff(t.Hi))
			} else {
				rec = append(rec, "", "", "", "")
			}
			if b := c.Bootstrap; b != nil {
				rec = append(rec, ff(b.Lo), ff(b.Hi), ff(b.MedianPct))
			} else {
				rec = append(rec, "", "", "")
			}
			if c.EffectOK {
				rec = append(rec, ff(c.Effect), c.EffectClass.String())
			} else {
				rec = append(rec, "", "")
			}
			if c.RankPOK {
				rec = append(rec, ff(c.RankP))
			} else {
				rec = append(rec, "")
			}
		} else {
			for len(rec) < len(csvHeader) {
				rec = append(rec, "")
			}
		}
		if err := o.Write(rec); err != nil {
			return err
		}

		for _, msgs := range [][]error{row.Warnings, row.Base.Warnings, row.Exp.Warnings, cmpWarnings(row.Cmp)} {
			for _, msg := range msgs {
				if _, err := fmt.Fprintf(warnings, "%s %s: %s\n", row.Scenario, row.Metric, msg); err != nil {
					return err
				}
			}
		}
	}

	for _, msg := range rep.Warnings {
		if _, err := fmt.Fprintf(warnings, "%s\n", msg); err != nil {
			return err
		}
	}
	o.Flush()
	return o.Error()
}
