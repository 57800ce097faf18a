// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtab

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/aclements/go-moremath/mathx"
	"github.com/fatih/color"

	"github.com/benchlab/abbench/benchmath"
	"github.com/benchlab/abbench/benchunit"
)

var (
	deltaBetter = color.New(color.FgGreen)
	deltaWorse  = color.New(color.FgRed)
)

// ToText renders the report as a fixed-width table. When useColor is
// set, significant deltas are colored green for improvements and red
// for regressions.
func (rep *Report) ToText(w io.Writer, useColor bool) error {
	var warningList []string
	warningSet := make(map[string]int)
	warn := func(msgs ...[]error) string {
		var footnotes []string
		for _, msgs1 := range msgs {
			for _, msg := range msgs1 {
				s := msg.Error()
				i, ok := warningSet[s]
				if !ok {
					i = len(warningList)
					warningSet[s] = i
					warningList = append(warningList, s)
				}
				footnotes = append(footnotes, superscript(i+1))
			}
		}
		return strings.Join(footnotes, " ")
	}

	type textRow struct {
		cells []string
		// colorize applies colors to the already padded delta
		// cell. Color escapes have zero display width, so they
		// are applied after layout.
		colorize func(string) string
	}
	header := textRow{cells: []string{"scenario", "metric", "baseline", "experiment", "delta", "95% CI (bootstrap)", "effect", ""}}
	rows := []textRow{header}

	for _, row := range rep.Rows {
		scaler := rowScaler(row)
		cells := []string{
			row.Scenario,
			metricLabel(row),
			formatSample(row.Base, scaler),
			formatSample(row.Exp, scaler),
		}
		var colorize func(string) string
		if c := row.Cmp; c != nil {
			delta := "~"
			if c.Significant() {
				delta = fmt.Sprintf("%+.2f%%", c.PctChange)
				if useColor {
					colorize = deltaColor(c.PctChange)
				}
			}
			cells = append(cells, delta, formatBootstrap(c), formatEffect(c))
		} else {
			cells = append(cells, "~", "", "")
		}
		cells = append(cells, warn(row.Warnings, row.Base.Warnings, row.Exp.Warnings, cmpWarnings(row.Cmp)))
		rows = append(rows, textRow{cells: cells, colorize: colorize})
	}

	if rep.HasGeomean {
		rows = append(rows, textRow{cells: []string{
			"geomean", "", "", "",
			fmt.Sprintf("%+.2f%%", (1-rep.GeomeanRatio)*100),
			"", "", "",
		}})
	}

	// Lay out fixed-width columns: left-align labels, right-align
	// the numeric columns.
	ncol := len(header.cells)
	widths := make([]int, ncol)
	for _, r := range rows {
		for i, cell := range r.cells {
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}
	rightAlign := map[int]bool{2: true, 3: true, 4: true}
	for _, r := range rows {
		var sb strings.Builder
		for i, cell := range r.cells {
			if i > 0 {
				sb.WriteString("  ")
			}
			pad := strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell))
			if i == 4 && r.colorize != nil {
				cell = r.colorize(cell)
			}
			if rightAlign[i] {
				sb.WriteString(pad + cell)
			} else {
				sb.WriteString(cell + pad)
			}
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(sb.String(), " ")); err != nil {
			return err
		}
	}

	for _, msg := range warningsToStrings(rep.Warnings) {
		if _, ok := warningSet[msg]; !ok {
			warningSet[msg] = len(warningList)
			warningList = append(warningList, msg)
		}
	}
	if len(warningList) > 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		for i, msg := range warningList {
			if _, err := fmt.Fprintf(w, "%s %s\n", superscript(i+1), msg); err != nil {
				return err
			}
		}
	}
	return nil
}

// ToRawText renders the individual observations of every row in
// execution order, marking detected outliers. This is the verbose
// companion to ToText.
func (rep *Report) ToRawText(w io.Writer) error {
	for _, row := range rep.Rows {
		if _, err := fmt.Fprintf(w, "%s %s:\n", row.Scenario, metricLabel(row)); err != nil {
			return err
		}
		for _, side := range []struct {
			name string
			s    *benchmath.Sample
		}{{"baseline", row.Base}, {"experiment", row.Exp}} {
			outliers := make(map[int]bool)
			for _, i := range benchmath.OutlierIndices(side.s.Values, benchmath.DefaultOutlierThreshold) {
				outliers[i] = true
			}
			vals := make([]string, len(side.s.Values))
			for i, v := range side.s.Values {
				vals[i] = fmt.Sprintf("%v", v)
				if outliers[i] {
					vals[i] += " (outlier)"
				}
			}
			if _, err := fmt.Fprintf(w, "  %-10s %s\n", side.name, strings.Join(vals, ", ")); err != nil {
				return err
			}
		}
	}
	return nil
}

// rowScaler returns a scaler common to both of a row's means so the
// two value columns read in the same unit prefix.
func rowScaler(row *Row) benchunit.Scaler {
	var values []float64
	for _, s := range []*benchmath.Sample{row.Base, row.Exp} {
		if m, ok := benchmath.Mean(s.Values); ok {
			values = append(values, m)
		}
	}
	return benchunit.CommonScale(values, benchunit.ClassOf(row.Metric))
}

func metricLabel(row *Row) string {
	if row.Fallback {
		return row.Metric + " (fallback)"
	}
	return row.Metric
}

// formatSample renders "mean ±spread%", where the spread is the
// larger deviation of min and max from the mean.
func formatSample(s *benchmath.Sample, scaler benchunit.Scaler) string {
	mean, ok := benchmath.Mean(s.Values)
	if !ok {
		return "?"
	}
	out := scaler.Format(mean)
	if mean == 0 {
		return out
	}
	min, max := s.Values[0], s.Values[0]
	for _, v := range s.Values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	diff := 1 - min/mean
	if d := max/mean - 1; d > diff {
		diff = d
	}
	return fmt.Sprintf("%s ±%.0f%%", out, diff*100)
}

func formatBootstrap(c *benchmath.Comparison) string {
	if c.Bootstrap == nil {
		return ""
	}
	return fmt.Sprintf("[%+.2f%%, %+.2f%%]", c.Bootstrap.Lo, c.Bootstrap.Hi)
}

func formatEffect(c *benchmath.Comparison) string {
	if !c.EffectOK {
		return ""
	}
	return c.EffectClass.String()
}

func deltaColor(pct float64) func(string) string {
	switch mathx.Sign(pct) {
	case 1:
		return func(s string) string { return deltaBetter.Sprint(s) }
	case -1:
		return func(s string) string { return deltaWorse.Sprint(s) }
	}
	return nil
}

func cmpWarnings(c *benchmath.Comparison) []error {
	if c == nil {
		return nil
	}
	return c.Warnings
}

func warningsToStrings(errs []error) []string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return msgs
}

var superDigits = []rune("⁰¹²³⁴⁵⁶⁷⁸⁹")

func superscript(i int) string {
	if i == 0 {
		return string(superDigits[0])
	}

	var buf [20]rune
	pos := len(buf)
	for i > 0 && pos > 0 {
		pos--
		buf[pos] = superDigits[i%10]
		i /= 10
	}
	return string(buf[pos:])
}
