// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchtab presents A/B benchmark comparisons as tables.
//
// It is a presentation layer only: it consumes completed samples and
// comparison results, computes nothing statistical beyond delegating
// to benchmath, and never mutates its inputs, so the inference logic
// stays independently testable without terminal output.
package benchtab

import (
	"fmt"
	"sort"

	"github.com/aclements/go-moremath/stats"

	"github.com/benchlab/abbench/benchmath"
	"github.com/benchlab/abbench/benchrun"
)

// A Row is one (scenario, metric) comparison in a report.
type Row struct {
	// Scenario and Metric identify the comparison.
	Scenario string
	Metric   string

	// Fallback reports whether Metric is the wall-clock fallback
	// rather than the scenario's own primary metric.
	Fallback bool

	// Base and Exp are the two samples, in execution order.
	Base, Exp *benchmath.Sample

	// Cmp is the comparison of Exp against Base, or nil when no
	// comparison is available (fewer than two observations on
	// either side).
	Cmp *benchmath.Comparison

	// Warnings lists recovered problems attributed to this row.
	Warnings []error
}

// A Report is an ordered set of comparison rows plus a cross-scenario
// summary.
type Report struct {
	// Rows holds one row per (scenario, metric) pair, primary
	// metrics first in scenario order.
	Rows []*Row

	// GeomeanRatio is the geometric mean of the per-row
	// experiment/baseline mean ratios, when computable over the
	// primary rows. HasGeomean reports whether it is.
	GeomeanRatio float64
	HasGeomean   bool

	// Warnings lists report-level warnings.
	Warnings []error
}

// Build assembles a Report from completed scenario results. Each
// scenario contributes its primary-metric row plus one row for every
// other metric observed on both variants; the wall-clock metric is
// reported only when it is the fallback primary.
func Build(results []*benchrun.ScenarioResult) *Report {
	rep := new(Report)
	var ratios []float64
	geomeanOK := true

	for _, res := range results {
		row := buildRow(res, res.Metric, res.WallClockFallback)
		row.Warnings = append(row.Warnings, res.Warnings...)
		rep.Rows = append(rep.Rows, row)

		if c := row.Cmp; c != nil && c.BaseMean > 0 && c.ExpMean > 0 {
			ratios = append(ratios, c.ExpMean/c.BaseMean)
		} else {
			geomeanOK = false
		}

		for _, metric := range secondaryMetrics(res) {
			rep.Rows = append(rep.Rows, buildRow(res, metric, false))
		}
	}

	if geomeanOK && len(ratios) > 1 {
		gm := stats.GeoMean(ratios)
		if gm > 0 {
			rep.GeomeanRatio = gm
			rep.HasGeomean = true
		}
	}
	if !geomeanOK && len(results) > 1 {
		rep.Warnings = append(rep.Warnings,
			fmt.Errorf("geomean unavailable: not all scenarios produced comparable means"))
	}
	return rep
}

// buildRow compares one metric of one scenario. A sample with fewer
// than two observations short-circuits to "no comparison available"
// rather than producing a result with undefined variance.
func buildRow(res *benchrun.ScenarioResult, metric string, fallback bool) *Row {
	base, exp := res.Baseline[metric], res.Experiment[metric]
	if base == nil {
		base = benchmath.NewSample(metric, nil)
	}
	if exp == nil {
		exp = benchmath.NewSample(metric, nil)
	}
	row := &Row{
		Scenario: res.Scenario.Name,
		Metric:   metric,
		Fallback: fallback,
		Base:     base,
		Exp:      exp,
	}
	cmp, err := benchmath.Compare(base, exp)
	if err != nil {
		row.Warnings = append(row.Warnings, fmt.Errorf("%s %s: no comparison available: %w", res.Scenario.Name, metric, err))
		return row
	}
	row.Cmp = cmp
	return row
}

// secondaryMetrics returns the non-primary metrics observed on both
// variants, sorted by name. The wall-clock metric is omitted: it is
// always recorded but only meaningful as the fallback primary.
func secondaryMetrics(res *benchrun.ScenarioResult) []string {
	var metrics []string
	for name := range res.Baseline {
		if name == res.Metric || name == benchrun.WallClockMetric {
			continue
		}
		if _, ok := res.Experiment[name]; ok {
			metrics = append(metrics, name)
		}
	}
	sort.Strings(metrics)
	return metrics
}
