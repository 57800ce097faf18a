// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchmath provides tools for computing statistics over
// samples of benchmark measurements and for comparing a baseline
// sample against an experiment sample.
//
// The comparison functions are conservative. Quantities that would be
// undefined on a given input, such as a t-test on a constant sample,
// are reported as absent rather than approximated, and each derived
// quantity degrades independently of the others.
//
// Results that can be computed but deserve attention carry a list of
// warnings, captured as an []error value. These aren't errors that
// prevent analysis, but should be presented to the user along with
// analysis results.
package benchmath

import (
	"math"
	"sort"
)

// A Sample is a set of repeated measurements of one metric from one
// variant of a benchmark.
type Sample struct {
	// Metric is the name of the measured metric, e.g. "sweep_ms".
	Metric string

	// Values are the measured values in execution order. The
	// statistics below are order-invariant; the order is retained
	// only for raw-data display.
	Values []float64

	// Warnings is a list of warnings about this sample that
	// should be reported to the user.
	Warnings []error
}

// NewSample constructs a Sample from a set of measurements.
// The slice is retained, not copied.
func NewSample(metric string, values []float64) *Sample {
	return &Sample{Metric: metric, Values: values}
}

// N returns the number of measurements in the sample.
func (s *Sample) N() int { return len(s.Values) }

// Mean returns the arithmetic mean of xs.
// It reports ok=false for an empty input.
func Mean(xs []float64) (mean float64, ok bool) {
	if len(xs) == 0 {
		return 0, false
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs)), true
}

// Median returns the median of xs, computed over a sorted copy.
// For an even number of elements it returns the average of the two
// middle elements. It reports ok=false for an empty input.
func Median(xs []float64) (median float64, ok bool) {
	if len(xs) == 0 {
		return 0, false
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2], true
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2, true
}

// StdDev returns the sample standard deviation of xs with Bessel's
// correction (dividing by n-1). It reports ok=false when xs has
// fewer than two elements.
func StdDev(xs []float64) (dev float64, ok bool) {
	if len(xs) < 2 {
		return 0, false
	}
	mean, _ := Mean(xs)
	var sumSq float64
	for _, x := range xs {
		d := x - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(xs)-1)), true
}

// MAD returns the median absolute deviation from the median of xs, a
// robust dispersion estimator. It reports ok=false for an empty input.
func MAD(xs []float64) (mad float64, ok bool) {
	med, ok := Median(xs)
	if !ok {
		return 0, false
	}
	devs := make([]float64, len(xs))
	for i, x := range xs {
		devs[i] = math.Abs(x - med)
	}
	mad, _ = Median(devs)
	return mad, true
}

// DefaultOutlierThreshold is the MAD multiple beyond which a value is
// flagged by OutlierIndices in the standard configuration.
const DefaultOutlierThreshold = 3.0

// OutlierIndices returns the positions in xs whose absolute deviation
// from the median exceeds threshold times the MAD of xs. It returns
// nil when xs has fewer than three elements or when the MAD is zero:
// a constant sample flags no outliers rather than flagging everything.
//
// This is an annotation aid only. Flagged values are never removed
// from the sample used for hypothesis testing.
func OutlierIndices(xs []float64, threshold float64) []int {
	if len(xs) < 3 {
		return nil
	}
	mad, _ := MAD(xs)
	if mad == 0 {
		return nil
	}
	med, _ := Median(xs)
	var idxs []int
	for i, x := range xs {
		if math.Abs(x-med) > threshold*mad {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

// PctChange returns the percent change of the experiment mean
// relative to the baseline mean: (base - exp) / base * 100. A
// positive result means the experiment value is lower than the
// baseline, i.e. an improvement when lower is better. It is defined
// as 0 when the baseline mean is zero.
func PctChange(baseMean, expMean float64) float64 {
	if baseMean == 0 {
		return 0
	}
	return (baseMean - expMean) / baseMean * 100
}
