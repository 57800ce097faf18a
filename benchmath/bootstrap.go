// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchmath

import (
	"math/rand"
	"sort"
)

// bootstrapSeed seeds the generator used for bootstrap resampling.
// The seed is a fixed constant, not derived from the clock, so two
// runs over identical inputs produce bit-identical intervals. Each
// bootstrap call creates its own generator from this seed, making
// results independent of call order.
const bootstrapSeed = 430

// DefaultResamples is the number of bootstrap resamples used by
// Compare. Smaller counts (≥1000) remain statistically reasonable and
// are useful in tests.
const DefaultResamples = 10000

// A BootstrapResult is a non-parametric percentile-bootstrap estimate
// of the percent change between two samples. It makes no normality
// assumption and is reported alongside the parametric Welch interval
// as a cross-check.
type BootstrapResult struct {
	// N is the number of resamples drawn.
	N int

	// Lo and Hi bound the two-sided percentile interval of the
	// percent change.
	Lo, Hi float64

	// MedianPct is the middle element of the sorted resampled
	// percent changes, a point estimate of the change.
	MedianPct float64
}

// resampleInto fills x with a resample-with-replacement of src.
func resampleInto(r *rand.Rand, src, x []float64) {
	l := len(src)
	for i := range x {
		x[i] = src[r.Intn(l)]
	}
}

// BootstrapPctChange estimates a two-sided (1-alpha) percentile
// bootstrap interval for the percent change of exp relative to base,
// drawing n resamples of each sample, each the size of its source.
// Resampled pairs with a zero baseline mean contribute a percent
// change of zero, exactly as in PctChange. It returns ErrSampleSize
// if either sample has fewer than two measurements.
func BootstrapPctChange(base, exp []float64, n int, alpha float64) (*BootstrapResult, error) {
	if len(base) < 2 || len(exp) < 2 {
		return nil, ErrSampleSize
	}
	if n < 1000 {
		n = 1000
	}

	r := rand.New(rand.NewSource(bootstrapSeed))
	rbase := make([]float64, len(base))
	rexp := make([]float64, len(exp))
	pcts := make([]float64, n)
	for i := 0; i < n; i++ {
		resampleInto(r, base, rbase)
		resampleInto(r, exp, rexp)
		m1, _ := Mean(rbase)
		m2, _ := Mean(rexp)
		pcts[i] = PctChange(m1, m2)
	}
	sort.Float64s(pcts)

	lo := int(float64(n) * alpha / 2)
	hi := int(float64(n) * (1 - alpha/2))
	if hi >= n {
		hi = n - 1
	}
	return &BootstrapResult{
		N:         n,
		Lo:        pcts[lo],
		Hi:        pcts[hi],
		MedianPct: pcts[n/2],
	}, nil
}
