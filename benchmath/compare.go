// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchmath

import (
	"fmt"

	"github.com/aclements/go-moremath/stats"
)

// A Comparison is the read-only result of comparing an experiment
// Sample against a baseline Sample for one metric. It is computed
// once from two completed samples and never mutated; degenerate
// inputs leave individual derived quantities absent (nil or ok=false)
// while the rest still compute independently.
type Comparison struct {
	// Metric is the metric both samples measure.
	Metric string

	// N1 and N2 are the baseline and experiment sample sizes.
	N1, N2 int

	// BaseMean and ExpMean are the two sample means.
	BaseMean, ExpMean float64

	// PctChange is the percent change of ExpMean relative to
	// BaseMean. Positive means the experiment measured lower.
	PctChange float64

	// TTest is the Welch t-test result, or nil if the test is
	// undefined for these samples.
	TTest *TTestResult

	// Bootstrap is the percentile-bootstrap interval on the
	// percent change, or nil if undefined.
	Bootstrap *BootstrapResult

	// Effect is Glass's delta and its magnitude label.
	// EffectOK reports whether Effect is defined.
	Effect      float64
	EffectClass EffectClass
	EffectOK    bool

	// RankP is the p-value of a Mann-Whitney U-test on the two
	// samples, a distribution-free cross-check of the Welch call.
	// RankPOK reports whether the U-test was computable.
	RankP   float64
	RankPOK bool

	// Warnings lists the derived quantities that could not be
	// computed and why.
	Warnings []error
}

// Significant reports whether the Welch test found a significant
// difference. It is false when the test itself is undefined.
func (c *Comparison) Significant() bool {
	return c.TTest != nil && c.TTest.Significant
}

// Compare compares the experiment sample against the baseline sample.
// The two samples must be independent; nothing about the comparison
// assumes matched ordering between them. It returns ErrSampleSize,
// and no Comparison, if either sample has fewer than two
// measurements. For larger samples a Comparison is always returned;
// quantities that are undefined on the given data (zero standard
// error, zero baseline spread, tied ranks) are left absent with a
// warning, and the remaining quantities still compute.
func Compare(base, exp *Sample) (*Comparison, error) {
	if base.N() < 2 || exp.N() < 2 {
		return nil, ErrSampleSize
	}

	m1, _ := Mean(base.Values)
	m2, _ := Mean(exp.Values)
	c := &Comparison{
		Metric:    base.Metric,
		N1:        base.N(),
		N2:        exp.N(),
		BaseMean:  m1,
		ExpMean:   m2,
		PctChange: PctChange(m1, m2),
	}

	tt, err := WelchTTest(base.Values, exp.Values)
	if err != nil {
		c.Warnings = append(c.Warnings, fmt.Errorf("t-test unavailable: %w", err))
	} else {
		c.TTest = tt
	}

	boot, err := BootstrapPctChange(base.Values, exp.Values, DefaultResamples, 0.05)
	if err != nil {
		c.Warnings = append(c.Warnings, fmt.Errorf("bootstrap unavailable: %w", err))
	} else {
		c.Bootstrap = boot
	}

	d, err := GlassDelta(base.Values, exp.Values)
	if err != nil {
		c.Warnings = append(c.Warnings, fmt.Errorf("effect size unavailable: %w", err))
	} else {
		c.Effect = d
		c.EffectClass = ClassifyEffect(d)
		c.EffectOK = true
	}

	u, err := stats.MannWhitneyUTest(base.Values, exp.Values, stats.LocationDiffers)
	if err != nil {
		c.Warnings = append(c.Warnings, fmt.Errorf("rank test unavailable: %w", err))
	} else {
		c.RankP = u.P
		c.RankPOK = true
	}

	return c, nil
}
