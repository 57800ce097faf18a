// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchmath

import "math"

// An EffectClass labels the magnitude of a standardized effect size
// using Cohen's conventions on its absolute value.
type EffectClass int

const (
	// EffectNegligible indicates |d| < 0.2.
	EffectNegligible EffectClass = iota
	// EffectSmall indicates 0.2 <= |d| < 0.5.
	EffectSmall
	// EffectMedium indicates 0.5 <= |d| < 0.8.
	EffectMedium
	// EffectLarge indicates |d| >= 0.8.
	EffectLarge
)

// String returns the display label for the effect class.
func (c EffectClass) String() string {
	switch c {
	case EffectNegligible:
		return "negligible"
	case EffectSmall:
		return "small"
	case EffectMedium:
		return "medium"
	case EffectLarge:
		return "large"
	}
	return "unknown"
}

// ClassifyEffect returns the EffectClass for effect size d.
func ClassifyEffect(d float64) EffectClass {
	switch abs := math.Abs(d); {
	case abs < 0.2:
		return EffectNegligible
	case abs < 0.5:
		return EffectSmall
	case abs < 0.8:
		return EffectMedium
	}
	return EffectLarge
}

// GlassDelta returns Glass's delta effect size,
// (mean(base) - mean(exp)) / stddev(base). The baseline spread is
// used as the scale reference because the two samples may have
// unequal variance, consistent with using Welch's rather than
// Student's t-test. It returns ErrSampleSize if either sample has
// fewer than two measurements and ErrZeroVariance if the baseline
// standard deviation is zero, even if the experiment's is not.
func GlassDelta(base, exp []float64) (float64, error) {
	if len(base) < 2 || len(exp) < 2 {
		return 0, ErrSampleSize
	}
	sd, _ := StdDev(base)
	if sd == 0 {
		return 0, ErrZeroVariance
	}
	m1, _ := Mean(base)
	m2, _ := Mean(exp)
	return (m1 - m2) / sd, nil
}
