// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchmath

import (
	"errors"
	"math"
)

var (
	// ErrSampleSize indicates a sample has too few measurements
	// for the requested statistic.
	ErrSampleSize = errors.New("sample is too small")

	// ErrZeroVariance indicates a statistic is undefined because
	// the samples have no usable variance.
	ErrZeroVariance = errors.New("sample has zero variance")
)

// A TTestResult is the result of Welch's t-test on two independent
// samples.
type TTestResult struct {
	// N1 and N2 are the sizes of the baseline and experiment
	// samples.
	N1, N2 int

	// T is the Welch t-statistic for the difference of means.
	T float64

	// DoF is the Welch–Satterthwaite degrees of freedom,
	// truncated toward zero and clamped to at least 1.
	DoF int

	// Critical is the two-tailed critical value at 95% confidence
	// for DoF, from the fixed anchor table.
	Critical float64

	// MeanDiff is the baseline mean minus the experiment mean.
	MeanDiff float64

	// Lo and Hi bound the 95% confidence interval
	// MeanDiff ± Critical*SE.
	Lo, Hi float64

	// Significant reports whether |T| exceeds Critical.
	Significant bool
}

// tCritical95 is the fixed table of two-tailed 5%-level critical
// values of the t-distribution at the anchor degrees of freedom.
// Values between anchors are linearly interpolated; values outside
// the table are clamped to its extremes. The anchors must not change:
// significance calls are only comparable across implementations that
// share this table.
var tCritical95 = []struct {
	df int
	t  float64
}{
	{1, 12.706},
	{2, 4.303},
	{3, 3.182},
	{4, 2.776},
	{5, 2.571},
	{6, 2.447},
	{7, 2.365},
	{8, 2.306},
	{9, 2.262},
	{10, 2.228},
	{15, 2.131},
	{20, 2.086},
	{30, 2.042},
	{60, 2.000},
	{120, 1.980},
}

// critical95 returns the two-tailed 95% critical value for df by
// table lookup with linear interpolation between bracketing anchors.
func critical95(df int) float64 {
	tab := tCritical95
	if df <= tab[0].df {
		return tab[0].t
	}
	if df >= tab[len(tab)-1].df {
		return tab[len(tab)-1].t
	}
	for i := 1; i < len(tab); i++ {
		if df <= tab[i].df {
			lo, hi := tab[i-1], tab[i]
			frac := float64(df-lo.df) / float64(hi.df-lo.df)
			return lo.t + frac*(hi.t-lo.t)
		}
	}
	return tab[len(tab)-1].t
}

// WelchTTest performs Welch's two-sample t-test for a difference in
// means between the baseline and experiment samples, which may have
// unequal variances. It returns ErrSampleSize if either sample has
// fewer than two measurements and ErrZeroVariance if the standard
// error of the difference is zero (e.g. both samples are constant),
// in which cases no result is produced.
func WelchTTest(base, exp []float64) (*TTestResult, error) {
	n1, n2 := len(base), len(exp)
	if n1 < 2 || n2 < 2 {
		return nil, ErrSampleSize
	}

	m1, _ := Mean(base)
	m2, _ := Mean(exp)
	s1, _ := StdDev(base)
	s2, _ := StdDev(exp)
	v1, v2 := s1*s1, s2*s2

	f1 := v1 / float64(n1)
	f2 := v2 / float64(n2)
	se := math.Sqrt(f1 + f2)
	if se == 0 {
		return nil, ErrZeroVariance
	}

	t := (m1 - m2) / se

	// Welch–Satterthwaite approximation, truncated rather than
	// rounded. Downstream significance calls depend on the
	// truncation, so it must be preserved as-is.
	dfDenom := f1*f1/float64(n1-1) + f2*f2/float64(n2-1)
	df := int(math.Floor(math.Max(1, (f1+f2)*(f1+f2)/dfDenom)))

	crit := critical95(df)
	diff := m1 - m2
	return &TTestResult{
		N1:          n1,
		N2:          n2,
		T:           t,
		DoF:         df,
		Critical:    crit,
		MeanDiff:    diff,
		Lo:          diff - crit*se,
		Hi:          diff + crit*se,
		Significant: math.Abs(t) > crit,
	}, nil
}
