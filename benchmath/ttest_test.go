// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchmath

import (
	"errors"
	"math"
	"testing"
)

func TestCritical95(t *testing.T) {
	check := func(df int, want float64) {
		t.Helper()
		if got := critical95(df); !aeq(got, want) {
			t.Errorf("critical95(%d) = %v, want %v", df, got, want)
		}
	}
	// Anchors are returned exactly.
	check(1, 12.706)
	check(8, 2.306)
	check(30, 2.042)
	check(120, 1.980)
	// Interpolation between anchors.
	check(12, 2.228+2.0/5.0*(2.131-2.228))
	check(45, 2.042+15.0/30.0*(2.000-2.042))
	// Clamped outside the table.
	check(0, 12.706)
	check(1000, 1.980)
}

func TestWelchTTestSmallSamples(t *testing.T) {
	if _, err := WelchTTest([]float64{1}, []float64{1, 2}); !errors.Is(err, ErrSampleSize) {
		t.Errorf("got %v, want ErrSampleSize", err)
	}
	if _, err := WelchTTest([]float64{1, 2}, nil); !errors.Is(err, ErrSampleSize) {
		t.Errorf("got %v, want ErrSampleSize", err)
	}
}

func TestWelchTTestIdentical(t *testing.T) {
	// Same values in different orders: identical means and
	// variances, so t ≈ 0 and no significance.
	res, err := WelchTTest([]float64{1, 2, 3, 4, 5}, []float64{5, 4, 3, 2, 1})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(res.T) > 1e-12 {
		t.Errorf("t = %v, want ≈0", res.T)
	}
	if res.Significant {
		t.Error("identical samples reported significant")
	}
}

func TestWelchTTestZeroVariance(t *testing.T) {
	// Both samples constant: the standard error is exactly zero
	// and the test is undefined, not a division crash.
	base := make([]float64, 10)
	exp := make([]float64, 10)
	for i := range base {
		base[i], exp[i] = 100, 80
	}
	res, err := WelchTTest(base, exp)
	if !errors.Is(err, ErrZeroVariance) {
		t.Errorf("got (%v, %v), want ErrZeroVariance", res, err)
	}
}

func TestWelchTTestSeparated(t *testing.T) {
	base := []float64{10, 11, 9, 10, 12}
	exp := []float64{7, 8, 6, 7, 9}
	res, err := WelchTTest(base, exp)
	if err != nil {
		t.Fatal(err)
	}
	if !aeq(res.MeanDiff, 3) {
		t.Errorf("mean diff = %v, want 3", res.MeanDiff)
	}
	// v1 = v2 = 1.3, se = sqrt(0.52), t = 3/se.
	if want := 3 / math.Sqrt(0.52); !aeq(res.T, want) {
		t.Errorf("t = %v, want %v", res.T, want)
	}
	if res.DoF != 8 {
		t.Errorf("df = %v, want 8", res.DoF)
	}
	if !aeq(res.Critical, 2.306) {
		t.Errorf("critical = %v, want 2.306", res.Critical)
	}
	if !res.Significant {
		t.Error("clearly separated samples not significant")
	}
	if res.Lo >= res.Hi || res.Lo > res.MeanDiff || res.Hi < res.MeanDiff {
		t.Errorf("bad interval [%v, %v] around %v", res.Lo, res.Hi, res.MeanDiff)
	}
}
