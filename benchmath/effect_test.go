// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchmath

import (
	"errors"
	"testing"
)

func TestGlassDelta(t *testing.T) {
	if _, err := GlassDelta([]float64{1}, []float64{1, 2}); !errors.Is(err, ErrSampleSize) {
		t.Errorf("got %v, want ErrSampleSize", err)
	}
	// Undefined when the baseline spread is zero, even though the
	// experiment varies.
	if _, err := GlassDelta([]float64{5, 5, 5}, []float64{1, 2, 3}); !errors.Is(err, ErrZeroVariance) {
		t.Errorf("got %v, want ErrZeroVariance", err)
	}

	// base mean 10.4, stddev sqrt(1.3); exp mean 7.4.
	d, err := GlassDelta([]float64{10, 11, 9, 10, 12}, []float64{7, 8, 6, 7, 9})
	if err != nil {
		t.Fatal(err)
	}
	if !aeq(d, 2.6311740579) {
		t.Errorf("got delta %v, want ≈2.631", d)
	}
}

func TestClassifyEffect(t *testing.T) {
	checks := []struct {
		d    float64
		want EffectClass
	}{
		{0, EffectNegligible},
		{0.19, EffectNegligible},
		{-0.19, EffectNegligible},
		{0.2, EffectSmall},
		{-0.3, EffectSmall},
		{0.5, EffectMedium},
		{0.79, EffectMedium},
		{0.8, EffectLarge},
		{-4, EffectLarge},
	}
	for _, c := range checks {
		if got := ClassifyEffect(c.d); got != c.want {
			t.Errorf("ClassifyEffect(%v) = %v, want %v", c.d, got, c.want)
		}
	}
	if EffectLarge.String() != "large" {
		t.Errorf("bad label %q", EffectLarge.String())
	}
}
