// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchrun

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benchlab/abbench/benchfmt"
)

var testScenario = Scenario{
	Name:          "sweep",
	Description:   "sweep a synthetic heap",
	Payload:       "sweep.payload",
	PrimaryMetric: "sweep_ms",
	Rules:         benchfmt.RuleSet{"sweep_ms": benchfmt.PrefixRule("sweep_ms")},
}

func newTestRunner(t *testing.T, runs, warmups int, invoke invokeFunc) *Runner {
	t.Helper()
	r, err := New(
		Variant{Name: "baseline", Path: "/bin/base"},
		Variant{Name: "experiment", Path: "/bin/exp"},
		runs, warmups,
		log.New(io.Discard, "", 0),
	)
	require.NoError(t, err)
	r.invoke = invoke
	return r
}

func TestNewValidation(t *testing.T) {
	logger := log.New(io.Discard, "", 0)
	_, err := New(Variant{}, Variant{}, 0, 0, logger)
	assert.Error(t, err)
	_, err = New(Variant{}, Variant{}, 3, -1, logger)
	assert.Error(t, err)
}

func TestRunInterleaving(t *testing.T) {
	var order []string
	value := 10.0
	invoke := func(ctx context.Context, v Variant, sc Scenario) (string, time.Duration, error) {
		order = append(order, v.Name)
		value++
		return fmt.Sprintf("sweep_ms=%v\n", value), time.Millisecond, nil
	}

	r := newTestRunner(t, 3, 1, invoke)
	res, err := r.Run(context.Background(), testScenario)
	require.NoError(t, err)

	// Strict B,E alternation: one warmup pair then three measured
	// pairs.
	want := []string{
		"baseline", "experiment",
		"baseline", "experiment",
		"baseline", "experiment",
		"baseline", "experiment",
	}
	assert.Equal(t, want, order)

	// Only the post-warmup pairs are retained.
	base := res.BaselineSample()
	exp := res.ExperimentSample()
	assert.Equal(t, 3, base.N())
	assert.Equal(t, 3, exp.N())
	assert.False(t, res.WallClockFallback)
	assert.Equal(t, "sweep_ms", res.Metric)

	// Execution order is retained in the samples: the warmup pair
	// consumed values 11 and 12.
	assert.Equal(t, []float64{13, 15, 17}, base.Values)
	assert.Equal(t, []float64{14, 16, 18}, exp.Values)
}

func TestRunFailureExcluded(t *testing.T) {
	calls := 0
	invoke := func(ctx context.Context, v Variant, sc Scenario) (string, time.Duration, error) {
		calls++
		if calls == 3 {
			// Second baseline invocation fails.
			return "", 0, errors.New("signal: killed")
		}
		return "sweep_ms=5\n", time.Millisecond, nil
	}

	r := newTestRunner(t, 3, 0, invoke)
	res, err := r.Run(context.Background(), testScenario)
	require.NoError(t, err)

	// The failed run is excluded, not retried; the harness
	// proceeds.
	assert.Equal(t, 6, calls)
	assert.Equal(t, 2, res.BaselineSample().N())
	assert.Equal(t, 3, res.ExperimentSample().N())
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0].Error(), "baseline run 2")
}

func TestRunWallClockFallback(t *testing.T) {
	invoke := func(ctx context.Context, v Variant, sc Scenario) (string, time.Duration, error) {
		return "no metrics here\n", 25 * time.Millisecond, nil
	}

	r := newTestRunner(t, 2, 0, invoke)
	res, err := r.Run(context.Background(), testScenario)
	require.NoError(t, err)

	assert.True(t, res.WallClockFallback)
	assert.Equal(t, WallClockMetric, res.Metric)
	require.Len(t, res.Warnings, 1)

	base := res.BaselineSample()
	require.Equal(t, 2, base.N())
	assert.InDelta(t, 25, base.Values[0], 0.001)
}

func TestRunSecondaryMetrics(t *testing.T) {
	sc := testScenario
	sc.Rules = benchfmt.RuleSet{
		"sweep_ms": benchfmt.PrefixRule("sweep_ms"),
		"objects":  benchfmt.PrefixRule("objects"),
	}
	invoke := func(ctx context.Context, v Variant, sc Scenario) (string, time.Duration, error) {
		return "sweep_ms=4\nobjects=100\n", time.Millisecond, nil
	}

	r := newTestRunner(t, 2, 0, invoke)
	res, err := r.Run(context.Background(), sc)
	require.NoError(t, err)

	require.Contains(t, res.Baseline, "objects")
	assert.Equal(t, []float64{100, 100}, res.Baseline["objects"].Values)
	require.Contains(t, res.Baseline, WallClockMetric)
}

func TestRunContextCanceled(t *testing.T) {
	invoke := func(ctx context.Context, v Variant, sc Scenario) (string, time.Duration, error) {
		return "sweep_ms=1\n", time.Millisecond, nil
	}
	r := newTestRunner(t, 2, 0, invoke)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Run(ctx, testScenario)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCatalogLookup(t *testing.T) {
	cat := Catalog{testScenario}
	sc, ok := cat.Lookup("sweep")
	require.True(t, ok)
	assert.Equal(t, "sweep_ms", sc.PrimaryMetric)
	_, ok = cat.Lookup("missing")
	assert.False(t, ok)
	assert.Equal(t, []string{"sweep"}, cat.Names())
}
