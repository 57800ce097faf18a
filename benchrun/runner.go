// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchrun

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os/exec"
	"time"

	"github.com/benchlab/abbench/benchfmt"
	"github.com/benchlab/abbench/benchmath"
)

// WallClockMetric is the reserved metric name under which the runner
// records each successful run's wall-clock elapsed time, in
// milliseconds. It is the fallback primary metric when a scenario's
// own primary metric is never reported.
const WallClockMetric = "wall_ms"

// A RunResult is the full set of observations extracted from one
// process invocation. It is immutable once constructed and owned by
// the runner that produced it.
type RunResult struct {
	// Variant names the variant that ran.
	Variant string

	// Metrics are the observations extracted from the run's
	// combined output.
	Metrics map[string]benchfmt.Value

	// Elapsed is the wall-clock duration of the invocation.
	Elapsed time.Duration
}

// A ScenarioResult accumulates the two variants' sample sets for one
// scenario.
type ScenarioResult struct {
	// Scenario is the workload that produced these samples.
	Scenario Scenario

	// Metric is the primary metric actually used: the scenario's
	// own, or WallClockMetric after a fallback.
	Metric string

	// WallClockFallback reports whether the primary metric fell
	// back to wall-clock time.
	WallClockFallback bool

	// Baseline and Experiment map each observed metric name to
	// that variant's sample, in execution order.
	Baseline, Experiment map[string]*benchmath.Sample

	// Warnings lists recovered problems: failed runs and the
	// wall-clock fallback.
	Warnings []error
}

// BaselineSample and ExperimentSample return the primary-metric
// samples, which may be empty but are never nil.
func (r *ScenarioResult) BaselineSample() *benchmath.Sample   { return r.sample(r.Baseline) }
func (r *ScenarioResult) ExperimentSample() *benchmath.Sample { return r.sample(r.Experiment) }

func (r *ScenarioResult) sample(m map[string]*benchmath.Sample) *benchmath.Sample {
	if s, ok := m[r.Metric]; ok {
		return s
	}
	return benchmath.NewSample(r.Metric, nil)
}

// An invokeFunc launches one variant run and returns its combined
// output and wall-clock duration. A non-nil error indicates a
// non-zero or abnormal exit.
type invokeFunc func(ctx context.Context, v Variant, sc Scenario) (output string, elapsed time.Duration, err error)

// A Runner orchestrates repeated invocations of the two variants in
// strict alternation. It is single-threaded: each invocation blocks
// until the child process exits and its output is captured, and the
// accumulating samples are appended only by the calling goroutine.
type Runner struct {
	baseline, experiment Variant
	runs, warmups        int
	log                  *log.Logger
	invoke               invokeFunc
}

// New returns a Runner that performs warmups discarded iterations
// followed by runs measured iterations per scenario. It returns an
// error for a non-positive run count or a negative warmup count.
func New(baseline, experiment Variant, runs, warmups int, logger *log.Logger) (*Runner, error) {
	if runs < 1 {
		return nil, fmt.Errorf("run count must be at least 1, got %d", runs)
	}
	if warmups < 0 {
		return nil, fmt.Errorf("warmup count must not be negative, got %d", warmups)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		baseline:   baseline,
		experiment: experiment,
		runs:       runs,
		warmups:    warmups,
		log:        logger,
		invoke:     execInvoke,
	}, nil
}

// execInvoke launches the variant executable with its fixed flags
// and the scenario payload, capturing stdout and stderr together.
// There is no timeout: a hung workload hangs the harness.
func execInvoke(ctx context.Context, v Variant, sc Scenario) (string, time.Duration, error) {
	args := append(append([]string(nil), v.Args...), sc.Payload)
	cmd := exec.CommandContext(ctx, v.Path, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	start := time.Now()
	err := cmd.Run()
	return out.String(), time.Since(start), err
}

// Run executes the scenario: warmups discarded iterations then runs
// measured iterations, each iteration baseline-then-experiment. A
// run that exits non-zero is logged as a warning and contributes no
// observations; it is not retried. If the primary metric is absent
// from every retained run of either variant, the result falls back
// to wall-clock time with a warning, keeping the comparison
// producible at reduced fidelity.
func (r *Runner) Run(ctx context.Context, sc Scenario) (*ScenarioResult, error) {
	res := &ScenarioResult{
		Scenario:   sc,
		Metric:     sc.PrimaryMetric,
		Baseline:   make(map[string]*benchmath.Sample),
		Experiment: make(map[string]*benchmath.Sample),
	}

	variants := [2]Variant{r.baseline, r.experiment}
	dsts := [2]map[string]*benchmath.Sample{res.Baseline, res.Experiment}

	total := r.warmups + r.runs
	for i := 0; i < total; i++ {
		warmup := i < r.warmups
		for vi, v := range variants {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			rr, err := r.runOnce(ctx, v, sc)
			if err != nil {
				warn := fmt.Errorf("%s run %d of %s failed: %w", v.Name, i+1, sc.Name, err)
				r.log.Printf("warning: %v", warn)
				res.Warnings = append(res.Warnings, warn)
				continue
			}
			if warmup {
				continue
			}
			accumulate(dsts[vi], rr)
		}
	}

	if res.sample(res.Baseline).N() == 0 || res.sample(res.Experiment).N() == 0 {
		warn := fmt.Errorf("metric %q missing from %s runs; falling back to wall-clock time", sc.PrimaryMetric, sc.Name)
		r.log.Printf("warning: %v", warn)
		res.Warnings = append(res.Warnings, warn)
		res.Metric = WallClockMetric
		res.WallClockFallback = true
	}
	return res, nil
}

// runOnce performs a single invocation and extracts its observations.
func (r *Runner) runOnce(ctx context.Context, v Variant, sc Scenario) (*RunResult, error) {
	out, elapsed, err := r.invoke(ctx, v, sc)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("exit status %d", exitErr.ExitCode())
		}
		return nil, err
	}
	return &RunResult{
		Variant: v.Name,
		Metrics: benchfmt.Extract(out, sc.Rules),
		Elapsed: elapsed,
	}, nil
}

// accumulate appends one run's observations, plus its wall-clock
// time, to the variant's samples.
func accumulate(dst map[string]*benchmath.Sample, rr *RunResult) {
	for name, val := range rr.Metrics {
		s, ok := dst[name]
		if !ok {
			s = benchmath.NewSample(name, nil)
			dst[name] = s
		}
		s.Values = append(s.Values, val.Float)
	}
	wall, ok := dst[WallClockMetric]
	if !ok {
		wall = benchmath.NewSample(WallClockMetric, nil)
		dst[WallClockMetric] = wall
	}
	wall.Values = append(wall.Values, float64(rr.Elapsed)/float64(time.Millisecond))
}

// RunAll runs every scenario in order.
func (r *Runner) RunAll(ctx context.Context, scs []Scenario) ([]*ScenarioResult, error) {
	results := make([]*ScenarioResult, 0, len(scs))
	for _, sc := range scs {
		res, err := r.Run(ctx, sc)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}
