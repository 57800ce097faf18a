// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchrun executes a fixed workload under two executable
// variants and collects the per-run metric samples the statistics
// pipeline consumes.
//
// Runs of the two variants are strictly interleaved (baseline,
// experiment, baseline, experiment, ...) so that time-varying system
// drift such as thermal throttling or background load is spread
// evenly across both variants instead of concentrating on one.
package benchrun

import (
	"regexp"

	"github.com/benchlab/abbench/benchfmt"
)

// A Variant is one of the two executables being compared.
type Variant struct {
	// Name labels the variant in logs and reports, e.g.
	// "baseline".
	Name string

	// Path is the executable to invoke.
	Path string

	// Args are fixed flags passed before the scenario payload.
	Args []string
}

// A Scenario is one benchmark workload: an opaque payload handed to
// the variant executables plus the rules for recognizing the metrics
// its runs report.
type Scenario struct {
	// Name identifies the scenario on the command line and in
	// reports.
	Name string

	// Description is a one-line human description.
	Description string

	// Payload is the workload handed to the variant executable as
	// its final argument: script text or a file path, depending
	// on what the variants accept.
	Payload string

	// PrimaryMetric is the metric reports compare first. If no
	// retained run of a variant reports it, the runner falls back
	// to wall-clock time for this scenario.
	PrimaryMetric string

	// Rules recognizes the scenario's metrics in run output.
	Rules benchfmt.RuleSet
}

// A Catalog is an immutable set of scenarios, fixed at construction.
type Catalog []Scenario

// Lookup returns the named scenario.
func (c Catalog) Lookup(name string) (Scenario, bool) {
	for _, sc := range c {
		if sc.Name == name {
			return sc, true
		}
	}
	return Scenario{}, false
}

// Names returns the scenario names in catalogue order.
func (c Catalog) Names() []string {
	names := make([]string, len(c))
	for i, sc := range c {
		names[i] = sc.Name
	}
	return names
}

// numberPattern is the numeric part of a metric line.
var numberPattern = regexp.MustCompile(`-?[0-9]+(?:\.[0-9]+)?`)

// MetricPattern returns a recognition rule matching "<name>: <n>" or
// "<name>=<n>" style lines for metrics whose reporting format is not
// under the harness's control.
func MetricPattern(name string) benchfmt.Rule {
	return benchfmt.Rule{
		Pattern: regexp.MustCompile(`^` + regexp.QuoteMeta(name) + `[:=]\s*(` + numberPattern.String() + `)`),
	}
}
