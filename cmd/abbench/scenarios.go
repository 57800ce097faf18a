// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/benchlab/abbench/benchfmt"
	"github.com/benchlab/abbench/benchrun"
)

// defaultCatalog is the built-in scenario set. Each variant executable
// receives the scenario payload as its final argument and reports
// metrics on stdout or stderr in "key=value" or "key: value" form;
// runs that report nothing are still compared by wall-clock time.
var defaultCatalog = benchrun.Catalog{
	{
		Name:          "startup",
		Description:   "cold start and immediate exit",
		Payload:       "--exit-after-init",
		PrimaryMetric: benchrun.WallClockMetric,
	},
	{
		Name:          "throughput",
		Description:   "sustained operation throughput",
		Payload:       "--bench=throughput",
		PrimaryMetric: "ops_per_sec",
		Rules: benchfmt.RuleSet{
			"ops_per_sec": benchfmt.PrefixRule("ops_per_sec"),
			"bytes_total": benchfmt.PrefixRule("bytes_total"),
		},
	},
	{
		Name:          "latency",
		Description:   "request latency distribution",
		Payload:       "--bench=latency",
		PrimaryMetric: "p99_us",
		Rules: benchfmt.RuleSet{
			"p50_us": benchrun.MetricPattern("p50_us"),
			"p99_us": benchrun.MetricPattern("p99_us"),
		},
	},
	{
		Name:          "alloc-sweep",
		Description:   "allocation-heavy workload with GC sweep timing",
		Payload:       "--bench=alloc-sweep",
		PrimaryMetric: "sweep_ms",
		Rules: benchfmt.RuleSet{
			"sweep_ms": benchfmt.PrefixRule("sweep_ms"),
			"pause_us": benchfmt.PrefixRule("pause_us"),
		},
	},
}
