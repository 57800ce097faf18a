// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Abbench compares the performance of two builds of the same program.
//
// Usage:
//
//	abbench [options] -baseline oldBin -experiment newBin
//
// Abbench runs each scenario's workload under both executables in
// strict alternation (baseline, experiment, baseline, experiment, ...)
// so that drift in the machine's performance over the measurement
// window is shared evenly by both variants. Each variant is invoked
// with the scenario payload as its final argument; metric observations
// are recognized in the combined stdout and stderr of each run. Runs
// that exit non-zero are reported and excluded, not retried.
//
// After the configured number of warmup runs (discarded) and measured
// runs, abbench compares the two samples of each scenario's primary
// metric: a Welch two-sample t-test decides significance at the 95%
// level, a percentile bootstrap brackets the percent change, and
// Glass's delta classifies the effect size. A positive delta means the
// experiment improved on the baseline.
//
// By default the comparison is printed as a fixed-width text table.
// The -csv and -html flags select machine-readable and HTML reports,
// and -chart writes per-scenario box plots as PNG files.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/benchlab/abbench/benchrun"
	"github.com/benchlab/abbench/benchtab"
)

func main() {
	log.SetPrefix("abbench: ")
	log.SetFlags(0)
	if err := abbench(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

// scenarioFlags collects repeated -scenario flags.
type scenarioFlags []string

func (s *scenarioFlags) String() string     { return strings.Join(*s, ",") }
func (s *scenarioFlags) Set(v string) error { *s = append(*s, v); return nil }

// abbench runs the whole comparison with the given command-line
// arguments, writing reports to stdout and warnings to stderr.
func abbench(stdout, stderr io.Writer, args []string) error {
	fs := flag.NewFlagSet("abbench", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: abbench [options] -baseline oldBin -experiment newBin\n")
		fmt.Fprintf(stderr, "options:\n")
		fs.PrintDefaults()
	}
	var (
		flagBaseline   = fs.String("baseline", "", "baseline executable `path` (required)")
		flagExperiment = fs.String("experiment", "", "experiment executable `path` (required)")
		flagRuns       = fs.Int("runs", 10, "measured runs `N` per variant per scenario")
		flagWarmup     = fs.Int("warmup", 1, "discarded warmup runs `N` per variant per scenario")
		flagVerbose    = fs.Bool("v", false, "also print raw observations, with outliers marked")
		flagCSV        = fs.Bool("csv", false, "print results in CSV form")
		flagHTML       = fs.Bool("html", false, "print results as an HTML page")
		flagChart      = fs.String("chart", "", "write per-scenario box plots as PNGs into `dir`")
		flagColor      = fs.Bool("color", false, "color deltas even when stdout is not a terminal")
		scenarioNames  scenarioFlags
	)
	fs.Var(&scenarioNames, "scenario", "run only the named scenario (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *flagBaseline == "" || *flagExperiment == "" || fs.NArg() > 0 {
		fs.Usage()
		return flag.ErrHelp
	}
	if err := checkExecutable(*flagBaseline); err != nil {
		return err
	}
	if err := checkExecutable(*flagExperiment); err != nil {
		return err
	}

	scenarios := []benchrun.Scenario(defaultCatalog)
	if len(scenarioNames) > 0 {
		scenarios = nil
		for _, name := range scenarioNames {
			sc, ok := defaultCatalog.Lookup(name)
			if !ok {
				return fmt.Errorf("unknown scenario %q; available: %s", name, strings.Join(defaultCatalog.Names(), ", "))
			}
			scenarios = append(scenarios, sc)
		}
	}

	runner, err := benchrun.New(
		benchrun.Variant{Name: "baseline", Path: *flagBaseline},
		benchrun.Variant{Name: "experiment", Path: *flagExperiment},
		*flagRuns, *flagWarmup, log.New(stderr, "abbench: ", 0))
	if err != nil {
		return err
	}

	results, err := runner.RunAll(context.Background(), scenarios)
	if err != nil {
		return err
	}
	rep := benchtab.Build(results)

	switch {
	case *flagCSV:
		if err := rep.ToCSV(csv.NewWriter(stdout), stderr); err != nil {
			return err
		}
	case *flagHTML:
		if err := rep.ToHTML(stdout); err != nil {
			return err
		}
	default:
		if *flagColor {
			color.NoColor = false
		}
		if err := rep.ToText(stdout, !color.NoColor); err != nil {
			return err
		}
		if *flagVerbose {
			fmt.Fprintln(stdout)
			if err := rep.ToRawText(stdout); err != nil {
				return err
			}
		}
	}

	if *flagChart != "" {
		if err := rep.Charts(*flagChart); err != nil {
			return err
		}
	}
	return nil
}

// checkExecutable rejects the configuration before any measurement
// starts if path does not name a runnable binary.
func checkExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() || info.Mode()&0111 == 0 {
		return fmt.Errorf("%s is not an executable", path)
	}
	return nil
}
