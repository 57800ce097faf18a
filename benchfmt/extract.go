// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchfmt extracts named numeric metrics from the captured
// output of a benchmark process.
//
// A variant executable reports metrics as KEY=VALUE lines (or any
// line matchable by a regular expression with one capturing group)
// on its output streams. Extraction is a pure parse: malformed or
// missing lines simply leave a metric absent, and the caller decides
// the fallback policy.
package benchfmt

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"
)

// A Rule recognizes one metric in raw process output. Exactly one of
// Prefix and Pattern should be set.
type Rule struct {
	// Prefix matches lines of the form "<Prefix><number>", e.g.
	// a prefix "sweep_ms=" matches the line "sweep_ms=12.5".
	Prefix string

	// Pattern matches lines against a regular expression whose
	// first capturing group is the number.
	Pattern *regexp.Regexp
}

// PrefixRule returns the Rule for the conventional "key=value" line
// format.
func PrefixRule(key string) Rule {
	return Rule{Prefix: key + "="}
}

// A RuleSet maps logical metric names to their recognition rules.
type RuleSet map[string]Rule

// A Value is a single extracted metric value. Integral reports
// whether the captured text was an integer, in which case Int holds
// the exact value; Float is always populated.
type Value struct {
	Float    float64
	Int      int64
	Integral bool
}

// parseNumber parses s as a Value, preferring an exact integer.
func parseNumber(s string) (Value, bool) {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Value{Float: float64(i), Int: i, Integral: true}, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Value{Float: f}, true
	}
	return Value{}, false
}

// match applies the rule to a single line and reports the captured
// number, if any.
func (r Rule) match(line string) (Value, bool) {
	if r.Prefix != "" {
		rest, found := strings.CutPrefix(line, r.Prefix)
		if !found {
			return Value{}, false
		}
		return parseNumber(rest)
	}
	if r.Pattern != nil {
		m := r.Pattern.FindStringSubmatch(line)
		if len(m) < 2 {
			return Value{}, false
		}
		return parseNumber(m[1])
	}
	return Value{}, false
}

// Extract parses the captured output of one process run and returns
// the metrics recognized by rules. A metric that matches several
// lines takes the value of the last match, so a workload that
// reports progressively leaves its final figure. Metrics with no
// well-formed match are absent from the result, never an error.
func Extract(text string, rules RuleSet) map[string]Value {
	found := make(map[string]Value)
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		for name, rule := range rules {
			if v, ok := rule.match(line); ok {
				found[name] = v
			}
		}
	}
	return found
}
