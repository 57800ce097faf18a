// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// writeScript creates an executable shell script reporting a fixed
// sweep_ms value.
func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAbbenchEndToEnd(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	dir := t.TempDir()
	base := writeScript(t, dir, "base", "echo sweep_ms=12")
	exp := writeScript(t, dir, "exp", "echo sweep_ms=9")

	var stdout, stderr bytes.Buffer
	err := abbench(&stdout, &stderr, []string{
		"-baseline", base,
		"-experiment", exp,
		"-runs", "3",
		"-warmup", "0",
		"-scenario", "alloc-sweep",
	})
	if err != nil {
		t.Fatalf("abbench failed: %v\nstderr:\n%s", err, stderr.String())
	}

	out := stdout.String()
	if !strings.Contains(out, "alloc-sweep") {
		t.Errorf("output missing scenario row:\n%s", out)
	}
	if !strings.Contains(out, "sweep_ms") {
		t.Errorf("output missing primary metric:\n%s", out)
	}
}

func TestAbbenchUnknownScenario(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	dir := t.TempDir()
	base := writeScript(t, dir, "base", "echo sweep_ms=12")
	exp := writeScript(t, dir, "exp", "echo sweep_ms=9")

	var stdout, stderr bytes.Buffer
	err := abbench(&stdout, &stderr, []string{
		"-baseline", base,
		"-experiment", exp,
		"-scenario", "no-such-thing",
	})
	if err == nil || !strings.Contains(err.Error(), "unknown scenario") {
		t.Fatalf("want unknown scenario error, got %v", err)
	}
}

func TestAbbenchMissingBinary(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := abbench(&stdout, &stderr, []string{
		"-baseline", "/does/not/exist",
		"-experiment", "/does/not/exist",
	})
	if err == nil {
		t.Fatal("want error for missing binary")
	}
}
