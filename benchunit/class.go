// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchunit formats metric values for display, scaling them
// with SI or IEC prefixes.
package benchunit

import (
	"fmt"
	"strings"
)

// A Class specifies what class of unit prefixes are in use.
type Class int

const (
	// Decimal indicates values of a given metric should be scaled
	// by powers of 1000, using SI prefixes such as "k" and "M".
	Decimal Class = iota
	// Binary indicates values of a given metric should be scaled
	// by powers of 1024, using IEC prefixes such as "Ki" and "Mi".
	Binary
)

func (c Class) String() string {
	switch c {
	case Decimal:
		return "Decimal"
	case Binary:
		return "Binary"
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// ClassOf returns the Class for a metric name. Metrics that measure
// bytes ("heap_bytes", "rss_b") are Binary; everything else is
// Decimal.
func ClassOf(metric string) Class {
	for _, tok := range strings.FieldsFunc(metric, isSep) {
		if tok == "b" || tok == "bytes" {
			return Binary
		}
	}
	return Decimal
}

func isSep(r rune) bool {
	return r == '_' || r == '-' || r == '.' || r == '/'
}
