// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtab

import (
	"fmt"
	"io"

	"github.com/google/safehtml/template"
)

var htmlTemplate = template.Must(template.New("report").ParseFromTrustedTemplate(template.MakeTrustedTemplate(`
<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>A/B benchmark report</title>
<style>
.benchtab { border-collapse: collapse; }
.benchtab th, .benchtab td { padding: 0.2em 0.8em; text-align: right; }
.benchtab th:first-child, .benchtab td:first-child { text-align: left; }
.benchtab tr.better td.delta { color: #005500; }
.benchtab tr.worse td.delta { color: #aa0000; }
.benchtab tr.unchanged td.delta { color: #888888; }
.warnings { color: #aa0000; }
</style>
</head>
<body>
<table class='benchtab'>
<tr><th>scenario<th>metric<th>baseline<th>experiment<th>delta<th>95% CI (bootstrap)<th>effect
{{range .Rows -}}
<tr class='{{.Change}}'>
<td>{{.Scenario}}<td>{{.Metric}}<td>{{.Base}}<td>{{.Exp}}<td class='delta'>{{.Delta}}<td>{{.CI}}<td>{{.Effect}}
{{end -}}
{{if .HasGeomean -}}
<tr><td>geomean<td><td><td><td class='delta'>{{.Geomean}}<td><td>
{{end -}}
</table>
{{if .Warnings -}}
<ul class='warnings'>
{{range .Warnings}}<li>{{.}}</li>
{{end -}}
</ul>
{{end -}}
</body>
</html>
`)))

type htmlRow struct {
	Scenario, Metric  string
	Base, Exp         string
	Delta, CI, Effect string
	Change            string
}

type htmlReport struct {
	Rows       []htmlRow
	HasGeomean bool
	Geomean    string
	Warnings   []string
}

// ToHTML renders the report as a self-contained HTML page.
func (rep *Report) ToHTML(w io.Writer) error {
	var data htmlReport
	for _, row := range rep.Rows {
		scaler := rowScaler(row)
		h := htmlRow{
			Scenario: row.Scenario,
			Metric:   metricLabel(row),
			Base:     formatSample(row.Base, scaler),
			Exp:      formatSample(row.Exp, scaler),
			Delta:    "~",
			Change:   "unchanged",
		}
		if c := row.Cmp; c != nil {
			if c.Significant() {
				h.Delta = fmt.Sprintf("%+.2f%%", c.PctChange)
				if c.PctChange > 0 {
					h.Change = "better"
				} else if c.PctChange < 0 {
					h.Change = "worse"
				}
			}
			h.CI = formatBootstrap(c)
			h.Effect = formatEffect(c)
		}
		data.Rows = append(data.Rows, h)

		for _, msgs := range [][]error{row.Warnings, row.Base.Warnings, row.Exp.Warnings, cmpWarnings(row.Cmp)} {
			for _, msg := range msgs {
				data.Warnings = append(data.Warnings, fmt.Sprintf("%s %s: %s", row.Scenario, row.Metric, msg))
			}
		}
	}
	if rep.HasGeomean {
		data.HasGeomean = true
		data.Geomean = fmt.Sprintf("%+.2f%%", (1-rep.GeomeanRatio)*100)
	}
	data.Warnings = append(data.Warnings, warningsToStrings(rep.Warnings)...)
	return htmlTemplate.Execute(w, data)
}
