// SPDX-License-Identifier: MPL-2.0

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fyaml/fyaml/pkg/fyaml"
)

// renderDiagnostics writes every diagnostic in sink to w, styled by
// severity, rendering whichever of the five fields are populated:
// Summary, Location, Cause, Action, Context.
func renderDiagnostics(w io.Writer, sink *fyaml.Sink) {
	for _, d := range sink.All() {
		fmt.Fprint(w, renderDiagnostic(d))
	}
}

func renderDiagnostic(d fyaml.Diagnostic) string {
	var b strings.Builder

	header := fmt.Sprintf("[%s] %s", d.Code, d.Summary)
	switch d.Severity {
	case fyaml.SeverityError:
		b.WriteString(ErrorStyle.Render(header))
	case fyaml.SeverityWarn:
		b.WriteString(WarningStyle.Render(header))
	default:
		b.WriteString(InfoStyle.Render(header))
	}
	b.WriteString("\n")

	field := func(label, value string) {
		fmt.Fprintf(&b, "  %s %s\n", FieldLabelStyle.Render(label+":"), value)
	}

	switch {
	case d.Location != nil && d.Location.Valid:
		field("Location", fmt.Sprintf("%s:%d:%d", d.Location.File, d.Location.Line, d.Location.Col))
	case len(d.Paths) > 0:
		field("Location", strings.Join(d.Paths, ", "))
	}
	if len(d.DerivedKeyPath) > 0 {
		field("Key", strings.Join(d.DerivedKeyPath, "."))
	}
	if d.Cause != "" {
		field("Cause", d.Cause)
	}
	if d.Action != "" {
		field("Action", d.Action)
	}
	if d.Context != nil {
		field("Context", fmt.Sprintf("%s and %s", d.Context.FirstPath, d.Context.SecondPath))
	} else if d.ContextNote != "" {
		field("Context", d.ContextNote)
	}
	return b.String()
}

// diagnosticJSON is the wire shape for --json output.
type diagnosticJSON struct {
	Code           string        `json:"code"`
	Severity       string        `json:"severity"`
	Message        string        `json:"message"`
	Paths          []string      `json:"paths,omitempty"`
	DerivedKeyPath []string      `json:"derived_key_path,omitempty"`
	Location       *locationJSON `json:"location,omitempty"`
	Context        *contextJSON  `json:"context,omitempty"`
}

type locationJSON struct {
	File string `json:"file"`
	Line int    `json:"line"`
	Col  int    `json:"col"`
}

type contextJSON struct {
	FirstPath  string `json:"first_path,omitempty"`
	SecondPath string `json:"second_path,omitempty"`
	Note       string `json:"note,omitempty"`
}

func toDiagnosticJSON(d fyaml.Diagnostic) diagnosticJSON {
	out := diagnosticJSON{
		Code:           d.Code,
		Severity:       string(d.Severity),
		Message:        d.Summary,
		Paths:          d.Paths,
		DerivedKeyPath: d.DerivedKeyPath,
	}
	if d.Location != nil && d.Location.Valid {
		out.Location = &locationJSON{File: d.Location.File, Line: d.Location.Line, Col: d.Location.Col}
	}
	if d.Context != nil {
		out.Context = &contextJSON{FirstPath: d.Context.FirstPath, SecondPath: d.Context.SecondPath}
	} else if d.ContextNote != "" {
		out.Context = &contextJSON{Note: d.ContextNote}
	}
	return out
}

func writeDiagnosticsJSON(w io.Writer, sink *fyaml.Sink) error {
	all := sink.All()
	out := make([]diagnosticJSON, len(all))
	for i, d := range all {
		out[i] = toDiagnosticJSON(d)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
