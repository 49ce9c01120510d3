// SPDX-License-Identifier: MPL-2.0

package fyaml

import (
	"fmt"
	"strings"
)

// Severity is the level of a Diagnostic.
type Severity string

const (
	// SeverityError marks a diagnostic that fails the command.
	SeverityError Severity = "error"
	// SeverityWarn marks a diagnostic that is promoted to SeverityError
	// under --strict, but otherwise does not fail the command.
	SeverityWarn Severity = "warn"
	// SeverityInfo marks an informational diagnostic (never fails the
	// command, not affected by --strict).
	SeverityInfo Severity = "info"
)

// category classifies a Diagnostic for exit-code precedence purposes. It
// is not exported: callers select behavior via Code, the stable public
// identifier: category is derived from the code's prefix.
type category int

const (
	categoryInvalidInput category = iota
	categoryParse
	categoryWrite
	categoryInternal
)

// Location pinpoints a diagnostic inside a parsed fragment, when the
// underlying YAML library reports one.
type Location struct {
	File  string
	Line  int
	Col   int
	Valid bool
}

// CollisionPair records the two sources involved in a key collision, used
// as Diagnostic.Context for E001-E003-class diagnostics.
type CollisionPair struct {
	FirstPath  string
	SecondPath string
}

// Diagnostic is a single finding pushed to a Sink during scan, parse, or
// assemble. Every field beyond Code/Severity/Summary is optional; Render
// emits whichever are populated.
type Diagnostic struct {
	Code           string
	Severity       Severity
	Summary        string
	Cause          string
	Action         string
	Paths          []string
	Location       *Location
	DerivedKeyPath []string
	Context        *CollisionPair
	ContextNote    string

	category category
}

// newDiagnostic builds a Diagnostic and infers its category from the code
// prefix.
func newDiagnostic(code string, severity Severity, summary string) Diagnostic {
	return Diagnostic{
		Code:     code,
		Severity: severity,
		Summary:  summary,
		category: categoryForCode(code),
	}
}

// categoryForCode maps a stable diagnostic code to its exit-code category.
func categoryForCode(code string) category {
	switch {
	case strings.HasPrefix(code, "E020") || strings.HasPrefix(code, "E030"):
		return categoryParse
	case strings.HasPrefix(code, "E2"):
		return categoryWrite
	case strings.HasPrefix(code, "E1"):
		// E100-E119 is I/O (read side); treated as invalid input per the
		// exit-code table's "2 (read); 1 (unexpected)" note — unexpected
		// I/O failures are raised as plain errors, not diagnostics, so
		// every Diagnostic in this prefix range is the "read" case.
		return categoryInvalidInput
	case strings.HasPrefix(code, "E0"):
		return categoryInvalidInput
	default:
		return categoryInternal
	}
}

// Errorf builds an Error-severity Diagnostic. cause/action are set via the
// With* builders below, following the ErrorContext pattern used across the
// pack for fluent construction.
func Errorf(code, summary string, args ...interface{}) Diagnostic {
	return newDiagnostic(code, SeverityError, fmt.Sprintf(summary, args...))
}

// Warnf builds a Warn-severity Diagnostic.
func Warnf(code, summary string, args ...interface{}) Diagnostic {
	return newDiagnostic(code, SeverityWarn, fmt.Sprintf(summary, args...))
}

// Infof builds an Info-severity Diagnostic.
func Infof(code, summary string, args ...interface{}) Diagnostic {
	return newDiagnostic(code, SeverityInfo, fmt.Sprintf(summary, args...))
}

// WithCause sets the Cause field (the rule cited) and returns d for
// chaining, e.g. Errorf(...).WithCause(...).WithAction(...).
func (d Diagnostic) WithCause(cause string) Diagnostic {
	d.Cause = cause
	return d
}

// WithAction sets the Action field (the fix suggestion).
func (d Diagnostic) WithAction(action string) Diagnostic {
	d.Action = action
	return d
}

// WithPaths sets the Paths field.
func (d Diagnostic) WithPaths(paths ...string) Diagnostic {
	d.Paths = paths
	return d
}

// WithDerivedKeyPath sets the DerivedKeyPath field.
func (d Diagnostic) WithDerivedKeyPath(path []string) Diagnostic {
	d.DerivedKeyPath = append([]string(nil), path...)
	return d
}

// WithLocation sets the Location field.
func (d Diagnostic) WithLocation(loc Location) Diagnostic {
	loc.Valid = true
	d.Location = &loc
	return d
}

// WithCollision sets the Context field to a CollisionPair.
func (d Diagnostic) WithCollision(first, second string) Diagnostic {
	d.Context = &CollisionPair{FirstPath: first, SecondPath: second}
	return d
}

// WithContextNote sets a free-form context note, used where Context isn't
// a collision pair (e.g. a merge conflict key path or an offending list of
// contributors).
func (d Diagnostic) WithContextNote(note string) Diagnostic {
	d.ContextNote = note
	return d
}

// IsError reports whether the diagnostic currently has Error severity.
func (d Diagnostic) IsError() bool { return d.Severity == SeverityError }

// Promote raises a Warn-severity diagnostic to Error severity, used to
// implement --strict. It is a no-op for non-Warn diagnostics.
func (d Diagnostic) Promote() Diagnostic {
	if d.Severity == SeverityWarn {
		d.Severity = SeverityError
		d.category = categoryInvalidInput
	}
	return d
}

// Render formats a diagnostic using its five possible fields: Summary,
// Location, Cause, Action, Context.
func (d Diagnostic) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s[%s]: %s\n", d.Severity, d.Code, d.Summary)

	switch {
	case d.Location != nil && d.Location.Valid:
		fmt.Fprintf(&b, "  Location: %s:%d:%d\n", d.Location.File, d.Location.Line, d.Location.Col)
	case len(d.Paths) > 0:
		fmt.Fprintf(&b, "  Location: %s\n", strings.Join(d.Paths, ", "))
	}

	if len(d.DerivedKeyPath) > 0 {
		fmt.Fprintf(&b, "  Key: %s\n", strings.Join(d.DerivedKeyPath, "."))
	}
	if d.Cause != "" {
		fmt.Fprintf(&b, "  Cause: %s\n", d.Cause)
	}
	if d.Action != "" {
		fmt.Fprintf(&b, "  Action: %s\n", d.Action)
	}
	if d.Context != nil {
		fmt.Fprintf(&b, "  Context: %s and %s\n", d.Context.FirstPath, d.Context.SecondPath)
	} else if d.ContextNote != "" {
		fmt.Fprintf(&b, "  Context: %s\n", d.ContextNote)
	}
	return b.String()
}

// Sink collects diagnostics across the scan/parse/assemble pipeline.
// Every stage pushes to the same Sink and keeps going rather than failing
// fast, so a single bad fragment does not hide problems elsewhere in the
// tree. A Sink's zero value is ready to use single-threaded.
type Sink struct {
	diagnostics []Diagnostic
}

// NewSink returns an empty Sink.
func NewSink() *Sink { return &Sink{} }

// Push appends a diagnostic.
func (s *Sink) Push(d Diagnostic) { s.diagnostics = append(s.diagnostics, d) }

// All returns every diagnostic pushed so far, in push order.
func (s *Sink) All() []Diagnostic { return s.diagnostics }

// HasErrors reports whether any Error-severity diagnostic is present.
func (s *Sink) HasErrors() bool {
	for _, d := range s.diagnostics {
		if d.IsError() {
			return true
		}
	}
	return false
}

// ApplyStrict promotes every Warn-severity diagnostic to Error severity in
// place, implementing --strict: the resulting set is exactly the
// non-strict set with every Warn raised, codes preserved.
func (s *Sink) ApplyStrict() {
	for i, d := range s.diagnostics {
		s.diagnostics[i] = d.Promote()
	}
}

// exitCategory returns the highest-precedence category among Error
// diagnostics, following the "3 > 5 > 2 > 1" exit-code precedence rule, or
// the zero category with ok=false if there are no errors.
func (s *Sink) exitCategory() (category, bool) {
	seen := map[category]bool{}
	for _, d := range s.diagnostics {
		if d.IsError() {
			seen[d.category] = true
		}
	}
	for _, c := range []category{categoryParse, categoryWrite, categoryInvalidInput, categoryInternal} {
		if seen[c] {
			return c, true
		}
	}
	return 0, false
}
