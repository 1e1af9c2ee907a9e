package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-yaml"

	"go.kgctl.dev/kg/validate"
)

// outputFormat is one of the four formats spec.md §6 names for `validate`.
type outputFormat string

const (
	formatTable   outputFormat = "table"
	formatCompact outputFormat = "compact"
	formatJSON    outputFormat = "json"
	formatYAML    outputFormat = "yaml"
)

func parseOutputFormat(s string) (outputFormat, error) {
	switch outputFormat(s) {
	case formatTable, formatCompact, formatJSON, formatYAML:
		return outputFormat(s), nil
	default:
		return "", argError("unknown --format %q: want one of table, compact, json, yaml", s)
	}
}

// diagnosticView is the wire shape used for the json/yaml output formats:
// exported fields so encoding/json and goccy/go-yaml both render them, and
// stable across process boundaries the way [validate.Diagnostic] promises.
type diagnosticView struct {
	Type    string `json:"type" yaml:"type"`
	Message string `json:"message" yaml:"message"`
	Field   string `json:"field,omitempty" yaml:"field,omitempty"`
	Entity  string `json:"entity,omitempty" yaml:"entity,omitempty"`
	Line    int    `json:"line,omitempty" yaml:"line,omitempty"`
	Column  int    `json:"column,omitempty" yaml:"column,omitempty"`
	Help    string `json:"help,omitempty" yaml:"help,omitempty"`
}

type resultView struct {
	Valid    bool              `json:"valid" yaml:"valid"`
	Errors   []diagnosticView  `json:"errors,omitempty" yaml:"errors,omitempty"`
	Warnings []diagnosticView  `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

func toResultView(r validate.Result) resultView {
	return resultView{
		Valid:    r.IsValid,
		Errors:   toDiagnosticViews(r.Errors),
		Warnings: toDiagnosticViews(r.Warnings),
	}
}

func toDiagnosticViews(ds []validate.Diagnostic) []diagnosticView {
	out := make([]diagnosticView, 0, len(ds))

	for _, d := range ds {
		out = append(out, diagnosticView{
			Type:    string(d.Type),
			Message: d.Message,
			Field:   d.Field,
			Entity:  d.Entity,
			Line:    d.Line,
			Column:  d.Column,
			Help:    d.Help,
		})
	}

	return out
}

// writeValidateResult renders r to w in format. Table is the default,
// human-facing rendering; compact is one line per diagnostic; json/yaml
// are machine-facing.
func writeValidateResult(w io.Writer, r validate.Result, format outputFormat) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(toResultView(r))
	case formatYAML:
		out, err := yaml.Marshal(toResultView(r))
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}

		_, err = w.Write(out)

		return err
	case formatCompact:
		return writeCompact(w, r)
	default:
		return writeTable(w, r)
	}
}

// writeValidateResultErrors renders just the error diagnostics from a
// failed apply, in table form, for the apply command's stderr output.
func writeValidateResultErrors(w io.Writer, errs []validate.Diagnostic) error {
	return writeTable(w, validate.Result{IsValid: false, Errors: errs})
}

func writeCompact(w io.Writer, r validate.Result) error {
	lines := make([]string, 0, len(r.Errors)+len(r.Warnings)+1)

	for _, d := range r.Errors {
		lines = append(lines, fmt.Sprintf("error: %s: %s", d.Type, d.Message))
	}

	for _, d := range r.Warnings {
		lines = append(lines, fmt.Sprintf("warning: %s: %s", d.Type, d.Message))
	}

	if len(lines) == 0 {
		lines = append(lines, "valid")
	}

	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))

	return err
}

func writeTable(w io.Writer, r validate.Result) error {
	status := "VALID"
	if !r.IsValid {
		status = "INVALID"
	}

	fmt.Fprintf(w, "status: %s\n", status)

	if len(r.Errors) == 0 && len(r.Warnings) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEVERITY\tTYPE\tENTITY\tFIELD\tMESSAGE")

	for _, d := range r.Errors {
		fmt.Fprintf(tw, "error\t%s\t%s\t%s\t%s\n", d.Type, d.Entity, d.Field, d.Message)
	}

	for _, d := range r.Warnings {
		fmt.Fprintf(tw, "warning\t%s\t%s\t%s\t%s\n", d.Type, d.Entity, d.Field, d.Message)
	}

	return tw.Flush()
}
