// Package render writes balanced equations and parsed formulas in the output
// formats of the command line tool and the HTTP service.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/reactions"
	"github.com/zephyrtronium/reactions/internal/batch"
)

// Output formats.
const (
	Text  = "text"
	Table = "table"
	JSON  = "json"
	YAML  = "yaml"
)

// Formats lists the output formats.
func Formats() []string {
	return []string{Text, Table, JSON, YAML}
}

// Record is the serialized form of a batch result.
type Record struct {
	Input        string `json:"input" yaml:"input"`
	Balanced     string `json:"balanced,omitempty" yaml:"balanced,omitempty"`
	Coefficients []int  `json:"coefficients,omitempty" yaml:"coefficients,omitempty"`
	Error        string `json:"error,omitempty" yaml:"error,omitempty"`
	Kind         string `json:"kind,omitempty" yaml:"kind,omitempty"`
	// Position is the position of malformed input within its compound or
	// equation.
	Position int `json:"position,omitempty" yaml:"position,omitempty"`
}

// Records converts batch results to records.
func Records(results []batch.Result) []Record {
	r := make([]Record, len(results))
	for i, res := range results {
		r[i] = Record{Input: res.Input}
		if res.Err != nil {
			r[i].Error = res.Err.Error()
			r[i].Kind = ErrorKind(res.Err)
			var ie reactions.InputError
			if errors.As(res.Err, &ie) {
				r[i].Position = ie.Pos()
			}
			continue
		}
		r[i].Balanced = res.Equation.String()
		r[i].Coefficients = res.Equation.Coefficients()
	}
	return r
}

// ErrorKind names the kind of an error from balancing.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, reactions.ErrMalformedFormula):
		return "malformed"
	case errors.Is(err, reactions.ErrUnbalancedElementSets):
		return "unbalanced"
	case errors.Is(err, reactions.ErrUnsupportedEquation):
		return "unsupported"
	case errors.Is(err, reactions.ErrArithmeticOverflow):
		return "overflow"
	case errors.Is(err, batch.ErrSkipped):
		return "skipped"
	}
	return "error"
}

// Write writes batch results in a format.
func Write(w io.Writer, format string, results []batch.Result) error {
	switch format {
	case Text, "":
		return writeText(w, results)
	case Table:
		return writeTable(w, results)
	case JSON:
		return writeJSON(w, Records(results))
	case YAML:
		return writeYAML(w, Records(results))
	}
	return fmt.Errorf("unknown output format %q", format)
}

func writeText(w io.Writer, results []batch.Result) error {
	for _, r := range results {
		var err error
		if r.Err != nil {
			_, err = fmt.Fprintf(w, "%s: error: %v\n", r.Input, r.Err)
		} else {
			_, err = fmt.Fprintln(w, r.Equation.String())
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func writeTable(w io.Writer, results []batch.Result) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Input", "Balanced", "Error"})
	for _, r := range results {
		if r.Err != nil {
			t.AppendRow(table.Row{r.Index + 1, r.Input, "", r.Err.Error()})
			continue
		}
		t.AppendRow(table.Row{r.Index + 1, r.Input, r.Equation.String(), ""})
	}
	t.AppendFooter(table.Row{"", "", "failed", strconv.Itoa(batch.Failed(results))})
	t.Render()
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// FormulaRecord is the serialized form of a parsed formula.
type FormulaRecord struct {
	Formula string       `json:"formula" yaml:"formula"`
	Tree    string       `json:"tree" yaml:"tree"`
	Terms   []TermRecord `json:"terms" yaml:"terms"`
}

// TermRecord is the total count of one element.
type TermRecord struct {
	Element string `json:"element" yaml:"element"`
	Count   int    `json:"count" yaml:"count"`
}

// NewFormulaRecord converts a formula to its record.
func NewFormulaRecord(f *reactions.Formula) FormulaRecord {
	r := FormulaRecord{Formula: f.String(), Tree: f.Tree()}
	for _, t := range f.Terms() {
		r.Terms = append(r.Terms, TermRecord{Element: t.Element, Count: t.Count})
	}
	return r
}

// Formula writes a parsed formula in a format.
func Formula(w io.Writer, format string, f *reactions.Formula) error {
	switch format {
	case Text, "":
		if _, err := fmt.Fprintf(w, "%s\t%s\n", f.String(), f.Tree()); err != nil {
			return err
		}
		for _, t := range f.Terms() {
			if _, err := fmt.Fprintf(w, "\t%s\t%d\n", t.Element, t.Count); err != nil {
				return err
			}
		}
		return nil
	case Table:
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)
		t.SetTitle(f.String())
		t.AppendHeader(table.Row{"Element", "Count"})
		for _, term := range f.Terms() {
			t.AppendRow(table.Row{term.Element, term.Count})
		}
		t.Render()
		return nil
	case JSON:
		return writeJSON(w, NewFormulaRecord(f))
	case YAML:
		return writeYAML(w, NewFormulaRecord(f))
	}
	return fmt.Errorf("unknown output format %q", format)
}
