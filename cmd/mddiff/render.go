package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"

	markdowndiff "github.com/AutoriteDeLaConcurrence/markdowndiff"
	"github.com/AutoriteDeLaConcurrence/markdowndiff/ir"
)

// opPrinter renders an edit script one operation per line. It is the
// reference implementation of the engine's Formatter contract.
type opPrinter struct {
	Color   bool
	Unified bool
	All     bool
}

var _ markdowndiff.Formatter = (*opPrinter)(nil)

func (p *opPrinter) Format(w io.Writer, res *markdowndiff.Result) error {
	for _, op := range res.Ops {
		if !op.Changed() && !p.All {
			continue
		}
		if err := p.printOp(w, op); err != nil {
			return err
		}
	}
	return nil
}

func (p *opPrinter) printOp(w io.Writer, op *markdowndiff.Op) error {
	sprintf := fmt.Sprintf
	if p.Color {
		switch op.Kind {
		case markdowndiff.OpInsert:
			sprintf = color.GreenString
		case markdowndiff.OpDelete:
			sprintf = color.RedString
		case markdowndiff.OpMove:
			sprintf = color.YellowString
		case markdowndiff.OpUpdate:
			sprintf = color.CyanString
		}
	}
	var line string
	switch op.Kind {
	case markdowndiff.OpAlign:
		line = sprintf("= %s", op.Node.Path())
	case markdowndiff.OpInsert:
		line = sprintf("+ %s%s", op.Node.Path(), summary(op.Node))
	case markdowndiff.OpDelete:
		line = sprintf("- %s%s", op.Node.Path(), summary(op.Node))
	case markdowndiff.OpMove:
		if op.Reordered {
			line = sprintf("> %s reordered %d -> %d", op.Node.Path(), op.SrcPos, op.Pos)
		} else {
			line = sprintf("> %s moved from %s", op.Node.Path(), op.Counterpart.Path())
		}
	case markdowndiff.OpUpdate:
		line = sprintf("~ %s", op.Node.Path())
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}
	return p.printDeltas(w, op, sprintf)
}

// printDeltas renders attribute and text changes carried by Update and
// Move operations, indented under the op line.
func (p *opPrinter) printDeltas(w io.Writer, op *markdowndiff.Op, sprintf func(string, ...any) string) error {
	for _, d := range op.Attrs {
		var line string
		switch d.Kind {
		case markdowndiff.AttrSet:
			line = sprintf("  attr %s: %q -> %q", d.Key, d.Old, d.New)
		case markdowndiff.AttrAdd:
			line = sprintf("  attr %s: + %q", d.Key, d.New)
		case markdowndiff.AttrDelete:
			line = sprintf("  attr %s: - %q", d.Key, d.Old)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if op.Text == nil {
		return nil
	}
	if p.Unified && (strings.Contains(op.Text.Old, "\n") || strings.Contains(op.Text.New, "\n")) {
		ud := difflib.UnifiedDiff{
			A:        difflib.SplitLines(op.Text.Old),
			B:        difflib.SplitLines(op.Text.New),
			FromFile: "old",
			ToFile:   "new",
			Context:  2,
		}
		s, err := difflib.GetUnifiedDiffString(ud)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(w, indent(s, "  "))
		return err
	}
	if _, err := fmt.Fprintln(w, sprintf("  text: -%q +%q", op.Text.Old, op.Text.New)); err != nil {
		return err
	}
	return nil
}

func summary(n *ir.Node) string {
	if t := n.OwnText(); t != "" {
		if len(t) > 60 {
			t = t[:57] + "..."
		}
		return fmt.Sprintf(" %q", t)
	}
	return ""
}

func indent(s, prefix string) string {
	lines := strings.SplitAfter(s, "\n")
	var b strings.Builder
	for _, l := range lines {
		if l == "" {
			continue
		}
		b.WriteString(prefix)
		b.WriteString(l)
	}
	return b.String()
}
