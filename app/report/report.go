// Package report renders human-readable CLI output for the registry, the
// sequence generator and the analyzer.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lexcodex/featurekit/analysis"
	"github.com/lexcodex/featurekit/registry"
)

const ruleWidth = 40

// Printer writes styled lines to an output stream.
type Printer struct {
	w     io.Writer
	style styles
}

// New builds a Printer for w. Colors are only emitted when w is a terminal.
func New(w io.Writer) *Printer {
	return &Printer{w: w, style: newStyles(lipgloss.NewRenderer(w))}
}

func (p *Printer) line(format string, args ...interface{}) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *Printer) field(label string, value interface{}) {
	p.line("  %s %s", p.style.label.Render(label+":"), p.style.value.Render(fmt.Sprint(value)))
}

// Header prints a title underlined with a rule.
func (p *Printer) Header(title string) {
	p.line("%s", p.style.header.Render(title))
	p.line("%s", p.style.rule.Render(strings.Repeat("=", ruleWidth)))
}

// Section prints a blank line and a section title.
func (p *Printer) Section(title string) {
	p.line("")
	p.line("%s", p.style.section.Render(title))
}

// Info prints the registry identity lines.
func (p *Printer) Info(info registry.Info) {
	p.line("Editor: %s v%s", p.style.value.Render(info.Name), info.Version)
	p.line("Platform: %s", info.Platform)
	p.line("Created: %s", p.style.dim.Render(info.CreatedAt))
}

// Features prints a numbered feature list.
func (p *Printer) Features(features []string) {
	p.Section("Features:")
	if len(features) == 0 {
		p.line("  %s", p.style.dim.Render("(none)"))
		return
	}
	for i, f := range features {
		p.line("  %d. %s", i+1, f)
	}
}

// AddResult reports the outcome of adding one feature.
func (p *Printer) AddResult(feature string, result registry.AddResult) {
	if result == registry.FeatureAdded {
		p.line("%s %s", p.style.success.Render("Added feature:"), feature)
		return
	}
	p.line("%s %s", p.style.dim.Render("Feature already exists:"), feature)
}

// Sequence prints a labelled, already formatted sequence.
func (p *Printer) Sequence(count int, formatted string) {
	p.Section(fmt.Sprintf("Fibonacci sequence (first %d numbers):", count))
	p.line("%s", formatted)
}

// FileStats prints an analysis block.
func (p *Printer) FileStats(stats analysis.FileStatistics) {
	p.Section("File Analysis for " + p.style.path.Render(stats.Filename) + ":")
	p.field("Size", fmt.Sprintf("%d bytes", stats.SizeBytes))
	p.field("Lines", stats.LineCount)
	p.field("Words", stats.WordCount)
	p.field("Characters", stats.CharacterCount)
	p.field("Extension", stats.Extension)
	p.field("Modified", stats.Modified())
}

// Totals prints aggregate counts for several files.
func (p *Printer) Totals(t analysis.Totals) {
	p.Section(fmt.Sprintf("Totals (%d files):", t.Files))
	p.field("Size", fmt.Sprintf("%d bytes", t.SizeBytes))
	p.field("Lines", t.Lines)
	p.field("Words", t.Words)
	p.field("Characters", t.Characters)
}

// NoAnalysis reports that path produced no statistics.
func (p *Printer) NoAnalysis(path string) {
	p.line("%s %s", p.style.dim.Render("No analysis available for"), path)
}

// Saved reports the outcome of a snapshot save.
func (p *Printer) Saved(path string, ok bool) {
	if ok {
		p.line("%s %s", p.style.success.Render("Configuration saved to"), path)
		return
	}
	p.line("%s %s", p.style.failure.Render("Error saving configuration to"), path)
}

// Done prints the closing line.
func (p *Printer) Done(message string) {
	p.line("")
	p.line("%s", p.style.success.Render(message))
}
