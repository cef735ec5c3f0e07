// Package main is the entry point for the reflow layout tool.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quilldoc/reflow/internal/config"
	"github.com/quilldoc/reflow/internal/layout"
	"github.com/quilldoc/reflow/internal/measure"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		usage()
		return 2
	}

	switch args[0] {
	case "layout":
		return runLayout(args[1:])
	case "watch":
		return runWatch(args[1:])
	case "view":
		return runView(args[1:])
	case "version", "-v", "--version":
		fmt.Printf("reflow %s (%s)\n", version, commit)
		return 0
	case "help", "-h", "--help":
		usage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "reflow: unknown command %q\n\n", args[0])
		usage()
		return 2
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Reflow - tab-aware layout and position mapping\n\n")
	fmt.Fprintf(os.Stderr, "Usage: reflow <command> [options] <document>\n\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  layout    Resolve tab stops and print run positions\n")
	fmt.Fprintf(os.Stderr, "  watch     Re-layout on file change and track a caret across edits\n")
	fmt.Fprintf(os.Stderr, "  view      Show the layout in a terminal viewer\n")
	fmt.Fprintf(os.Stderr, "  version   Show version information\n")
}

// newFlagSet creates a flag set that prints its own usage line.
func newFlagSet(name, trailer string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: reflow %s [options] %s\n\nOptions:\n", name, trailer)
		fs.PrintDefaults()
	}
	return fs
}

// document bundles a parsed document with the measurer its settings
// select.
type document struct {
	path     string
	doc      *config.Document
	measurer *measure.LuaMeasurer
	widthOf  measure.Func
}

// loadDocument parses the document at path and resolves its measure
// script, if any, relative to the document's directory.
func loadDocument(path string) (*document, error) {
	d, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	ld := &document{path: path, doc: d}
	if script := d.Settings.MeasureScript; script != "" {
		if !filepath.IsAbs(script) {
			script = filepath.Join(filepath.Dir(path), script)
		}
		m, err := measure.NewLuaMeasurer(script)
		if err != nil {
			return nil, err
		}
		ld.measurer = m
		ld.widthOf = m.Func()
	}
	return ld, nil
}

// Close releases the document's Lua state, if any.
func (d *document) Close() {
	if d.measurer != nil {
		d.measurer.Close()
	}
}

// layoutOptions builds run-layout options from the document settings.
func (d *document) layoutOptions() layout.Options {
	opts := layout.Options{DecimalSeparator: d.doc.Settings.DecimalSeparator}
	if d.widthOf != nil {
		f := d.widthOf
		opts.Measure = func(_ layout.Run, text string) float64 {
			return f(text)
		}
	}
	return opts
}

// paragraphLayout is one paragraph's resolved stops and positioned
// runs.
type paragraphLayout struct {
	Stops     []layout.Stop
	Positions []layout.RunPosition
}

// layoutParagraphs resolves and lays out every paragraph.
func (d *document) layoutParagraphs() ([]paragraphLayout, error) {
	out := make([]paragraphLayout, 0, len(d.doc.Paragraphs))
	for i, p := range d.doc.Paragraphs {
		explicit, err := p.TabStops()
		if err != nil {
			return nil, fmt.Errorf("paragraph %d: %w", i, err)
		}
		stops := layout.Compute(explicit, d.doc.Settings.DefaultTabInterval, p.Indent())
		positions := layout.LayoutWithTabs(p.LayoutRuns(), stops, p.LineWidth, d.layoutOptions())
		out = append(out, paragraphLayout{Stops: stops, Positions: positions})
	}
	return out, nil
}
