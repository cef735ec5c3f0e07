package main

import (
	"fmt"
	"io"
	"os"
)

func runLayout(args []string) int {
	fs := newFlagSet("layout", "<document>")
	verbose := fs.Bool("verbose", false, "Print resolved tab stops as well as run positions")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	d, err := loadDocument(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "reflow: %v\n", err)
		return 1
	}
	defer d.Close()

	paragraphs, err := d.layoutParagraphs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "reflow: %v\n", err)
		return 1
	}

	printLayout(os.Stdout, paragraphs, *verbose)
	return 0
}

func printLayout(w io.Writer, paragraphs []paragraphLayout, verbose bool) {
	for i, p := range paragraphs {
		fmt.Fprintf(w, "paragraph %d\n", i)

		if verbose {
			for _, s := range p.Stops {
				fmt.Fprintf(w, "  stop %6d  %-7s %s\n", s.Position, s.Alignment, s.Leader)
			}
		}

		for _, rp := range p.Positions {
			switch {
			case rp.Stop != nil:
				fmt.Fprintf(w, "  %8.1f  tab -> %d (%s)\n", rp.X, rp.Stop.Position, rp.Stop.Alignment)
			default:
				fmt.Fprintf(w, "  %8.1f  %-5s %q width=%.1f\n", rp.X, rp.Run.Kind, rp.Run.Text, rp.Width)
			}
		}
	}
}
