package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/quilldoc/reflow/internal/layout"
)

func runView(args []string) int {
	fs := newFlagSet("view", "<document>")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	path := fs.Arg(0)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "reflow: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "reflow: %v\n", err)
		return 1
	}
	defer screen.Fini()

	v := &viewer{screen: screen, path: path}
	if err := v.reload(); err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "reflow: %v\n", err)
		return 1
	}

	for {
		v.draw()
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape, ev.Rune() == 'q':
				return 0
			case ev.Rune() == 'r':
				if err := v.reload(); err != nil {
					v.status = err.Error()
				}
			}
		}
	}
}

// viewer draws a document's paragraph layouts scaled to the terminal.
type viewer struct {
	screen     tcell.Screen
	path       string
	paragraphs []paragraphLayout
	extent     float64
	status     string
}

// reload re-parses the document and recomputes every paragraph.
func (v *viewer) reload() error {
	d, err := loadDocument(v.path)
	if err != nil {
		return err
	}
	defer d.Close()

	paragraphs, err := d.layoutParagraphs()
	if err != nil {
		return err
	}

	v.paragraphs = paragraphs
	v.extent = 0
	for _, p := range paragraphs {
		for _, rp := range p.Positions {
			if end := rp.X + rp.Run.Width; end > v.extent {
				v.extent = end
			}
		}
		for _, s := range p.Stops {
			if float64(s.Position) > v.extent {
				v.extent = float64(s.Position)
			}
		}
	}
	v.status = fmt.Sprintf("%s  (q quit, r reload)", v.path)
	return nil
}

func (v *viewer) draw() {
	v.screen.Clear()
	width, height := v.screen.Size()

	scale := 1.0
	if v.extent > 0 && width > 1 {
		scale = float64(width-1) / v.extent
	}

	row := 0
	for _, p := range v.paragraphs {
		if row >= height-1 {
			break
		}
		for _, rp := range p.Positions {
			if rp.Stop != nil {
				v.drawLeader(rp, scale, row, width)
				continue
			}
			v.drawText(rp, scale, row, width)
		}
		row += 2
	}

	v.drawStatus(height - 1)
	v.screen.Show()
}

// drawLeader fills the jump a consumed tab made, using the stop's
// leader character.
func (v *viewer) drawLeader(rp layout.RunPosition, scale float64, row, width int) {
	ch := leaderRune(rp.Stop.Leader)
	if ch == 0 {
		return
	}
	from := int(rp.X * scale)
	to := int(float64(rp.Stop.Position) * scale)
	style := tcell.StyleDefault.Dim(true)
	for x := from; x < to && x < width; x++ {
		v.screen.SetContent(x, row, ch, nil, style)
	}
}

func (v *viewer) drawText(rp layout.RunPosition, scale float64, row, width int) {
	x := int(rp.X * scale)
	for _, r := range rp.Run.Text {
		if x >= width {
			return
		}
		v.screen.SetContent(x, row, r, nil, tcell.StyleDefault)
		x++
	}
}

func (v *viewer) drawStatus(row int) {
	style := tcell.StyleDefault.Reverse(true)
	width, _ := v.screen.Size()
	x := 0
	for _, r := range v.status {
		if x >= width {
			break
		}
		v.screen.SetContent(x, row, r, nil, style)
		x++
	}
	for ; x < width; x++ {
		v.screen.SetContent(x, row, ' ', nil, style)
	}
}

// leaderRune maps a leader style to the rune drawn across the gap.
func leaderRune(l layout.Leader) rune {
	switch l {
	case layout.LeaderDot:
		return '.'
	case layout.LeaderHyphen:
		return '-'
	case layout.LeaderHeavy:
		return '='
	case layout.LeaderUnderscore:
		return '_'
	case layout.LeaderMiddleDot:
		return '·'
	default:
		return 0
	}
}
