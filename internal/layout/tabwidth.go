package layout

import (
	"math"
	"strings"
)

// TabWidthParams bundles the inputs to TabWidth.
type TabWidthParams struct {
	// CurrentX is the position the tab starts at.
	CurrentX float64

	// Stops is the stop list to search. Clear entries are skipped, so
	// both raw and resolved lists are accepted.
	Stops []Stop

	// ParagraphWidth caps how far a stop can reach. Zero or negative
	// means unbounded.
	ParagraphWidth float64

	// DefaultTabDistance is the default-grid spacing used when no stop
	// is usable.
	DefaultTabDistance float64

	// DefaultLineLength is the repeat length of the default grid.
	DefaultLineLength float64

	// FollowingText is the text after the tab, used for end, center,
	// and decimal stops.
	FollowingText string

	// Measure measures FollowingText substrings. When nil the
	// following text is treated as zero-width.
	Measure func(text string) float64

	// DecimalSeparator defaults to ".".
	DecimalSeparator string
}

// TabWidth computes the width of a single tab without laying out a full
// run list.
//
// The first non-clear stop past CurrentX decides the width. A bar stop
// yields width 0 (it draws a rule, not a gap). End, center, and decimal
// stops shrink the gap by the measured following text. A gap below 1 is
// treated as no usable stop, and the repeating default grid decides the
// width instead.
func TabWidth(p TabWidthParams) float64 {
	stop, ok := firstStopAfter(p.Stops, p.CurrentX)
	if !ok {
		return defaultGridWidth(p)
	}

	if stop.Alignment == AlignBar {
		return 0
	}

	reach := float64(stop.Position)
	if p.ParagraphWidth > 0 && p.ParagraphWidth < reach {
		reach = p.ParagraphWidth
	}
	width := reach - p.CurrentX

	switch stop.Alignment {
	case AlignEnd:
		width -= p.measureFollowing()
	case AlignCenter:
		width -= p.measureFollowing() / 2
	case AlignDecimal:
		width -= p.widthBeforeSeparator()
	}

	if width < 1 {
		// Exhausted or negative gap: behave as if no stop matched.
		return defaultGridWidth(p)
	}
	return width
}

// firstStopAfter returns the first non-clear stop strictly past x.
func firstStopAfter(stops []Stop, x float64) (Stop, bool) {
	for _, s := range stops {
		if s.Alignment == AlignClear {
			continue
		}
		if float64(s.Position) > x {
			return s, true
		}
	}
	return Stop{}, false
}

// defaultGridWidth advances to the next default-grid position.
func defaultGridWidth(p TabWidthParams) float64 {
	if p.DefaultTabDistance <= 0 {
		return 0
	}

	x := p.CurrentX
	if p.DefaultLineLength > 0 {
		x = math.Mod(x, p.DefaultLineLength)
	}

	w := p.DefaultTabDistance - math.Mod(x, p.DefaultTabDistance)
	if w <= 0 {
		return p.DefaultTabDistance
	}
	return w
}

func (p TabWidthParams) measureFollowing() float64 {
	if p.Measure == nil || p.FollowingText == "" {
		return 0
	}
	return p.Measure(p.FollowingText)
}

func (p TabWidthParams) widthBeforeSeparator() float64 {
	sep := p.DecimalSeparator
	if sep == "" {
		sep = "."
	}
	idx := strings.Index(p.FollowingText, sep)
	if idx <= 0 || p.Measure == nil {
		return 0
	}
	return p.Measure(p.FollowingText[:idx])
}
