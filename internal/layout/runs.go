package layout

import (
	"strings"
	"unicode/utf8"
)

// RunKind discriminates the kinds of inline content a line can hold.
type RunKind uint8

const (
	// RunText is ordinary text or inline content with a measured width.
	RunText RunKind = iota

	// RunTab is a tab marker.
	RunTab

	// RunBreak is an explicit line break. It carries no width.
	RunBreak
)

// String returns the run kind name.
func (k RunKind) String() string {
	switch k {
	case RunText:
		return "text"
	case RunTab:
		return "tab"
	case RunBreak:
		return "break"
	default:
		return "unknown"
	}
}

// Run is one inline content unit. Text is only required for decimal
// alignment; Width is in the caller's layout unit.
type Run struct {
	Kind  RunKind
	Text  string
	Width float64
}

// Text creates a text run.
func Text(text string, width float64) Run {
	return Run{Kind: RunText, Text: text, Width: width}
}

// Tab creates a tab run. The width is only used when no tab stop is
// available and the tab degrades to plain whitespace.
func Tab(width float64) Run {
	return Run{Kind: RunTab, Width: width}
}

// Break creates a line-break run.
func Break() Run {
	return Run{Kind: RunBreak}
}

// RunPosition is a run annotated with its horizontal position.
// Stop is set on the zero-width record emitted for a consumed tab,
// carrying the stop it jumped to (leaders are drawn from X to the stop).
// A RunPosition is immutable once produced.
type RunPosition struct {
	Run   Run
	X     float64
	Width float64
	Stop  *Stop
}

// MeasureFunc measures a substring of a run in the caller's layout unit.
// It receives the run so implementations can resolve per-run font data.
type MeasureFunc func(run Run, text string) float64

// Options configures LayoutWithTabs.
type Options struct {
	// Measure is the optional text measurement callback. When nil,
	// decimal alignment falls back to a proportional estimate from the
	// run's total width.
	Measure MeasureFunc

	// DecimalSeparator is the separator decimal stops align on.
	// Defaults to ".".
	DecimalSeparator string
}

// pendingAlign tracks a deferred alignment between a consumed tab stop
// and the single run it applies to.
type pendingAlign uint8

const (
	pendingNone pendingAlign = iota
	pendingDecimal
	pendingCenter
	pendingEnd
)

// LayoutWithTabs positions runs left to right against a resolved stop
// list, returning one RunPosition per run.
//
// Stops are consumed monotonically and never revisited. A tab with no
// usable stop left is treated as ordinary whitespace. lineWidth is
// accepted for symmetry with TabWidth; stops beyond it still apply, and
// overflow handling belongs to the caller's wrapping pass.
func LayoutWithTabs(runs []Run, stops []Stop, lineWidth float64, opts Options) []RunPosition {
	sep := opts.DecimalSeparator
	if sep == "" {
		sep = "."
	}

	out := make([]RunPosition, 0, len(runs))
	currentX := 0.0
	stopIdx := 0
	pending := pendingNone
	var pendingStop Stop

	for _, run := range runs {
		if run.Kind == RunTab {
			// Skip stops already behind the current position.
			for stopIdx < len(stops) && float64(stops[stopIdx].Position) <= currentX {
				stopIdx++
			}
			if stopIdx == len(stops) {
				// Exhausted: the tab degrades to whitespace.
				out = append(out, RunPosition{Run: run, X: currentX, Width: run.Width})
				currentX += run.Width
				pending = pendingNone
				continue
			}

			stop := stops[stopIdx]
			stopIdx++
			out = append(out, RunPosition{Run: run, X: currentX, Width: 0, Stop: &stop})
			currentX = float64(stop.Position)

			switch stop.Alignment {
			case AlignDecimal:
				pending = pendingDecimal
				pendingStop = stop
			case AlignCenter:
				pending = pendingCenter
				pendingStop = stop
			case AlignEnd:
				pending = pendingEnd
				pendingStop = stop
			default:
				pending = pendingNone
			}
			continue
		}

		// A deferred alignment applies to exactly one following run.
		if pending != pendingNone {
			currentX = alignedX(run, pending, pendingStop, opts.Measure, sep)
			pending = pendingNone
		}

		out = append(out, RunPosition{Run: run, X: currentX, Width: run.Width})
		currentX += run.Width
	}

	return out
}

// alignedX computes the start position of the run a deferred alignment
// applies to. The result is never negative.
func alignedX(run Run, pending pendingAlign, stop Stop, measure MeasureFunc, sep string) float64 {
	target := float64(stop.Position)

	var x float64
	switch pending {
	case pendingCenter:
		x = target - run.Width/2
	case pendingEnd:
		x = target - run.Width
	case pendingDecimal:
		x = target - widthBeforeSeparator(run, sep, measure)
	default:
		return target
	}

	if x < 0 {
		return 0
	}
	return x
}

// widthBeforeSeparator returns the width of the run text preceding the
// first decimal separator, or 0 when the separator is absent or leads
// the text.
func widthBeforeSeparator(run Run, sep string, measure MeasureFunc) float64 {
	idx := strings.Index(run.Text, sep)
	if idx <= 0 {
		return 0
	}

	before := run.Text[:idx]
	if measure != nil {
		return measure(run, before)
	}

	// Proportional estimate from the run's total width.
	total := utf8.RuneCountInString(run.Text)
	if total == 0 {
		return 0
	}
	return run.Width * float64(utf8.RuneCountInString(before)) / float64(total)
}
