package layout

import "sort"

// Alignment describes how text is positioned relative to a tab stop.
type Alignment uint8

const (
	// AlignStart places following text to the right of the stop.
	AlignStart Alignment = iota

	// AlignEnd places following text so it ends at the stop.
	AlignEnd

	// AlignCenter centers following text on the stop.
	AlignCenter

	// AlignDecimal places following text so its decimal separator
	// lands on the stop.
	AlignDecimal

	// AlignBar draws a vertical rule at the stop. A bar stop occupies
	// no horizontal space.
	AlignBar

	// AlignClear marks a position where inherited or default stops are
	// suppressed. Clear stops are consumed during resolution and never
	// appear in a resolved stop list.
	AlignClear
)

// String returns the alignment name.
func (a Alignment) String() string {
	switch a {
	case AlignStart:
		return "start"
	case AlignEnd:
		return "end"
	case AlignCenter:
		return "center"
	case AlignDecimal:
		return "decimal"
	case AlignBar:
		return "bar"
	case AlignClear:
		return "clear"
	default:
		return "unknown"
	}
}

// Leader is the fill drawn in the gap before a tab stop.
type Leader uint8

const (
	// LeaderNone leaves the gap empty.
	LeaderNone Leader = iota

	// LeaderDot fills the gap with dots.
	LeaderDot

	// LeaderHyphen fills the gap with hyphens.
	LeaderHyphen

	// LeaderHeavy fills the gap with a heavy rule.
	LeaderHeavy

	// LeaderUnderscore fills the gap with underscores.
	LeaderUnderscore

	// LeaderMiddleDot fills the gap with middle dots.
	LeaderMiddleDot
)

// String returns the leader name.
func (l Leader) String() string {
	switch l {
	case LeaderNone:
		return "none"
	case LeaderDot:
		return "dot"
	case LeaderHyphen:
		return "hyphen"
	case LeaderHeavy:
		return "heavy"
	case LeaderUnderscore:
		return "underscore"
	case LeaderMiddleDot:
		return "middleDot"
	default:
		return "unknown"
	}
}

// Stop is a single tab stop. Position is in twips from the paragraph's
// left edge.
type Stop struct {
	Position  int
	Alignment Alignment
	Leader    Leader
}

// Indent is a paragraph's horizontal indentation in twips.
// Hanging pulls the first visual line left of Left.
type Indent struct {
	Left    int
	Hanging int
}

// EffectiveMin returns the horizontal start of the paragraph's first
// visual line: Left reduced by the hanging indent, clamped at zero.
func (in Indent) EffectiveMin() int {
	m := in.Left - in.Hanging
	if m < 0 {
		return 0
	}
	return m
}

const (
	// DefaultInterval is the default-grid spacing used when a document
	// supplies none: half an inch.
	DefaultInterval = 720

	// suppressTolerance is how close (in twips) a generated default stop
	// may sit to an explicit or cleared stop before it is suppressed.
	// The slack absorbs rounding from documents authored in other units.
	suppressTolerance = 20

	// generationCap bounds default-stop generation to ten inches past
	// the generation start.
	generationCap = 14400
)

// Compute resolves explicit stops, a default interval, and paragraph
// indentation into the stop list used for layout.
//
// The result is sorted ascending by position, contains at most one stop
// per position, and contains no clear stops: clear entries suppress
// nearby default stops and are then discarded. Explicit stops left of the
// first visual line's start are dropped; generated default stops
// additionally never sit left of the body indent, even when a hanging
// indent lets explicit stops do so.
func Compute(explicit []Stop, defaultInterval int, indent Indent) []Stop {
	if defaultInterval <= 0 {
		defaultInterval = DefaultInterval
	}

	effMin := indent.EffectiveMin()

	// Partition explicit entries, dropping stops that belong to the
	// hanging first line. Later entries at the same position win.
	var cleared []int
	byPos := make(map[int]Stop)
	for _, s := range explicit {
		if s.Alignment == AlignClear {
			cleared = append(cleared, s.Position)
			continue
		}
		if s.Position >= effMin {
			byPos[s.Position] = s
		}
	}

	kept := make([]Stop, 0, len(byPos))
	maxExplicit := 0
	for _, s := range byPos {
		kept = append(kept, s)
		if s.Position > maxExplicit {
			maxExplicit = s.Position
		}
	}

	// Defaults resume after the last explicit stop, but never inside
	// the body indent.
	defaultStart := 0
	if len(kept) > 0 {
		defaultStart = maxExplicit
		if indent.Left > defaultStart {
			defaultStart = indent.Left
		}
	}

	limit := defaultStart
	if indent.Left > limit {
		limit = indent.Left
	}
	limit += generationCap

	out := kept
	for pos := defaultStart + defaultInterval; pos < limit; pos += defaultInterval {
		if pos < indent.Left {
			continue
		}
		if nearAny(pos, kept, cleared) {
			continue
		}
		out = append(out, Stop{Position: pos, Alignment: AlignStart, Leader: LeaderNone})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// nearAny reports whether pos lies within the suppression tolerance of
// any kept explicit stop or cleared position.
func nearAny(pos int, kept []Stop, cleared []int) bool {
	for _, s := range kept {
		if abs(pos-s.Position) <= suppressTolerance {
			return true
		}
	}
	for _, c := range cleared {
		if abs(pos-c) <= suppressTolerance {
			return true
		}
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
