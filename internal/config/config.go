// Package config loads engine settings and document descriptions for
// the reflow CLI from TOML or YAML files.
package config

import (
	"fmt"

	"github.com/quilldoc/reflow/internal/layout"
)

// Settings holds the engine parameters a document may override.
type Settings struct {
	// DefaultTabInterval is the default-grid spacing in twips.
	DefaultTabInterval int `toml:"default_tab_interval" yaml:"default_tab_interval"`

	// DecimalSeparator is the separator decimal tab stops align on.
	DecimalSeparator string `toml:"decimal_separator" yaml:"decimal_separator"`

	// MaxEpochs is the position mapper's retention window.
	MaxEpochs int `toml:"max_epochs" yaml:"max_epochs"`

	// MeasureScript is an optional Lua script supplying text widths,
	// resolved relative to the document file.
	MeasureScript string `toml:"measure_script" yaml:"measure_script"`
}

// DefaultSettings returns the settings used when a document supplies
// none.
func DefaultSettings() Settings {
	return Settings{
		DefaultTabInterval: layout.DefaultInterval,
		DecimalSeparator:   ".",
		MaxEpochs:          100,
	}
}

// Normalize fills zero values with defaults and clamps out-of-range
// ones.
func (s *Settings) Normalize() {
	def := DefaultSettings()
	if s.DefaultTabInterval <= 0 {
		s.DefaultTabInterval = def.DefaultTabInterval
	}
	if s.DecimalSeparator == "" {
		s.DecimalSeparator = def.DecimalSeparator
	}
	if s.MaxEpochs < 1 {
		s.MaxEpochs = def.MaxEpochs
	}
}

// Document is a paragraph sequence with engine settings.
type Document struct {
	Settings   Settings    `toml:"settings" yaml:"settings"`
	Paragraphs []Paragraph `toml:"paragraph" yaml:"paragraphs"`
}

// Paragraph describes one paragraph's indentation, stops, and runs.
type Paragraph struct {
	IndentLeft    int       `toml:"indent_left" yaml:"indent_left"`
	IndentHanging int       `toml:"indent_hanging" yaml:"indent_hanging"`
	LineWidth     float64   `toml:"line_width" yaml:"line_width"`
	Stops         []StopDef `toml:"stop" yaml:"stops"`
	Runs          []RunDef  `toml:"run" yaml:"runs"`
}

// StopDef is a tab stop as written in a document file.
type StopDef struct {
	Position int    `toml:"position" yaml:"position"`
	Align    string `toml:"align" yaml:"align"`
	Leader   string `toml:"leader" yaml:"leader"`
}

// RunDef is a run as written in a document file.
type RunDef struct {
	Tab   bool    `toml:"tab" yaml:"tab"`
	Text  string  `toml:"text" yaml:"text"`
	Width float64 `toml:"width" yaml:"width"`
}

// Indent returns the paragraph's indentation.
func (p Paragraph) Indent() layout.Indent {
	return layout.Indent{Left: p.IndentLeft, Hanging: p.IndentHanging}
}

// TabStops converts the paragraph's stop definitions.
func (p Paragraph) TabStops() ([]layout.Stop, error) {
	stops := make([]layout.Stop, 0, len(p.Stops))
	for i, def := range p.Stops {
		align, err := parseAlignment(def.Align)
		if err != nil {
			return nil, fmt.Errorf("stop %d: %w", i, err)
		}
		leader, err := parseLeader(def.Leader)
		if err != nil {
			return nil, fmt.Errorf("stop %d: %w", i, err)
		}
		stops = append(stops, layout.Stop{
			Position:  def.Position,
			Alignment: align,
			Leader:    leader,
		})
	}
	return stops, nil
}

// LayoutRuns converts the paragraph's run definitions.
func (p Paragraph) LayoutRuns() []layout.Run {
	runs := make([]layout.Run, 0, len(p.Runs))
	for _, def := range p.Runs {
		if def.Tab {
			runs = append(runs, layout.Tab(def.Width))
			continue
		}
		runs = append(runs, layout.Text(def.Text, def.Width))
	}
	return runs
}

// parseAlignment maps a document alignment name. Empty means start.
func parseAlignment(name string) (layout.Alignment, error) {
	switch name {
	case "", "start", "left":
		return layout.AlignStart, nil
	case "end", "right":
		return layout.AlignEnd, nil
	case "center":
		return layout.AlignCenter, nil
	case "decimal":
		return layout.AlignDecimal, nil
	case "bar":
		return layout.AlignBar, nil
	case "clear":
		return layout.AlignClear, nil
	default:
		return 0, fmt.Errorf("unknown alignment %q", name)
	}
}

// parseLeader maps a document leader name. Empty means none.
func parseLeader(name string) (layout.Leader, error) {
	switch name {
	case "", "none":
		return layout.LeaderNone, nil
	case "dot":
		return layout.LeaderDot, nil
	case "hyphen":
		return layout.LeaderHyphen, nil
	case "heavy":
		return layout.LeaderHeavy, nil
	case "underscore":
		return layout.LeaderUnderscore, nil
	case "middleDot", "middle_dot":
		return layout.LeaderMiddleDot, nil
	default:
		return 0, fmt.Errorf("unknown leader %q", name)
	}
}
