package measure

import "testing"

func TestFixed(t *testing.T) {
	f := Fixed(12)

	tests := []struct {
		name string
		text string
		want float64
	}{
		{"empty", "", 0},
		{"ascii", "total", 60},
		{"multibyte runes count once", "naïve", 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f(tt.text); got != tt.want {
				t.Errorf("Fixed(12)(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestMonospace(t *testing.T) {
	f := Monospace(10)

	tests := []struct {
		name string
		text string
		want float64
	}{
		{"empty", "", 0},
		{"ascii", "tab", 30},
		{"wide characters take two cells", "漢字", 40},
		{"combining marks merge into one cell", "é", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f(tt.text); got != tt.want {
				t.Errorf("Monospace(10)(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
