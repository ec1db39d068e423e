package drawing

import (
	"github.com/zenith-terminal/zenith/pkg/types"
)

const (
	DefaultWidth   = 2
	DefaultOpacity = 100
)

// FibRatios are the fixed retracement ratios, in drawing order.
var FibRatios = []float64{0, 0.236, 0.382, 0.5, 0.618, 0.786, 1}

var fibPalette = []string{
	"#999999",
	"#f44336",
	"#4caf50",
	"#2196f3",
	"#4caf50",
	"#9c27b0",
	"#999999",
}

// DefaultColor is the stroke color of new drawings for the host theme.
func DefaultColor(theme types.Theme) string {
	if theme.IsDark() {
		return "#b2b5be"
	}
	return "#2a2e39"
}

// DefaultFibSettings returns the standard palette with every level visible.
func DefaultFibSettings() *FibSettings {
	s := &FibSettings{ShowBackground: true}
	for i, r := range FibRatios {
		s.Levels = append(s.Levels, FibLevel{Level: r, Color: fibPalette[i], Visible: true})
	}
	return s
}

// fibSettingsOf returns the drawing's level settings, falling back to every
// level in the drawing color.
func fibSettingsOf(d Drawing) FibSettings {
	if d.FibSettings != nil {
		return *d.FibSettings
	}

	s := FibSettings{ShowBackground: true}
	for _, r := range FibRatios {
		s.Levels = append(s.Levels, FibLevel{Level: r, Color: d.Color, Visible: true})
	}
	return s
}

// New builds a drawing with the default style for the theme. Fibonacci
// drawings get the default level palette.
func New(t Type, first Anchor, second *Anchor, theme types.Theme) Drawing {
	d := Drawing{
		Type:    t,
		First:   first,
		Color:   DefaultColor(theme),
		Width:   DefaultWidth,
		Style:   LineStyleSolid,
		Opacity: DefaultOpacity,
	}

	if second != nil && t.IsTwoPoint() {
		s := *second
		d.Second = &s
	}

	if t == TypeFibonacci {
		d.FibSettings = DefaultFibSettings()
	}

	return d
}
