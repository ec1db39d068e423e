package scene

import (
	"math"
	"regexp"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var hexColorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// IsHexColor accepts #rgb and #rrggbb colors.
func IsHexColor(s string) bool {
	return hexColorPattern.MatchString(s)
}

// Color parses a hex color with the given opacity in [0, 1].
// Invalid colors yield the zero color, which renderers skip.
func Color(hex string, opacity float64) drawing.Color {
	if !IsHexColor(hex) {
		return drawing.Color{}
	}

	opacity = math.Max(0, math.Min(1, opacity))
	return drawing.ColorFromHex(hex).WithAlpha(uint8(math.Round(opacity * 255)))
}

func Stroke(hex string, width, opacity float64, dash []float64) chart.Style {
	return chart.Style{
		StrokeColor:     Color(hex, opacity),
		StrokeWidth:     width,
		StrokeDashArray: dash,
	}
}

func Fill(hex string, opacity float64) chart.Style {
	return chart.Style{
		FillColor: Color(hex, opacity),
	}
}

func FillStroke(fill string, fillOpacity float64, stroke string, width, strokeOpacity float64) chart.Style {
	return chart.Style{
		FillColor:   Color(fill, fillOpacity),
		StrokeColor: Color(stroke, strokeOpacity),
		StrokeWidth: width,
	}
}

func Font(hex string, size, opacity float64) chart.Style {
	return chart.Style{
		FontColor: Color(hex, opacity),
		FontSize:  size,
	}
}
