package drawing

import (
	"fmt"
	"math"

	"github.com/zenith-terminal/zenith/pkg/scene"
)

var previewDash = []float64{4, 4}
var previewFibDash = []float64{2, 2}

// Preview renders the semi-transparent shape of a two point drawing that is
// still being placed: from the pending anchor to the live pointer anchor.
func Preview(t Type, pending, live Anchor, p Projector, textColor string) scene.Group {
	g := scene.Group{Key: "preview"}
	if !t.IsTwoPoint() {
		return g
	}

	x1, y1 := anchorPixel(pending, p)
	x2, y2 := anchorPixel(live, p)

	box := scene.Rect{
		X: math.Min(x1, x2),
		Y: math.Min(y1, y2),
		W: math.Abs(x2 - x1),
		H: math.Abs(y2 - y1),
	}

	switch t {
	case TypeFibonacci:
		for _, r := range FibRatios {
			ly := FibLevelY(y1, y2, r)
			g.AddLine(scene.Line{
				X1:    box.X,
				Y1:    ly,
				X2:    box.X + box.W,
				Y2:    ly,
				Style: scene.Stroke(SelectionColor, 1, 0.5, previewFibDash),
			})
		}

	case TypeRectangle:
		box.Style = scene.FillStroke(SelectionColor, 0.2, SelectionColor, 1, 0.2)
		g.AddRect(box)

	case TypePriceRange:
		diff, percent := PriceDelta(pending.Price, live.Price)
		box.Style = scene.Fill(directionColor(diff), 0.2)
		g.AddRect(box)
		g.AddText(scene.Text{
			X:      (x1 + x2) / 2,
			Y:      box.Y - 5,
			Body:   fmt.Sprintf("%.2f (%.2f%%)", diff, percent),
			Anchor: scene.AnchorMiddle,
			Style:  scene.Font(textColor, 10, 1),
		})

	default:
		g.AddLine(scene.Line{
			X1:    x1,
			Y1:    y1,
			X2:    x2,
			Y2:    y2,
			Style: scene.Stroke(SelectionColor, 1.5, 0.7, previewDash),
		})
	}

	return g
}
