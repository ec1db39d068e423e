package drawing

import (
	"fmt"
	"math"
	"strconv"

	"github.com/zenith-terminal/zenith/pkg/scene"
	"github.com/zenith-terminal/zenith/pkg/types"
)

const (
	SelectionColor = "#2962ff"
	SelectionWidth = 2.5

	HandleRadius = 5.0

	LockedOpacity = 0.4

	UpColor   = "#26a69a"
	DownColor = "#ef5350"

	statsOffset     = 15.0
	arrowHeadLength = 10.0
	arrowHeadWidth  = 5.0
	fibLabelGap     = 5.0
)

// Projector maps stored anchors to chart area pixels.
type Projector interface {
	ChartWidth() float64
	ChartHeight() float64
	TimeToPixelX(t int64) float64
	PriceToPixelY(p float64) float64
}

// Options carries the view state a projection depends on.
type Options struct {
	Selected  bool
	Theme     types.Theme
	TextColor string
}

// Handle is a draggable control point at a defining anchor.
type Handle struct {
	Index int     `json:"index"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Geometry is the projected form of one drawing: what to paint and where it
// can be grabbed.
type Geometry struct {
	ID    int64       `json:"id"`
	Group scene.Group `json:"group"`

	// Handles are only present while the drawing is selected and unlocked.
	Handles []Handle `json:"handles,omitempty"`

	// Segments and Boxes are the body hit regions.
	Segments []scene.Line `json:"segments,omitempty"`
	Boxes    []scene.Rect `json:"boxes,omitempty"`
}

func (g *Geometry) IsEmpty() bool {
	return g.Group.IsEmpty()
}

type segment struct {
	x1, y1, x2, y2 float64
}

// Project turns a drawing into screen geometry. It never modifies d.
func Project(d Drawing, p Projector, o Options) Geometry {
	g := Geometry{
		ID:    d.ID,
		Group: scene.Group{Key: strconv.FormatInt(d.ID, 10)},
	}

	switch d.Type {
	case TypeTrendline, TypeRay, TypeArrow:
		projectTrendline(&g, d, p, o)
	case TypeHorizontalLine:
		projectHorizontalLine(&g, d, p, o)
	case TypeVerticalLine:
		projectVerticalLine(&g, d, p, o)
	case TypeRectangle:
		projectRectangle(&g, d, p, o)
	case TypeFibonacci:
		projectFibonacci(&g, d, p, o)
	case TypePriceRange:
		projectPriceRange(&g, d, p, o)
	}

	if o.Selected && !d.Locked && !g.IsEmpty() {
		addHandles(&g, d, p)
	}

	return g
}

// ProjectAll projects every drawing bottom to top.
func ProjectAll(drawings []Drawing, p Projector, selectedID int64, o Options) []Geometry {
	out := make([]Geometry, 0, len(drawings))
	for _, d := range drawings {
		opts := o
		opts.Selected = d.ID == selectedID
		out = append(out, Project(d, p, opts))
	}
	return out
}

func strokeColor(d Drawing, o Options) string {
	if o.Selected {
		return SelectionColor
	}
	return d.Color
}

func strokeWidth(d Drawing, o Options) float64 {
	if o.Selected {
		return math.Max(float64(d.Width), SelectionWidth)
	}
	return float64(d.Width)
}

func lineOpacity(d Drawing) float64 {
	if d.Locked {
		return LockedOpacity
	}
	return float64(d.Opacity) / 100
}

func lineStyle(d Drawing, o Options) scene.Line {
	return scene.Line{
		Style: scene.Stroke(strokeColor(d, o), strokeWidth(d, o), lineOpacity(d), d.Style.DashArray()),
	}
}

func (s segment) line(style scene.Line) scene.Line {
	style.X1, style.Y1, style.X2, style.Y2 = s.x1, s.y1, s.x2, s.y2
	return style
}

func anchorPixel(a Anchor, p Projector) (float64, float64) {
	return p.TimeToPixelX(a.Time), p.PriceToPixelY(a.Price)
}

// extendSegment applies ray/extend rules to a segment. Vertical segments
// have no slope; extending one spans the full chart height instead.
func extendSegment(s segment, left, right bool, width, height float64) segment {
	if !left && !right {
		return s
	}

	dx := s.x2 - s.x1
	if math.Abs(dx) < 1e-9 {
		return segment{x1: s.x1, y1: 0, x2: s.x1, y2: height}
	}

	slope := (s.y2 - s.y1) / dx
	if right {
		s.x2 = width
		s.y2 = s.y1 + slope*(s.x2-s.x1)
	}
	if left {
		oldX1 := s.x1
		s.x1 = 0
		s.y1 = s.y1 + slope*(s.x1-oldX1)
	}
	return s
}

func projectTrendline(g *Geometry, d Drawing, p Projector, o Options) {
	if d.Second == nil {
		return
	}

	x1, y1 := anchorPixel(d.First, p)
	x2, y2 := anchorPixel(*d.Second, p)

	right := d.Type == TypeRay || d.ExtendRight
	s := extendSegment(segment{x1, y1, x2, y2}, d.ExtendLeft, right, p.ChartWidth(), p.ChartHeight())

	line := s.line(lineStyle(d, o))
	g.Group.AddLine(line)
	g.Segments = append(g.Segments, line)

	if d.Type == TypeArrow {
		if head, ok := arrowHead(s); ok {
			head.Style = scene.Fill(strokeColor(d, o), lineOpacity(d))
			g.Group.AddPolygon(head)
		}
	}

	if d.Type == TypeTrendline && d.ShowStats && !d.ExtendLeft && !d.ExtendRight {
		addTrendlineStats(g, s, d.First.Price, d.Second.Price, o.Theme)
	}
}

// arrowHead returns the marker at the terminal point of s, pointing away
// from the start.
func arrowHead(s segment) (scene.Polygon, bool) {
	dx, dy := s.x2-s.x1, s.y2-s.y1
	length := math.Hypot(dx, dy)
	if length == 0 {
		return scene.Polygon{}, false
	}

	ux, uy := dx/length, dy/length
	bx, by := s.x2-ux*arrowHeadLength, s.y2-uy*arrowHeadLength
	return scene.Polygon{Points: []scene.Point{
		{X: s.x2, Y: s.y2},
		{X: bx - uy*arrowHeadWidth, Y: by + ux*arrowHeadWidth},
		{X: bx + uy*arrowHeadWidth, Y: by - ux*arrowHeadWidth},
	}}, true
}

// PriceDelta returns the absolute and percentage change from p1 to p2.
func PriceDelta(p1, p2 float64) (diff, percent float64) {
	diff = p2 - p1
	if p1 != 0 {
		percent = diff / p1 * 100
	}
	return diff, percent
}

func directionColor(diff float64) string {
	if diff >= 0 {
		return UpColor
	}
	return DownColor
}

func addTrendlineStats(g *Geometry, s segment, p1, p2 float64, theme types.Theme) {
	diff, percent := PriceDelta(p1, p2)
	mx, my := (s.x1+s.x2)/2, (s.y1+s.y2)/2-statsOffset

	fill, border := "#f3f4f6", "#e5e7eb"
	if theme.IsDark() {
		fill, border = "#1e222d", "#2d3436"
	}

	g.Group.AddRect(scene.Rect{X: mx - 35, Y: my - 10, W: 70, H: 20, Style: scene.FillStroke(fill, 1, border, 1, 1)})
	g.Group.AddText(scene.Text{
		X:      mx,
		Y:      my + 4,
		Body:   fmt.Sprintf("%.2f (%.2f%%)", diff, percent),
		Anchor: scene.AnchorMiddle,
		Style:  scene.Font(directionColor(diff), 10, 1),
	})
}

func projectHorizontalLine(g *Geometry, d Drawing, p Projector, o Options) {
	y := p.PriceToPixelY(d.First.Price)
	line := segment{0, y, p.ChartWidth(), y}.line(lineStyle(d, o))
	g.Group.AddLine(line)
	g.Segments = append(g.Segments, line)
}

func projectVerticalLine(g *Geometry, d Drawing, p Projector, o Options) {
	x := p.TimeToPixelX(d.First.Time)
	line := segment{x, 0, x, p.ChartHeight()}.line(lineStyle(d, o))
	g.Group.AddLine(line)
	g.Segments = append(g.Segments, line)
}

func projectRectangle(g *Geometry, d Drawing, p Projector, o Options) {
	if d.Second == nil {
		return
	}

	x1, y1 := anchorPixel(d.First, p)
	x2, y2 := anchorPixel(*d.Second, p)

	// extends clamp the edge belonging to each side of the box
	left, right := math.Min(x1, x2), math.Max(x1, x2)
	if d.ExtendLeft {
		left = 0
	}
	if d.ExtendRight {
		right = p.ChartWidth()
	}

	style := scene.Stroke(strokeColor(d, o), strokeWidth(d, o), lineOpacity(d), d.Style.DashArray())
	style.FillColor = scene.Color(d.Color, 0.1)

	box := scene.Rect{
		X:     left,
		Y:     math.Min(y1, y2),
		W:     math.Max(0, right-left),
		H:     math.Abs(y2 - y1),
		Style: style,
	}
	g.Group.AddRect(box)
	g.Boxes = append(g.Boxes, box)
}

// FibLevelY returns the pixel y of a retracement ratio between y1 and y2.
func FibLevelY(y1, y2, ratio float64) float64 {
	return y1 + (y2-y1)*ratio
}

func projectFibonacci(g *Geometry, d Drawing, p Projector, o Options) {
	if d.Second == nil {
		return
	}

	x1, y1 := anchorPixel(d.First, p)
	x2, y2 := anchorPixel(*d.Second, p)
	settings := fibSettingsOf(d)

	extendLeft := settings.ExtendLeft || d.ExtendLeft
	extendRight := settings.ExtendRight || d.ExtendRight

	minX, maxX := math.Min(x1, x2), math.Max(x1, x2)
	if extendLeft {
		minX = 0
	}
	if extendRight {
		maxX = p.ChartWidth()
	}

	box := scene.Rect{X: minX, Y: math.Min(y1, y2), W: maxX - minX, H: math.Abs(y2 - y1)}
	g.Boxes = append(g.Boxes, box)

	if settings.ShowBackground {
		bg := box
		bg.Style = scene.Fill(d.Color, 0.05)
		g.Group.AddRect(bg)
	}

	opacity := lineOpacity(d)
	for _, lvl := range settings.Levels {
		if !lvl.Visible {
			continue
		}

		color := lvl.Color
		if o.Selected {
			color = SelectionColor
		}

		ly := FibLevelY(y1, y2, lvl.Level)
		g.Group.AddLine(scene.Line{X1: minX, Y1: ly, X2: maxX, Y2: ly, Style: scene.Stroke(color, 1, opacity, nil)})

		if !extendRight {
			price := d.First.Price + (d.Second.Price-d.First.Price)*lvl.Level
			g.Group.AddText(scene.Text{
				X:     maxX + fibLabelGap,
				Y:     ly + 3,
				Body:  fmt.Sprintf("%.1f%% (%.2f)", lvl.Level*100, price),
				Style: scene.Font(o.TextColor, 9, 1),
			})
		}
	}
}

func projectPriceRange(g *Geometry, d Drawing, p Projector, o Options) {
	if d.Second == nil {
		return
	}

	x1, y1 := anchorPixel(d.First, p)
	x2, y2 := anchorPixel(*d.Second, p)
	diff, percent := PriceDelta(d.First.Price, d.Second.Price)
	color := directionColor(diff)

	stroke, width := color, 1.0
	if o.Selected {
		stroke, width = SelectionColor, SelectionWidth
	}

	box := scene.Rect{
		X:     math.Min(x1, x2),
		Y:     math.Min(y1, y2),
		W:     math.Abs(x2 - x1),
		H:     math.Abs(y2 - y1),
		Style: scene.FillStroke(color, float64(d.Opacity)/400, stroke, width, 1),
	}
	g.Group.AddRect(box)
	g.Boxes = append(g.Boxes, box)

	mx, my := (x1+x2)/2, (y1+y2)/2
	g.Group.AddRect(scene.Rect{X: mx - 40, Y: my - 12, W: 80, H: 24, Style: scene.Fill(color, 1)})
	g.Group.AddText(scene.Text{
		X:      mx,
		Y:      my - 2,
		Body:   fmt.Sprintf("%.2f", diff),
		Anchor: scene.AnchorMiddle,
		Style:  scene.Font("#ffffff", 10, 1),
	})
	g.Group.AddText(scene.Text{
		X:      mx,
		Y:      my + 8,
		Body:   fmt.Sprintf("%.2f%%", percent),
		Anchor: scene.AnchorMiddle,
		Style:  scene.Font("#ffffff", 9, 1),
	})
}

// addHandles places a handle at each defining anchor, unextended.
func addHandles(g *Geometry, d Drawing, p Projector) {
	for i, a := range d.Anchors() {
		x, y := anchorPixel(a, p)
		g.Handles = append(g.Handles, Handle{Index: i + 1, X: x, Y: y})
		g.Group.AddCircle(scene.Circle{
			CX:    x,
			CY:    y,
			R:     HandleRadius,
			Style: scene.FillStroke("#ffffff", 1, SelectionColor, 2, 1),
		})
	}
}
