// Package scene holds the renderer-agnostic output of a chart frame:
// positioned primitives styled with go-chart styles.
package scene

import (
	"github.com/wcharczuk/go-chart/v2"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Line struct {
	X1    float64     `json:"x1"`
	Y1    float64     `json:"y1"`
	X2    float64     `json:"x2"`
	Y2    float64     `json:"y2"`
	Style chart.Style `json:"-"`
}

type Rect struct {
	X     float64     `json:"x"`
	Y     float64     `json:"y"`
	W     float64     `json:"w"`
	H     float64     `json:"h"`
	Style chart.Style `json:"-"`
}

// Contains reports whether (x, y) is inside the rect, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

type Circle struct {
	CX    float64     `json:"cx"`
	CY    float64     `json:"cy"`
	R     float64     `json:"r"`
	Style chart.Style `json:"-"`
}

type Polygon struct {
	Points []Point     `json:"points"`
	Style  chart.Style `json:"-"`
}

type TextAnchor int

const (
	AnchorStart TextAnchor = iota
	AnchorMiddle
	AnchorEnd
)

type Text struct {
	X      float64     `json:"x"`
	Y      float64     `json:"y"`
	Body   string      `json:"body"`
	Anchor TextAnchor  `json:"anchor"`
	Style  chart.Style `json:"-"`
}

// Group is a keyed bundle of primitives. Primitives are painted in field
// order: rects, polygons, lines, circles, texts.
type Group struct {
	Key    string `json:"key"`
	Hidden bool   `json:"hidden,omitempty"`

	Rects    []Rect    `json:"rects,omitempty"`
	Polygons []Polygon `json:"polygons,omitempty"`
	Lines    []Line    `json:"lines,omitempty"`
	Circles  []Circle  `json:"circles,omitempty"`
	Texts    []Text    `json:"texts,omitempty"`
}

func (g *Group) AddLine(l Line) {
	g.Lines = append(g.Lines, l)
}

func (g *Group) AddRect(r Rect) {
	g.Rects = append(g.Rects, r)
}

func (g *Group) AddCircle(c Circle) {
	g.Circles = append(g.Circles, c)
}

func (g *Group) AddPolygon(p Polygon) {
	g.Polygons = append(g.Polygons, p)
}

func (g *Group) AddText(t Text) {
	g.Texts = append(g.Texts, t)
}

func (g Group) IsEmpty() bool {
	return len(g.Rects) == 0 && len(g.Polygons) == 0 && len(g.Lines) == 0 && len(g.Circles) == 0 && len(g.Texts) == 0
}

type LayerName string

const (
	LayerGrid      LayerName = "grid"
	LayerWatermark LayerName = "watermark"
	LayerCandles   LayerName = "candles"
	LayerDrawings  LayerName = "drawings"
	LayerPreview   LayerName = "preview"
	LayerAxes      LayerName = "axes"
	LayerCrosshair LayerName = "crosshair"
	LayerLegend    LayerName = "legend"
)

type Layer struct {
	Name   LayerName `json:"name"`
	Groups []Group   `json:"groups"`
}

// Frame is one rendered chart state. All primitive coordinates are relative
// to the chart area whose top-left corner sits at Origin inside the
// Width x Height container.
type Frame struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Origin     Point   `json:"origin"`
	AreaWidth  float64 `json:"areaWidth"`
	AreaHeight float64 `json:"areaHeight"`

	Background chart.Style `json:"-"`

	Layers []Layer `json:"layers"`
}

func (f *Frame) IsEmpty() bool {
	return len(f.Layers) == 0
}

func (f *Frame) AddLayer(name LayerName, groups ...Group) {
	f.Layers = append(f.Layers, Layer{Name: name, Groups: groups})
}

// Layer returns the named layer, or nil when the frame does not have one.
func (f *Frame) Layer(name LayerName) *Layer {
	for i := range f.Layers {
		if f.Layers[i].Name == name {
			return &f.Layers[i]
		}
	}
	return nil
}
