package scene

import (
	"io"
	"math"

	"github.com/pkg/errors"
	"github.com/wcharczuk/go-chart/v2"
)

// Paint draws the frame onto a go-chart renderer, e.g. one created by
// chart.SVG or chart.PNG with the frame's dimensions.
func Paint(f *Frame, r chart.Renderer) error {
	font, err := chart.GetDefaultFont()
	if err != nil {
		return errors.Wrap(err, "unable to load the default font")
	}

	if !f.Background.FillColor.IsZero() {
		chart.Draw.Box(r, chart.Box{
			Top:    0,
			Left:   0,
			Right:  px(f.Width),
			Bottom: px(f.Height),
		}, f.Background)
	}

	p := painter{r: r, font: chart.Style{Font: font}, ox: f.Origin.X, oy: f.Origin.Y}
	for _, layer := range f.Layers {
		for _, g := range layer.Groups {
			if g.Hidden {
				continue
			}
			p.group(g)
		}
	}

	return nil
}

type painter struct {
	r chart.Renderer

	// font carries the default font
	font   chart.Style
	ox, oy float64
}

func px(v float64) int {
	return int(math.Round(v))
}

func (p *painter) x(v float64) int {
	return px(v + p.ox)
}

func (p *painter) y(v float64) int {
	return px(v + p.oy)
}

func (p *painter) group(g Group) {
	for _, rc := range g.Rects {
		p.rect(rc)
	}
	for _, pg := range g.Polygons {
		p.polygon(pg)
	}
	for _, l := range g.Lines {
		p.line(l)
	}
	for _, c := range g.Circles {
		p.circle(c)
	}
	for _, t := range g.Texts {
		p.text(t)
	}
}

func (p *painter) rect(rc Rect) {
	if !rc.Style.ShouldDrawFill() && !rc.Style.ShouldDrawStroke() {
		return
	}

	chart.Draw.Box(p.r, chart.Box{
		Top:    p.y(rc.Y),
		Left:   p.x(rc.X),
		Right:  p.x(rc.X + rc.W),
		Bottom: p.y(rc.Y + rc.H),
	}, rc.Style)
}

func (p *painter) polygon(pg Polygon) {
	if len(pg.Points) < 3 {
		return
	}

	pg.Style.GetFillAndStrokeOptions().WriteDrawingOptionsToRenderer(p.r)
	defer p.r.ResetStyle()

	p.r.MoveTo(p.x(pg.Points[0].X), p.y(pg.Points[0].Y))
	for _, pt := range pg.Points[1:] {
		p.r.LineTo(p.x(pt.X), p.y(pt.Y))
	}
	p.r.Close()
	p.r.FillStroke()
}

func (p *painter) line(l Line) {
	if !l.Style.ShouldDrawStroke() {
		return
	}

	l.Style.GetStrokeOptions().WriteDrawingOptionsToRenderer(p.r)
	defer p.r.ResetStyle()

	p.r.MoveTo(p.x(l.X1), p.y(l.Y1))
	p.r.LineTo(p.x(l.X2), p.y(l.Y2))
	p.r.Stroke()
}

func (p *painter) circle(c Circle) {
	c.Style.GetFillAndStrokeOptions().WriteDrawingOptionsToRenderer(p.r)
	defer p.r.ResetStyle()

	p.r.Circle(c.R, p.x(c.CX), p.y(c.CY))
	p.r.FillStroke()
}

func (p *painter) text(t Text) {
	if t.Body == "" || t.Style.FontColor.IsZero() {
		return
	}

	style := t.Style
	if style.Font == nil {
		style.Font = p.font.Font
	}

	x := p.x(t.X)
	switch t.Anchor {
	case AnchorMiddle:
		x -= chart.Draw.MeasureText(p.r, t.Body, style).Width() / 2
	case AnchorEnd:
		x -= chart.Draw.MeasureText(p.r, t.Body, style).Width()
	}

	chart.Draw.Text(p.r, t.Body, x, p.y(t.Y), style)
}

// Save paints the frame onto a renderer created by provider, e.g. chart.SVG
// or chart.PNG, and writes the result to w.
func Save(f *Frame, provider chart.RendererProvider, w io.Writer) error {
	r, err := provider(px(f.Width), px(f.Height))
	if err != nil {
		return errors.Wrap(err, "unable to create renderer")
	}

	if err := Paint(f, r); err != nil {
		return err
	}

	return r.Save(w)
}
