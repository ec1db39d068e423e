// Package interact is the pointer and keyboard state machine of the chart:
// tool selection, point capture for new drawings, selection and dragging.
//
// A Controller is driven from a single event loop and is not safe for
// concurrent use.
package interact

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/zenith-terminal/zenith/pkg/chart"
	"github.com/zenith-terminal/zenith/pkg/drawing"
	"github.com/zenith-terminal/zenith/pkg/scene"
	"github.com/zenith-terminal/zenith/pkg/types"
)

//go:generate callbackgen -type Controller
//go:generate mockgen -destination=mocks/mock_renderer.go -package=mocks . Renderer

var log = logrus.WithField("component", "interact")

// WheelSensitivity converts a wheel delta to a zoom exponent.
const WheelSensitivity = 0.002

type State string

const (
	StateIdle              State = "idle"
	StatePendingFirstPoint State = "pendingFirstPoint"
	StateDragging          State = "dragging"
)

// PendingPoint is the first anchor of a two-point drawing under
// construction. It never enters the collection.
type PendingPoint struct {
	Tool   Tool
	Anchor drawing.Anchor
}

type DragKind string

const (
	DragWhole DragKind = "whole"
	DragPoint DragKind = "point"
)

// DragState lives from the pointer-down on a handle or body to the next
// pointer-up or pointer-leave.
type DragState struct {
	Kind       DragKind
	DrawingID  int64
	PointIndex int

	// Start is the chart area position of the pointer-down.
	Start scene.Point

	// Original is the drawing as it was when the drag started. Whole drags
	// apply their delta to it rather than to the live drawing.
	Original drawing.Drawing
}

// Renderer receives one frame after every state transition.
type Renderer interface {
	Render(frame *scene.Frame)
}

type Controller struct {
	engine   *chart.Engine
	drawings *drawing.Collection
	renderer Renderer

	settings chart.Settings
	symbol   string
	theme    types.Theme

	tool       Tool
	pending    *PendingPoint
	drag       *DragState
	selectedID int64

	// live is the pointer anchor a pending drawing previews against
	live *drawing.Anchor

	// pointer is the crosshair position in chart area coordinates
	pointer *scene.Point
	hovered *types.Candle

	// swallowClick drops the click that the browser fires after a drag release
	swallowClick bool

	state State

	toolCompleteCallbacks    []func()
	hoverCandleCallbacks     []func(candle *types.Candle)
	symbolChangeCallbacks    []func(symbol string)
	selectionChangeCallbacks []func(id int64)
}

func New(renderer Renderer) *Controller {
	return &Controller{
		engine:   chart.NewEngine(),
		drawings: drawing.NewCollection(),
		renderer: renderer,
		settings: chart.DefaultSettings(),
		theme:    types.ThemeDark,
		tool:     ToolCursor,
		state:    StateIdle,
	}
}

func (c *Controller) Engine() *chart.Engine {
	return c.engine
}

func (c *Controller) Tool() Tool {
	return c.tool
}

func (c *Controller) Theme() types.Theme {
	return c.theme
}

func (c *Controller) Symbol() string {
	return c.symbol
}

func (c *Controller) Settings() chart.Settings {
	return c.settings
}

// State derives the machine state from the optional pending and drag fields.
func (c *Controller) State() State {
	switch {
	case c.drag != nil:
		return StateDragging
	case c.pending != nil:
		return StatePendingFirstPoint
	}
	return StateIdle
}

func (c *Controller) Pending() (PendingPoint, bool) {
	if c.pending == nil {
		return PendingPoint{}, false
	}
	return *c.pending, true
}

func (c *Controller) Drag() (DragState, bool) {
	if c.drag == nil {
		return DragState{}, false
	}
	d := *c.drag
	d.Original = d.Original.Clone()
	return d, true
}

func (c *Controller) SelectedID() int64 {
	return c.selectedID
}

// Selected returns a copy of the selected drawing.
func (c *Controller) Selected() (drawing.Drawing, bool) {
	if c.selectedID == 0 {
		return drawing.Drawing{}, false
	}
	return c.drawings.Get(c.selectedID)
}

func (c *Controller) Drawing(id int64) (drawing.Drawing, bool) {
	return c.drawings.Get(id)
}

// Drawings returns copies of every committed drawing, bottom to top.
func (c *Controller) Drawings() []drawing.Drawing {
	return c.drawings.All()
}

func (c *Controller) Hovered() *types.Candle {
	return c.hovered
}

// SetTool activates a tool. Any pending point and drag are dropped.
func (c *Controller) SetTool(tool Tool) {
	c.tool = tool
	c.pending = nil
	c.live = nil
	c.drag = nil
	c.render()
}

func (c *Controller) SetCandles(candles types.CandleSlice) {
	c.engine.SetCandles(candles)
	c.refreshHover()
	c.render()
}

// SetInterval switches the candle step; drawings follow by calendar time.
func (c *Controller) SetInterval(interval types.Interval) {
	c.engine.SetInterval(interval)
	c.render()
}

// Resize sets the container size in pixels.
func (c *Controller) Resize(width, height float64) {
	c.engine.Resize(width, height)
	c.refreshHover()
	c.render()
}

// SetTheme changes the default color of new drawings.
func (c *Controller) SetTheme(theme types.Theme) {
	c.theme = theme
	c.render()
}

// SetSettings installs chart appearance settings. Invalid settings are
// rejected and the current ones kept.
func (c *Controller) SetSettings(s chart.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	c.settings = s
	if !s.Appearance.CrosshairVisible {
		c.pointer = nil
		c.setHovered(nil)
	}
	c.render()
	return nil
}

func (c *Controller) SetSymbol(symbol string) {
	if symbol == c.symbol {
		return
	}

	c.symbol = symbol
	c.EmitSymbolChange(symbol)
	c.render()
}

// Select selects a committed drawing, or clears the selection with id 0.
func (c *Controller) Select(id int64) {
	if id != 0 {
		if _, ok := c.drawings.Get(id); !ok {
			return
		}
	}

	c.setSelected(id)
	c.render()
}

// ReplaceDrawing stores an edited copy of a committed drawing.
func (c *Controller) ReplaceDrawing(d drawing.Drawing) error {
	if err := c.drawings.Replace(d); err != nil {
		return err
	}

	c.render()
	return nil
}

// Delete removes a drawing. Deleting the selected drawing clears the
// selection.
func (c *Controller) Delete(id int64) bool {
	if !c.drawings.Remove(id) {
		return false
	}

	log.Debugf("drawing %d deleted", id)

	if c.drag != nil && c.drag.DrawingID == id {
		c.drag = nil
	}
	if c.selectedID == id {
		c.setSelected(0)
	}

	c.render()
	return true
}

func (c *Controller) DeleteSelected() bool {
	if c.selectedID == 0 {
		return false
	}
	return c.Delete(c.selectedID)
}

// ClearAll removes every drawing.
func (c *Controller) ClearAll() {
	c.drawings.Clear()
	c.drag = nil
	c.setSelected(0)
	c.render()
}

// Click handles a click at container coordinates.
func (c *Controller) Click(x, y float64) {
	if c.swallowClick {
		c.swallowClick = false
		return
	}

	if c.drag != nil || !c.engine.Ready() {
		return
	}

	cx, cy := c.engine.ToChart(x, y)
	if !c.engine.Contains(cx, cy) {
		return
	}

	// an active drawing tool always places points, even over a drawing
	if t, ok := c.tool.DrawingType(); ok {
		c.place(t, c.anchorAt(cx, cy))
		c.render()
		return
	}

	if hit, ok := drawing.HitTest(c.geometries(), cx, cy); ok {
		c.setSelected(hit.DrawingID)
	} else {
		c.setSelected(0)
	}

	c.render()
}

func (c *Controller) place(t drawing.Type, a drawing.Anchor) {
	if t.IsTwoPoint() && c.pending == nil {
		c.pending = &PendingPoint{Tool: c.tool, Anchor: a}
		c.live = &drawing.Anchor{Time: a.Time, Price: a.Price}
		return
	}

	first := a
	var second *drawing.Anchor
	if t.IsTwoPoint() {
		first = c.pending.Anchor
		second = &a
	}

	c.pending = nil
	c.live = nil

	d, err := c.drawings.Add(drawing.New(t, first, second, c.theme))
	if err != nil {
		log.WithError(err).Warnf("unable to commit %s", t)
		return
	}

	log.Debugf("drawing committed: %s", d)
	c.EmitToolComplete()
}

// PointerDown starts a drag on a handle or the body of the selected
// drawing when the cursor tool is active. Locked or unselected drawings do
// not drag; the click that follows selects them.
func (c *Controller) PointerDown(x, y float64) {
	c.swallowClick = false

	if !c.tool.IsCursor() || c.drag != nil || !c.engine.Ready() {
		return
	}

	cx, cy := c.engine.ToChart(x, y)
	hit, ok := drawing.HitTest(c.geometries(), cx, cy)
	if !ok {
		return
	}

	d, ok := c.drawings.Get(hit.DrawingID)
	if !ok || d.Locked || d.ID != c.SelectedID() {
		return
	}

	c.drag = &DragState{
		Kind:      DragWhole,
		DrawingID: d.ID,
		Start:     scene.Point{X: cx, Y: cy},
		Original:  d,
	}

	if hit.Kind == drawing.HitHandle {
		c.drag.Kind = DragPoint
		c.drag.PointIndex = hit.PointIndex
	}

	c.render()
}

// PointerMove updates the drag, or the crosshair, hovered candle and
// preview when nothing is dragged.
func (c *Controller) PointerMove(x, y float64) {
	if !c.engine.Ready() {
		return
	}

	cx, cy := c.engine.ToChart(x, y)
	if c.drag != nil {
		c.moveDrag(cx, cy)
		c.render()
		return
	}

	if c.pending != nil {
		c.live = &drawing.Anchor{Time: c.engine.PixelToTime(cx), Price: c.engine.PixelToPriceY(cy)}
	}

	if c.settings.Appearance.CrosshairVisible && c.engine.Contains(cx, cy) {
		c.pointer = &scene.Point{X: cx, Y: cy}
	} else {
		c.pointer = nil
	}

	c.refreshHover()
	c.render()
}

func (c *Controller) moveDrag(cx, cy float64) {
	drag := c.drag

	err := c.drawings.Update(drag.DrawingID, func(d *drawing.Drawing) {
		if d.Locked {
			return
		}

		switch drag.Kind {
		case DragPoint:
			d.SetAnchor(drag.PointIndex, drawing.Anchor{
				Time:  c.engine.ClampedPixelToTime(cx),
				Price: c.engine.PixelToPriceY(cy),
			})

		case DragWhole:
			startIdx := math.Round(c.engine.PixelToIndexX(drag.Start.X))
			idx := math.Round(c.engine.PixelToIndexX(cx))
			dt := int64(idx-startIdx) * c.engine.Step()
			dp := c.engine.PixelToPriceY(cy) - c.engine.PixelToPriceY(drag.Start.Y)

			moved := drag.Original.Clone()
			for i, a := range moved.Anchors() {
				moved.SetAnchor(i+1, drawing.Anchor{Time: a.Time + dt, Price: a.Price + dp})
			}

			d.First, d.Second = moved.First, moved.Second
		}
	})

	if err != nil {
		log.WithError(err).Warnf("drag of drawing %d rejected", drag.DrawingID)
	}
}

// PointerUp commits the drag at its last position.
func (c *Controller) PointerUp(x, y float64) {
	if c.drag == nil {
		return
	}

	c.endDrag(true)
	c.render()
}

// PointerLeave commits any drag and hides the crosshair.
func (c *Controller) PointerLeave() {
	if c.drag != nil {
		c.endDrag(false)
	}

	c.pointer = nil
	c.setHovered(nil)
	c.render()
}

func (c *Controller) endDrag(release bool) {
	drag := c.drag
	c.drag = nil

	d, ok := c.drawings.Get(drag.DrawingID)
	if !ok {
		return
	}

	// only a drag that moved something owns the click that follows
	if release && !d.SameGeometry(drag.Original) {
		c.swallowClick = true
	}

	log.Debugf("drag committed: %s", d)
}

// Wheel zooms around the pointer. It reports whether the gesture was
// applied.
func (c *Controller) Wheel(x, y, deltaY float64) bool {
	cx, cy := c.engine.ToChart(x, y)
	if !c.gestureAllowed(cx, cy) {
		return false
	}

	c.engine.ZoomAt(math.Pow(2, -deltaY*WheelSensitivity), cx)
	c.render()
	return true
}

// Pan shifts the viewport by dx pixels for a gesture that started at (x, y).
func (c *Controller) Pan(x, y, dx float64) bool {
	cx, cy := c.engine.ToChart(x, y)
	if !c.gestureAllowed(cx, cy) {
		return false
	}

	c.engine.Pan(dx)
	c.render()
	return true
}

func (c *Controller) ResetZoom() {
	c.engine.ResetZoom()
	c.render()
}

// gestureAllowed keeps zoom and pan apart from drawing interaction.
func (c *Controller) gestureAllowed(cx, cy float64) bool {
	if c.drag != nil || !c.tool.IsCursor() || !c.engine.Ready() {
		return false
	}

	_, onDrawing := drawing.HitTest(c.geometries(), cx, cy)
	return !onDrawing
}

// Key handles a keyboard key by its DOM name.
func (c *Controller) Key(key string) bool {
	switch key {
	case "Delete", "Backspace":
		return c.DeleteSelected()

	case "Escape":
		if c.pending == nil && c.selectedID == 0 {
			return false
		}

		c.pending = nil
		c.live = nil
		c.setSelected(0)
		c.render()
		return true
	}

	return false
}

func (c *Controller) anchorAt(cx, cy float64) drawing.Anchor {
	return drawing.Anchor{Time: c.engine.PixelToTime(cx), Price: c.engine.PixelToPriceY(cy)}
}

func (c *Controller) setSelected(id int64) {
	if id == c.selectedID {
		return
	}

	c.selectedID = id
	c.EmitSelectionChange(id)
}

func (c *Controller) refreshHover() {
	if c.pointer == nil || !c.engine.Ready() {
		c.setHovered(nil)
		return
	}

	candle, ok := c.engine.CandleAt(c.pointer.X)
	if !ok {
		c.setHovered(nil)
		return
	}

	c.setHovered(&candle)
}

func (c *Controller) setHovered(candle *types.Candle) {
	if candle == nil && c.hovered == nil {
		return
	}
	if candle != nil && c.hovered != nil && *candle == *c.hovered {
		return
	}

	c.hovered = candle
	c.EmitHoverCandle(candle)
}

func (c *Controller) options() drawing.Options {
	return drawing.Options{Theme: c.theme, TextColor: c.settings.Scales.TextColor}
}

func (c *Controller) geometries() []drawing.Geometry {
	return drawing.ProjectAll(c.drawings.All(), c.engine, c.selectedID, c.options())
}

// Frame composes the current chart state.
func (c *Controller) Frame() *scene.Frame {
	overlay := chart.Overlay{Pointer: c.pointer, Hovered: c.hovered}

	if c.engine.Ready() {
		for _, g := range c.geometries() {
			overlay.Drawings = append(overlay.Drawings, g.Group)
		}

		if c.pending != nil && c.live != nil {
			if t, ok := c.pending.Tool.DrawingType(); ok {
				preview := drawing.Preview(t, c.pending.Anchor, *c.live, c.engine, c.settings.Scales.TextColor)
				if !preview.IsEmpty() {
					overlay.Preview = append(overlay.Preview, preview)
				}
			}
		}
	}

	return chart.Compose(c.engine, c.symbol, c.settings, overlay)
}

func (c *Controller) render() {
	if s := c.State(); s != c.state {
		log.Debugf("transiting state from %s -> %s", c.state, s)
		c.state = s
	}

	if c.renderer == nil {
		return
	}

	c.renderer.Render(c.Frame())
}
