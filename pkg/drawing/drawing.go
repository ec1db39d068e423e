// Package drawing holds the chart annotation model: the Drawing entity, its
// ordered collection and the per-type projection of stored (time, price)
// anchors to screen geometry.
package drawing

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/fatih/camelcase"
	"go.uber.org/multierr"

	"github.com/zenith-terminal/zenith/pkg/scene"
)

type Type string

const (
	TypeTrendline      Type = "trendline"
	TypeRay            Type = "ray"
	TypeArrow          Type = "arrow"
	TypeHorizontalLine Type = "horizontalLine"
	TypeVerticalLine   Type = "verticalLine"
	TypeRectangle      Type = "rectangle"
	TypeFibonacci      Type = "fibonacci"
	TypePriceRange     Type = "priceRange"
)

// Types lists every drawing type in toolbar order.
var Types = []Type{
	TypeTrendline,
	TypeRay,
	TypeArrow,
	TypeHorizontalLine,
	TypeVerticalLine,
	TypeRectangle,
	TypeFibonacci,
	TypePriceRange,
}

func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.IsValid() {
		return t, fmt.Errorf("unknown drawing type %q", s)
	}
	return t, nil
}

func (t Type) IsValid() bool {
	for _, a := range Types {
		if a == t {
			return true
		}
	}
	return false
}

// IsTwoPoint reports whether the type needs a second anchor to be complete.
func (t Type) IsTwoPoint() bool {
	switch t {
	case TypeHorizontalLine, TypeVerticalLine:
		return false
	}
	return t.IsValid()
}

// SupportsExtend reports whether extendLeft / extendRight apply to the type.
func (t Type) SupportsExtend() bool {
	switch t {
	case TypeTrendline, TypeRay, TypeArrow, TypeRectangle, TypeFibonacci:
		return true
	}
	return false
}

// Label returns a human readable name, e.g. "Horizontal Line".
func (t Type) Label() string {
	words := camelcase.Split(string(t))
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func (t Type) String() string {
	return string(t)
}

type LineStyle string

const (
	LineStyleSolid  LineStyle = "solid"
	LineStyleDashed LineStyle = "dashed"
	LineStyleDotted LineStyle = "dotted"
)

func (s LineStyle) IsValid() bool {
	switch s {
	case LineStyleSolid, LineStyleDashed, LineStyleDotted:
		return true
	}
	return false
}

// DashArray returns the stroke dash pattern of the style, nil for solid.
func (s LineStyle) DashArray() []float64 {
	switch s {
	case LineStyleDashed:
		return []float64{6, 6}
	case LineStyleDotted:
		return []float64{2, 4}
	}
	return nil
}

const (
	MinWidth = 1
	MaxWidth = 4
)

// Anchor is a point in (calendar time, price) space.
type Anchor struct {
	Time  int64   `json:"t"`
	Price float64 `json:"p"`
}

type FibLevel struct {
	Level   float64 `json:"level"`
	Color   string  `json:"color"`
	Visible bool    `json:"visible"`
}

type FibSettings struct {
	Levels         []FibLevel `json:"levels"`
	ShowBackground bool       `json:"showBackground"`
	ExtendLeft     bool       `json:"extendLeft"`
	ExtendRight    bool       `json:"extendRight"`
}

func (s *FibSettings) Clone() *FibSettings {
	if s == nil {
		return nil
	}

	c := *s
	c.Levels = append([]FibLevel(nil), s.Levels...)
	return &c
}

// Drawing is a committed chart annotation. Single point types carry only
// First; two point types always carry both anchors.
type Drawing struct {
	ID   int64
	Type Type

	First  Anchor
	Second *Anchor

	Color   string
	Width   int
	Style   LineStyle
	Opacity int
	Locked  bool

	ExtendLeft  bool
	ExtendRight bool
	ShowStats   bool

	FibSettings *FibSettings
}

// Clone returns a deep copy.
func (d Drawing) Clone() Drawing {
	if d.Second != nil {
		second := *d.Second
		d.Second = &second
	}
	d.FibSettings = d.FibSettings.Clone()
	return d
}

// Anchors returns the defining points in order.
func (d Drawing) Anchors() []Anchor {
	if d.Second == nil {
		return []Anchor{d.First}
	}
	return []Anchor{d.First, *d.Second}
}

// Anchor returns the point with the given 1-based index.
func (d Drawing) Anchor(index int) (Anchor, bool) {
	switch {
	case index == 1:
		return d.First, true
	case index == 2 && d.Second != nil:
		return *d.Second, true
	}
	return Anchor{}, false
}

// SetAnchor moves the point with the given 1-based index.
func (d *Drawing) SetAnchor(index int, a Anchor) {
	switch {
	case index == 1:
		d.First = a
	case index == 2 && d.Second != nil:
		d.Second = &Anchor{Time: a.Time, Price: a.Price}
	}
}

// SameGeometry reports whether both drawings have identical anchors.
func (d Drawing) SameGeometry(o Drawing) bool {
	if d.First != o.First {
		return false
	}
	if (d.Second == nil) != (o.Second == nil) {
		return false
	}
	return d.Second == nil || *d.Second == *o.Second
}

func (d Drawing) String() string {
	if d.Second == nil {
		return fmt.Sprintf("%s#%d (%d, %.2f)", d.Type, d.ID, d.First.Time, d.First.Price)
	}
	return fmt.Sprintf("%s#%d (%d, %.2f) -> (%d, %.2f)", d.Type, d.ID,
		d.First.Time, d.First.Price, d.Second.Time, d.Second.Price)
}

// Validate checks every field and aggregates all violations.
func (d Drawing) Validate() (err error) {
	if d.ID <= 0 {
		err = multierr.Append(err, fmt.Errorf("id %d must be positive", d.ID))
	}

	if !d.Type.IsValid() {
		err = multierr.Append(err, fmt.Errorf("unknown drawing type %q", d.Type))
	}

	if !isFinite(d.First.Price) {
		err = multierr.Append(err, fmt.Errorf("p1 %v is not a finite price", d.First.Price))
	}

	switch {
	case d.Type.IsTwoPoint() && d.Second == nil:
		err = multierr.Append(err, fmt.Errorf("%s requires a second point", d.Type))
	case d.Type.IsValid() && !d.Type.IsTwoPoint() && d.Second != nil:
		err = multierr.Append(err, fmt.Errorf("%s takes a single point", d.Type))
	case d.Second != nil && !isFinite(d.Second.Price):
		err = multierr.Append(err, fmt.Errorf("p2 %v is not a finite price", d.Second.Price))
	}

	if !scene.IsHexColor(d.Color) {
		err = multierr.Append(err, fmt.Errorf("invalid color %q", d.Color))
	}

	if d.Width < MinWidth || d.Width > MaxWidth {
		err = multierr.Append(err, fmt.Errorf("width %d is out of [%d, %d]", d.Width, MinWidth, MaxWidth))
	}

	if !d.Style.IsValid() {
		err = multierr.Append(err, fmt.Errorf("unknown line style %q", d.Style))
	}

	if d.Opacity < 0 || d.Opacity > 100 {
		err = multierr.Append(err, fmt.Errorf("opacity %d is out of [0, 100]", d.Opacity))
	}

	if d.FibSettings != nil {
		for i, l := range d.FibSettings.Levels {
			if l.Level < 0 || l.Level > 1 || !isFinite(l.Level) {
				err = multierr.Append(err, fmt.Errorf("fibonacci level %d: ratio %v is out of [0, 1]", i, l.Level))
			}
			if !scene.IsHexColor(l.Color) {
				err = multierr.Append(err, fmt.Errorf("fibonacci level %d: invalid color %q", i, l.Color))
			}
		}
	}

	return err
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// wireDrawing is the JSON form: times travel as strings of unix seconds.
type wireDrawing struct {
	ID          int64        `json:"id"`
	Type        Type         `json:"type"`
	T1          string       `json:"t1"`
	P1          float64      `json:"p1"`
	T2          *string      `json:"t2,omitempty"`
	P2          *float64     `json:"p2,omitempty"`
	Color       string       `json:"color"`
	Width       int          `json:"width"`
	Style       LineStyle    `json:"style"`
	Opacity     int          `json:"opacity"`
	Locked      bool         `json:"locked"`
	ExtendLeft  bool         `json:"extendLeft,omitempty"`
	ExtendRight bool         `json:"extendRight,omitempty"`
	ShowStats   bool         `json:"showStats,omitempty"`
	FibSettings *FibSettings `json:"fibSettings,omitempty"`
}

func (d Drawing) MarshalJSON() ([]byte, error) {
	w := wireDrawing{
		ID:          d.ID,
		Type:        d.Type,
		T1:          strconv.FormatInt(d.First.Time, 10),
		P1:          d.First.Price,
		Color:       d.Color,
		Width:       d.Width,
		Style:       d.Style,
		Opacity:     d.Opacity,
		Locked:      d.Locked,
		ExtendLeft:  d.ExtendLeft,
		ExtendRight: d.ExtendRight,
		ShowStats:   d.ShowStats,
		FibSettings: d.FibSettings,
	}

	if d.Second != nil {
		t2 := strconv.FormatInt(d.Second.Time, 10)
		p2 := d.Second.Price
		w.T2, w.P2 = &t2, &p2
	}

	return json.Marshal(w)
}

func (d *Drawing) UnmarshalJSON(data []byte) error {
	var w wireDrawing
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	t1, err := strconv.ParseInt(w.T1, 10, 64)
	if err != nil {
		return fmt.Errorf("t1: %w", err)
	}

	*d = Drawing{
		ID:          w.ID,
		Type:        w.Type,
		First:       Anchor{Time: t1, Price: w.P1},
		Color:       w.Color,
		Width:       w.Width,
		Style:       w.Style,
		Opacity:     w.Opacity,
		Locked:      w.Locked,
		ExtendLeft:  w.ExtendLeft,
		ExtendRight: w.ExtendRight,
		ShowStats:   w.ShowStats,
		FibSettings: w.FibSettings,
	}

	switch {
	case w.T2 != nil && w.P2 != nil:
		t2, err := strconv.ParseInt(*w.T2, 10, 64)
		if err != nil {
			return fmt.Errorf("t2: %w", err)
		}
		d.Second = &Anchor{Time: t2, Price: *w.P2}

	case w.T2 != nil || w.P2 != nil:
		return fmt.Errorf("t2 and p2 must be given together")
	}

	return nil
}
