package drawing

// Control is a per-drawing toolbar control.
type Control string

const (
	ControlLock     Control = "lock"
	ControlColor    Control = "color"
	ControlWidth    Control = "width"
	ControlStyle    Control = "style"
	ControlExtend   Control = "extend"
	ControlStats    Control = "stats"
	ControlSettings Control = "settings"
	ControlDelete   Control = "delete"
	ControlPrice1   Control = "price1"
	ControlPrice2   Control = "price2"
)

// ToolConfig lists the toolbar controls a drawing type exposes.
type ToolConfig struct {
	Lock     bool `json:"showLock"`
	Color    bool `json:"showColor"`
	Width    bool `json:"showWidth"`
	Style    bool `json:"showStyle"`
	Extend   bool `json:"showExtend"`
	Stats    bool `json:"showStats"`
	Settings bool `json:"showSettings"`
	Delete   bool `json:"showDelete"`
	Price1   bool `json:"showPrice1"`
	Price2   bool `json:"showPrice2"`
}

var toolConfigs = map[Type]ToolConfig{
	TypeTrendline:      {Lock: true, Color: true, Width: true, Style: true, Extend: true, Stats: true, Settings: true, Delete: true, Price1: true, Price2: true},
	TypeHorizontalLine: {Lock: true, Color: true, Width: true, Style: true, Settings: true, Delete: true, Price1: true},
	TypeVerticalLine:   {Lock: true, Color: true, Width: true, Style: true, Settings: true, Delete: true},
	TypeRay:            {Lock: true, Color: true, Width: true, Style: true, Settings: true, Delete: true, Price1: true, Price2: true},
	TypeArrow:          {Lock: true, Color: true, Width: true, Style: true, Extend: true, Settings: true, Delete: true, Price1: true, Price2: true},
	TypeFibonacci:      {Lock: true, Color: true, Settings: true, Delete: true, Price1: true, Price2: true},
	TypeRectangle:      {Lock: true, Color: true, Width: true, Style: true, Extend: true, Settings: true, Delete: true, Price1: true, Price2: true},
	TypePriceRange:     {Lock: true, Delete: true},
}

// ConfigFor returns the toolbar configuration of a drawing type.
func ConfigFor(t Type) ToolConfig {
	return toolConfigs[t]
}

// Allows reports whether the control is shown for the configuration.
func (c ToolConfig) Allows(ctrl Control) bool {
	switch ctrl {
	case ControlLock:
		return c.Lock
	case ControlColor:
		return c.Color
	case ControlWidth:
		return c.Width
	case ControlStyle:
		return c.Style
	case ControlExtend:
		return c.Extend
	case ControlStats:
		return c.Stats
	case ControlSettings:
		return c.Settings
	case ControlDelete:
		return c.Delete
	case ControlPrice1:
		return c.Price1
	case ControlPrice2:
		return c.Price2
	}
	return false
}

// Controls returns the enabled controls in toolbar order.
func (c ToolConfig) Controls() []Control {
	all := []Control{
		ControlLock, ControlColor, ControlWidth, ControlStyle, ControlExtend,
		ControlStats, ControlSettings, ControlDelete, ControlPrice1, ControlPrice2,
	}

	var out []Control
	for _, ctrl := range all {
		if c.Allows(ctrl) {
			out = append(out, ctrl)
		}
	}
	return out
}
