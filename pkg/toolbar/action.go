// Package toolbar applies the per-drawing style controls to committed
// drawings. Every edit is a JSON patch over the drawing's wire form, so an
// edit either produces a valid drawing or leaves it untouched.
package toolbar

import (
	"encoding/json"
	"errors"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"

	"github.com/zenith-terminal/zenith/pkg/drawing"
)

var ErrControlUnavailable = errors.New("control is not available for this drawing type")

type operation struct {
	Op    string      `json:"op"`
	Path  string      `json:"path"`
	Value interface{} `json:"value"`
}

// Action is one toolbar edit.
type Action struct {
	Control drawing.Control

	// Geometry actions move anchors and are ignored on locked drawings.
	Geometry bool

	ops func(d drawing.Drawing) []operation
}

func set(path string, value interface{}) func(d drawing.Drawing) []operation {
	return func(d drawing.Drawing) []operation {
		return []operation{{Op: "add", Path: path, Value: value}}
	}
}

// Patch builds the RFC 6902 patch of the action against d.
func (a Action) Patch(d drawing.Drawing) (jsonpatch.Patch, error) {
	if a.ops == nil {
		return nil, fmt.Errorf("%s action has no patch", a.Control)
	}

	jsonOp, err := json.Marshal(a.ops(d))
	if err != nil {
		return nil, err
	}

	return jsonpatch.DecodePatch(jsonOp)
}

func (a Action) String() string {
	return string(a.Control)
}

// ToggleLock flips the lock of the drawing.
func ToggleLock() Action {
	return Action{
		Control: drawing.ControlLock,
		ops: func(d drawing.Drawing) []operation {
			return []operation{{Op: "add", Path: "/locked", Value: !d.Locked}}
		},
	}
}

func SetLocked(v bool) Action {
	return Action{Control: drawing.ControlLock, ops: set("/locked", v)}
}

func SetColor(hex string) Action {
	return Action{Control: drawing.ControlColor, ops: set("/color", hex)}
}

// SetOpacity is part of the color control.
func SetOpacity(opacity int) Action {
	return Action{Control: drawing.ControlColor, ops: set("/opacity", opacity)}
}

func SetWidth(width int) Action {
	return Action{Control: drawing.ControlWidth, ops: set("/width", width)}
}

func SetStyle(style drawing.LineStyle) Action {
	return Action{Control: drawing.ControlStyle, ops: set("/style", style)}
}

func SetExtendLeft(v bool) Action {
	return Action{Control: drawing.ControlExtend, ops: set("/extendLeft", v)}
}

func SetExtendRight(v bool) Action {
	return Action{Control: drawing.ControlExtend, ops: set("/extendRight", v)}
}

func SetShowStats(v bool) Action {
	return Action{Control: drawing.ControlStats, ops: set("/showStats", v)}
}

func SetFibLevelVisible(level int, v bool) Action {
	return Action{Control: drawing.ControlSettings, ops: set(fmt.Sprintf("/fibSettings/levels/%d/visible", level), v)}
}

func SetFibLevelColor(level int, hex string) Action {
	return Action{Control: drawing.ControlSettings, ops: set(fmt.Sprintf("/fibSettings/levels/%d/color", level), hex)}
}

func SetFibBackground(v bool) Action {
	return Action{Control: drawing.ControlSettings, ops: set("/fibSettings/showBackground", v)}
}

func SetFibExtend(left, right bool) Action {
	return Action{
		Control: drawing.ControlSettings,
		ops: func(d drawing.Drawing) []operation {
			return []operation{
				{Op: "add", Path: "/fibSettings/extendLeft", Value: left},
				{Op: "add", Path: "/fibSettings/extendRight", Value: right},
			}
		},
	}
}

func SetPrice1(price float64) Action {
	return Action{Control: drawing.ControlPrice1, Geometry: true, ops: set("/p1", price)}
}

func SetPrice2(price float64) Action {
	return Action{Control: drawing.ControlPrice2, Geometry: true, ops: set("/p2", price)}
}

// Apply runs the action against a copy of d. Locked drawings ignore
// geometry actions; a result that fails validation is rejected and d is
// returned as is.
func Apply(d drawing.Drawing, a Action) (drawing.Drawing, error) {
	if !drawing.ConfigFor(d.Type).Allows(a.Control) {
		return d, fmt.Errorf("%s on %s: %w", a.Control, d.Type, ErrControlUnavailable)
	}

	if a.Control == drawing.ControlSettings && d.FibSettings == nil {
		return d, fmt.Errorf("%s on %s: %w", a.Control, d.Type, ErrControlUnavailable)
	}

	if a.Geometry && d.Locked {
		log.Debugf("%s ignored on locked drawing %d", a, d.ID)
		return d, nil
	}

	patch, err := a.Patch(d)
	if err != nil {
		return d, fmt.Errorf("build %s patch: %w", a, err)
	}

	doc, err := json.Marshal(d)
	if err != nil {
		return d, err
	}

	patched, err := patch.Apply(doc)
	if err != nil {
		return d, fmt.Errorf("apply %s patch: %w", a, err)
	}

	return decode(d, patched)
}

// decode parses a patched document and checks it against the drawing it
// was derived from.
func decode(orig drawing.Drawing, patched []byte) (drawing.Drawing, error) {
	var out drawing.Drawing
	if err := json.Unmarshal(patched, &out); err != nil {
		return orig, fmt.Errorf("decode patched drawing: %w", err)
	}

	if out.ID != orig.ID || out.Type != orig.Type {
		return orig, fmt.Errorf("drawing id and type can not be edited")
	}

	if err := out.Validate(); err != nil {
		return orig, fmt.Errorf("invalid %s drawing: %w", out.Type, err)
	}

	return out, nil
}
