package toolbar

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"

	"github.com/zenith-terminal/zenith/pkg/drawing"
)

// mergeControls maps the editable wire fields to the control guarding them.
// Anchor times have no control of their own.
var mergeControls = map[string]drawing.Control{
	"locked":      drawing.ControlLock,
	"color":       drawing.ControlColor,
	"opacity":     drawing.ControlColor,
	"width":       drawing.ControlWidth,
	"style":       drawing.ControlStyle,
	"extendLeft":  drawing.ControlExtend,
	"extendRight": drawing.ControlExtend,
	"showStats":   drawing.ControlStats,
	"fibSettings": drawing.ControlSettings,
	"p1":          drawing.ControlPrice1,
	"p2":          drawing.ControlPrice2,
	"t1":          "",
	"t2":          "",
}

var geometryFields = map[string]bool{"t1": true, "p1": true, "t2": true, "p2": true}

// Merge applies an RFC 7386 merge patch, such as {"color":"#ff0000","width":3},
// to a copy of d. Every field must be editable for the drawing type; anchor
// changes are dropped while the drawing is locked.
func Merge(d drawing.Drawing, mergePatch []byte) (drawing.Drawing, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(mergePatch, &fields); err != nil {
		return d, fmt.Errorf("decode merge patch: %w", err)
	}

	cfg := drawing.ConfigFor(d.Type)
	geometry := false
	for key := range fields {
		ctrl, ok := mergeControls[key]
		if !ok {
			return d, fmt.Errorf("field %q can not be edited", key)
		}

		if ctrl != "" && !cfg.Allows(ctrl) {
			return d, fmt.Errorf("%s on %s: %w", key, d.Type, ErrControlUnavailable)
		}

		if key == "fibSettings" && d.Type != drawing.TypeFibonacci {
			return d, fmt.Errorf("%s on %s: %w", key, d.Type, ErrControlUnavailable)
		}

		geometry = geometry || geometryFields[key]
	}

	doc, err := json.Marshal(d)
	if err != nil {
		return d, err
	}

	patched, err := jsonpatch.MergePatch(doc, mergePatch)
	if err != nil {
		return d, fmt.Errorf("apply merge patch: %w", err)
	}

	out, err := decode(d, patched)
	if err != nil {
		return d, err
	}

	if geometry && d.Locked {
		log.Debugf("anchor edits ignored on locked drawing %d", d.ID)
		out.First = d.First
		out.Second = d.Clone().Second
	}

	return out, nil
}
