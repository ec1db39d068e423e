package toolbar

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/zenith-terminal/zenith/pkg/drawing"
)

//go:generate mockgen -destination=mocks/mock_editor.go -package=mocks . Editor

var log = logrus.WithField("component", "toolbar")

var ErrNoSelection = errors.New("no drawing is selected")

// Editor is the owner of the selected drawing.
type Editor interface {
	Selected() (drawing.Drawing, bool)
	ReplaceDrawing(d drawing.Drawing) error
	DeleteSelected() bool
}

// Toolbar edits the selected drawing of an Editor.
type Toolbar struct {
	editor Editor
}

func New(editor Editor) *Toolbar {
	return &Toolbar{editor: editor}
}

// Controls lists the controls shown for the selected drawing.
func (t *Toolbar) Controls() []drawing.Control {
	d, ok := t.editor.Selected()
	if !ok {
		return nil
	}
	return drawing.ConfigFor(d.Type).Controls()
}

// Do applies the action to the selected drawing.
func (t *Toolbar) Do(a Action) error {
	return t.edit(func(d drawing.Drawing) (drawing.Drawing, error) {
		return Apply(d, a)
	})
}

// Merge applies a merge patch to the selected drawing.
func (t *Toolbar) Merge(mergePatch []byte) error {
	return t.edit(func(d drawing.Drawing) (drawing.Drawing, error) {
		return Merge(d, mergePatch)
	})
}

func (t *Toolbar) edit(fn func(d drawing.Drawing) (drawing.Drawing, error)) error {
	d, ok := t.editor.Selected()
	if !ok {
		return ErrNoSelection
	}

	updated, err := fn(d)
	if err != nil {
		return err
	}

	if updated.SameGeometry(d) && equalStyle(updated, d) {
		return nil
	}

	if err := t.editor.ReplaceDrawing(updated); err != nil {
		return fmt.Errorf("replace drawing %d: %w", d.ID, err)
	}

	log.Debugf("drawing %d updated: %s", d.ID, updated)
	return nil
}

// Delete removes the selected drawing.
func (t *Toolbar) Delete() error {
	d, ok := t.editor.Selected()
	if !ok {
		return ErrNoSelection
	}

	if !drawing.ConfigFor(d.Type).Allows(drawing.ControlDelete) {
		return fmt.Errorf("%s on %s: %w", drawing.ControlDelete, d.Type, ErrControlUnavailable)
	}

	if !t.editor.DeleteSelected() {
		return ErrNoSelection
	}
	return nil
}

func equalStyle(a, b drawing.Drawing) bool {
	if a.Color != b.Color || a.Width != b.Width || a.Style != b.Style || a.Opacity != b.Opacity ||
		a.Locked != b.Locked || a.ExtendLeft != b.ExtendLeft || a.ExtendRight != b.ExtendRight ||
		a.ShowStats != b.ShowStats {
		return false
	}

	if (a.FibSettings == nil) != (b.FibSettings == nil) {
		return false
	}
	if a.FibSettings == nil {
		return true
	}

	fa, fb := a.FibSettings, b.FibSettings
	if fa.ShowBackground != fb.ShowBackground || fa.ExtendLeft != fb.ExtendLeft ||
		fa.ExtendRight != fb.ExtendRight || len(fa.Levels) != len(fb.Levels) {
		return false
	}

	for i := range fa.Levels {
		if fa.Levels[i] != fb.Levels[i] {
			return false
		}
	}
	return true
}
