// Package replay drives a chart controller from scripted command lines, for
// reproducing interaction sessions and rendering their final frame.
package replay

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/zenith-terminal/zenith/pkg/drawing"
	"github.com/zenith-terminal/zenith/pkg/interact"
	"github.com/zenith-terminal/zenith/pkg/toolbar"
	"github.com/zenith-terminal/zenith/pkg/types"
)

var log = logrus.WithField("component", "replay")

// Session binds the command set to a controller and its toolbar.
type Session struct {
	Controller *interact.Controller
	Toolbar    *toolbar.Toolbar

	// Completed counts the drawings committed by drawing tools.
	Completed int

	commands map[string]interface{}
}

// NewSession wraps c. Unless sticky is set the tool reverts to the cursor
// once a drawing completes, as the dashboard does.
func NewSession(c *interact.Controller, sticky bool) *Session {
	s := &Session{
		Controller: c,
		Toolbar:    toolbar.New(c),
	}

	c.OnToolComplete(func() {
		s.Completed++
		if !sticky {
			c.SetTool(interact.ToolCursor)
		}
	})

	s.commands = s.builtinCommands()
	return s
}

// Setup applies the initial script state to a new session.
func Setup(script *Script, renderer interact.Renderer) (*Session, error) {
	candles, err := script.LoadCandles()
	if err != nil {
		return nil, err
	}

	c := interact.New(renderer)
	if script.Chart != nil {
		if err := c.SetSettings(*script.Chart); err != nil {
			return nil, err
		}
	}

	c.SetTheme(script.Theme)
	c.SetSymbol(script.Symbol)
	c.SetInterval(script.Interval)
	c.Resize(script.Width, script.Height)
	c.SetCandles(candles)

	return NewSession(c, script.StickyTool), nil
}

var (
	builtinsOnce sync.Once
	builtins     map[string]interface{}
)

// builtinCommandSet is the command table of a detached session, used to
// check scripts before they run.
func builtinCommandSet() map[string]interface{} {
	builtinsOnce.Do(func() {
		builtins = NewSession(interact.New(nil), false).commands
	})
	return builtins
}

// CommandNames lists the commands available to scripts.
func CommandNames() []string {
	var names []string
	for name := range builtinCommandSet() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CheckStep reports an unknown command or a wrong number of arguments
// without running the step.
func CheckStep(step Step) error {
	f, ok := builtinCommandSet()[step.Command]
	if !ok {
		return fmt.Errorf("unknown command %q", step.Command)
	}

	if err := checkArity(f, step.Args); err != nil {
		return fmt.Errorf("%s: %w", step.Command, err)
	}
	return nil
}

// Commands returns the sorted command names.
func (s *Session) Commands() []string {
	var names []string
	for name := range s.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Exec parses and runs a single command line.
func (s *Session) Exec(line string) error {
	step, err := ParseStep(line)
	if err != nil {
		return err
	}

	return s.Step(step)
}

func (s *Session) Step(step Step) error {
	f, ok := s.commands[step.Command]
	if !ok {
		return fmt.Errorf("unknown command %q", step.Command)
	}

	log.Debugf("exec %s %v", step.Command, step.Args)
	if err := parseFuncArgsAndCall(f, step.Args); err != nil {
		return fmt.Errorf("%s: %w", step.Command, err)
	}

	return nil
}

// Run executes the script steps in order and stops at the first failing
// step or when ctx is done.
func (s *Session) Run(ctx context.Context, script *Script) error {
	for _, step := range script.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := s.Step(step); err != nil {
			return errors.Wrapf(err, "line %d", step.Line)
		}
	}

	return nil
}

// Summary counts the drawings of the session by type.
func (s *Session) Summary() map[drawing.Type]int {
	out := map[drawing.Type]int{}
	for _, d := range s.Controller.Drawings() {
		out[d.Type]++
	}
	return out
}

func (s *Session) builtinCommands() map[string]interface{} {
	c := s.Controller
	return map[string]interface{}{
		"tool": func(name string) error {
			t, err := interact.ParseTool(name)
			if err != nil {
				return err
			}
			c.SetTool(t)
			return nil
		},
		"click": c.Click,
		"down":  c.PointerDown,
		"move":  c.PointerMove,
		"up":    c.PointerUp,
		"leave": c.PointerLeave,
		"drag": func(x1, y1, x2, y2 float64) {
			c.PointerDown(x1, y1)
			c.PointerMove(x2, y2)
			c.PointerUp(x2, y2)
			c.Click(x2, y2)
		},
		"wheel":  c.Wheel,
		"pan":    c.Pan,
		"reset":  c.ResetZoom,
		"key":    c.Key,
		"select": c.Select,
		"delete": c.DeleteSelected,
		"clear":  c.ClearAll,
		"symbol": c.SetSymbol,
		"resize": c.Resize,
		"theme": func(theme string) error {
			switch t := types.Theme(theme); t {
			case types.ThemeDark, types.ThemeLight:
				c.SetTheme(t)
				return nil
			}
			return fmt.Errorf("unknown theme %q", theme)
		},
		"interval": func(interval string) error {
			i, err := types.ParseInterval(interval)
			if err != nil {
				return err
			}
			c.SetInterval(i)
			return nil
		},

		"lock": func() error {
			return s.Toolbar.Do(toolbar.ToggleLock())
		},
		"color": func(hex string) error {
			return s.Toolbar.Do(toolbar.SetColor(hex))
		},
		"opacity": func(opacity int) error {
			return s.Toolbar.Do(toolbar.SetOpacity(opacity))
		},
		"width": func(width int) error {
			return s.Toolbar.Do(toolbar.SetWidth(width))
		},
		"style": func(style drawing.LineStyle) error {
			return s.Toolbar.Do(toolbar.SetStyle(style))
		},
		"extend": func(left, right bool) error {
			if err := s.Toolbar.Do(toolbar.SetExtendLeft(left)); err != nil {
				return err
			}
			return s.Toolbar.Do(toolbar.SetExtendRight(right))
		},
		"stats": func(v bool) error {
			return s.Toolbar.Do(toolbar.SetShowStats(v))
		},
		"price1": func(price float64) error {
			return s.Toolbar.Do(toolbar.SetPrice1(price))
		},
		"price2": func(price float64) error {
			return s.Toolbar.Do(toolbar.SetPrice2(price))
		},
		"patch": func(mergePatch string) error {
			return s.Toolbar.Merge([]byte(mergePatch))
		},
		"remove": s.Toolbar.Delete,

		"expect-state": func(state string) error {
			if got := c.State(); string(got) != state {
				return fmt.Errorf("expecting state %s, got %s", state, got)
			}
			return nil
		},
		"expect-tool": func(tool string) error {
			if got := c.Tool(); string(got) != tool {
				return fmt.Errorf("expecting tool %s, got %s", tool, got)
			}
			return nil
		},
		"expect-drawings": func(n int) error {
			if got := len(c.Drawings()); got != n {
				return fmt.Errorf("expecting %d drawings, got %d", n, got)
			}
			return nil
		},
		"expect-selected": func(selection string) error {
			if got := formatID(c.SelectedID()); got != selection {
				return fmt.Errorf("expecting selection %s, got %s", selection, got)
			}
			return nil
		},
	}
}

func formatID(id int64) string {
	if id == 0 {
		return "none"
	}
	return strconv.FormatInt(id, 10)
}
