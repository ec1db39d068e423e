package interact

import (
	"fmt"

	"github.com/zenith-terminal/zenith/pkg/drawing"
)

// Tool is the active chart tool: the cursor or one of the drawing types.
type Tool string

const ToolCursor Tool = "cursor"

// Tools lists the cursor followed by every drawing tool.
var Tools = func() []Tool {
	tools := []Tool{ToolCursor}
	for _, t := range drawing.Types {
		tools = append(tools, Tool(t))
	}
	return tools
}()

func ParseTool(s string) (Tool, error) {
	if s == string(ToolCursor) {
		return ToolCursor, nil
	}

	t, err := drawing.ParseType(s)
	if err != nil {
		return "", fmt.Errorf("unknown tool %q", s)
	}

	return Tool(t), nil
}

// DrawingType returns the drawing type created by the tool.
func (t Tool) DrawingType() (drawing.Type, bool) {
	dt := drawing.Type(t)
	if !dt.IsValid() {
		return "", false
	}
	return dt, true
}

func (t Tool) IsCursor() bool {
	return t == ToolCursor
}

func (t Tool) String() string {
	return string(t)
}
