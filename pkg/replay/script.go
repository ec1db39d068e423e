package replay

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/zenith-terminal/zenith/pkg/chart"
	"github.com/zenith-terminal/zenith/pkg/datasource/csvsource"
	"github.com/zenith-terminal/zenith/pkg/mockfeed"
	"github.com/zenith-terminal/zenith/pkg/types"
)

const (
	DefaultWidth  = 875
	DefaultHeight = 435

	DefaultMockCount = 300
)

// Script is a recorded chart session: the initial chart state followed by a
// list of command lines.
type Script struct {
	Symbol   string         `yaml:"symbol"`
	Interval types.Interval `yaml:"interval"`
	Theme    types.Theme    `yaml:"theme"`
	Width    float64        `yaml:"width"`
	Height   float64        `yaml:"height"`

	// StickyTool keeps a drawing tool active after it completes a drawing.
	StickyTool bool `yaml:"stickyTool"`

	Candles CandleSource `yaml:"candles"`

	// Chart holds the default chart settings overridden by the chart section.
	Chart *chart.Settings `yaml:"-"`

	ChartNode yaml.Node `yaml:"chart"`

	Steps []Step `yaml:"steps"`
}

// CandleSource selects where the script candles come from. CSV takes
// precedence over Mock.
type CandleSource struct {
	CSV  string      `yaml:"csv"`
	Mock *MockSource `yaml:"mock"`
}

type MockSource struct {
	Count int   `yaml:"count"`
	Seed  int64 `yaml:"seed"`

	// End is the unix time the series ends at; zero means now.
	End int64 `yaml:"end"`
}

// Step is a single command line of a script.
type Step struct {
	Command string
	Args    []string

	// Line is the position of the step in the script file.
	Line int
}

func (s Step) String() string {
	return fmt.Sprintf("line %d: %s", s.Line, s.Command)
}

func (s *Step) UnmarshalYAML(value *yaml.Node) error {
	var line string
	if err := value.Decode(&line); err != nil {
		return fmt.Errorf("line %d: step must be a command string", value.Line)
	}

	step, err := ParseStep(line)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}

	step.Line = value.Line
	*s = step
	return nil
}

// ParseStep parses a command line such as "click 120 200".
func ParseStep(line string) (Step, error) {
	args, err := parseCommand(line)
	if err != nil {
		return Step{}, err
	}

	if len(args) == 0 {
		return Step{}, fmt.Errorf("empty command")
	}

	return Step{Command: args[0], Args: args[1:]}, nil
}

func LoadScript(file string) (*Script, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read script %s", file)
	}

	return ParseScript(content)
}

// ParseScript decodes a YAML script and fills in the defaults.
func ParseScript(content []byte) (*Script, error) {
	var script Script
	if err := yaml.Unmarshal(content, &script); err != nil {
		return nil, errors.Wrap(err, "unable to parse script")
	}

	if script.Interval == "" {
		script.Interval = types.Interval5m
	}

	if _, err := types.ParseInterval(string(script.Interval)); err != nil {
		return nil, err
	}

	if script.Theme == "" {
		script.Theme = types.ThemeDark
	}

	if script.Width <= 0 {
		script.Width = DefaultWidth
	}

	if script.Height <= 0 {
		script.Height = DefaultHeight
	}

	for _, step := range script.Steps {
		if err := CheckStep(step); err != nil {
			// an unquoted "#" starts a yaml comment and drops the rest of the line
			return nil, fmt.Errorf("line %d: %w", step.Line, err)
		}
	}

	settings := chart.DefaultSettings()
	if !script.ChartNode.IsZero() {
		if err := script.ChartNode.Decode(&settings); err != nil {
			return nil, errors.Wrap(err, "unable to decode chart settings")
		}
		if err := settings.Validate(); err != nil {
			return nil, err
		}
	}
	script.Chart = &settings

	return &script, nil
}

// LoadCandles reads or generates the script candles.
func (s *Script) LoadCandles() (types.CandleSlice, error) {
	if s.Candles.CSV != "" {
		return csvsource.ReadCandlesFromCSV(s.Candles.CSV)
	}

	mock := MockSource{}
	if s.Candles.Mock != nil {
		mock = *s.Candles.Mock
	}

	if mock.Count <= 0 {
		mock.Count = DefaultMockCount
	}

	end := time.Now()
	if mock.End > 0 {
		end = time.Unix(mock.End, 0)
	}

	return mockfeed.NewGenerator(s.Interval, mock.Seed).Series(mock.Count, end), nil
}
