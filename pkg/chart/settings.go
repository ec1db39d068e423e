package chart

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/zenith-terminal/zenith/pkg/scene"
)

type SymbolSettings struct {
	UpColor         string `json:"upColor" yaml:"upColor"`
	DownColor       string `json:"downColor" yaml:"downColor"`
	BorderUpColor   string `json:"borderUpColor" yaml:"borderUpColor"`
	BorderDownColor string `json:"borderDownColor" yaml:"borderDownColor"`
	WickUpColor     string `json:"wickUpColor" yaml:"wickUpColor"`
	WickDownColor   string `json:"wickDownColor" yaml:"wickDownColor"`
}

type AppearanceSettings struct {
	Background       string `json:"background" yaml:"background"`
	GridColor        string `json:"gridColor" yaml:"gridColor"`
	GridVisible      bool   `json:"gridVisible" yaml:"gridVisible"`
	VertGridVisible  bool   `json:"vertGridVisible" yaml:"vertGridVisible"`
	HorzGridVisible  bool   `json:"horzGridVisible" yaml:"horzGridVisible"`
	WatermarkVisible bool   `json:"watermarkVisible" yaml:"watermarkVisible"`

	// WatermarkOpacity is a percentage
	WatermarkOpacity float64 `json:"watermarkOpacity" yaml:"watermarkOpacity"`

	// WatermarkSize is a percentage of the container width
	WatermarkSize float64 `json:"watermarkSize" yaml:"watermarkSize"`

	CrosshairVisible bool `json:"crosshairVisible" yaml:"crosshairVisible"`
	LegendVisible    bool `json:"legendVisible" yaml:"legendVisible"`
}

type ScaleSettings struct {
	TextColor string  `json:"textColor" yaml:"textColor"`
	FontSize  float64 `json:"fontSize" yaml:"fontSize"`
}

// Settings is the chart appearance configuration. Every option is applied on
// the next frame.
type Settings struct {
	Symbol     SymbolSettings     `json:"symbol" yaml:"symbol"`
	Appearance AppearanceSettings `json:"appearance" yaml:"appearance"`
	Scales     ScaleSettings      `json:"scales" yaml:"scales"`
}

func DefaultSettings() Settings {
	return Settings{
		Symbol: SymbolSettings{
			UpColor:         "#26a69a",
			DownColor:       "#ef5350",
			BorderUpColor:   "#26a69a",
			BorderDownColor: "#ef5350",
			WickUpColor:     "#26a69a",
			WickDownColor:   "#ef5350",
		},
		Appearance: AppearanceSettings{
			Background:       "#131722",
			GridColor:        "#2d3436",
			GridVisible:      true,
			VertGridVisible:  true,
			HorzGridVisible:  true,
			WatermarkVisible: true,
			WatermarkOpacity: 5,
			WatermarkSize:    8,
			CrosshairVisible: true,
			LegendVisible:    true,
		},
		Scales: ScaleSettings{
			TextColor: "#9ca3af",
			FontSize:  11,
		},
	}
}

func (s Settings) Validate() (err error) {
	colors := []struct{ key, value string }{
		{"symbol.upColor", s.Symbol.UpColor},
		{"symbol.downColor", s.Symbol.DownColor},
		{"symbol.borderUpColor", s.Symbol.BorderUpColor},
		{"symbol.borderDownColor", s.Symbol.BorderDownColor},
		{"symbol.wickUpColor", s.Symbol.WickUpColor},
		{"symbol.wickDownColor", s.Symbol.WickDownColor},
		{"appearance.background", s.Appearance.Background},
		{"appearance.gridColor", s.Appearance.GridColor},
		{"scales.textColor", s.Scales.TextColor},
	}

	for _, c := range colors {
		if !scene.IsHexColor(c.value) {
			err = multierr.Append(err, fmt.Errorf("%s: invalid color %q", c.key, c.value))
		}
	}

	if s.Appearance.WatermarkOpacity < 0 || s.Appearance.WatermarkOpacity > 100 {
		err = multierr.Append(err, fmt.Errorf("appearance.watermarkOpacity: %v is out of [0, 100]", s.Appearance.WatermarkOpacity))
	}

	if s.Appearance.WatermarkSize <= 0 {
		err = multierr.Append(err, fmt.Errorf("appearance.watermarkSize: %v must be positive", s.Appearance.WatermarkSize))
	}

	if s.Scales.FontSize <= 0 {
		err = multierr.Append(err, fmt.Errorf("scales.fontSize: %v must be positive", s.Scales.FontSize))
	}

	return err
}

// settingsFile is the layout of zenith.yaml; only the chart section is read
// here.
type settingsFile struct {
	Chart *Settings `yaml:"chart"`
}

// LoadSettings reads the chart section of a YAML config file. Options missing
// from the file keep their defaults.
func LoadSettings(configFile string) (Settings, error) {
	settings := DefaultSettings()

	content, err := os.ReadFile(configFile)
	if err != nil {
		return settings, errors.Wrapf(err, "unable to read config file %s", configFile)
	}

	return ParseSettings(content)
}

func ParseSettings(content []byte) (Settings, error) {
	settings := DefaultSettings()
	file := settingsFile{Chart: &settings}
	if err := yaml.Unmarshal(content, &file); err != nil {
		return DefaultSettings(), errors.Wrap(err, "unable to parse chart settings")
	}

	if err := settings.Validate(); err != nil {
		return DefaultSettings(), err
	}

	return settings, nil
}
