package chart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.NoError(t, s.Validate())
	assert.Equal(t, "#26a69a", s.Symbol.UpColor)
	assert.Equal(t, "#131722", s.Appearance.Background)
	assert.Equal(t, 11.0, s.Scales.FontSize)
}

func TestSettings_Validate(t *testing.T) {
	s := DefaultSettings()
	s.Symbol.UpColor = "green"
	s.Appearance.WatermarkOpacity = 150
	s.Scales.FontSize = 0

	err := s.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 3)
	assert.Contains(t, err.Error(), "symbol.upColor")
}

func TestParseSettings(t *testing.T) {
	var tests = []struct {
		name    string
		content string
		want    func(s Settings)
		wantErr bool
	}{
		{
			name:    "empty file keeps defaults",
			content: ``,
			want: func(s Settings) {
				assert.Equal(t, DefaultSettings(), s)
			},
		},
		{
			name: "partial override",
			content: `
chart:
  appearance:
    gridVisible: false
    watermarkOpacity: 20
  scales:
    fontSize: 13
`,
			want: func(s Settings) {
				assert.False(t, s.Appearance.GridVisible)
				assert.True(t, s.Appearance.VertGridVisible)
				assert.Equal(t, 20.0, s.Appearance.WatermarkOpacity)
				assert.Equal(t, 13.0, s.Scales.FontSize)
				assert.Equal(t, "#ef5350", s.Symbol.DownColor)
			},
		},
		{
			name: "invalid color",
			content: `
chart:
  symbol:
    downColor: "#zzz"
`,
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			content: "chart: [",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseSettings([]byte(tt.content))
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, DefaultSettings(), s)
				return
			}

			require.NoError(t, err)
			tt.want(s)
		})
	}
}

func TestLoadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zenith.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chart:\n  appearance:\n    legendVisible: false\n"), 0644))

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.False(t, s.Appearance.LegendVisible)

	_, err = LoadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
