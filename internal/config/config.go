// Package config loads overlay settings and the widget layout from a YAML
// file and HUD_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mj1618/hud-a11y/internal/model"
	"github.com/spf13/viper"
)

// Widget types understood by widget.Build.
const (
	TypeStatus      = "status"
	TypePanel       = "panel"
	TypeChoices     = "choices"
	TypeContextMenu = "context_menu"
)

// Config captures runtime configuration.
type Config struct {
	BlurCheckDelay time.Duration `mapstructure:"blur_check_delay"`
	SwitchCombo    string        `mapstructure:"switch_combo"`
	Narration      Narration     `mapstructure:"narration"`
	Log            Log           `mapstructure:"log"`
	Serve          Serve         `mapstructure:"serve"`
	Output         Output        `mapstructure:"output"`
	Widgets        []WidgetSpec  `mapstructure:"widgets"`
}

type Narration struct {
	History int `mapstructure:"history"`
}

type Log struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

type Serve struct {
	Transport string `mapstructure:"transport"`
	Port      int    `mapstructure:"port"`
}

type Output struct {
	Format string `mapstructure:"format"`
}

// WidgetSpec declares one widget of the layout.
type WidgetSpec struct {
	ID       string       `mapstructure:"id"`
	Type     string       `mapstructure:"type"`
	Label    string       `mapstructure:"label"`
	Enabled  *bool        `mapstructure:"enabled"`
	Title    string       `mapstructure:"title"`
	Content  string       `mapstructure:"content"`
	Closable *bool        `mapstructure:"closable"`
	Multiple bool         `mapstructure:"multiple"`
	Choices  []string     `mapstructure:"choices"`
	Buttons  []ButtonSpec `mapstructure:"buttons"`
	Options  []ButtonSpec `mapstructure:"options"`
	Bounds   model.Rect   `mapstructure:"bounds"`
}

type ButtonSpec struct {
	ID    string `mapstructure:"id"`
	Label string `mapstructure:"label"`
}

const (
	envPrefix  = "HUD"
	configName = "hud"
	appDir     = "hud-a11y"
)

// Load reads configuration. An empty path searches the working directory
// and the user config directory; a missing file there is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, appDir))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if len(cfg.Widgets) == 0 {
		cfg.Widgets = DefaultWidgets()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("blur_check_delay", 100*time.Millisecond)
	v.SetDefault("switch_combo", "")
	v.SetDefault("narration.history", 100)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("serve.transport", "stdio")
	v.SetDefault("serve.port", 8080)
	v.SetDefault("output.format", "yaml")
}

// Validate checks the layout for ids that cannot be used as path segments.
func (c *Config) Validate() error {
	if c.BlurCheckDelay < 0 {
		return fmt.Errorf("blur_check_delay must not be negative: %s", c.BlurCheckDelay)
	}
	if c.Narration.History <= 0 {
		return fmt.Errorf("narration.history must be positive: %d", c.Narration.History)
	}
	if c.SwitchCombo != "" && strings.Trim(c.SwitchCombo, "+ ") == "" {
		return fmt.Errorf("switch_combo has no keys: %q", c.SwitchCombo)
	}
	switch c.Output.Format {
	case "", "yaml", "json":
	default:
		return fmt.Errorf("output.format must be yaml or json: %q", c.Output.Format)
	}
	seen := make(map[string]bool, len(c.Widgets))
	for i, w := range c.Widgets {
		if w.ID == "" {
			return fmt.Errorf("widget %d: missing id", i)
		}
		if !validSegment(w.ID) {
			return fmt.Errorf("widget %q: id must not contain '.' or ':'", w.ID)
		}
		for _, b := range append(append([]ButtonSpec(nil), w.Buttons...), w.Options...) {
			if b.ID != "" && !validSegment(b.ID) {
				return fmt.Errorf("widget %q: button %q: id must not contain '.' or ':'", w.ID, b.ID)
			}
		}
		if seen[w.ID] {
			return fmt.Errorf("widget %q: duplicate id", w.ID)
		}
		seen[w.ID] = true
		switch w.Type {
		case TypeStatus, TypePanel, TypeChoices, TypeContextMenu:
		default:
			return fmt.Errorf("widget %q: unknown type %q", w.ID, w.Type)
		}
	}
	return nil
}

// validSegment reports whether id can stand alone as a path segment.
func validSegment(id string) bool {
	return !strings.ContainsAny(id, ".:")
}

// IsEnabled reports the initial enabled state; widgets default to enabled.
func (w WidgetSpec) IsEnabled() bool {
	return w.Enabled == nil || *w.Enabled
}

// IsClosable reports whether a panel gets a close button; default true.
func (w WidgetSpec) IsClosable() bool {
	return w.Closable == nil || *w.Closable
}

// DefaultWidgets is the layout used when no file declares one.
func DefaultWidgets() []WidgetSpec {
	return []WidgetSpec{
		{
			ID: "status_bar", Type: TypeStatus, Label: "Status bar",
			Buttons: []ButtonSpec{{ID: "mode", Label: "Command mode"}, {ID: "mic", Label: "Microphone"}},
		},
		{
			ID: "text_panel", Type: TypePanel, Label: "Text panel",
			Title: "Welcome", Content: "Use tab to move, escape to leave.",
			Options: []ButtonSpec{{ID: "copy", Label: "Copy contents"}, {ID: "minimize", Label: "Minimize"}},
			Bounds:  model.Rect{X: 40, Y: 80, Width: 320, Height: 200},
		},
		{
			ID: "choices", Type: TypeChoices, Label: "Choices",
			Title: "Pick a mode", Choices: []string{"Dictation", "Command", "Sleep"},
		},
		{ID: "context_menu", Type: TypeContextMenu, Label: "Context menu"},
	}
}
