// Package config loads user settings for layout, node themes, view
// instructions and the HTTP server.
//
// Settings come from config.toml in $XDG_CONFIG_HOME/jsontree or the working
// directory, overridden by JSONTREE_* environment variables
// (JSONTREE_LAYOUT_LEVEL_SPACING=250, JSONTREE_SERVER_ADDR=:9000). A missing
// file is not an error; defaults match [tree.DefaultOptions] and
// [workspace.DefaultViewOptions].
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/matzehuels/jsontree/pkg/errors"
	"github.com/matzehuels/jsontree/pkg/tree"
	"github.com/matzehuels/jsontree/pkg/workspace"
)

// AppName names the config directory and the environment prefix.
const AppName = "jsontree"

// Config holds all application configuration.
type Config struct {
	Layout LayoutConfig `mapstructure:"layout"`
	Node   NodeConfig   `mapstructure:"node"`
	Theme  tree.Themes  `mapstructure:"theme"`
	View   ViewConfig   `mapstructure:"view"`
	Server ServerConfig `mapstructure:"server"`
}

type LayoutConfig struct {
	LevelSpacing  float64 `mapstructure:"level_spacing"`
	RowSpacing    float64 `mapstructure:"row_spacing"`
	MarginX       float64 `mapstructure:"margin_x"`
	MarginY       float64 `mapstructure:"margin_y"`
	AnimatedEdges bool    `mapstructure:"animated_edges"`
}

// NodeConfig is the base style shared by every node.
type NodeConfig struct {
	Padding         int    `mapstructure:"padding"`
	BorderRadius    int    `mapstructure:"border_radius"`
	Border          string `mapstructure:"border"`
	FontSize        int    `mapstructure:"font_size"`
	HighlightBorder string `mapstructure:"highlight_border"`
}

type ViewConfig struct {
	FitPadding     float64       `mapstructure:"fit_padding"`
	CenterZoom     float64       `mapstructure:"center_zoom"`
	CenterDuration time.Duration `mapstructure:"center_duration"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxWorkspaces   int           `mapstructure:"max_workspaces"`
	WorkspaceTTL    time.Duration `mapstructure:"workspace_ttl"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() *Config {
	opts := tree.DefaultOptions()
	view := workspace.DefaultViewOptions()
	return &Config{
		Layout: LayoutConfig{
			LevelSpacing:  opts.LevelSpacing,
			RowSpacing:    opts.RowSpacing,
			MarginX:       opts.MarginX,
			MarginY:       opts.MarginY,
			AnimatedEdges: opts.AnimatedEdges,
		},
		Node: NodeConfig{
			Padding:         opts.Base.Padding,
			BorderRadius:    opts.Base.BorderRadius,
			Border:          opts.Base.Border,
			FontSize:        opts.Base.FontSize,
			HighlightBorder: opts.Base.HighlightBorder,
		},
		Theme: opts.Themes,
		View: ViewConfig{
			FitPadding:     view.FitPadding,
			CenterZoom:     view.CenterZoom,
			CenterDuration: view.CenterDuration,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			MaxWorkspaces:   1000,
			WorkspaceTTL:    time.Hour,
		},
	}
}

// Load reads configuration. If file is empty the default search paths are
// used and a missing file is ignored; an explicit file must exist.
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Defaults())

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || file != "" {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("layout.level_spacing", d.Layout.LevelSpacing)
	v.SetDefault("layout.row_spacing", d.Layout.RowSpacing)
	v.SetDefault("layout.margin_x", d.Layout.MarginX)
	v.SetDefault("layout.margin_y", d.Layout.MarginY)
	v.SetDefault("layout.animated_edges", d.Layout.AnimatedEdges)

	v.SetDefault("node.padding", d.Node.Padding)
	v.SetDefault("node.border_radius", d.Node.BorderRadius)
	v.SetDefault("node.border", d.Node.Border)
	v.SetDefault("node.font_size", d.Node.FontSize)
	v.SetDefault("node.highlight_border", d.Node.HighlightBorder)

	for name, th := range map[string]tree.Theme{
		"object":    d.Theme.Object,
		"array":     d.Theme.Array,
		"primitive": d.Theme.Primitive,
	} {
		v.SetDefault("theme."+name+".background", th.Background)
		v.SetDefault("theme."+name+".color", th.Color)
	}

	v.SetDefault("view.fit_padding", d.View.FitPadding)
	v.SetDefault("view.center_zoom", d.View.CenterZoom)
	v.SetDefault("view.center_duration", d.View.CenterDuration)

	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("server.max_workspaces", d.Server.MaxWorkspaces)
	v.SetDefault("server.workspace_ttl", d.Server.WorkspaceTTL)
}

// Validate rejects settings that cannot produce a readable diagram.
func (c *Config) Validate() error {
	switch {
	case c.Layout.LevelSpacing <= 0:
		return invalid("layout.level_spacing must be positive, got %v", c.Layout.LevelSpacing)
	case c.Layout.RowSpacing <= 0:
		return invalid("layout.row_spacing must be positive, got %v", c.Layout.RowSpacing)
	case c.Node.FontSize <= 0:
		return invalid("node.font_size must be positive, got %d", c.Node.FontSize)
	case c.View.FitPadding < 0:
		return invalid("view.fit_padding must not be negative, got %v", c.View.FitPadding)
	case c.View.CenterZoom <= 0:
		return invalid("view.center_zoom must be positive, got %v", c.View.CenterZoom)
	case c.Server.MaxWorkspaces < 0:
		return invalid("server.max_workspaces must not be negative, got %d", c.Server.MaxWorkspaces)
	}
	for name, th := range map[string]tree.Theme{
		"object":    c.Theme.Object,
		"array":     c.Theme.Array,
		"primitive": c.Theme.Primitive,
	} {
		if th.Background == "" || th.Color == "" {
			return invalid("theme.%s needs background and color", name)
		}
	}
	return nil
}

func invalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidInput, format, args...)
}

// TreeOptions converts the layout, node and theme sections into build options.
func (c *Config) TreeOptions() tree.Options {
	return tree.Options{
		LevelSpacing: c.Layout.LevelSpacing,
		RowSpacing:   c.Layout.RowSpacing,
		MarginX:      c.Layout.MarginX,
		MarginY:      c.Layout.MarginY,
		Base: tree.Style{
			Padding:         c.Node.Padding,
			BorderRadius:    c.Node.BorderRadius,
			Border:          c.Node.Border,
			FontSize:        c.Node.FontSize,
			HighlightBorder: c.Node.HighlightBorder,
		},
		Themes:        c.Theme,
		AnimatedEdges: c.Layout.AnimatedEdges,
	}
}

// ViewOptions converts the view section.
func (c *Config) ViewOptions() workspace.ViewOptions {
	return workspace.ViewOptions{
		FitPadding:     c.View.FitPadding,
		CenterZoom:     c.View.CenterZoom,
		CenterDuration: c.View.CenterDuration,
	}
}

// Dir returns the user config directory for jsontree.
func Dir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName), nil
}
