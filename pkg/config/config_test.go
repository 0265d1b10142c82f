package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/matzehuels/jsontree/pkg/errors"
	"github.com/matzehuels/jsontree/pkg/tree"
	"github.com/matzehuels/jsontree/pkg/workspace"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultsMatchPackages(t *testing.T) {
	d := Defaults()
	if got, want := d.TreeOptions(), tree.DefaultOptions(); !reflect.DeepEqual(got, want) {
		t.Errorf("TreeOptions() = %+v, want %+v", got, want)
	}
	if got, want := d.ViewOptions(), workspace.DefaultViewOptions(); got != want {
		t.Errorf("ViewOptions() = %+v, want %+v", got, want)
	}
	if err := d.Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
}

func TestLoadSearchPathsMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(cfg, Defaults()) {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[layout]
level_spacing = 250
animated_edges = true

[theme.object]
background = "#1d4ed8"
color = "#fff"

[view]
center_duration = "1s"

[server]
addr = "127.0.0.1:9000"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	opts := cfg.TreeOptions()
	if opts.LevelSpacing != 250 {
		t.Errorf("LevelSpacing = %v, want 250", opts.LevelSpacing)
	}
	if opts.RowSpacing != tree.DefaultRowSpacing {
		t.Errorf("RowSpacing = %v, want default", opts.RowSpacing)
	}
	if !opts.AnimatedEdges {
		t.Error("AnimatedEdges not set")
	}
	if opts.Themes.Object.Background != "#1d4ed8" {
		t.Errorf("object background = %q", opts.Themes.Object.Background)
	}
	if opts.Themes.Array != tree.DefaultThemes().Array {
		t.Errorf("array theme = %+v, want default", opts.Themes.Array)
	}
	if cfg.View.CenterDuration != time.Second {
		t.Errorf("CenterDuration = %v, want 1s", cfg.View.CenterDuration)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("JSONTREE_LAYOUT_ROW_SPACING", "80")
	t.Setenv("JSONTREE_SERVER_ADDR", ":9999")
	path := writeConfig(t, "[layout]\nrow_spacing = 100\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Layout.RowSpacing != 80 {
		t.Errorf("RowSpacing = %v, want 80", cfg.Layout.RowSpacing)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("Addr = %q, want :9999", cfg.Server.Addr)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"missing explicit file", filepath.Join(t.TempDir(), "nope.toml")},
		{"malformed", writeConfig(t, "[layout\n")},
		{"invalid value", writeConfig(t, "[view]\ncenter_zoom = 0\n")},
		{"empty theme", writeConfig(t, "[theme.array]\nbackground = \"\"\n")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Load() error = %v, want %s", err, errors.ErrCodeInvalidInput)
			}
		})
	}
}
