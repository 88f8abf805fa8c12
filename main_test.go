package main

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/keuio/PhotoWall3D/internal/config"
	apperrors "github.com/keuio/PhotoWall3D/internal/errors"
)

// execute runs the root command with args and returns the resolved config.
func execute(t *testing.T, args ...string) (config.Config, []string, error) {
	t.Helper()
	var (
		cfg  config.Config
		rest []string
	)
	cmd := newRootCommand(func(cmd *cobra.Command, o *options, a []string) error {
		var err error
		cfg, err = resolveConfig(cmd, o)
		rest = a
		return err
	})
	cmd.SetArgs(args)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return cfg, rest, err
}

func TestResolveConfigDefaults(t *testing.T) {
	cfg, rest, err := execute(t, "photos")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if cfg != config.Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
	if len(rest) != 1 || rest[0] != "photos" {
		t.Errorf("args = %v, want [photos]", rest)
	}
}

func TestResolveConfigFlags(t *testing.T) {
	cfg, _, err := execute(t, "--rows", "3", "--columns", "12", "--speed", "0.5", "--row-step", "4")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if cfg.Rows != 3 || cfg.ColumnsPerRow != 12 || cfg.AutoPlaySpeed != 0.5 || cfg.RowHeightStep != 4 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.BaseRadius != config.Default().BaseRadius {
		t.Error("unset flag changed base radius")
	}
}

func TestResolveConfigFileThenFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wall.toml")
	if err := os.WriteFile(path, []byte("rows = 7\nbase_radius = 900\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _, err := execute(t, "--config", path, "--radius", "500")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if cfg.Rows != 7 {
		t.Errorf("Rows = %d, want 7 from the file", cfg.Rows)
	}
	if cfg.BaseRadius != 500 {
		t.Errorf("BaseRadius = %v, want the flag to win", cfg.BaseRadius)
	}
}

func TestResolveConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero rows", []string{"--rows", "0"}},
		{"negative radius", []string{"--radius", "-1"}},
		{"missing config file", []string{"--config", filepath.Join(t.TempDir(), "nope.toml")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			if !apperrors.Is(err, apperrors.ErrCodeConfiguration) {
				t.Errorf("error = %v, want configuration error", err)
			}
		})
	}
}

func TestTooManyArgs(t *testing.T) {
	if _, _, err := execute(t, "a", "b"); err == nil {
		t.Error("expected an error for two image directories")
	}
}

func TestLoadImagesFallsBackToPlaceholder(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)

	for _, dir := range []string{"", t.TempDir()} {
		images, err := loadImages(dir, logger)
		if err != nil {
			t.Fatalf("loadImages(%q) error = %v", dir, err)
		}
		if len(images) != 1 {
			t.Fatalf("loadImages(%q) = %d images, want the placeholder", dir, len(images))
		}
		if b := images[0].Bounds(); b != image.Rect(0, 0, config.TextureSize*3/4, config.TextureSize) {
			t.Errorf("placeholder bounds = %v", b)
		}
	}

	if _, err := loadImages(filepath.Join(t.TempDir(), "missing"), logger); !apperrors.Is(err, apperrors.ErrCodeConfiguration) {
		t.Errorf("missing dir error = %v, want configuration error", err)
	}
}

func TestOpenMusicFailureIsNotFatal(t *testing.T) {
	var buf bytes.Buffer
	if track := openMusic(filepath.Join(t.TempDir(), "song.ogg"), log.New(&buf)); track != nil {
		t.Error("openMusic returned a track for an unsupported file")
	}
	if !bytes.Contains(buf.Bytes(), []byte("soundtrack disabled")) {
		t.Errorf("expected a warning, got %q", buf.String())
	}
	if openMusic("", log.New(&buf)) != nil {
		t.Error("openMusic(\"\") should be nil")
	}
}

func TestRowStepHelpDescribesSpacing(t *testing.T) {
	cmd := newRootCommand(func(*cobra.Command, *options, []string) error { return nil })
	if got := cmd.Flags().Lookup("row-step").Usage; got != "vertical spacing between rows" {
		t.Errorf("--row-step usage = %q", got)
	}
}
