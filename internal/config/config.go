package config

import (
	"math"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/keuio/PhotoWall3D/internal/errors"
)

const (
	// Click-vs-drag threshold and the grace window that keeps a drag
	// classification alive after release.
	DragThreshold = 5.0
	ClickGraceMS  = 50

	// Thumbnail edge used when decoding photos into card textures.
	TextureSize = 512

	// Zoomed proxy never grows past this edge or 90% of the viewport.
	MaxZoomSize      = 600.0
	ZoomViewportFill = 0.9
)

// Config holds the wall layout, motion and presentation options.
// Start from Default; a zero Config fails Validate.
type Config struct {
	Rows            int     `toml:"rows"`
	ColumnsPerRow   int     `toml:"columns_per_row"`
	BaseRadius      float64 `toml:"base_radius"`
	RowHeightStep   float64 `toml:"row_height_step"`
	AutoPlaySpeed   float64 `toml:"auto_play_speed"`
	DragSensitivity float64 `toml:"drag_sensitivity"`

	CardWidth    float64 `toml:"card_width"`
	CardHeight   float64 `toml:"card_height"`
	Perspective  float64 `toml:"perspective"`
	WindowWidth  int     `toml:"window_width"`
	WindowHeight int     `toml:"window_height"`
}

// Default returns the stock wall: five rows of 38 cards on a 700 unit cylinder.
func Default() Config {
	return Config{
		Rows:            5,
		ColumnsPerRow:   38,
		BaseRadius:      700,
		RowHeightStep:   -8,
		AutoPlaySpeed:   0.15,
		DragSensitivity: 0.2,

		CardWidth:    120,
		CardHeight:   160,
		Perspective:  2000,
		WindowWidth:  1280,
		WindowHeight: 720,
	}
}

// Load reads a TOML file on top of the defaults. Keys absent from the file
// keep their default value; unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeConfiguration, err, "read %s", path)
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeConfiguration, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeConfiguration, "%s: unknown option %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// Set overrides a single option by its TOML key.
func (c *Config) Set(key string, value float64) error {
	switch key {
	case "rows":
		return setInt(&c.Rows, key, value)
	case "columns_per_row":
		return setInt(&c.ColumnsPerRow, key, value)
	case "base_radius":
		c.BaseRadius = value
	case "row_height_step":
		c.RowHeightStep = value
	case "auto_play_speed":
		c.AutoPlaySpeed = value
	case "drag_sensitivity":
		c.DragSensitivity = value
	case "card_width":
		c.CardWidth = value
	case "card_height":
		c.CardHeight = value
	case "perspective":
		c.Perspective = value
	case "window_width":
		return setInt(&c.WindowWidth, key, value)
	case "window_height":
		return setInt(&c.WindowHeight, key, value)
	default:
		return errors.New(errors.ErrCodeConfiguration, "unknown option %q", key)
	}
	return nil
}

func setInt(dst *int, key string, value float64) error {
	if value != math.Trunc(value) {
		return errors.New(errors.ErrCodeConfiguration, "%s must be a whole number, got %v", key, value)
	}
	*dst = int(value)
	return nil
}

// Validate reports the first option that cannot produce a wall.
func (c Config) Validate() error {
	switch {
	case c.Rows <= 0:
		return errors.New(errors.ErrCodeConfiguration, "rows must be positive, got %d", c.Rows)
	case c.ColumnsPerRow <= 0:
		return errors.New(errors.ErrCodeConfiguration, "columns_per_row must be positive, got %d", c.ColumnsPerRow)
	case c.BaseRadius <= 0:
		return errors.New(errors.ErrCodeConfiguration, "base_radius must be positive, got %v", c.BaseRadius)
	case c.CardWidth <= 0 || c.CardHeight <= 0:
		return errors.New(errors.ErrCodeConfiguration, "card size must be positive, got %vx%v", c.CardWidth, c.CardHeight)
	case c.Perspective <= 0:
		return errors.New(errors.ErrCodeConfiguration, "perspective must be positive, got %v", c.Perspective)
	case c.WindowWidth <= 0 || c.WindowHeight <= 0:
		return errors.New(errors.ErrCodeConfiguration, "window size must be positive, got %dx%d", c.WindowWidth, c.WindowHeight)
	}
	return nil
}
