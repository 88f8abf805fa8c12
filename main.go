package main

import (
	"errors"
	"image"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"
	"github.com/spf13/cobra"

	"github.com/keuio/PhotoWall3D/internal/config"
	apperrors "github.com/keuio/PhotoWall3D/internal/errors"
	"github.com/keuio/PhotoWall3D/internal/game"
	"github.com/keuio/PhotoWall3D/internal/photos"
	"github.com/keuio/PhotoWall3D/internal/soundtrack"
)

type options struct {
	configPath  string
	rows        int
	columns     int
	radius      float64
	rowStep     float64
	speed       float64
	sensitivity float64
	pick        bool
	music       string
	snapshots   string
	verbose     bool
}

// overrides maps command-line flags onto config keys. Only flags the user
// actually set are applied, so a config file keeps its values otherwise.
var overrides = []struct{ flag, key string }{
	{"rows", "rows"},
	{"columns", "columns_per_row"},
	{"radius", "base_radius"},
	{"row-step", "row_height_step"},
	{"speed", "auto_play_speed"},
	{"sensitivity", "drag_sensitivity"},
}

func newRootCommand(run func(cmd *cobra.Command, o *options, args []string) error) *cobra.Command {
	o := &options{}
	def := config.Default()

	cmd := &cobra.Command{
		Use:           "photowall [image-dir]",
		Short:         "Show a folder of photos on a rotating 3D wall",
		Long:          "PhotoWall3D lays photos out on a slowly turning cylinder. Drag to spin it, click a photo to bring it to the front, click again to put it back.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, o, args)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.configPath, "config", "c", "", "TOML file with wall settings")
	f.IntVar(&o.rows, "rows", def.Rows, "number of rows")
	f.IntVar(&o.columns, "columns", def.ColumnsPerRow, "cards per row")
	f.Float64Var(&o.radius, "radius", def.BaseRadius, "cylinder radius")
	f.Float64Var(&o.rowStep, "row-step", def.RowHeightStep, "vertical spacing between rows")
	f.Float64Var(&o.speed, "speed", def.AutoPlaySpeed, "auto-rotation in degrees per frame")
	f.Float64Var(&o.sensitivity, "sensitivity", def.DragSensitivity, "degrees of rotation per dragged pixel")
	f.BoolVar(&o.pick, "pick", false, "choose the image folder in a dialog")
	f.StringVar(&o.music, "music", "", "wav, mp3 or flac file to loop in the background")
	f.StringVar(&o.snapshots, "snapshots", ".", "directory for S-key snapshots (empty disables them)")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "enable verbose logging")
	return cmd
}

// resolveConfig layers defaults, the optional config file and explicit flags.
func resolveConfig(cmd *cobra.Command, o *options) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return cfg, err
		}
	}
	for _, ov := range overrides {
		f := cmd.Flags().Lookup(ov.flag)
		if f == nil || !f.Changed {
			continue
		}
		v, err := strconv.ParseFloat(f.Value.String(), 64)
		if err != nil {
			return cfg, apperrors.Wrap(apperrors.ErrCodeConfiguration, err, "flag --%s", ov.flag)
		}
		if err := cfg.Set(ov.key, v); err != nil {
			return cfg, err
		}
	}
	return cfg, cfg.Validate()
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// imageDir returns the folder to show: the dialog choice with --pick, else
// the argument. Empty means none.
func imageDir(o *options, args []string) (string, error) {
	if o.pick {
		dir, err := zenity.SelectFile(zenity.Title("Choose a photo folder"), zenity.Directory())
		if err != nil {
			if errors.Is(err, zenity.ErrCanceled) {
				return "", nil
			}
			return "", err
		}
		return dir, nil
	}
	if len(args) > 0 {
		return args[0], nil
	}
	return "", nil
}

func loadImages(dir string, logger *log.Logger) ([]image.Image, error) {
	var images []image.Image
	if dir != "" {
		var err error
		if images, err = photos.Load(dir, config.TextureSize, logger); err != nil {
			return nil, err
		}
	}
	if len(images) == 0 {
		logger.Warn("no photos to show, using a placeholder card")
		images = []image.Image{photos.Placeholder(config.TextureSize*3/4, config.TextureSize)}
	}
	return images, nil
}

func openMusic(path string, logger *log.Logger) *soundtrack.Track {
	if path == "" {
		return nil
	}
	track, err := soundtrack.Open(path, logger)
	if err != nil {
		logger.Warn("soundtrack disabled", "err", apperrors.UserMessage(err))
		return nil
	}
	if err := track.Play(); err != nil {
		logger.Warn("soundtrack disabled", "err", apperrors.UserMessage(err))
		_ = track.Close()
		return nil
	}
	return track
}

func run(cmd *cobra.Command, o *options, args []string) error {
	logger := newLogger(cmd.ErrOrStderr(), o.verbose)

	cfg, err := resolveConfig(cmd, o)
	if err != nil {
		return err
	}
	logger.Debug("configuration", "rows", cfg.Rows, "columns", cfg.ColumnsPerRow, "radius", cfg.BaseRadius,
		"row_step", cfg.RowHeightStep, "speed", cfg.AutoPlaySpeed, "sensitivity", cfg.DragSensitivity)

	dir, err := imageDir(o, args)
	if err != nil {
		return err
	}
	images, err := loadImages(dir, logger)
	if err != nil {
		return err
	}

	opts := game.Options{
		Config:      cfg,
		Images:      images,
		SnapshotDir: o.snapshots,
		Logger:      logger,
	}
	if track := openMusic(o.music, logger); track != nil {
		defer track.Close()
		opts.Music = track
	}

	g, err := game.New(opts)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowTitle("PhotoWall3D - drag to spin, click to zoom, Esc/Q: Quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func main() {
	cmd := newRootCommand(run)
	if err := cmd.Execute(); err != nil {
		newLogger(os.Stderr, false).Error(apperrors.UserMessage(err))
		os.Exit(1)
	}
}
