// Package layout places cards on a multi-row cylindrical wall.
package layout

import (
	"github.com/keuio/PhotoWall3D/internal/config"
	"github.com/keuio/PhotoWall3D/internal/errors"
)

const (
	maxTiltDeg = 20.0
	stagger    = 20.0
)

// CardPlacement positions one card on the wall.
type CardPlacement struct {
	Row            int
	Column         int
	ImageIndex     int
	AngleDeg       float64 // around the vertical axis
	TiltDeg        float64 // around the horizontal axis
	Depth          float64
	VerticalOffset float64
}

// Generate returns rows*columns placements in row-major order. Image indices
// cycle through imageCount, so fewer images than slots repeat.
func Generate(cfg config.Config, imageCount int) ([]CardPlacement, error) {
	if imageCount <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "image count must be positive, got %d", imageCount)
	}
	if cfg.Rows <= 0 || cfg.ColumnsPerRow <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "wall needs at least one row and column, got %dx%d", cfg.Rows, cfg.ColumnsPerRow)
	}

	placements := make([]CardPlacement, 0, cfg.Rows*cfg.ColumnsPerRow)
	half := float64(cfg.Rows-1) / 2
	step := 360 / float64(cfg.ColumnsPerRow)

	n := 0
	for r := 0; r < cfg.Rows; r++ {
		rowOffset := float64(r) - half

		// Outer rows lean toward the viewer; a single row stays upright.
		var f float64
		if cfg.Rows > 1 {
			f = rowOffset / half
		}
		tilt := f * -maxTiltDeg

		for i := 0; i < cfg.ColumnsPerRow; i++ {
			s := -stagger
			if i%2 == 1 {
				s = stagger
			}
			placements = append(placements, CardPlacement{
				Row:            r,
				Column:         i,
				ImageIndex:     n % imageCount,
				AngleDeg:       step * float64(i),
				TiltDeg:        tilt,
				Depth:          cfg.BaseRadius,
				VerticalOffset: rowOffset*cfg.RowHeightStep + s,
			})
			n++
		}
	}
	return placements, nil
}
