// Package worker implements the per-slab column rendering loop: each
// Column owns a vertical strip of the image, walks it top to bottom
// scoring pixels, and flushes a small staging buffer into the shared
// image under a mutex every few rows. This is the hot path of the
// renderer — the teacher's comparably hot paths keep per-goroutine
// scratch state allocated once and reused, which this mirrors with the
// two-buffer row ping-pong and a single reused staging image.
package worker

import (
	"math"
	"sync"

	"sovmap/internal/canvas"
	"sovmap/internal/config"
	"sovmap/internal/model"
)

// Scorer is the subset of scorer.Scorer a Column needs, kept as an
// interface so tests can substitute a fixed scoring function.
type Scorer interface {
	Score(x, y int) (ownerID uint64, sum float64)
}

// Column renders the vertical pixel slab [StartX, EndX) into Image,
// writing each scored pixel's owner into OwnerIndex and counting it
// against the owning Owner. OldOwnerIndex, if non-nil, drives the hatch
// overlay for pixels that changed owner since a prior render.
type Column struct {
	StartX, EndX int

	World *model.World
	Cfg   config.Config

	Scorer Scorer

	// OwnerIndex is the shared, row-major (x + y*Width) owner id grid.
	// This worker only ever writes cells with x in [StartX, EndX), so no
	// lock is needed — slabs are disjoint.
	OwnerIndex []uint64

	// OldOwnerIndex is the previous render's owner grid, row-major, or
	// nil if none was loaded. Read-only.
	OldOwnerIndex []uint64

	Image   *canvas.Image
	ImageMu *sync.Mutex
}

// Render executes the full top-to-bottom scan of this slab, staging
// rows into a private buffer and flushing them into the shared Image
// every Cfg.StagingRows rows, plus a final flush for the remainder.
func (c *Column) Render() error {
	width := c.Cfg.Width
	height := c.Cfg.Height
	slabWidth := c.EndX - c.StartX

	thisRow := make([]uint64, slabWidth)
	prevRow := make([]uint64, slabWidth)
	thisInfluence := make([]float64, slabWidth)
	prevInfluence := make([]float64, slabWidth)
	border := make([]bool, slabWidth)

	staging := canvas.New(slabWidth, c.Cfg.StagingRows)
	rowOffset := 0

	// The loop runs one extra, synthetic iteration at y == height: there
	// is no row H to score, but row H-1's final pixels are only emitted
	// while processing the row below it (the border decision needs both
	// vertical neighbors), so a phantom all-null row is required to
	// flush the image's last real row.
	for y := 0; y <= height; y++ {
		if y < height {
			for i := 0; i < slabWidth; i++ {
				ownerID, sum := c.Scorer.Score(c.StartX+i, y)
				thisRow[i] = ownerID
				thisInfluence[i] = sum
			}
		} else {
			for i := range thisRow {
				thisRow[i] = 0
				thisInfluence[i] = 0
			}
		}

		for i := 0; i < slabWidth; i++ {
			ownerChanged := prevRow[i] != thisRow[i]

			if y > 0 {
				if err := c.drawPreviousRow(staging, rowOffset, y, i, prevRow, prevInfluence, border, ownerChanged); err != nil {
					return err
				}
			}

			if y < height && thisRow[i] != 0 {
				if owner := c.World.Owners[thisRow[i]]; owner != nil {
					owner.IncrementPixelCount()
				}
				c.OwnerIndex[(c.StartX+i)+y*width] = thisRow[i]
			}

			prevInfluence[i] = thisInfluence[i]
			border[i] = y == 0 || ownerChanged
		}

		if y > 0 {
			drawRow := y - 1
			if drawRow-rowOffset == c.Cfg.StagingRows-1 {
				if err := c.flush(staging, rowOffset, c.Cfg.StagingRows); err != nil {
					return err
				}
				staging.Reset()
				rowOffset = y
			}
		}

		thisRow, prevRow = prevRow, thisRow
	}

	if rowOffset < height {
		if err := c.flush(staging, rowOffset, height-rowOffset); err != nil {
			return err
		}
	}
	return nil
}

// drawPreviousRow emits pixel i of row y-1 into the staging buffer, if
// that row's owner at i is a known, non-NPC owner, applying the
// influence-derived alpha, the owner-transition border floor, and the
// old-owner hatch overlay.
func (c *Column) drawPreviousRow(staging *canvas.Image, rowOffset, y, i int, prevRow []uint64, prevInfluence []float64, border []bool, ownerChanged bool) error {
	prevOwnerID := prevRow[i]
	if prevOwnerID == 0 {
		return nil
	}
	prevOwner := c.World.Owners[prevOwnerID]
	if prevOwner == nil || prevOwner.NPC {
		return nil
	}

	slabWidth := len(prevRow)
	drawBorder := border[i] || ownerChanged
	if i > 0 && prevRow[i-1] != prevOwnerID {
		drawBorder = true
	}
	if i < slabWidth-1 && prevRow[i+1] != prevOwnerID {
		drawBorder = true
	}

	alpha := alphaFor(prevInfluence[i], c.Cfg)
	if drawBorder && alpha < c.Cfg.AlphaBorderFloor {
		alpha = c.Cfg.AlphaBorderFloor
	}

	drawRow := y - 1
	localRow := drawRow - rowOffset
	absX := c.StartX + i

	col := prevOwner.Color
	if err := staging.SetPixel(i, localRow, col.R, col.G, col.B, byte(alpha)); err != nil {
		return err
	}

	if c.OldOwnerIndex != nil {
		oldID := c.OldOwnerIndex[absX+drawRow*c.Cfg.Width]
		if oldID != 0 && oldID != prevOwnerID && (drawRow%c.Cfg.HatchStride+absX)%c.Cfg.HatchStride == 0 {
			oldColor := model.Color{R: 255, G: 255, B: 255}
			if oldOwner := c.World.Owners[oldID]; oldOwner != nil {
				oldColor = oldOwner.Color
			}
			if err := staging.SetPixel(i, localRow, oldColor.R, oldColor.G, oldColor.B, byte(alpha)); err != nil {
				return err
			}
		}
	}
	return nil
}

// alphaFor maps an accumulated influence sum to a pixel alpha via the
// double-log curve scaled by Cfg.AlphaMultiplier, capped at Cfg.AlphaCap.
func alphaFor(influence float64, cfg config.Config) int {
	v := math.Log(math.Log(influence+1)+1) * cfg.AlphaMultiplier
	a := int(math.Floor(v))
	if a < 0 {
		a = 0
	}
	if a > cfg.AlphaCap {
		a = cfg.AlphaCap
	}
	return a
}

// flush copies rows[0:rows) of staging into the shared Image starting
// at image row destRowOffset, holding ImageMu for the duration of the
// copy so flushes from other columns never interleave with this one.
func (c *Column) flush(staging *canvas.Image, destRowOffset, rows int) error {
	c.ImageMu.Lock()
	defer c.ImageMu.Unlock()
	for row := 0; row < rows; row++ {
		destY := destRowOffset + row
		if destY >= c.Cfg.Height {
			break
		}
		for i := 0; i < staging.Width; i++ {
			r, g, b, a := staging.GetPixelUnsafe(i, row)
			if err := c.Image.SetPixel(c.StartX+i, destY, r, g, b, a); err != nil {
				return err
			}
		}
	}
	return nil
}
