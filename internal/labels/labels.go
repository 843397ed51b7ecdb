// Package labels extracts one representative point per contiguous
// owner region from a rendered OwnerIndex, for placing a map label.
package labels

import "sovmap/internal/config"

// Label is one flood-filled owner region: OwnerID, its pixel centroid
// in image space, and the number of sampled grid cells it covers.
type Label struct {
	OwnerID uint64
	X, Y    int
	Count   int
}

// Extract walks ownerIndex (row-major, x+y*width, 0 = no owner) on a
// coarse grid of stride cfg.SampleRate. Every non-null grid cell it
// finds seeds a BFS flood fill over same-owner grid cells reachable by
// +/- SampleRate steps, consuming each cell by zeroing it so later
// seeds never re-walk the same region. This is destructive on
// ownerIndex; callers that need to keep it call ExtractPreserving
// instead.
func Extract(ownerIndex []uint64, width, height int, cfg config.Config) []Label {
	stride := cfg.SampleRate
	if stride <= 0 {
		stride = 1
	}

	var out []Label
	for gy := 0; gy < height; gy += stride {
		for gx := 0; gx < width; gx += stride {
			ownerID := ownerIndex[gx+gy*width]
			if ownerID == 0 {
				continue
			}
			out = append(out, floodFill(ownerIndex, width, height, stride, gx, gy, ownerID))
		}
	}
	return out
}

// ExtractPreserving behaves like Extract but leaves ownerIndex intact,
// running the flood fill over a private copy instead.
func ExtractPreserving(ownerIndex []uint64, width, height int, cfg config.Config) []Label {
	copied := make([]uint64, len(ownerIndex))
	copy(copied, ownerIndex)
	return Extract(copied, width, height, cfg)
}

type point struct{ x, y int }

// floodFill consumes every grid cell reachable from (startX, startY) by
// +/- stride steps whose owner equals ownerID, zeroing each as visited,
// and returns the resulting Label with an integer-truncated centroid
// offset by half a stride so it lands inside the cell rather than on
// its corner.
func floodFill(ownerIndex []uint64, width, height, stride, startX, startY int, ownerID uint64) Label {
	queue := []point{{startX, startY}}
	ownerIndex[startX+startY*width] = 0

	var sumX, sumY, count int
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		sumX += p.x
		sumY += p.y
		count++

		for _, d := range [...]point{{-stride, 0}, {stride, 0}, {0, -stride}, {0, stride}} {
			nx, ny := p.x+d.x, p.y+d.y
			if nx < 0 || ny < 0 || nx >= width || ny >= height {
				continue
			}
			idx := nx + ny*width
			if ownerIndex[idx] != ownerID {
				continue
			}
			ownerIndex[idx] = 0
			queue = append(queue, point{nx, ny})
		}
	}

	return Label{
		OwnerID: ownerID,
		X:       sumX/count + stride/2,
		Y:       sumY/count + stride/2,
		Count:   count,
	}
}
