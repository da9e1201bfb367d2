package pixelart

import (
	"image"

	"github.com/nfnt/resize"
)

// FitScale returns the largest integer factor that scales a sprite of
// srcW x srcH pixels into a box of maxW x maxH logical pixels, never
// below 1. Integer factors keep every source pixel the same on-screen
// size, which is what pixel art needs to stay crisp.
func FitScale(srcW, srcH int, maxW, maxH float32) int {
	if srcW <= 0 || srcH <= 0 {
		return 1
	}

	scaleW := int(maxW) / srcW
	scaleH := int(maxH) / srcH

	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	if scale < 1 {
		scale = 1
	}
	return scale
}

// ScaleNearest upscales src by an integer factor with nearest-neighbor
// sampling, preserving hard pixel edges
func ScaleNearest(src image.Image, scale int) image.Image {
	if scale < 1 {
		scale = 1
	}

	b := src.Bounds()
	return resize.Resize(uint(b.Dx()*scale), uint(b.Dy()*scale), src, resize.NearestNeighbor)
}
