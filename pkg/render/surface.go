// Package render implements the software rasterization pipeline for cube
// scenes: transform, cull, scan-line fill and depth test.
package render

import "image/color"

// Surface is a 2D pixel target with a current pen color.
// Coordinates outside Size are ignored by implementations.
type Surface interface {
	Size() (width, height int)
	SetColor(c Color)
	DrawLine(x0, y0, x1, y1 int)
	FillRect(x, y, w, h int)
	// DrawSpan fills the inclusive run [x0, x1] on row y.
	DrawSpan(x0, x1, y int)
}

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// Colors for convenience
var (
	ColorBlack = color.RGBA{0, 0, 0, 255}
	ColorWhite = color.RGBA{255, 255, 255, 255}
	ColorGreen = color.RGBA{0, 255, 128, 255}
)

// RGB creates a color from RGB values.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}
