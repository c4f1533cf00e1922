package render

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

// Framebuffer is an in-memory Surface. The shells blit it to a terminal or
// a window once per frame.
type Framebuffer struct {
	Width  int          // Width in pixels
	Height int          // Height in pixels
	Pixels []color.RGBA // Row-major pixel data

	pen color.RGBA
}

// NewFramebuffer creates a new framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
		pen:    ColorWhite,
	}
}

// Size implements Surface.
func (fb *Framebuffer) Size() (int, int) {
	return fb.Width, fb.Height
}

// SetColor sets the pen used by the drawing operations.
func (fb *Framebuffer) SetColor(c color.RGBA) {
	fb.pen = c
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c color.RGBA) {
	n := len(fb.Pixels)
	if n == 0 {
		return
	}
	fb.Pixels[0] = c
	for i := 1; i < n; i *= 2 {
		copy(fb.Pixels[i:], fb.Pixels[:i])
	}
}

// SetPixel sets a pixel at (x, y) to the given color.
// Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPixel(x0, y0, fb.pen)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// FillRect draws a filled rectangle clipped to the framebuffer.
func (fb *Framebuffer) FillRect(x, y, w, h int) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, fb.Width), min(y+h, fb.Height)
	for py := y0; py < y1; py++ {
		row := fb.Pixels[py*fb.Width : (py+1)*fb.Width]
		for px := x0; px < x1; px++ {
			row[px] = fb.pen
		}
	}
}

// DrawSpan fills the inclusive run [x0, x1] on row y.
func (fb *Framebuffer) DrawSpan(x0, x1, y int) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	fb.FillRect(x0, y, x1-x0+1, 1)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// PutRGBA copies the pixels into dst as packed 8-bit RGBA, the layout of
// image.RGBA.Pix. dst must hold 4*Width*Height bytes.
func (fb *Framebuffer) PutRGBA(dst []byte) {
	for i, p := range fb.Pixels {
		o := i * 4
		dst[o], dst[o+1], dst[o+2], dst[o+3] = p.R, p.G, p.B, p.A
	}
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	fb.PutRGBA(img.Pix)
	return img
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, fb.ToImage()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
