package render

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestFramebufferClear(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {3, 5}, {64, 33}, {0, 0}} {
		fb := NewFramebuffer(size[0], size[1])
		c := RGB(10, 20, 30)
		fb.Clear(c)
		for i, p := range fb.Pixels {
			if p != c {
				t.Fatalf("%dx%d: pixel %d = %v, want %v", size[0], size[1], i, p, c)
			}
		}
	}
}

func TestFramebufferFillRectClips(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.Clear(ColorBlack)
	fb.SetColor(ColorGreen)
	fb.FillRect(-1, 2, 3, 5)

	count := 0
	for y := range 4 {
		for x := range 4 {
			if fb.GetPixel(x, y) == ColorGreen {
				count++
				if x > 1 || y < 2 {
					t.Errorf("pixel (%d,%d) filled outside the rectangle", x, y)
				}
			}
		}
	}
	if count != 4 {
		t.Errorf("filled %d pixels, want 4", count)
	}
}

func TestFramebufferDrawSpan(t *testing.T) {
	fb := NewFramebuffer(8, 2)
	fb.Clear(ColorBlack)
	fb.SetColor(ColorWhite)
	fb.DrawSpan(5, 2, 1)

	for x := range 8 {
		want := ColorBlack
		if x >= 2 && x <= 5 {
			want = ColorWhite
		}
		if got := fb.GetPixel(x, 1); got != want {
			t.Errorf("pixel (%d,1) = %v, want %v", x, got, want)
		}
		if got := fb.GetPixel(x, 0); got != ColorBlack {
			t.Errorf("row 0 touched at x=%d", x)
		}
	}
}

func TestFramebufferDrawLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           int
	}{
		{"horizontal", 0, 0, 7, 0, 8},
		{"vertical", 3, 1, 3, 6, 6},
		{"diagonal", 0, 0, 7, 7, 8},
		{"reversed diagonal", 7, 7, 0, 0, 8},
		{"point", 2, 2, 2, 2, 1},
		{"clipped", -5, 4, 20, 4, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := NewFramebuffer(8, 8)
			fb.Clear(ColorBlack)
			fb.SetColor(ColorWhite)
			fb.DrawLine(tt.x0, tt.y0, tt.x1, tt.y1)

			lit := 0
			for _, p := range fb.Pixels {
				if p == ColorWhite {
					lit++
				}
			}
			if lit != tt.want {
				t.Errorf("lit %d pixels, want %d", lit, tt.want)
			}
		})
	}
}

func TestFramebufferOutOfBounds(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.SetPixel(-1, 0, ColorGreen)
	fb.SetPixel(2, 1, ColorGreen)
	if got := fb.GetPixel(5, 5); got != (Color{}) {
		t.Errorf("GetPixel out of bounds = %v, want zero", got)
	}
}

func TestFramebufferSavePNG(t *testing.T) {
	fb := NewFramebuffer(6, 4)
	fb.Clear(ColorBlack)
	fb.SetPixel(1, 2, RGB(200, 100, 50))

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := fb.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 4 {
		t.Errorf("bounds = %v, want 6x4", b)
	}
	r, g, b, _ := img.At(1, 2).RGBA()
	if r>>8 != 200 || g>>8 != 100 || b>>8 != 50 {
		t.Errorf("pixel (1,2) = %d,%d,%d, want 200,100,50", r>>8, g>>8, b>>8)
	}
}

func TestFramebufferSavePNGBadPath(t *testing.T) {
	fb := NewFramebuffer(1, 1)
	if err := fb.SavePNG(filepath.Join(t.TempDir(), "missing", "frame.png")); err == nil {
		t.Error("expected error for missing directory")
	}
}
