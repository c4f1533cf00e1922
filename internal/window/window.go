// Package window shows a session in a desktop window.
package window

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/taigrr/cubes/internal/config"
	"github.com/taigrr/cubes/internal/input"
	"github.com/taigrr/cubes/internal/shell"
)

// keys names the ebiten keys that have bindings.
var keys = map[ebiten.Key]string{
	ebiten.KeyW:          "w",
	ebiten.KeyS:          "s",
	ebiten.KeyA:          "a",
	ebiten.KeyD:          "d",
	ebiten.KeySpace:      "space",
	ebiten.KeyK:          "k",
	ebiten.KeyArrowUp:    "up",
	ebiten.KeyArrowDown:  "down",
	ebiten.KeyArrowLeft:  "left",
	ebiten.KeyArrowRight: "right",
	ebiten.KeyP:          "p",
	ebiten.KeyM:          "m",
	ebiten.KeyV:          "v",
	ebiten.KeyQ:          "q",
	ebiten.KeyEscape:     "escape",
}

// Run opens a window sized from cfg.Surface and blocks until it closes,
// the user quits or ctx is done.
func Run(ctx context.Context, cfg config.Config, reloads <-chan config.Config, logger *log.Logger) error {
	s, err := shell.NewSession(cfg, cfg.Surface.Width, cfg.Surface.Height, logger)
	if err != nil {
		return err
	}

	g := &game{
		ctx:     ctx,
		s:       s,
		reloads: reloads,
		log:     logger,
		width:   cfg.Surface.Width,
		height:  cfg.Surface.Height,
		pix:     make([]byte, 4*cfg.Surface.Width*cfg.Surface.Height),
	}
	ebiten.SetWindowTitle("cubes")
	ebiten.SetWindowSize(cfg.Surface.Width, cfg.Surface.Height)
	ebiten.SetTPS(cfg.Scene.FPS)
	return ebiten.RunGame(g)
}

type game struct {
	ctx     context.Context
	s       *shell.Session
	reloads <-chan config.Config
	log     *log.Logger

	width, height int
	pix           []byte
	fbImg         *ebiten.Image
}

func (g *game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}

	select {
	case next, ok := <-g.reloads:
		if !ok {
			g.reloads = nil
			break
		}
		if err := g.s.Reload(next); err != nil {
			g.log.Warn("config reload ignored", "err", err)
			break
		}
		if g.s.FPS() != ebiten.TPS() {
			ebiten.SetTPS(g.s.FPS())
		}
	default:
	}

	for key, name := range keys {
		if inpututil.IsKeyJustPressed(key) && g.s.Handle(input.Lookup(name)) {
			g.log.Info("quit")
			return ebiten.Termination
		}
	}

	g.s.Frame()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.fbImg == nil {
		g.fbImg = ebiten.NewImage(g.width, g.height)
	}
	g.s.Framebuffer().PutRGBA(g.pix)
	g.fbImg.WritePixels(g.pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
