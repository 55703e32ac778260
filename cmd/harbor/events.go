package main

import (
	"errors"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/harbor-view/internal/engine/debug"
	"github.com/Faultbox/harbor-view/internal/engine/input"
	"github.com/Faultbox/harbor-view/internal/engine/picking"
	"github.com/Faultbox/harbor-view/internal/engine/renderer"
	"github.com/Faultbox/harbor-view/internal/engine/window"
	"github.com/Faultbox/harbor-view/internal/harbor"
	"github.com/Faultbox/harbor-view/internal/logger"
)

var errQuit = errors.New("quit requested")

func handle(e input.Event, m *harbor.Mounted, win *window.Window, r *renderer.Renderer, shots *debug.ScreenshotCapture) error {
	switch e.Type {
	case input.EventDrag:
		return m.Drag(e.DX, e.DY)
	case input.EventScroll:
		return m.Scroll(e.Wheel)
	case input.EventClick:
		return inspect(m, win, e.X, e.Y)
	case input.EventWindowResize:
		// Events carry window points; the renderer wants pixels.
		return m.Resize(win.DrawableSize())
	case input.EventKeyDown:
		switch e.Key {
		case sdl.K_ESCAPE:
			return errQuit
		case sdl.K_F12:
			path, err := shots.CaptureFromImage(r.Capture())
			if err != nil {
				logger.Warn("screenshot failed", zap.Error(err))
				return nil
			}
			logger.Info("screenshot saved", zap.String("path", path))
		}
	}
	return nil
}

// inspect logs the structure under a click.
func inspect(m *harbor.Mounted, win *window.Window, x, y int) error {
	w, h := win.GetSize()
	viewProj := renderer.Projection(m.Scene().Camera, w, h).Mul(m.Camera().ViewMatrix())
	ray := picking.ScreenToRay(float32(x), float32(y), float32(w), float32(h), viewProj.Inverse())

	n, err := m.Pick(ray)
	if err != nil || n == nil {
		return err
	}
	logger.Info("picked", zap.String("name", n.Name), zap.String("kind", string(n.Kind)))
	return nil
}

// fpsCounter reports the frame rate about once per second.
type fpsCounter struct {
	since  float64
	frames int
}

func newFPSCounter() *fpsCounter {
	return &fpsCounter{since: -1}
}

func (f *fpsCounter) tick(now float64) (float64, bool) {
	if f.since < 0 {
		f.since = now
		return 0, false
	}
	f.frames++
	if span := now - f.since; span >= 1 {
		rate := float64(f.frames) / span
		f.since, f.frames = now, 0
		return rate, true
	}
	return 0, false
}
