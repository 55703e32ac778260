// Command harbor opens a window onto the animated harbor scene.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/harbor-view/internal/config"
	"github.com/Faultbox/harbor-view/internal/engine/debug"
	"github.com/Faultbox/harbor-view/internal/engine/input"
	"github.com/Faultbox/harbor-view/internal/engine/renderer"
	"github.com/Faultbox/harbor-view/internal/engine/window"
	"github.com/Faultbox/harbor-view/internal/harbor"
	"github.com/Faultbox/harbor-view/internal/harbor/scene"
	"github.com/Faultbox/harbor-view/internal/logger"
)

const windowTitle = "Harbor"

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	err = logger.Init(logger.Options{
		Level:   cfg.Logging.Level,
		File:    logger.DefaultFileConfig(cfg.Logging.LogFile),
		Console: os.Stdout,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("viewer stopped", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("viewer closed normally")
}

func run(cfg *config.Config) error {
	win, err := window.New(window.Config{
		Title:      windowTitle,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return err
	}
	defer win.Close()

	dw, dh := win.DrawableSize()
	r, err := renderer.New(renderer.Config{
		Width:            dw,
		Height:           dh,
		Shadows:          cfg.Graphics.Shadows,
		ShadowResolution: cfg.Graphics.ShadowResolution,
		Labels:           cfg.Graphics.Labels,
		ShowBounds:       cfg.Debug.ShowBounds,
		WaterSegments:    cfg.Animation.WaterSegments,
	})
	if err != nil {
		return err
	}
	defer r.Destroy()

	s, cam, sch, err := harbor.Build(scene.DefaultDefinitions(), cfg.Animation.TimeScale)
	if err != nil {
		return err
	}
	cam.DragSensitivity = cfg.Camera.DragSensitivity
	cam.ZoomSensitivity = cfg.Camera.ZoomSensitivity
	cam.Damping = cfg.Camera.Damping

	m, err := harbor.Mount(s, r, cam, sch)
	if err != nil {
		return err
	}
	defer m.Unmount()

	shots := debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, "harbor")
	in := input.New()

	var minFrame time.Duration
	if cfg.Graphics.FPSLimit > 0 {
		minFrame = time.Second / time.Duration(cfg.Graphics.FPSLimit)
	}

	start := window.Ticks()
	last := start
	fps := newFPSCounter()
	for {
		frameStart := time.Now()
		if in.Update() {
			return nil
		}
		for _, e := range in.Events() {
			if err := handle(e, m, win, r, shots); err != nil {
				if errors.Is(err, errQuit) {
					return nil
				}
				return err
			}
		}

		now := window.Ticks()
		if _, err := m.Tick(now-start, now-last); err != nil {
			return err
		}
		last = now
		win.SwapBuffers()

		if rate, ok := fps.tick(now); ok {
			win.SetTitle(fmt.Sprintf("%s - %.0f fps", windowTitle, rate))
		}
		if minFrame > 0 {
			if spent := time.Since(frameStart); spent < minFrame {
				time.Sleep(minFrame - spent)
			}
		}
	}
}
