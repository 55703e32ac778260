// Package config handles viewer configuration loading and management.
// The harbor layout itself is compiled in; this only covers the host.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics  GraphicsConfig  `yaml:"graphics"`
	Camera    CameraConfig    `yaml:"camera"`
	Animation AnimationConfig `yaml:"animation"`
	Debug     DebugConfig     `yaml:"debug"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width            int  `yaml:"width"`
	Height           int  `yaml:"height"`
	Fullscreen       bool `yaml:"fullscreen"`
	VSync            bool `yaml:"vsync"`
	FPSLimit         int  `yaml:"fps_limit"`
	Shadows          bool `yaml:"shadows"`
	ShadowResolution int  `yaml:"shadow_resolution"`
	Labels           bool `yaml:"labels"`
}

// CameraConfig holds orbit input tuning. The orbit limits are part of the
// scene and cannot be changed here.
type CameraConfig struct {
	DragSensitivity float32 `yaml:"drag_sensitivity"`
	ZoomSensitivity float32 `yaml:"zoom_sensitivity"`
	Damping         float32 `yaml:"damping"` // 0 disables inertia
}

// AnimationConfig holds frame clock and water mesh settings.
type AnimationConfig struct {
	TimeScale     float64 `yaml:"time_scale"`
	WaterSegments int     `yaml:"water_segments"`
}

// DebugConfig holds developer aids.
type DebugConfig struct {
	ShowBounds    bool   `yaml:"show_bounds"`
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:            1280,
			Height:           720,
			Fullscreen:       false,
			VSync:            true,
			FPSLimit:         0,
			Shadows:          true,
			ShadowResolution: 2048,
			Labels:           true,
		},
		Camera: CameraConfig{
			DragSensitivity: 0.005,
			ZoomSensitivity: 0.1,
			Damping:         0.08,
		},
		Animation: AnimationConfig{
			TimeScale:     1.0,
			WaterSegments: 96,
		},
		Debug: DebugConfig{
			ShowBounds:    false,
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
