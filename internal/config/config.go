// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Viewer   ViewerConfig   `yaml:"viewer"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	MSAA       int  `yaml:"msaa"`
}

// ViewerConfig holds model display settings.
type ViewerConfig struct {
	Model           string     `yaml:"model"` // path to a .gltf or .glb file
	AutoRotate      bool       `yaml:"auto_rotate"`
	CameraDistance  float32    `yaml:"camera_distance"`
	BackgroundColor [3]float32 `yaml:"background_color"`
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
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			MSAA:       4,
		},
		Viewer: ViewerConfig{
			AutoRotate:      true,
			CameraDistance:  3.0,
			BackgroundColor: [3]float32{0.12, 0.12, 0.14},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
