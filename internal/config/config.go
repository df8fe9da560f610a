package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	TTS     TTSConfig     `yaml:"tts"`
	Render  RenderConfig  `yaml:"render"`
	FFmpeg  FFmpegConfig  `yaml:"ffmpeg"`
	Timing  TimingConfig  `yaml:"timing"`
	Paths   PathsConfig   `yaml:"paths"`
	Logging LoggingConfig `yaml:"logging"`
	History HistoryConfig `yaml:"history"`
}

type TTSConfig struct {
	Provider       string  `yaml:"provider"`
	Language       string  `yaml:"language"`
	Accent         string  `yaml:"accent"`
	Voice          string  `yaml:"voice"`
	Model          string  `yaml:"model"`
	NarrationSpeed float64 `yaml:"narration_speed"`
	CacheDir       string  `yaml:"cache_dir"`
}

type RenderConfig struct {
	SofficeBinary  string `yaml:"soffice_binary"`
	PdftoppmBinary string `yaml:"pdftoppm_binary"`
	DPI            int    `yaml:"dpi"`
}

type FFmpegConfig struct {
	Encoder      string `yaml:"encoder"`
	Preset       string `yaml:"preset"`
	VideoBitrate string `yaml:"video_bitrate"`
}

type TimingConfig struct {
	MinTimePerSlide int     `yaml:"min_time_per_slide"`
	PauseTimeAtEnd  int     `yaml:"pause_time_at_end"`
	FPS             int     `yaml:"fps"`
	Speed           float64 `yaml:"speed"`
}

type PathsConfig struct {
	Watch  string `yaml:"watch"`
	Output string `yaml:"output"`
	Temp   string `yaml:"temp"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type HistoryConfig struct {
	Database string `yaml:"database"`
}

// Load reads and validates a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// Default returns a config with every field at its built-in default.
func Default() *Config {
	cfg := &Config{}
	_ = cfg.Validate()
	return cfg
}

func (c *Config) Validate() error {
	if c.TTS.Provider == "" {
		c.TTS.Provider = "google"
	}
	if c.TTS.Provider != "google" && c.TTS.Provider != "gemini" {
		return fmt.Errorf("tts.provider must be google or gemini, got %q", c.TTS.Provider)
	}
	if c.TTS.Language == "" {
		c.TTS.Language = "en"
	}
	if c.TTS.Accent == "" {
		c.TTS.Accent = "com"
	}
	if c.TTS.Voice == "" {
		c.TTS.Voice = "Kore"
	}
	if c.TTS.Model == "" {
		c.TTS.Model = "gemini-2.5-flash-preview-tts"
	}
	if c.TTS.NarrationSpeed == 0 {
		c.TTS.NarrationSpeed = 1.0
	}
	if c.TTS.NarrationSpeed < 0.5 || c.TTS.NarrationSpeed > 2.0 {
		return fmt.Errorf("tts.narration_speed must be between 0.5 and 2.0")
	}
	if c.TTS.CacheDir == "" {
		c.TTS.CacheDir = "data/cache"
	}

	if c.Render.SofficeBinary == "" {
		c.Render.SofficeBinary = "soffice"
	}
	if c.Render.PdftoppmBinary == "" {
		c.Render.PdftoppmBinary = "pdftoppm"
	}
	if c.Render.DPI == 0 {
		c.Render.DPI = 150
	}

	if c.FFmpeg.Encoder == "" {
		c.FFmpeg.Encoder = "libx264"
	}
	if c.FFmpeg.Preset == "" {
		c.FFmpeg.Preset = "medium"
	}
	if c.FFmpeg.VideoBitrate == "" {
		c.FFmpeg.VideoBitrate = "5M"
	}

	if c.Timing.MinTimePerSlide < 0 {
		return fmt.Errorf("timing.min_time_per_slide must not be negative")
	}
	if c.Timing.PauseTimeAtEnd < 0 {
		return fmt.Errorf("timing.pause_time_at_end must not be negative")
	}
	if c.Timing.FPS == 0 {
		c.Timing.FPS = 30
	}
	if c.Timing.FPS < 0 {
		return fmt.Errorf("timing.fps must be positive")
	}
	if c.Timing.Speed == 0 {
		c.Timing.Speed = 1.0
	}
	if c.Timing.Speed < 0.5 || c.Timing.Speed > 2.0 {
		return fmt.Errorf("timing.speed must be between 0.5 and 2.0")
	}

	if c.Paths.Watch == "" {
		c.Paths.Watch = "data/input"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/output"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	if c.History.Database == "" {
		c.History.Database = "data/history.db"
	}

	return nil
}
