package config

import (
	"os"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "empty config gets defaults",
			config:  Config{},
			wantErr: false,
		},
		{
			name: "unknown provider",
			config: Config{
				TTS: TTSConfig{Provider: "espeak"},
			},
			wantErr: true,
		},
		{
			name: "speed out of range",
			config: Config{
				Timing: TimingConfig{Speed: 3.5},
			},
			wantErr: true,
		},
		{
			name: "narration speed out of range",
			config: Config{
				TTS: TTSConfig{NarrationSpeed: 0.1},
			},
			wantErr: true,
		},
		{
			name: "negative pause",
			config: Config{
				Timing: TimingConfig{PauseTimeAtEnd: -2},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.TTS.Provider != "google" {
		t.Errorf("Provider = %v, want google", cfg.TTS.Provider)
	}
	if cfg.Timing.FPS != 30 {
		t.Errorf("FPS = %v, want 30", cfg.Timing.FPS)
	}
	if cfg.Timing.Speed != 1.0 {
		t.Errorf("Speed = %v, want 1.0", cfg.Timing.Speed)
	}
	if cfg.FFmpeg.Encoder != "libx264" {
		t.Errorf("Encoder = %v, want libx264", cfg.FFmpeg.Encoder)
	}
}

func TestLoad(t *testing.T) {
	// Create a temporary config file
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
tts:
  provider: "gemini"
  voice: "Puck"

timing:
  min_time_per_slide: 3
  pause_time_at_end: 1
  fps: 24

paths:
  output: "out"

logging:
  level: "debug"
`

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	// Test loading
	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.TTS.Provider != "gemini" {
		t.Errorf("Provider = %v, want gemini", cfg.TTS.Provider)
	}
	if cfg.TTS.Voice != "Puck" {
		t.Errorf("Voice = %v, want Puck", cfg.TTS.Voice)
	}
	if cfg.Timing.MinTimePerSlide != 3 {
		t.Errorf("MinTimePerSlide = %v, want 3", cfg.Timing.MinTimePerSlide)
	}
	if cfg.Timing.FPS != 24 {
		t.Errorf("FPS = %v, want 24", cfg.Timing.FPS)
	}
	if cfg.Paths.Output != "out" {
		t.Errorf("Output = %v, want out", cfg.Paths.Output)
	}
	// Unset fields still get defaults
	if cfg.Paths.Temp != "data/temp" {
		t.Errorf("Temp = %v, want data/temp", cfg.Paths.Temp)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}
