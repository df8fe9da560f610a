package tts

import (
	"fmt"

	"slidecast/internal/config"
	"slidecast/internal/logger"
	"slidecast/pkg/executor"
)

type implSynthesizer struct {
	backend backend
	cache   *audioCache
	tempo   float64
	exec    executor.Executor
	logger  logger.Logger
}

// New creates the Synthesizer for one conversion run. Provider selection
// happens here once; per-slide voice overrides go through the same instance.
func New(cfg *config.Config, apiKeys []string, exec executor.Executor, log logger.Logger) (Synthesizer, error) {
	var b backend

	switch cfg.TTS.Provider {
	case "google":
		b = newGoogleBackend(cfg.TTS.Language, cfg.TTS.Accent, exec, log)
	case "gemini":
		if len(apiKeys) == 0 {
			return nil, fmt.Errorf("gemini provider requires at least one API key")
		}
		b = newGeminiBackend(apiKeys, cfg.TTS.Model, cfg.TTS.Voice, log)
	default:
		return nil, fmt.Errorf("unknown tts provider %q", cfg.TTS.Provider)
	}

	return &implSynthesizer{
		backend: b,
		cache:   newAudioCache(cfg.TTS.CacheDir),
		tempo:   cfg.TTS.NarrationSpeed,
		exec:    exec,
		logger:  log,
	}, nil
}
