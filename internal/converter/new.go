package converter

import (
	"slidecast/internal/config"
	"slidecast/internal/history"
	"slidecast/internal/logger"
	"slidecast/internal/tts"
	"slidecast/pkg/executor"
)

type implConverter struct {
	cfg      *config.Config
	executor executor.Executor
	synth    tts.Synthesizer
	history  history.Recorder // nil disables run recording
	logger   logger.Logger
}

// New creates a new Converter instance
func New(cfg *config.Config, exec executor.Executor, synth tts.Synthesizer, hist history.Recorder, log logger.Logger) Converter {
	return &implConverter{
		cfg:      cfg,
		executor: exec,
		synth:    synth,
		history:  hist,
		logger:   log,
	}
}
