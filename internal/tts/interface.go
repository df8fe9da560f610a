package tts

import "context"

// Synthesizer converts cleaned narration text to an audio file on disk and
// reports the clip's duration in seconds. A voice of "" means the run's
// default; unknown voices fall back to the default with a diagnostic, never
// an error.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice, outPath string) (float64, error)
	FileExt() string
}

// backend is one concrete speech provider behind the Synthesizer wrapper.
type backend interface {
	Synthesize(ctx context.Context, text, voice, outPath string) (float64, error)
	ResolveVoice(ctx context.Context, requested string) string
	Name() string
	Ext() string
}
