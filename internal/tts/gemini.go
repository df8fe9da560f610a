package tts

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"slidecast/internal/logger"
)

// geminiVoices is the enumerated set of prebuilt voices the speech model
// accepts.
var geminiVoices = []string{
	"Zephyr", "Puck", "Charon", "Kore", "Fenrir", "Leda",
	"Orus", "Aoede", "Callirrhoe", "Autonoe", "Enceladus", "Iapetus",
}

// geminiSampleRate is the PCM sample rate of the speech model's output.
const geminiSampleRate = 24000

type geminiBackend struct {
	apiKeys      []string
	model        string
	defaultVoice string
	logger       logger.Logger

	// One synthesizer is shared by every concurrent conversion in watch
	// mode, so the rotation cursor needs a lock.
	mu         sync.Mutex
	currentKey int
}

func newGeminiBackend(apiKeys []string, model, defaultVoice string, log logger.Logger) *geminiBackend {
	return &geminiBackend{
		apiKeys:      apiKeys,
		model:        model,
		defaultVoice: defaultVoice,
		logger:       log,
	}
}

func (g *geminiBackend) Name() string { return "gemini" }
func (g *geminiBackend) Ext() string  { return ".wav" }

func (g *geminiBackend) ResolveVoice(ctx context.Context, requested string) string {
	if requested == "" {
		return g.defaultVoice
	}
	for _, v := range geminiVoices {
		if requested == v {
			return requested
		}
	}
	g.logger.Warn(ctx, "Unknown gemini voice %q, falling back to %q", requested, g.defaultVoice)
	return g.defaultVoice
}

// Synthesize sends narration text to the Gemini speech model and writes the
// returned PCM stream as a WAV file. Rotates API keys on 429 / quota errors.
func (g *geminiBackend) Synthesize(ctx context.Context, text, voice, outPath string) (float64, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: voice},
			},
		},
	}

	attempts := len(g.apiKeys)
	var lastErr error

	for range attempts {
		keyIdx, key := g.activeKey()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(text), cfg)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				g.logger.Warn(ctx, "Key %d rate limited, rotating...", keyIdx+1)
				g.rotateKey()
				lastErr = err
				continue
			}
			return 0, fmt.Errorf("generate speech: %w", err)
		}

		pcm := extractAudioData(result)
		if len(pcm) == 0 {
			return 0, fmt.Errorf("empty audio response from gemini")
		}

		if err := writeWAV(outPath, pcm, geminiSampleRate); err != nil {
			return 0, fmt.Errorf("write narration wav: %w", err)
		}

		// 16-bit mono PCM: two bytes per sample.
		return float64(len(pcm)) / float64(geminiSampleRate*2), nil
	}

	return 0, fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (g *geminiBackend) activeKey() (int, string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentKey, g.apiKeys[g.currentKey]
}

func (g *geminiBackend) rotateKey() {
	g.mu.Lock()
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
	g.mu.Unlock()
}

func extractAudioData(result *genai.GenerateContentResponse) []byte {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return nil
	}

	var data []byte
	for _, part := range result.Candidates[0].Content.Parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			data = append(data, part.InlineData.Data...)
		}
	}
	return data
}
