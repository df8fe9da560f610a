package tts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"slidecast/internal/logger"
	"slidecast/internal/media"
	"slidecast/pkg/executor"
)

// googleAccents are the top-level domains the free translate endpoint speaks
// with a regional accent. The accent doubles as the provider's voice
// identifier.
var googleAccents = []string{
	"com", "co.uk", "com.au", "ca", "co.in", "ie", "co.za", "com.ng",
}

// maxChunkLen is the longest text the translate endpoint accepts per request.
const maxChunkLen = 200

type googleBackend struct {
	language string
	accent   string
	client   *http.Client
	exec     executor.Executor
	logger   logger.Logger
}

func newGoogleBackend(language, accent string, exec executor.Executor, log logger.Logger) *googleBackend {
	return &googleBackend{
		language: language,
		accent:   accent,
		client:   &http.Client{Timeout: 60 * time.Second},
		exec:     exec,
		logger:   log,
	}
}

func (g *googleBackend) Name() string { return "google" }
func (g *googleBackend) Ext() string  { return ".mp3" }

// ResolveVoice treats the accent TLD as the voice. Unknown accents fall back
// to the run default with a diagnostic.
func (g *googleBackend) ResolveVoice(ctx context.Context, requested string) string {
	if requested == "" {
		return g.accent
	}
	for _, a := range googleAccents {
		if requested == a {
			return requested
		}
	}
	g.logger.Warn(ctx, "Unknown google accent %q, falling back to %q", requested, g.accent)
	return g.accent
}

// Synthesize fetches MP3 audio for each text chunk from the public translate
// endpoint and concatenates the chunks into one file. MP3 frames are
// self-delimiting, so byte concatenation is valid.
func (g *googleBackend) Synthesize(ctx context.Context, text, voice, outPath string) (float64, error) {
	out, err := os.Create(outPath)
	if err != nil {
		return 0, fmt.Errorf("create narration file: %w", err)
	}

	for _, chunk := range chunkText(text, maxChunkLen) {
		data, err := g.fetchChunk(ctx, chunk, voice)
		if err != nil {
			out.Close()
			return 0, err
		}
		if _, err := out.Write(data); err != nil {
			out.Close()
			return 0, fmt.Errorf("write narration file: %w", err)
		}
	}

	if err := out.Close(); err != nil {
		return 0, fmt.Errorf("close narration file: %w", err)
	}

	return media.Duration(ctx, g.exec, outPath)
}

func (g *googleBackend) fetchChunk(ctx context.Context, chunk, accent string) ([]byte, error) {
	endpoint := fmt.Sprintf("https://translate.google.%s/translate_tts", accent)
	params := url.Values{
		"ie":     {"UTF-8"},
		"client": {"tw-ob"},
		"tl":     {g.language},
		"q":      {chunk},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build tts request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tts request: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read tts response: %w", err)
	}
	return data, nil
}

// chunkText splits text into pieces of at most limit runes, preferring
// sentence boundaries, then word boundaries. Words longer than the limit are
// split hard.
func chunkText(text string, limit int) []string {
	var chunks []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if currentLen > 0 {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
			currentLen = 0
		}
	}

	for _, sentence := range splitSentences(text) {
		runes := []rune(sentence)
		if currentLen > 0 && currentLen+1+len(runes) > limit {
			flush()
		}

		if len(runes) <= limit {
			if currentLen > 0 {
				current.WriteString(" ")
				currentLen++
			}
			current.WriteString(sentence)
			currentLen += len(runes)
			continue
		}

		// Sentence alone exceeds the limit; fall back to word packing.
		for _, word := range strings.Fields(sentence) {
			wr := []rune(word)
			for len(wr) > limit {
				flush()
				chunks = append(chunks, string(wr[:limit]))
				wr = wr[limit:]
			}
			if currentLen > 0 && currentLen+1+len(wr) > limit {
				flush()
			}
			if currentLen > 0 {
				current.WriteString(" ")
				currentLen++
			}
			current.WriteString(string(wr))
			currentLen += len(wr)
		}
	}

	flush()
	return chunks
}

func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}
