package converter

import (
	"context"
	"fmt"
	"path/filepath"

	"slidecast/internal/deck"
	"slidecast/internal/media"
	"slidecast/internal/notes"
	"slidecast/internal/script"
)

// fallbackDuration is the base duration, in seconds, for a slide with no
// narration and no embedded video before the minimum-time floor applies.
const fallbackDuration = 1.0

// segment is one slide's fully resolved unit: a visual stream (still image
// or embedded video clip), at most one audio stream, and a final duration.
// A segment never carries both narration audio and an embedded video.
type segment struct {
	index     int
	imagePath string
	videoPath string
	audioPath string
	duration  float64
}

// runState carries the timing defaults through the slide fold. A slide's
// directive updates these for every later slide without its own directive
// (sticky propagation).
type runState struct {
	minTime   int
	pauseTime int
}

// buildSegments folds over the selected slides in order, producing one
// segment per slide plus the cleaned narration lines for the optional script
// export. Filtered-out slides produce no segments and no side effects.
func (c *implConverter) buildSegments(ctx context.Context, d *deck.Deck, images []string, extracted []string, ws *workspace, selected map[int]bool) ([]segment, []script.SlideNarration, error) {
	if len(images) < len(d.Slides) {
		return nil, nil, fmt.Errorf("%w: rendered %d images for %d slides", ErrRenderingUnavailable, len(images), len(d.Slides))
	}

	state := runState{
		minTime:   c.cfg.Timing.MinTimePerSlide,
		pauseTime: c.cfg.Timing.PauseTimeAtEnd,
	}

	var segments []segment
	var narrations []script.SlideNarration

	for i, slide := range d.Slides {
		if selected != nil && !selected[slide.Index] {
			continue
		}

		seg, cleaned, next, err := c.buildSegment(ctx, slide, images[i], extracted, ws, state)
		if err != nil {
			return nil, nil, err
		}
		state = next

		segments = append(segments, seg)
		narrations = append(narrations, script.SlideNarration{Index: slide.Index, Text: cleaned})

		c.logger.Info(ctx, "Slide %d: duration %.2fs (video=%v, narration=%v)",
			slide.Index, seg.duration, seg.videoPath != "", seg.audioPath != "")
	}

	return segments, narrations, nil
}

// buildSegment resolves one slide's duration:
//  1. embedded video match is checked before synthesis, so narration for
//     video slides is never synthesized and discarded
//  2. narration audio duration, else the 1s fallback
//  3. floor at the effective minimum time
//  4. plus the effective end-of-slide pause
//  5. video slides stretch to the video's native duration when longer
func (c *implConverter) buildSegment(ctx context.Context, slide *deck.Slide, imagePath string, extracted []string, ws *workspace, state runState) (segment, string, runState, error) {
	directives, cleaned := notes.Parse(slide.Notes)

	if directives.MinTime != nil {
		state.minTime = *directives.MinTime
	}
	if directives.PauseTime != nil {
		state.pauseTime = *directives.PauseTime
	}

	seg := segment{index: slide.Index, imagePath: imagePath}

	videoName, hasVideo := slide.MatchVideo(extracted)

	base := fallbackDuration
	if !hasVideo && cleaned != "" {
		audioPath := filepath.Join(ws.audioDir, fmt.Sprintf("narration_%d%s", slide.Index, c.synth.FileExt()))
		duration, err := c.synth.Synthesize(ctx, cleaned, directives.Voice, audioPath)
		if err != nil {
			return segment{}, "", state, fmt.Errorf("%w: slide %d: %v", ErrSynthesisFailed, slide.Index, err)
		}
		seg.audioPath = audioPath
		base = duration
	}

	if base < float64(state.minTime) {
		base = float64(state.minTime)
	}
	if state.pauseTime > 0 {
		base += float64(state.pauseTime)
	}

	if hasVideo {
		seg.videoPath = filepath.Join(ws.videoDir, videoName)
		seg.imagePath = ""

		native, err := media.Duration(ctx, c.executor, seg.videoPath)
		if err != nil {
			return segment{}, "", state, fmt.Errorf("%w: probe embedded video for slide %d: %v", ErrEncodingFailed, slide.Index, err)
		}
		if native > base {
			base = native
		}
	}

	seg.duration = base
	return seg, cleaned, state, nil
}
