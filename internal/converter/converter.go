package converter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"slidecast/internal/deck"
	"slidecast/internal/history"
	"slidecast/internal/script"
)

// Convert orchestrates one conversion run and records its outcome in the run
// history when a recorder is configured.
func (c *implConverter) Convert(ctx context.Context, req Request) error {
	startTime := time.Now()

	segmentCount := 0
	totalDuration := 0.0
	err := c.run(ctx, req, &segmentCount, &totalDuration)

	if c.history != nil {
		rec := history.Run{
			DeckPath:   req.DeckPath,
			OutputPath: req.OutputPath,
			Segments:   segmentCount,
			Duration:   totalDuration,
			Status:     "ok",
		}
		if err != nil {
			rec.Status = "failed"
			rec.Error = err.Error()
		}
		if recErr := c.history.Record(ctx, rec); recErr != nil {
			c.logger.Warn(ctx, "Failed to record run history: %v", recErr)
		}
	}

	if err != nil {
		c.logger.Error(ctx, "Run FAILED after %s: %v", time.Since(startTime), err)
		return err
	}

	c.logger.Info(ctx, "========================================")
	c.logger.Info(ctx, "Conversion completed successfully!")
	c.logger.Info(ctx, "Output video: %s", req.OutputPath)
	c.logger.Info(ctx, "Segments: %d, program duration: %.2fs", segmentCount, totalDuration)
	c.logger.Info(ctx, "Processing time: %s", time.Since(startTime))
	c.logger.Info(ctx, "========================================")
	return nil
}

func (c *implConverter) run(ctx context.Context, req Request, segmentCount *int, totalDuration *float64) error {
	if !strings.EqualFold(filepath.Ext(req.DeckPath), ".pptx") {
		return fmt.Errorf("%w: not a pptx file: %s", ErrInvalidInput, req.DeckPath)
	}
	if _, err := os.Stat(req.DeckPath); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if req.OutputPath == "" {
		return fmt.Errorf("%w: output path is required", ErrInvalidInput)
	}

	selected, err := parseSlideFilter(req.SlideFilter)
	if err != nil {
		return err
	}

	if c.cfg.TTS.NarrationSpeed != 1.0 && c.cfg.Timing.Speed != 1.0 {
		c.logger.Warn(ctx, "Both narration_speed (%.2f) and global speed (%.2f) are active; tempo scaling will compound",
			c.cfg.TTS.NarrationSpeed, c.cfg.Timing.Speed)
	}

	c.logger.Info(ctx, "========================================")
	c.logger.Info(ctx, "Starting conversion: %s", req.DeckPath)
	c.logger.Info(ctx, "========================================")

	ws, err := newWorkspace(c.cfg.Paths.Temp)
	if err != nil {
		return err
	}
	defer c.cleanupWorkspace(ctx, ws)
	c.logger.Debug(ctx, "State INIT: workspace %s", ws.root)

	// Validate the package before paying for a render.
	d, err := deck.Open(req.DeckPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	defer d.Close()

	images, err := c.renderSlideImages(ctx, req.DeckPath, ws.imagesDir)
	if err != nil {
		return err
	}
	c.logger.Debug(ctx, "State IMAGES_RENDERED: %d images", len(images))

	extracted, err := d.ExtractVideos(ws.videoDir)
	if err != nil {
		return fmt.Errorf("%w: extract embedded videos: %v", ErrInvalidInput, err)
	}
	c.logger.Debug(ctx, "State VIDEOS_EXTRACTED: %d embedded videos", len(extracted))

	segments, narrations, err := c.buildSegments(ctx, d, images, extracted, ws, selected)
	if err != nil {
		return err
	}
	if len(segments) == 0 {
		return fmt.Errorf("%w: slide filter %q selected no slides", ErrInvalidInput, req.SlideFilter)
	}
	c.logger.Debug(ctx, "State SEGMENTS_BUILT: %d segments", len(segments))

	clips := make([]string, len(segments))
	durations := make([]float64, len(segments))
	for i, seg := range segments {
		clip, err := c.renderSegmentClip(ctx, seg, ws, i)
		if err != nil {
			return err
		}
		clips[i] = clip
		durations[i] = seg.duration
	}

	assembled := filepath.Join(ws.root, "assembled.mp4")
	if err := c.assembleTimeline(ctx, clips, durations, assembled); err != nil {
		return err
	}
	c.logger.Debug(ctx, "State ASSEMBLED: %s", assembled)

	if dir := filepath.Dir(req.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	if err := c.applySpeed(ctx, assembled, req.OutputPath, c.cfg.Timing.Speed); err != nil {
		return err
	}
	if c.cfg.Timing.Speed != 1.0 {
		c.logger.Debug(ctx, "State SPED_UP: factor %.2f", c.cfg.Timing.Speed)
	}
	c.logger.Debug(ctx, "State FINALIZED: %s", req.OutputPath)

	if req.ScriptPath != "" {
		title := strings.TrimSuffix(filepath.Base(req.DeckPath), filepath.Ext(req.DeckPath))
		if err := script.Write(title, narrations, req.ScriptPath); err != nil {
			c.logger.Warn(ctx, "Failed to write narration script: %v", err)
		} else {
			c.logger.Info(ctx, "Narration script: %s", req.ScriptPath)
		}
	}

	*segmentCount = len(segments)
	*totalDuration = programDuration(durations, crossfadeDuration)
	if c.cfg.Timing.Speed != 1.0 {
		*totalDuration /= c.cfg.Timing.Speed
	}

	return nil
}

// programDuration is the assembled length: segment durations minus one
// crossfade overlap per transition.
func programDuration(durations []float64, fade float64) float64 {
	total := 0.0
	for _, d := range durations {
		total += d
	}
	if n := len(durations); n > 1 {
		total -= fade * float64(n-1)
	}
	return total
}
