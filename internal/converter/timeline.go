package converter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// crossfadeDuration is the fixed blend between adjacent segments.
	crossfadeDuration = 0.3
	// audioSampleRate is the uniform rate every segment's audio is resampled
	// to before concatenation, so mismatched provider rates never meet.
	audioSampleRate = 44100

	frameWidth  = 1280
	frameHeight = 720
)

// renderSegmentClip normalizes one segment into a uniform clip: fixed frame
// size, fixed sample rate, one video and one audio stream, exact target
// duration. Uniform clips keep the crossfade concat graph simple.
func (c *implConverter) renderSegmentClip(ctx context.Context, seg segment, ws *workspace, ordinal int) (string, error) {
	outPath := filepath.Join(ws.root, fmt.Sprintf("segment_%03d.mp4", ordinal))
	duration := formatSeconds(seg.duration)

	var args []string
	videoFilter := fmt.Sprintf(
		"scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2:color=black,setsar=1,format=yuv420p",
		frameWidth, frameHeight, frameWidth, frameHeight,
	)

	if seg.videoPath != "" {
		args = []string{"-y", "-i", seg.videoPath}
		if !c.hasAudioStream(ctx, seg.videoPath) {
			args = append(args, "-f", "lavfi", "-t", duration, "-i", silentSource())
		} else {
			// Re-declare the video as input 1's audio via a second read; keeps
			// the mapping uniform with the image branch.
			args = append(args, "-i", seg.videoPath)
		}
		// Freeze the last frame when the computed duration outruns the video.
		videoFilter += fmt.Sprintf(",tpad=stop_mode=clone:stop_duration=%s", duration)
	} else {
		args = []string{"-y", "-loop", "1", "-t", duration, "-i", seg.imagePath}
		if seg.audioPath != "" {
			args = append(args, "-i", seg.audioPath)
		} else {
			args = append(args, "-f", "lavfi", "-t", duration, "-i", silentSource())
		}
	}

	args = append(args,
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-vf", videoFilter,
		"-af", fmt.Sprintf("aresample=%d,apad", audioSampleRate),
		"-r", strconv.Itoa(c.cfg.Timing.FPS),
		"-t", duration,
		"-c:v", c.cfg.FFmpeg.Encoder,
		"-preset", c.cfg.FFmpeg.Preset,
		"-b:v", c.cfg.FFmpeg.VideoBitrate,
		"-c:a", "aac",
		"-ac", "2",
		outPath,
	)

	if _, err := c.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return "", fmt.Errorf("%w: render segment %d: %v", ErrEncodingFailed, seg.index, err)
	}

	return outPath, nil
}

// assembleTimeline concatenates the normalized clips into one container,
// applying the fixed crossfade to every segment after the first.
func (c *implConverter) assembleTimeline(ctx context.Context, clips []string, durations []float64, outPath string) error {
	if len(clips) == 1 {
		if err := os.Rename(clips[0], outPath); err != nil {
			if err := copyFile(clips[0], outPath); err != nil {
				return fmt.Errorf("%w: move single segment: %v", ErrEncodingFailed, err)
			}
		}
		return nil
	}

	args := []string{"-y"}
	for _, clip := range clips {
		args = append(args, "-i", clip)
	}

	args = append(args,
		"-filter_complex", buildCrossfadeFilter(durations, crossfadeDuration),
		"-map", "[vout]",
		"-map", "[aout]",
		"-r", strconv.Itoa(c.cfg.Timing.FPS),
		"-c:v", c.cfg.FFmpeg.Encoder,
		"-preset", c.cfg.FFmpeg.Preset,
		"-b:v", c.cfg.FFmpeg.VideoBitrate,
		"-c:a", "aac",
		outPath,
	)

	if _, err := c.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return fmt.Errorf("%w: concatenate segments: %v", ErrEncodingFailed, err)
	}

	return nil
}

// buildCrossfadeFilter builds the xfade/acrossfade graph for n uniform
// clips. The incoming segment's fade starts `fade` seconds before the end of
// the accumulated program, so each transition shortens the total by `fade`.
func buildCrossfadeFilter(durations []float64, fade float64) string {
	n := len(durations)
	var sb strings.Builder

	prevV, prevA := "[0:v]", "[0:a]"
	offset := 0.0

	for i := 1; i < n; i++ {
		offset += durations[i-1] - fade

		vLabel := fmt.Sprintf("[vx%d]", i)
		aLabel := fmt.Sprintf("[ax%d]", i)
		if i == n-1 {
			vLabel = "[vout]"
			aLabel = "[aout]"
		}

		fmt.Fprintf(&sb, "%s[%d:v]xfade=transition=fade:duration=%s:offset=%s%s;",
			prevV, i, formatSeconds(fade), formatSeconds(offset), vLabel)
		fmt.Fprintf(&sb, "%s[%d:a]acrossfade=d=%s%s",
			prevA, i, formatSeconds(fade), aLabel)
		if i < n-1 {
			sb.WriteString(";")
		}

		prevV, prevA = vLabel, aLabel
	}

	return sb.String()
}

// applySpeed produces the final output. Speed 1.0 is a plain rename; any
// other factor re-encodes through setpts/atempo, which scale the visual
// timestamps and audio tempo independently.
func (c *implConverter) applySpeed(ctx context.Context, inPath, outPath string, speed float64) error {
	if speed == 1.0 {
		if err := os.Rename(inPath, outPath); err != nil {
			if err := copyFile(inPath, outPath); err != nil {
				return fmt.Errorf("%w: move output to final location: %v", ErrEncodingFailed, err)
			}
		}
		return nil
	}

	filter := fmt.Sprintf("[0:v]setpts=PTS/%g[v];[0:a]atempo=%g[a]", speed, speed)
	args := []string{
		"-y",
		"-i", inPath,
		"-filter_complex", filter,
		"-map", "[v]",
		"-map", "[a]",
		"-r", strconv.Itoa(c.cfg.Timing.FPS),
		"-c:v", c.cfg.FFmpeg.Encoder,
		"-preset", c.cfg.FFmpeg.Preset,
		"-b:v", c.cfg.FFmpeg.VideoBitrate,
		"-c:a", "aac",
		outPath,
	}

	if _, err := c.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return fmt.Errorf("%w: apply speed factor: %v", ErrEncodingFailed, err)
	}

	return nil
}

func (c *implConverter) hasAudioStream(ctx context.Context, path string) bool {
	out, err := c.executor.Execute(ctx, "ffprobe",
		"-v", "error",
		"-select_streams", "a",
		"-show_entries", "stream=codec_type",
		"-of", "csv=p=0",
		path,
	)
	return err == nil && strings.TrimSpace(out) != ""
}

func silentSource() string {
	return fmt.Sprintf("anullsrc=channel_layout=stereo:sample_rate=%d", audioSampleRate)
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("write destination: %w", err)
	}
	return nil
}
