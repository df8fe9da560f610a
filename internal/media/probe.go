// Package media wraps ffprobe queries against audio and video files.
package media

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"slidecast/pkg/executor"
)

// Duration returns the container duration of the file at path, in seconds.
// ffprobe reports fractional seconds as a decimal string; it is parsed
// exactly before conversion to avoid float round-tripping.
func Duration(ctx context.Context, exec executor.Executor, path string) (float64, error) {
	out, err := exec.Execute(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", path, err)
	}

	d, err := decimal.NewFromString(strings.TrimSpace(out))
	if err != nil {
		return 0, fmt.Errorf("parse ffprobe duration %q: %w", strings.TrimSpace(out), err)
	}

	f, _ := d.Float64()
	if f < 0 {
		return 0, fmt.Errorf("negative duration %s for %s", d, path)
	}
	return f, nil
}
