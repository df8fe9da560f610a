package converter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// workspace holds one run's temporary directories. Every run gets its own
// root under the configured temp path, so concurrent runs cannot collide.
type workspace struct {
	root      string
	imagesDir string
	audioDir  string
	videoDir  string
}

func newWorkspace(tempRoot string) (*workspace, error) {
	if err := os.MkdirAll(tempRoot, 0755); err != nil {
		return nil, fmt.Errorf("create temp root: %w", err)
	}

	root, err := os.MkdirTemp(tempRoot, "slidecast-")
	if err != nil {
		return nil, fmt.Errorf("create run workspace: %w", err)
	}

	ws := &workspace{
		root:      root,
		imagesDir: filepath.Join(root, "images"),
		audioDir:  filepath.Join(root, "audio"),
		videoDir:  filepath.Join(root, "video"),
	}

	for _, dir := range []string{ws.imagesDir, ws.audioDir, ws.videoDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			os.RemoveAll(root)
			return nil, fmt.Errorf("create workspace dir %s: %w", dir, err)
		}
	}

	return ws, nil
}

// cleanupWorkspace removes every temp file and the run's directories.
// Best-effort: a file that resists deletion gets a permission fix and one
// retry, then a warning. Never escalates past its own boundary.
func (c *implConverter) cleanupWorkspace(ctx context.Context, ws *workspace) {
	if ws == nil {
		return
	}

	err := filepath.Walk(ws.root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if rmErr := os.Remove(path); rmErr != nil {
			os.Chmod(path, 0777)
			if rmErr = os.Remove(path); rmErr != nil {
				c.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", path, rmErr)
			}
		}
		return nil
	})
	if err != nil {
		c.logger.Warn(ctx, "Failed to walk workspace %s: %v", ws.root, err)
	}

	if err := os.RemoveAll(ws.root); err != nil {
		c.logger.Warn(ctx, "Failed to remove workspace %s: %v", ws.root, err)
	} else {
		c.logger.Debug(ctx, "Workspace removed: %s", ws.root)
	}
}
