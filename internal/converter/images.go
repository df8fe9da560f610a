package converter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// renderSlideImages exports one raster image per slide into the workspace's
// images directory and returns the image paths in slide order. Rendering is
// delegated to the office suite: pptx -> pdf, then pdf -> jpeg pages.
func (c *implConverter) renderSlideImages(ctx context.Context, deckPath string, imagesDir string) ([]string, error) {
	c.logger.Info(ctx, "Rendering slides to images: %s", deckPath)

	args := []string{
		"--headless",
		"--convert-to", "pdf",
		"--outdir", imagesDir,
		deckPath,
	}
	if _, err := c.executor.Execute(ctx, c.cfg.Render.SofficeBinary, args...); err != nil {
		return nil, fmt.Errorf("%w: pptx to pdf: %v", ErrRenderingUnavailable, err)
	}

	pdfName := strings.TrimSuffix(filepath.Base(deckPath), filepath.Ext(deckPath)) + ".pdf"
	pdfPath := filepath.Join(imagesDir, pdfName)
	if _, err := os.Stat(pdfPath); err != nil {
		return nil, fmt.Errorf("%w: expected pdf not found: %s", ErrRenderingUnavailable, pdfPath)
	}

	args = []string{
		"-jpeg",
		"-r", strconv.Itoa(c.cfg.Render.DPI),
		pdfPath,
		filepath.Join(imagesDir, "slide"),
	}
	if _, err := c.executor.Execute(ctx, c.cfg.Render.PdftoppmBinary, args...); err != nil {
		return nil, fmt.Errorf("%w: pdf to images: %v", ErrRenderingUnavailable, err)
	}

	images, err := collectSlideImages(imagesDir)
	if err != nil {
		return nil, err
	}

	c.logger.Info(ctx, "Rendered %d slide images", len(images))
	return images, nil
}

func collectSlideImages(imagesDir string) ([]string, error) {
	entries, err := os.ReadDir(imagesDir)
	if err != nil {
		return nil, fmt.Errorf("read images dir: %w", err)
	}

	var images []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, "slide") && (strings.HasSuffix(name, ".jpg") || strings.HasSuffix(name, ".jpeg")) {
			images = append(images, filepath.Join(imagesDir, name))
		}
	}

	if len(images) == 0 {
		return nil, fmt.Errorf("%w: no images produced", ErrRenderingUnavailable)
	}

	// pdftoppm emits slide-1.jpg, slide-01.jpg or slide-10.jpg depending on
	// page count; sort by the trailing page number, not lexically.
	sort.Slice(images, func(i, j int) bool {
		return trailingNumber(images[i]) < trailingNumber(images[j])
	})

	return images, nil
}

func trailingNumber(path string) int {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	end := len(name)
	for end > 0 && name[end-1] >= '0' && name[end-1] <= '9' {
		end--
	}
	if end == len(name) {
		return 0
	}

	n, _ := strconv.Atoi(name[end:])
	return n
}
