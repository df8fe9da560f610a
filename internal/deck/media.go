package deck

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// maxRelationshipProbe bounds how many sequential relationship identifiers
// (rId1..rIdN) are inspected when associating a slide with an extracted video.
const maxRelationshipProbe = 12

var movieExtensions = []string{".mp4", ".mov", ".avi", ".m4v", ".wmv", ".mpg", ".mpeg", ".webm"}

func isMovieName(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	for _, e := range movieExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ExtractVideos copies every embedded movie asset out of the package's
// ppt/media/ directory into destDir and returns the extracted base filenames.
func (d *Deck) ExtractVideos(destDir string) ([]string, error) {
	var extracted []string

	for _, file := range d.reader.File {
		if !strings.HasPrefix(file.Name, "ppt/media/") || !isMovieName(file.Name) {
			continue
		}

		base := path.Base(file.Name)
		destPath := filepath.Join(destDir, base)

		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("open embedded video %s: %w", file.Name, err)
		}

		out, err := os.Create(destPath)
		if err != nil {
			rc.Close()
			return nil, fmt.Errorf("create %s: %w", destPath, err)
		}

		_, copyErr := io.Copy(out, rc)
		rc.Close()
		if closeErr := out.Close(); copyErr == nil {
			copyErr = closeErr
		}
		if copyErr != nil {
			return nil, fmt.Errorf("extract embedded video %s: %w", file.Name, copyErr)
		}

		extracted = append(extracted, base)
	}

	return extracted, nil
}

// MatchVideo associates a slide with one extracted video filename. Up to
// maxRelationshipProbe sequential relationship identifiers are resolved; the
// first whose target's base filename substring-matches an extracted name is
// authoritative. Identifiers that resolve to nothing are skipped. Slides
// without a movie shape never match.
func (s *Slide) MatchVideo(extracted []string) (string, bool) {
	if !s.HasMovie || len(extracted) == 0 {
		return "", false
	}

	for i := 1; i <= maxRelationshipProbe; i++ {
		target := s.relTarget(fmt.Sprintf("rId%d", i))
		if target == "" {
			continue
		}

		base := path.Base(target)
		for _, name := range extracted {
			if strings.Contains(name, base) {
				return name, true
			}
		}
	}

	return "", false
}
