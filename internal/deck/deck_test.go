package deck

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

const (
	slideXML = `<?xml version="1.0" encoding="UTF-8"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"
       xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <p:cSld><a:t>Slide body text</a:t></p:cSld>
</p:sld>`

	movieSlideXML = `<?xml version="1.0" encoding="UTF-8"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"
       xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"
       xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <p:cSld>
    <a:videoFile r:link="rId2"/>
  </p:cSld>
</p:sld>`

	notesXML = `<?xml version="1.0" encoding="UTF-8"?>
<p:notes xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"
         xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <a:t>Hello</a:t><a:t>{{min_time:8}}</a:t>
</p:notes>`

	movieRelsXML = `<?xml version="1.0" encoding="UTF-8"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="image" Target="../media/image1.png"/>
  <Relationship Id="rId2" Type="video" Target="../media/media1.mp4"/>
</Relationships>`
)

func writeFixture(t *testing.T, parts map[string][]byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.pptx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for name, data := range parts {
		entry, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := entry.Write(data); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	return path
}

func fixtureParts() map[string][]byte {
	return map[string][]byte{
		"ppt/slides/slide1.xml":            []byte(slideXML),
		"ppt/notesSlides/notesSlide1.xml":  []byte(notesXML),
		"ppt/slides/slide2.xml":            []byte(slideXML),
		"ppt/slides/slide3.xml":            []byte(movieSlideXML),
		"ppt/slides/_rels/slide3.xml.rels": []byte(movieRelsXML),
		"ppt/media/media1.mp4":             []byte("not really a video"),
		"ppt/media/image1.png":             []byte("not really an image"),
	}
}

func TestOpen(t *testing.T) {
	d, err := Open(writeFixture(t, fixtureParts()))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer d.Close()

	if len(d.Slides) != 3 {
		t.Fatalf("got %d slides, want 3", len(d.Slides))
	}

	for i, s := range d.Slides {
		if s.Index != i+1 {
			t.Errorf("slide %d has index %d", i, s.Index)
		}
	}

	if d.Slides[0].Notes != "Hello {{min_time:8}}" {
		t.Errorf("slide 1 notes = %q", d.Slides[0].Notes)
	}
	if d.Slides[1].Notes != "" {
		t.Errorf("slide 2 notes = %q, want empty", d.Slides[1].Notes)
	}

	if d.Slides[0].HasMovie || d.Slides[1].HasMovie {
		t.Error("slides 1 and 2 should not host a movie")
	}
	if !d.Slides[2].HasMovie {
		t.Error("slide 3 should host a movie")
	}
}

func TestNotesResolvedViaRelationship(t *testing.T) {
	// The notes part number need not match the slide ordinal; the
	// notesSlide relationship is authoritative when present.
	relsXML := `<?xml version="1.0" encoding="UTF-8"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesSlide" Target="../notesSlides/notesSlide7.xml"/>
</Relationships>`

	d, err := Open(writeFixture(t, map[string][]byte{
		"ppt/slides/slide1.xml":            []byte(slideXML),
		"ppt/slides/_rels/slide1.xml.rels": []byte(relsXML),
		"ppt/notesSlides/notesSlide7.xml":  []byte(notesXML),
		"ppt/notesSlides/notesSlide1.xml":  []byte(`<p:notes xmlns:p="p" xmlns:a="a"><a:t>wrong part</a:t></p:notes>`),
	}))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer d.Close()

	if d.Slides[0].Notes != "Hello {{min_time:8}}" {
		t.Errorf("slide 1 notes = %q, want the relationship target's text", d.Slides[0].Notes)
	}
}

func TestOpenEmptyPackage(t *testing.T) {
	path := writeFixture(t, map[string][]byte{
		"docProps/core.xml": []byte("<x/>"),
	})

	if _, err := Open(path); err == nil {
		t.Error("Open() should fail on a package with no slides")
	}
}

func TestExtractVideos(t *testing.T) {
	d, err := Open(writeFixture(t, fixtureParts()))
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	destDir := t.TempDir()
	extracted, err := d.ExtractVideos(destDir)
	if err != nil {
		t.Fatalf("ExtractVideos() error = %v", err)
	}

	if len(extracted) != 1 || extracted[0] != "media1.mp4" {
		t.Fatalf("extracted = %v, want [media1.mp4]", extracted)
	}

	data, err := os.ReadFile(filepath.Join(destDir, "media1.mp4"))
	if err != nil {
		t.Fatalf("extracted file not readable: %v", err)
	}
	if string(data) != "not really a video" {
		t.Errorf("extracted content = %q", data)
	}
}

func TestMatchVideo(t *testing.T) {
	d, err := Open(writeFixture(t, fixtureParts()))
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	extracted := []string{"media1.mp4"}

	// Movie slide matched via rId2; rId1 (an image) is skipped.
	name, ok := d.Slides[2].MatchVideo(extracted)
	if !ok || name != "media1.mp4" {
		t.Errorf("MatchVideo() = %q, %v; want media1.mp4, true", name, ok)
	}

	// Non-movie slides never match, even with extracted videos present.
	if _, ok := d.Slides[0].MatchVideo(extracted); ok {
		t.Error("slide without movie shape matched a video")
	}

	// No extracted videos means no match.
	if _, ok := d.Slides[2].MatchVideo(nil); ok {
		t.Error("MatchVideo() matched with no extracted videos")
	}
}

func TestIsMovieName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"ppt/media/media1.mp4", true},
		{"ppt/media/clip.MOV", true},
		{"ppt/media/old.wmv", true},
		{"ppt/media/image1.png", false},
		{"ppt/media/sound1.mp3", false},
	}

	for _, tt := range tests {
		if got := isMovieName(tt.name); got != tt.want {
			t.Errorf("isMovieName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
