// Package deck reads pptx presentation packages: ordered slides, speaker
// notes, and embedded movie assets. A pptx file is a zip archive of OOXML
// parts; slides live at ppt/slides/slideN.xml with per-slide relationship
// maps at ppt/slides/_rels/slideN.xml.rels.
package deck

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"
)

// Slide is one presentation slide: 1-based ordinal, raw speaker notes text,
// and whether the slide hosts an embedded movie shape.
type Slide struct {
	Index    int
	Notes    string
	HasMovie bool
	rels     map[string]string
}

// Deck is an opened presentation package. Read-only; opened once per
// conversion run.
type Deck struct {
	path   string
	reader *zip.ReadCloser
	Slides []*Slide
}

// Open opens a pptx package and loads every slide's notes and relationships.
func Open(pptxPath string) (*Deck, error) {
	reader, err := zip.OpenReader(pptxPath)
	if err != nil {
		return nil, fmt.Errorf("open pptx package: %w", err)
	}

	d := &Deck{path: pptxPath, reader: reader}

	// Slides are numbered from 1; a missing slideN.xml means we are past the
	// last slide.
	for i := 1; ; i++ {
		slideData, err := readZipFile(reader, fmt.Sprintf("ppt/slides/slide%d.xml", i))
		if err != nil {
			break
		}

		slide := &Slide{Index: i}
		slide.HasMovie = hasMovieShape(slideData)

		// The notes part is named by the slide's notesSlide relationship.
		// Decks without one (or without rels at all) fall back to the
		// ordinal convention PowerPoint itself uses.
		notesName := fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", i)
		if relsData, err := readZipFile(reader, fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i)); err == nil {
			rels, notesTarget, err := parseRelationships(relsData)
			if err != nil {
				reader.Close()
				return nil, fmt.Errorf("parse relationships for slide %d: %w", i, err)
			}
			slide.rels = rels
			if notesTarget != "" {
				// Targets are relative to ppt/slides/.
				notesName = path.Join("ppt/slides", notesTarget)
			}
		}

		if notesData, err := readZipFile(reader, notesName); err == nil {
			text, err := extractText(notesData)
			if err != nil {
				reader.Close()
				return nil, fmt.Errorf("extract notes for slide %d: %w", i, err)
			}
			slide.Notes = text
		}

		d.Slides = append(d.Slides, slide)
	}

	if len(d.Slides) == 0 {
		reader.Close()
		return nil, fmt.Errorf("no slides found in %s", pptxPath)
	}

	return d, nil
}

// Close releases the underlying zip reader.
func (d *Deck) Close() error {
	return d.reader.Close()
}

func readZipFile(reader *zip.ReadCloser, name string) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name == name {
			rc, err := file.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()

			buf := new(bytes.Buffer)
			if _, err := io.Copy(buf, rc); err != nil {
				return nil, err
			}
			return buf.Bytes(), nil
		}
	}
	return nil, fmt.Errorf("part %s not found in package", name)
}

// extractText walks the XML token stream and collects the character data of
// every <a:t> element, the OOXML text run container.
func extractText(data []byte) (string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))

	var sb strings.Builder
	inTextElement := false

	for {
		tok, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return "", err
		}

		switch element := tok.(type) {
		case xml.StartElement:
			if element.Name.Local == "t" {
				inTextElement = true
			}
		case xml.EndElement:
			if element.Name.Local == "t" {
				inTextElement = false
				sb.WriteString(" ")
			}
		case xml.CharData:
			if inTextElement {
				sb.Write(element)
			}
		}
	}

	return strings.Join(strings.Fields(sb.String()), " "), nil
}

// hasMovieShape reports whether the slide XML carries a videoFile media
// reference. Other media kinds (audio, images) are ignored.
func hasMovieShape(data []byte) bool {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := decoder.Token()
		if err != nil {
			return false
		}
		if element, ok := tok.(xml.StartElement); ok {
			if element.Name.Local == "videoFile" {
				return true
			}
		}
	}
}

type relationshipsXML struct {
	XMLName       xml.Name          `xml:"Relationships"`
	Relationships []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// parseRelationships returns the id→target map plus the notesSlide target,
// when the slide declares one.
func parseRelationships(data []byte) (map[string]string, string, error) {
	var rels relationshipsXML
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil, "", err
	}

	var notesTarget string
	m := make(map[string]string, len(rels.Relationships))
	for _, r := range rels.Relationships {
		m[r.ID] = r.Target
		if strings.HasSuffix(r.Type, "/notesSlide") {
			notesTarget = r.Target
		}
	}
	return m, notesTarget, nil
}

// relTarget resolves a relationship identifier to its target part name.
// Missing identifiers resolve to "".
func (s *Slide) relTarget(rID string) string {
	if s.rels == nil {
		return ""
	}
	return s.rels[rID]
}
