package converter

import "context"

// Request describes one conversion run.
type Request struct {
	DeckPath    string
	OutputPath  string
	SlideFilter string // "2,4-6" syntax; empty means all slides
	ScriptPath  string // optional narration-script docx output
}

// Converter turns a slide deck into a narrated video.
type Converter interface {
	Convert(ctx context.Context, req Request) error
}
