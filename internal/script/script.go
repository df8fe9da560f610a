// Package script exports a deck's cleaned narration text as a Word document,
// one section per slide.
package script

import (
	"fmt"

	"github.com/gomutex/godocx"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

// SlideNarration is one slide's cleaned narration line.
type SlideNarration struct {
	Index int
	Text  string
}

// Write renders the narration script to a docx file at outputPath.
func Write(title string, slides []SlideNarration, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	doc.AddParagraph("").AddText(title).Font(fontName).Size(16).Color("000000").Bold(true)
	doc.AddParagraph("")

	for _, slide := range slides {
		heading := fmt.Sprintf("Slide %d", slide.Index)
		doc.AddParagraph("").AddText(heading).Font(fontName).Size(14).Color("000000").Bold(true)

		text := slide.Text
		if text == "" {
			text = "(no narration)"
		}
		doc.AddParagraph("").AddText(text).Font(fontName).Size(fontSize).Color("000000")
		doc.AddParagraph("")
	}

	return doc.SaveTo(outputPath)
}
