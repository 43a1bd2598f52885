package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/fumiama/go-docx"
)

// WriteWord writes the summary and transcription as a Word document, one
// paragraph per transcript line.
func WriteWord(path, summary, transcript string) error {
	doc := docx.New().WithDefaultTheme()
	doc.AddParagraph().AddText(summary)
	doc.AddParagraph()
	doc.AddParagraph().AddText("Transcription:")
	for _, line := range strings.Split(strings.TrimRight(transcript, "\n"), "\n") {
		doc.AddParagraph().AddText(line)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create word document: %w", err)
	}

	if _, err := doc.WriteTo(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write word document: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close word document: %w", err)
	}
	return nil
}
