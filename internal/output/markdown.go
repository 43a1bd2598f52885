package output

import (
	"fmt"
	"os"
	"strings"
)

// RenderMarkdown lays out summary and transcription under headings. Speaker
// tags are pushed onto their own lines so the transcript reads as turns
// instead of a wall of text.
func RenderMarkdown(summary, transcript string) string {
	var b strings.Builder
	b.WriteString("# Summary\n\n")
	b.WriteString(summary)
	b.WriteString("\n\n# Transcription\n\n")
	b.WriteString(strings.ReplaceAll(transcript, "spk_", "\nspk_"))
	return b.String()
}

// WriteMarkdown writes the markdown rendering to path.
func WriteMarkdown(path, summary, transcript string) error {
	if err := os.WriteFile(path, []byte(RenderMarkdown(summary, transcript)), 0o644); err != nil {
		return fmt.Errorf("write markdown file: %w", err)
	}
	return nil
}
