package output

import (
	"fmt"
	"os"
	"strings"
)

// RenderText lays out the summary followed by the full transcription, the
// order readers expect in the saved file.
func RenderText(summary, transcript string) string {
	var b strings.Builder
	b.WriteString(summary)
	b.WriteString("\n\nTranscription:\n")
	b.WriteString(transcript)
	return b.String()
}

// WriteText writes the plain-text rendering to path.
func WriteText(path, summary, transcript string) error {
	if err := os.WriteFile(path, []byte(RenderText(summary, transcript)), 0o644); err != nil {
		return fmt.Errorf("write text file: %w", err)
	}
	return nil
}
